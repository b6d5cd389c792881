// FILE: lixenwraith/ulog/override.go
package ulog

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverride applies string key-value overrides to the logger's current configuration.
// Each override should be in the format "key=value".
// The configuration is cloned before modification to ensure thread safety.
//
// Example:
//
//	logger := ulog.NewLogger()
//	err := logger.ApplyOverride(
//	    "sink=file",
//	    "path=/var/log/app/ui.log",
//	    "levels=default,USER_CMD",
//	)
func (l *Logger) ApplyOverride(overrides ...string) error {
	cfg := l.getConfig().Clone()

	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	return l.ApplyConfig(cfg)
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("ulog: multiple configuration errors:")
	for i, err := range errors {
		errMsg := strings.TrimPrefix(err.Error(), "ulog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	// Level gate
	case "levels":
		cfg.Levels = value

	// Sink
	case "sink":
		cfg.Sink = value
	case "path":
		cfg.Path = value
	case "stamp_format":
		cfg.StampFormat = value
	case "separator_secs":
		floatVal, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmtErrorf("invalid float value for separator_secs '%s': %w", value, err)
		}
		cfg.SeparatorSecs = floatVal
	case "console_target":
		cfg.ConsoleTarget = value
	case "max_size_mb":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_size_mb '%s': %w", value, err)
		}
		cfg.MaxSizeMB = intVal
	case "max_backups":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_backups '%s': %w", value, err)
		}
		cfg.MaxBackups = intVal
	case "max_lines":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_lines '%s': %w", value, err)
		}
		cfg.MaxLines = intVal
	case "sanitize":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for sanitize '%s': %w", value, err)
		}
		cfg.Sanitize = boolVal
	case "sanitize_policy":
		cfg.SanitizePolicy = value
	case "show_level":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for show_level '%s': %w", value, err)
		}
		cfg.ShowLevel = boolVal

	// Internal error handling
	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}
