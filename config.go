// FILE: lixenwraith/ulog/config.go
package ulog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"

	"github.com/lixenwraith/ulog/sanitizer"
)

// Config holds all logger configuration values
type Config struct {
	// Level gate
	Levels string `toml:"levels"` // Comma separated level names; "default" expands to the base set

	// Sink built and owned by the logger
	Sink           string  `toml:"sink"` // "none", "file", "console", "rotating", or "memory"
	Path           string  `toml:"path"` // Destination of file and rotating sinks
	StampFormat    string  `toml:"stamp_format"`
	SeparatorSecs  float64 `toml:"separator_secs"`  // Idle seconds before a dash separator line (<0=disabled)
	ConsoleTarget  string  `toml:"console_target"`  // "stdout" or "stderr"
	MaxSizeMB      int64   `toml:"max_size_mb"`     // Rotating sink file size limit
	MaxBackups     int64   `toml:"max_backups"`     // Rotating sink kept backups
	MaxLines       int64   `toml:"max_lines"`       // Memory sink capacity (0=unbounded)
	Sanitize       bool    `toml:"sanitize"`        // Rewrite messages with the sanitize policy
	SanitizePolicy string  `toml:"sanitize_policy"` // "txt", "line", "flat", or "raw"
	ShowLevel      bool    `toml:"show_level"`      // Prefix lines with the level name

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Levels: "default",

	Sink:           "none",
	Path:           "./ulog.log",
	StampFormat:    "time,ms",
	SeparatorSecs:  defaultSeparatorSecs,
	ConsoleTarget:  "stdout",
	MaxSizeMB:      defaultMaxSizeMB,
	MaxBackups:     defaultMaxBackups,
	MaxLines:       0,
	Sanitize:       true,
	SanitizePolicy: string(sanitizer.PolicyTxt),
	ShowLevel:      false,

	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [ulog] table of a TOML file and
// returns a validated Config. A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	if err := loader.RegisterStruct("ulog.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "ulog.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides
// keyed by toml tag
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		switch v := value.(type) {
		case string:
			field.SetString(v)
		case []string:
			field.SetString(strings.Join(v, ","))
		case []any:
			// TOML arrays, e.g. levels = ["MSG", "ERROR"]
			parts := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("expected string list element, got %T", item)
				}
				parts = append(parts, s)
			}
			field.SetString(strings.Join(parts, ","))
		default:
			return fmt.Errorf("expected string, got %T", value)
		}

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Float64:
		switch v := value.(type) {
		case float64:
			field.SetFloat(v)
		case int64:
			field.SetFloat(float64(v))
		case int:
			field.SetFloat(float64(v))
		default:
			return fmt.Errorf("expected float64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if _, err := ParseLevels(c.Levels); err != nil {
		return err
	}

	if _, err := ParseStampFormat(c.StampFormat); err != nil {
		return err
	}

	sink := strings.ToLower(strings.TrimSpace(c.Sink))
	if sink != "none" && sink != "" {
		kind, err := ParseSinkKind(sink)
		if err != nil {
			return err
		}
		if (kind == KindFile || kind == KindRotating) && strings.TrimSpace(c.Path) == "" {
			return fmtErrorf("path cannot be empty for %s sink", kind)
		}
	}

	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	if _, err := sanitizer.ParsePolicy(c.SanitizePolicy); err != nil {
		return fmtErrorf("%w", err)
	}

	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxLines < 0 {
		return fmtErrorf("size limits cannot be negative")
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// sinkSettingsEqual reports whether both configs describe the same owned sink
func sinkSettingsEqual(a, b *Config) bool {
	return strings.EqualFold(strings.TrimSpace(a.Sink), strings.TrimSpace(b.Sink)) &&
		a.Path == b.Path &&
		a.StampFormat == b.StampFormat &&
		a.SeparatorSecs == b.SeparatorSecs &&
		a.ConsoleTarget == b.ConsoleTarget &&
		a.MaxSizeMB == b.MaxSizeMB &&
		a.MaxBackups == b.MaxBackups &&
		a.MaxLines == b.MaxLines &&
		a.Sanitize == b.Sanitize &&
		strings.EqualFold(strings.TrimSpace(a.SanitizePolicy), strings.TrimSpace(b.SanitizePolicy)) &&
		a.ShowLevel == b.ShowLevel
}

// newConfiguredSink builds the sink described by c, or returns nil for sink "none"
func newConfiguredSink(c *Config) (Sink, error) {
	name := strings.ToLower(strings.TrimSpace(c.Sink))
	if name == "" || name == "none" {
		return nil, nil
	}

	kind, err := ParseSinkKind(name)
	if err != nil {
		return nil, err
	}
	stamp, err := ParseStampFormat(c.StampFormat)
	if err != nil {
		return nil, err
	}
	policy, err := sanitizer.ParsePolicy(c.SanitizePolicy)
	if err != nil {
		return nil, err
	}

	opts := []SinkOption{
		WithStampFormat(stamp),
		WithSeparatorSecs(c.SeparatorSecs),
		WithSanitize(c.Sanitize),
		WithSanitizePolicy(policy),
		WithShowLevel(c.ShowLevel),
		WithStderr(c.ConsoleTarget == "stderr" || name == "stderr"),
		WithRotation(int(c.MaxSizeMB), int(c.MaxBackups)),
		WithMaxLines(int(c.MaxLines)),
	}
	return NewSink(kind, c.Path, opts...)
}
