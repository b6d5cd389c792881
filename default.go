// FILE: lixenwraith/ulog/default.go
package ulog

// Package-level functions delegate to the active logger and do nothing when none is active.

// IsLevelEnabled reports whether level is enabled on the active logger
func IsLevelEnabled(level LogLevel) bool {
	if l := active.Load(); l != nil {
		return l.IsLevelEnabled(level)
	}
	return false
}

// Log formats and broadcasts through the active logger
func Log(level LogLevel, template string, args ...any) error {
	if l := active.Load(); l != nil {
		return l.log(level, template, args)
	}
	return nil
}

// LogNamed is Log with the level given by name
func LogNamed(name string, template string, args ...any) error {
	if l := active.Load(); l != nil {
		return l.log(Hash(name), template, args)
	}
	return nil
}

// Emit broadcasts a pre-built message through the active logger
func Emit(level LogLevel, msg string) error {
	if l := active.Load(); l != nil {
		return l.Emit(level, msg)
	}
	return nil
}

// Msg logs at MSG level through the active logger
func Msg(template string, args ...any) error {
	return Log(LevelMsg, template, args...)
}

// Err logs at ERROR level through the active logger
func Err(template string, args ...any) error {
	return Log(LevelError, template, args...)
}

// Warn logs at WARNING level through the active logger
func Warn(template string, args ...any) error {
	return Log(LevelWarning, template, args...)
}

// Exception logs at EXCEPTION level through the active logger
func Exception(template string, args ...any) error {
	return Log(LevelException, template, args...)
}

// Fatal logs at FATAL level through the active logger
func Fatal(template string, args ...any) error {
	return Log(LevelFatal, template, args...)
}

// ClearAll clears the sinks of the active logger
func ClearAll() error {
	if l := active.Load(); l != nil {
		return l.ClearAll()
	}
	return nil
}
