// FILE: lixenwraith/ulog/logger.go
package ulog

import (
	"sync"
	"sync/atomic"

	"github.com/trickstertwo/xclock"
)

// Logger gates events by level and broadcasts enabled ones to its sinks
type Logger struct {
	currentConfig atomic.Value // stores *Config
	initMu        sync.Mutex   // serializes ApplyConfig

	levelMu sync.RWMutex
	levels  LevelSet

	dispatcher *Dispatcher
	clock      xclock.Clock // nil uses the process-wide xclock default

	owned  Sink // sink built from the configuration, closed with the logger
	closed atomic.Bool
}

// Option configures a Logger at construction
type Option func(*Logger)

// WithClock sets the clock used to stamp events
func WithClock(c xclock.Clock) Option {
	return func(l *Logger) {
		l.clock = c
	}
}

// WithLevels replaces the default enabled level set
func WithLevels(set LevelSet) Option {
	return func(l *Logger) {
		l.levels = set.Clone()
	}
}

// NewLogger creates an active logger with the default enabled levels and no sinks
func NewLogger(opts ...Option) *Logger {
	l := &Logger{
		levels:     defaultLevels(),
		dispatcher: NewDispatcher(),
	}
	l.currentConfig.Store(DefaultConfig())

	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ApplyConfig applies a validated configuration. The enabled level set is replaced only
// when the levels setting changed, so runtime level edits survive unrelated changes.
// The owned sink is rebuilt when its settings changed.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}
	if l.closed.Load() {
		return ErrClosed
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	// Close may have won the race for initMu
	if l.closed.Load() {
		return ErrClosed
	}

	return l.applyConfig(cfg.Clone())
}

// GetConfig returns a copy of current configuration
func (l *Logger) GetConfig() *Config {
	return l.getConfig().Clone()
}

// getConfig returns the current configuration (thread-safe)
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

// applyConfig is the internal implementation for applying configuration, assuming initMu is held
func (l *Logger) applyConfig(cfg *Config) error {
	oldCfg := l.getConfig()

	levels, err := ParseLevels(cfg.Levels)
	if err != nil {
		return err
	}

	// Build the replacement sink before touching state so a failure leaves the logger as is
	needsNewSink := l.owned == nil || !sinkSettingsEqual(oldCfg, cfg)
	var newSink Sink
	if needsNewSink {
		newSink, err = newConfiguredSink(cfg)
		if err != nil {
			return fmtErrorf("failed to create sink: %w", err)
		}
	}

	l.currentConfig.Store(cfg)
	if cfg.Levels != oldCfg.Levels {
		l.levelMu.Lock()
		l.levels = levels
		l.levelMu.Unlock()
	}

	if !needsNewSink {
		return nil
	}

	// Connect the replacement before closing the old sink so no event falls in between
	old := l.owned
	l.owned = newSink
	if newSink != nil {
		l.dispatcher.Connect(newSink)
	}
	if old != nil {
		if err := old.Close(); err != nil {
			internalLog(cfg.InternalErrorsToStderr, "warning - failed to close replaced sink: %v", err)
		}
	}
	return nil
}

// Sink returns the sink built from the configuration, or nil
func (l *Logger) Sink() Sink {
	l.initMu.Lock()
	defer l.initMu.Unlock()
	return l.owned
}

// Dispatcher returns the logger's dispatcher
func (l *Logger) Dispatcher() *Dispatcher {
	return l.dispatcher
}

// IsLevelEnabled reports whether events of level are delivered
func (l *Logger) IsLevelEnabled(level LogLevel) bool {
	l.levelMu.RLock()
	_, ok := l.levels[level]
	l.levelMu.RUnlock()
	return ok
}

// EnabledLevels returns a copy of the enabled level set
func (l *Logger) EnabledLevels() LevelSet {
	l.levelMu.RLock()
	defer l.levelMu.RUnlock()
	return l.levels.Clone()
}

// SetLevels replaces the enabled level set
func (l *Logger) SetLevels(set LevelSet) *Logger {
	l.levelMu.Lock()
	l.levels = set.Clone()
	l.levelMu.Unlock()
	return l
}

// EnableLevels adds every level of set
func (l *Logger) EnableLevels(set LevelSet) *Logger {
	l.levelMu.Lock()
	for lvl := range set {
		l.levels[lvl] = struct{}{}
	}
	l.levelMu.Unlock()
	return l
}

// EnableLevel adds the level named name
func (l *Logger) EnableLevel(name string) *Logger {
	return l.ToggleLevel(Hash(name), true)
}

// DisableLevels removes every level of set
func (l *Logger) DisableLevels(set LevelSet) *Logger {
	l.levelMu.Lock()
	for lvl := range set {
		delete(l.levels, lvl)
	}
	l.levelMu.Unlock()
	return l
}

// ToggleLevel enables or disables one level
func (l *Logger) ToggleLevel(level LogLevel, enable bool) *Logger {
	l.levelMu.Lock()
	if enable {
		l.levels[level] = struct{}{}
	} else {
		delete(l.levels, level)
	}
	l.levelMu.Unlock()
	return l
}

// ClearAllLevels disables every level
func (l *Logger) ClearAllLevels() *Logger {
	l.levelMu.Lock()
	l.levels = NewLevelSet()
	l.levelMu.Unlock()
	return l
}

// Log formats and broadcasts a message at level. A disabled level returns nil without
// formatting. Format and delivery failures are returned and reported internally.
func (l *Logger) Log(level LogLevel, template string, args ...any) error {
	return l.log(level, template, args)
}

// LogNamed is Log with the level given by name
func (l *Logger) LogNamed(name string, template string, args ...any) error {
	return l.log(Hash(name), template, args)
}

// Emit broadcasts a pre-built message at level
func (l *Logger) Emit(level LogLevel, msg string) error {
	if !l.IsLevelEnabled(level) {
		return nil
	}
	return l.broadcast(level, msg)
}

// Msg logs at MSG level
func (l *Logger) Msg(template string, args ...any) error {
	return l.log(LevelMsg, template, args)
}

// Err logs at ERROR level
func (l *Logger) Err(template string, args ...any) error {
	return l.log(LevelError, template, args)
}

// Warn logs at WARNING level
func (l *Logger) Warn(template string, args ...any) error {
	return l.log(LevelWarning, template, args)
}

// Exception logs at EXCEPTION level
func (l *Logger) Exception(template string, args ...any) error {
	return l.log(LevelException, template, args)
}

// Fatal logs at FATAL level. It does not exit.
func (l *Logger) Fatal(template string, args ...any) error {
	return l.log(LevelFatal, template, args)
}

// Connect attaches s to the logger's dispatcher; see Dispatcher.Connect
func (l *Logger) Connect(s Sink) *Logger {
	l.dispatcher.Connect(s)
	return l
}

// Disconnect detaches s from the logger's dispatcher; see Dispatcher.Disconnect
func (l *Logger) Disconnect(s Sink) *Logger {
	l.dispatcher.Disconnect(s)
	return l
}

// ClearAll clears every connected sink that supports it
func (l *Logger) ClearAll() error {
	return l.dispatcher.ClearAll()
}

// Close deactivates the logger, disconnects all sinks (last connected first) and closes
// the sink it built from configuration. Calling Close twice is safe.
func (l *Logger) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	l.deactivate()

	l.initMu.Lock()
	defer l.initMu.Unlock()

	l.dispatcher.Close()

	var err error
	if l.owned != nil {
		err = l.owned.Close()
		l.owned = nil
	}
	return err
}

// Closed reports whether Close was called
func (l *Logger) Closed() bool {
	return l.closed.Load()
}
