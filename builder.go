// FILE: lixenwraith/ulog/builder.go
package ulog

import (
	"strings"

	"github.com/trickstertwo/xclock"

	"github.com/lixenwraith/ulog/sanitizer"
)

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg      *Config
	clock    xclock.Clock
	sinks    []Sink
	activate bool
	err      error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger with the configured sink connected and owned, then
// connects any extra sinks in the order they were added.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	var opts []Option
	if b.clock != nil {
		opts = append(opts, WithClock(b.clock))
	}
	logger := NewLogger(opts...)

	if err := logger.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	for _, s := range b.sinks {
		if s.base().Connected() {
			_ = logger.Close()
			return nil, fmtErrorf("sink %T is already connected", s)
		}
		logger.Connect(s)
	}

	if b.activate {
		if err := logger.Activate(); err != nil {
			_ = logger.Close()
			return nil, err
		}
	}

	return logger, nil
}

// Config returns a copy of the configuration built so far
func (b *Builder) Config() *Config {
	return b.cfg.Clone()
}

// Levels sets the enabled levels by name; "default" expands to the base set.
func (b *Builder) Levels(names ...string) *Builder {
	if b.err != nil {
		return b
	}
	list := strings.Join(names, ",")
	if _, err := ParseLevels(list); err != nil {
		b.err = err
		return b
	}
	b.cfg.Levels = list
	return b
}

// Sink sets the kind of the owned sink ("none", "file", "console", "rotating", "memory").
func (b *Builder) Sink(kind string) *Builder {
	b.cfg.Sink = kind
	return b
}

// Path sets the destination of file and rotating sinks.
func (b *Builder) Path(path string) *Builder {
	b.cfg.Path = path
	return b
}

// File is Sink("file") plus Path(path).
func (b *Builder) File(path string) *Builder {
	return b.Sink(KindFile.String()).Path(path)
}

// Console is Sink("console") with the given target ("stdout" or "stderr").
func (b *Builder) Console(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b.Sink(KindConsole.String())
}

// StampFormat sets the timestamp rendering.
func (b *Builder) StampFormat(f StampFormat) *Builder {
	b.cfg.StampFormat = f.String()
	return b
}

// SeparatorSecs sets the idle time before a separator line.
func (b *Builder) SeparatorSecs(secs float64) *Builder {
	b.cfg.SeparatorSecs = secs
	return b
}

// Rotation sets the rotating sink size limit and kept backups.
func (b *Builder) Rotation(maxSizeMB, maxBackups int64) *Builder {
	b.cfg.MaxSizeMB = maxSizeMB
	b.cfg.MaxBackups = maxBackups
	return b
}

// MaxLines bounds a memory sink.
func (b *Builder) MaxLines(n int64) *Builder {
	b.cfg.MaxLines = n
	return b
}

// Sanitize toggles hex-encoding of non-printable message characters.
func (b *Builder) Sanitize(enable bool) *Builder {
	b.cfg.Sanitize = enable
	return b
}

// SanitizePolicy selects the sanitizer preset for messages.
func (b *Builder) SanitizePolicy(preset sanitizer.PolicyPreset) *Builder {
	b.cfg.SanitizePolicy = string(preset)
	return b
}

// ShowLevel toggles the level name prefix.
func (b *Builder) ShowLevel(enable bool) *Builder {
	b.cfg.ShowLevel = enable
	return b
}

// InternalErrorsToStderr toggles internal diagnostics on stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Override applies "key=value" strings to the configuration.
func (b *Builder) Override(overrides ...string) *Builder {
	if b.err != nil {
		return b
	}
	var errs []error
	for _, o := range overrides {
		key, value, err := parseKeyValue(o)
		if err == nil {
			err = applyConfigField(b.cfg, key, value)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	b.err = combineConfigErrors(errs)
	return b
}

// Clock sets the clock used to stamp events.
func (b *Builder) Clock(c xclock.Clock) *Builder {
	b.clock = c
	return b
}

// AddSink connects an extra, caller-owned sink to the built logger.
func (b *Builder) AddSink(s Sink) *Builder {
	if b.err != nil {
		return b
	}
	if s == nil {
		b.err = fmtErrorf("sink cannot be nil")
		return b
	}
	b.sinks = append(b.sinks, s)
	return b
}

// Activate makes the built logger the process-wide instance.
func (b *Builder) Activate() *Builder {
	b.activate = true
	return b
}

// Example usage:
// logger, err := ulog.NewBuilder().
//
//	Levels("default", "USER_CMD").
//	File("/var/log/app/ui.log").
//	SeparatorSecs(2).
//	Activate().
//	Build()
//
// if err == nil {
//
//	 defer logger.Close()
//	 ulog.Msg("started in %.2f secs", 0.25)
//
// }
