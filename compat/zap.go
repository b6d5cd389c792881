// FILE: lixenwraith/ulog/compat/zap.go
package compat

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/ulog"
)

// ErrZapSinkClosed is returned by Receive after Close
var ErrZapSinkClosed = errors.New("ulog/compat: zap sink is closed")

// ZapSink forwards events to a zap logger. The event's own time, level name and
// producer index travel as fields; zap filtering applies on top of the ulog level gate.
type ZapSink struct {
	ulog.SinkBase

	l       *zap.Logger
	tsKey   string
	levelOf func(ulog.LogLevel) zapcore.Level
	closed  atomic.Bool
}

// ZapOption customizes a ZapSink
type ZapOption func(*ZapSink)

// WithZapLevelMapper replaces the ulog to zap severity mapping
func WithZapLevelMapper(fn func(ulog.LogLevel) zapcore.Level) ZapOption {
	return func(s *ZapSink) {
		if fn != nil {
			s.levelOf = fn
		}
	}
}

// WithZapTimestampKey sets the field carrying the event time (default "ts")
func WithZapTimestampKey(key string) ZapOption {
	return func(s *ZapSink) {
		if key != "" {
			s.tsKey = key
		}
	}
}

// NewZapSink creates a sink writing to l; a nil logger discards everything
func NewZapSink(l *zap.Logger, opts ...ZapOption) *ZapSink {
	if l == nil {
		l = zap.NewNop()
	}
	s := &ZapSink{l: l, tsKey: "ts", levelOf: ZapLevel}
	for _, opt := range opts {
		opt(s)
	}
	s.SetHome()
	return s
}

// ZapLevel maps base levels to zap severities; FATAL maps to Error to avoid os.Exit
// in library code and unknown levels map to Debug
func ZapLevel(level ulog.LogLevel) zapcore.Level {
	switch level {
	case ulog.LevelFatal, ulog.LevelException, ulog.LevelError:
		return zapcore.ErrorLevel
	case ulog.LevelWarning:
		return zapcore.WarnLevel
	case ulog.LevelMsg:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Receive writes one zap entry per event
func (s *ZapSink) Receive(ev ulog.Event) error {
	if s.closed.Load() {
		return ErrZapSinkClosed
	}

	// Skip field construction when zap would drop the entry
	ce := s.l.Check(s.levelOf(ev.Level), ev.Message)
	if ce == nil {
		return nil
	}
	ce.Write(
		zap.Time(s.tsKey, ev.Time),
		zap.String("level_name", ev.Level.String()),
		zap.Int("thread", ev.Thread),
		zap.Bool("home", s.OnHome(ev)),
	)
	return nil
}

// Close disconnects the sink and flushes the zap logger
func (s *ZapSink) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.DisconnectSelf()
	return s.l.Sync()
}
