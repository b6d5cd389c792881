// FILE: lixenwraith/ulog/compat/gnet.go
package compat

import (
	"fmt"
	"os"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/lixenwraith/ulog"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps ulog.Logger to implement gnet logging.Logger interface
type GnetAdapter struct {
	logger       *ulog.Logger
	source       string
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *ulog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		source: "gnet",
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// WithGnetSource sets the tag prefixed to every message; empty disables it
func WithGnetSource(source string) GnetOption {
	return func(a *GnetAdapter) {
		a.source = source
	}
}

// Debugf logs at DEBUG level
func (a *GnetAdapter) Debugf(format string, args ...any) {
	emitf(a.logger, LevelDebug, a.source, format, args)
}

// Infof logs at MSG level
func (a *GnetAdapter) Infof(format string, args ...any) {
	emitf(a.logger, LevelInfo, a.source, format, args)
}

// Warnf logs at WARNING level
func (a *GnetAdapter) Warnf(format string, args ...any) {
	emitf(a.logger, ulog.LevelWarning, a.source, format, args)
}

// Errorf logs at ERROR level
func (a *GnetAdapter) Errorf(format string, args ...any) {
	emitf(a.logger, ulog.LevelError, a.source, format, args)
}

// Fatalf logs at FATAL level and triggers the fatal handler, even when FATAL is disabled
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if a.logger.IsLevelEnabled(ulog.LevelFatal) {
		emit(a.logger, ulog.LevelFatal, a.source, msg)
	}

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
