// FILE: lixenwraith/ulog/compat/fiber.go
package compat

import (
	"fmt"
	"os"

	"github.com/lixenwraith/ulog"
)

// FiberAdapter wraps ulog.Logger with the method set of Fiber's log.AllLogger
// (CommonLogger, FormatLogger and WithLogger) plus io.Writer
type FiberAdapter struct {
	logger       *ulog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
	panicHandler func(msg string) // Customizable panic behavior
}

// NewFiberAdapter creates a new Fiber-compatible logger adapter
func NewFiberAdapter(logger *ulog.Logger, opts ...FiberOption) *FiberAdapter {
	adapter := &FiberAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior
		},
		panicHandler: func(msg string) {
			panic(msg) // Default behavior
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FiberOption allows customizing adapter behavior
type FiberOption func(*FiberAdapter)

// WithFiberFatalHandler sets a custom fatal handler
func WithFiberFatalHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.fatalHandler = handler
	}
}

// WithFiberPanicHandler sets a custom panic handler
func WithFiberPanicHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.panicHandler = handler
	}
}

const fiberSource = "fiber"

func (a *FiberAdapter) print(level ulog.LogLevel, v []any) {
	if a.logger.IsLevelEnabled(level) {
		emit(a.logger, level, fiberSource, fmt.Sprint(v...))
	}
}

func (a *FiberAdapter) printw(level ulog.LogLevel, msg string, keysAndValues []any) {
	if a.logger.IsLevelEnabled(level) {
		emit(a.logger, level, fiberSource, joinPairs(msg, keysAndValues))
	}
}

// terminal logs msg at level regardless of the handler, then runs the handler
func (a *FiberAdapter) terminal(level ulog.LogLevel, msg, logged string, handler func(string)) {
	if a.logger.IsLevelEnabled(level) {
		emit(a.logger, level, fiberSource, logged)
	}
	if handler != nil {
		handler(msg)
	}
}

// --- CommonLogger ---

// Trace logs at TRACE level
func (a *FiberAdapter) Trace(v ...any) { a.print(LevelTrace, v) }

// Debug logs at DEBUG level
func (a *FiberAdapter) Debug(v ...any) { a.print(LevelDebug, v) }

// Info logs at MSG level
func (a *FiberAdapter) Info(v ...any) { a.print(LevelInfo, v) }

// Warn logs at WARNING level
func (a *FiberAdapter) Warn(v ...any) { a.print(ulog.LevelWarning, v) }

// Error logs at ERROR level
func (a *FiberAdapter) Error(v ...any) { a.print(ulog.LevelError, v) }

// Fatal logs at FATAL level and triggers the fatal handler
func (a *FiberAdapter) Fatal(v ...any) {
	msg := fmt.Sprint(v...)
	a.terminal(ulog.LevelFatal, msg, msg, a.fatalHandler)
}

// Panic logs at EXCEPTION level and triggers the panic handler
func (a *FiberAdapter) Panic(v ...any) {
	msg := fmt.Sprint(v...)
	a.terminal(ulog.LevelException, msg, msg, a.panicHandler)
}

// Write makes FiberAdapter an io.Writer; each write is one MSG event
func (a *FiberAdapter) Write(p []byte) (n int, err error) {
	msg := string(p)
	// Trim trailing newline if present
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	if a.logger.IsLevelEnabled(LevelInfo) {
		emit(a.logger, LevelInfo, fiberSource, msg)
	}
	return len(p), nil
}

// --- FormatLogger ---

// Tracef logs at TRACE level with printf-style formatting
func (a *FiberAdapter) Tracef(format string, v ...any) {
	emitf(a.logger, LevelTrace, fiberSource, format, v)
}

// Debugf logs at DEBUG level with printf-style formatting
func (a *FiberAdapter) Debugf(format string, v ...any) {
	emitf(a.logger, LevelDebug, fiberSource, format, v)
}

// Infof logs at MSG level with printf-style formatting
func (a *FiberAdapter) Infof(format string, v ...any) {
	emitf(a.logger, LevelInfo, fiberSource, format, v)
}

// Warnf logs at WARNING level with printf-style formatting
func (a *FiberAdapter) Warnf(format string, v ...any) {
	emitf(a.logger, ulog.LevelWarning, fiberSource, format, v)
}

// Errorf logs at ERROR level with printf-style formatting
func (a *FiberAdapter) Errorf(format string, v ...any) {
	emitf(a.logger, ulog.LevelError, fiberSource, format, v)
}

// Fatalf logs at FATAL level and triggers the fatal handler
func (a *FiberAdapter) Fatalf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.terminal(ulog.LevelFatal, msg, msg, a.fatalHandler)
}

// Panicf logs at EXCEPTION level and triggers the panic handler
func (a *FiberAdapter) Panicf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.terminal(ulog.LevelException, msg, msg, a.panicHandler)
}

// --- WithLogger ---

// Tracew logs at TRACE level with key-value pairs appended to the message
func (a *FiberAdapter) Tracew(msg string, keysAndValues ...any) {
	a.printw(LevelTrace, msg, keysAndValues)
}

// Debugw logs at DEBUG level with key-value pairs appended to the message
func (a *FiberAdapter) Debugw(msg string, keysAndValues ...any) {
	a.printw(LevelDebug, msg, keysAndValues)
}

// Infow logs at MSG level with key-value pairs appended to the message
func (a *FiberAdapter) Infow(msg string, keysAndValues ...any) {
	a.printw(LevelInfo, msg, keysAndValues)
}

// Warnw logs at WARNING level with key-value pairs appended to the message
func (a *FiberAdapter) Warnw(msg string, keysAndValues ...any) {
	a.printw(ulog.LevelWarning, msg, keysAndValues)
}

// Errorw logs at ERROR level with key-value pairs appended to the message
func (a *FiberAdapter) Errorw(msg string, keysAndValues ...any) {
	a.printw(ulog.LevelError, msg, keysAndValues)
}

// Fatalw logs at FATAL level with key-value pairs and triggers the fatal handler
func (a *FiberAdapter) Fatalw(msg string, keysAndValues ...any) {
	a.terminal(ulog.LevelFatal, msg, joinPairs(msg, keysAndValues), a.fatalHandler)
}

// Panicw logs at EXCEPTION level with key-value pairs and triggers the panic handler
func (a *FiberAdapter) Panicw(msg string, keysAndValues ...any) {
	a.terminal(ulog.LevelException, msg, joinPairs(msg, keysAndValues), a.panicHandler)
}
