// FILE: lixenwraith/ulog/record.go
package ulog

import (
	"time"

	"github.com/lixenwraith/ulog/formatter"
	"github.com/trickstertwo/xclock"
)

// now returns the event timestamp from the configured or the process-wide clock
func (l *Logger) now() time.Time {
	if l.clock != nil {
		return l.clock.Now()
	}
	return xclock.Now()
}

// log handles the core logging logic: gate, format, broadcast
func (l *Logger) log(level LogLevel, template string, args []any) error {
	if !l.IsLevelEnabled(level) {
		return nil
	}

	msg, err := formatter.Sprintf(template, args...)
	if err != nil {
		l.internalLog("failed to format %s message: %v", level, err)
		return fmtErrorf("failed to format %s message: %w", level, err)
	}

	return l.broadcast(level, msg)
}

// broadcast stamps the message and hands it to the dispatcher
func (l *Logger) broadcast(level LogLevel, msg string) error {
	if l.closed.Load() {
		return ErrClosed
	}

	ev := Event{
		Time:      l.now(),
		Level:     level,
		Message:   msg,
		Goroutine: goroutineID(),
	}

	if err := l.dispatcher.Broadcast(ev); err != nil {
		l.internalLog("delivery failed: %v", err)
		return err
	}
	return nil
}

// internalLog handles writing internal logger diagnostics to stderr, if enabled.
func (l *Logger) internalLog(format string, args ...any) {
	internalLog(l.getConfig().InternalErrorsToStderr, format, args...)
}
