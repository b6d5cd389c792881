// FILE: lixenwraith/ulog/state.go
package ulog

import "sync/atomic"

// active is the process-wide logger used by the package-level functions
var active atomic.Pointer[Logger]

// Activate installs l as the process-wide logger. It fails with ErrAlreadyActive while
// another logger is active and with ErrClosed on a closed logger. Re-activating the
// active logger is a no-op.
func (l *Logger) Activate() error {
	if l.closed.Load() {
		return ErrClosed
	}
	if active.CompareAndSwap(nil, l) {
		return nil
	}
	if active.Load() == l {
		return nil
	}
	return ErrAlreadyActive
}

// Deactivate removes l as the process-wide logger if it is the active one
func (l *Logger) Deactivate() {
	l.deactivate()
}

// IsActive reports whether l is the process-wide logger
func (l *Logger) IsActive() bool {
	return active.Load() == l
}

func (l *Logger) deactivate() {
	active.CompareAndSwap(l, nil)
}

// Active returns the process-wide logger, or nil
func Active() *Logger {
	return active.Load()
}
