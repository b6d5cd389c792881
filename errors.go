// FILE: lixenwraith/ulog/errors.go
package ulog

import (
	"errors"
	"fmt"
)

// ErrAlreadyActive is returned by Activate when another logger is the active instance
var ErrAlreadyActive = errors.New("ulog: another logger is already active")

// ErrClosed is returned when logging through a closed logger
var ErrClosed = errors.New("ulog: logger is closed")

// InvariantError is the panic value for connect/disconnect misuse
type InvariantError struct {
	Op     string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("ulog: invariant violation in %s: %s", e.Op, e.Reason)
}

func invariantPanic(op, reason string) {
	panic(&InvariantError{Op: op, Reason: reason})
}

// DeliveryError reports one sink failing to receive an event
type DeliveryError struct {
	Sink  Sink
	Level LogLevel
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("ulog: sink %T failed to receive %s event: %v", e.Sink, e.Level, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
