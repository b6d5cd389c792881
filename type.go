// FILE: lixenwraith/ulog/type.go
package ulog

import (
	"strings"
	"time"
)

// Event is one delivered log record. It is immutable once broadcast.
type Event struct {
	Time      time.Time
	Level     LogLevel
	Message   string
	Goroutine int64 // producer goroutine id
	Thread    int   // small 1-based index of the producer, assigned by the dispatcher
}

// SinkKind selects a concrete sink implementation in NewSink
type SinkKind int

const (
	KindFile SinkKind = iota
	KindConsole
	KindRotating
	KindMemory
)

// String returns the configuration name of the kind
func (k SinkKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindConsole:
		return "console"
	case KindRotating:
		return "rotating"
	case KindMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// ParseSinkKind converts a configuration name to a SinkKind
func ParseSinkKind(s string) (SinkKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return KindFile, nil
	case "console", "stdout", "stderr":
		return KindConsole, nil
	case "rotating":
		return KindRotating, nil
	case "memory":
		return KindMemory, nil
	default:
		return 0, fmtErrorf("invalid sink kind: '%s' (use file, console, rotating, or memory)", s)
	}
}

// Clearer is implemented by sinks whose accumulated output can be discarded
type Clearer interface {
	Clear() error
}
