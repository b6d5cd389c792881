// FILE: lixenwraith/ulog/sink_memory.go
package ulog

import (
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
)

var memoryDumper = &spew.ConfigState{
	Indent:                  "  ",
	MaxDepth:                4,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// MemorySink keeps rendered lines in memory. It is meant for consumers bound to one
// goroutine, such as a UI event loop: with a poster installed, events produced elsewhere
// are appended only when the poster runs the deferred work on the home goroutine.
type MemorySink struct {
	SinkBase

	mu     sync.Mutex
	r      lineRenderer
	lines  []string
	max    int // 0 keeps every line
	closed bool
}

func newMemorySink(o *sinkOptions) *MemorySink {
	return &MemorySink{
		r:   o.renderer(),
		max: o.maxLines,
	}
}

// Receive renders ev and appends it, deferring through the poster when off home
func (s *MemorySink) Receive(ev Event) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return fmtErrorf("write to closed memory sink")
	}

	offHome := !s.OnHome(ev)
	s.Run(ev, func() {
		s.append(ev, offHome)
	})
	return nil
}

func (s *MemorySink) append(ev Event, offHome bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if n := s.r.separator(ev.Time); n > 0 {
		s.push(strings.Repeat("-", n))
	}
	s.push(string(s.r.appendLine(make([]byte, 0, lineBufferSize), ev, offHome)))
}

// push appends one line, dropping the oldest when over capacity; caller holds mu
func (s *MemorySink) push(line string) {
	s.lines = append(s.lines, line)
	if s.max > 0 && len(s.lines) > s.max {
		drop := len(s.lines) - s.max
		copy(s.lines, s.lines[drop:])
		s.lines = s.lines[:s.max]
	}
}

// Lines returns a copy of the stored lines, oldest first, without newlines
func (s *MemorySink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of stored lines
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Clear discards every stored line
func (s *MemorySink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.r.reset()
	return nil
}

// Dump returns a debug rendering of the sink's state
func (s *MemorySink) Dump() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryDumper.Sdump(struct {
		Connected bool
		Home      int64
		Closed    bool
		Max       int
		Lines     []string
	}{
		Connected: s.Connected(),
		Home:      s.Home(),
		Closed:    s.closed,
		Max:       s.max,
		Lines:     s.lines,
	})
}

// Close disconnects the sink; stored lines remain readable
func (s *MemorySink) Close() error {
	s.DisconnectSelf()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
