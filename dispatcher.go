// FILE: lixenwraith/ulog/dispatcher.go
package ulog

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Dispatcher fans events out to its connected sinks in connection order.
//
// Reads go through an immutable snapshot of the slot list, so no lock is held while a
// sink runs and a sink may log, connect or disconnect from inside Receive.
type Dispatcher struct {
	slotMu sync.Mutex   // serializes slot list mutation
	slots  atomic.Value // []Sink, never modified after Store

	threadMu sync.Mutex
	threads  map[int64]int
	owners   []int64 // owners[i] holds the goroutine with index i+1
	wrap     int     // next index to recycle once the table is full
}

// NewDispatcher creates a dispatcher with no sinks
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{threads: make(map[int64]int)}
	d.slots.Store([]Sink(nil))
	return d
}

func (d *Dispatcher) snapshot() []Sink {
	return d.slots.Load().([]Sink)
}

// Connect appends s to the slot list.
// Panics with *InvariantError if s is nil or already connected to any dispatcher.
func (d *Dispatcher) Connect(s Sink) {
	if s == nil {
		invariantPanic("Connect", "nil sink")
	}

	d.slotMu.Lock()
	defer d.slotMu.Unlock()

	b := s.base()
	if owner := b.Dispatcher(); owner != nil {
		if owner == d {
			invariantPanic("Connect", "sink already connected to this dispatcher")
		}
		invariantPanic("Connect", "sink connected to another dispatcher")
	}
	if !b.attach(d) {
		invariantPanic("Connect", "sink connected concurrently elsewhere")
	}

	cur := d.snapshot()
	next := make([]Sink, len(cur), len(cur)+1)
	copy(next, cur)
	d.slots.Store(append(next, s))
}

// Disconnect removes s from the slot list.
// Panics with *InvariantError if s is not connected to this dispatcher.
func (d *Dispatcher) Disconnect(s Sink) {
	if s == nil {
		invariantPanic("Disconnect", "nil sink")
	}
	if !d.disconnectBase(s.base()) {
		invariantPanic("Disconnect", "sink not connected to this dispatcher")
	}
}

// disconnectBase removes the sink owning b; reports whether it was connected here
func (d *Dispatcher) disconnectBase(b *SinkBase) bool {
	d.slotMu.Lock()
	defer d.slotMu.Unlock()

	if !b.detach(d) {
		return false
	}

	cur := d.snapshot()
	next := make([]Sink, 0, len(cur))
	for _, s := range cur {
		if s.base() != b {
			next = append(next, s)
		}
	}
	d.slots.Store(next)
	return true
}

// Close disconnects every sink, most recently connected first. Sinks are not closed.
func (d *Dispatcher) Close() {
	sinks := d.snapshot()
	for i := len(sinks) - 1; i >= 0; i-- {
		d.disconnectBase(sinks[i].base())
	}
}

// Len returns the number of connected sinks
func (d *Dispatcher) Len() int {
	return len(d.snapshot())
}

// Sinks returns the connected sinks in delivery order
func (d *Dispatcher) Sinks() []Sink {
	cur := d.snapshot()
	out := make([]Sink, len(cur))
	copy(out, cur)
	return out
}

// ThreadIndex returns the small 1-based index of goroutine gid, assigning the next
// free index on first sight. The table remembers at most maxThreadIndices goroutines;
// past that, indices wrap and the goroutine seen longest ago loses its index.
func (d *Dispatcher) ThreadIndex(gid int64) int {
	d.threadMu.Lock()
	defer d.threadMu.Unlock()

	if idx, ok := d.threads[gid]; ok {
		return idx
	}

	if len(d.owners) < maxThreadIndices {
		d.owners = append(d.owners, gid)
		idx := len(d.owners)
		d.threads[gid] = idx
		return idx
	}

	slot := d.wrap
	d.wrap = (d.wrap + 1) % maxThreadIndices
	delete(d.threads, d.owners[slot])
	d.owners[slot] = gid
	d.threads[gid] = slot + 1
	return slot + 1
}

// Broadcast delivers ev to every connected sink in connection order on the calling
// goroutine. A failing or panicking sink does not stop delivery to later sinks; the
// failures are returned joined as *DeliveryError values.
func (d *Dispatcher) Broadcast(ev Event) error {
	if ev.Goroutine == 0 {
		ev.Goroutine = goroutineID()
	}
	if ev.Thread == 0 {
		ev.Thread = d.ThreadIndex(ev.Goroutine)
	}

	var errs []error
	for _, s := range d.snapshot() {
		// Skip sinks disconnected after the snapshot was taken
		if s.base().Dispatcher() != d {
			continue
		}
		if err := deliver(s, ev); err != nil {
			errs = append(errs, &DeliveryError{Sink: s, Level: ev.Level, Err: err})
		}
	}
	return errors.Join(errs...)
}

// ClearAll asks every connected sink implementing Clearer to discard its output
func (d *Dispatcher) ClearAll() error {
	var errs []error
	for _, s := range d.snapshot() {
		c, ok := s.(Clearer)
		if !ok {
			continue
		}
		if err := c.Clear(); err != nil {
			errs = append(errs, fmtErrorf("failed to clear sink %T: %w", s, err))
		}
	}
	return errors.Join(errs...)
}

func deliver(s Sink, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Receive(ev)
}
