// FILE: lixenwraith/ulog/interface.go
package ulog

import "sync"

// Sink consumes broadcast events. Implementations embed SinkBase, which supplies the
// unexported registration method and ties the sink to at most one Dispatcher.
//
// Receive is called synchronously on the producing goroutine and must be safe for
// concurrent use. Close releases the destination and disconnects the sink if needed.
type Sink interface {
	Receive(ev Event) error
	Close() error
	base() *SinkBase
}

// SinkBase holds the registration state shared by every sink
type SinkBase struct {
	mu         sync.Mutex
	dispatcher *Dispatcher
	home       int64 // 0 until SetHome or the first Connect
	poster     func(func())
}

func (b *SinkBase) base() *SinkBase {
	return b
}

// Dispatcher returns the dispatcher the sink is connected to, or nil
func (b *SinkBase) Dispatcher() *Dispatcher {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dispatcher
}

// Connected reports whether the sink is attached to a dispatcher
func (b *SinkBase) Connected() bool {
	return b.Dispatcher() != nil
}

// SetHome records the calling goroutine as the sink's home goroutine
func (b *SinkBase) SetHome() {
	id := goroutineID()
	b.mu.Lock()
	b.home = id
	b.mu.Unlock()
}

// Home returns the home goroutine id, 0 when none was recorded
func (b *SinkBase) Home() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.home
}

// SetPoster installs the hook used to defer work produced off the home goroutine.
// The poster must eventually run the function on the home goroutine.
func (b *SinkBase) SetPoster(poster func(func())) {
	b.mu.Lock()
	b.poster = poster
	b.mu.Unlock()
}

// OnHome reports whether the event was produced on the home goroutine
func (b *SinkBase) OnHome(ev Event) bool {
	home := b.Home()
	return home == 0 || ev.Goroutine == home
}

// Run executes fn inline for home events or when no poster is installed; otherwise
// fn is handed to the poster
func (b *SinkBase) Run(ev Event, fn func()) {
	b.mu.Lock()
	home, poster := b.home, b.poster
	b.mu.Unlock()

	if poster == nil || home == 0 || ev.Goroutine == home {
		fn()
		return
	}
	poster(fn)
}

// DisconnectSelf detaches the sink from its dispatcher; a no-op when not connected
func (b *SinkBase) DisconnectSelf() {
	if d := b.Dispatcher(); d != nil {
		d.disconnectBase(b)
	}
}

// attach binds the sink to d; the caller holds d's slot mutex
func (b *SinkBase) attach(d *Dispatcher) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dispatcher != nil {
		return false
	}
	b.dispatcher = d
	if b.home == 0 {
		b.home = goroutineID()
	}
	return true
}

// detach clears the back-reference if it still points at d
func (b *SinkBase) detach(d *Dispatcher) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dispatcher != d {
		return false
	}
	b.dispatcher = nil
	return true
}
