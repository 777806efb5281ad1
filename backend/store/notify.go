package store

import (
	"sync"

	"github.com/rs/zerolog"
)

// Listener is called after a mutating store operation commits.
type Listener func()

type subscription struct {
	id uint64
	fn Listener
}

// Notifier fans change events out to listeners on its own goroutine, so
// Notify never waits for a listener. Events are delivered one at a time,
// each to a snapshot of the listeners taken when the event is dispatched,
// in registration order.
type Notifier struct {
	log zerolog.Logger

	mu      sync.Mutex
	idle    *sync.Cond
	subs    []subscription
	nextID  uint64
	pending int
	closed  bool

	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

func NewNotifier(log zerolog.Logger) *Notifier {
	n := &Notifier{
		log:     log,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	n.idle = sync.NewCond(&n.mu)
	go n.run()
	return n
}

// Subscribe registers fn and returns a function that removes it. The
// returned function is safe to call more than once and from inside a
// listener.
func (n *Notifier) Subscribe(fn Listener) func() {
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, fn: fn})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(id) })
	}
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, s := range n.subs {
		if s.id == id {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			return
		}
	}
}

// Notify queues one change event.
func (n *Notifier) Notify() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.pending++
	n.mu.Unlock()

	select {
	case n.wake <- struct{}{}:
	default:
	}
}

// Wait blocks until every queued event has been delivered. Listeners must
// not call it: the event being delivered stays pending until they return,
// so Wait would never wake. Notify from a listener is fine.
func (n *Notifier) Wait() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for n.pending > 0 {
		n.idle.Wait()
	}
}

// Close delivers the events already queued and stops the dispatcher.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		<-n.stopped
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	<-n.stopped
}

func (n *Notifier) run() {
	defer close(n.stopped)
	for {
		select {
		case <-n.wake:
			n.drain()
		case <-n.done:
			n.drain()
			return
		}
	}
}

func (n *Notifier) drain() {
	for {
		n.mu.Lock()
		if n.pending == 0 {
			n.idle.Broadcast()
			n.mu.Unlock()
			return
		}
		snapshot := make([]Listener, len(n.subs))
		for i, s := range n.subs {
			snapshot[i] = s.fn
		}
		n.mu.Unlock()

		for _, fn := range snapshot {
			n.call(fn)
		}

		n.mu.Lock()
		n.pending--
		n.mu.Unlock()
	}
}

func (n *Notifier) call(fn Listener) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error().Interface("panic", r).Msg("store listener panicked")
		}
	}()
	fn()
}
