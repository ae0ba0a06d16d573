package events

import (
	"sync"
	"time"
)

// Handler processes events delivered by the bus
type Handler func(Event)

// Bus provides event distribution across components.
// Handlers run sequentially on a single dispatch goroutine in the order
// events were emitted.
type Bus struct {
	Capacity int

	mu       sync.RWMutex
	handlers []Handler
	events   chan Event
	done     chan struct{}
	closed   bool
	dropped  int
}

// NewBus creates a new event bus with the specified capacity
func NewBus(capacity int) *Bus {
	b := &Bus{
		Capacity: capacity,
		events:   make(chan Event, capacity),
		done:     make(chan struct{}),
	}
	go b.dispatch()
	return b
}

// Subscribe registers a handler for all subsequent events
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Emit queues an event. It never blocks; when the buffer is full the event
// is dropped and counted.
func (b *Bus) Emit(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.events <- e:
	default:
		b.dropped++
	}
}

// Dropped returns how many events were discarded because the buffer was full
func (b *Bus) Dropped() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped
}

// Close stops accepting events, drains the buffer and waits for handlers
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		<-b.done
		return nil
	}
	b.closed = true
	close(b.events)
	b.mu.Unlock()

	<-b.done
	return nil
}

func (b *Bus) dispatch() {
	defer close(b.done)
	for e := range b.events {
		b.mu.RLock()
		handlers := make([]Handler, len(b.handlers))
		copy(handlers, b.handlers)
		b.mu.RUnlock()

		for _, h := range handlers {
			h(e)
		}
	}
}
