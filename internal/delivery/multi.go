package delivery

import (
	"context"
	"sync"
)

// Multi wraps multiple senders and fans out to all of them
type Multi struct {
	senders []Sender
}

// NewMulti creates a Multi sender that sends to all provided backends
func NewMulti(senders ...Sender) *Multi {
	return &Multi{senders: senders}
}

// Send delivers the message to all backends concurrently.
// Returns the first error encountered, but continues sending to all backends.
func (m *Multi) Send(ctx context.Context, msg Message) error {
	if len(m.senders) == 0 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, s := range m.senders {
		wg.Add(1)
		go func(s Sender) {
			defer wg.Done()
			if err := s.Send(ctx, msg); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(s)
	}

	wg.Wait()
	return firstErr
}

// Name returns "multi"
func (m *Multi) Name() string {
	return "multi"
}
