package bus

import (
	"context"
	"errors"
	"sync"

	"github.com/matheus3301/papirus/internal/action"
)

// ErrClosed is returned by Recv once the bus is closed and drained.
var ErrClosed = errors.New("bus closed")

// Sender is the handle components use to inject actions.
type Sender interface {
	Send(a action.Action) bool
}

// Bus is an ordered multi-producer single-consumer action queue.
// Send never blocks. With a positive limit, only coalescable actions
// (Tick, Render) are dropped once the queue is full.
type Bus struct {
	mu      sync.Mutex
	queue   []action.Action
	notify  chan struct{}
	limit   int
	dropped uint64
	closed  bool
}

// New creates a bus. limit <= 0 means unbounded.
func New(limit int) *Bus {
	return &Bus{
		notify: make(chan struct{}, 1),
		limit:  limit,
	}
}

// Send enqueues a. Returns false if the action was dropped.
func (b *Bus) Send(a action.Action) bool {
	if a == nil {
		return false
	}
	b.mu.Lock()
	if b.closed {
		b.dropped++
		b.mu.Unlock()
		return false
	}
	if b.limit > 0 && len(b.queue) >= b.limit && action.Coalescable(a) {
		b.dropped++
		b.mu.Unlock()
		return false
	}
	b.queue = append(b.queue, a)
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
		// Consumer already signalled.
	}
	return true
}

// Recv blocks until an action is available, the context is done, or the
// bus is closed and empty.
func (b *Bus) Recv(ctx context.Context) (action.Action, error) {
	for {
		b.mu.Lock()
		a, ok := b.pop()
		closed := b.closed
		b.mu.Unlock()
		if ok {
			return a, nil
		}
		if closed {
			return nil, ErrClosed
		}

		select {
		case <-b.notify:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (b *Bus) pop() (action.Action, bool) {
	if len(b.queue) == 0 {
		return nil, false
	}
	a := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]
	if len(b.queue) == 0 {
		b.queue = nil
	}
	return a, true
}

// Close stops accepting actions and wakes the consumer. Queued actions
// can still be drained.
func (b *Bus) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// Drain removes and returns every queued action.
func (b *Bus) Drain() []action.Action {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.queue
	b.queue = nil
	return out
}

// Len returns the number of queued actions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Dropped returns how many actions were refused so far.
func (b *Bus) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
