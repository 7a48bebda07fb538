package bus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matheus3301/papirus/internal/action"
)

func TestSendRecvOrder(t *testing.T) {
	b := New(0)
	b.Send(action.Tick{})
	b.Send(action.Quit{})
	b.Send(action.Resize{Width: 10, Height: 5})

	ctx := context.Background()
	want := []action.Action{action.Tick{}, action.Quit{}, action.Resize{Width: 10, Height: 5}}
	for i, w := range want {
		got, err := b.Recv(ctx)
		if err != nil {
			t.Fatalf("Recv() #%d error = %v", i, err)
		}
		if got != w {
			t.Errorf("Recv() #%d = %#v, want %#v", i, got, w)
		}
	}
}

func TestRecvBlocksUntilSend(t *testing.T) {
	b := New(0)
	got := make(chan action.Action, 1)
	go func() {
		a, err := b.Recv(context.Background())
		if err == nil {
			got <- a
		}
	}()

	select {
	case a := <-got:
		t.Fatalf("Recv returned early with %#v", a)
	case <-time.After(50 * time.Millisecond):
	}

	b.Send(action.Render{})
	select {
	case a := <-got:
		if _, ok := a.(action.Render); !ok {
			t.Errorf("got %T, want action.Render", a)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for Recv")
	}
}

func TestRecvContextCancel(t *testing.T) {
	b := New(0)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := b.Recv(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Recv() error = %v, want deadline exceeded", err)
	}
}

func TestPerProducerFIFO(t *testing.T) {
	b := New(0)
	const producers, perProducer = 4, 500

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				b.Send(action.SelectTab{Tab: p*perProducer + i})
			}
		}(p)
	}
	wg.Wait()

	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}
	got := b.Drain()
	if len(got) != producers*perProducer {
		t.Fatalf("drained %d actions, want %d", len(got), producers*perProducer)
	}
	for _, a := range got {
		v := a.(action.SelectTab).Tab
		p, seq := v/perProducer, v%perProducer
		if seq <= last[p] {
			t.Fatalf("producer %d out of order: %d after %d", p, seq, last[p])
		}
		last[p] = seq
	}
}

func TestLimitDropsOnlyCoalescable(t *testing.T) {
	b := New(2)
	b.Send(action.Tick{})
	b.Send(action.Tick{})

	if b.Send(action.Render{}) {
		t.Error("Render should be dropped when full")
	}
	if b.Send(action.Tick{}) {
		t.Error("Tick should be dropped when full")
	}
	if !b.Send(action.Quit{}) {
		t.Error("Quit must never be dropped")
	}
	if !b.Send(action.Key{}) {
		t.Error("Key must never be dropped")
	}
	if b.Len() != 4 {
		t.Errorf("Len() = %d, want 4", b.Len())
	}
	if b.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", b.Dropped())
	}
}

func TestClose(t *testing.T) {
	b := New(0)
	b.Send(action.Tick{})
	b.Close()

	if b.Send(action.Quit{}) {
		t.Error("Send after Close should report false")
	}
	if _, err := b.Recv(context.Background()); err != nil {
		t.Fatalf("queued action lost after Close: %v", err)
	}
	if _, err := b.Recv(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Recv() error = %v, want ErrClosed", err)
	}
}

func TestDrain(t *testing.T) {
	b := New(0)
	b.Send(action.Tick{})
	b.Send(action.Render{})
	if got := b.Drain(); len(got) != 2 {
		t.Errorf("Drain() returned %d actions, want 2", len(got))
	}
	if b.Len() != 0 {
		t.Errorf("Len() after Drain = %d, want 0", b.Len())
	}
}
