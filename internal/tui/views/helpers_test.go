package views

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/matheus3301/papirus/internal/action"
	"github.com/matheus3301/papirus/internal/bus"
	"github.com/matheus3301/papirus/internal/config"
	"github.com/matheus3301/papirus/internal/transport"
	"github.com/matheus3301/papirus/internal/tui/keys"
	"github.com/matheus3301/papirus/internal/tui/ui"
)

type fakeTransport struct {
	mu     sync.Mutex
	reqs   []transport.Request
	delay  time.Duration
	resp   *transport.Response
	err    error
	called chan transport.Request
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		resp: &transport.Response{
			Status:     200,
			StatusText: "OK",
			Headers:    http.Header{"Content-Type": []string{"application/json"}},
			Body:       `{"ok":true}`,
		},
		called: make(chan transport.Request, 16),
	}
}

func (f *fakeTransport) Do(ctx context.Context, req transport.Request) (*transport.Response, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	f.called <- req

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeTransport) Get(ctx context.Context, url string, header http.Header) (*transport.Response, error) {
	return f.Do(ctx, transport.Request{Method: http.MethodGet, URL: url, Headers: header})
}

func (f *fakeTransport) Post(ctx context.Context, url string, payload []byte, header http.Header) (*transport.Response, error) {
	return f.Do(ctx, transport.Request{Method: http.MethodPost, URL: url, Headers: header, Body: string(payload)})
}

func (f *fakeTransport) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

func testKeys(t *testing.T) *keys.Registry {
	t.Helper()
	reg, err := keys.FromConfig(config.Default().Keybindings)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	return reg
}

// newTestHome builds a tree wired to a fresh bus, the way the loop does.
func newTestHome(t *testing.T, tr transport.Transport) (*Home, *bus.Bus) {
	t.Helper()
	if tr == nil {
		tr = newFakeTransport()
	}
	h := NewHome(Deps{
		Keys:      testKeys(t),
		Transport: tr,
		Clipboard: func(string) error { return nil },
		Logger:    zap.NewNop(),
	})
	b := bus.New(0)
	err := ui.Walk(h, func(c ui.Component) error {
		if err := c.RegisterActionSender(b); err != nil {
			return err
		}
		return c.RegisterConfig(config.Default())
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return h, b
}

// broadcast delivers a to every component and returns what they emitted.
func broadcast(t *testing.T, root ui.Component, a action.Action) []action.Action {
	t.Helper()
	var out []action.Action
	err := ui.Walk(root, func(c ui.Component) error {
		next, err := c.Update(a)
		if next != nil {
			out = append(out, next)
		}
		return err
	})
	if err != nil {
		t.Fatalf("update %T: %v", a, err)
	}
	return out
}

// settle broadcasts a and everything it produces until nothing is left.
func settle(t *testing.T, root ui.Component, a action.Action) {
	t.Helper()
	queue := []action.Action{a}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		queue = append(queue, broadcast(t, root, next)...)
	}
}

// press routes a key through root and settles the resulting action.
func press(t *testing.T, root ui.Component, ev *tcell.EventKey) action.Action {
	t.Helper()
	a, err := root.HandleKeyEvent(ev)
	if err != nil {
		t.Fatalf("HandleKeyEvent: %v", err)
	}
	if a != nil {
		settle(t, root, a)
	}
	return a
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(t *testing.T, root ui.Component, s string) {
	t.Helper()
	for _, r := range s {
		press(t, root, runeKey(r))
	}
}

func click(x, y int) action.MouseEvent {
	return action.MouseEvent{X: x, Y: y, Kind: action.MouseDown, Button: 1}
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func draw(t *testing.T, root ui.Component, s tcell.Screen, w, h int) {
	t.Helper()
	if err := root.Draw(s, ui.Rect{Width: w, Height: h}); err != nil {
		t.Fatalf("draw: %v", err)
	}
}

func recv(t *testing.T, b *bus.Bus) action.Action {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	a, err := b.Recv(ctx)
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	return a
}
