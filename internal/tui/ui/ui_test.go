package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/matheus3301/papirus/internal/action"
	"github.com/matheus3301/papirus/internal/config"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}
	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false},
		{5, 5, false},
		{1, 3, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if !(Rect{Width: 0, Height: 3}).Empty() {
		t.Error("zero-width rect should be empty")
	}
}

func TestSplitVertical(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 80, Height: 24}
	got := r.SplitVertical(Length(2), Length(3), Fill(), Length(1))
	want := []Rect{
		{0, 0, 80, 2},
		{0, 2, 80, 3},
		{0, 5, 80, 18},
		{0, 23, 80, 1},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSplitHorizontalPercent(t *testing.T) {
	r := Rect{X: 0, Y: 5, Width: 81, Height: 10}
	got := r.SplitHorizontal(Percent(50), Percent(50))
	if got[0].Width+got[1].Width != 81 {
		t.Errorf("widths %d + %d != 81", got[0].Width, got[1].Width)
	}
	if got[1].X != got[0].Width {
		t.Errorf("second slot X = %d, want %d", got[1].X, got[0].Width)
	}
}

func TestSplitClampsToSpace(t *testing.T) {
	r := Rect{Width: 10, Height: 4}
	got := r.SplitVertical(Length(3), Length(3), Fill())
	if got[0].Height != 3 || got[1].Height != 1 || got[2].Height != 0 {
		t.Errorf("heights = %d %d %d, want 3 1 0", got[0].Height, got[1].Height, got[2].Height)
	}
}

func TestRegionsFirstRegisteredWins(t *testing.T) {
	var r Regions
	r.Register(Rect{X: 0, Y: 0, Width: 10, Height: 10}, action.ModeURL)
	r.Register(Rect{X: 5, Y: 5, Width: 10, Height: 10}, action.ModeRequest)
	r.Commit()

	if m, ok := r.Hit(6, 6); !ok || m != action.ModeURL {
		t.Errorf("Hit(6,6) = %v,%v; want url", m, ok)
	}
	if m, ok := r.Hit(12, 12); !ok || m != action.ModeRequest {
		t.Errorf("Hit(12,12) = %v,%v; want request", m, ok)
	}
	if _, ok := r.Hit(30, 30); ok {
		t.Error("Hit outside all regions should miss")
	}
	if !r.Valid() {
		t.Error("Valid() = false after Commit")
	}

	r.Reset()
	if _, ok := r.Hit(12, 12); ok || r.Valid() {
		t.Error("Reset() should clear regions and validity")
	}
}

func TestFlashExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFlashModel()
	f.now = func() time.Time { return now }

	f.Set("boom", action.LevelError)
	if m := f.Current(); m == nil || m.Text != "boom" || m.Level != action.LevelError {
		t.Fatalf("Current() = %+v", m)
	}
	if f.Expire() {
		t.Error("Expire() before deadline")
	}

	now = now.Add(11 * time.Second)
	if f.Current() != nil {
		t.Error("Current() should be nil after expiry")
	}
	if !f.Expire() {
		t.Error("Expire() should report clearing")
	}
	if f.Expire() {
		t.Error("Expire() twice should be a no-op")
	}
}

type node struct {
	Base
	name     string
	children []Component
}

func (n *node) Draw(tcell.Screen, Rect) error { return nil }
func (n *node) Children() []Component { return n.children }

func TestWalkPreOrder(t *testing.T) {
	leafA := &node{name: "a"}
	leafB := &node{name: "b"}
	mid := &node{name: "mid", children: []Component{leafA}}
	root := &node{name: "root", children: []Component{mid, leafB}}

	var order []string
	err := Walk(root, func(c Component) error {
		order = append(order, c.(*node).name)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"root", "mid", "a", "b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}

	stop := errors.New("stop")
	if err := Walk(root, func(Component) error { return stop }); !errors.Is(err, stop) {
		t.Errorf("Walk() error = %v, want stop", err)
	}
}

func TestBaseSendWithoutSender(t *testing.T) {
	var b Base
	if b.Send(action.Tick{}) {
		t.Error("Send() without sender should report false")
	}
	if b.Config() == nil {
		t.Error("Config() should fall back to defaults")
	}
	cfg := config.Default()
	_ = b.RegisterConfig(cfg)
	if b.Config() != cfg {
		t.Error("RegisterConfig() not retained")
	}
}

func TestNewThemeFallsBack(t *testing.T) {
	th := NewTheme(config.Theme{Border: "not-a-color", Title: "#ff0000"})
	if th.BorderColor != tcell.ColorDarkGray {
		t.Errorf("BorderColor = %v, want fallback", th.BorderColor)
	}
	if th.TitleColor.Hex() != 0xff0000 {
		t.Errorf("TitleColor = %06x, want ff0000", th.TitleColor.Hex())
	}
}

func TestPrintTextClips(t *testing.T) {
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(20, 2)

	n := PrintText(s, 0, 0, 3, "hello", tcell.StyleDefault)
	if n != 3 {
		t.Errorf("PrintText() wrote %d cells, want 3", n)
	}
	r, _, _, _ := s.GetContent(2, 0)
	if r != 'l' {
		t.Errorf("cell 2 = %q, want l", r)
	}
	r, _, _, _ = s.GetContent(3, 0)
	if r == 'l' {
		t.Error("text was not clipped at maxWidth")
	}
}
