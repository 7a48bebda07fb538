// Package event turns terminal input and the tick/render clocks into actions.
package event

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matheus3301/papirus/internal/action"
	"github.com/matheus3301/papirus/internal/bus"
)

const primaryButtons = tcell.Button1 | tcell.Button2 | tcell.Button3

// Source merges terminal events with two periodic timers into one stream.
type Source struct {
	screen tcell.Screen
	sender bus.Sender
	tick   time.Duration
	frame  time.Duration
	logger *zap.Logger

	cancel context.CancelFunc
	group  *errgroup.Group

	// Owned by the poll goroutine.
	buttons tcell.ButtonMask
}

// NewSource creates a source emitting Tick every tick and Render every frame.
func NewSource(screen tcell.Screen, sender bus.Sender, tick, frame time.Duration, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{
		screen: screen,
		sender: sender,
		tick:   tick,
		frame:  frame,
		logger: logger,
	}
}

// Start launches the poll loop and both timers.
func (s *Source) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	s.group = g

	g.Go(func() error { return s.poll(ctx) })
	g.Go(func() error { return s.pump(ctx, s.tick, action.Tick{}) })
	g.Go(func() error { return s.pump(ctx, s.frame, action.Render{}) })
}

// Stop cancels the timers. The poll loop exits once the screen is finalized.
func (s *Source) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Wait blocks until every goroutine has returned.
func (s *Source) Wait() error {
	if s.group == nil {
		return nil
	}
	return s.group.Wait()
}

func (s *Source) pump(ctx context.Context, interval time.Duration, a action.Action) error {
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sender.Send(a)
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *Source) poll(ctx context.Context) error {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			s.logger.Debug("event source: screen finalized")
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		if a := s.Translate(ev); a != nil {
			s.sender.Send(a)
		}
	}
}

// Translate maps a tcell event onto an action. Unknown events yield nil.
func (s *Source) Translate(ev tcell.Event) action.Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return action.Key{Event: ev}
	case *tcell.EventMouse:
		return action.Mouse{Event: s.translateMouse(ev)}
	case *tcell.EventResize:
		w, h := ev.Size()
		return action.Resize{Width: w, Height: h}
	case *tcell.EventInterrupt:
		if a, ok := ev.Data().(action.Action); ok {
			return a
		}
	}
	return nil
}

// translateMouse derives Down/Up from button transitions since tcell only
// reports the current button state.
func (s *Source) translateMouse(ev *tcell.EventMouse) action.MouseEvent {
	x, y := ev.Position()
	btns := ev.Buttons()
	me := action.MouseEvent{X: x, Y: y}

	switch {
	case btns&tcell.WheelUp != 0:
		me.Kind = action.MouseWheelUp
		return me
	case btns&tcell.WheelDown != 0:
		me.Kind = action.MouseWheelDown
		return me
	}

	pressed := btns & primaryButtons
	switch {
	case pressed != 0 && s.buttons == 0:
		me.Kind = action.MouseDown
		me.Button = buttonIndex(pressed)
	case pressed != 0:
		me.Kind = action.MouseDrag
		me.Button = buttonIndex(pressed)
	case s.buttons != 0:
		me.Kind = action.MouseUp
		me.Button = buttonIndex(s.buttons)
	default:
		me.Kind = action.MouseMove
	}
	s.buttons = pressed
	return me
}

func buttonIndex(m tcell.ButtonMask) int {
	switch {
	case m&tcell.Button1 != 0:
		return 1
	case m&tcell.Button2 != 0:
		return 2
	case m&tcell.Button3 != 0:
		return 3
	default:
		return 0
	}
}
