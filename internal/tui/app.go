// Package tui runs the application loop: it owns the terminal, drains the
// action bus and dispatches every action to the component tree.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/matheus3301/papirus/internal/action"
	"github.com/matheus3301/papirus/internal/bus"
	"github.com/matheus3301/papirus/internal/config"
	"github.com/matheus3301/papirus/internal/event"
	"github.com/matheus3301/papirus/internal/status"
	"github.com/matheus3301/papirus/internal/tui/ui"
)

// Stats counts what the loop processed.
type Stats struct {
	Actions uint64
	Ticks   uint64
	Renders uint64
	Dropped uint64
}

// App is the main TUI application loop.
type App struct {
	screen  tcell.Screen
	root    ui.Component
	bus     *bus.Bus
	machine *status.Machine
	cfg     *config.Config
	logger  *zap.Logger

	source         *event.Source
	suspendProcess func() error

	// Owned by the loop goroutine.
	width, height int
	layoutDirty   bool
	initialized   bool

	actions atomic.Uint64
	ticks   atomic.Uint64
	renders atomic.Uint64

	mu       sync.Mutex
	cancel   context.CancelFunc
	stopped  bool
	done     chan struct{}
	finiOnce sync.Once
}

// NewApp creates the application loop around root.
func NewApp(screen tcell.Screen, root ui.Component, b *bus.Bus, machine *status.Machine, cfg *config.Config, logger *zap.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		screen:         screen,
		root:           root,
		bus:            b,
		machine:        machine,
		cfg:            cfg,
		logger:         logger,
		suspendProcess: suspendProcess,
		done:           make(chan struct{}),
	}
}

// Stats returns a snapshot of the loop counters. Safe from any goroutine.
func (a *App) Stats() Stats {
	return Stats{
		Actions: a.actions.Load(),
		Ticks:   a.ticks.Load(),
		Renders: a.renders.Load(),
		Dropped: a.bus.Dropped(),
	}
}

// Done is closed once Run has returned.
func (a *App) Done() <-chan struct{} {
	return a.done
}

// Run initializes the terminal, then processes actions until Quit, a fatal
// terminal error or ctx cancellation. The terminal is restored on every
// exit path, panics included.
func (a *App) Run(ctx context.Context) (err error) {
	defer close(a.done)

	ctx, cancel := context.WithCancel(ctx)
	a.mu.Lock()
	if a.stopped {
		cancel()
	}
	a.cancel = cancel
	a.mu.Unlock()
	defer cancel()

	defer func() {
		r := recover()
		err = multierr.Append(err, a.teardown())
		if r != nil {
			a.logger.Error("panic in application loop", zap.Any("panic", r), zap.Stack("stack"))
			panic(r)
		}
	}()

	if err := a.setup(); err != nil {
		return err
	}

	a.source = event.NewSource(a.screen, a.bus, a.cfg.TickInterval(), a.cfg.FrameInterval(), a.logger)
	a.source.Start(ctx)

	for !a.machine.Is(status.Exiting) {
		act, err := a.bus.Recv(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, bus.ErrClosed) {
				a.logger.Info("application loop stopping", zap.Error(err))
				break
			}
			return err
		}
		if err := a.dispatch(act); err != nil {
			return err
		}
	}
	return nil
}

// Stop asks a running loop to exit. Safe from any goroutine.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	if a.cancel != nil {
		a.cancel()
	}
}

// setup initializes the terminal and the component tree and draws the first
// frame.
func (a *App) setup() error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	a.initialized = true
	a.screen.EnableMouse()
	a.screen.HideCursor()
	a.screen.Clear()
	a.width, a.height = a.screen.Size()

	err := ui.Walk(a.root, func(c ui.Component) error {
		if err := c.RegisterActionSender(a.bus); err != nil {
			return fmt.Errorf("register action sender: %w", err)
		}
		if err := c.RegisterConfig(a.cfg); err != nil {
			return fmt.Errorf("register config: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := a.machine.Transition(status.Running); err != nil {
		return err
	}
	a.draw()
	a.logger.Info("application loop started",
		zap.Int("width", a.width),
		zap.Int("height", a.height),
		zap.Duration("tick", a.cfg.TickInterval()),
		zap.Duration("frame", a.cfg.FrameInterval()),
	)
	return nil
}

// dispatch handles one action. Only terminal I/O failures are returned;
// component errors are logged and the loop continues.
func (a *App) dispatch(act action.Action) error {
	a.actions.Add(1)

	switch v := act.(type) {
	case action.Key:
		a.route(a.root.HandleKeyEvent(v.Event))
		return nil
	case action.Mouse:
		// Regions must reflect the current layout before hit testing.
		if a.layoutDirty {
			a.draw()
		}
		a.route(a.root.HandleMouseEvent(v.Event))
		return nil
	case action.Quit:
		if err := a.machine.Transition(status.Exiting); err != nil {
			a.logger.Warn("quit", zap.Error(err))
		}
		return nil
	case action.Suspend:
		return a.suspend()
	case action.Resume:
		return a.resume()
	case action.ClearScreen:
		a.screen.Clear()
		a.screen.Sync()
		a.draw()
	case action.Resize:
		a.width, a.height = v.Width, v.Height
		a.layoutDirty = true
		a.screen.Sync()
		a.draw()
	case action.Tick:
		a.ticks.Add(1)
	case action.Render:
		a.renders.Add(1)
	}

	a.broadcast(act)
	if _, ok := act.(action.Render); ok {
		a.draw()
	}
	return nil
}

// broadcast delivers act to every component, root first.
func (a *App) broadcast(act action.Action) {
	_ = ui.Walk(a.root, func(c ui.Component) error {
		a.route(c.Update(act))
		return nil
	})
}

// route queues a component's follow-up action.
func (a *App) route(next action.Action, err error) {
	if err != nil {
		a.logger.Warn("component error", zap.Error(err))
	}
	if next != nil {
		a.bus.Send(next)
	}
}

func (a *App) draw() {
	if a.machine.Is(status.Suspended) {
		return
	}
	a.screen.HideCursor()
	if err := a.root.Draw(a.screen, ui.Rect{Width: a.width, Height: a.height}); err != nil {
		a.logger.Warn("draw", zap.Error(err))
	}
	a.screen.Show()
	a.layoutDirty = false
}

func (a *App) suspend() error {
	if err := a.machine.Transition(status.Suspended); err != nil {
		a.logger.Debug("suspend ignored", zap.Error(err))
		return nil
	}
	if err := a.screen.Suspend(); err != nil {
		return fmt.Errorf("suspend terminal: %w", err)
	}
	if err := a.suspendProcess(); err != nil {
		a.logger.Warn("stop process", zap.Error(err))
	}
	// Execution continues here once the shell resumes us.
	a.bus.Send(action.Resume{})
	return nil
}

func (a *App) resume() error {
	if err := a.machine.Transition(status.Running); err != nil {
		a.logger.Debug("resume ignored", zap.Error(err))
		return nil
	}
	if err := a.screen.Resume(); err != nil {
		return fmt.Errorf("resume terminal: %w", err)
	}
	a.width, a.height = a.screen.Size()
	a.layoutDirty = true
	a.bus.Send(action.ClearScreen{})
	return nil
}

// teardown stops the event source, drops pending actions and restores the
// terminal. It runs once per App.
func (a *App) teardown() error {
	var err error
	a.finiOnce.Do(func() {
		if !a.machine.Is(status.Exiting) {
			if terr := a.machine.Transition(status.Exiting); terr != nil {
				a.logger.Debug("teardown", zap.Error(terr))
			}
		}
		if a.source != nil {
			a.source.Stop()
		}
		a.bus.Close()
		if pending := a.bus.Drain(); len(pending) > 0 {
			a.logger.Debug("dropped pending actions", zap.Int("count", len(pending)))
		}
		if a.initialized {
			a.screen.Fini()
		}
		if a.source != nil {
			err = multierr.Append(err, a.source.Wait())
		}
		a.logger.Info("application loop stopped",
			zap.Uint64("actions", a.actions.Load()),
			zap.Uint64("dropped", a.bus.Dropped()),
		)
	})
	return err
}
