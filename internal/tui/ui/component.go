package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/matheus3301/papirus/internal/action"
	"github.com/matheus3301/papirus/internal/bus"
	"github.com/matheus3301/papirus/internal/config"
)

// MenuHint describes a keyboard shortcut for display in the status bar.
type MenuHint struct {
	Key         string
	Description string
}

// Component is the capability set shared by every node of the UI tree.
//
// All methods are called from the application loop goroutine only.
// HandleKeyEvent and HandleMouseEvent return a nil action when the event is
// not meaningful to the component. Draw must not block, perform I/O or change
// input routing state other than recording clickable regions.
type Component interface {
	RegisterActionSender(sender bus.Sender) error
	RegisterConfig(cfg *config.Config) error
	HandleKeyEvent(ev *tcell.EventKey) (action.Action, error)
	HandleMouseEvent(ev action.MouseEvent) (action.Action, error)
	Update(a action.Action) (action.Action, error)
	Draw(screen tcell.Screen, area Rect) error
}

// Container is implemented by components that own children.
type Container interface {
	Children() []Component
}

// Walk visits c and its descendants in pre-order (root to leaf).
func Walk(c Component, fn func(Component) error) error {
	if c == nil {
		return nil
	}
	if err := fn(c); err != nil {
		return err
	}
	if parent, ok := c.(Container); ok {
		for _, child := range parent.Children() {
			if err := Walk(child, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Base carries the bookkeeping every component needs. Embed it and override
// what the component cares about.
type Base struct {
	sender bus.Sender
	cfg    *config.Config
}

// RegisterActionSender implements Component. Last write wins.
func (b *Base) RegisterActionSender(sender bus.Sender) error {
	b.sender = sender
	return nil
}

// RegisterConfig implements Component.
func (b *Base) RegisterConfig(cfg *config.Config) error {
	b.cfg = cfg
	return nil
}

// HandleKeyEvent implements Component.
func (b *Base) HandleKeyEvent(*tcell.EventKey) (action.Action, error) { return nil, nil }

// HandleMouseEvent implements Component.
func (b *Base) HandleMouseEvent(action.MouseEvent) (action.Action, error) { return nil, nil }

// Update implements Component.
func (b *Base) Update(action.Action) (action.Action, error) { return nil, nil }

// Send emits a through the registered sender. Reports false when no sender
// is registered or the bus refused the action.
func (b *Base) Send(a action.Action) bool {
	if b.sender == nil {
		return false
	}
	return b.sender.Send(a)
}

// Sender returns the registered sender, or nil.
func (b *Base) Sender() bus.Sender {
	return b.sender
}

// Config returns the registered config, or the defaults.
func (b *Base) Config() *config.Config {
	if b.cfg == nil {
		b.cfg = config.Default()
	}
	return b.cfg
}
