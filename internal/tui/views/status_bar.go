package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/matheus3301/papirus/internal/action"
	"github.com/matheus3301/papirus/internal/tui/keys"
	"github.com/matheus3301/papirus/internal/tui/ui"
)

// StatusBar displays the focused mode, the loop state and either the
// current flash message or the key hints of the focused mode.
type StatusBar struct {
	ui.Base
	view  *tview.TextView
	theme *ui.Theme
	keys  *keys.Registry
	flash *ui.FlashModel

	mode    action.Mode
	state   string
	pending string
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *ui.Theme, registry *keys.Registry) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	tv.SetBackgroundColor(theme.BgColor)

	return &StatusBar{
		view:  tv,
		theme: theme,
		keys:  registry,
		flash: ui.NewFlashModel(),
	}
}

// Flash returns the flash model, for tests and callers that flash directly.
func (sb *StatusBar) Flash() *ui.FlashModel {
	return sb.flash
}

// Update implements ui.Component.
func (sb *StatusBar) Update(a action.Action) (action.Action, error) {
	switch a := a.(type) {
	case action.FocusChanged:
		sb.mode = a.Mode
	case action.StateChanged:
		sb.state = a.To
	case action.Notify:
		sb.flash.Set(a.Message, a.Level)
	case action.RequestStarted:
		sb.pending = a.ID
	case action.ResponseReceived:
		sb.settle(a.ID)
	case action.RequestFailed:
		sb.settle(a.ID)
	case action.Tick:
		sb.flash.Expire()
	}
	return nil, nil
}

// settle clears the in-flight marker once the latest request finishes.
func (sb *StatusBar) settle(id string) {
	if id == sb.pending {
		sb.pending = ""
	}
}

// Draw implements ui.Component.
func (sb *StatusBar) Draw(screen tcell.Screen, area ui.Rect) error {
	if area.Empty() {
		return nil
	}
	sb.view.SetText(sb.line())
	sb.view.SetRect(area.X, area.Y, area.Width, area.Height)
	sb.view.Draw(screen)
	return nil
}

func (sb *StatusBar) line() string {
	modeColor := ui.ColorTag(sb.theme.TabActiveColor)
	line := fmt.Sprintf(" [%s::b]%s[-:-:-]", modeColor, strings.ToUpper(sb.mode.String()))
	if sb.state != "" {
		line += " | " + sb.state
	}
	if sb.pending != "" {
		line += fmt.Sprintf(" | [%s]sending[-]", ui.ColorTag(sb.theme.StatusWarnColor))
	}

	if msg := sb.flash.Current(); msg != nil {
		return line + fmt.Sprintf(" | [%s]%s[-]", ui.ColorTag(sb.levelColor(msg.Level)), tview.Escape(msg.Text))
	}
	if hints := sb.hints(); len(hints) > 0 {
		line += " | " + ui.FormatHints(sb.theme, hints)
	}
	return line
}

func (sb *StatusBar) levelColor(level action.Level) tcell.Color {
	switch level {
	case action.LevelWarn:
		return sb.theme.StatusWarnColor
	case action.LevelError:
		return sb.theme.StatusErrColor
	default:
		return sb.theme.StatusOKColor
	}
}

func (sb *StatusBar) hints() []ui.MenuHint {
	if sb.keys == nil {
		return nil
	}
	pairs := sb.keys.Hints(scopeFor(sb.mode))
	hints := make([]ui.MenuHint, 0, len(pairs))
	for _, p := range pairs {
		hints = append(hints, ui.MenuHint{Key: p[0], Description: p[1]})
	}
	return hints
}

// scopeFor maps a mode to its keybinding scope.
func scopeFor(m action.Mode) string {
	switch {
	case m.IsRequestTab():
		return "editor"
	case m == action.ModeURL:
		return "url"
	case m == action.ModeRequest:
		return "request"
	case m == action.ModeResponse:
		return "response"
	default:
		return "home"
	}
}
