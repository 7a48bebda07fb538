package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/tview"

	"github.com/matheus3301/papirus/internal/action"
	"github.com/matheus3301/papirus/internal/transport"
	"github.com/matheus3301/papirus/internal/tui/keys"
	"github.com/matheus3301/papirus/internal/tui/ui"
)

// URLInput is the single-line address field with its method selector.
type URLInput struct {
	ui.Base
	field *tview.InputField
	theme *ui.Theme
	keys  *keys.Registry

	method  int
	focused bool
	newID   func() string
}

// NewURLInput creates the URL input.
func NewURLInput(theme *ui.Theme, registry *keys.Registry) *URLInput {
	field := tview.NewInputField().
		SetPlaceholder("Enter a URL...").
		SetFieldWidth(0).
		SetAcceptanceFunc(func(text string, _ rune) bool {
			return !strings.ContainsAny(text, "\r\n")
		})
	field.SetFieldBackgroundColor(theme.BgColor).
		SetFieldTextColor(theme.FgColor).
		SetPlaceholderTextColor(theme.PlaceholderColor).
		SetLabelColor(theme.TabActiveColor)
	field.SetBorder(true).
		SetTitle(" Press <Enter> to send request ").
		SetTitleAlign(tview.AlignLeft).
		SetTitleColor(theme.TitleColor).
		SetBackgroundColor(theme.BgColor)

	u := &URLInput{
		field: field,
		theme: theme,
		keys:  registry,
		newID: uuid.NewString,
	}
	u.syncLabel()
	return u
}

// Text returns the current URL text.
func (u *URLInput) Text() string {
	return u.field.GetText()
}

// SetText replaces the URL text. Line breaks are stripped.
func (u *URLInput) SetText(s string) {
	u.field.SetText(SingleLine(s))
}

// Method returns the selected HTTP method.
func (u *URLInput) Method() string {
	return transport.Methods[u.method]
}

// HandleKeyEvent implements ui.Component.
func (u *URLInput) HandleKeyEvent(ev *tcell.EventKey) (action.Action, error) {
	name, ok := u.keys.Lookup("url", ev)
	if ok {
		switch name {
		case "submit":
			return u.submit(), nil
		case "back":
			return action.FocusChanged{Mode: action.ModeHome}, nil
		case "next_method":
			u.method = (u.method + 1) % len(transport.Methods)
			u.syncLabel()
			return nil, nil
		case "prev_method":
			u.method = (u.method + len(transport.Methods) - 1) % len(transport.Methods)
			u.syncLabel()
			return nil, nil
		}
	}

	// A terminal may report a pasted line feed as a key; it never reaches
	// the field.
	if ev.Key() == tcell.KeyEnter || ev.Key() == tcell.KeyLF {
		return nil, nil
	}
	if handler := u.field.InputHandler(); handler != nil {
		handler(ev, func(tview.Primitive) {})
	}
	return nil, nil
}

func (u *URLInput) submit() action.Action {
	url := SingleLine(u.field.GetText())
	if url == "" {
		return action.Notify{Level: action.LevelWarn, Message: "URL is empty"}
	}
	return action.SendRequest{
		ID:     u.newID(),
		Method: u.Method(),
		URL:    url,
	}
}

// Update implements ui.Component.
func (u *URLInput) Update(a action.Action) (action.Action, error) {
	if fc, ok := a.(action.FocusChanged); ok {
		u.focused = fc.Mode == action.ModeURL
		if u.focused {
			u.field.Focus(func(tview.Primitive) {})
		} else {
			u.field.Blur()
		}
	}
	return nil, nil
}

// Draw implements ui.Component.
func (u *URLInput) Draw(screen tcell.Screen, area ui.Rect) error {
	if area.Empty() {
		return nil
	}
	u.field.SetBorderColor(u.theme.Border(u.focused))
	u.field.SetRect(area.X, area.Y, area.Width, area.Height)
	u.field.Draw(screen)
	return nil
}

func (u *URLInput) syncLabel() {
	u.field.SetLabel(fmt.Sprintf(" %-7s ", u.Method()))
}
