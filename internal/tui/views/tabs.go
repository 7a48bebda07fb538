package views

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/matheus3301/papirus/internal/action"
	"github.com/matheus3301/papirus/internal/transport"
	"github.com/matheus3301/papirus/internal/tui/keys"
	"github.com/matheus3301/papirus/internal/tui/ui"
)

// Tab is the selected tab of the request panel.
type Tab int

const (
	TabQuery Tab = iota
	TabBody
	TabHeaders
	TabAuth

	tabCount
)

var tabTitles = [tabCount]string{"Query", "Body", "Headers", "Auth"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "unknown"
	}
	return tabTitles[t]
}

// Next returns the following tab, staying on the last one.
func (t Tab) Next() Tab {
	if t+1 >= tabCount {
		return tabCount - 1
	}
	return t + 1
}

// Previous returns the preceding tab, staying on the first one.
func (t Tab) Previous() Tab {
	if t <= 0 {
		return 0
	}
	return t - 1
}

// Mode returns the mode that focuses the tab's editor.
func (t Tab) Mode() action.Mode {
	switch t {
	case TabBody:
		return action.ModeBody
	case TabHeaders:
		return action.ModeHeaders
	case TabAuth:
		return action.ModeAuth
	default:
		return action.ModeQuery
	}
}

func clampTab(i int) Tab {
	switch {
	case i < 0:
		return 0
	case i >= int(tabCount):
		return tabCount - 1
	default:
		return Tab(i)
	}
}

func tabForMode(m action.Mode) (Tab, bool) {
	switch m {
	case action.ModeQuery:
		return TabQuery, true
	case action.ModeBody:
		return TabBody, true
	case action.ModeHeaders:
		return TabHeaders, true
	case action.ModeAuth:
		return TabAuth, true
	default:
		return 0, false
	}
}

// Panel is the editor behind one request tab. Its text is folded into the
// outgoing request by apply.
type Panel struct {
	ui.Base
	tab   Tab
	area  *tview.TextArea
	theme *ui.Theme
	keys  *keys.Registry
	apply func(text string, req *transport.Request) error

	focused bool
}

func newPanel(tab Tab, theme *ui.Theme, registry *keys.Registry, placeholder string,
	apply func(string, *transport.Request) error) *Panel {
	area := tview.NewTextArea().
		SetPlaceholder(placeholder).
		SetTextStyle(theme.Style()).
		SetPlaceholderStyle(theme.Style().Foreground(theme.PlaceholderColor))
	area.SetBackgroundColor(theme.BgColor)
	return &Panel{
		tab:   tab,
		area:  area,
		theme: theme,
		keys:  registry,
		apply: apply,
	}
}

// Text returns the editor contents.
func (p *Panel) Text() string {
	return p.area.GetText()
}

// SetText replaces the editor contents.
func (p *Panel) SetText(s string) {
	p.area.SetText(s, true)
}

// Apply folds the editor contents into req.
func (p *Panel) Apply(req *transport.Request) error {
	if err := p.apply(p.area.GetText(), req); err != nil {
		return fmt.Errorf("%s: %w", strings.ToLower(p.tab.String()), err)
	}
	return nil
}

// HandleKeyEvent implements ui.Component.
func (p *Panel) HandleKeyEvent(ev *tcell.EventKey) (action.Action, error) {
	if p.keys.Is("editor", "back", ev) {
		return action.FocusChanged{Mode: action.ModeRequest}, nil
	}
	if handler := p.area.InputHandler(); handler != nil {
		handler(ev, func(tview.Primitive) {})
	}
	return nil, nil
}

// Update implements ui.Component.
func (p *Panel) Update(a action.Action) (action.Action, error) {
	if fc, ok := a.(action.FocusChanged); ok {
		p.focused = fc.Mode == p.tab.Mode()
		if p.focused {
			p.area.Focus(func(tview.Primitive) {})
		} else {
			p.area.Blur()
		}
	}
	return nil, nil
}

// Draw implements ui.Component.
func (p *Panel) Draw(screen tcell.Screen, area ui.Rect) error {
	if area.Empty() {
		return nil
	}
	p.area.SetRect(area.X, area.Y, area.Width, area.Height)
	p.area.Draw(screen)
	return nil
}

func newPanels(theme *ui.Theme, registry *keys.Registry) [tabCount]*Panel {
	return [tabCount]*Panel{
		TabQuery:   newPanel(TabQuery, theme, registry, "name=value, one per line", applyQuery),
		TabBody:    newPanel(TabBody, theme, registry, "Request body", applyBody),
		TabHeaders: newPanel(TabHeaders, theme, registry, "Name: value, one per line", applyHeaders),
		TabAuth:    newPanel(TabAuth, theme, registry, "Bearer token", applyAuth),
	}
}

// contentLines returns the non-blank lines of text that are not comments.
func contentLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func applyQuery(text string, req *transport.Request) error {
	lines := contentLines(text)
	if len(lines) == 0 {
		return nil
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	for _, line := range lines {
		k, v, _ := strings.Cut(line, "=")
		k = strings.TrimSpace(k)
		if k == "" {
			return fmt.Errorf("empty parameter name in %q", line)
		}
		q.Add(k, strings.TrimSpace(v))
	}
	u.RawQuery = q.Encode()
	req.URL = u.String()
	return nil
}

func applyBody(text string, req *transport.Request) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	req.Body = text
	return nil
}

func applyHeaders(text string, req *transport.Request) error {
	for _, line := range contentLines(text) {
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("malformed header %q", line)
		}
		if req.Headers == nil {
			req.Headers = http.Header{}
		}
		req.Headers.Add(name, strings.TrimSpace(value))
	}
	return nil
}

func applyAuth(text string, req *transport.Request) error {
	token := SingleLine(text)
	if token == "" {
		return nil
	}
	if !strings.Contains(token, " ") {
		token = "Bearer " + token
	}
	if req.Headers == nil {
		req.Headers = http.Header{}
	}
	req.Headers.Set("Authorization", token)
	return nil
}
