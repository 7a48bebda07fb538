package views

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/matheus3301/papirus/internal/action"
	"github.com/matheus3301/papirus/internal/highlight"
	"github.com/matheus3301/papirus/internal/transport"
	"github.com/matheus3301/papirus/internal/tui/keys"
	"github.com/matheus3301/papirus/internal/tui/ui"
)

// Deps are the collaborators of the component tree.
type Deps struct {
	Theme       *ui.Theme
	Keys        *keys.Registry
	Transport   transport.Transport
	Highlighter *highlight.Highlighter
	Clipboard   func(string) error
	Logger      *zap.Logger
}

// Home is the root of the component tree. It owns the focus mode and the
// clickable regions, and routes input to the focused child.
type Home struct {
	ui.Base
	theme  *ui.Theme
	keys   *keys.Registry
	logger *zap.Logger

	mode    action.Mode
	regions ui.Regions

	url      *URLInput
	request  *Request
	response *Response
	status   *StatusBar
}

// NewHome builds the full component tree.
func NewHome(d Deps) *Home {
	if d.Theme == nil {
		d.Theme = ui.DefaultTheme()
	}
	if d.Keys == nil {
		d.Keys = keys.NewRegistry()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Home{
		theme:    d.Theme,
		keys:     d.Keys,
		logger:   d.Logger,
		mode:     action.ModeHome,
		url:      NewURLInput(d.Theme, d.Keys),
		request:  NewRequest(d.Theme, d.Keys, d.Transport, d.Logger),
		response: NewResponse(d.Theme, d.Keys, d.Highlighter, d.Clipboard, d.Logger),
		status:   NewStatusBar(d.Theme, d.Keys),
	}
}

// Mode returns the focused mode.
func (h *Home) Mode() action.Mode { return h.mode }

// Regions returns the clickable regions of the last draw pass.
func (h *Home) Regions() *ui.Regions { return &h.regions }

// URL returns the URL input.
func (h *Home) URL() *URLInput { return h.url }

// Request returns the request builder.
func (h *Home) Request() *Request { return h.request }

// Response returns the response pane.
func (h *Home) Response() *Response { return h.response }

// StatusBar returns the status bar.
func (h *Home) StatusBar() *StatusBar { return h.status }

// Children implements ui.Container.
func (h *Home) Children() []ui.Component {
	return []ui.Component{h.url, h.request, h.response, h.status}
}

// HandleKeyEvent implements ui.Component.
func (h *Home) HandleKeyEvent(ev *tcell.EventKey) (action.Action, error) {
	if h.keys.Is("global", "force_quit", ev) {
		return action.Quit{}, nil
	}
	if h.mode == action.ModeHome {
		return h.handleHomeKey(ev), nil
	}
	if c := h.focused(); c != nil {
		return c.HandleKeyEvent(ev)
	}
	return nil, nil
}

func (h *Home) handleHomeKey(ev *tcell.EventKey) action.Action {
	name, ok := h.keys.Lookup("home", ev)
	if !ok {
		return nil
	}
	switch name {
	case "quit":
		return action.Quit{}
	case "focus_url", "edit_url":
		return action.FocusChanged{Mode: action.ModeURL}
	case "focus_request":
		return action.FocusChanged{Mode: action.ModeRequest}
	case "focus_response":
		return action.FocusChanged{Mode: action.ModeResponse}
	case "suspend":
		return action.Suspend{}
	case "redraw":
		return action.ClearScreen{}
	}
	return nil
}

// HandleMouseEvent implements ui.Component. A press inside a region whose
// owner is not focused moves focus there; everything else falls through to
// the focused child. Regions are only consulted after a completed draw pass.
func (h *Home) HandleMouseEvent(ev action.MouseEvent) (action.Action, error) {
	if ev.Kind == action.MouseDown && h.regions.Valid() {
		if m, ok := h.regions.Hit(ev.X, ev.Y); ok && owner(m) != owner(h.mode) {
			h.mode = m
			return action.FocusChanged{Mode: m}, nil
		}
	}
	if c := h.focused(); c != nil {
		return c.HandleMouseEvent(ev)
	}
	return nil, nil
}

// owner folds the request tab modes into the request builder.
func owner(m action.Mode) action.Mode {
	if m.IsRequestTab() {
		return action.ModeRequest
	}
	return m
}

func (h *Home) focused() ui.Component {
	switch owner(h.mode) {
	case action.ModeURL:
		return h.url
	case action.ModeRequest:
		return h.request
	case action.ModeResponse:
		return h.response
	default:
		return nil
	}
}

// Update implements ui.Component.
func (h *Home) Update(a action.Action) (action.Action, error) {
	if fc, ok := a.(action.FocusChanged); ok {
		if !fc.Mode.Valid() {
			h.logger.Warn("ignoring focus change to unknown mode", zap.Int("mode", int(fc.Mode)))
			return nil, nil
		}
		h.mode = fc.Mode
	}
	return nil, nil
}

// Draw implements ui.Component. It rebuilds the clickable regions in
// registration order: title, URL, request, response.
func (h *Home) Draw(screen tcell.Screen, area ui.Rect) error {
	h.regions.Reset()
	if area.Empty() {
		h.regions.Commit()
		return nil
	}
	ui.FillArea(screen, area, ' ', h.theme.Style())

	rows := area.SplitVertical(ui.Length(2), ui.Length(3), ui.Fill(), ui.Length(1))
	cols := rows[2].SplitHorizontal(ui.Percent(50), ui.Percent(50))

	h.drawTitle(screen, rows[0])
	h.regions.Register(rows[0], action.ModeHome)
	h.regions.Register(rows[1], action.ModeURL)
	h.regions.Register(cols[0], action.ModeRequest)
	h.regions.Register(cols[1], action.ModeResponse)

	err := multierr.Combine(
		h.url.Draw(screen, rows[1]),
		h.request.Draw(screen, cols[0]),
		h.response.Draw(screen, cols[1]),
		h.status.Draw(screen, rows[3]),
	)
	h.regions.Commit()
	return err
}

func (h *Home) drawTitle(screen tcell.Screen, area ui.Rect) {
	if area.Empty() {
		return
	}
	title := area.SplitVertical(ui.Length(1), ui.Fill())
	ui.PrintCentered(screen, title[0], title[0].Y, "papirus",
		h.theme.Style().Foreground(h.theme.TitleColor).Bold(true))
	if len(title) > 1 && !title[1].Empty() {
		ui.HLine(screen, title[1], "", h.theme.BorderColor, h.theme.TitleColor, h.theme.BgColor)
	}
}
