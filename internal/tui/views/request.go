package views

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/matheus3301/papirus/internal/action"
	"github.com/matheus3301/papirus/internal/config"
	"github.com/matheus3301/papirus/internal/transport"
	"github.com/matheus3301/papirus/internal/tui/keys"
	"github.com/matheus3301/papirus/internal/tui/ui"
)

type tabRegion struct {
	rect ui.Rect
	tab  Tab
}

// Request is the request builder: a tab bar over the Query, Body, Headers
// and Auth editors. It also owns dispatching captured requests to the
// transport.
type Request struct {
	ui.Base
	theme     *ui.Theme
	keys      *keys.Registry
	logger    *zap.Logger
	transport transport.Transport
	timeout   time.Duration

	selected Tab
	mode     action.Mode
	panels   [tabCount]*Panel

	tabRegions []tabRegion
	body       ui.Rect
}

// NewRequest creates the request builder.
func NewRequest(theme *ui.Theme, registry *keys.Registry, tr transport.Transport, logger *zap.Logger) *Request {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Request{
		theme:     theme,
		keys:      registry,
		logger:    logger,
		transport: tr,
		timeout:   config.Default().HTTP.Timeout.Duration,
		panels:    newPanels(theme, registry),
	}
}

// Selected returns the selected tab.
func (r *Request) Selected() Tab {
	return r.selected
}

// Panel returns the editor of tab t.
func (r *Request) Panel(t Tab) *Panel {
	return r.panels[clampTab(int(t))]
}

// Children implements ui.Container.
func (r *Request) Children() []ui.Component {
	out := make([]ui.Component, 0, len(r.panels))
	for _, p := range r.panels {
		out = append(out, p)
	}
	return out
}

// RegisterConfig implements ui.Component.
func (r *Request) RegisterConfig(cfg *config.Config) error {
	if err := r.Base.RegisterConfig(cfg); err != nil {
		return err
	}
	if cfg != nil && cfg.HTTP.Timeout.Duration > 0 {
		r.timeout = cfg.HTTP.Timeout.Duration
	}
	return nil
}

// HandleKeyEvent implements ui.Component.
func (r *Request) HandleKeyEvent(ev *tcell.EventKey) (action.Action, error) {
	if t, ok := tabForMode(r.mode); ok {
		return r.panels[t].HandleKeyEvent(ev)
	}

	name, ok := r.keys.Lookup("request", ev)
	if !ok {
		return nil, nil
	}
	switch name {
	case "prev_tab":
		r.selected = r.selected.Previous()
	case "next_tab":
		r.selected = r.selected.Next()
	case "edit_tab":
		return action.FocusChanged{Mode: r.selected.Mode()}, nil
	case "back":
		return action.FocusChanged{Mode: action.ModeHome}, nil
	}
	return nil, nil
}

// HandleMouseEvent implements ui.Component.
func (r *Request) HandleMouseEvent(ev action.MouseEvent) (action.Action, error) {
	if ev.Kind != action.MouseDown {
		return nil, nil
	}
	for _, tr := range r.tabRegions {
		if !tr.rect.Contains(ev.X, ev.Y) {
			continue
		}
		// While editing, keys follow the visible panel.
		if r.mode.IsRequestTab() {
			if tr.tab.Mode() == r.mode {
				return nil, nil
			}
			return action.FocusChanged{Mode: tr.tab.Mode()}, nil
		}
		return action.SelectTab{Tab: int(tr.tab)}, nil
	}
	if r.body.Contains(ev.X, ev.Y) && r.mode != r.selected.Mode() {
		return action.FocusChanged{Mode: r.selected.Mode()}, nil
	}
	return nil, nil
}

// Update implements ui.Component.
func (r *Request) Update(a action.Action) (action.Action, error) {
	switch a := a.(type) {
	case action.FocusChanged:
		r.mode = a.Mode
		if t, ok := tabForMode(a.Mode); ok {
			r.selected = t
		}
	case action.SelectTab:
		r.selected = clampTab(a.Tab)
	case action.SendRequest:
		return r.dispatch(a), nil
	}
	return nil, nil
}

// dispatch captures the editors into a transport request and issues it on
// a background goroutine. The result comes back through the action sender.
func (r *Request) dispatch(a action.SendRequest) action.Action {
	req := transport.Request{
		Method:  a.Method,
		URL:     a.URL,
		Headers: http.Header{},
	}
	for _, p := range r.panels {
		if err := p.Apply(&req); err != nil {
			return action.RequestFailed{ID: a.ID, Message: err.Error()}
		}
	}
	if r.transport == nil {
		return action.RequestFailed{ID: a.ID, Message: "no transport configured"}
	}

	// Capture everything the goroutine needs; it must not touch r.
	sender := r.Sender()
	if sender == nil {
		return action.RequestFailed{ID: a.ID, Message: "no action sender registered"}
	}
	tr, timeout, logger, id := r.transport, r.timeout, r.logger, a.ID

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		defer func() {
			if p := recover(); p != nil {
				logger.Error("panic in transport", zap.String("id", id), zap.Any("panic", p), zap.Stack("stack"))
				sender.Send(action.RequestFailed{ID: id, Message: fmt.Sprintf("transport panic: %v", p), Elapsed: time.Since(start)})
			}
		}()
		resp, err := transport.Send(ctx, tr, req)
		elapsed := time.Since(start)
		if err != nil {
			logger.Debug("request failed", zap.String("id", id), zap.Error(err))
			sender.Send(action.RequestFailed{ID: id, Message: err.Error(), Elapsed: elapsed})
			return
		}
		logger.Debug("response received",
			zap.String("id", id),
			zap.Int("status", resp.Status),
			zap.Duration("elapsed", elapsed),
		)
		sender.Send(action.ResponseReceived{
			ID:         id,
			Status:     resp.Status,
			StatusText: resp.StatusText,
			Headers:    resp.Headers,
			Body:       resp.Body,
			Elapsed:    elapsed,
		})
	}()

	return action.RequestStarted{ID: a.ID, Method: req.Method, URL: req.URL}
}

// Draw implements ui.Component.
func (r *Request) Draw(screen tcell.Screen, area ui.Rect) error {
	focused := r.mode == action.ModeRequest || r.mode.IsRequestTab()
	ui.Box(screen, area, " Request ", r.theme.Border(focused), r.theme.TitleColor, r.theme.BgColor)

	inner := area.Inner()
	r.tabRegions = r.tabRegions[:0]
	r.body = ui.Rect{}
	if inner.Empty() {
		return nil
	}
	ui.FillArea(screen, inner, ' ', r.theme.Style())

	rows := inner.SplitVertical(ui.Length(1), ui.Length(1), ui.Fill(), ui.Length(1))
	r.drawTabs(screen, rows[0])
	ui.HLine(screen, rows[1], "", r.theme.BorderColor, r.theme.TitleColor, r.theme.BgColor)

	r.body = rows[2]
	err := r.panels[r.selected].Draw(screen, rows[2])

	hint := "<Left>/<Right> change tab, <Enter> edit"
	if r.mode.IsRequestTab() {
		hint = "<Esc> stop editing"
	}
	ui.PrintCentered(screen, rows[3], rows[3].Y, hint,
		r.theme.Style().Foreground(r.theme.PlaceholderColor))
	return err
}

func (r *Request) drawTabs(screen tcell.Screen, row ui.Rect) {
	x := row.X
	for t := Tab(0); t < tabCount; t++ {
		label := fmt.Sprintf(" %s ", t)
		style := r.theme.Style().Foreground(r.theme.TabInactiveColor)
		if t == r.selected {
			style = r.theme.Style().Background(r.theme.TabActiveColor).Foreground(r.theme.BgColor).Bold(true)
		}
		maxWidth := row.X + row.Width - x
		if maxWidth <= 0 {
			return
		}
		w := ui.PrintText(screen, x, row.Y, maxWidth, label, style)
		r.tabRegions = append(r.tabRegions, tabRegion{
			rect: ui.Rect{X: x, Y: row.Y, Width: w, Height: 1},
			tab:  t,
		})
		x += w + 1
	}
}
