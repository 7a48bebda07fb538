package views

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/matheus3301/papirus/internal/action"
	"github.com/matheus3301/papirus/internal/highlight"
	"github.com/matheus3301/papirus/internal/tui/keys"
	"github.com/matheus3301/papirus/internal/tui/ui"
)

// ResponseState is the lifecycle of the latest request as seen by the pane.
type ResponseState int

const (
	ResponseIdle ResponseState = iota
	ResponseLoading
	ResponseDone
	ResponseFailed
)

// ResponseTab is the selected tab of the response pane.
type ResponseTab int

const (
	ResponseTabBody ResponseTab = iota
	ResponseTabHeaders
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// Response shows the outcome of the latest request.
type Response struct {
	ui.Base
	theme       *ui.Theme
	keys        *keys.Registry
	logger      *zap.Logger
	highlighter *highlight.Highlighter
	copy        func(string) error

	body    *tview.TextView
	headers *tview.TextView

	state    ResponseState
	tab      ResponseTab
	latestID string
	method   string
	url      string
	status   int
	text     string
	elapsed  time.Duration
	size     int
	raw      string
	errMsg   string
	spinner  int
	focused  bool
}

// NewResponse creates the response pane. A nil copy func uses the system
// clipboard.
func NewResponse(theme *ui.Theme, registry *keys.Registry, h *highlight.Highlighter,
	copyFn func(string) error, logger *zap.Logger) *Response {
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if h == nil {
		h = highlight.New("", false)
	}
	return &Response{
		theme:       theme,
		keys:        registry,
		logger:      logger,
		highlighter: h,
		copy:        copyFn,
		body:        newScrollView(theme),
		headers:     newScrollView(theme),
	}
}

func newScrollView(theme *ui.Theme) *tview.TextView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true).
		SetTextColor(theme.FgColor)
	tv.SetBackgroundColor(theme.BgColor)
	return tv
}

// State returns the pane's request state.
func (r *Response) State() ResponseState {
	return r.state
}

// LatestID returns the ID of the request the pane is waiting on or showing.
func (r *Response) LatestID() string {
	return r.latestID
}

// Status returns the HTTP status of the shown response.
func (r *Response) Status() int {
	return r.status
}

// Body returns the raw body of the shown response.
func (r *Response) Body() string {
	return r.raw
}

// Err returns the failure message of the latest request.
func (r *Response) Err() string {
	return r.errMsg
}

// HandleKeyEvent implements ui.Component.
func (r *Response) HandleKeyEvent(ev *tcell.EventKey) (action.Action, error) {
	if name, ok := r.keys.Lookup("response", ev); ok {
		switch name {
		case "prev_tab":
			r.tab = ResponseTabBody
			return nil, nil
		case "next_tab":
			r.tab = ResponseTabHeaders
			return nil, nil
		case "copy_body":
			return r.copyBody(), nil
		case "back":
			return action.FocusChanged{Mode: action.ModeHome}, nil
		}
	}
	if handler := r.view().InputHandler(); handler != nil {
		handler(ev, func(tview.Primitive) {})
	}
	return nil, nil
}

// HandleMouseEvent implements ui.Component.
func (r *Response) HandleMouseEvent(ev action.MouseEvent) (action.Action, error) {
	view := r.view()
	row, col := view.GetScrollOffset()
	switch ev.Kind {
	case action.MouseWheelUp:
		if row > 0 {
			view.ScrollTo(row-1, col)
		}
	case action.MouseWheelDown:
		view.ScrollTo(row+1, col)
	}
	return nil, nil
}

// copyBody hands the body to the clipboard off the loop goroutine and
// reports the outcome as a Notify.
func (r *Response) copyBody() action.Action {
	if r.raw == "" {
		return action.Notify{Level: action.LevelWarn, Message: "Nothing to copy"}
	}
	sender := r.Sender()
	if sender == nil {
		return nil
	}
	body, copyFn, logger := r.raw, r.copy, r.logger
	go func() {
		defer func() {
			if p := recover(); p != nil {
				logger.Error("panic in clipboard copy", zap.Any("panic", p), zap.Stack("stack"))
				sender.Send(action.Notify{Level: action.LevelError, Message: fmt.Sprintf("Copy failed: %v", p)})
			}
		}()
		if err := copyFn(body); err != nil {
			logger.Warn("copy to clipboard failed", zap.Error(err))
			sender.Send(action.Notify{Level: action.LevelError, Message: "Copy failed: " + err.Error()})
			return
		}
		sender.Send(action.Notify{Level: action.LevelInfo, Message: "Response body copied"})
	}()
	return nil
}

// Update implements ui.Component.
func (r *Response) Update(a action.Action) (action.Action, error) {
	switch a := a.(type) {
	case action.FocusChanged:
		r.focused = a.Mode == action.ModeResponse
	case action.Tick:
		if r.state == ResponseLoading {
			r.spinner = (r.spinner + 1) % len(spinnerFrames)
		}
	case action.RequestStarted:
		r.latestID = a.ID
		r.state = ResponseLoading
		r.method, r.url = a.Method, a.URL
		r.spinner = 0
		r.errMsg = ""
		r.clearResult()
	case action.ResponseReceived:
		if a.ID != r.latestID {
			r.logger.Debug("dropping stale response", zap.String("id", a.ID))
			return nil, nil
		}
		r.showResponse(a)
		return action.Notify{
			Level:   levelForStatus(a.Status),
			Message: fmt.Sprintf("%d %s in %s", a.Status, a.StatusText, FormatDuration(a.Elapsed)),
		}, nil
	case action.RequestFailed:
		// A failure captured before dispatch never announced itself, so only
		// an in-flight request can make a result stale.
		if a.ID != r.latestID && r.state == ResponseLoading {
			r.logger.Debug("dropping stale failure", zap.String("id", a.ID))
			return nil, nil
		}
		r.latestID = a.ID
		r.state = ResponseFailed
		r.elapsed = a.Elapsed
		r.errMsg = a.Message
		r.clearResult()
		r.body.SetText(tview.Escape(a.Message))
		return action.Notify{Level: action.LevelError, Message: "Request failed: " + a.Message}, nil
	}
	return nil, nil
}

// clearResult forgets the previous response so it can't be copied or shown
// against a newer request.
func (r *Response) clearResult() {
	r.status, r.text = 0, ""
	r.size = 0
	r.raw = ""
	r.body.Clear()
	r.headers.Clear()
}

func (r *Response) showResponse(a action.ResponseReceived) {
	r.state = ResponseDone
	r.status = a.Status
	r.text = a.StatusText
	r.elapsed = a.Elapsed
	r.size = len(a.Body)
	r.raw = a.Body

	body := sanitizeBody(a.Body)
	r.body.SetText(r.highlighter.Format(body, a.Headers.Get("Content-Type")))
	r.body.ScrollToBeginning()
	r.headers.SetText(formatHeaders(a.Headers, r.theme))
	r.headers.ScrollToBeginning()
}

func formatHeaders(h http.Header, theme *ui.Theme) string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	keyColor := ui.ColorTag(theme.TabActiveColor)
	var b strings.Builder
	for _, name := range names {
		for _, v := range h[name] {
			fmt.Fprintf(&b, "[%s::b]%s[-:-:-]: %s\n", keyColor, tview.Escape(name), tview.Escape(sanitizeBody(v)))
		}
	}
	return b.String()
}

func levelForStatus(status int) action.Level {
	switch {
	case status >= 500:
		return action.LevelError
	case status >= 400:
		return action.LevelWarn
	default:
		return action.LevelInfo
	}
}

func (r *Response) view() *tview.TextView {
	if r.tab == ResponseTabHeaders {
		return r.headers
	}
	return r.body
}

// Draw implements ui.Component.
func (r *Response) Draw(screen tcell.Screen, area ui.Rect) error {
	ui.Box(screen, area, " Response ", r.theme.Border(r.focused), r.theme.TitleColor, r.theme.BgColor)
	inner := area.Inner()
	if inner.Empty() {
		return nil
	}
	ui.FillArea(screen, inner, ' ', r.theme.Style())

	rows := inner.SplitVertical(ui.Length(1), ui.Length(1), ui.Fill())
	r.drawSummary(screen, rows[0])
	r.drawTabs(screen, rows[1])

	if r.state == ResponseIdle || r.state == ResponseLoading {
		msg := "Send a request to see the response here"
		if r.state == ResponseLoading {
			msg = "Waiting for response..."
		}
		ui.PrintCentered(screen, rows[2], rows[2].Y+rows[2].Height/2, msg,
			r.theme.Style().Foreground(r.theme.PlaceholderColor))
		return nil
	}

	view := r.view()
	view.SetRect(rows[2].X, rows[2].Y, rows[2].Width, rows[2].Height)
	view.Draw(screen)
	return nil
}

func (r *Response) drawSummary(screen tcell.Screen, row ui.Rect) {
	style := r.theme.Style()
	var line string
	switch r.state {
	case ResponseIdle:
		line = "No request sent yet"
		style = style.Foreground(r.theme.PlaceholderColor)
	case ResponseLoading:
		line = fmt.Sprintf("%c %s %s", spinnerFrames[r.spinner], r.method, r.url)
		style = style.Foreground(r.theme.StatusWarnColor)
	case ResponseDone:
		line = fmt.Sprintf("Status: %d %s  Time: %s  Size: %s",
			r.status, r.text, FormatDuration(r.elapsed), FormatSize(r.size))
		style = style.Foreground(r.statusColor())
	case ResponseFailed:
		line = "Error after " + FormatDuration(r.elapsed)
		style = style.Foreground(r.theme.StatusErrColor)
	}
	ui.PrintText(screen, row.X, row.Y, row.Width, line, style)
}

func (r *Response) statusColor() tcell.Color {
	switch levelForStatus(r.status) {
	case action.LevelError:
		return r.theme.StatusErrColor
	case action.LevelWarn:
		return r.theme.StatusWarnColor
	default:
		return r.theme.StatusOKColor
	}
}

func (r *Response) drawTabs(screen tcell.Screen, row ui.Rect) {
	x := row.X
	for i, title := range []string{"Body", "Headers"} {
		style := r.theme.Style().Foreground(r.theme.TabInactiveColor)
		if ResponseTab(i) == r.tab {
			style = r.theme.Style().Foreground(r.theme.TabActiveColor).Bold(true).Underline(true)
		}
		x += ui.PrintText(screen, x, row.Y, row.X+row.Width-x, " "+title+" ", style)
	}
}
