package action

import (
	"net/http"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Action is a unit of intent flowing through the action bus.
// The set of variants is closed: only this package can define them.
type Action interface {
	action()
}

// Tick drives one update pass.
type Tick struct{}

// Render drives one draw pass.
type Render struct{}

// Resize reports new terminal dimensions.
type Resize struct {
	Width  int
	Height int
}

// Key carries one terminal key press.
type Key struct {
	Event *tcell.EventKey
}

// Mouse carries one translated pointer event.
type Mouse struct {
	Event MouseEvent
}

// Quit ends the application loop.
type Quit struct{}

// Suspend hands the terminal back to the shell.
type Suspend struct{}

// Resume reclaims the terminal after Suspend.
type Resume struct{}

// ClearScreen forces a full repaint.
type ClearScreen struct{}

// FocusChanged moves keyboard ownership to Mode.
type FocusChanged struct {
	Mode Mode
}

// SelectTab selects a tab of the request panel.
type SelectTab struct {
	Tab int
}

// SendRequest is emitted when the user submits the URL input.
type SendRequest struct {
	ID     string
	Method string
	URL    string
}

// RequestStarted is emitted once the request has been captured and scheduled.
type RequestStarted struct {
	ID     string
	Method string
	URL    string
}

// ResponseReceived is injected by the transport goroutine on success.
type ResponseReceived struct {
	ID         string
	Status     int
	StatusText string
	Headers    http.Header
	Body       string
	Elapsed    time.Duration
}

// RequestFailed is injected by the transport goroutine on a transport error.
type RequestFailed struct {
	ID      string
	Message string
	Elapsed time.Duration
}

// StateChanged reports a lifecycle transition of the application loop.
type StateChanged struct {
	From string
	To   string
}

// Level is the severity of a Notify action.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// Notify asks the status bar to flash a message.
type Notify struct {
	Level   Level
	Message string
}

func (Tick) action()             {}
func (Render) action()           {}
func (Resize) action()           {}
func (Key) action()              {}
func (Mouse) action()            {}
func (Quit) action()             {}
func (Suspend) action()          {}
func (Resume) action()           {}
func (ClearScreen) action()      {}
func (FocusChanged) action()     {}
func (SelectTab) action()        {}
func (SendRequest) action()      {}
func (RequestStarted) action()   {}
func (ResponseReceived) action() {}
func (RequestFailed) action()    {}
func (StateChanged) action()     {}
func (Notify) action()           {}

// Coalescable reports whether a may be dropped under backpressure.
// Only the periodic Tick and Render actions qualify.
func Coalescable(a Action) bool {
	switch a.(type) {
	case Tick, Render:
		return true
	default:
		return false
	}
}
