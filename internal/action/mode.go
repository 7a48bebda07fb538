package action

import "strings"

// Mode identifies the component that currently owns keyboard input.
type Mode int

const (
	ModeHome Mode = iota
	ModeURL
	ModeRequest
	ModeQuery
	ModeBody
	ModeHeaders
	ModeAuth
	ModeResponse
)

var modeNames = map[Mode]string{
	ModeHome:     "home",
	ModeURL:      "url",
	ModeRequest:  "request",
	ModeQuery:    "query",
	ModeBody:     "body",
	ModeHeaders:  "headers",
	ModeAuth:     "auth",
	ModeResponse: "response",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode resolves a mode by its config name.
func ParseMode(s string) (Mode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, true
		}
	}
	return ModeHome, false
}

// IsRequestTab reports whether m focuses one of the request tab editors.
func (m Mode) IsRequestTab() bool {
	switch m {
	case ModeQuery, ModeBody, ModeHeaders, ModeAuth:
		return true
	default:
		return false
	}
}

// MouseKind classifies a pointer event.
type MouseKind int

const (
	MouseMove MouseKind = iota
	MouseDown
	MouseUp
	MouseDrag
	MouseWheelUp
	MouseWheelDown
)

// MouseEvent is a pointer event in screen coordinates.
type MouseEvent struct {
	X      int
	Y      int
	Kind   MouseKind
	Button int
}
