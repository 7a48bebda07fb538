package ui

import "github.com/matheus3301/papirus/internal/action"

// Clickable is a screen region that takes focus when clicked.
type Clickable struct {
	Rect Rect
	Mode action.Mode
}

// Regions maps screen regions to modes. It is rebuilt on every draw pass and
// read by input routing until the next one.
type Regions struct {
	items []Clickable
	valid bool
}

// Reset discards the regions of the previous pass.
func (r *Regions) Reset() {
	r.items = r.items[:0]
	r.valid = false
}

// Register appends a region. Registration order decides overlaps.
func (r *Regions) Register(rect Rect, mode action.Mode) {
	r.items = append(r.items, Clickable{Rect: rect, Mode: mode})
}

// Commit marks the registry as matching the layout that was just drawn.
func (r *Regions) Commit() {
	r.valid = true
}

// Valid reports whether a full pass completed since the last Reset.
func (r *Regions) Valid() bool {
	return r.valid
}

// Hit returns the mode of the first registered region containing (x, y).
func (r *Regions) Hit(x, y int) (action.Mode, bool) {
	for _, c := range r.items {
		if c.Rect.Contains(x, y) {
			return c.Mode, true
		}
	}
	return action.ModeHome, false
}
