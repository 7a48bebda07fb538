package ui

// Rect is a screen region in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r has no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inner shrinks r by one cell on every side, for bordered boxes.
func (r Rect) Inner() Rect {
	return r.Pad(1, 1)
}

// Pad shrinks r by dx columns and dy rows on each side.
func (r Rect) Pad(dx, dy int) Rect {
	out := Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width - 2*dx, Height: r.Height - 2*dy}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Constraint sizes one slot of a split.
// Fixed > 0 reserves that many cells; otherwise Percent of the remainder is used,
// and a slot with neither takes whatever is left.
type Constraint struct {
	Fixed   int
	Percent int
}

// Length reserves n cells.
func Length(n int) Constraint { return Constraint{Fixed: n} }

// Percent takes p percent of the space left after fixed slots.
func Percent(p int) Constraint { return Constraint{Percent: p} }

// Fill takes the remaining space.
func Fill() Constraint { return Constraint{} }

// SplitVertical stacks slots top to bottom.
func (r Rect) SplitVertical(cs ...Constraint) []Rect {
	sizes := distribute(r.Height, cs)
	out := make([]Rect, len(cs))
	y := r.Y
	for i, h := range sizes {
		out[i] = Rect{X: r.X, Y: y, Width: r.Width, Height: h}
		y += h
	}
	return out
}

// SplitHorizontal lays slots out left to right.
func (r Rect) SplitHorizontal(cs ...Constraint) []Rect {
	sizes := distribute(r.Width, cs)
	out := make([]Rect, len(cs))
	x := r.X
	for i, w := range sizes {
		out[i] = Rect{X: x, Y: r.Y, Width: w, Height: r.Height}
		x += w
	}
	return out
}

func distribute(total int, cs []Constraint) []int {
	sizes := make([]int, len(cs))
	remaining := total

	for i, c := range cs {
		if c.Fixed > 0 {
			sizes[i] = min(c.Fixed, remaining)
			remaining -= sizes[i]
		}
	}
	flexible := remaining
	for i, c := range cs {
		if c.Fixed == 0 && c.Percent > 0 {
			sizes[i] = min(flexible*c.Percent/100, remaining)
			remaining -= sizes[i]
		}
	}
	fills := 0
	for _, c := range cs {
		if c.Fixed == 0 && c.Percent == 0 {
			fills++
		}
	}
	for i, c := range cs {
		if c.Fixed == 0 && c.Percent == 0 {
			share := remaining / fills
			sizes[i] = share
			remaining -= share
			fills--
		}
	}
	// Rounding leftovers go to the last percentage slot.
	if remaining > 0 {
		for i := len(cs) - 1; i >= 0; i-- {
			if cs[i].Fixed == 0 && cs[i].Percent > 0 {
				sizes[i] += remaining
				break
			}
		}
	}
	return sizes
}
