package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// FillArea paints every cell of area with r in style.
func FillArea(screen tcell.Screen, area Rect, r rune, style tcell.Style) {
	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			screen.SetContent(x, y, r, nil, style)
		}
	}
}

// PrintText writes text on one row, clipped to maxWidth cells. Returns the
// number of cells written.
func PrintText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) int {
	written := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if written+w > maxWidth {
			break
		}
		screen.SetContent(x+written, y, r, nil, style)
		written += w
	}
	return written
}

// PrintCentered writes text centered on one row of area.
func PrintCentered(screen tcell.Screen, area Rect, y int, text string, style tcell.Style) {
	w := runewidth.StringWidth(text)
	x := area.X
	if w < area.Width {
		x += (area.Width - w) / 2
	}
	PrintText(screen, x, y, area.Width-(x-area.X), text, style)
}

// Box draws a single-line border around area with an optional title.
func Box(screen tcell.Screen, area Rect, title string, border, titleColor tcell.Color, bg tcell.Color) {
	if area.Width < 2 || area.Height < 2 {
		return
	}
	style := tcell.StyleDefault.Background(bg).Foreground(border)
	right, bottom := area.X+area.Width-1, area.Y+area.Height-1

	for x := area.X + 1; x < right; x++ {
		screen.SetContent(x, area.Y, tcell.RuneHLine, nil, style)
		screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := area.Y + 1; y < bottom; y++ {
		screen.SetContent(area.X, y, tcell.RuneVLine, nil, style)
		screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(area.X, area.Y, tcell.RuneULCorner, nil, style)
	screen.SetContent(right, area.Y, tcell.RuneURCorner, nil, style)
	screen.SetContent(area.X, bottom, tcell.RuneLLCorner, nil, style)
	screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)

	if title != "" {
		PrintText(screen, area.X+2, area.Y, area.Width-4, title,
			tcell.StyleDefault.Background(bg).Foreground(titleColor))
	}
}

// HLine draws a horizontal rule with a centered title.
func HLine(screen tcell.Screen, area Rect, title string, lineColor, titleColor, bg tcell.Color) {
	style := tcell.StyleDefault.Background(bg).Foreground(lineColor)
	for x := area.X; x < area.X+area.Width; x++ {
		screen.SetContent(x, area.Y, tcell.RuneHLine, nil, style)
	}
	if title != "" {
		PrintCentered(screen, area, area.Y, title, tcell.StyleDefault.Background(bg).Foreground(titleColor))
	}
}
