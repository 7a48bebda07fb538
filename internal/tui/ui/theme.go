package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/matheus3301/papirus/internal/config"
)

// Theme holds the resolved colors for the TUI.
type Theme struct {
	BgColor          tcell.Color
	FgColor          tcell.Color
	BorderColor      tcell.Color
	BorderFocusColor tcell.Color
	TitleColor       tcell.Color
	TabActiveColor   tcell.Color
	TabInactiveColor tcell.Color
	StatusOKColor    tcell.Color
	StatusWarnColor  tcell.Color
	StatusErrColor   tcell.Color
	PlaceholderColor tcell.Color
}

// DefaultTheme returns the theme of the built-in config.
func DefaultTheme() *Theme {
	return NewTheme(config.Default().Theme)
}

// NewTheme resolves color names. Unknown names keep the default color.
func NewTheme(t config.Theme) *Theme {
	return &Theme{
		BgColor:          color(t.Background, tcell.ColorBlack),
		FgColor:          color(t.Foreground, tcell.ColorWhite),
		BorderColor:      color(t.Border, tcell.ColorDarkGray),
		BorderFocusColor: color(t.BorderFocus, tcell.ColorWhite),
		TitleColor:       color(t.Title, tcell.ColorFuchsia),
		TabActiveColor:   color(t.TabActive, tcell.ColorDodgerBlue),
		TabInactiveColor: color(t.TabInactive, tcell.ColorSlateGray),
		StatusOKColor:    color(t.StatusOK, tcell.ColorGreen),
		StatusWarnColor:  color(t.StatusWarn, tcell.ColorOrange),
		StatusErrColor:   color(t.StatusErr, tcell.ColorOrangeRed),
		PlaceholderColor: color(t.Placeholder, tcell.ColorGray),
	}
}

// Border returns the border color for a box with the given focus.
func (t *Theme) Border(focused bool) tcell.Color {
	if focused {
		return t.BorderFocusColor
	}
	return t.BorderColor
}

// Style returns the base style.
func (t *Theme) Style() tcell.Style {
	return tcell.StyleDefault.Background(t.BgColor).Foreground(t.FgColor)
}

func color(name string, fallback tcell.Color) tcell.Color {
	if name == "" {
		return fallback
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

// ColorTag returns a tview-compatible color tag value for c.
func ColorTag(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
