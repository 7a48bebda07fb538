package ui

import (
	"fmt"
	"strings"
)

// FormatHints renders hints as a single tview-tagged line.
func FormatHints(theme *Theme, hints []MenuHint) string {
	keyColor := ColorTag(theme.TabActiveColor)
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, fmt.Sprintf("[%s::b]<%s>[-:-:-] %s", keyColor, h.Key, h.Description))
	}
	return strings.Join(parts, "  ")
}
