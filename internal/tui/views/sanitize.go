package views

import (
	"strings"
	"unicode/utf8"
)

// sanitizeBody makes untrusted response text safe to hand to a TextView.
// CRLF becomes LF, and control codes other than tab and newline are dropped,
// so a body can't move the cursor or switch terminal modes. Joiners, skin
// tone modifiers and variation selectors go too, since tcell measures the
// resulting clusters differently from most terminals.
func sanitizeBody(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		if dropRune(r) {
			return -1
		}
		return r
	}, s)
}

func dropRune(r rune) bool {
	switch {
	case r == '\n' || r == '\t':
		return false
	case r < 0x20 || r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	case r == utf8.RuneError:
		return true
	case r == 0x200D:
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF:
		return true
	case r >= 0xFE00 && r <= 0xFE0F, r >= 0xE0100 && r <= 0xE01EF:
		return true
	}
	return false
}

// SingleLine strips line breaks and surrounding blanks so a URL can never
// carry an embedded newline.
func SingleLine(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
