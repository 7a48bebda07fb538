package views

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0ms"},
		{120 * time.Millisecond, "120ms"},
		{2 * time.Second, "2s"},
		{2045 * time.Millisecond, "2.045s"},
		{62 * time.Second, "1m 2s"},
		{62045 * time.Millisecond, "1m 2.045s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h 2m 3s"},
		{time.Hour + 3*time.Second + 7*time.Millisecond, "1h 0m 3.007s"},
		{-time.Second, "0ms"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.in); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeBody(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"emoji modifiers", "ok 👍🏽 a\u200db ❤\ufe0f", "ok 👍 ab ❤"},
		{"crlf", "a\r\nb\rc", "a\nbc"},
		{"escape sequences", "\x1b[2Jhi\x07\x00", "[2Jhi"},
		{"c1 controls", "a\u009bb\u007f", "ab"},
		{"tabs and newlines kept", "k:\tv\n", "k:\tv\n"},
		{"invalid utf8", "a\xffb", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeBody(tt.in); got != tt.want {
				t.Errorf("sanitizeBody(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSingleLine(t *testing.T) {
	if got := SingleLine("  http://x\r\n/y\n "); got != "http://x/y" {
		t.Errorf("SingleLine = %q", got)
	}
}
