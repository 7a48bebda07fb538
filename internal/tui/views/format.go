package views

import (
	"fmt"
	"time"
)

// FormatDuration renders d the way the response pane shows request timings:
// "120ms", "2s", "2.045s", "1m 2.045s", "1h 2m 3s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	millis := int64(d%time.Second) / int64(time.Millisecond)

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case hours == 0 && minutes == 0 && seconds == 0:
		return fmt.Sprintf("%dms", millis)
	case hours == 0 && minutes == 0 && millis == 0:
		return fmt.Sprintf("%ds", seconds)
	case hours == 0 && minutes == 0:
		return fmt.Sprintf("%d.%03ds", seconds, millis)
	case hours == 0 && millis == 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	case hours == 0:
		return fmt.Sprintf("%dm %d.%03ds", minutes, seconds, millis)
	case millis == 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	default:
		return fmt.Sprintf("%dh %dm %d.%03ds", hours, minutes, seconds, millis)
	}
}

// FormatSize formats byte size to human-readable string.
func FormatSize(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	kb := float64(bytes) / 1024.0
	if kb < 1024 {
		return fmt.Sprintf("%.1f KB", kb)
	}
	return fmt.Sprintf("%.1f MB", kb/1024.0)
}
