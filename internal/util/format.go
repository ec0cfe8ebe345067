package util //nolint:revive // package name util hosts shared formatting helpers for CLI output

import "time"

// FormatDuration formats a time.Duration for display, handling edge cases.
// Returns "-" for zero or negative durations, truncates to seconds for readability.
func FormatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "-"
	case d < time.Second:
		return d.Truncate(time.Millisecond).String()
	default:
		return d.Truncate(time.Second).String()
	}
}
