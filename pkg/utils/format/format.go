package format

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Duration renders a duration in seconds as a player-style timestamp
// (e.g. 61 → "1:01", 3725 → "1:02:05"). Negative durations (upcoming or
// live items) render as "".
func Duration(seconds int64) string {
	if seconds < 0 {
		return ""
	}
	hours := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// Number formats an int64 with K/M/B suffixes for display (e.g. 1500 → "1.5K").
func Number(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return trimZero(fmt.Sprintf("%.1fB", float64(n)/1_000_000_000))
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1fM", float64(n)/1_000_000))
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1fK", float64(n)/1_000))
	}
	return fmt.Sprintf("%d", n)
}

// Truncate returns s truncated to max characters with "..." suffix. Cuts on
// rune boundaries so multi-byte text stays valid UTF-8.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	keep := max - 3
	if keep < 0 {
		keep = 0
	}
	return string([]rune(s)[:keep]) + "..."
}

// trimZero turns "1.0K" into "1K".
func trimZero(s string) string {
	return strings.Replace(s, ".0", "", 1)
}
