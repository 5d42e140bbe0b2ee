package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate shortens a string to the given cell width, adding an ellipsis if
// needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return runewidth.Truncate(value, limit, "")
	}
	return runewidth.Truncate(value, limit, "...")
}

// truncateMiddle shortens a path by removing cells from the middle, keeping
// the file name visible.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	width := runewidth.StringWidth(value)
	if width <= limit {
		return value
	}
	const ellipsis = "…"
	if limit <= 3 {
		return runewidth.Truncate(value, limit, "")
	}
	keep := limit - runewidth.StringWidth(ellipsis)
	prefix := keep / 2
	suffix := keep - prefix
	head := runewidth.Truncate(value, prefix, "")
	tail := runewidth.TruncateLeft(value, width-suffix, "")
	return head + ellipsis + tail
}

// padRight pads a string with spaces to the given cell width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(s, width)
}

// plainWidth returns the display width of unstyled text.
func plainWidth(s string) int {
	return runewidth.StringWidth(s)
}
