// Package tui provides a Bubble Tea terminal UI for the Midway room.
package tui

import "strings"

// History keeps recently submitted lines for Up/Down recall. Repeat
// aliases ("again", "g") are not kept since recalling them repeats
// whatever ran last, not what the player typed then.
type History struct {
	lines  []string
	limit  int
	cursor int // len(lines) when not navigating
}

// NewHistory creates a history holding at most limit lines.
func NewHistory(limit int) *History {
	return &History{
		lines: make([]string, 0, limit),
		limit: limit,
	}
}

// Push records a submitted line. Consecutive duplicates and repeat aliases
// are skipped. The cursor is reset.
func (h *History) Push(line string) {
	defer h.ResetCursor()

	switch strings.ToLower(line) {
	case "again", "g":
		return
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > h.limit {
		h.lines = h.lines[len(h.lines)-h.limit:]
	}
}

// Len reports how many lines are kept.
func (h *History) Len() int {
	return len(h.lines)
}

// Prev steps back to an older line, stopping at the oldest.
// It returns ("", false) when the history is empty.
func (h *History) Prev() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.lines[h.cursor], true
}

// Next steps forward to a newer line. It returns ("", false) once past
// the newest line, which puts the input back to a fresh line.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.lines) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.lines) {
		return "", false
	}
	return h.lines[h.cursor], true
}

// ResetCursor stops navigation; the next Prev returns the newest line.
func (h *History) ResetCursor() {
	h.cursor = len(h.lines)
}
