package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/nathoo/midway/session"
)

// minWrap is the narrowest width the transcript wraps to.
const minWrap = 10

// entry is one unstyled line. Styling happens on render so a resize can
// re-wrap everything.
type entry struct {
	text string
	kind lineKind
}

// transcript is the scrollback of the room.
type transcript struct {
	entries []entry
}

// add appends room lines, classified by content, and a turn separator.
func (t *transcript) add(lines ...string) {
	for _, l := range lines {
		t.entries = append(t.entries, entry{text: l, kind: classifyLine(l)})
	}
	t.entries = append(t.entries, entry{})
}

// record appends a submitted turn: the echoed input, then its output.
func (t *transcript) record(turn session.Turn) {
	if turn.Input != "" {
		t.entries = append(t.entries, entry{text: turn.Input, kind: kindInput})
	}
	for _, l := range turn.Lines {
		kind := classifyLine(l)
		switch turn.Kind {
		case session.TurnMeta:
			kind = kindMeta
		case session.TurnRefused:
			kind = kindError
		}
		t.entries = append(t.entries, entry{text: l, kind: kind})
	}
	t.entries = append(t.entries, entry{})
}

// texts returns the raw lines.
func (t *transcript) texts() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.text
	}
	return out
}

// render wraps and styles every line for the given width.
func (t *transcript) render(width int) string {
	if width < minWrap {
		width = minWrap
	}

	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		if e.text == "" {
			out = append(out, "")
			continue
		}
		limit := width
		if e.kind == kindInput || e.kind == kindMeta {
			limit -= 2 // room for "> " or the brackets
		}
		out = append(out, renderLine(ansi.Wordwrap(e.text, limit, ""), e.kind))
	}
	return strings.Join(out, "\n")
}
