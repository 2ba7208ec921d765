package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// carnival, the acting character, the occupants and the commands on offer.
func (m Model) renderStatusBar() string {
	s := m.session

	actor := "nobody"
	if c, ok := s.Actor(); ok {
		actor = c.Name
	}
	occupants := len(s.Room.Chars())

	left := fmt.Sprintf(" %s | %s | %d here", s.Defs.Carnival.Title, actor, occupants)

	entries := s.Room.Commands()
	keywords := make([]string, 0, len(entries))
	for _, e := range entries {
		keywords = append(keywords, e.Keyword)
	}

	// Show the keywords if they fit, otherwise just the count.
	right := fmt.Sprintf("Cmds: %s ", strings.Join(keywords, ","))
	if lipgloss.Width(left)+lipgloss.Width(right)+2 >= m.width {
		right = fmt.Sprintf("Cmds: %d ", len(keywords))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
