package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	stylePitch = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	stylePrize = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleFortune = lipgloss.NewStyle().
			Foreground(lipgloss.Color("177")).
			Italic(true)

	styleInstruction = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	styleKeyword = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindPitch
	kindPrize
	kindFortune
	kindInstruction
	kindSystem
	kindError
	kindTrace
	kindInput // echoed player input
	kindMeta  // meta-command output
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Step right up!"):
		return kindPitch
	case strings.Contains(line, " wins a "):
		return kindPrize
	case len(line) > 2 && strings.HasPrefix(line, "_") && strings.HasSuffix(line, "_"):
		return kindFortune
	case strings.HasPrefix(line, "Use `"),
		strings.HasPrefix(line, "You can choose to pick"):
		return kindInstruction
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "Nobody is in the room"):
		return kindError
	default:
		return kindNarration
	}
}

// renderLine applies the style for a line kind.
func renderLine(line string, kind lineKind) string {
	switch kind {
	case kindInput:
		return styledPlayerInput(line)
	case kindMeta:
		return styledSystemMsg(line)
	case kindPitch:
		return stylePitch.Render(line)
	case kindPrize:
		return stylePrize.Render(line)
	case kindFortune:
		return styledFortune(line)
	case kindInstruction:
		return styledInstruction(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarration.Render(line)
	}
}

// styledInstruction renders an instruction with `keyword` spans in bold.
func styledInstruction(line string) string {
	parts := strings.Split(line, "`")
	var b strings.Builder
	for i, p := range parts {
		if i%2 == 1 {
			b.WriteString(styleKeyword.Render(p))
		} else {
			b.WriteString(styleInstruction.Render(p))
		}
	}
	return b.String()
}

// styledFortune drops the underscore markers and renders the fortune in
// italics.
func styledFortune(line string) string {
	return styleFortune.Render(strings.TrimSuffix(strings.TrimPrefix(line, "_"), "_"))
}

// styledPlayerInput renders the echoed player input in green with "> " prefix.
func styledPlayerInput(input string) string {
	return stylePlayerInput.Render("> " + input)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
