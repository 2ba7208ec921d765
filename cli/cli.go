// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the Midway room.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/midway/session"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Session   *session.Session
	In        io.Reader
	Out       io.Writer
	EchoInput bool // echo each input line after the prompt (for script playback)
}

// New creates a CLI wired to the given session.
func New(s *session.Session) *CLI {
	return &CLI{
		Session: s,
		In:      os.Stdin,
		Out:     os.Stdout,
	}
}

// Run starts the loop. It shows the intro and the commands on offer,
// then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if intro := c.Session.Defs.Carnival.Intro; intro != "" {
		c.printLine(intro)
		c.printLine("")
	}
	c.printLines(c.meta("/commands"))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		turn := c.Session.Submit(input)
		if turn.Kind == session.TurnPlay {
			c.printLines(turn.Lines)
		} else {
			for _, line := range turn.Lines {
				c.printSystem(line)
			}
		}
		if turn.Quit {
			return
		}
	}
}

func (c *CLI) meta(input string) []string {
	lines, _ := c.Session.Meta(input)
	return lines
}

func (c *CLI) printLines(lines []string) {
	for _, line := range lines {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
