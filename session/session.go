// Package session ties a room, its carnival script and the acting character
// together for the terminal front-ends.
package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/midway/engine"
	"github.com/nathoo/midway/engine/state"
	"github.com/nathoo/midway/room"
	"github.com/nathoo/midway/types"
)

// ErrNoActor is returned when input arrives while nobody is playing.
var ErrNoActor = errors.New("nobody is in the room")

// ExitOut is the exit characters leave through.
const ExitOut = "out"

// Session is one room with its script and the character typing commands.
type Session struct {
	Room   *room.Room
	Engine *engine.Engine
	Defs   *state.Defs
	Trace  bool

	actor   string // character id, "" when nobody acts
	lastCmd string // for "again"/"g" repeat
}

// TurnKind says how a front-end should present a Turn.
type TurnKind int

const (
	// TurnPlay is room output from a command.
	TurnPlay TurnKind = iota
	// TurnMeta is output from a meta-command.
	TurnMeta
	// TurnRefused is a single line explaining why input did nothing.
	TurnRefused
)

// Turn is the outcome of one submitted line.
type Turn struct {
	Input string // the line as submitted
	Lines []string
	Kind  TurnKind
	Quit  bool
}

// New builds a room at addr running the carnival script. The room is not
// activated until Start.
func New(addr string, defs *state.Defs, rng engine.Source) *Session {
	rm := room.New(addr)
	eng := engine.New(rm, defs, rng)
	rm.Attach(eng)
	return &Session{Room: rm, Engine: eng, Defs: defs}
}

// Start activates the room and, if player is not empty, joins it as the
// acting character.
func (s *Session) Start(player string) ([]string, error) {
	res := s.Room.Activate()
	lines := s.render(res)
	if player == "" {
		return lines, nil
	}
	joined, err := s.join(player)
	if err != nil {
		return lines, err
	}
	return append(lines, joined...), nil
}

// Actor returns the acting character.
func (s *Session) Actor() (types.Char, bool) {
	for _, c := range s.Room.Chars() {
		if c.ID == s.actor {
			return c, true
		}
	}
	return types.Char{}, false
}

// Step runs player input as the acting character.
func (s *Session) Step(input string) ([]string, error) {
	actor, ok := s.Actor()
	if !ok {
		return nil, ErrNoActor
	}
	res, err := s.Room.Exec(actor.ID, input)
	if err != nil {
		return nil, err
	}
	return s.render(res), nil
}

// Submit handles one line of player input: meta-commands, "again"/"g"
// repeats, and room commands run as the acting character. Blank input
// yields an empty Turn.
func (s *Session) Submit(input string) Turn {
	input = strings.TrimSpace(input)
	if input == "" {
		return Turn{}
	}

	if strings.HasPrefix(input, "/") {
		lines, quit := s.Meta(input)
		return Turn{Input: input, Lines: lines, Kind: TurnMeta, Quit: quit}
	}

	cmd := input
	switch strings.ToLower(input) {
	case "again", "g":
		if s.lastCmd == "" {
			return Turn{Input: input, Lines: []string{"Nothing to repeat."}, Kind: TurnRefused}
		}
		cmd = s.lastCmd
	default:
		s.lastCmd = input
	}

	lines, err := s.Step(cmd)
	if err != nil {
		return Turn{Input: input, Lines: []string{Explain(err)}, Kind: TurnRefused}
	}
	return Turn{Input: input, Lines: lines, Kind: TurnPlay}
}

// Explain turns a Step error into a line for the player.
func Explain(err error) string {
	switch {
	case errors.Is(err, ErrNoActor):
		return "Nobody is in the room. Use /join <name> to step in."
	case errors.Is(err, room.ErrUnknownCommand):
		return "You can't do that here. Type /commands to see what you can do."
	default:
		return err.Error()
	}
}

// Snapshot dumps the room and its games.
func (s *Session) Snapshot() types.Snapshot {
	snap := s.Room.Snapshot()
	s.Engine.FillSnapshot(&snap)
	return snap
}

// StateYAML renders Snapshot as YAML.
func (s *Session) StateYAML() (string, error) {
	data, err := yaml.Marshal(s.Snapshot())
	if err != nil {
		return "", fmt.Errorf("encoding state: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// Meta dispatches a meta-command. It returns output lines and whether the
// front-end should exit.
func (s *Session) Meta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return []string{"Type /help for available commands."}, false
	}
	cmd := parts[0]
	arg := strings.Join(parts[1:], " ")

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return Help(), false

	case "/join":
		if arg == "" {
			return []string{"Usage: /join <name>"}, false
		}
		lines, err := s.join(arg)
		if err != nil {
			return []string{fmt.Sprintf("Join failed: %v", err)}, false
		}
		return lines, false

	case "/leave":
		return s.leave(arg), false

	case "/as":
		if arg == "" {
			return []string{"Usage: /as <name>"}, false
		}
		c, ok := s.Room.CharByName(arg)
		if !ok {
			return []string{fmt.Sprintf("%s is not in the room.", arg)}, false
		}
		s.actor = c.ID
		return []string{fmt.Sprintf("You are now %s.", c.Name)}, false

	case "/who":
		return s.who(), false

	case "/commands":
		return s.commands(), false

	case "/state":
		out, err := s.StateYAML()
		if err != nil {
			return []string{err.Error()}, false
		}
		return strings.Split(out, "\n"), false

	case "/reload":
		lines := s.render(s.Room.Activate())
		return append([]string{"The attractions are reset."}, lines...), false

	case "/trace":
		s.Trace = !s.Trace
		if s.Trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

// Help lists the meta-commands.
func Help() []string {
	return []string{
		"System:",
		"  /join <name>   — Bring a character into the room and play as them",
		"  /leave [name]  — Leave the room (default: yourself)",
		"  /as <name>     — Play as another character in the room",
		"  /who           — List the characters in the room",
		"  /commands      — List the commands the room offers right now",
		"  /state         — Debug: dump room and game state",
		"  /reload        — Restart the room script",
		"  /trace         — Toggle debug trace output",
		"  /help          — Show this help",
		"  /quit          — Exit",
		"",
		"Attractions:",
		"  play highstriker — then swing",
		"  play milkbottle  — then throw (three tries)",
		"  play ringtoss    — pick easy/medium/hard, then toss (three tries)",
		"  play pandar      — Have your fortune told",
		"  again (g)        — Repeat your last command",
	}
}

func (s *Session) join(name string) ([]string, error) {
	c, res, err := s.Room.Join(name)
	if err != nil {
		return nil, err
	}
	s.actor = c.ID
	lines := []string{fmt.Sprintf("%s steps up to the midway.", c.Name)}
	return append(lines, s.render(res)...), nil
}

func (s *Session) leave(name string) []string {
	var c types.Char
	var ok bool
	if name == "" {
		c, ok = s.Actor()
	} else {
		c, ok = s.Room.CharByName(name)
	}
	if !ok {
		if name == "" {
			return []string{Explain(ErrNoActor)}
		}
		return []string{fmt.Sprintf("%s is not in the room.", name)}
	}

	res, err := s.Room.UseExit(c.ID, ExitOut)
	if err != nil {
		return []string{fmt.Sprintf("Leave failed: %v", err)}
	}
	if _, still := s.Room.CharByName(c.Name); still {
		return s.render(res)
	}

	lines := append([]string{fmt.Sprintf("%s wanders off.", c.Name)}, s.render(res)...)
	if c.ID != s.actor {
		return lines
	}

	s.actor = ""
	if chars := s.Room.Chars(); len(chars) > 0 {
		s.actor = chars[0].ID
		return append(lines, fmt.Sprintf("You are now %s.", chars[0].Name))
	}
	return append(lines, "The midway is empty. Use /join <name> to step in.")
}

func (s *Session) who() []string {
	chars := s.Room.Chars()
	if len(chars) == 0 {
		return []string{"Nobody is here."}
	}
	lines := make([]string, 0, len(chars))
	for _, c := range chars {
		mark := " "
		if c.ID == s.actor {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%s %s", mark, c.Name))
	}
	return lines
}

func (s *Session) commands() []string {
	entries := s.Room.Commands()
	if len(entries) == 0 {
		return []string{"No commands are offered right now."}
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("  %-18s — %s", e.Command.Pattern, e.Command.Desc))
	}
	return lines
}

// render returns the output lines of a step, followed by trace lines when
// tracing is on.
func (s *Session) render(res types.Result) []string {
	lines := append([]string(nil), res.Output...)
	if s.Trace {
		lines = append(lines, TraceLines(res)...)
	}
	return lines
}

// TraceLines formats the host events of a step.
func TraceLines(res types.Result) []string {
	if len(res.Events) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(res.Events))}
	for _, ev := range res.Events {
		keys := make([]string, 0, len(ev.Data))
		for k := range ev.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		b.WriteString("[trace]   " + ev.Type)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, ev.Data[k])
		}
		lines = append(lines, b.String())
	}
	return lines
}
