// Package room provides an in-memory room host: it owns the command
// registry and the occupants, and delivers host events to one script.
package room

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/nathoo/midway/engine/events"
	"github.com/nathoo/midway/engine/parser"
	"github.com/nathoo/midway/types"
)

var (
	// ErrUnknownChar is returned for a character id that is not in the room.
	ErrUnknownChar = errors.New("unknown character")
	// ErrUnknownCommand is returned when input matches no registered command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNameTaken is returned when a joining name is already present.
	ErrNameTaken = errors.New("name already in the room")
)

// Entry is a registered command.
type Entry struct {
	Keyword string
	Command types.Command
}

// Room is a single room instance running one script.
type Room struct {
	Addr string

	script   events.Handler
	commands map[string]types.Command
	chars    []types.Char

	listenChar bool
	listenRoom bool
	listenExit bool
	listenMsg  bool

	pending types.Result
}

// New creates an empty room. Attach a script before activating it.
func New(addr string) *Room {
	return &Room{
		Addr:     addr,
		commands: map[string]types.Command{},
	}
}

// Attach sets the script the room delivers events to.
func (r *Room) Attach(script events.Handler) {
	r.script = script
}

// --- Script-facing capability ---

// AddCommand registers a command, replacing any earlier registration of
// the keyword.
func (r *Room) AddCommand(keyword string, cmd types.Command) {
	r.commands[keyword] = cmd
	r.trace("command_added", map[string]any{"keyword": keyword})
}

// RemoveCommand unregisters a command. It reports whether it was registered.
func (r *Room) RemoveCommand(keyword string) bool {
	if _, ok := r.commands[keyword]; !ok {
		return false
	}
	delete(r.commands, keyword)
	r.trace("command_removed", map[string]any{"keyword": keyword})
	return true
}

// Describe broadcasts a line to everyone in the room.
func (r *Room) Describe(msg string) {
	r.pending.Output = append(r.pending.Output, msg)
}

// HasChars reports whether anyone is in the room.
func (r *Room) HasChars() bool {
	return len(r.chars) > 0
}

// ListenCharEvent subscribes the script to presence changes.
func (r *Room) ListenCharEvent() { r.listenChar = true }

// Listen subscribes the script to room events.
func (r *Room) Listen() { r.listenRoom = true }

// ListenExit subscribes the script to exit use.
func (r *Room) ListenExit() { r.listenExit = true }

// ListenMessage subscribes the script to posted messages.
func (r *Room) ListenMessage() { r.listenMsg = true }

// --- Host operations ---

// Activate (re)starts the script. Registrations, subscriptions and trace
// events from a previous activation are cleared first.
func (r *Room) Activate() types.Result {
	r.pending = types.Result{}
	r.commands = map[string]types.Command{}
	r.listenChar, r.listenRoom, r.listenExit, r.listenMsg = false, false, false, false

	r.trace("activated", map[string]any{"addr": r.Addr})
	r.dispatch(events.Event{Kind: events.Activate, Addr: r.Addr})
	return r.flush()
}

// Join adds a character to the room.
func (r *Room) Join(name string) (types.Char, types.Result, error) {
	if _, ok := r.CharByName(name); ok {
		return types.Char{}, types.Result{}, fmt.Errorf("%w: %s", ErrNameTaken, name)
	}

	c := types.Char{ID: uuid.NewString(), Name: name}
	r.chars = append(r.chars, c)
	r.trace("char_arrived", map[string]any{"char": c.ID, "name": c.Name})

	r.roomEvent("arrive", c)
	if r.listenChar {
		after := c
		r.dispatch(events.Event{Kind: events.CharEvent, Addr: r.Addr, CharID: c.ID, After: &after})
	}
	return c, r.flush(), nil
}

// Leave removes a character. The script sees the departure after the
// character is gone, so HasChars reports the remaining occupants.
func (r *Room) Leave(charID string) (types.Result, error) {
	c, idx, ok := r.find(charID)
	if !ok {
		return types.Result{}, fmt.Errorf("%w: %s", ErrUnknownChar, charID)
	}

	r.chars = append(r.chars[:idx], r.chars[idx+1:]...)
	r.trace("char_left", map[string]any{"char": c.ID, "name": c.Name})

	r.roomEvent("leave", c)
	if r.listenChar {
		before := c
		r.dispatch(events.Event{Kind: events.CharEvent, Addr: r.Addr, CharID: c.ID, Before: &before})
	}
	return r.flush(), nil
}

// UseExit lets a character leave through an exit. A script listening for
// exit use decides; one that decides nothing cancels the attempt.
func (r *Room) UseExit(charID, exitID string) (types.Result, error) {
	if _, _, ok := r.find(charID); !ok {
		return types.Result{}, fmt.Errorf("%w: %s", ErrUnknownChar, charID)
	}

	if r.listenExit {
		action := &events.ExitAction{CharID: charID, ExitID: exitID}
		r.dispatch(events.Event{Kind: events.ExitUse, Addr: r.Addr, Exit: action})

		use, msg, decided := action.Outcome()
		if !use {
			if !decided || msg == "" {
				msg = "You cannot use that exit right now."
			}
			r.trace("exit_cancelled", map[string]any{"char": charID, "exit": exitID})
			r.Describe(msg)
			return r.flush(), nil
		}
	}

	pending := r.flush()
	res, err := r.Leave(charID)
	if err != nil {
		return types.Result{}, err
	}
	pending.Events = append(pending.Events, res.Events...)
	pending.Output = append(pending.Output, res.Output...)
	return pending, nil
}

// Post delivers a message to the script if it listens for messages.
func (r *Room) Post(topic string, data *string, sender string) types.Result {
	if r.listenMsg {
		r.dispatch(events.Event{Kind: events.Message, Addr: r.Addr, Topic: topic, Data: data, Sender: sender})
	}
	return r.flush()
}

// Exec runs player input as the given character.
func (r *Room) Exec(charID, input string) (types.Result, error) {
	c, _, ok := r.find(charID)
	if !ok {
		return types.Result{}, fmt.Errorf("%w: %s", ErrUnknownChar, charID)
	}

	keyword := parser.Match(input, r.commands)
	if keyword == "" {
		return types.Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, input)
	}

	r.dispatch(events.Event{
		Kind: events.Command,
		Addr: r.Addr,
		Cmd:  types.CmdAction{Keyword: keyword, Char: c},
	})
	return r.flush(), nil
}

// --- Queries ---

// Commands returns the registered commands sorted by keyword.
func (r *Room) Commands() []Entry {
	entries := make([]Entry, 0, len(r.commands))
	for kw, cmd := range r.commands {
		entries = append(entries, Entry{Keyword: kw, Command: cmd})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Keyword < entries[j].Keyword })
	return entries
}

// Registered reports whether a keyword is registered.
func (r *Room) Registered(keyword string) bool {
	_, ok := r.commands[keyword]
	return ok
}

// Chars returns the occupants in arrival order.
func (r *Room) Chars() []types.Char {
	return append([]types.Char(nil), r.chars...)
}

// CharByName finds an occupant by display name.
func (r *Room) CharByName(name string) (types.Char, bool) {
	for _, c := range r.chars {
		if c.Name == name {
			return c, true
		}
	}
	return types.Char{}, false
}

// Snapshot returns the room part of a state dump.
func (r *Room) Snapshot() types.Snapshot {
	cmds := make(map[string]string, len(r.commands))
	for kw, cmd := range r.commands {
		cmds[kw] = cmd.Pattern
	}
	return types.Snapshot{
		Room:      r.Addr,
		Occupants: r.Chars(),
		Commands:  cmds,
	}
}

// --- internals ---

func (r *Room) dispatch(ev events.Event) {
	if r.script == nil {
		return
	}
	events.Dispatch(r.script, ev)
}

// roomEvent delivers a JSON encoded room event to a listening script.
func (r *Room) roomEvent(typ string, c types.Char) {
	if !r.listenRoom {
		return
	}
	payload, err := json.Marshal(struct {
		Type string `json:"type"`
		Char struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"char"`
	}{Type: typ, Char: struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{ID: c.ID, Name: c.Name}})
	if err != nil {
		return
	}
	r.dispatch(events.Event{Kind: events.RoomEvent, Addr: r.Addr, Payload: string(payload)})
}

func (r *Room) find(charID string) (types.Char, int, bool) {
	for i, c := range r.chars {
		if c.ID == charID {
			return c, i, true
		}
	}
	return types.Char{}, -1, false
}

func (r *Room) trace(typ string, data map[string]any) {
	r.pending.Events = append(r.pending.Events, types.Event{Type: typ, Data: data})
}

func (r *Room) flush() types.Result {
	res := r.pending
	r.pending = types.Result{}
	return res
}
