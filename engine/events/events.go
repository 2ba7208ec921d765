// Package events implements single-pass dispatch of host events to a room
// script. Handlers run to completion; nothing is queued or re-dispatched.
package events

import "github.com/nathoo/midway/types"

// Handler is the set of hooks a room script exposes to the host.
type Handler interface {
	OnActivate()
	OnRoomEvent(addr, ev string)
	OnMessage(addr, topic string, data *string, sender string)
	OnCharEvent(addr, charID string, after, before *types.Char)
	OnExitUse(addr string, action *ExitAction)
	OnCommand(addr string, action types.CmdAction)
}

// Kind identifies which hook an event is delivered to.
type Kind int

const (
	Activate Kind = iota
	RoomEvent
	Message
	CharEvent
	ExitUse
	Command
)

func (k Kind) String() string {
	switch k {
	case Activate:
		return "activate"
	case RoomEvent:
		return "room_event"
	case Message:
		return "message"
	case CharEvent:
		return "char_event"
	case ExitUse:
		return "exit_use"
	case Command:
		return "command"
	default:
		return "unknown"
	}
}

// Event is a host notification addressed to a script instance.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind Kind
	Addr string

	Payload string // RoomEvent: JSON encoded room event

	Topic  string  // Message
	Data   *string // Message: JSON encoded data, or nil
	Sender string  // Message

	CharID string      // CharEvent
	After  *types.Char // CharEvent: nil if the character left
	Before *types.Char // CharEvent: nil if the character arrived

	Exit *ExitAction // ExitUse

	Cmd types.CmdAction // Command
}

// Dispatch delivers events to h in order.
func Dispatch(h Handler, evs ...Event) {
	for _, ev := range evs {
		switch ev.Kind {
		case Activate:
			h.OnActivate()
		case RoomEvent:
			h.OnRoomEvent(ev.Addr, ev.Payload)
		case Message:
			h.OnMessage(ev.Addr, ev.Topic, ev.Data, ev.Sender)
		case CharEvent:
			h.OnCharEvent(ev.Addr, ev.CharID, ev.After, ev.Before)
		case ExitUse:
			if ev.Exit != nil {
				h.OnExitUse(ev.Addr, ev.Exit)
			}
		case Command:
			h.OnCommand(ev.Addr, ev.Cmd)
		}
	}
}

// ExitAction is a character's attempt to use an exit. The script decides
// by calling UseExit or Cancel; an undecided action is cancelled by the host.
type ExitAction struct {
	CharID string
	ExitID string

	decided bool
	use     bool
	msg     string
}

// UseExit lets the character through.
func (a *ExitAction) UseExit() {
	if a.decided {
		return
	}
	a.decided, a.use = true, true
}

// Cancel stops the character, with an optional message shown to them.
func (a *ExitAction) Cancel(msg string) {
	if a.decided {
		return
	}
	a.decided, a.msg = true, msg
}

// Outcome reports the decision. decided is false if the script did neither.
func (a *ExitAction) Outcome() (use bool, msg string, decided bool) {
	return a.use, a.msg, a.decided
}
