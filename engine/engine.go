// Package engine implements the carnival room script: the hooks the host
// calls, and the minigame state machines they drive.
package engine

import (
	"github.com/nathoo/midway/engine/events"
	"github.com/nathoo/midway/engine/state"
	"github.com/nathoo/midway/types"
)

// Room is the host capability the script drives: the room's command
// registry, its broadcast channel and its presence subscription.
type Room interface {
	AddCommand(keyword string, cmd types.Command)
	RemoveCommand(keyword string) bool
	Describe(msg string)
	HasChars() bool
	ListenCharEvent()
}

// Command keywords.
const (
	KeyHighstriker = "highstriker"
	KeySwing       = "swing"
	KeyMilkbottle  = "milkbottle"
	KeyThrow       = "throw"
	KeyRingtoss    = "ringtoss"
	KeyPickEasy    = "pickeasy"
	KeyPickMedium  = "pickmedium"
	KeyPickHard    = "pickhard"
	KeyToss        = "toss"
	KeyPandar      = "pandar"
)

var commands = map[string]types.Command{
	KeyHighstriker: {Pattern: "play highstriker", Desc: "Test your strength on the Highstriker."},
	KeySwing:       {Pattern: "swing", Desc: "Swing the mallet."},
	KeyMilkbottle:  {Pattern: "play milkbottle", Desc: "Knock down the milk bottles."},
	KeyThrow:       {Pattern: "throw", Desc: "Throw a ball at the bottles."},
	KeyRingtoss:    {Pattern: "play ringtoss", Desc: "Toss rings onto bottle necks."},
	KeyPickEasy:    {Pattern: "pick easy", Desc: "Aim for an easy target."},
	KeyPickMedium:  {Pattern: "pick medium", Desc: "Aim for a medium target."},
	KeyPickHard:    {Pattern: "pick hard", Desc: "Aim for a hard target."},
	KeyToss:        {Pattern: "toss", Desc: "Toss a ring."},
	KeyPandar:      {Pattern: "play pandar", Desc: "Have Pandar tell your fortune."},
}

// CommandFor returns the registration used for a keyword.
func CommandFor(keyword string) (types.Command, bool) {
	cmd, ok := commands[keyword]
	return cmd, ok
}

const stepRightUp = "Step right up!  Step right up!"

// Engine is one carnival script instance bound to a room.
type Engine struct {
	Defs  *state.Defs
	State *types.State
	RNG   Source

	room Room
}

var _ events.Handler = (*Engine)(nil)

// New creates a script instance. Nothing is registered until the host
// activates it.
func New(room Room, defs *state.Defs, rng Source) *Engine {
	return &Engine{
		Defs:  defs,
		State: state.NewState(),
		RNG:   rng,
		room:  room,
	}
}

// OnActivate registers the attractions and subscribes to presence changes.
// The host clears earlier registrations before re-activating a script.
func (e *Engine) OnActivate() {
	e.State = state.NewState()
	e.add(KeyHighstriker)
	e.add(KeyMilkbottle)
	e.add(KeyRingtoss)
	e.add(KeyPandar)
	e.room.ListenCharEvent()
}

// OnRoomEvent is not used by the carnival.
func (e *Engine) OnRoomEvent(addr, ev string) {}

// OnMessage is not used by the carnival.
func (e *Engine) OnMessage(addr, topic string, data *string, sender string) {}

// OnExitUse is not used by the carnival.
func (e *Engine) OnExitUse(addr string, action *events.ExitAction) {}

// OnCharEvent resets every game when a character leaves mid-game, so the
// next player does not inherit a half-played turn. Nothing is done when the
// room is left empty.
func (e *Engine) OnCharEvent(addr, charID string, after, before *types.Char) {
	if after != nil || before == nil {
		return
	}
	if !e.room.HasChars() {
		return
	}

	state.Reset(e.State)
	e.room.RemoveCommand(KeyThrow)
	e.readd(KeyMilkbottle)
	e.room.RemoveCommand(KeyToss)
	e.room.RemoveCommand(KeyPickEasy)
	e.room.RemoveCommand(KeyPickMedium)
	e.room.RemoveCommand(KeyPickHard)
	e.readd(KeyRingtoss)
	e.room.RemoveCommand(KeySwing)
	e.readd(KeyHighstriker)
}

// OnCommand advances the minigame the keyword belongs to.
// Unknown keywords are ignored.
func (e *Engine) OnCommand(addr string, action types.CmdAction) {
	actor := action.Char.Name

	switch action.Keyword {
	case KeyHighstriker:
		e.startHighstriker()
	case KeySwing:
		e.swing(actor)
	case KeyMilkbottle:
		e.startMilkbottle()
	case KeyThrow:
		e.throw(actor)
	case KeyRingtoss:
		e.startRingtoss()
	case KeyPickEasy:
		e.pickTarget(types.Easy)
	case KeyPickMedium:
		e.pickTarget(types.Medium)
	case KeyPickHard:
		e.pickTarget(types.Hard)
	case KeyToss:
		e.toss(actor)
	case KeyPandar:
		e.consultPandar()
	}
}

// FillSnapshot writes the game state into a room snapshot.
func (e *Engine) FillSnapshot(s *types.Snapshot) {
	s.Games = types.GameSnapshot{
		Difficulty: e.State.Difficulty.String(),
		Throw:      e.State.Throw,
		Toss:       e.State.Toss,
	}
	if r, ok := e.RNG.(*RNG); ok {
		seed := r.Seed()
		s.Games.Seed = &seed
		s.Games.Draws = r.Position()
	}
}

// add registers a keyword with its standard command.
func (e *Engine) add(keyword string) {
	e.room.AddCommand(keyword, commands[keyword])
}

// readd removes and registers a keyword again.
func (e *Engine) readd(keyword string) {
	e.room.RemoveCommand(keyword)
	e.add(keyword)
}

// draw picks a random entry from a named content pool.
func (e *Engine) draw(pool string) string {
	return pick(e.RNG, e.Defs.Pool(pool))
}

// pitch composes a barker's step-right-up line from three pools.
func (e *Engine) pitch(declarative, goading, allure string) string {
	return stepRightUp + " " + e.draw(declarative) + " " + e.draw(goading) + " " + e.draw(allure)
}

func (e *Engine) describe(lines ...string) {
	for _, l := range lines {
		e.room.Describe(l)
	}
}

func winLine(actor, prize string) string {
	return actor + " wins a " + prize + "!"
}

// miss narrates a missed attempt and advances its counter. It reports
// whether that was the last try.
func (e *Engine) miss(goading string, counter *int) bool {
	attempt := *counter
	if state.Advance(counter) {
		e.describe("Awwr, better luck next time!")
		return true
	}
	if state.TriesLeft(attempt) == 1 {
		e.describe(e.draw(goading) + " You got one more try!")
	} else {
		e.describe(e.draw(goading) + " You got two more tries!")
	}
	return false
}
