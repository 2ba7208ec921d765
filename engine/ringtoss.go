package engine

import (
	"github.com/nathoo/midway/engine/state"
	"github.com/nathoo/midway/types"
)

// startRingtoss moves Ring Toss from idle to picking a target.
func (e *Engine) startRingtoss() {
	e.room.RemoveCommand(KeyRingtoss)
	e.describe(
		e.pitch(state.RTDeclarative, state.RTGoading, state.RTAllure),
		"You can choose to pick an easy, medium, or hard target.  `pick easy`, `pick medium`, or `pick hard`",
	)
	e.add(KeyPickEasy)
	e.add(KeyPickMedium)
	e.add(KeyPickHard)
}

// pickTarget sets the difficulty and moves Ring Toss to tossing.
func (e *Engine) pickTarget(d types.Difficulty) {
	e.room.RemoveCommand(KeyPickEasy)
	e.room.RemoveCommand(KeyPickMedium)
	e.room.RemoveCommand(KeyPickHard)
	e.State.Difficulty = d
	e.add(KeyToss)
	e.describe("Use `toss` to play.")
}

// toss resolves one ring. A ringer wins from the pool matching the picked
// difficulty; the third miss ends the game.
func (e *Engine) toss(actor string) {
	if e.RNG.Float64() > e.State.Difficulty.Threshold() {
		e.describe(
			actor+" tosses their ring and it lands squarely on the bottle.",
			winLine(actor, e.draw(state.PrizePool(e.State.Difficulty))),
		)
		e.endRingtoss()
		return
	}

	e.describe(actor + " tosses their ring and it misses the bottle.")
	if e.miss(state.RTGoading, &e.State.Toss) {
		e.endRingtoss()
	}
}

func (e *Engine) endRingtoss() {
	e.State.Toss = 1
	e.room.RemoveCommand(KeyToss)
	e.add(KeyRingtoss)
}
