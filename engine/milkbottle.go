package engine

import "github.com/nathoo/midway/engine/state"

// throwHitChance is the probability that a throw topples the bottles.
const throwHitChance = 0.3

// startMilkbottle moves the Milk Bottle game from idle to throwing.
func (e *Engine) startMilkbottle() {
	e.room.RemoveCommand(KeyMilkbottle)
	e.add(KeyThrow)
	e.describe(
		e.pitch(state.MBDeclarative, state.MBGoading, state.MBAllure),
		"Use `throw` to play.",
	)
}

// throw resolves one ball. A hit wins a small prize; the third miss ends
// the game. Either way the game returns to idle with a fresh counter.
func (e *Engine) throw(actor string) {
	if e.RNG.Float64() < throwHitChance {
		e.describe(
			actor+" lands their ball square in the milk bottles and knocks them all over.",
			winLine(actor, e.draw(state.SmallPrizes)),
		)
		e.endMilkbottle()
		return
	}

	e.describe(actor + " misses the milk bottles.")
	if e.miss(state.MBGoading, &e.State.Throw) {
		e.endMilkbottle()
	}
}

func (e *Engine) endMilkbottle() {
	e.State.Throw = 1
	e.room.RemoveCommand(KeyThrow)
	e.add(KeyMilkbottle)
}
