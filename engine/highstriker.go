package engine

import (
	"fmt"

	"github.com/nathoo/midway/engine/state"
)

// markers names the point marker reached for each score below the bell.
var markers = [...]string{
	"ten", "twenty", "thirty", "forty", "fifty",
	"sixty", "seventy", "eighty", "ninety",
}

// bellScore is the top score; it rings the bell and wins a large prize.
const bellScore = 9

// startHighstriker moves the Highstriker from idle to swinging.
func (e *Engine) startHighstriker() {
	e.room.RemoveCommand(KeyHighstriker)
	e.add(KeySwing)
	e.describe(
		e.pitch(state.HSDeclarative, state.HSGoading, state.HSAllure),
		"Use `swing` to play.",
	)
}

// swing scores a single swing and returns the Highstriker to idle,
// whatever the score.
func (e *Engine) swing(actor string) {
	e.room.RemoveCommand(KeySwing)
	e.add(KeyHighstriker)

	score := e.RNG.Intn(10)
	message := fmt.Sprintf("%s %s the mallet %s, causing the puck to %s up to the",
		actor, e.draw(state.MalletVerbs), e.draw(state.MalletAdverbs), e.draw(state.PuckVerbs))

	if score == bellScore {
		e.describe(
			message+" hundred point marker and ringing the bell!",
			winLine(actor, e.draw(state.LargePrizes)),
		)
		return
	}
	if score < 0 || score >= len(markers) {
		score = 0
	}
	e.describe(fmt.Sprintf("%s %s point marker.", message, markers[score]))
}
