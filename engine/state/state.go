// Package state manages the per-room minigame state and the immutable
// flavor tables the carnival draws its text from.
package state

import "github.com/nathoo/midway/types"

// MaxAttempts is the number of tries a player gets per milk bottle or
// ring toss game.
const MaxAttempts = 3

// Defs holds the immutable carnival content loaded from Lua.
type Defs struct {
	Carnival types.CarnivalDef
	Pools    map[string][]string
}

// Pool names every carnival content set must define.
const (
	SmallPrizes   = "small_prizes"
	MediumPrizes  = "medium_prizes"
	LargePrizes   = "large_prizes"
	MalletVerbs   = "mallet_verbs"
	MalletAdverbs = "mallet_adverbs"
	PuckVerbs     = "puck_verbs"
	HSDeclarative = "hs_declarative"
	HSGoading     = "hs_goading"
	HSAllure      = "hs_allure"
	MBDeclarative = "mb_declarative"
	MBGoading     = "mb_goading"
	MBAllure      = "mb_allure"
	RTDeclarative = "rt_declarative"
	RTGoading     = "rt_goading"
	RTAllure      = "rt_allure"
	Fortunes      = "pandar_fortunes"
)

// RequiredPools lists every pool name in a stable order.
var RequiredPools = []string{
	SmallPrizes, MediumPrizes, LargePrizes,
	MalletVerbs, MalletAdverbs, PuckVerbs,
	HSDeclarative, HSGoading, HSAllure,
	MBDeclarative, MBGoading, MBAllure,
	RTDeclarative, RTGoading, RTAllure,
	Fortunes,
}

// PrizePools lists the prize pools, which must not share entries.
var PrizePools = []string{SmallPrizes, MediumPrizes, LargePrizes}

// Pool returns the named pool. Unknown pools return nil.
func (d *Defs) Pool(name string) []string {
	return d.Pools[name]
}

// PrizePool returns the prize pool awarded for a ring toss difficulty.
func PrizePool(d types.Difficulty) string {
	switch d {
	case types.Medium:
		return MediumPrizes
	case types.Hard:
		return LargePrizes
	default:
		return SmallPrizes
	}
}

// NewState creates a fresh minigame state: easy target, first attempts.
func NewState() *types.State {
	return &types.State{
		Difficulty: types.Easy,
		Throw:      1,
		Toss:       1,
	}
}

// Reset puts both attempt counters back to the first attempt.
// The selected difficulty is kept; it is replaced on the next pick.
func Reset(s *types.State) {
	s.Throw = 1
	s.Toss = 1
}

// Advance moves an attempt counter to the next try and reports whether the
// game is over (the counter was already on its last try). A finished game
// resets the counter to 1.
func Advance(counter *int) (over bool) {
	if *counter >= MaxAttempts {
		*counter = 1
		return true
	}
	*counter++
	return false
}

// TriesLeft returns how many tries remain after a miss on the given attempt.
func TriesLeft(attempt int) int {
	left := MaxAttempts - attempt
	if left < 0 {
		return 0
	}
	return left
}
