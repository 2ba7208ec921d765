package engine

import "github.com/nathoo/midway/engine/state"

// consultPandar prints a fortune. Pandar has no state.
func (e *Engine) consultPandar() {
	e.describe(
		"The mysterious Pandar animates to life to consult its crystal ball.  It soon prints out a fortune in the receptacle.",
		"_"+e.draw(state.Fortunes)+"_",
	)
}
