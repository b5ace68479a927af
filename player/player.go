// Package player defines who decides actions at a euchre table.
package player

import (
	"euchre-lite/euchre"
)

// Player is the core interface every seat occupant implements.
type Player interface {
	// TakeAction is called when it's the player's turn. kind is the step the
	// round expects; the returned payload must fit it.
	TakeAction(state euchre.PlayerState, kind euchre.ActionType) euchre.ActionData
	// Notify delivers a round event together with the player's current view.
	Notify(state euchre.PlayerState, event euchre.Event)
	// HandleError is called after a rule error. Returning true asks to be
	// prompted again; false aborts the round.
	HandleError(err error) bool
}

// Named is implemented by players with a human-readable identifier for logs.
type Named interface {
	Name() string
}

// NameOf returns p's name, or "player" when it has none.
func NameOf(p Player) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return "player"
}
