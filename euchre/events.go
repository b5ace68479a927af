package euchre

import (
	"fmt"

	"euchre-lite/card"
)

// Event is an informational notice queued by a round or game. It is one of
// DealEvent, CallEvent, TrickEvent, RoundEvent or GameEvent.
type Event interface {
	isEvent()
	String() string
}

// DealEvent is queued when a round starts.
type DealEvent struct {
	Dealer Seat
	Top    card.Card
}

// CallEvent is queued when the auction ends.
type CallEvent struct {
	Contract Contract
}

// TrickEvent carries a copy of a finished trick.
type TrickEvent struct {
	Trick  *Trick
	Winner Seat
}

// RoundEvent is queued when the round is decided.
type RoundEvent struct {
	Outcome Outcome
}

// GameEvent is returned by Game.Advance when a team reaches the target score.
type GameEvent struct {
	Winner Team
	Scores [2]int
}

func (DealEvent) isEvent()  {}
func (CallEvent) isEvent()  {}
func (TrickEvent) isEvent() {}
func (RoundEvent) isEvent() {}
func (GameEvent) isEvent()  {}

func (e DealEvent) String() string {
	return fmt.Sprintf("%s deals, %s turned up", e.Dealer, e.Top)
}

func (e CallEvent) String() string { return e.Contract.String() }

func (e TrickEvent) String() string {
	return fmt.Sprintf("%s takes %s", e.Winner, e.Trick)
}

func (e RoundEvent) String() string { return e.Outcome.String() }

func (e GameEvent) String() string {
	return fmt.Sprintf("%s wins the game %d-%d", e.Winner, e.Scores[e.Winner], e.Scores[e.Winner.Other()])
}
