package player

import (
	"fmt"

	"euchre-lite/card"
	"euchre-lite/euchre"
)

// Scripted replays fixed decisions, one queue per step kind. It is meant for
// tests: running out of a queue or hitting a rule error ends the round.
type Scripted struct {
	BidsTop   []euchre.ActionData
	BidsOther []euchre.ActionData
	Discards  []card.Card
	Leads     []card.Card
	Follows   []card.Card

	// Events receives every notification in order.
	Events []euchre.Event
	// Errors receives every rule error reported to the player.
	Errors []error
}

func (s *Scripted) Name() string { return "scripted" }

func (s *Scripted) TakeAction(_ euchre.PlayerState, kind euchre.ActionType) euchre.ActionData {
	switch kind {
	case euchre.ActionBidTop:
		return popData(&s.BidsTop, kind)
	case euchre.ActionBidOther:
		return popData(&s.BidsOther, kind)
	case euchre.ActionDealerDiscard:
		return euchre.Play(popCard(&s.Discards, kind))
	case euchre.ActionLead:
		return euchre.Play(popCard(&s.Leads, kind))
	case euchre.ActionFollow:
		return euchre.Play(popCard(&s.Follows, kind))
	}
	panic(fmt.Sprintf("player: unknown action %d", kind))
}

func (s *Scripted) Notify(_ euchre.PlayerState, event euchre.Event) {
	s.Events = append(s.Events, event)
}

func (s *Scripted) HandleError(err error) bool {
	s.Errors = append(s.Errors, err)
	return false
}

// Exhausted reports whether every queue has been consumed.
func (s *Scripted) Exhausted() bool {
	return len(s.BidsTop) == 0 && len(s.BidsOther) == 0 && len(s.Discards) == 0 &&
		len(s.Leads) == 0 && len(s.Follows) == 0
}

func popData(q *[]euchre.ActionData, kind euchre.ActionType) euchre.ActionData {
	if len(*q) == 0 {
		panic(fmt.Sprintf("player: script has no more %s decisions", kind))
	}
	d := (*q)[0]
	*q = (*q)[1:]
	return d
}

func popCard(q *[]card.Card, kind euchre.ActionType) card.Card {
	if len(*q) == 0 {
		panic(fmt.Sprintf("player: script has no more %s cards", kind))
	}
	c := (*q)[0]
	*q = (*q)[1:]
	return c
}
