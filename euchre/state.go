package euchre

import (
	"slices"

	"euchre-lite/card"
)

// PlayerState is the part of a round visible to one seat.
type PlayerState struct {
	Seat     Seat
	Dealer   Seat
	Top      card.Card
	Contract *Contract
	Hand     []card.Card
	Tricks   *Tricks
}

// PlayerState returns what seat can see. Hand is a copy; Tricks is shared
// and must be treated as read-only.
func (r *Round) PlayerState(seat Seat) PlayerState {
	ps := PlayerState{
		Seat:   seat,
		Dealer: r.dealer,
		Top:    r.top,
		Hand:   slices.Clone(r.hands[seat]),
		Tricks: &r.tricks,
	}
	if r.contract != nil {
		c := *r.contract
		ps.Contract = &c
	}
	return ps
}

// SortedHand orders the hand by effective suit and trick value once trump is
// known, otherwise by suit and rank.
func (ps PlayerState) SortedHand() []card.Card {
	if ps.Contract == nil {
		return card.Sorted(ps.Hand)
	}
	trump := ps.Contract.Suit
	out := slices.Clone(ps.Hand)
	slices.SortFunc(out, func(a, b card.Card) int {
		if sa, sb := a.EffectiveSuit(trump), b.EffectiveSuit(trump); sa != sb {
			return int(sa) - int(sb)
		}
		return a.Value(trump, a) - b.Value(trump, b)
	})
	return out
}

// Playable returns the cards the seat may legally play for the pending step.
func (ps PlayerState) Playable(action ActionType) []card.Card {
	if action == ActionFollow {
		if t := ps.Tricks.Last(); t != nil {
			return t.Filter(ps.Hand)
		}
	}
	return slices.Clone(ps.Hand)
}

// TrickSnapshot is a finished or in-progress trick in plain form.
type TrickSnapshot struct {
	Plays  []TrickPlay `json:"plays"`
	Winner *Seat       `json:"winner,omitempty"`
}

// Snapshot is a comparable, serializable view of the whole round.
type Snapshot struct {
	Dealer    Seat                 `json:"dealer"`
	Top       card.Card            `json:"top"`
	Contract  *Contract            `json:"contract,omitempty"`
	Hands     map[Seat][]card.Card `json:"hands"`
	Tricks    []TrickSnapshot      `json:"tricks"`
	TrickSize int                  `json:"trick_size"`
	Next      *ExpectAction        `json:"next,omitempty"`
	Outcome   *Outcome             `json:"outcome,omitempty"`
}

func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Dealer:    r.dealer,
		Top:       r.top,
		Hands:     make(map[Seat][]card.Card, len(r.hands)),
		Tricks:    make([]TrickSnapshot, 0, r.tricks.Len()),
		TrickSize: r.tricks.Size(),
	}
	if r.contract != nil {
		c := *r.contract
		s.Contract = &c
	}
	for seat, hand := range r.hands {
		s.Hands[seat] = card.Sorted(hand)
	}
	for _, t := range r.tricks.All() {
		ts := TrickSnapshot{Plays: slices.Clone(t.Plays)}
		if r.tricks.Complete(t) {
			w := t.Best().Seat
			ts.Winner = &w
		}
		s.Tricks = append(s.Tricks, ts)
	}
	if r.next != nil {
		n := *r.next
		s.Next = &n
	}
	if o, ok := r.Outcome(); ok {
		s.Outcome = &o
	}
	return s
}
