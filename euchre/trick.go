package euchre

import (
	"slices"
	"strings"

	"euchre-lite/card"
)

// TrickPlay is one card played into a trick.
type TrickPlay struct {
	Seat Seat      `json:"seat"`
	Card card.Card `json:"card"`
}

// Trick is one exchange of cards. The winning play is tracked as cards are
// played; a later card only takes the trick with a strictly higher value.
// TrickSnapshot is its serialized form.
type Trick struct {
	Trump     card.Suit
	Plays     []TrickPlay
	best      int
	bestValue int
}

func NewTrick(trump card.Suit, leader Seat, c card.Card) *Trick {
	return &Trick{
		Trump:     trump,
		Plays:     []TrickPlay{{Seat: leader, Card: c}},
		bestValue: c.Value(trump, c),
	}
}

func (t *Trick) Len() int { return len(t.Plays) }

func (t *Trick) Lead() TrickPlay { return t.Plays[0] }

// Best is the play currently winning the trick.
func (t *Trick) Best() TrickPlay { return t.Plays[t.best] }

func (t *Trick) BestValue() int { return t.bestValue }

// CardOf returns the card played by seat, if any.
func (t *Trick) CardOf(seat Seat) (card.Card, bool) {
	for _, p := range t.Plays {
		if p.Seat == seat {
			return p.Card, true
		}
	}
	return card.CardInvalid, false
}

// IsFollowingLead reports whether playing c from hand is legal: c follows
// the lead, or nothing in hand could.
func (t *Trick) IsFollowingLead(hand []card.Card, c card.Card) bool {
	lead := t.Lead().Card
	if c.IsFollowing(t.Trump, lead) {
		return true
	}
	return !slices.ContainsFunc(hand, func(h card.Card) bool { return h.IsFollowing(t.Trump, lead) })
}

// Filter returns the cards of hand that may be played into the trick.
func (t *Trick) Filter(hand []card.Card) []card.Card {
	lead := t.Lead().Card
	var following []card.Card
	for _, c := range hand {
		if c.IsFollowing(t.Trump, lead) {
			following = append(following, c)
		}
	}
	if len(following) == 0 {
		return slices.Clone(hand)
	}
	return following
}

// Play adds a card to the trick.
func (t *Trick) Play(seat Seat, c card.Card) {
	v := c.Value(t.Trump, t.Lead().Card)
	if v > t.bestValue {
		t.bestValue = v
		t.best = len(t.Plays)
	}
	t.Plays = append(t.Plays, TrickPlay{Seat: seat, Card: c})
}

func (t *Trick) Clone() *Trick {
	c := *t
	c.Plays = slices.Clone(t.Plays)
	return &c
}

func (t *Trick) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, p := range t.Plays {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Seat.Abbr())
		sb.WriteByte(':')
		sb.WriteString(p.Card.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
