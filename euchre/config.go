package euchre

import (
	"fmt"
	"math/rand"
	"slices"

	"euchre-lite/card"
)

const (
	HandSize  = 5
	DeckSize  = 24
	dealCount = 4*HandSize + 1
)

// RoundConfig is the initial condition of a round. It is immutable once
// built; Round copies the hands before mutating them.
type RoundConfig struct {
	Dealer Seat                 `json:"dealer"`
	Hands  map[Seat][]card.Card `json:"hands"`
	Top    card.Card            `json:"top"`
}

// NewRoundConfig deals five cards to each seat clockwise from the dealer's
// left, then turns up the top card. deck is consumed from its end.
func NewRoundConfig(dealer Seat, deck card.Deck) (RoundConfig, error) {
	if !dealer.Valid() {
		return RoundConfig{}, fmt.Errorf("invalid dealer %d", byte(dealer))
	}
	if deck.Count() < DeckSize {
		return RoundConfig{}, fmt.Errorf("%w: %d cards", ErrIncompleteDeck, deck.Count())
	}
	deck = slices.Clone(deck)
	cfg := RoundConfig{
		Dealer: dealer,
		Hands:  make(map[Seat][]card.Card, 4),
	}
	for _, seat := range dealer.NextN(4) {
		cfg.Hands[seat] = deck.Take(HandSize)
	}
	cfg.Top = deck.Take(1)[0]
	if err := cfg.Validate(); err != nil {
		return RoundConfig{}, err
	}
	return cfg, nil
}

// RandomRoundConfig picks a dealer and deals a deck shuffled by rng.
func RandomRoundConfig(rng *rand.Rand) RoundConfig {
	return RandomRoundConfigWithDealer(rng, Seat(rng.Intn(4)))
}

func RandomRoundConfigWithDealer(rng *rand.Rand, dealer Seat) RoundConfig {
	cfg, err := NewRoundConfig(dealer, card.NewShuffledDeck(rng))
	if err != nil {
		panic(fmt.Sprintf("euchre: dealing a full deck failed: %v", err))
	}
	return cfg
}

// Validate checks the hand sizes and that the 21 dealt cards are distinct
// euchre cards.
func (c RoundConfig) Validate() error {
	if !c.Dealer.Valid() {
		return fmt.Errorf("invalid dealer %d", byte(c.Dealer))
	}
	if len(c.Hands) != 4 {
		return fmt.Errorf("%w: %d hands", ErrHandSize, len(c.Hands))
	}
	seen := make(map[card.Card]bool, dealCount)
	check := func(cd card.Card) error {
		if !cd.Valid() {
			return fmt.Errorf("%w: %#02x", ErrInvalidCard, byte(cd))
		}
		if seen[cd] {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, cd)
		}
		seen[cd] = true
		return nil
	}
	for _, seat := range Seats {
		hand, ok := c.Hands[seat]
		if !ok || len(hand) != HandSize {
			return fmt.Errorf("%w: %s holds %d cards", ErrHandSize, seat, len(hand))
		}
		for _, cd := range hand {
			if err := check(cd); err != nil {
				return err
			}
		}
	}
	return check(c.Top)
}

// Clone returns a deep copy of the config.
func (c RoundConfig) Clone() RoundConfig {
	out := RoundConfig{Dealer: c.Dealer, Top: c.Top, Hands: make(map[Seat][]card.Card, len(c.Hands))}
	for seat, hand := range c.Hands {
		out.Hands[seat] = slices.Clone(hand)
	}
	return out
}

// Equal reports whether two configs deal the same cards to the same seats.
func (c RoundConfig) Equal(o RoundConfig) bool {
	if c.Dealer != o.Dealer || c.Top != o.Top || len(c.Hands) != len(o.Hands) {
		return false
	}
	for seat, hand := range c.Hands {
		if !slices.Equal(hand, o.Hands[seat]) {
			return false
		}
	}
	return true
}
