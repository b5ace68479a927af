package card

import (
	"math/rand"
	"slices"
)

// Deck is an ordered pile of cards. Cards are taken from the end.
type Deck []Card

// NewDeck returns an unshuffled 24-card euchre deck.
func NewDeck() Deck {
	d := make(Deck, len(EuchreCards))
	copy(d, EuchreCards)
	return d
}

// NewShuffledDeck returns a euchre deck shuffled by rng.
func NewShuffledDeck(rng *rand.Rand) Deck {
	d := NewDeck()
	d.Shuffle(rng)
	return d
}

// Count 获取总牌数
func (ds Deck) Count() int {
	return len(ds)
}

func (ds Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(ds), func(i, j int) {
		ds[i], ds[j] = ds[j], ds[i]
	})
}

func (ds *Deck) Add(cards ...Card) {
	*ds = append(*ds, cards...)
}

// Take removes up to n cards from the end of the deck.
func (ds *Deck) Take(n int) []Card {
	idx := max(len(*ds)-n, 0)
	cards := slices.Clone((*ds)[idx:])
	*ds = (*ds)[:idx]
	return cards
}

// Sorted returns a copy of cards ordered by suit, then rank.
func Sorted(cards []Card) []Card {
	out := slices.Clone(cards)
	slices.SortFunc(out, func(a, b Card) int {
		if a.Suit() != b.Suit() {
			return int(a.Suit()) - int(b.Suit())
		}
		return int(a.Rank()) - int(b.Rank())
	})
	return out
}
