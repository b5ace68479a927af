package card

import "fmt"

type Suit byte

const (
	Club    Suit = iota // ♣
	Diamond             // ♦
	Spade               // ♤
	Heart               // ♡
)

// Suits lists every suit in declaration order.
var Suits = []Suit{Club, Diamond, Spade, Heart}

type Color byte

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

func (s Suit) String() string {
	switch s {
	case Club:
		return "♣"
	case Diamond:
		return "♦"
	case Spade:
		return "♤"
	case Heart:
		return "♡"
	}
	return "?"
}

// Name returns the English name of the suit.
func (s Suit) Name() string {
	switch s {
	case Club:
		return "clubs"
	case Diamond:
		return "diamonds"
	case Spade:
		return "spades"
	case Heart:
		return "hearts"
	}
	return "invalid"
}

func (s Suit) Valid() bool { return s <= Heart }

func (s Suit) Color() Color {
	if s == Diamond || s == Heart {
		return Red
	}
	return Black
}

// Matching returns the other suit of the same color.
func (s Suit) Matching() Suit {
	switch s {
	case Club:
		return Spade
	case Spade:
		return Club
	case Diamond:
		return Heart
	default:
		return Diamond
	}
}

func suitFromRune(r rune) (Suit, bool) {
	switch r {
	case '♣', '♧', 'C', 'c':
		return Club, true
	case '♦', '♢', 'D', 'd':
		return Diamond, true
	case '♠', '♤', 'S', 's':
		return Spade, true
	case '♥', '♡', 'H', 'h':
		return Heart, true
	}
	return 0, false
}

// ParseSuit accepts a single suit glyph or letter.
func ParseSuit(s string) (Suit, error) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("invalid suit: %q", s)
	}
	suit, ok := suitFromRune(runes[0])
	if !ok {
		return 0, fmt.Errorf("invalid suit: %q", s)
	}
	return suit, nil
}

func (s Suit) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid suit %d", byte(s))
	}
	return []byte(s.String()), nil
}

func (s *Suit) UnmarshalText(b []byte) error {
	v, err := ParseSuit(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
