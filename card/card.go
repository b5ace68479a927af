package card

import (
	"fmt"
	"strings"
)

// Card 牌枚举
//
// 编码规则:
// - 高4位: 花色 (0:Club, 1:Diamond, 2:Spade, 3:Heart)
// - 低4位: 点数 (1:9, 2:T, 3:J, 4:Q, 5:K, 6:A)
type Card byte

// Rank is the euchre rank. Its numeric value doubles as the rank of a
// non-trump card that follows the lead.
type Rank byte

const (
	Nine Rank = iota + 1
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank from lowest to highest.
var Ranks = []Rank{Nine, Ten, Jack, Queen, King, Ace}

func (r Rank) Valid() bool { return r >= Nine && r <= Ace }

func (r Rank) String() string {
	switch r {
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	return "?"
}

func rankFromRune(r rune) (Rank, bool) {
	switch r {
	case '9':
		return Nine, true
	case 'T', 't':
		return Ten, true
	case 'J', 'j':
		return Jack, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	case 'A', 'a':
		return Ace, true
	}
	return 0, false
}

func New(rank Rank, suit Suit) Card {
	return Card(byte(suit)<<4 | byte(rank)&0x0F)
}

func (c Card) Rank() Rank { return Rank(c & 0x0F) }

func (c Card) Suit() Suit { return Suit(c >> 4) }

func (c Card) Valid() bool { return c.Rank().Valid() && c.Suit().Valid() }

func (c Card) String() string {
	if !c.Valid() {
		return "Invalid"
	}
	return c.Rank().String() + c.Suit().String()
}

// Compare orders cards by rank, then suit.
func (c Card) Compare(o Card) int {
	switch {
	case c.Rank() != o.Rank():
		return int(c.Rank()) - int(o.Rank())
	default:
		return int(c.Suit()) - int(o.Suit())
	}
}

// Parse 将两个字符的牌面 (如 "J♦", "Td", "as") 转换为 Card
func Parse(s string) (Card, error) {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) != 2 {
		return CardInvalid, fmt.Errorf("invalid card string: %q", s)
	}
	rank, ok := rankFromRune(runes[0])
	if !ok {
		return CardInvalid, fmt.Errorf("invalid rank: %c", runes[0])
	}
	suit, ok := suitFromRune(runes[1])
	if !ok {
		return CardInvalid, fmt.Errorf("invalid suit: %c", runes[1])
	}
	return New(rank, suit), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MustParseAll parses a list of card literals.
func MustParseAll(ss ...string) []Card {
	out := make([]Card, 0, len(ss))
	for _, s := range ss {
		out = append(out, MustParse(s))
	}
	return out
}

func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid card 0x%02x", byte(c))
	}
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// IsTrump reports whether the card is trump for the declared suit. The jack
// of the same color (the left bower) counts as trump.
func (c Card) IsTrump(trump Suit) bool {
	return c.Suit() == trump || c.Rank() == Jack && c.Suit().Color() == trump.Color()
}

// EffectiveSuit is the suit the card follows once trump is declared.
func (c Card) EffectiveSuit(trump Suit) Suit {
	if c.IsTrump(trump) {
		return trump
	}
	return c.Suit()
}

// IsFollowing reports whether c follows the effective suit of lead.
func (c Card) IsFollowing(trump Suit, lead Card) bool {
	return c.EffectiveSuit(trump) == lead.EffectiveSuit(trump)
}

// Value ranks the card inside a trick led by lead. Trump ranks 7..13 with the
// right bower highest, non-trump cards of a non-trump lead suit rank 1..6 and
// everything else is 0.
func (c Card) Value(trump Suit, lead Card) int {
	if c.IsTrump(trump) {
		switch c.Rank() {
		case Nine:
			return 7
		case Ten:
			return 8
		case Queen:
			return 9
		case King:
			return 10
		case Ace:
			return 11
		case Jack:
			if c.Suit() == trump {
				return 13
			}
			return 12
		}
		return 0
	}
	if c.Suit() == lead.Suit() && !lead.IsTrump(trump) {
		return int(c.Rank())
	}
	return 0
}
