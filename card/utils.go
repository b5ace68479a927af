package card

import "fmt"

func Cards2bytes(cs []Card) []byte {
	out := make([]byte, 0, len(cs))
	for _, c := range cs {
		out = append(out, byte(c))
	}
	return out
}

// Bytes2cards is the inverse of Cards2bytes; every byte must encode a valid card.
func Bytes2cards(b []byte) ([]Card, error) {
	out := make([]Card, 0, len(b))
	for i, v := range b {
		c := Card(v)
		if !c.Valid() {
			return nil, fmt.Errorf("invalid card byte 0x%02x at %d", v, i)
		}
		out = append(out, c)
	}
	return out, nil
}

// Contains reports whether c is in cards.
func Contains(cards []Card, c Card) bool {
	return IndexOf(cards, c) >= 0
}

// IndexOf returns the position of c in cards, or -1.
func IndexOf(cards []Card, c Card) int {
	for i, cc := range cards {
		if cc == c {
			return i
		}
	}
	return -1
}
