package euchre

import (
	"fmt"
	"strings"
)

// Seat is a table position. Seats are cyclic in clockwise order.
type Seat byte

const (
	North Seat = iota
	East
	South
	West
)

// Seats lists every seat in clockwise order, starting at North.
var Seats = [4]Seat{North, East, South, West}

var seatNames = [4]string{"North", "East", "South", "West"}

func (s Seat) String() string {
	if s > West {
		return fmt.Sprintf("Seat(%d)", byte(s))
	}
	return seatNames[s]
}

func (s Seat) Valid() bool { return s <= West }

// Abbr returns the one-letter abbreviation of the seat.
func (s Seat) Abbr() string {
	return s.String()[:1]
}

func (s Seat) Next() Seat { return (s + 1) % 4 }

func (s Seat) Opposite() Seat { return (s + 2) % 4 }

func (s Seat) Team() Team {
	if s == North || s == South {
		return NorthSouth
	}
	return EastWest
}

// NextN returns the n seats following s in clockwise order.
func (s Seat) NextN(n int) []Seat {
	out := make([]Seat, 0, n)
	for i := 0; i < n; i++ {
		s = s.Next()
		out = append(out, s)
	}
	return out
}

// ParseSeat accepts a full seat name or its first letter, in any case.
func ParseSeat(s string) (Seat, error) {
	for _, seat := range Seats {
		name := seat.String()
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:1]) {
			return seat, nil
		}
	}
	return 0, fmt.Errorf("invalid seat: %q", s)
}

func (s Seat) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid seat %d", byte(s))
	}
	return []byte(s.String()), nil
}

func (s *Seat) UnmarshalText(b []byte) error {
	v, err := ParseSeat(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Team is one of the two partnerships. It is always derived from a Seat.
type Team byte

const (
	NorthSouth Team = iota
	EastWest
)

func (t Team) Valid() bool { return t <= EastWest }

func (t Team) String() string {
	if t == NorthSouth {
		return "North/South"
	}
	return "East/West"
}

// Abbr returns a short name for the team.
func (t Team) Abbr() string {
	if t == NorthSouth {
		return "N/S"
	}
	return "E/W"
}

func (t Team) Other() Team { return 1 - t }
