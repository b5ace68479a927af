package euchre

const (
	fullTrickSize = 4
	loneTrickSize = 3

	fullTrickCount = 5
	loneTrickCount = 3

	// Three defender tricks euchre the makers, lone hand or not.
	euchreTricks = 3
)

// Tricks is the sequence of tricks of a round.
type Tricks struct {
	tricks []*Trick
	size   int
	total  int
}

func newTricks() Tricks {
	return Tricks{size: fullTrickSize, total: fullTrickCount}
}

// goAlone switches to lone-hand play: three cards per trick, three tricks.
func (ts *Tricks) goAlone() {
	ts.size = loneTrickSize
	ts.total = loneTrickCount
}

func (ts *Tricks) push(t *Trick) {
	if len(ts.tricks) >= ts.total {
		panic("euchre: too many tricks")
	}
	ts.tricks = append(ts.tricks, t)
}

func (ts *Tricks) Len() int { return len(ts.tricks) }

// Size is the number of cards in a full trick.
func (ts *Tricks) Size() int { return ts.size }

// Total is the number of tricks the round plays when nobody is euchred.
func (ts *Tricks) Total() int { return ts.total }

func (ts *Tricks) At(i int) *Trick { return ts.tricks[i] }

// Last returns the trick in progress or the last finished one.
func (ts *Tricks) Last() *Trick {
	if len(ts.tricks) == 0 {
		return nil
	}
	return ts.tricks[len(ts.tricks)-1]
}

// All returns the tricks in play order. The slice must not be modified.
func (ts *Tricks) All() []*Trick { return ts.tricks }

// Complete reports whether t holds a card from every playing seat.
func (ts *Tricks) Complete(t *Trick) bool { return t.Len() == ts.size }

// WinCount counts the full tricks taken by team.
func (ts *Tricks) WinCount(team Team) int {
	n := 0
	for _, t := range ts.tricks {
		if ts.Complete(t) && t.Best().Seat.Team() == team {
			n++
		}
	}
	return n
}

func (ts Tricks) clone() Tricks {
	out := ts
	out.tricks = make([]*Trick, len(ts.tricks))
	for i, t := range ts.tricks {
		out.tricks[i] = t.Clone()
	}
	return out
}
