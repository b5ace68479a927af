package player

import (
	"math/rand"

	"euchre-lite/card"
	"euchre-lite/euchre"
)

// Random picks uniformly among the legal payloads of each step.
type Random struct {
	name string
	rng  *rand.Rand
}

// NewRandom creates a Random player with its own seeded source.
func NewRandom(name string, seed int64) *Random {
	if name == "" {
		name = "random"
	}
	return &Random{
		name: name,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (r *Random) Name() string { return r.name }

func (r *Random) TakeAction(state euchre.PlayerState, kind euchre.ActionType) euchre.ActionData {
	var options []euchre.ActionData
	switch kind {
	case euchre.ActionBidTop:
		options = bidTopOptions(state)
	case euchre.ActionBidOther:
		options = bidOtherOptions(state)
	default:
		for _, c := range state.Playable(kind) {
			options = append(options, euchre.Play(c))
		}
	}
	if len(options) == 0 {
		return euchre.Pass()
	}
	return options[r.rng.Intn(len(options))]
}

func (r *Random) Notify(euchre.PlayerState, euchre.Event) {}

// HandleError never retries.
func (r *Random) HandleError(error) bool { return false }

func bidTopOptions(state euchre.PlayerState) []euchre.ActionData {
	suit := state.Top.Suit()
	return []euchre.ActionData{
		euchre.Pass(),
		euchre.Call(suit, false),
		euchre.Call(suit, true),
	}
}

func bidOtherOptions(state euchre.PlayerState) []euchre.ActionData {
	var options []euchre.ActionData
	if state.Seat != state.Dealer {
		options = append(options, euchre.Pass())
	}
	for _, suit := range card.Suits {
		if suit == state.Top.Suit() {
			continue
		}
		options = append(options, euchre.Call(suit, false), euchre.Call(suit, true))
	}
	return options
}
