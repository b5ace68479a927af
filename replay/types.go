package replay

import (
	"euchre-lite/card"
	"euchre-lite/euchre"
	"euchre-lite/history"
)

// Script describes a round to replay: its deal and the ordered actions taken.
// Cards and seats use their text forms ("J♦" or "jd", "North" or "n"). When
// Hands is empty the deal comes from a deck shuffled with RNG.Seed.
type Script struct {
	Dealer  string              `json:"dealer"`
	Hands   map[string][]string `json:"hands,omitempty"`
	Top     string              `json:"top,omitempty"`
	RNG     *RNGSpec            `json:"rng,omitempty"`
	Actions []ActionSpec        `json:"actions"`
}

// ActionSpec is one scripted action. Kind is "pass", "call" or "card".
type ActionSpec struct {
	Seat  string `json:"seat"`
	Type  string `json:"type"`
	Kind  string `json:"kind"`
	Suit  string `json:"suit,omitempty"`
	Alone bool   `json:"alone,omitempty"`
	Card  string `json:"card,omitempty"`
}

type RNGSpec struct {
	Seed int64 `json:"seed"`
}

// Tape is the step by step record of a replayed round.
type Tape struct {
	TapeVersion int                `json:"tape_version"`
	Config      euchre.RoundConfig `json:"config"`
	Events      []TapeEvent        `json:"events"`
	Log         history.RawLog     `json:"log"`
}

// TapeEvent is one entry of a tape. Exactly one of the payload fields is set,
// matching Type.
type TapeEvent struct {
	Type        string               `json:"type"`
	Seq         uint64               `json:"seq"`
	Deal        *DealInfo            `json:"deal,omitempty"`
	Prompt      *euchre.ExpectAction `json:"prompt,omitempty"`
	Action      *euchre.Action       `json:"action,omitempty"`
	Contract    *euchre.Contract     `json:"contract,omitempty"`
	Trick       *TrickResult         `json:"trick,omitempty"`
	Outcome     *euchre.Outcome      `json:"outcome,omitempty"`
	Snapshot    *euchre.Snapshot     `json:"snapshot,omitempty"`
	EnvelopeB64 string               `json:"envelope_b64,omitempty"`
}

type DealInfo struct {
	Dealer euchre.Seat `json:"dealer"`
	Top    card.Card   `json:"top"`
}

type TrickResult struct {
	Plays  []euchre.TrickPlay `json:"plays"`
	Winner euchre.Seat        `json:"winner"`
}

// Tape event types.
const (
	EventSnapshot     = "snapshot"
	EventDeal         = "deal"
	EventActionPrompt = "actionPrompt"
	EventActionResult = "actionResult"
	EventCall         = "call"
	EventTrick        = "trick"
	EventRoundEnd     = "roundEnd"
)
