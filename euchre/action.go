package euchre

import (
	"encoding/json"
	"fmt"

	"euchre-lite/card"
)

// ActionType names the step the round is waiting for.
type ActionType byte

const (
	ActionBidTop ActionType = iota + 1
	ActionBidOther
	ActionDealerDiscard
	ActionLead
	ActionFollow
)

var ActionTypeDictionary = map[ActionType]string{
	ActionBidTop:        "bid_top",
	ActionBidOther:      "bid_other",
	ActionDealerDiscard: "dealer_discard",
	ActionLead:          "lead",
	ActionFollow:        "follow",
}

func (a ActionType) String() string {
	if s, ok := ActionTypeDictionary[a]; ok {
		return s
	}
	return fmt.Sprintf("ActionType(%d)", byte(a))
}

// IsBid reports whether the step takes a Pass or Call payload.
func (a ActionType) IsBid() bool { return a == ActionBidTop || a == ActionBidOther }

func ParseActionType(s string) (ActionType, error) {
	for a, name := range ActionTypeDictionary {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("invalid action type: %q", s)
}

func (a ActionType) MarshalText() ([]byte, error) {
	if _, ok := ActionTypeDictionary[a]; !ok {
		return nil, fmt.Errorf("invalid action type %d", byte(a))
	}
	return []byte(a.String()), nil
}

func (a *ActionType) UnmarshalText(b []byte) error {
	v, err := ParseActionType(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// DataKind is the shape of an action payload.
type DataKind byte

const (
	DataPass DataKind = iota + 1
	DataCall
	DataCard
)

var dataKindNames = map[DataKind]string{
	DataPass: "pass",
	DataCall: "call",
	DataCard: "card",
}

func (k DataKind) String() string {
	if s, ok := dataKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("DataKind(%d)", byte(k))
}

// ActionData is the payload of an action: Pass, Call{Suit, Alone} or
// Card{Card}. Fields that do not belong to Kind are zero, so two payloads are
// equal exactly when == holds.
type ActionData struct {
	Kind  DataKind
	Suit  card.Suit
	Alone bool
	Card  card.Card
}

func Pass() ActionData { return ActionData{Kind: DataPass} }

func Call(suit card.Suit, alone bool) ActionData {
	return ActionData{Kind: DataCall, Suit: suit, Alone: alone}
}

func Play(c card.Card) ActionData { return ActionData{Kind: DataCard, Card: c} }

func (d ActionData) String() string {
	switch d.Kind {
	case DataPass:
		return "pass"
	case DataCall:
		if d.Alone {
			return fmt.Sprintf("call %s alone", d.Suit)
		}
		return fmt.Sprintf("call %s", d.Suit)
	case DataCard:
		return d.Card.String()
	}
	return "invalid"
}

// Valid reports whether d is one of the canonical payloads built by Pass,
// Call and Play with a valid suit or card.
func (d ActionData) Valid() bool {
	switch d.Kind {
	case DataPass:
		return d == Pass()
	case DataCall:
		return d.Suit.Valid() && d == Call(d.Suit, d.Alone)
	case DataCard:
		return d.Card.Valid() && d == Play(d.Card)
	}
	return false
}

// Fits reports whether the payload is valid and its shape is accepted by the
// action type.
func (d ActionData) Fits(a ActionType) bool {
	if !d.Valid() {
		return false
	}
	if a.IsBid() {
		return d.Kind == DataPass || d.Kind == DataCall
	}
	return d.Kind == DataCard
}

type actionDataJSON struct {
	Kind  string     `json:"kind"`
	Suit  *card.Suit `json:"suit,omitempty"`
	Alone *bool      `json:"alone,omitempty"`
	Card  *card.Card `json:"card,omitempty"`
}

func (d ActionData) MarshalJSON() ([]byte, error) {
	j := actionDataJSON{Kind: d.Kind.String()}
	switch d.Kind {
	case DataPass:
	case DataCall:
		suit, alone := d.Suit, d.Alone
		j.Suit, j.Alone = &suit, &alone
	case DataCard:
		c := d.Card
		j.Card = &c
	default:
		return nil, ErrInvalidActionData
	}
	return json.Marshal(j)
}

func (d *ActionData) UnmarshalJSON(b []byte) error {
	var j actionDataJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	switch j.Kind {
	case "pass":
		*d = Pass()
	case "call":
		if j.Suit == nil {
			return fmt.Errorf("call without suit: %w", ErrInvalidActionData)
		}
		*d = Call(*j.Suit, j.Alone != nil && *j.Alone)
	case "card":
		if j.Card == nil {
			return fmt.Errorf("card action without card: %w", ErrInvalidActionData)
		}
		*d = Play(*j.Card)
	default:
		return fmt.Errorf("unknown action kind %q: %w", j.Kind, ErrInvalidActionData)
	}
	return nil
}

// ExpectAction is the step the round is waiting for.
type ExpectAction struct {
	Seat   Seat       `json:"seat"`
	Action ActionType `json:"action"`
}

func (e ExpectAction) WithData(data ActionData) Action {
	return Action{Seat: e.Seat, Action: e.Action, Data: data}
}

func (e ExpectAction) String() string {
	return fmt.Sprintf("%s:%s", e.Seat, e.Action)
}

// Action is a seat's move. It is comparable, which the history log relies on.
type Action struct {
	Seat   Seat       `json:"seat"`
	Action ActionType `json:"action"`
	Data   ActionData `json:"data"`
}

func (a Action) Expect() ExpectAction { return ExpectAction{Seat: a.Seat, Action: a.Action} }

func (a Action) String() string {
	return fmt.Sprintf("%s %s %s", a.Seat, a.Action, a.Data)
}

// Contract is the bid that won the auction.
type Contract struct {
	Maker Seat      `json:"maker"`
	Suit  card.Suit `json:"suit"`
	Alone bool      `json:"alone"`
}

func (c Contract) Makers() Team    { return c.Maker.Team() }
func (c Contract) Defenders() Team { return c.Maker.Team().Other() }

func (c Contract) String() string {
	if c.Alone {
		return fmt.Sprintf("%s calls %s alone", c.Maker, c.Suit)
	}
	return fmt.Sprintf("%s calls %s", c.Maker, c.Suit)
}

// skip returns the seat that actually plays in place of seat. The maker's
// partner sits out a lone hand.
func (c Contract) skip(seat Seat) Seat {
	if c.Alone && seat == c.Maker.Opposite() {
		return seat.Next()
	}
	return seat
}

// Outcome is the scored result of a finished round.
type Outcome struct {
	Team   Team `json:"team"`
	Points int  `json:"points"`
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s wins %d points", o.Team, o.Points)
}
