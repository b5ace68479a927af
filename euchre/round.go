package euchre

import (
	"slices"

	"euchre-lite/card"
)

// Round is the rules engine for one deal. It is a pure state machine: every
// ApplyAction either fails without touching the round or moves it to the
// next ExpectAction. Round does no locking; callers sharing one serialize
// access themselves.
type Round struct {
	dealer   Seat
	top      card.Card
	hands    map[Seat][]card.Card
	contract *Contract
	tricks   Tricks
	events   []Event
	next     *ExpectAction
}

// NewRound validates cfg and starts the auction with the seat after the
// dealer.
func NewRound(cfg RoundConfig) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()
	return &Round{
		dealer: cfg.Dealer,
		top:    cfg.Top,
		hands:  cfg.Hands,
		tricks: newTricks(),
		events: []Event{DealEvent{Dealer: cfg.Dealer, Top: cfg.Top}},
		next:   &ExpectAction{Seat: cfg.Dealer.Next(), Action: ActionBidTop},
	}, nil
}

func (r *Round) Dealer() Seat { return r.dealer }

func (r *Round) Top() card.Card { return r.top }

// NextAction returns the pending step. ok is false once the round is over.
func (r *Round) NextAction() (ExpectAction, bool) {
	if r.next == nil {
		return ExpectAction{}, false
	}
	return *r.next, true
}

func (r *Round) Over() bool { return r.next == nil }

func (r *Round) Contract() (Contract, bool) {
	if r.contract == nil {
		return Contract{}, false
	}
	return *r.contract, true
}

func (r *Round) Tricks() *Tricks { return &r.tricks }

// Hand returns a copy of the cards held by seat.
func (r *Round) Hand(seat Seat) []card.Card { return slices.Clone(r.hands[seat]) }

// PopEvent removes and returns the oldest queued event.
func (r *Round) PopEvent() (Event, bool) {
	if len(r.events) == 0 {
		return nil, false
	}
	e := r.events[0]
	r.events = r.events[1:]
	return e, true
}

// Outcome scores the round once it is decided. Defenders taking three tricks
// euchre the makers and end the round early.
func (r *Round) Outcome() (Outcome, bool) {
	if r.contract == nil {
		return Outcome{}, false
	}
	makers, defenders := r.contract.Makers(), r.contract.Defenders()
	m := r.tricks.WinCount(makers)
	d := r.tricks.WinCount(defenders)
	total := r.tricks.Total()
	switch {
	case d >= euchreTricks:
		return Outcome{Team: defenders, Points: 2}, true
	case m+d < total:
		return Outcome{}, false
	case m == total && r.contract.Alone:
		return Outcome{Team: makers, Points: 4}, true
	case m == total:
		return Outcome{Team: makers, Points: 2}, true
	}
	return Outcome{Team: makers, Points: 1}, true
}

// ApplyAction checks a against the pending step and the rules, then advances
// the round.
func (r *Round) ApplyAction(a Action) error {
	if r.next == nil {
		return ErrRoundOver
	}
	if a.Expect() != *r.next {
		return &UnexpectedActionError{Expected: *r.next, Got: a.Expect()}
	}
	if !a.Data.Fits(a.Action) {
		return ErrInvalidActionData
	}
	switch a.Action {
	case ActionBidTop:
		if a.Data.Kind == DataPass {
			r.passTop(a.Seat)
			return nil
		}
		return r.bidTop(a.Seat, a.Data.Suit, a.Data.Alone)
	case ActionBidOther:
		if a.Data.Kind == DataPass {
			return r.passOther(a.Seat)
		}
		return r.bidOther(a.Seat, a.Data.Suit, a.Data.Alone)
	case ActionDealerDiscard:
		return r.dealerDiscard(a.Seat, a.Data.Card)
	case ActionLead:
		return r.lead(a.Seat, a.Data.Card)
	case ActionFollow:
		return r.follow(a.Seat, a.Data.Card)
	}
	return ErrInvalidActionData
}

func (r *Round) expect(seat Seat, action ActionType) {
	r.next = &ExpectAction{Seat: seat, Action: action}
}

func (r *Round) passTop(seat Seat) {
	if seat == r.dealer {
		r.expect(seat.Next(), ActionBidOther)
		return
	}
	r.expect(seat.Next(), ActionBidTop)
}

func (r *Round) bidTop(maker Seat, suit card.Suit, alone bool) error {
	if suit != r.top.Suit() {
		return ruleError(maker, ErrMustCallTop, r.top)
	}
	r.contract = &Contract{Maker: maker, Suit: suit, Alone: alone}
	r.hands[r.dealer] = append(r.hands[r.dealer], r.top)
	// A lone maker other than the dealer leaves the top card buried in the
	// dealer's hand, so there is nothing to discard.
	if alone && maker != r.dealer {
		r.firstTrick()
	} else {
		r.expect(r.dealer, ActionDealerDiscard)
	}
	r.events = append(r.events, CallEvent{Contract: *r.contract})
	return nil
}

func (r *Round) passOther(seat Seat) error {
	if seat == r.dealer {
		return ruleError(seat, ErrDealerMustBid, r.top)
	}
	r.expect(seat.Next(), ActionBidOther)
	return nil
}

func (r *Round) bidOther(maker Seat, suit card.Suit, alone bool) error {
	if !suit.Valid() {
		return ErrInvalidActionData
	}
	if suit == r.top.Suit() {
		return ruleError(maker, ErrCannotCallTop, r.top)
	}
	r.contract = &Contract{Maker: maker, Suit: suit, Alone: alone}
	r.firstTrick()
	r.events = append(r.events, CallEvent{Contract: *r.contract})
	return nil
}

func (r *Round) dealerDiscard(dealer Seat, c card.Card) error {
	i, err := r.findCard(dealer, c)
	if err != nil {
		return err
	}
	r.discard(dealer, i)
	r.firstTrick()
	return nil
}

func (r *Round) lead(seat Seat, c card.Card) error {
	i, err := r.findCard(seat, c)
	if err != nil {
		return err
	}
	r.discard(seat, i)
	r.tricks.push(NewTrick(r.contract.Suit, seat, c))
	r.expect(r.contract.skip(seat.Next()), ActionFollow)
	return nil
}

func (r *Round) follow(seat Seat, c card.Card) error {
	i, err := r.findCard(seat, c)
	if err != nil {
		return err
	}
	trick := r.tricks.Last()
	if !trick.IsFollowingLead(r.hands[seat], c) {
		return ruleError(seat, ErrMustFollow, trick.Lead().Card)
	}
	trick.Play(seat, c)
	r.discard(seat, i)

	if !r.tricks.Complete(trick) {
		r.expect(r.contract.skip(seat.Next()), ActionFollow)
		return nil
	}
	winner := trick.Best().Seat
	r.events = append(r.events, TrickEvent{Trick: trick.Clone(), Winner: winner})
	if outcome, ok := r.Outcome(); ok {
		r.events = append(r.events, RoundEvent{Outcome: outcome})
		r.next = nil
		return nil
	}
	r.expect(winner, ActionLead)
	return nil
}

func (r *Round) findCard(seat Seat, c card.Card) (int, error) {
	i := card.IndexOf(r.hands[seat], c)
	if i < 0 {
		return -1, ruleError(seat, ErrCardNotHeld, c)
	}
	return i, nil
}

func (r *Round) discard(seat Seat, i int) {
	r.hands[seat] = slices.Delete(r.hands[seat], i, i+1)
}

// firstTrick opens play with the eldest hand, skipping a sitting-out partner.
func (r *Round) firstTrick() {
	if r.contract.Alone {
		r.tricks.goAlone()
	}
	r.expect(r.contract.skip(r.dealer.Next()), ActionLead)
}
