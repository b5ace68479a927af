package euchre

import (
	"errors"
	"fmt"

	"euchre-lite/card"
)

// Setup errors, returned while building a RoundConfig.
var (
	ErrIncompleteDeck = errors.New("incomplete deck")
	ErrDuplicateCard  = errors.New("duplicate card")
	ErrHandSize       = errors.New("wrong hand size")
	ErrInvalidCard    = errors.New("invalid card")
)

// Protocol errors: the caller broke the expect/apply contract.
var (
	ErrRoundOver         = errors.New("round is over")
	ErrInvalidActionData = errors.New("action data does not match action type")
)

// Rule reasons, always wrapped in a *RuleError.
var (
	ErrDealerMustBid = errors.New("dealer must bid")
	ErrMustCallTop   = errors.New("must call the top suit")
	ErrCannotCallTop = errors.New("cannot call the top suit")
	ErrCardNotHeld   = errors.New("card not held")
	ErrMustFollow    = errors.New("must follow lead")
)

// UnexpectedActionError is returned when an action does not match the pending
// ExpectAction.
type UnexpectedActionError struct {
	Expected ExpectAction
	Got      ExpectAction
}

func (e *UnexpectedActionError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

// RuleError is an action with a legal shape that the rules forbid. The round
// is unchanged and the seat may be prompted again.
type RuleError struct {
	Seat   Seat
	Reason error
	// Card is the card involved, if any: the top card for bidding errors, the
	// played card for CardNotHeld and the lead card for MustFollow.
	Card card.Card
}

func (e *RuleError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrMustCallTop), errors.Is(e.Reason, ErrCannotCallTop):
		return fmt.Sprintf("%s: %v (%s)", e.Seat, e.Reason, e.Card.Suit())
	case errors.Is(e.Reason, ErrCardNotHeld):
		return fmt.Sprintf("%s: %v: %s", e.Seat, e.Reason, e.Card)
	case errors.Is(e.Reason, ErrMustFollow):
		return fmt.Sprintf("%s: %v %s", e.Seat, e.Reason, e.Card)
	}
	return fmt.Sprintf("%s: %v", e.Seat, e.Reason)
}

func (e *RuleError) Unwrap() error { return e.Reason }

func ruleError(seat Seat, reason error, c card.Card) error {
	return &RuleError{Seat: seat, Reason: reason, Card: c}
}

// IsRuleError reports whether err is recoverable by prompting again.
func IsRuleError(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}
