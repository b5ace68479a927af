package replay

import (
	"fmt"

	"euchre-lite/card"
	"euchre-lite/euchre"
)

// Reasons reported by Generate.
const (
	ReasonInvalidConfig     = "invalid_config"
	ReasonInvalidAction     = "invalid_action"
	ReasonNoActionExpected  = "no_action_expected"
	ReasonOutOfTurn         = "out_of_turn"
	ReasonIllegalAction     = "illegal_action"
	ReasonActionApplyFailed = "action_apply_failed"
)

type ReplayError struct {
	StepIndex int32          `json:"step_index"`
	Reason    string         `json:"reason"`
	Message   string         `json:"message"`
	Expected  *ExpectedState `json:"expected,omitempty"`
	Err       error          `json:"-"`
}

// ExpectedState describes what the round was waiting for when a step failed.
type ExpectedState struct {
	Seat     euchre.Seat       `json:"seat"`
	Action   euchre.ActionType `json:"action"`
	Top      card.Card         `json:"top"`
	Playable []card.Card       `json:"playable,omitempty"`
}

func (e *ReplayError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("replay error(step=%d reason=%s): %s", e.StepIndex, e.Reason, e.Message)
}

func (e *ReplayError) Unwrap() error { return e.Err }
