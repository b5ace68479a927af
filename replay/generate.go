package replay

import (
	"encoding/base64"
	"fmt"

	"euchre-lite/euchre"
	"euchre-lite/history"
)

const tapeVersion = 1

// Generate replays a script step by step and records what a viewer would
// see: prompts, accepted actions, the round's events and snapshots at both
// ends. The first failing step stops the replay with a *ReplayError.
func Generate(script Script) (*Tape, error) {
	ns, err := normalizeScript(script)
	if err != nil {
		return nil, err
	}
	lr, err := history.NewLoggedRound(ns.config)
	if err != nil {
		return nil, configError(err)
	}

	builder := newTapeBuilder()
	builder.addSnapshot(lr.Snapshot())
	builder.drainEvents(lr)
	if next, ok := lr.NextAction(); ok {
		builder.addActionPrompt(next)
	}

	for stepIdx, action := range ns.actions {
		next, ok := lr.NextAction()
		if !ok {
			return nil, &ReplayError{
				StepIndex: int32(stepIdx),
				Reason:    ReasonNoActionExpected,
				Message:   "round is already complete; no further actions are allowed",
				Err:       euchre.ErrRoundOver,
			}
		}
		if action.Expect() != next {
			return nil, &ReplayError{
				StepIndex: int32(stepIdx),
				Reason:    ReasonOutOfTurn,
				Message:   fmt.Sprintf("expected %s, got %s", next, action.Expect()),
				Expected:  expectedState(lr, next),
			}
		}
		if !action.Data.Fits(action.Action) {
			return nil, &ReplayError{
				StepIndex: int32(stepIdx),
				Reason:    ReasonIllegalAction,
				Message:   fmt.Sprintf("%s payload is not valid for %s", action.Data.Kind, action.Action),
				Expected:  expectedState(lr, next),
				Err:       euchre.ErrInvalidActionData,
			}
		}
		if err := lr.ApplyAction(action); err != nil {
			reason := ReasonActionApplyFailed
			if euchre.IsRuleError(err) {
				reason = ReasonIllegalAction
			}
			return nil, &ReplayError{
				StepIndex: int32(stepIdx),
				Reason:    reason,
				Message:   err.Error(),
				Expected:  expectedState(lr, next),
				Err:       err,
			}
		}

		builder.addActionResult(action)
		builder.drainEvents(lr)
		if next, ok := lr.NextAction(); ok {
			builder.addActionPrompt(next)
		}
	}
	builder.addSnapshot(lr.Snapshot())

	return &Tape{
		TapeVersion: tapeVersion,
		Config:      ns.config,
		Events:      builder.events,
		Log:         lr.Raw(),
	}, nil
}

func expectedState(lr *history.LoggedRound, next euchre.ExpectAction) *ExpectedState {
	exp := &ExpectedState{Seat: next.Seat, Action: next.Action, Top: lr.Top()}
	if !next.Action.IsBid() {
		exp.Playable = lr.PlayerState(next.Seat).Playable(next.Action)
	}
	return exp
}

type tapeBuilder struct {
	seq    uint64
	events []TapeEvent
}

func newTapeBuilder() *tapeBuilder {
	return &tapeBuilder{events: make([]TapeEvent, 0, 64)}
}

func (b *tapeBuilder) addSnapshot(s euchre.Snapshot) {
	b.push(TapeEvent{Type: EventSnapshot, Snapshot: &s})
}

func (b *tapeBuilder) addActionPrompt(next euchre.ExpectAction) {
	b.push(TapeEvent{Type: EventActionPrompt, Prompt: &next})
}

func (b *tapeBuilder) addActionResult(a euchre.Action) {
	b.push(TapeEvent{Type: EventActionResult, Action: &a})
}

// drainEvents moves the round's queued events onto the tape.
func (b *tapeBuilder) drainEvents(lr *history.LoggedRound) {
	for {
		e, ok := lr.PopEvent()
		if !ok {
			return
		}
		switch e := e.(type) {
		case euchre.DealEvent:
			b.push(TapeEvent{Type: EventDeal, Deal: &DealInfo{Dealer: e.Dealer, Top: e.Top}})
		case euchre.CallEvent:
			c := e.Contract
			b.push(TapeEvent{Type: EventCall, Contract: &c})
		case euchre.TrickEvent:
			b.push(TapeEvent{Type: EventTrick, Trick: &TrickResult{Plays: e.Trick.Plays, Winner: e.Winner}})
		case euchre.RoundEvent:
			o := e.Outcome
			b.push(TapeEvent{Type: EventRoundEnd, Outcome: &o})
		}
	}
}

func (b *tapeBuilder) push(ev TapeEvent) {
	b.seq++
	ev.Seq = b.seq
	ev.EnvelopeB64 = base64.StdEncoding.EncodeToString(appendTapeEvent(nil, ev))
	b.events = append(b.events, ev)
}
