package history

import (
	"fmt"

	"euchre-lite/card"
	"euchre-lite/euchre"
)

// LoggedRound plays a round while recording every accepted action in a Log.
// The cursor is the id of the last applied action, or NoID at the deal.
//
// Like Round, LoggedRound does no locking: ApplyAction, Restart and Seek must
// be serialized by the caller.
type LoggedRound struct {
	round  *euchre.Round
	log    *Log
	cursor ID
}

func NewLoggedRound(cfg euchre.RoundConfig) (*LoggedRound, error) {
	log, err := NewLog(cfg)
	if err != nil {
		return nil, err
	}
	return FromLog(log)
}

// FromLog starts a fresh round at the root of an existing log.
func FromLog(log *Log) (*LoggedRound, error) {
	round, err := euchre.NewRound(log.config)
	if err != nil {
		return nil, err
	}
	return &LoggedRound{round: round, log: log, cursor: NoID}, nil
}

// Round exposes the underlying round for reading. Actions applied to it
// directly bypass the log.
func (lr *LoggedRound) Round() *euchre.Round { return lr.round }

func (lr *LoggedRound) Log() *Log { return lr.log }

func (lr *LoggedRound) Cursor() ID { return lr.cursor }

func (lr *LoggedRound) Raw() RawLog { return lr.log.Raw() }

func (lr *LoggedRound) NextAction() (euchre.ExpectAction, bool) { return lr.round.NextAction() }

func (lr *LoggedRound) PopEvent() (euchre.Event, bool) { return lr.round.PopEvent() }

func (lr *LoggedRound) Contract() (euchre.Contract, bool) { return lr.round.Contract() }

func (lr *LoggedRound) Tricks() *euchre.Tricks { return lr.round.Tricks() }

func (lr *LoggedRound) Dealer() euchre.Seat { return lr.round.Dealer() }

func (lr *LoggedRound) Top() card.Card { return lr.round.Top() }

func (lr *LoggedRound) Outcome() (euchre.Outcome, bool) { return lr.round.Outcome() }

func (lr *LoggedRound) PlayerState(seat euchre.Seat) euchre.PlayerState {
	return lr.round.PlayerState(seat)
}

func (lr *LoggedRound) Snapshot() euchre.Snapshot { return lr.round.Snapshot() }

// ApplyAction applies a to the round and, only if it is accepted, records it
// under the cursor and advances the cursor to it.
func (lr *LoggedRound) ApplyAction(a euchre.Action) error {
	if err := lr.round.ApplyAction(a); err != nil {
		return err
	}
	id, err := lr.log.Insert(lr.cursor, a)
	if err != nil {
		// The cursor always names a node of the log.
		panic(fmt.Sprintf("history: insert after %s: %v", lr.cursor, err))
	}
	lr.cursor = id
	return nil
}

// Restart deals the round again from the log's config and moves the cursor
// to the root.
func (lr *LoggedRound) Restart() {
	lr.round = lr.fresh()
	lr.cursor = NoID
}

// Seek rebuilds the round as it stood right after node id by replaying the
// path from the root. NoID is the same as Restart. If any recorded action on
// the path is rejected the log is corrupt: Seek returns a *SeekError and the
// round and cursor are left as they were.
func (lr *LoggedRound) Seek(id ID) error {
	if id == NoID {
		lr.Restart()
		return nil
	}
	trace, err := lr.log.Backtrace(id)
	if err != nil {
		return err
	}
	round := lr.fresh()
	for _, step := range trace {
		if err := round.ApplyAction(step.Action); err != nil {
			return &SeekError{Target: id, At: step.ID, Err: err}
		}
	}
	lr.round = round
	lr.cursor = id
	return nil
}

func (lr *LoggedRound) fresh() *euchre.Round {
	round, err := euchre.NewRound(lr.log.config)
	if err != nil {
		// NewLog and FromRaw only accept valid configs.
		panic(fmt.Sprintf("history: log config rejected: %v", err))
	}
	return round
}
