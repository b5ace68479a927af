// Package table seats players around a logged round and drives it.
package table

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"euchre-lite/euchre"
	"euchre-lite/history"
	"euchre-lite/player"
)

var (
	ErrMissingPlayer  = errors.New("every seat needs a player")
	ErrTooManyRetries = errors.New("too many rejected actions")
)

// maxRetries bounds how often one seat may be re-prompted for a single step.
const maxRetries = 8

// DeclinedError is returned when a player refuses to retry after a rule error.
type DeclinedError struct {
	Seat euchre.Seat
	Err  error
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("%s gave up: %v", e.Seat, e.Err)
}

func (e *DeclinedError) Unwrap() error { return e.Err }

// RoundEndInfo is passed to hooks once the round has an outcome.
type RoundEndInfo struct {
	TableID  string
	Outcome  euchre.Outcome
	Log      *history.Log
	Snapshot euchre.Snapshot
}

// RoundEndHook is a post-round callback.
type RoundEndHook func(info RoundEndInfo)

// Table owns one logged round and the players seated at it. All methods are
// safe for concurrent use; the round itself is only touched under mu.
type Table struct {
	ID string

	mu      sync.Mutex
	round   *history.LoggedRound
	players map[euchre.Seat]player.Player
	log     *logrus.Entry

	roundEndHooks []RoundEndHook
	ended         bool
}

// New deals cfg into a fresh logged round.
func New(id string, cfg euchre.RoundConfig, players map[euchre.Seat]player.Player, logger logrus.FieldLogger) (*Table, error) {
	lr, err := history.NewLoggedRound(cfg)
	if err != nil {
		return nil, err
	}
	return newTable(id, lr, players, logger)
}

// FromLog resumes a saved log at its root.
func FromLog(id string, l *history.Log, players map[euchre.Seat]player.Player, logger logrus.FieldLogger) (*Table, error) {
	lr, err := history.FromLog(l)
	if err != nil {
		return nil, err
	}
	return newTable(id, lr, players, logger)
}

func newTable(id string, lr *history.LoggedRound, players map[euchre.Seat]player.Player, logger logrus.FieldLogger) (*Table, error) {
	for _, seat := range euchre.Seats {
		if players[seat] == nil {
			return nil, fmt.Errorf("%w: %s is empty", ErrMissingPlayer, seat)
		}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	seated := make(map[euchre.Seat]player.Player, len(players))
	for seat, p := range players {
		seated[seat] = p
	}
	t := &Table{
		ID:      id,
		round:   lr,
		players: seated,
		log:     logger.WithField("table", id),
	}
	t.log.WithField("dealer", lr.Dealer()).Debug("table created")
	return t, nil
}

// AddRoundEndHook registers a post-round callback. Hooks run synchronously
// on the goroutine that finished the round.
func (t *Table) AddRoundEndHook(hook RoundEndHook) {
	if hook == nil {
		return
	}
	t.mu.Lock()
	t.roundEndHooks = append(t.roundEndHooks, hook)
	t.mu.Unlock()
}

// Step flushes pending events, then prompts the expected seat and applies
// its action. It reports whether the round is over.
func (t *Table) Step() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stepLocked()
}

// Run steps until the round is over or ctx is done. The context is checked
// between actions.
func (t *Table) Run(ctx context.Context) (euchre.Outcome, error) {
	for {
		if err := ctx.Err(); err != nil {
			return euchre.Outcome{}, err
		}
		t.mu.Lock()
		done, err := t.stepLocked()
		outcome, _ := t.round.Outcome()
		t.mu.Unlock()
		if err != nil {
			return euchre.Outcome{}, err
		}
		if done {
			return outcome, nil
		}
	}
}

func (t *Table) stepLocked() (bool, error) {
	t.notifyLocked()
	next, ok := t.round.NextAction()
	if !ok {
		t.finishLocked()
		return true, nil
	}

	p := t.players[next.Seat]
	entry := t.log.WithFields(logrus.Fields{
		"seat":   next.Seat,
		"action": next.Action,
	})
	for attempt := 0; ; attempt++ {
		if attempt >= maxRetries {
			return false, fmt.Errorf("%s: %w", next.Seat, ErrTooManyRetries)
		}
		data := p.TakeAction(t.round.PlayerState(next.Seat), next.Action)
		err := t.round.ApplyAction(next.WithData(data))
		if err == nil {
			entry.WithFields(logrus.Fields{
				"data":   data,
				"log_id": t.round.Cursor(),
			}).Debug("action applied")
			break
		}
		if !euchre.IsRuleError(err) {
			entry.WithError(err).Warn("action rejected")
			return false, err
		}
		if !p.HandleError(err) {
			entry.WithError(err).Info("player declined retry")
			return false, &DeclinedError{Seat: next.Seat, Err: err}
		}
		entry.WithError(err).Debug("re-prompting after rule error")
	}

	if t.round.Round().Over() {
		t.notifyLocked()
		t.finishLocked()
		return true, nil
	}
	return false, nil
}

// notifyLocked fans queued round events out to every seat in seat order.
func (t *Table) notifyLocked() {
	for {
		ev, ok := t.round.PopEvent()
		if !ok {
			return
		}
		for _, seat := range euchre.Seats {
			t.players[seat].Notify(t.round.PlayerState(seat), ev)
		}
	}
}

func (t *Table) finishLocked() {
	if t.ended {
		return
	}
	outcome, ok := t.round.Outcome()
	if !ok {
		return
	}
	t.ended = true
	t.log.WithFields(logrus.Fields{
		"winner": outcome.Team,
		"points": outcome.Points,
		"nodes":  t.round.Log().Len(),
	}).Info("round over")

	info := RoundEndInfo{
		TableID:  t.ID,
		Outcome:  outcome,
		Log:      t.round.Log(),
		Snapshot: t.round.Snapshot(),
	}
	for _, hook := range t.roundEndHooks {
		t.runHook(hook, info)
	}
}

func (t *Table) runHook(hook RoundEndHook, info RoundEndInfo) {
	defer func() {
		if r := recover(); r != nil {
			t.log.WithField("panic", r).Error("round end hook panic")
		}
	}()
	hook(info)
}

// Seek moves the round to a logged node. Pending events of the old position
// are dropped; the next step notifies players of the replayed ones.
func (t *Table) Seek(id history.ID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.round.Seek(id); err != nil {
		t.log.WithError(err).WithField("log_id", id).Warn("seek failed")
		return err
	}
	t.ended = false
	t.log.WithField("log_id", id).Debug("seek")
	return nil
}

// Restart rewinds to the deal without forgetting the log.
func (t *Table) Restart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.round.Restart()
	t.ended = false
}

// Cursor returns the log node of the current position.
func (t *Table) Cursor() history.ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.round.Cursor()
}

// Snapshot returns the current round state.
func (t *Table) Snapshot() euchre.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.round.Snapshot()
}

// Log returns the history tree. Callers must not use it concurrently with
// Step or Run.
func (t *Table) Log() *history.Log {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.round.Log()
}

// announce delivers an event that does not come from the round itself.
func (t *Table) announce(ev euchre.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, seat := range euchre.Seats {
		t.players[seat].Notify(t.round.PlayerState(seat), ev)
	}
}
