package table

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"euchre-lite/euchre"
	"euchre-lite/internal/store"
	"euchre-lite/player"
)

// Match plays rounds at one table of players until a team reaches the
// game's target score.
type Match struct {
	ID string

	game    *euchre.Game
	players map[euchre.Seat]player.Player
	rng     *rand.Rand
	log     logrus.FieldLogger

	store store.Service
	saved []string
}

func NewMatch(id string, game *euchre.Game, players map[euchre.Seat]player.Player, rng *rand.Rand, logger logrus.FieldLogger) (*Match, error) {
	if game == nil {
		return nil, fmt.Errorf("nil game")
	}
	if rng == nil {
		return nil, fmt.Errorf("nil rng")
	}
	for _, seat := range euchre.Seats {
		if players[seat] == nil {
			return nil, fmt.Errorf("%w: %s is empty", ErrMissingPlayer, seat)
		}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Match{
		ID:      id,
		game:    game,
		players: players,
		rng:     rng,
		log:     logger.WithField("match", id),
	}, nil
}

// SaveTo makes the match store every finished round's log in svc.
func (m *Match) SaveTo(svc store.Service) { m.store = svc }

func (m *Match) Game() *euchre.Game { return m.game }

// Saved returns the store ids of the rounds saved so far, in play order.
func (m *Match) Saved() []string { return append([]string(nil), m.saved...) }

// Run plays rounds until the game has a winner or ctx is done.
func (m *Match) Run(ctx context.Context) (*euchre.GameEvent, error) {
	if _, ok := m.game.Winner(); ok {
		return nil, euchre.ErrGameOver
	}
	for {
		n := m.game.Rounds() + 1
		tableID := fmt.Sprintf("%s-r%d", m.ID, n)
		t, err := New(tableID, m.game.Deal(m.rng), m.players, m.log)
		if err != nil {
			return nil, err
		}
		outcome, err := t.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", n, err)
		}
		if m.store != nil {
			id, err := m.store.Save(ctx, tableID, t.Log())
			if err != nil {
				return nil, fmt.Errorf("save round %d: %w", n, err)
			}
			m.saved = append(m.saved, id)
			m.log.WithFields(logrus.Fields{"round": n, "log_id": id}).Debug("round saved")
		}

		ev, err := m.game.Advance(outcome)
		if err != nil {
			return nil, err
		}
		scores := m.game.Scores()
		m.log.WithFields(logrus.Fields{
			"round":       n,
			"north_south": scores[euchre.NorthSouth],
			"east_west":   scores[euchre.EastWest],
		}).Info("score")
		if ev != nil {
			t.announce(*ev)
			m.log.WithField("winner", ev.Winner).Info("match over")
			return ev, nil
		}
	}
}
