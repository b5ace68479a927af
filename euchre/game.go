package euchre

import (
	"errors"
	"fmt"
	"math/rand"
)

const DefaultTargetScore = 10

var ErrGameOver = errors.New("game is over")

// Game keeps the score across rounds. It does not own the rounds themselves,
// so a plain Round or a logged one can be played between calls to Advance.
type Game struct {
	target int
	scores [2]int
	dealer Seat
	rounds int
	winner *Team
}

// NewGame starts a game whose first round is dealt by dealer. A target of
// zero means DefaultTargetScore.
func NewGame(dealer Seat, target int) (*Game, error) {
	if target == 0 {
		target = DefaultTargetScore
	}
	if target < 0 {
		return nil, fmt.Errorf("target score must be > 0, got %d", target)
	}
	if !dealer.Valid() {
		return nil, fmt.Errorf("invalid dealer %d", byte(dealer))
	}
	return &Game{target: target, dealer: dealer}, nil
}

func (g *Game) Target() int { return g.target }

// Dealer is the dealer of the current round.
func (g *Game) Dealer() Seat { return g.dealer }

func (g *Game) Score(team Team) int { return g.scores[team] }

func (g *Game) Scores() [2]int { return g.scores }

// Rounds is the number of rounds scored so far.
func (g *Game) Rounds() int { return g.rounds }

func (g *Game) Winner() (Team, bool) {
	if g.winner == nil {
		return 0, false
	}
	return *g.winner, true
}

// Deal returns the config of the current round.
func (g *Game) Deal(rng *rand.Rand) RoundConfig {
	return RandomRoundConfigWithDealer(rng, g.dealer)
}

// Advance scores a finished round and passes the deal clockwise. It returns
// a GameEvent once a team reaches the target.
func (g *Game) Advance(o Outcome) (*GameEvent, error) {
	if g.winner != nil {
		return nil, ErrGameOver
	}
	if o.Points <= 0 || !o.Team.Valid() {
		return nil, fmt.Errorf("invalid outcome: %s", o)
	}
	g.scores[o.Team] += o.Points
	g.rounds++
	g.dealer = g.dealer.Next()
	if g.scores[o.Team] >= g.target {
		w := o.Team
		g.winner = &w
		return &GameEvent{Winner: w, Scores: g.scores}, nil
	}
	return nil, nil
}
