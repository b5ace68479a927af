package table

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"euchre-lite/card"
	"euchre-lite/euchre"
	"euchre-lite/history"
	"euchre-lite/internal/store"
	"euchre-lite/player"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func fixtureConfig() euchre.RoundConfig {
	return euchre.RoundConfig{
		Dealer: euchre.North,
		Hands: map[euchre.Seat][]card.Card{
			euchre.North: card.MustParseAll("AD", "QS", "JH", "TH", "9H"),
			euchre.East:  card.MustParseAll("JC", "KD", "KS", "KH", "QH"),
			euchre.South: card.MustParseAll("AC", "KC", "QC", "QD", "TD"),
			euchre.West:  card.MustParseAll("TC", "JS", "TS", "9S", "AH"),
		},
		Top: card.MustParse("JD"),
	}
}

// fixturePlayers script a round where South names clubs after everyone
// passes the jack of diamonds, and North/South take three tricks.
func fixturePlayers() map[euchre.Seat]*player.Scripted {
	pass := euchre.Pass()
	return map[euchre.Seat]*player.Scripted{
		euchre.North: {
			BidsTop: []euchre.ActionData{pass},
			Leads:   card.MustParseAll("QS"),
			Follows: card.MustParseAll("AD", "9H", "TH", "JH"),
		},
		euchre.East: {
			BidsTop:   []euchre.ActionData{pass},
			BidsOther: []euchre.ActionData{pass},
			Leads:     card.MustParseAll("KD", "JC", "KH"),
			Follows:   card.MustParseAll("KS", "QH"),
		},
		euchre.South: {
			BidsTop:   []euchre.ActionData{pass},
			BidsOther: []euchre.ActionData{euchre.Call(card.Club, false)},
			Leads:     card.MustParseAll("QC"),
			Follows:   card.MustParseAll("QD", "TD", "AC", "KC"),
		},
		euchre.West: {
			BidsTop: []euchre.ActionData{pass},
			Follows: card.MustParseAll("AH", "TS", "JS", "9S", "TC"),
		},
	}
}

func seatAll(scripted map[euchre.Seat]*player.Scripted) map[euchre.Seat]player.Player {
	out := make(map[euchre.Seat]player.Player, len(scripted))
	for seat, p := range scripted {
		out[seat] = p
	}
	return out
}

// retrying accepts every rule error and asks to be prompted again.
type retrying struct {
	*player.Scripted
}

func (r retrying) HandleError(err error) bool {
	r.Scripted.HandleError(err)
	return true
}

// misfit answers every prompt with a card, which never fits a bid.
type misfit struct{}

func (misfit) TakeAction(state euchre.PlayerState, _ euchre.ActionType) euchre.ActionData {
	return euchre.Play(state.Hand[0])
}
func (misfit) Notify(euchre.PlayerState, euchre.Event) {}
func (misfit) HandleError(error) bool                  { return true }

func TestNew_RequiresEverySeat(t *testing.T) {
	players := seatAll(fixturePlayers())
	delete(players, euchre.West)
	_, err := New("t", fixtureConfig(), players, quietLogger())
	assert.ErrorIs(t, err, ErrMissingPlayer)

	cfg := fixtureConfig()
	cfg.Top = card.MustParse("AD")
	_, err = New("t", cfg, seatAll(fixturePlayers()), quietLogger())
	assert.ErrorIs(t, err, euchre.ErrDuplicateCard)
}

func TestRun_ScriptedRound(t *testing.T) {
	scripted := fixturePlayers()
	tbl, err := New("fixture", fixtureConfig(), seatAll(scripted), quietLogger())
	require.NoError(t, err)

	var ended []RoundEndInfo
	tbl.AddRoundEndHook(func(info RoundEndInfo) { ended = append(ended, info) })
	tbl.AddRoundEndHook(func(RoundEndInfo) { panic("hook failure is contained") })

	outcome, err := tbl.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, euchre.Outcome{Team: euchre.NorthSouth, Points: 1}, outcome)

	for seat, p := range scripted {
		assert.True(t, p.Exhausted(), "%s has unused decisions", seat)
		require.Len(t, p.Events, 8, seat.String())
		assert.IsType(t, euchre.DealEvent{}, p.Events[0])
		assert.Equal(t, euchre.CallEvent{Contract: euchre.Contract{Maker: euchre.South, Suit: card.Club}}, p.Events[1])
		assert.Equal(t, euchre.RoundEvent{Outcome: outcome}, p.Events[7])
	}

	require.Len(t, ended, 1)
	assert.Equal(t, "fixture", ended[0].TableID)
	assert.Equal(t, outcome, ended[0].Outcome)
	assert.Equal(t, 26, ended[0].Log.Len())
	assert.Equal(t, outcome, *ended[0].Snapshot.Outcome)

	done, err := tbl.Step()
	require.NoError(t, err)
	assert.True(t, done)
	assert.Len(t, ended, 1, "hooks run once per finished round")
}

func TestStep_RuleErrorRetries(t *testing.T) {
	scripted := fixturePlayers()
	north := scripted[euchre.North]
	north.Follows = append(card.MustParseAll("9H"), north.Follows...)
	players := seatAll(scripted)
	players[euchre.North] = retrying{north}

	tbl, err := New("retry", fixtureConfig(), players, quietLogger())
	require.NoError(t, err)
	outcome, err := tbl.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, euchre.NorthSouth, outcome.Team)

	require.Len(t, north.Errors, 1)
	assert.ErrorIs(t, north.Errors[0], euchre.ErrMustFollow)
	assert.Equal(t, 26, tbl.Log().Len(), "rejected action is not logged")
}

func TestStep_DeclinedRuleErrorAborts(t *testing.T) {
	scripted := fixturePlayers()
	scripted[euchre.North].Follows = append(card.MustParseAll("9H"), scripted[euchre.North].Follows...)
	tbl, err := New("decline", fixtureConfig(), seatAll(scripted), quietLogger())
	require.NoError(t, err)

	_, err = tbl.Run(context.Background())
	var declined *DeclinedError
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, euchre.North, declined.Seat)
	assert.ErrorIs(t, err, euchre.ErrMustFollow)

	snap := tbl.Snapshot()
	require.NotNil(t, snap.Next)
	assert.Equal(t, euchre.ExpectAction{Seat: euchre.North, Action: euchre.ActionFollow}, *snap.Next)
	assert.Equal(t, 9, tbl.Log().Len())
}

func TestStep_ProtocolErrorAborts(t *testing.T) {
	players := seatAll(fixturePlayers())
	players[euchre.East] = misfit{}
	tbl, err := New("misfit", fixtureConfig(), players, quietLogger())
	require.NoError(t, err)

	done, err := tbl.Step()
	assert.False(t, done)
	assert.ErrorIs(t, err, euchre.ErrInvalidActionData)
	assert.Equal(t, history.NoID, tbl.Cursor())
}

func TestStep_TooManyRetries(t *testing.T) {
	scripted := fixturePlayers()
	east := scripted[euchre.East]
	east.BidsTop = nil
	for i := 0; i < maxRetries; i++ {
		east.BidsTop = append(east.BidsTop, euchre.Call(card.Heart, false))
	}
	players := seatAll(scripted)
	players[euchre.East] = retrying{east}
	tbl, err := New("stubborn", fixtureConfig(), players, quietLogger())
	require.NoError(t, err)

	_, err = tbl.Step()
	assert.ErrorIs(t, err, ErrTooManyRetries)
	assert.Len(t, east.Errors, maxRetries)
	assert.True(t, errors.Is(east.Errors[0], euchre.ErrMustCallTop))
}

func TestRun_ContextCanceled(t *testing.T) {
	tbl, err := New("cancel", fixtureConfig(), seatAll(fixturePlayers()), quietLogger())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tbl.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeekAndReplayDeduplicates(t *testing.T) {
	tbl, err := New("seek", fixtureConfig(), seatAll(fixturePlayers()), quietLogger())
	require.NoError(t, err)
	_, err = tbl.Run(context.Background())
	require.NoError(t, err)
	end := tbl.Cursor()

	require.NoError(t, tbl.Seek(history.ID(3)))
	snap := tbl.Snapshot()
	require.NotNil(t, snap.Next)
	assert.Equal(t, euchre.ExpectAction{Seat: euchre.East, Action: euchre.ActionBidOther}, *snap.Next)

	assert.ErrorIs(t, tbl.Seek(history.ID(999)), history.ErrInvalidID)
	assert.Equal(t, history.ID(3), tbl.Cursor(), "failed seek keeps the position")

	tbl.Restart()
	tbl.players = seatAll(fixturePlayers())
	_, err = tbl.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, end, tbl.Cursor())
	assert.Equal(t, 26, tbl.Log().Len())
}

func TestFromLog(t *testing.T) {
	lr, err := history.NewLoggedRound(fixtureConfig())
	require.NoError(t, err)
	tbl, err := FromLog("resumed", lr.Log(), seatAll(fixturePlayers()), nil)
	require.NoError(t, err)
	assert.Equal(t, history.NoID, tbl.Cursor())
}

// recorder keeps every event a random player is shown.
type recorder struct {
	*player.Random
	events *[]euchre.Event
}

func (r recorder) Notify(_ euchre.PlayerState, ev euchre.Event) {
	*r.events = append(*r.events, ev)
}

func TestMatch_PlaysToTargetAndSaves(t *testing.T) {
	game, err := euchre.NewGame(euchre.East, 5)
	require.NoError(t, err)

	var seen []euchre.Event
	players := map[euchre.Seat]player.Player{}
	for i, seat := range euchre.Seats {
		bot := player.NewRandom(seat.String(), int64(100+i))
		if seat == euchre.North {
			players[seat] = recorder{Random: bot, events: &seen}
			continue
		}
		players[seat] = bot
	}

	m, err := NewMatch("m1", game, players, rand.New(rand.NewSource(9)), quietLogger())
	require.NoError(t, err)
	svc := store.NewMemoryService()
	m.SaveTo(svc)

	ev, err := m.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.GreaterOrEqual(t, ev.Scores[ev.Winner], 5)
	assert.Equal(t, game.Scores(), ev.Scores)

	winner, ok := game.Winner()
	require.True(t, ok)
	assert.Equal(t, ev.Winner, winner)

	require.Len(t, m.Saved(), game.Rounds())
	for _, id := range m.Saved() {
		l, err := svc.Load(context.Background(), id)
		require.NoError(t, err)
		assert.NotEmpty(t, l.Leaves())
	}
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, game.Rounds())

	require.NotEmpty(t, seen)
	assert.Equal(t, *ev, seen[len(seen)-1])

	_, err = m.Run(context.Background())
	assert.ErrorIs(t, err, euchre.ErrGameOver)
}

func TestNewMatch_Validates(t *testing.T) {
	game, err := euchre.NewGame(euchre.North, 0)
	require.NoError(t, err)
	_, err = NewMatch("m", game, seatAll(fixturePlayers()), nil, nil)
	assert.Error(t, err)
	_, err = NewMatch("m", nil, seatAll(fixturePlayers()), rand.New(rand.NewSource(1)), nil)
	assert.Error(t, err)
	_, err = NewMatch("m", game, map[euchre.Seat]player.Player{}, rand.New(rand.NewSource(1)), nil)
	assert.ErrorIs(t, err, ErrMissingPlayer)
}
