package euchre

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"euchre-lite/card"
)

func fixtureConfig() RoundConfig {
	return RoundConfig{
		Dealer: North,
		Hands: map[Seat][]card.Card{
			North: card.MustParseAll("AD", "QS", "JH", "TH", "9H"),
			East:  card.MustParseAll("JC", "KD", "KS", "KH", "QH"),
			South: card.MustParseAll("AC", "KC", "QC", "QD", "TD"),
			West:  card.MustParseAll("TC", "JS", "TS", "9S", "AH"),
		},
		Top: card.MustParse("JD"),
	}
}

func newFixtureRound(t *testing.T) *Round {
	t.Helper()
	r, err := NewRound(fixtureConfig())
	require.NoError(t, err)
	return r
}

func apply(t *testing.T, r *Round, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		require.NoError(t, r.ApplyAction(a), "apply %s", a)
	}
}

func bid(seat Seat, action ActionType, data ActionData) Action {
	return Action{Seat: seat, Action: action, Data: data}
}

func lead(seat Seat, c string) Action {
	return Action{Seat: seat, Action: ActionLead, Data: Play(card.MustParse(c))}
}

func follow(seat Seat, c string) Action {
	return Action{Seat: seat, Action: ActionFollow, Data: Play(card.MustParse(c))}
}

func passAround(t *testing.T, r *Round) {
	t.Helper()
	apply(t, r,
		bid(East, ActionBidTop, Pass()),
		bid(South, ActionBidTop, Pass()),
		bid(West, ActionBidTop, Pass()),
		bid(North, ActionBidTop, Pass()),
	)
}

func drainEvents(r *Round) []Event {
	var out []Event
	for {
		e, ok := r.PopEvent()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func TestNewRound_ExpectsBidTopAfterDealer(t *testing.T) {
	r := newFixtureRound(t)
	next, ok := r.NextAction()
	require.True(t, ok)
	assert.Equal(t, ExpectAction{Seat: East, Action: ActionBidTop}, next)

	e, ok := r.PopEvent()
	require.True(t, ok)
	assert.Equal(t, DealEvent{Dealer: North, Top: card.CardDiamondJ}, e)
	_, ok = r.PopEvent()
	assert.False(t, ok)
}

func TestBidding_PassAroundMovesToBidOther(t *testing.T) {
	r := newFixtureRound(t)
	passAround(t, r)
	next, ok := r.NextAction()
	require.True(t, ok)
	assert.Equal(t, ExpectAction{Seat: East, Action: ActionBidOther}, next)
}

func TestBidTop_DealerPicksUpAndDiscards(t *testing.T) {
	r := newFixtureRound(t)
	apply(t, r, bid(East, ActionBidTop, Call(card.Diamond, false)))

	c, ok := r.Contract()
	require.True(t, ok)
	assert.Equal(t, Contract{Maker: East, Suit: card.Diamond}, c)
	assert.Len(t, r.Hand(North), 6)
	assert.Contains(t, r.Hand(North), card.CardDiamondJ)

	next, _ := r.NextAction()
	assert.Equal(t, ExpectAction{Seat: North, Action: ActionDealerDiscard}, next)

	apply(t, r, Action{Seat: North, Action: ActionDealerDiscard, Data: Play(card.MustParse("9H"))})
	assert.Len(t, r.Hand(North), 5)
	next, _ = r.NextAction()
	assert.Equal(t, ExpectAction{Seat: East, Action: ActionLead}, next)
}

func TestBidTop_LoneMakerSkipsDiscard(t *testing.T) {
	r := newFixtureRound(t)
	apply(t, r,
		bid(East, ActionBidTop, Pass()),
		bid(South, ActionBidTop, Call(card.Diamond, true)),
	)
	assert.Len(t, r.Hand(North), 6)
	assert.Equal(t, 3, r.Tricks().Size())
	next, _ := r.NextAction()
	assert.Equal(t, ExpectAction{Seat: East, Action: ActionLead}, next)
}

func TestBidTop_LoneDealerStillDiscards(t *testing.T) {
	r := newFixtureRound(t)
	apply(t, r,
		bid(East, ActionBidTop, Pass()),
		bid(South, ActionBidTop, Pass()),
		bid(West, ActionBidTop, Pass()),
		bid(North, ActionBidTop, Call(card.Diamond, true)),
	)
	next, _ := r.NextAction()
	assert.Equal(t, ExpectAction{Seat: North, Action: ActionDealerDiscard}, next)
}

func TestRuleErrors_LeaveRoundUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, r *Round)
		action Action
		reason error
	}{
		{
			name:   "must call top suit",
			action: bid(East, ActionBidTop, Call(card.Heart, false)),
			reason: ErrMustCallTop,
		},
		{
			name:   "dealer must bid",
			setup:  func(t *testing.T, r *Round) { passAround(t, r); passOther(t, r, East, South, West) },
			action: bid(North, ActionBidOther, Pass()),
			reason: ErrDealerMustBid,
		},
		{
			name:   "cannot call top suit",
			setup:  passAround,
			action: bid(East, ActionBidOther, Call(card.Diamond, false)),
			reason: ErrCannotCallTop,
		},
		{
			name:   "discard not held",
			setup:  func(t *testing.T, r *Round) { apply(t, r, bid(East, ActionBidTop, Call(card.Diamond, false))) },
			action: Action{Seat: North, Action: ActionDealerDiscard, Data: Play(card.MustParse("AS"))},
			reason: ErrCardNotHeld,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFixtureRound(t)
			if tt.setup != nil {
				tt.setup(t, r)
			}
			before := r.Snapshot()
			err := r.ApplyAction(tt.action)
			require.Error(t, err)
			assert.True(t, IsRuleError(err))
			assert.ErrorIs(t, err, tt.reason)
			assert.Equal(t, before, r.Snapshot())
		})
	}
}

func passOther(t *testing.T, r *Round, seats ...Seat) {
	t.Helper()
	for _, s := range seats {
		apply(t, r, bid(s, ActionBidOther, Pass()))
	}
}

func TestProtocolErrors(t *testing.T) {
	r := newFixtureRound(t)

	err := r.ApplyAction(bid(South, ActionBidTop, Pass()))
	var unexpected *UnexpectedActionError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, ExpectAction{Seat: East, Action: ActionBidTop}, unexpected.Expected)
	assert.False(t, IsRuleError(err))

	err = r.ApplyAction(bid(East, ActionBidTop, Play(card.CardDiamondK)))
	assert.ErrorIs(t, err, ErrInvalidActionData)

	err = r.ApplyAction(Action{Seat: East, Action: ActionBidTop})
	assert.ErrorIs(t, err, ErrInvalidActionData)

	before := r.Snapshot()
	err = r.ApplyAction(bid(East, ActionBidTop, ActionData{Kind: DataPass, Suit: card.Heart, Alone: true}))
	assert.ErrorIs(t, err, ErrInvalidActionData)
	err = r.ApplyAction(bid(East, ActionBidTop, ActionData{Kind: DataCall, Suit: card.Diamond, Card: card.CardDiamondK}))
	assert.ErrorIs(t, err, ErrInvalidActionData)
	assert.Equal(t, before, r.Snapshot())
	next, ok := r.NextAction()
	require.True(t, ok)
	assert.Equal(t, ExpectAction{Seat: East, Action: ActionBidTop}, next)
}

// South calls clubs and East/West take the first three tricks.
func playEarlyEuchre(t *testing.T, r *Round) {
	t.Helper()
	passAround(t, r)
	apply(t, r,
		bid(East, ActionBidOther, Pass()),
		bid(South, ActionBidOther, Call(card.Club, false)),

		lead(East, "JC"), follow(South, "QC"), follow(West, "TC"), follow(North, "9H"),
		lead(East, "KS"), follow(South, "TD"), follow(West, "9S"), follow(North, "QS"),
		lead(East, "KH"), follow(South, "QD"), follow(West, "AH"), follow(North, "TH"),
	)
}

func TestEarlyEuchre_EndsRound(t *testing.T) {
	r := newFixtureRound(t)
	playEarlyEuchre(t, r)

	_, ok := r.NextAction()
	assert.False(t, ok)
	assert.Equal(t, 3, r.Tricks().Len())
	assert.Equal(t, 3, r.Tricks().WinCount(EastWest))

	o, ok := r.Outcome()
	require.True(t, ok)
	assert.Equal(t, Outcome{Team: EastWest, Points: 2}, o)

	err := r.ApplyAction(lead(West, "JS"))
	assert.ErrorIs(t, err, ErrRoundOver)

	var kinds []string
	var winners []Seat
	for _, e := range drainEvents(r) {
		switch e := e.(type) {
		case DealEvent:
			kinds = append(kinds, "deal")
		case CallEvent:
			kinds = append(kinds, "call")
			assert.Equal(t, Contract{Maker: South, Suit: card.Club}, e.Contract)
		case TrickEvent:
			kinds = append(kinds, "trick")
			winners = append(winners, e.Winner)
		case RoundEvent:
			kinds = append(kinds, "round")
			assert.Equal(t, o, e.Outcome)
		}
	}
	assert.Equal(t, []string{"deal", "call", "trick", "trick", "trick", "round"}, kinds)
	assert.Equal(t, []Seat{East, East, West}, winners)
}

func TestFollow_MustFollowRejectedWithoutMutation(t *testing.T) {
	r := newFixtureRound(t)
	passAround(t, r)
	apply(t, r,
		bid(East, ActionBidOther, Pass()),
		bid(South, ActionBidOther, Call(card.Club, false)),
		lead(East, "JC"), follow(South, "QC"), follow(West, "TC"), follow(North, "9H"),
		lead(East, "KS"), follow(South, "TD"), follow(West, "9S"), follow(North, "QS"),
		lead(East, "KH"), follow(South, "QD"), follow(West, "AH"),
	)
	handBefore := r.Hand(North)
	trickBefore := r.Tricks().Last().Clone()
	nextBefore, _ := r.NextAction()

	err := r.ApplyAction(follow(North, "AD"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMustFollow)
	var re *RuleError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, North, re.Seat)
	assert.Equal(t, card.CardHeartK, re.Card)

	assert.Equal(t, handBefore, r.Hand(North))
	assert.Equal(t, trickBefore, r.Tricks().Last())
	next, _ := r.NextAction()
	assert.Equal(t, nextBefore, next)

	apply(t, r, follow(North, "TH"))
}

func TestFullRound_MakersTakeMajority(t *testing.T) {
	r := newFixtureRound(t)
	apply(t, r,
		bid(East, ActionBidTop, Pass()),
		bid(South, ActionBidTop, Pass()),
		bid(West, ActionBidTop, Pass()),
		bid(North, ActionBidTop, Pass()),
		bid(East, ActionBidOther, Call(card.Heart, false)),

		lead(East, "KH"), follow(South, "AC"), follow(West, "AH"), follow(North, "9H"),
		lead(West, "JS"), follow(North, "QS"), follow(East, "KS"), follow(South, "TD"),
		lead(East, "QH"), follow(South, "QD"), follow(West, "TC"), follow(North, "JH"),
		lead(North, "TH"), follow(East, "KD"), follow(South, "KC"), follow(West, "9S"),
	)
	_, ok := r.Outcome()
	assert.False(t, ok, "two tricks each, round continues")
	apply(t, r, lead(North, "AD"), follow(East, "JC"), follow(South, "QC"), follow(West, "TS"))

	o, ok := r.Outcome()
	require.True(t, ok)
	// North/South defended with three tricks.
	assert.Equal(t, Outcome{Team: NorthSouth, Points: 2}, o)
	assert.True(t, r.Over())
}

func loneConfig() RoundConfig {
	return RoundConfig{
		Dealer: North,
		Hands: map[Seat][]card.Card{
			East:  card.MustParseAll("JH", "JD", "AH", "KH", "QH"),
			South: card.MustParseAll("9S", "TS", "JS", "QS", "KS"),
			West:  card.MustParseAll("AS", "9D", "TD", "QD", "KD"),
			North: card.MustParseAll("TC", "JC", "QC", "KC", "AC"),
		},
		Top: card.MustParse("9C"),
	}
}

func TestLoneHand_PartnerSitsOutAndSweepScoresFour(t *testing.T) {
	r, err := NewRound(loneConfig())
	require.NoError(t, err)
	passAround(t, r)
	apply(t, r, bid(East, ActionBidOther, Call(card.Heart, true)))
	assert.Equal(t, 3, r.Tricks().Size())
	assert.Equal(t, 3, r.Tricks().Total())

	plays := []string{
		"JH", "9S", "TC",
		"JD", "KS", "JC",
		"AH", "QS", "QC",
	}
	var seats []Seat
	for i, c := range plays {
		next, ok := r.NextAction()
		require.True(t, ok)
		seats = append(seats, next.Seat)
		apply(t, r, next.WithData(Play(card.MustParse(c))))
		if i%3 == 0 {
			assert.Equal(t, ActionLead, next.Action)
		}
	}
	assert.NotContains(t, seats, West)
	assert.Equal(t, []Seat{East, South, North, East, South, North, East, South, North}, seats)

	o, ok := r.Outcome()
	require.True(t, ok)
	assert.Equal(t, Outcome{Team: EastWest, Points: 4}, o)
	assert.True(t, r.Over())
	assert.Len(t, r.Hand(West), 5)
}

// playLoneTwoTricks has East order diamonds alone and North/South take the
// first two tricks.
func playLoneTwoTricks(t *testing.T) *Round {
	t.Helper()
	r := newFixtureRound(t)
	apply(t, r,
		bid(East, ActionBidTop, Call(card.Diamond, true)),
		lead(East, "KD"), follow(South, "QD"), follow(North, "JD"),
		lead(North, "JH"), follow(East, "KS"), follow(South, "TD"),
	)
	return r
}

func TestLoneHand_TwoDefenderTricksKeepPlaying(t *testing.T) {
	r := playLoneTwoTricks(t)
	assert.Equal(t, 2, r.Tricks().WinCount(NorthSouth))

	_, ok := r.Outcome()
	assert.False(t, ok)
	next, ok := r.NextAction()
	require.True(t, ok)
	assert.Equal(t, ExpectAction{Seat: North, Action: ActionLead}, next)

	apply(t, r, lead(North, "9H"), follow(East, "KH"), follow(South, "AC"))
	o, ok := r.Outcome()
	require.True(t, ok)
	assert.Equal(t, Outcome{Team: EastWest, Points: 1}, o)
	assert.Equal(t, 3, r.Tricks().Len())
	assert.True(t, r.Over())
}

func TestLoneHand_DefendersTakeThreeEuchre(t *testing.T) {
	r := playLoneTwoTricks(t)
	apply(t, r, lead(North, "AD"), follow(East, "KH"), follow(South, "AC"))

	o, ok := r.Outcome()
	require.True(t, ok)
	assert.Equal(t, Outcome{Team: NorthSouth, Points: 2}, o)
	assert.True(t, r.Over())
}

func TestSnapshot_JSONCarriesTrickWinners(t *testing.T) {
	r := playLoneTwoTricks(t)
	b, err := json.Marshal(r.Snapshot())
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `{"plays":[{"seat":"East","card":"K♦"},{"seat":"South","card":"Q♦"},{"seat":"North","card":"J♦"}],"winner":"North"}`)
	assert.Contains(t, s, `"trick_size":3`)
	assert.NotContains(t, s, "Trump")
}

func TestPlayerState_SortedHand(t *testing.T) {
	r := newFixtureRound(t)
	ps := r.PlayerState(North)
	assert.Nil(t, ps.Contract)
	assert.Equal(t, card.MustParseAll("AD", "QS", "9H", "TH", "JH"), ps.SortedHand())

	passAround(t, r)
	apply(t, r, bid(East, ActionBidOther, Call(card.Heart, false)))
	ps = r.PlayerState(North)
	require.NotNil(t, ps.Contract)
	assert.Equal(t, card.MustParseAll("AD", "QS", "9H", "TH", "JH"), ps.SortedHand())
	assert.Equal(t, ps.Hand, ps.Playable(ActionLead))
}

func TestRandomRoundConfig_IsDeterministicAndValid(t *testing.T) {
	a := RandomRoundConfig(rand.New(rand.NewSource(42)))
	b := RandomRoundConfig(rand.New(rand.NewSource(42)))
	require.NoError(t, a.Validate())
	assert.True(t, a.Equal(b))

	_, err := NewRound(a)
	assert.NoError(t, err)
}

func TestOutcome_NoneBeforeContract(t *testing.T) {
	r := newFixtureRound(t)
	_, ok := r.Outcome()
	assert.False(t, ok)
	assert.False(t, errors.Is(r.ApplyAction(bid(East, ActionBidTop, Pass())), ErrRoundOver))
}
