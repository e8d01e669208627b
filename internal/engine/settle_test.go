package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radieske/bet-settlement-poc/internal/facts"
	"github.com/radieske/bet-settlement-poc/pkg/contracts/provider"
)

// Partida de referência dos testes: Arsenal 2 x 1 Chelsea, intervalo 1-0.
func arsenalChelsea() *facts.MatchFacts {
	return facts.Build(arsenalChelseaPayload())
}

func arsenalChelseaPayload() *provider.Match {
	win := true
	return &provider.Match{
		ID:     "match-1",
		Status: provider.StatusFullTime,
		Participants: []provider.Participant{
			{ID: 1, Name: "Arsenal", Location: provider.LocationHome},
			{ID: 2, Name: "Chelsea", Location: provider.LocationAway},
		},
		Scores: []provider.ScoreEntry{
			{ParticipantID: 1, Description: provider.SegmentFirstHalf, Goals: 1},
			{ParticipantID: 2, Description: provider.SegmentFirstHalf, Goals: 0},
			{ParticipantID: 1, Description: provider.SegmentSecondHalfOnly, Goals: 1},
			{ParticipantID: 2, Description: provider.SegmentSecondHalfOnly, Goals: 1},
		},
		Statistics: []provider.StatEntry{
			{TypeID: provider.StatTypeCorners, ParticipantID: 1, Location: provider.LocationHome, Value: 7},
			{TypeID: provider.StatTypeCorners, ParticipantID: 2, Location: provider.LocationAway, Value: 4},
			{TypeID: provider.StatTypeYellowCards, ParticipantID: 1, Location: provider.LocationHome, Value: 2},
			{TypeID: provider.StatTypeYellowCards, ParticipantID: 2, Location: provider.LocationAway, Value: 3},
			{TypeID: provider.StatTypeRedCards, ParticipantID: 2, Location: provider.LocationAway, Value: 1},
		},
		Events: []provider.MatchEvent{
			{TypeID: provider.EventTypeGoal, ParticipantID: 1, PlayerName: "Bukayo Saka", Minute: 23},
			{TypeID: provider.EventTypeGoal, ParticipantID: 2, PlayerName: "Cole Palmer", Minute: 58},
			{TypeID: provider.EventTypeGoal, ParticipantID: 1, PlayerName: "Gabriel Martinelli", Minute: 76},
		},
		Lineups: []provider.LineupEntry{
			{ParticipantID: 1, PlayerName: "Bukayo Saka", Details: []provider.LineupStat{
				{TypeID: provider.StatTypeShotsTotal, Value: 4},
				{TypeID: provider.StatTypeShotsOnTarget, Value: 2},
			}},
			{ParticipantID: 2, PlayerName: "Cole Palmer", Details: []provider.LineupStat{
				{TypeID: provider.StatTypeShotsTotal, Value: 3},
			}},
		},
		Odds: []provider.Odd{
			{ID: 900, MarketID: 90, Label: "Yes", Winning: &win},
		},
	}
}

func bet(marketID int, sel string) Bet {
	return Bet{
		ID:         "bet-1",
		MatchID:    "match-1",
		MarketID:   marketID,
		Selection:  sel,
		StakeCents: 10000,
		OddValue:   2.5,
	}
}

func TestSettle_MatchResultHomeWin(t *testing.T) {
	out := Settle(bet(1, "1"), arsenalChelsea())
	assert.Equal(t, StatusWon, out.Status)
	assert.Equal(t, int64(25000), out.PayoutCents)
	assert.Equal(t, "match_result", out.Diagnostics["market_family"])
}

func TestSettle_MatchResultAwayLoses(t *testing.T) {
	out := Settle(bet(1, "2"), arsenalChelsea())
	assert.Equal(t, StatusLost, out.Status)
	assert.Equal(t, int64(0), out.PayoutCents)
}

func TestSettle_PendingWhenMatchNotFinished(t *testing.T) {
	m := arsenalChelseaPayload()
	m.Status = provider.StatusLive
	out := Settle(bet(1, "1"), facts.Build(m))
	assert.Equal(t, StatusPending, out.Status)
	assert.False(t, out.Status.Terminal())
	assert.Equal(t, int64(0), out.PayoutCents)
}

func TestSettle_NilFactsIsError(t *testing.T) {
	out := Settle(bet(1, "1"), nil)
	assert.Equal(t, StatusError, out.Status)
	assert.Equal(t, int64(0), out.PayoutCents)
}

func TestSettle_MarketUnresolvedIsCanceled(t *testing.T) {
	b := bet(0, "1")
	b.OddID = 42424242 // odd inexistente no payload
	out := Settle(b, arsenalChelsea())
	assert.Equal(t, StatusCanceled, out.Status)
	assert.Equal(t, b.StakeCents, out.PayoutCents)
}

func TestSettle_MarketResolvedFromOddID(t *testing.T) {
	b := bet(0, "")
	b.OddID = 900 // market_id 90, liquidado pelo provedor
	out := Settle(b, arsenalChelsea())
	assert.Equal(t, StatusWon, out.Status)
	assert.Equal(t, "provider settlement", out.Reason)
}

func TestSettle_ProviderAuthoritativeUsesWinningFlag(t *testing.T) {
	b := bet(90, "Yes")
	b.OddID = 900
	out := Settle(b, arsenalChelsea())
	assert.Equal(t, StatusWon, out.Status)
	assert.Equal(t, "provider_winning_flag", out.Diagnostics["source"])
}

func TestSettle_ProviderAuthoritativeWithoutFlagIsCanceled(t *testing.T) {
	b := bet(90, "Yes")
	b.OddID = 12345 // odd não presente no payload final
	out := Settle(b, arsenalChelsea())
	assert.Equal(t, StatusCanceled, out.Status)
	assert.Equal(t, "provider settlement unavailable", out.Reason)
}

func TestSettle_LiveBetFallsBackPastProviderPath(t *testing.T) {
	b := bet(90, "Yes")
	b.OddID = 12345
	b.IsLive = true
	out := Settle(b, arsenalChelsea())
	// Família desconhecida sem flag do provedor: fallback genérico cancela.
	assert.Equal(t, StatusCanceled, out.Status)
	assert.Equal(t, "unknown market", out.Reason)
}

func TestSettle_UnknownMarketIsCanceled(t *testing.T) {
	out := Settle(bet(999, "1"), arsenalChelsea())
	assert.Equal(t, StatusCanceled, out.Status)
	assert.Equal(t, "unknown market", out.Reason)
}

func TestSettle_Deterministic(t *testing.T) {
	f := arsenalChelsea()
	for _, b := range []Bet{bet(1, "1"), bet(12, "Over 2.5"), bet(24, "2-1")} {
		first := Settle(b, f)
		second := Settle(b, f)
		assert.Equal(t, first, second)
	}
}

func TestPayoutLaw(t *testing.T) {
	b := bet(1, "1")

	assert.Equal(t, int64(25000), payoutFor(b, StatusWon))
	assert.Equal(t, b.StakeCents, payoutFor(b, StatusPush))
	assert.Equal(t, b.StakeCents, payoutFor(b, StatusCanceled))
	assert.Equal(t, int64(0), payoutFor(b, StatusLost))
	assert.Equal(t, int64(0), payoutFor(b, StatusPending))
	assert.Equal(t, int64(0), payoutFor(b, StatusError))

	// Arredondamento de meio centavo para cima
	b.StakeCents = 333
	b.OddValue = 1.505
	assert.Equal(t, int64(501), payoutFor(b, StatusWon))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	for _, s := range []Status{StatusWon, StatusLost, StatusPush, StatusCanceled, StatusError} {
		assert.True(t, s.Terminal())
	}
}
