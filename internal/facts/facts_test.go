package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radieske/bet-settlement-poc/pkg/contracts/provider"
)

func basePayload() *provider.Match {
	return &provider.Match{
		ID:     "match-9",
		Status: provider.StatusFullTime,
		Participants: []provider.Participant{
			{ID: 10, Name: "Arsenal", Location: provider.LocationHome},
			{ID: 20, Name: "Chelsea", Location: provider.LocationAway},
		},
		Scores: []provider.ScoreEntry{
			{ParticipantID: 10, Description: provider.SegmentFirstHalf, Goals: 1},
			{ParticipantID: 20, Description: provider.SegmentFirstHalf, Goals: 0},
			{ParticipantID: 10, Description: provider.SegmentSecondHalfOnly, Goals: 1},
			{ParticipantID: 20, Description: provider.SegmentSecondHalfOnly, Goals: 1},
		},
	}
}

func TestBuild_FullTimeSumsSegments(t *testing.T) {
	f := Build(basePayload())
	assert.True(t, f.Finished)
	assert.Equal(t, &Score{Home: 2, Away: 1}, f.FullTime)
	assert.Equal(t, 3, f.FullTime.Total())
	assert.Equal(t, &Score{Home: 1, Away: 0}, f.HalfTime)
	assert.Equal(t, &Score{Home: 1, Away: 1}, f.SecondHalf)
}

func TestBuild_CurrentSegmentIsIgnored(t *testing.T) {
	m := basePayload()
	// o agregado CURRENT do feed não é confiável e fica de fora da soma
	m.Scores = append(m.Scores,
		provider.ScoreEntry{ParticipantID: 10, Description: provider.SegmentCurrent, Goals: 5})
	f := Build(m)
	assert.Equal(t, &Score{Home: 2, Away: 1}, f.FullTime)
}

func TestBuild_HalfTimeLegacyFallback(t *testing.T) {
	m := basePayload()
	m.Scores = m.Scores[2:] // só o segmento do 2º tempo
	m.HTScore = "1-0"
	f := Build(m)
	assert.Equal(t, &Score{Home: 1, Away: 0}, f.HalfTime)

	m.HTScore = "garbage"
	assert.Nil(t, Build(m).HalfTime)
}

func TestBuild_MissingScoresAreNil(t *testing.T) {
	m := basePayload()
	m.Scores = nil
	f := Build(m)
	assert.Nil(t, f.FullTime)
	assert.Nil(t, f.HalfTime)
	assert.Nil(t, f.SecondHalf)
}

func TestBuild_NotFinishedStatuses(t *testing.T) {
	for _, st := range []string{provider.StatusNotStarted, provider.StatusLive, provider.StatusHalfTime, provider.StatusCanceled, provider.StatusPostponed} {
		m := basePayload()
		m.Status = st
		assert.False(t, Build(m).Finished, st)
	}
	for _, st := range []string{provider.StatusFullTime, provider.StatusAfterExtraTime, provider.StatusPenalties} {
		m := basePayload()
		m.Status = st
		assert.True(t, Build(m).Finished, st)
	}
}

func TestBuild_CornersAbsentIsNotZero(t *testing.T) {
	f := Build(basePayload())
	assert.Nil(t, f.Corners) // nenhuma entrada de escanteio => sem dado

	m := basePayload()
	m.Statistics = []provider.StatEntry{
		{TypeID: provider.StatTypeCorners, ParticipantID: 10, Location: provider.LocationHome, Value: 7},
		{TypeID: provider.StatTypeCorners, ParticipantID: 20, Location: provider.LocationAway, Value: 4},
		{TypeID: provider.StatTypeShotsTotal, ParticipantID: 10, Location: provider.LocationHome, Value: 15},
	}
	f = Build(m)
	assert.Equal(t, &SideCount{Home: 7, Away: 4, Total: 11}, f.Corners)
}

func TestBuild_StatSideByParticipantWhenLocationMissing(t *testing.T) {
	m := basePayload()
	m.Statistics = []provider.StatEntry{
		{TypeID: provider.StatTypeCorners, ParticipantID: 10, Value: 3},
		{TypeID: provider.StatTypeCorners, ParticipantID: 20, Value: 2},
	}
	f := Build(m)
	assert.Equal(t, &SideCount{Home: 3, Away: 2, Total: 5}, f.Corners)
}

func TestBuild_CardsAggregateYellowAndRed(t *testing.T) {
	m := basePayload()
	m.Statistics = []provider.StatEntry{
		{TypeID: provider.StatTypeYellowCards, ParticipantID: 10, Location: provider.LocationHome, Value: 2},
		{TypeID: provider.StatTypeYellowCards, ParticipantID: 20, Location: provider.LocationAway, Value: 3},
		{TypeID: provider.StatTypeRedCards, ParticipantID: 20, Location: provider.LocationAway, Value: 1},
	}
	f := Build(m)
	assert.Equal(t, &SideCount{Home: 2, Away: 4, Total: 6}, f.Cards)
}

func TestBuild_GoalEventsSortedByMinuteAndExtra(t *testing.T) {
	one := 1
	four := 4
	m := basePayload()
	m.Events = []provider.MatchEvent{
		{TypeID: provider.EventTypeGoal, ParticipantID: 10, PlayerName: "C", Minute: 45, ExtraMinute: &four},
		{TypeID: provider.EventTypePenaltyGoal, ParticipantID: 20, PlayerName: "B", Minute: 45, ExtraMinute: &one},
		{TypeID: provider.EventTypeGoal, ParticipantID: 10, PlayerName: "A", Minute: 12},
		{TypeID: provider.EventTypeYellowCard, ParticipantID: 10, PlayerName: "ignored", Minute: 30},
	}
	f := Build(m)
	assert.Len(t, f.Goals, 3)
	assert.Equal(t, "A", f.Goals[0].PlayerName)
	assert.Equal(t, "B", f.Goals[1].PlayerName)
	assert.Equal(t, "C", f.Goals[2].PlayerName)
}

func TestGoalSide_OwnGoalFlips(t *testing.T) {
	f := Build(basePayload())
	assert.Equal(t, "home", f.GoalSide(GoalEvent{ParticipantID: 10}))
	assert.Equal(t, "away", f.GoalSide(GoalEvent{ParticipantID: 10, OwnGoal: true}))
	assert.Equal(t, "home", f.GoalSide(GoalEvent{ParticipantID: 20, OwnGoal: true}))
	assert.Equal(t, "", f.GoalSide(GoalEvent{ParticipantID: 99}))
}

func TestPlayerLookup(t *testing.T) {
	m := basePayload()
	m.Lineups = []provider.LineupEntry{
		{ParticipantID: 10, PlayerName: "Bukayo Saka", Details: []provider.LineupStat{
			{TypeID: provider.StatTypeShotsOnTarget, Value: 2},
		}},
	}
	f := Build(m)

	assert.True(t, f.HasPlayer("bukayo saka")) // insensível a maiúsculas
	assert.False(t, f.HasPlayer("B. Saka"))    // lookup de lineup é exato, sem fuzzy

	v, ok := f.PlayerStat("Bukayo Saka", provider.StatTypeShotsOnTarget)
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	// jogador presente, estatística ausente
	_, ok = f.PlayerStat("Bukayo Saka", provider.StatTypeShotsTotal)
	assert.False(t, ok)

	// jogador ausente
	_, ok = f.PlayerStat("John Doe", provider.StatTypeShotsOnTarget)
	assert.False(t, ok)
}

func TestOddByID(t *testing.T) {
	win := false
	m := basePayload()
	m.Odds = []provider.Odd{{ID: 77, MarketID: 12, Label: "Over", Total: "2.5", Winning: &win}}
	f := Build(m)

	o, ok := f.OddByID(77)
	assert.True(t, ok)
	assert.Equal(t, 12, o.MarketID)
	assert.False(t, *o.Winning)

	_, ok = f.OddByID(78)
	assert.False(t, ok)
}
