package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radieske/bet-settlement-poc/pkg/contracts/provider"
)

func TestWorld_RunsMatchesToFullTime(t *testing.T) {
	w := NewWorld(42)

	for i := 0; i < 200; i++ {
		w.Tick()
	}

	snaps := w.Snapshots()
	assert.NotEmpty(t, snaps)
	for _, m := range snaps {
		assert.True(t, m.Finished(), m.ID)
		assert.NotEmpty(t, m.HTScore, m.ID)

		// no apito final o mercado 1X2 vem liquidado pelo "provedor"
		flagged := 0
		for _, o := range m.Odds {
			if o.MarketID == 1 {
				assert.NotNil(t, o.Winning, m.ID)
				if o.Winning != nil && *o.Winning {
					flagged++
				}
			}
		}
		assert.Equal(t, 1, flagged, "exatamente uma seleção vencedora em %s", m.ID)
	}
}

func TestWorld_ScoresMatchGoalEvents(t *testing.T) {
	w := NewWorld(7)
	for i := 0; i < 200; i++ {
		w.Tick()
	}

	for _, m := range w.Snapshots() {
		total := 0
		for _, sc := range m.Scores {
			total += sc.Goals
		}
		goals := 0
		for _, e := range m.Events {
			if e.TypeID == provider.EventTypeGoal {
				goals++
			}
		}
		assert.Equal(t, total, goals, m.ID)
	}
}

func TestWorld_SnapshotIsACopy(t *testing.T) {
	w := NewWorld(1)
	m, ok := w.Snapshot("MATCH_001")
	assert.True(t, ok)

	m.Scores[0].Goals = 99
	again, _ := w.Snapshot("MATCH_001")
	assert.NotEqual(t, 99, again.Scores[0].Goals)
}

func TestWorld_UnknownMatch(t *testing.T) {
	w := NewWorld(1)
	_, ok := w.Snapshot("nope")
	assert.False(t, ok)
}
