package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radieske/bet-settlement-poc/internal/facts"
)

func TestSettleMany_PreservesOrder(t *testing.T) {
	f := arsenalChelsea()
	bets := []Bet{bet(1, "1"), bet(1, "2"), bet(12, "Over 2.5")}

	outcomes := SettleMany(bets, map[string]*facts.MatchFacts{"match-1": f})
	assert.Len(t, outcomes, 3)
	assert.Equal(t, StatusWon, outcomes[0].Status)
	assert.Equal(t, StatusLost, outcomes[1].Status)
	assert.Equal(t, StatusWon, outcomes[2].Status)
}

func TestSettleMany_MissingFactsDoesNotAbortBatch(t *testing.T) {
	ok := bet(1, "1")
	orphan := bet(1, "1")
	orphan.MatchID = "match-unknown"

	outcomes := SettleMany([]Bet{orphan, ok}, map[string]*facts.MatchFacts{"match-1": arsenalChelsea()})
	assert.Equal(t, StatusError, outcomes[0].Status)
	assert.Equal(t, "match facts unavailable", outcomes[0].Reason)
	assert.Equal(t, int64(0), outcomes[0].PayoutCents)
	assert.Equal(t, StatusWon, outcomes[1].Status)
}

func TestSettleMany_EmptyBatch(t *testing.T) {
	assert.Empty(t, SettleMany(nil, nil))
}
