package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeResult(t *testing.T) {
	assert.Equal(t, resultHome, normalizeResult("1"))
	assert.Equal(t, resultHome, normalizeResult(" Home "))
	assert.Equal(t, resultDraw, normalizeResult("X"))
	assert.Equal(t, resultDraw, normalizeResult("draw"))
	assert.Equal(t, resultAway, normalizeResult("2"))
	assert.Equal(t, resultAway, normalizeResult("Away Win"))
	assert.Equal(t, resultNone, normalizeResult("banana"))
}

func TestNormalizeOverUnder_StructuredFieldsWin(t *testing.T) {
	b := Bet{Selection: "Under 0.5"}
	b.Details.Label = "Over"
	b.Details.Total = "3.5"

	ou, ok := normalizeOverUnder(b)
	assert.True(t, ok)
	assert.True(t, ou.over)
	assert.Equal(t, 3.5, ou.threshold)
}

func TestNormalizeOverUnder_TextFallback(t *testing.T) {
	ou, ok := normalizeOverUnder(Bet{Selection: "under 2,5"})
	assert.True(t, ok)
	assert.False(t, ou.over)
	assert.Equal(t, 2.5, ou.threshold)

	// lado identificável sem número assume o threshold legado
	ou, ok = normalizeOverUnder(Bet{Selection: "Over"})
	assert.True(t, ok)
	assert.Equal(t, defaultGoalThreshold, ou.threshold)

	_, ok = normalizeOverUnder(Bet{Selection: "2.5"})
	assert.False(t, ok)
}

func TestNormalizeHandicap(t *testing.T) {
	b := Bet{Selection: "1"}
	b.Details.Handicap = "-1.5"
	h, ok := normalizeHandicap(b)
	assert.True(t, ok)
	assert.True(t, h.home)
	assert.Equal(t, -1.5, h.value)

	b = Bet{Selection: "+0,5"}
	b.Details.Label = "Away"
	h, ok = normalizeHandicap(b)
	assert.True(t, ok)
	assert.False(t, h.home)
	assert.Equal(t, 0.5, h.value)

	_, ok = normalizeHandicap(Bet{Selection: "X"})
	assert.False(t, ok)
}

func TestNormalizeScoreline(t *testing.T) {
	for _, raw := range []string{"2-1", "2:1", "2x1", " 2 - 1 "} {
		got, ok := normalizeScoreline(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, "2-1", got)
	}
	_, ok := normalizeScoreline("no score here")
	assert.False(t, ok)
}

func TestSplitPair(t *testing.T) {
	l, r, ok := splitPair("Away/No")
	assert.True(t, ok)
	assert.Equal(t, "Away", l)
	assert.Equal(t, "No", r)

	l, r, ok = splitPair("Arsenal - Draw")
	assert.True(t, ok)
	assert.Equal(t, "Arsenal", l)
	assert.Equal(t, "Draw", r)

	_, _, ok = splitPair("single")
	assert.False(t, ok)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "jose maria", normalizeName("  José María "))
	assert.Equal(t, "b finne", normalizeName("B. Finne"))
	assert.Equal(t, "o neil", normalizeName("O'Neil"))
}

func TestFuzzyPlayerMatch(t *testing.T) {
	assert.True(t, fuzzyPlayerMatch("Bendik Finne", "Bendik Finne"))
	assert.True(t, fuzzyPlayerMatch("B. Finne", "Bendik Finne"))
	assert.True(t, fuzzyPlayerMatch("Palmer", "Cole Palmer"))
	assert.True(t, fuzzyPlayerMatch("GABRIEL MARTINELLI", "gabriel martinelli"))
	assert.False(t, fuzzyPlayerMatch("Bukayo Saka", "Cole Palmer"))
	assert.False(t, fuzzyPlayerMatch("", "Cole Palmer"))
}
