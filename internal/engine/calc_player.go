package engine

import (
	"strconv"

	"github.com/radieske/bet-settlement-poc/internal/facts"
	"github.com/radieske/bet-settlement-poc/pkg/contracts/provider"
)

// Calculadoras de props de jogador (chutes). A assimetria é intencional:
// jogador ausente do lineup cancela a aposta; estatística ausente para um
// jogador presente vale zero e normalmente perde.

func settlePlayerShotsOnTarget(b Bet, f *facts.MatchFacts) Outcome {
	return playerShotsOutcome(b, f, provider.StatTypeShotsOnTarget, "shots on target")
}

func settlePlayerTotalShots(b Bet, f *facts.MatchFacts) Outcome {
	return playerShotsOutcome(b, f, provider.StatTypeShotsTotal, "total shots")
}

func playerShotsOutcome(b Bet, f *facts.MatchFacts, statType int, what string) Outcome {
	player := firstNonEmpty(b.Details.Name, b.Selection)
	if player == "" {
		return canceled(b, "player selection missing", nil)
	}
	if !f.HasPlayer(player) {
		return canceled(b, "player not found in lineup", diag("player", player))
	}

	ou, ok := normalizeOverUnder(b)
	if !ok {
		return canceled(b, "unparseable over/under selection", diag("selection", b.Selection))
	}

	value, found := f.PlayerStat(player, statType)
	d := map[string]string{
		"player":       player,
		"stat_present": strconv.FormatBool(found),
	}
	return overUnderVerdict(b, ou, float64(value), what, d)
}
