package engine

import (
	"strconv"
	"strings"

	"github.com/radieske/bet-settlement-poc/internal/facts"
)

// Calculadoras de mercados de gols (totais, ambas marcam, par/ímpar,
// gols por time).

// overUnderVerdict aplica a regra documentada de totais: acima vence Over,
// abaixo vence Under e igualdade devolve o stake (push). Igualdade só é
// possível em linhas inteiras; em linhas de meio gol nunca ocorre.
func overUnderVerdict(b Bet, ou overUnder, actual float64, what string, extra map[string]string) Outcome {
	d := diag("threshold", strconv.FormatFloat(ou.threshold, 'f', -1, 64),
		"actual", strconv.FormatFloat(actual, 'f', -1, 64),
		"selection", ou.String())
	for k, v := range extra {
		d[k] = v
	}
	if actual == ou.threshold {
		return result(b, StatusPush, what+" equals the line", d)
	}
	won := (ou.over && actual > ou.threshold) || (!ou.over && actual < ou.threshold)
	return winLose(b, won, what+" "+strconv.FormatFloat(actual, 'f', -1, 64), d)
}

// settleOverUnderGoals liquida totais de gols do tempo integral.
func settleOverUnderGoals(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	ou, ok := normalizeOverUnder(b)
	if !ok {
		return canceled(b, "unparseable over/under selection", diag("selection", b.Selection))
	}
	return overUnderVerdict(b, ou, float64(ft.Total()), "total goals",
		map[string]string{"full_time": scoreString(ft)})
}

// settleGoalLine é o total asiático: mesma regra de totais, linha vinda do
// campo estruturado ou do texto.
func settleGoalLine(b Bet, f *facts.MatchFacts) Outcome {
	return settleOverUnderGoals(b, f)
}

func bttsOutcome(b Bet, s facts.Score, segment string) Outcome {
	yes, ok := yesNoSelection(b)
	if !ok {
		return canceled(b, "unparseable yes/no selection", diag("selection", b.Selection))
	}
	both := s.Home > 0 && s.Away > 0
	return winLose(b, yes == both,
		segment+" score "+scoreString(s),
		diag(segment, scoreString(s), "both_scored", strconv.FormatBool(both)))
}

// settleBothTeamsToScore e variantes por tempo.
func settleBothTeamsToScore(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	return bttsOutcome(b, ft, "full_time")
}

func settleBTTSFirstHalf(b Bet, f *facts.MatchFacts) Outcome {
	ht, out, ok := requireScore(b, f.HalfTime, "half-time")
	if !ok {
		return out
	}
	return bttsOutcome(b, ht, "half_time")
}

func settleBTTSSecondHalf(b Bet, f *facts.MatchFacts) Outcome {
	sh, out, ok := requireScore(b, f.SecondHalf, "second-half")
	if !ok {
		return out
	}
	return bttsOutcome(b, sh, "second_half")
}

// settleCleanSheet: o time escolhido não sofre gol.
func settleCleanSheet(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	home, ok := teamSide(b, f)
	if !ok {
		return canceled(b, "team side unresolved", diag("selection", b.Selection))
	}
	yes, ok := yesNoSelection(b)
	if !ok {
		// sem yes/no explícito a seleção do time equivale a "yes"
		yes = true
	}
	conceded := ft.Away
	side := "home"
	if !home {
		conceded = ft.Home
		side = "away"
	}
	clean := conceded == 0
	return winLose(b, yes == clean,
		side+" conceded "+strconv.Itoa(conceded),
		diag("full_time", scoreString(ft), "side", side))
}

// settleTeamTotalGoals aplica over/under aos gols de um único time.
func settleTeamTotalGoals(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	home, ok := teamSide(b, f)
	if !ok {
		return canceled(b, "team side unresolved", diag("selection", b.Selection))
	}
	ou, ok := normalizeOverUnder(b)
	if !ok {
		return canceled(b, "unparseable over/under selection", diag("selection", b.Selection))
	}
	goals, side := ft.Home, "home"
	if !home {
		goals, side = ft.Away, "away"
	}
	return overUnderVerdict(b, ou, float64(goals), side+" goals",
		map[string]string{"full_time": scoreString(ft), "side": side})
}

// settleTeamExactGoals: contagem exata de gols de um time.
func settleTeamExactGoals(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	home, ok := teamSide(b, f)
	if !ok {
		return canceled(b, "team side unresolved", diag("selection", b.Selection))
	}
	want, atLeast, ok := parseExactCount(firstNonEmpty(b.Details.Label, b.Selection))
	if !ok {
		return canceled(b, "unparseable exact goals selection", diag("selection", b.Selection))
	}
	goals, side := ft.Home, "home"
	if !home {
		goals, side = ft.Away, "away"
	}
	won := goals == want || (atLeast && goals >= want)
	return winLose(b, won,
		side+" scored "+strconv.Itoa(goals),
		diag("full_time", scoreString(ft), "side", side, "selection", strconv.Itoa(want)))
}

// settleExactTotalGoals: contagem exata de gols da partida ("2", "4+").
func settleExactTotalGoals(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	want, atLeast, ok := parseExactCount(firstNonEmpty(b.Details.Label, b.Selection))
	if !ok {
		return canceled(b, "unparseable exact total selection", diag("selection", b.Selection))
	}
	total := ft.Total()
	won := total == want || (atLeast && total >= want)
	return winLose(b, won,
		"total goals "+strconv.Itoa(total),
		diag("full_time", scoreString(ft), "selection", firstNonEmpty(b.Details.Label, b.Selection)))
}

func oddEvenOutcome(b Bet, s facts.Score, segment string) Outcome {
	odd, ok := oddEvenSelection(b)
	if !ok {
		return canceled(b, "unparseable odd/even selection", diag("selection", b.Selection))
	}
	total := s.Total()
	won := odd == (total%2 == 1)
	return winLose(b, won,
		segment+" total "+strconv.Itoa(total),
		diag(segment, scoreString(s), "total", strconv.Itoa(total)))
}

// settleOddEvenGoals e variantes por tempo. Total zero conta como par.
func settleOddEvenGoals(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	return oddEvenOutcome(b, ft, "full_time")
}

func settleOddEvenFirstHalf(b Bet, f *facts.MatchFacts) Outcome {
	ht, out, ok := requireScore(b, f.HalfTime, "half-time")
	if !ok {
		return out
	}
	return oddEvenOutcome(b, ht, "half_time")
}

func settleOddEvenSecondHalf(b Bet, f *facts.MatchFacts) Outcome {
	sh, out, ok := requireScore(b, f.SecondHalf, "second-half")
	if !ok {
		return out
	}
	return oddEvenOutcome(b, sh, "second_half")
}

// parseExactCount interpreta contagens exatas, aceitando o sufixo "+"
// para "pelo menos" ("4+").
func parseExactCount(s string) (n int, atLeast bool, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, false
	}
	if strings.HasSuffix(s, "+") {
		atLeast = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "+"))
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, false
	}
	return v, atLeast, true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
