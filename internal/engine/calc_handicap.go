package engine

import (
	"math"
	"strconv"

	"github.com/radieske/bet-settlement-poc/internal/facts"
)

// Calculadoras de handicap.

// asianVerdict aplica o handicap assinado ao placar do lado escolhido e
// compara os placares ajustados. Igualdade ajustada => push, com devolução
// integral do stake, independentemente do lado.
func asianVerdict(b Bet, h handicapSel, s facts.Score, segment string) Outcome {
	var adjusted, opponent float64
	side := "home"
	if h.home {
		adjusted = float64(s.Home) + h.value
		opponent = float64(s.Away)
	} else {
		adjusted = float64(s.Away) + h.value
		opponent = float64(s.Home)
		side = "away"
	}

	d := diag(segment, scoreString(s),
		"side", side,
		"handicap", strconv.FormatFloat(h.value, 'f', -1, 64),
		"adjusted", strconv.FormatFloat(adjusted, 'f', -1, 64))

	if adjusted == opponent {
		return result(b, StatusPush, "adjusted scores level", d)
	}
	return winLose(b, adjusted > opponent, "adjusted "+side+" "+strconv.FormatFloat(adjusted, 'f', -1, 64), d)
}

// settleAsianHandicap liquida o handicap asiático do tempo integral.
func settleAsianHandicap(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	h, ok := normalizeHandicap(b)
	if !ok {
		return canceled(b, "unparseable handicap selection", diag("selection", b.Selection))
	}
	return asianVerdict(b, h, ft, "full_time")
}

// settleHalfTimeAsianHandicap aplica a mesma regra ao placar do 1º tempo.
func settleHalfTimeAsianHandicap(b Bet, f *facts.MatchFacts) Outcome {
	ht, out, ok := requireScore(b, f.HalfTime, "half-time")
	if !ok {
		return out
	}
	h, ok := normalizeHandicap(b)
	if !ok {
		return canceled(b, "unparseable handicap selection", diag("selection", b.Selection))
	}
	return asianVerdict(b, h, ht, "half_time")
}

// settleThreeWayHandicap é o handicap europeu ("Starts 0-1"): handicap
// inteiro aplicado ao mandante e resultado de três vias sobre o placar
// ajustado, com empate possível.
func settleThreeWayHandicap(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	sel := resultSelection(b)
	if sel == resultNone {
		return canceled(b, "unparseable handicap selection", diag("selection", b.Selection))
	}
	raw, ok := parseNumber(b.Details.Handicap)
	if !ok {
		raw, ok = parseNumber(b.Details.Label)
	}
	if !ok {
		raw, ok = parseNumber(b.Selection)
	}
	if !ok || raw != math.Trunc(raw) {
		return canceled(b, "three-way handicap requires an integer line", diag("handicap", b.Details.Handicap))
	}

	adjusted := facts.Score{Home: ft.Home + int(raw), Away: ft.Away}
	actual := scoreResult(adjusted)
	return winLose(b, sel == actual,
		"adjusted result "+actual.String(),
		diag("full_time", scoreString(ft),
			"handicap", strconv.Itoa(int(raw)),
			"adjusted", scoreString(adjusted),
			"selection", sel.String()))
}
