package engine

import (
	"strconv"

	"github.com/radieske/bet-settlement-poc/internal/facts"
)

// Calculadoras de mercados combinados. A seleção codifica um par delimitado
// ("Away/No", "Home/Over", "Arsenal - Draw"); as duas componentes precisam
// acertar de forma independente.

// settleResultAndBTTS: resultado 1X2 + ambas marcam.
func settleResultAndBTTS(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	sel := firstNonEmpty(b.Details.Label, b.Selection)
	left, right, ok := splitPair(sel)
	if !ok {
		return canceled(b, "unparseable combined selection", diag("selection", sel))
	}
	resSel := sideToken(left, f)
	yes, yok := normalizeYesNo(right)
	if resSel == resultNone || !yok {
		return canceled(b, "unparseable combined selection", diag("selection", sel))
	}

	both := ft.Home > 0 && ft.Away > 0
	won := resSel == scoreResult(ft) && yes == both
	return winLose(b, won,
		"result "+scoreResult(ft).String()+", both scored "+strconv.FormatBool(both),
		diag("full_time", scoreString(ft),
			"result_selection", resSel.String(),
			"btts_selection", strconv.FormatBool(yes)))
}

// settleResultAndTotalGoals: resultado 1X2 + over/under.
func settleResultAndTotalGoals(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	return resultAndTotalsOutcome(b, f, ft, "full_time")
}

// settleHalfTimeResultAndTotalGoals: mesma combinação sobre o 1º tempo.
func settleHalfTimeResultAndTotalGoals(b Bet, f *facts.MatchFacts) Outcome {
	ht, out, ok := requireScore(b, f.HalfTime, "half-time")
	if !ok {
		return out
	}
	return resultAndTotalsOutcome(b, f, ht, "half_time")
}

func resultAndTotalsOutcome(b Bet, f *facts.MatchFacts, s facts.Score, segment string) Outcome {
	sel := firstNonEmpty(b.Details.Label, b.Selection)
	left, right, ok := splitPair(sel)
	if !ok {
		return canceled(b, "unparseable combined selection", diag("selection", sel))
	}
	resSel := sideToken(left, f)
	if resSel == resultNone {
		return canceled(b, "unparseable combined selection", diag("selection", sel))
	}

	// Lado do total vem da componente direita; a linha vem dos campos
	// estruturados, com 2.5 como default legado.
	over, sok := overUnderSide(right)
	if !sok {
		if t, tok := parseOverUnderText(right); tok {
			over, sok = t.over, true
		}
	}
	if !sok {
		return canceled(b, "unparseable combined selection", diag("selection", sel))
	}
	threshold := defaultGoalThreshold
	if v, vok := parseNumber(b.Details.Total); vok {
		threshold = v
	} else if v, vok := parseNumber(right); vok {
		threshold = v
	}

	total := float64(s.Total())
	resultHit := resSel == scoreResult(s)
	ouSel := overUnder{over: over, threshold: threshold}
	d := diag(segment, scoreString(s),
		"result_selection", resSel.String(),
		"totals_selection", ouSel.String(),
		"result_hit", strconv.FormatBool(resultHit))

	// Linha inteira batida em cheio: com o resultado certo a componente de
	// totais vira push, como nos demais mercados de totais. Resultado errado
	// perde a aposta de qualquer forma.
	if resultHit && total == threshold {
		return result(b, StatusPush, segment+" total equals the line", d)
	}

	totalHit := (over && total > threshold) || (!over && total < threshold)
	d["total_hit"] = strconv.FormatBool(totalHit)
	won := resultHit && totalHit
	return winLose(b, won,
		segment+" result "+scoreResult(s).String()+", total "+strconv.FormatFloat(total, 'f', -1, 64),
		d)
}
