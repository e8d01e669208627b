package engine

import (
	"strconv"

	"github.com/radieske/bet-settlement-poc/internal/facts"
)

// Calculadoras de mercados de resultado. Todas são funções puras
// (bet, facts) -> Outcome.

// diag monta o mapa de diagnóstico a partir de pares chave/valor.
func diag(kv ...string) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

func scoreResult(s facts.Score) resultToken {
	switch {
	case s.Home > s.Away:
		return resultHome
	case s.Home < s.Away:
		return resultAway
	}
	return resultDraw
}

func scoreString(s facts.Score) string {
	return strconv.Itoa(s.Home) + "-" + strconv.Itoa(s.Away)
}

// requireScore é a guarda comum de placar ausente: sem o segmento necessário
// o cálculo é cancelado com devolução do stake.
func requireScore(b Bet, s *facts.Score, segment string) (facts.Score, Outcome, bool) {
	if s == nil {
		return facts.Score{}, canceled(b, segment+" score unavailable", nil), false
	}
	return *s, Outcome{}, true
}

// settleMatchResult liquida o 1X2 de tempo integral.
func settleMatchResult(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	sel := resultSelection(b)
	if sel == resultNone {
		return canceled(b, "unparseable 1x2 selection", diag("selection", b.Selection))
	}
	actual := scoreResult(ft)
	return winLose(b, sel == actual,
		"full-time result "+actual.String(),
		diag("full_time", scoreString(ft), "selection", sel.String()))
}

// settleDoubleChance cobre dois dos três resultados possíveis.
func settleDoubleChance(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	sel := b.Details.Label
	if sel == "" {
		sel = b.Selection
	}
	home, draw, away, ok := normalizeDoubleChance(sel)
	if !ok {
		return canceled(b, "unparseable double chance selection", diag("selection", sel))
	}
	var won bool
	switch scoreResult(ft) {
	case resultHome:
		won = home
	case resultDraw:
		won = draw
	case resultAway:
		won = away
	}
	return winLose(b, won,
		"full-time result "+scoreResult(ft).String(),
		diag("full_time", scoreString(ft), "selection", sel))
}

// settleDrawNoBet devolve o stake no empate; fora isso é um mercado de
// duas vias.
func settleDrawNoBet(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	actual := scoreResult(ft)
	if actual == resultDraw {
		return canceled(b, "draw, stake returned", diag("full_time", scoreString(ft)))
	}
	sel := resultSelection(b)
	if sel != resultHome && sel != resultAway {
		return canceled(b, "unparseable draw-no-bet selection", diag("selection", b.Selection))
	}
	return winLose(b, sel == actual,
		"full-time result "+actual.String(),
		diag("full_time", scoreString(ft), "selection", sel.String()))
}

// settleHalfTimeResult liquida o 1X2 do primeiro tempo.
func settleHalfTimeResult(b Bet, f *facts.MatchFacts) Outcome {
	ht, out, ok := requireScore(b, f.HalfTime, "half-time")
	if !ok {
		return out
	}
	sel := resultSelection(b)
	if sel == resultNone {
		return canceled(b, "unparseable half-time selection", diag("selection", b.Selection))
	}
	actual := scoreResult(ht)
	return winLose(b, sel == actual,
		"half-time result "+actual.String(),
		diag("half_time", scoreString(ht), "selection", sel.String()))
}

// settleSecondHalfResult liquida o 1X2 considerando apenas o segundo tempo.
func settleSecondHalfResult(b Bet, f *facts.MatchFacts) Outcome {
	sh, out, ok := requireScore(b, f.SecondHalf, "second-half")
	if !ok {
		return out
	}
	sel := resultSelection(b)
	if sel == resultNone {
		return canceled(b, "unparseable second-half selection", diag("selection", b.Selection))
	}
	actual := scoreResult(sh)
	return winLose(b, sel == actual,
		"second-half result "+actual.String(),
		diag("second_half", scoreString(sh), "selection", sel.String()))
}

// settleHalfTimeFullTime exige acerto do resultado nos dois momentos.
// Seleção codificada como par: "1/X", "Home/Draw"...
func settleHalfTimeFullTime(b Bet, f *facts.MatchFacts) Outcome {
	ht, out, ok := requireScore(b, f.HalfTime, "half-time")
	if !ok {
		return out
	}
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}

	sel := b.Details.Label
	if sel == "" {
		sel = b.Selection
	}
	left, right, ok := splitPair(sel)
	if !ok {
		return canceled(b, "unparseable half-time/full-time selection", diag("selection", sel))
	}
	htSel, ftSel := sideToken(left, f), sideToken(right, f)
	if htSel == resultNone || ftSel == resultNone {
		return canceled(b, "unparseable half-time/full-time selection", diag("selection", sel))
	}

	won := htSel == scoreResult(ht) && ftSel == scoreResult(ft)
	return winLose(b, won,
		"half-time "+scoreResult(ht).String()+", full-time "+scoreResult(ft).String(),
		diag("half_time", scoreString(ht), "full_time", scoreString(ft), "selection", sel))
}

// settleCorrectScore compara o placar exato normalizado.
func settleCorrectScore(b Bet, f *facts.MatchFacts) Outcome {
	ft, out, ok := requireScore(b, f.FullTime, "full-time")
	if !ok {
		return out
	}
	sel := b.Details.Label
	if sel == "" {
		sel = b.Selection
	}
	want, ok := normalizeScoreline(sel)
	if !ok {
		return canceled(b, "unparseable correct score selection", diag("selection", sel))
	}
	return winLose(b, want == scoreString(ft),
		"final score "+scoreString(ft),
		diag("full_time", scoreString(ft), "selection", want))
}
