package engine

import (
	"regexp"
	"strconv"

	"github.com/radieske/bet-settlement-poc/internal/facts"
)

// Calculadoras de escanteios e cartões. Quando a estatística não veio no
// payload, todas tentam a flag "winning" do provedor antes de cancelar.

var rangePattern = regexp.MustCompile(`([0-9]+)\s*-\s*([0-9]+)`)

// cornersFallback usa a liquidação do provedor quando não há estatística
// de escanteios; sem flag disponível o cancelamento devolve o stake.
func cornersFallback(b Bet, f *facts.MatchFacts, what string) Outcome {
	if odd, ok := f.OddByID(b.OddID); ok && odd.Winning != nil {
		return winLose(b, *odd.Winning, "provider settlement", diag("source", "provider_winning_flag"))
	}
	return canceled(b, what+" unavailable", nil)
}

func cornersDiag(c facts.SideCount) map[string]string {
	return diag("corners_home", strconv.Itoa(c.Home),
		"corners_away", strconv.Itoa(c.Away),
		"corners_total", strconv.Itoa(c.Total))
}

// settleCornersOverUnder: totais de escanteios em duas vias.
func settleCornersOverUnder(b Bet, f *facts.MatchFacts) Outcome {
	if f.Corners == nil {
		return cornersFallback(b, f, "corner statistics")
	}
	ou, ok := normalizeOverUnder(b)
	if !ok {
		return canceled(b, "unparseable over/under selection", diag("selection", b.Selection))
	}
	return overUnderVerdict(b, ou, float64(f.Corners.Total), "total corners", cornersDiag(*f.Corners))
}

// settleCornersTeam: over/under nos escanteios de um único time.
func settleCornersTeam(b Bet, f *facts.MatchFacts) Outcome {
	if f.Corners == nil {
		return cornersFallback(b, f, "corner statistics")
	}
	home, ok := teamSide(b, f)
	if !ok {
		return canceled(b, "team side unresolved", diag("selection", b.Selection))
	}
	ou, ok := normalizeOverUnder(b)
	if !ok {
		return canceled(b, "unparseable over/under selection", diag("selection", b.Selection))
	}
	count, side := f.Corners.Home, "home"
	if !home {
		count, side = f.Corners.Away, "away"
	}
	d := cornersDiag(*f.Corners)
	d["side"] = side
	return overUnderVerdict(b, ou, float64(count), side+" corners", d)
}

// settleCornersRange: total dentro de um intervalo inclusivo "A - B".
func settleCornersRange(b Bet, f *facts.MatchFacts) Outcome {
	if f.Corners == nil {
		return cornersFallback(b, f, "corner statistics")
	}
	sel := firstNonEmpty(b.Details.Label, b.Selection)
	m := rangePattern.FindStringSubmatch(sel)
	if m == nil {
		return canceled(b, "unparseable corners range selection", diag("selection", sel))
	}
	lo, _ := strconv.Atoi(m[1])
	hi, _ := strconv.Atoi(m[2])
	total := f.Corners.Total
	d := cornersDiag(*f.Corners)
	d["range"] = m[1] + "-" + m[2]
	return winLose(b, total >= lo && total <= hi,
		"total corners "+strconv.Itoa(total), d)
}

// settleCornersExactTotal: contagem exata de escanteios ("10", "14+").
func settleCornersExactTotal(b Bet, f *facts.MatchFacts) Outcome {
	if f.Corners == nil {
		return cornersFallback(b, f, "corner statistics")
	}
	want, atLeast, ok := parseExactCount(firstNonEmpty(b.Details.Label, b.Selection))
	if !ok {
		return canceled(b, "unparseable exact corners selection", diag("selection", b.Selection))
	}
	total := f.Corners.Total
	won := total == want || (atLeast && total >= want)
	d := cornersDiag(*f.Corners)
	d["selection"] = firstNonEmpty(b.Details.Label, b.Selection)
	return winLose(b, won, "total corners "+strconv.Itoa(total), d)
}

// settleCardsTotal: over/under no total de cartões (amarelos + vermelhos).
func settleCardsTotal(b Bet, f *facts.MatchFacts) Outcome {
	if f.Cards == nil {
		return cornersFallback(b, f, "card statistics")
	}
	ou, ok := normalizeOverUnder(b)
	if !ok {
		return canceled(b, "unparseable over/under selection", diag("selection", b.Selection))
	}
	return overUnderVerdict(b, ou, float64(f.Cards.Total), "total cards",
		diag("cards_home", strconv.Itoa(f.Cards.Home),
			"cards_away", strconv.Itoa(f.Cards.Away)))
}
