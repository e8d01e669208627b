package engine

import (
	"strconv"
	"strings"

	"github.com/radieske/bet-settlement-poc/internal/facts"
)

// Calculadoras que dependem da sequência ordenada de eventos de gol.
// Sem os eventos não há como inferir autor ou ordem a partir do placar
// final: o cancelamento devolve o stake.

type scorerMode int

const (
	scorerAnytime scorerMode = iota
	scorerFirst
	scorerLast
)

func goalscorerMode(b Bet) scorerMode {
	for _, s := range []string{b.Details.Label, b.Details.MarketDescription, b.Selection} {
		ls := strings.ToLower(s)
		switch {
		case strings.Contains(ls, "first"):
			return scorerFirst
		case strings.Contains(ls, "last"):
			return scorerLast
		case strings.Contains(ls, "anytime"):
			return scorerAnytime
		}
	}
	return scorerAnytime
}

// settleGoalscorers liquida primeiro/último/a qualquer momento.
// Gols contra não contam para mercados de goleador.
func settleGoalscorers(b Bet, f *facts.MatchFacts) Outcome {
	player := firstNonEmpty(b.Details.Name, b.Selection)
	if strings.TrimSpace(player) == "" {
		return canceled(b, "player selection missing", nil)
	}

	var goals []facts.GoalEvent
	for _, g := range f.Goals {
		if !g.OwnGoal {
			goals = append(goals, g)
		}
	}
	if len(goals) == 0 {
		// 0 a 0 confirmado é desfecho definitivo: ninguém marcou
		if f.FullTime != nil && f.FullTime.Total() == 0 {
			return winLose(b, false, "no goals scored",
				diag("player", player, "full_time", scoreString(*f.FullTime)))
		}
		return canceled(b, "goal events unavailable", nil)
	}

	mode := goalscorerMode(b)
	var won bool
	var scorer string
	switch mode {
	case scorerFirst:
		scorer = goals[0].PlayerName
		won = fuzzyPlayerMatch(player, scorer)
	case scorerLast:
		scorer = goals[len(goals)-1].PlayerName
		won = fuzzyPlayerMatch(player, scorer)
	default:
		for _, g := range goals {
			if fuzzyPlayerMatch(player, g.PlayerName) {
				won = true
				scorer = g.PlayerName
				break
			}
		}
	}

	modeName := [...]string{"anytime", "first", "last"}[mode]
	return winLose(b, won,
		modeName+" goalscorer market",
		diag("mode", modeName,
			"player", player,
			"matched_scorer", scorer,
			"goal_events", strconv.Itoa(len(goals))))
}

// settleLastTeamToScore pega o último gol da sequência e compara o lado.
// Partida 0-0 confirmada liquida a seleção "no goal"; ausência de eventos
// com gols no placar é dado faltante, não derrota.
func settleLastTeamToScore(b Bet, f *facts.MatchFacts) Outcome {
	sel := firstNonEmpty(b.Details.Label, b.Details.Name, b.Selection)

	if len(f.Goals) == 0 {
		if f.FullTime != nil && f.FullTime.Total() == 0 {
			noGoal := isNoGoalSelection(sel)
			return winLose(b, noGoal, "no goals scored",
				diag("full_time", scoreString(*f.FullTime), "selection", sel))
		}
		return canceled(b, "goal events unavailable", nil)
	}

	last := f.Goals[len(f.Goals)-1]
	side := f.GoalSide(last)
	if side == "" {
		return canceled(b, "last goal side unresolved", nil)
	}

	var want string
	switch sideToken(sel, f) {
	case resultHome:
		want = "home"
	case resultAway:
		want = "away"
	default:
		if isNoGoalSelection(sel) {
			return winLose(b, false, "goals were scored", diag("last_goal_side", side))
		}
		return canceled(b, "unparseable last-team-to-score selection", diag("selection", sel))
	}

	return winLose(b, want == side,
		"last goal by "+side,
		diag("last_goal_side", side,
			"last_goal_minute", strconv.Itoa(last.Minute),
			"selection", want))
}

func isNoGoalSelection(s string) bool {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "no goal", "none", "no goals":
		return true
	}
	return false
}
