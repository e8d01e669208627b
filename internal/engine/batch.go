package engine

import "github.com/radieske/bet-settlement-poc/internal/facts"

// SettleMany liquida um lote de apostas preservando a ordem de entrada:
// um Outcome por aposta, no mesmo índice. Os fatos são resolvidos uma vez
// por partida pelo chamador; partida sem fatos gera ERROR para cada aposta
// que a referencia, sem abortar o lote.
func SettleMany(bets []Bet, factsByMatch map[string]*facts.MatchFacts) []Outcome {
	outcomes := make([]Outcome, len(bets))
	for i, b := range bets {
		f, ok := factsByMatch[b.MatchID]
		if !ok || f == nil {
			outcomes[i] = Outcome{
				Status:      StatusError,
				Reason:      "match facts unavailable",
				Diagnostics: diag("match_id", b.MatchID),
			}
			continue
		}
		outcomes[i] = Settle(b, f)
	}
	return outcomes
}
