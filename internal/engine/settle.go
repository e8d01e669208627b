package engine

import (
	"fmt"
	"strconv"

	"github.com/radieske/bet-settlement-poc/internal/facts"
)

// Tabela de despacho por família. Fechada junto com a enumeração: adicionar
// uma família exige registrar a calculadora aqui.
var calculators = map[MarketFamily]func(Bet, *facts.MatchFacts) Outcome{
	FamilyMatchResult:                 settleMatchResult,
	FamilyDoubleChance:                settleDoubleChance,
	FamilyOverUnderGoals:              settleOverUnderGoals,
	FamilyGoalLine:                    settleGoalLine,
	FamilyAsianHandicap:               settleAsianHandicap,
	FamilyThreeWayHandicap:            settleThreeWayHandicap,
	FamilyHalfTimeAsianHandicap:       settleHalfTimeAsianHandicap,
	FamilyCorrectScore:                settleCorrectScore,
	FamilyDrawNoBet:                   settleDrawNoBet,
	FamilyBothTeamsToScore:            settleBothTeamsToScore,
	FamilyBTTSFirstHalf:               settleBTTSFirstHalf,
	FamilyBTTSSecondHalf:              settleBTTSSecondHalf,
	FamilyCleanSheet:                  settleCleanSheet,
	FamilyTeamTotalGoals:              settleTeamTotalGoals,
	FamilyTeamExactGoals:              settleTeamExactGoals,
	FamilyExactTotalGoals:             settleExactTotalGoals,
	FamilyHalfTimeResult:              settleHalfTimeResult,
	FamilyHalfTimeFullTime:            settleHalfTimeFullTime,
	FamilySecondHalfResult:            settleSecondHalfResult,
	FamilyOddEvenGoals:                settleOddEvenGoals,
	FamilyOddEvenFirstHalf:            settleOddEvenFirstHalf,
	FamilyOddEvenSecondHalf:           settleOddEvenSecondHalf,
	FamilyLastTeamToScore:             settleLastTeamToScore,
	FamilyGoalscorers:                 settleGoalscorers,
	FamilyResultAndBTTS:               settleResultAndBTTS,
	FamilyResultAndTotalGoals:         settleResultAndTotalGoals,
	FamilyHalfTimeResultAndTotalGoals: settleHalfTimeResultAndTotalGoals,
	FamilyCornersOverUnder:            settleCornersOverUnder,
	FamilyCornersTeam:                 settleCornersTeam,
	FamilyCornersRange:                settleCornersRange,
	FamilyCornersExactTotal:           settleCornersExactTotal,
	FamilyCardsTotal:                  settleCardsTotal,
	FamilyPlayerShotsOnTarget:         settlePlayerShotsOnTarget,
	FamilyPlayerTotalShots:            settlePlayerTotalShots,
}

// Settle é o ponto de entrada do motor: decide o desfecho de uma aposta
// contra os fatos da partida. Sem estado e idempotente — a mesma entrada
// produz sempre o mesmo Outcome. Qualquer panic vira status ERROR, nunca
// propaga ao chamador.
func Settle(b Bet, f *facts.MatchFacts) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{
				Status: StatusError,
				Reason: fmt.Sprintf("settlement panic: %v", r),
			}
		}
	}()

	if f == nil {
		return Outcome{Status: StatusError, Reason: "match facts unavailable"}
	}
	if !f.Finished {
		return Outcome{Status: StatusPending, Reason: "match not finished"}
	}

	// Resolve o mercado: da aposta, senão pela odd referenciada no payload.
	marketID := b.MarketID
	if marketID == 0 {
		if odd, ok := f.OddByID(b.OddID); ok {
			marketID = odd.MarketID
		}
	}
	if marketID == 0 {
		return canceled(b, "market unresolved", diag("odd_id", strconv.FormatInt(b.OddID, 10)))
	}

	// Caminho rápido: o provedor liquida esse mercado e envia a flag
	// definitiva por seleção.
	if ProviderAuthoritative(marketID) {
		if odd, ok := f.OddByID(b.OddID); ok && odd.Winning != nil {
			return winLose(b, *odd.Winning, "provider settlement",
				diag("market_id", strconv.Itoa(marketID), "source", "provider_winning_flag"))
		}
		// Ids de odds ao vivo não são estáveis pós-jogo; apostas live
		// caem para o cálculo por família.
		if !b.IsLive {
			return canceled(b, "provider settlement unavailable",
				diag("market_id", strconv.Itoa(marketID)))
		}
	}

	family := Classify(marketID)
	calc, ok := calculators[family]
	if !ok {
		return genericFallback(b, f, marketID)
	}
	out = calc(b, f)
	if out.Diagnostics != nil {
		out.Diagnostics["market_family"] = family.String()
	}
	return out
}

// genericFallback cobre mercados não classificados: usa a flag do provedor
// se houver, senão cancela. O motor nunca chuta em mercado que não modela.
func genericFallback(b Bet, f *facts.MatchFacts, marketID int) Outcome {
	if odd, ok := f.OddByID(b.OddID); ok && odd.Winning != nil {
		return winLose(b, *odd.Winning, "provider settlement",
			diag("market_id", strconv.Itoa(marketID), "source", "provider_winning_flag"))
	}
	return canceled(b, "unknown market", diag("market_id", strconv.Itoa(marketID)))
}
