package engine

// MarketFamily é a enumeração fechada de famílias de mercado que o motor
// sabe liquidar. Ids desconhecidos caem em FamilyUnknown e seguem para o
// fallback genérico (flag do provedor ou cancelamento).
type MarketFamily int

const (
	FamilyUnknown MarketFamily = iota
	FamilyMatchResult
	FamilyDoubleChance
	FamilyOverUnderGoals
	FamilyGoalLine
	FamilyAsianHandicap
	FamilyThreeWayHandicap
	FamilyHalfTimeAsianHandicap
	FamilyCorrectScore
	FamilyDrawNoBet
	FamilyBothTeamsToScore
	FamilyBTTSFirstHalf
	FamilyBTTSSecondHalf
	FamilyCleanSheet
	FamilyTeamTotalGoals
	FamilyTeamExactGoals
	FamilyExactTotalGoals
	FamilyHalfTimeResult
	FamilyHalfTimeFullTime
	FamilySecondHalfResult
	FamilyOddEvenGoals
	FamilyOddEvenFirstHalf
	FamilyOddEvenSecondHalf
	FamilyLastTeamToScore
	FamilyGoalscorers
	FamilyResultAndBTTS
	FamilyResultAndTotalGoals
	FamilyHalfTimeResultAndTotalGoals
	FamilyCornersOverUnder
	FamilyCornersTeam
	FamilyCornersRange
	FamilyCornersExactTotal
	FamilyCardsTotal
	FamilyPlayerShotsOnTarget
	FamilyPlayerTotalShots
)

var familyNames = map[MarketFamily]string{
	FamilyUnknown:                     "unknown",
	FamilyMatchResult:                 "match_result",
	FamilyDoubleChance:                "double_chance",
	FamilyOverUnderGoals:              "over_under_goals",
	FamilyGoalLine:                    "goal_line",
	FamilyAsianHandicap:               "asian_handicap",
	FamilyThreeWayHandicap:            "three_way_handicap",
	FamilyHalfTimeAsianHandicap:       "half_time_asian_handicap",
	FamilyCorrectScore:                "correct_score",
	FamilyDrawNoBet:                   "draw_no_bet",
	FamilyBothTeamsToScore:            "both_teams_to_score",
	FamilyBTTSFirstHalf:               "btts_first_half",
	FamilyBTTSSecondHalf:              "btts_second_half",
	FamilyCleanSheet:                  "clean_sheet",
	FamilyTeamTotalGoals:              "team_total_goals",
	FamilyTeamExactGoals:              "team_exact_goals",
	FamilyExactTotalGoals:             "exact_total_goals",
	FamilyHalfTimeResult:              "half_time_result",
	FamilyHalfTimeFullTime:            "half_time_full_time",
	FamilySecondHalfResult:            "second_half_result",
	FamilyOddEvenGoals:                "odd_even_goals",
	FamilyOddEvenFirstHalf:            "odd_even_first_half",
	FamilyOddEvenSecondHalf:           "odd_even_second_half",
	FamilyLastTeamToScore:             "last_team_to_score",
	FamilyGoalscorers:                 "goalscorers",
	FamilyResultAndBTTS:               "result_and_btts",
	FamilyResultAndTotalGoals:         "result_and_total_goals",
	FamilyHalfTimeResultAndTotalGoals: "half_time_result_and_total_goals",
	FamilyCornersOverUnder:            "corners_over_under",
	FamilyCornersTeam:                 "corners_team",
	FamilyCornersRange:                "corners_range",
	FamilyCornersExactTotal:           "corners_exact_total",
	FamilyCardsTotal:                  "cards_total",
	FamilyPlayerShotsOnTarget:         "player_shots_on_target",
	FamilyPlayerTotalShots:            "player_total_shots",
}

func (f MarketFamily) String() string {
	if n, ok := familyNames[f]; ok {
		return n
	}
	return "unknown"
}

type marketMeta struct {
	family                MarketFamily
	providerAuthoritative bool
}

// Catálogo estático de mercados, carregado na inicialização do processo.
// providerAuthoritative marca famílias em que o feed envia a flag "winning"
// definitiva por seleção e o motor não modela o cálculo em profundidade.
var marketCatalog = map[int]marketMeta{
	1:  {family: FamilyMatchResult},
	10: {family: FamilyDoubleChance},
	12: {family: FamilyOverUnderGoals},
	14: {family: FamilyThreeWayHandicap},
	19: {family: FamilyAsianHandicap},
	24: {family: FamilyCorrectScore},
	25: {family: FamilyDrawNoBet},
	26: {family: FamilyTeamTotalGoals},
	27: {family: FamilyTeamExactGoals},
	31: {family: FamilyHalfTimeResult},
	32: {family: FamilyHalfTimeFullTime},
	34: {family: FamilyHalfTimeAsianHandicap},
	37: {family: FamilyBothTeamsToScore},
	38: {family: FamilyBTTSFirstHalf},
	39: {family: FamilyBTTSSecondHalf},
	41: {family: FamilyCleanSheet},
	45: {family: FamilyGoalLine},
	47: {family: FamilyOddEvenGoals},
	48: {family: FamilyOddEvenFirstHalf},
	49: {family: FamilyOddEvenSecondHalf},
	51: {family: FamilySecondHalfResult},
	55: {family: FamilyLastTeamToScore},
	61: {family: FamilyGoalscorers},
	63: {family: FamilyResultAndBTTS},
	65: {family: FamilyResultAndTotalGoals},
	66: {family: FamilyHalfTimeResultAndTotalGoals},
	70: {family: FamilyExactTotalGoals},
	75: {family: FamilyCornersOverUnder},
	76: {family: FamilyCornersTeam},
	77: {family: FamilyCornersRange},
	78: {family: FamilyCornersExactTotal},
	80: {family: FamilyCardsTotal},
	85: {family: FamilyPlayerShotsOnTarget},
	86: {family: FamilyPlayerTotalShots},

	// Mercados exóticos: o provedor liquida e envia a flag winning.
	90: {family: FamilyUnknown, providerAuthoritative: true}, // jogador expulso
	91: {family: FamilyUnknown, providerAuthoritative: true}, // método do primeiro gol
	92: {family: FamilyUnknown, providerAuthoritative: true}, // intervalo do primeiro gol
	95: {family: FamilyUnknown, providerAuthoritative: true}, // pênalti concedido
	99: {family: FamilyUnknown, providerAuthoritative: true}, // tempo com mais gols
}

// Classify mapeia um market_id numérico para a família correspondente.
func Classify(marketID int) MarketFamily {
	if m, ok := marketCatalog[marketID]; ok {
		return m.family
	}
	return FamilyUnknown
}

// ProviderAuthoritative informa se o feed envia a flag "winning" definitiva
// para esse mercado. Vem do catálogo estático, nunca é inferido da aposta.
func ProviderAuthoritative(marketID int) bool {
	if m, ok := marketCatalog[marketID]; ok {
		return m.providerAuthoritative
	}
	return false
}
