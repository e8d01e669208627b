package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radieske/bet-settlement-poc/internal/facts"
	"github.com/radieske/bet-settlement-poc/pkg/contracts/provider"
)

// Variante de empate da partida de referência: Arsenal 1 x 1 Chelsea.
func drawFacts() *facts.MatchFacts {
	m := arsenalChelseaPayload()
	m.Scores[2].Goals = 0 // zera o gol do mandante no 2º tempo
	return facts.Build(m)
}

// Partida terminada 0 a 0, sem eventos de gol.
func goallessFacts() *facts.MatchFacts {
	m := arsenalChelseaPayload()
	for i := range m.Scores {
		m.Scores[i].Goals = 0
	}
	m.Events = nil
	return facts.Build(m)
}

func TestOverUnderGoals(t *testing.T) {
	f := arsenalChelsea()

	over := bet(12, "")
	over.Details.Label = "Over"
	over.Details.Total = "2.5"
	out := Settle(over, f)
	assert.Equal(t, StatusWon, out.Status)

	under := bet(12, "")
	under.Details.Label = "Under"
	under.Details.Total = "2.5"
	assert.Equal(t, StatusLost, Settle(under, f).Status)
}

func TestOverUnderGoals_IntegerLineIsPush(t *testing.T) {
	f := arsenalChelsea()
	b := bet(12, "")
	b.Details.Label = "Over"
	b.Details.Total = "3"
	out := Settle(b, f)
	assert.Equal(t, StatusPush, out.Status)
	assert.Equal(t, b.StakeCents, out.PayoutCents)
}

func TestOverUnderGoals_LegacyTextSelection(t *testing.T) {
	f := arsenalChelsea()
	assert.Equal(t, StatusWon, Settle(bet(12, "Over 2.5"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(12, "Under 2,5"), f).Status)
	// Sem número na seleção o threshold legado 2.5 é assumido
	assert.Equal(t, StatusWon, Settle(bet(12, "over"), f).Status)
}

func TestGoalLineUsesTotalsRule(t *testing.T) {
	b := bet(45, "")
	b.Details.Label = "Under"
	b.Details.Total = "3"
	assert.Equal(t, StatusPush, Settle(b, arsenalChelsea()).Status)
}

func TestBothTeamsToScore(t *testing.T) {
	f := arsenalChelsea()
	assert.Equal(t, StatusWon, Settle(bet(37, "Yes"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(37, "No"), f).Status)

	// 1º tempo terminou 1-0: só o mandante marcou
	assert.Equal(t, StatusWon, Settle(bet(38, "No"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(38, "Yes"), f).Status)

	// 2º tempo 1-1
	assert.Equal(t, StatusWon, Settle(bet(39, "Yes"), f).Status)
}

func TestCorrectScore(t *testing.T) {
	f := arsenalChelsea()
	assert.Equal(t, StatusWon, Settle(bet(24, "2-1"), f).Status)
	assert.Equal(t, StatusWon, Settle(bet(24, "2:1"), f).Status)
	assert.Equal(t, StatusWon, Settle(bet(24, "2x1"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(24, "1-2"), f).Status)
	assert.Equal(t, StatusCanceled, Settle(bet(24, "whatever"), f).Status)
}

func TestDoubleChance(t *testing.T) {
	f := arsenalChelsea()
	assert.Equal(t, StatusWon, Settle(bet(10, "1X"), f).Status)
	assert.Equal(t, StatusWon, Settle(bet(10, "12"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(10, "X2"), f).Status)
	assert.Equal(t, StatusWon, Settle(bet(10, "Home or Draw"), f).Status)
}

func TestDrawNoBet(t *testing.T) {
	assert.Equal(t, StatusWon, Settle(bet(25, "1"), arsenalChelsea()).Status)
	assert.Equal(t, StatusLost, Settle(bet(25, "2"), arsenalChelsea()).Status)

	out := Settle(bet(25, "1"), drawFacts())
	assert.Equal(t, StatusCanceled, out.Status)
	assert.Equal(t, int64(10000), out.PayoutCents)
}

func TestHalfTimeAndSecondHalfResult(t *testing.T) {
	f := arsenalChelsea()
	assert.Equal(t, StatusWon, Settle(bet(31, "1"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(31, "X"), f).Status)
	assert.Equal(t, StatusWon, Settle(bet(51, "X"), f).Status)
}

func TestHalfTimeFullTime(t *testing.T) {
	f := arsenalChelsea()
	assert.Equal(t, StatusWon, Settle(bet(32, "1/1"), f).Status)
	assert.Equal(t, StatusWon, Settle(bet(32, "Arsenal/Arsenal"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(32, "Home/Draw"), f).Status)
	assert.Equal(t, StatusCanceled, Settle(bet(32, "nonsense"), f).Status)
}

func TestAsianHandicap(t *testing.T) {
	f := arsenalChelsea()

	b := bet(19, "")
	b.Details.Label = "Home"
	b.Details.Handicap = "-0.5"
	assert.Equal(t, StatusWon, Settle(b, f).Status)

	b.Details.Handicap = "-1.5"
	assert.Equal(t, StatusLost, Settle(b, f).Status)
}

func TestAsianHandicap_PushIsSymmetric(t *testing.T) {
	f := arsenalChelsea()

	home := bet(19, "")
	home.Details.Label = "Home"
	home.Details.Handicap = "-1"
	out := Settle(home, f)
	assert.Equal(t, StatusPush, out.Status)
	assert.Equal(t, home.StakeCents, out.PayoutCents)

	away := bet(19, "")
	away.Details.Label = "Away"
	away.Details.Handicap = "+1"
	out = Settle(away, f)
	assert.Equal(t, StatusPush, out.Status)
	assert.Equal(t, away.StakeCents, out.PayoutCents)
}

func TestAsianHandicap_BareDigitSelectionIsCanceled(t *testing.T) {
	// "2" resolve o lado, mas não há linha em lugar nenhum: o dígito da
	// seleção não pode ser reaproveitado como handicap.
	out := Settle(bet(19, "2"), arsenalChelsea())
	assert.Equal(t, StatusCanceled, out.Status)
	assert.Equal(t, "unparseable handicap selection", out.Reason)
	assert.Equal(t, int64(10000), out.PayoutCents)

	out = Settle(bet(34, "1"), arsenalChelsea())
	assert.Equal(t, StatusCanceled, out.Status)

	// com o lado vindo do campo estruturado o texto livre ainda dá a linha
	b := bet(19, "-1")
	b.Details.Label = "Home"
	assert.Equal(t, StatusPush, Settle(b, arsenalChelsea()).Status)
}

func TestHalfTimeAsianHandicap(t *testing.T) {
	b := bet(34, "")
	b.Details.Label = "Home"
	b.Details.Handicap = "-1"
	// intervalo 1-0: ajustado 0 x 0
	assert.Equal(t, StatusPush, Settle(b, arsenalChelsea()).Status)
}

func TestThreeWayHandicap(t *testing.T) {
	f := arsenalChelsea()

	b := bet(14, "X")
	b.Details.Handicap = "-1"
	// 2-1 ajustado para 1-1: empate vence
	assert.Equal(t, StatusWon, Settle(b, f).Status)

	b.Selection = "1"
	assert.Equal(t, StatusLost, Settle(b, f).Status)

	b.Details.Handicap = "-0.5"
	assert.Equal(t, StatusCanceled, Settle(b, f).Status)
}

func TestCleanSheet(t *testing.T) {
	f := arsenalChelsea()

	arsenal := bet(41, "")
	arsenal.Details.Name = "Arsenal"
	// sem yes/no explícito a aposta no time equivale a "yes"; Arsenal sofreu gol
	assert.Equal(t, StatusLost, Settle(arsenal, f).Status)

	chelseaNo := bet(41, "")
	chelseaNo.Details.Name = "Chelsea"
	chelseaNo.Details.Label = "No"
	assert.Equal(t, StatusWon, Settle(chelseaNo, f).Status)
}

func TestTeamTotalGoals(t *testing.T) {
	b := bet(26, "")
	b.Details.Name = "Arsenal"
	b.Details.Label = "Over"
	b.Details.Total = "1.5"
	assert.Equal(t, StatusWon, Settle(b, arsenalChelsea()).Status)

	b.Details.Name = "Chelsea"
	assert.Equal(t, StatusLost, Settle(b, arsenalChelsea()).Status)
}

func TestTeamExactGoals(t *testing.T) {
	b := bet(27, "2")
	b.Details.Name = "Arsenal"
	assert.Equal(t, StatusWon, Settle(b, arsenalChelsea()).Status)

	b.Selection = "1"
	assert.Equal(t, StatusLost, Settle(b, arsenalChelsea()).Status)
}

func TestExactTotalGoals(t *testing.T) {
	f := arsenalChelsea()
	assert.Equal(t, StatusWon, Settle(bet(70, "3"), f).Status)
	assert.Equal(t, StatusWon, Settle(bet(70, "2+"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(70, "4+"), f).Status)
	assert.Equal(t, StatusCanceled, Settle(bet(70, "many"), f).Status)
}

func TestOddEvenGoals(t *testing.T) {
	f := arsenalChelsea()
	assert.Equal(t, StatusWon, Settle(bet(47, "Odd"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(47, "Even"), f).Status)
	assert.Equal(t, StatusWon, Settle(bet(48, "Odd"), f).Status)  // 1º tempo: 1 gol
	assert.Equal(t, StatusWon, Settle(bet(49, "Even"), f).Status) // 2º tempo: 2 gols

	// zero gols conta como par
	assert.Equal(t, StatusWon, Settle(bet(47, "Even"), goallessFacts()).Status)
}

func TestGoalscorers_Anytime(t *testing.T) {
	f := arsenalChelsea()

	b := bet(61, "")
	b.Details.Name = "Cole Palmer"
	assert.Equal(t, StatusWon, Settle(b, f).Status)

	// Variação de grafia entre provedores
	assert.Equal(t, StatusWon, Settle(bet(61, "B. Saka"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(61, "Declan Rice"), f).Status)
}

func TestGoalscorers_FirstAndLast(t *testing.T) {
	f := arsenalChelsea()

	first := bet(61, "")
	first.Details.MarketDescription = "First Goalscorer"
	first.Details.Name = "Bukayo Saka"
	assert.Equal(t, StatusWon, Settle(first, f).Status)

	first.Details.Name = "Cole Palmer"
	assert.Equal(t, StatusLost, Settle(first, f).Status)

	last := bet(61, "")
	last.Details.MarketDescription = "Last Goalscorer"
	last.Details.Name = "Gabriel Martinelli"
	assert.Equal(t, StatusWon, Settle(last, f).Status)
}

func TestGoalscorers_NoEventsIsCanceled(t *testing.T) {
	m := arsenalChelseaPayload()
	m.Events = nil // placar 2-1 segue de pé, mas sem autoria dos gols
	out := Settle(bet(61, "Bukayo Saka"), facts.Build(m))
	assert.Equal(t, StatusCanceled, out.Status)
	assert.Equal(t, int64(10000), out.PayoutCents)
}

func TestGoalscorers_GoallessConfirmedLoses(t *testing.T) {
	// 0 a 0 confirmado: nenhum goleador é desfecho definitivo, não dado faltante
	out := Settle(bet(61, "Bukayo Saka"), goallessFacts())
	assert.Equal(t, StatusLost, out.Status)
	assert.Equal(t, int64(0), out.PayoutCents)
}

func TestLastTeamToScore(t *testing.T) {
	f := arsenalChelsea()
	assert.Equal(t, StatusWon, Settle(bet(55, "Arsenal"), f).Status)
	assert.Equal(t, StatusWon, Settle(bet(55, "Home"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(55, "Chelsea"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(55, "No Goal"), f).Status)
}

func TestLastTeamToScore_GoallessConfirmed(t *testing.T) {
	f := goallessFacts()
	assert.Equal(t, StatusWon, Settle(bet(55, "No Goal"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(55, "Arsenal"), f).Status)
}

func TestLastTeamToScore_MissingEventsIsCanceled(t *testing.T) {
	m := arsenalChelseaPayload()
	m.Events = nil
	assert.Equal(t, StatusCanceled, Settle(bet(55, "Arsenal"), facts.Build(m)).Status)
}

func TestLastTeamToScore_OwnGoalCountsForOpponent(t *testing.T) {
	m := arsenalChelseaPayload()
	// gol contra do zagueiro do Chelsea aos 88: beneficia o mandante
	m.Events = append(m.Events, provider.MatchEvent{
		TypeID: provider.EventTypeOwnGoal, ParticipantID: 2, PlayerName: "Thiago Silva", Minute: 88,
	})
	assert.Equal(t, StatusWon, Settle(bet(55, "Arsenal"), facts.Build(m)).Status)
}

func TestPlayerShots(t *testing.T) {
	f := arsenalChelsea()

	total := bet(86, "")
	total.Details.Name = "Bukayo Saka"
	total.Details.Label = "Over"
	total.Details.Total = "3.5"
	assert.Equal(t, StatusWon, Settle(total, f).Status)

	onTarget := bet(85, "")
	onTarget.Details.Name = "Bukayo Saka"
	onTarget.Details.Label = "Over"
	onTarget.Details.Total = "1.5"
	assert.Equal(t, StatusWon, Settle(onTarget, f).Status)
}

func TestPlayerShots_MissingStatCountsAsZero(t *testing.T) {
	f := arsenalChelsea()

	// Cole Palmer está no lineup mas sem estatística de chutes no alvo
	b := bet(85, "")
	b.Details.Name = "Cole Palmer"
	b.Details.Label = "Over"
	b.Details.Total = "0.5"
	assert.Equal(t, StatusLost, Settle(b, f).Status)

	b.Details.Label = "Under"
	assert.Equal(t, StatusWon, Settle(b, f).Status)
}

func TestPlayerShots_AbsentPlayerIsCanceled(t *testing.T) {
	b := bet(85, "")
	b.Details.Name = "John Doe"
	b.Details.Label = "Over"
	b.Details.Total = "0.5"
	out := Settle(b, arsenalChelsea())
	assert.Equal(t, StatusCanceled, out.Status)
	assert.Equal(t, b.StakeCents, out.PayoutCents)
}

func TestCorners(t *testing.T) {
	f := arsenalChelsea() // 7 + 4 = 11 escanteios

	ou := bet(75, "")
	ou.Details.Label = "Over"
	ou.Details.Total = "10.5"
	assert.Equal(t, StatusWon, Settle(ou, f).Status)

	ou.Details.Total = "11"
	assert.Equal(t, StatusPush, Settle(ou, f).Status)

	team := bet(76, "")
	team.Details.Name = "Arsenal"
	team.Details.Label = "Over"
	team.Details.Total = "6.5"
	assert.Equal(t, StatusWon, Settle(team, f).Status)

	assert.Equal(t, StatusWon, Settle(bet(77, "10 - 12"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(77, "4 - 9"), f).Status)

	assert.Equal(t, StatusWon, Settle(bet(78, "11"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(78, "14+"), f).Status)
}

func TestCorners_MissingStatsFallsBackToProvider(t *testing.T) {
	m := arsenalChelseaPayload()
	m.Statistics = nil
	win := true
	m.Odds = append(m.Odds, provider.Odd{ID: 750, MarketID: 75, Label: "Over", Winning: &win})

	b := bet(75, "")
	b.OddID = 750
	b.Details.Label = "Over"
	b.Details.Total = "10.5"
	out := Settle(b, facts.Build(m))
	assert.Equal(t, StatusWon, out.Status)
	assert.Equal(t, "provider settlement", out.Reason)

	// sem flag do provedor o cancelamento devolve o stake
	b.OddID = 999999
	out = Settle(b, facts.Build(m))
	assert.Equal(t, StatusCanceled, out.Status)
	assert.Equal(t, b.StakeCents, out.PayoutCents)
}

func TestCardsTotal(t *testing.T) {
	f := arsenalChelsea() // 5 amarelos + 1 vermelho

	b := bet(80, "")
	b.Details.Label = "Over"
	b.Details.Total = "5.5"
	assert.Equal(t, StatusWon, Settle(b, f).Status)

	b.Details.Total = "6.5"
	assert.Equal(t, StatusLost, Settle(b, f).Status)
}

func TestResultAndBTTS(t *testing.T) {
	f := arsenalChelsea()
	assert.Equal(t, StatusWon, Settle(bet(63, "Home/Yes"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(63, "Home/No"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(63, "Away/Yes"), f).Status)
	assert.Equal(t, StatusWon, Settle(bet(63, "Arsenal/Yes"), f).Status)
	assert.Equal(t, StatusCanceled, Settle(bet(63, "garbled"), f).Status)
}

func TestResultAndTotalGoals(t *testing.T) {
	f := arsenalChelsea()

	b := bet(65, "Home/Over")
	b.Details.Total = "2.5"
	assert.Equal(t, StatusWon, Settle(b, f).Status)

	// threshold legado 2.5 quando nada estruturado
	assert.Equal(t, StatusWon, Settle(bet(65, "Home/Over"), f).Status)
	assert.Equal(t, StatusLost, Settle(bet(65, "Home - Under"), f).Status)
	assert.Equal(t, StatusWon, Settle(bet(65, "Home/Over 1.5"), f).Status)
}

func TestResultAndTotalGoals_IntegerLine(t *testing.T) {
	f := arsenalChelsea() // 3 gols no total

	// resultado certo + linha batida em cheio: push, como nos totais puros
	hit := bet(65, "Home/Over")
	hit.Details.Total = "3"
	out := Settle(hit, f)
	assert.Equal(t, StatusPush, out.Status)
	assert.Equal(t, hit.StakeCents, out.PayoutCents)

	// resultado errado perde mesmo com a linha batida
	miss := bet(65, "Away/Over")
	miss.Details.Total = "3"
	out = Settle(miss, f)
	assert.Equal(t, StatusLost, out.Status)
	assert.Equal(t, int64(0), out.PayoutCents)
}

func TestHalfTimeResultAndTotalGoals(t *testing.T) {
	b := bet(66, "Home/Under")
	b.Details.Total = "1.5"
	// intervalo 1-0: mandante na frente, 1 gol
	assert.Equal(t, StatusWon, Settle(b, arsenalChelsea()).Status)
}

func TestMissingScoreSegmentsCancel(t *testing.T) {
	m := arsenalChelseaPayload()
	m.Scores = nil
	m.HTScore = ""
	f := facts.Build(m)

	for _, b := range []Bet{bet(1, "1"), bet(31, "1"), bet(51, "X"), bet(12, "Over 2.5")} {
		out := Settle(b, f)
		assert.Equal(t, StatusCanceled, out.Status, "market %d", b.MarketID)
		assert.Equal(t, b.StakeCents, out.PayoutCents)
	}
}
