package engine

import "math"

// Status final de uma liquidação. PENDING é o único estado não terminal.
type Status string

const (
	StatusWon      Status = "WON"
	StatusLost     Status = "LOST"
	StatusPush     Status = "PUSH"
	StatusCanceled Status = "CANCELED"
	StatusPending  Status = "PENDING"
	StatusError    Status = "ERROR"
)

// Terminal informa se o status encerra a aposta.
func (s Status) Terminal() bool { return s != StatusPending }

// SelectionDetails são os campos estruturados da seleção, quando o provedor
// os envia. Têm precedência sobre o texto livre de Bet.Selection.
type SelectionDetails struct {
	Label             string
	Name              string
	Total             string
	Handicap          string
	MarketDescription string
}

// Bet é a aposta a liquidar. Imutável: o motor consome, nunca altera.
// Invariantes: StakeCents > 0, OddValue > 1.0.
type Bet struct {
	ID         string
	UserID     string
	MatchID    string
	OddID      int64
	MarketID   int
	Selection  string // seleção legada em texto livre ("1", "Over 2.5", "2-1")
	Details    SelectionDetails
	StakeCents int64
	OddValue   float64
	IsLive     bool // aposta feita com a partida em andamento
}

// Outcome é o resultado da liquidação. PayoutCents é totalmente determinado
// pelo status: stake*odd se ganhou, stake em push/cancelamento, zero no resto.
type Outcome struct {
	Status      Status
	PayoutCents int64
	Reason      string
	Diagnostics map[string]string
}

// result monta um Outcome aplicando a lei de payout.
func result(b Bet, st Status, reason string, diag map[string]string) Outcome {
	return Outcome{
		Status:      st,
		PayoutCents: payoutFor(b, st),
		Reason:      reason,
		Diagnostics: diag,
	}
}

func payoutFor(b Bet, st Status) int64 {
	switch st {
	case StatusWon:
		return int64(math.Round(float64(b.StakeCents) * b.OddValue))
	case StatusPush, StatusCanceled:
		return b.StakeCents
	default:
		return 0
	}
}

// winLose converte um booleano de acerto em WON/LOST.
func winLose(b Bet, won bool, reason string, diag map[string]string) Outcome {
	if won {
		return result(b, StatusWon, reason, diag)
	}
	return result(b, StatusLost, reason, diag)
}

// canceled é o cancelamento com devolução integral do stake: o motor não
// consegue determinar o resultado com segurança.
func canceled(b Bet, reason string, diag map[string]string) Outcome {
	return result(b, StatusCanceled, reason, diag)
}
