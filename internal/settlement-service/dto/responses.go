package dto

// BetOutcome é o resultado da liquidação de uma aposta.
type BetOutcome struct {
	BetID       string            `json:"bet_id"`
	Status      string            `json:"status"`
	PayoutCents int64             `json:"payout_cents"`
	Reason      string            `json:"reason,omitempty"`
	Diagnostics map[string]string `json:"diagnostics,omitempty"`
}

// SettleBatchResponse devolve um resultado por aposta, chaveado por bet_id.
type SettleBatchResponse struct {
	Results map[string]BetOutcome `json:"results"`
}

// BetStatusResponse é o estado atual de uma aposta persistida.
type BetStatusResponse struct {
	BetID       string `json:"bet_id"`
	Status      string `json:"status"`
	PayoutCents int64  `json:"payout_cents"`
	Reason      string `json:"reason,omitempty"`
}
