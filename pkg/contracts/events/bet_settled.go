package events

import "time"

// Evento emitido após a liquidação de uma aposta.
type BetSettled struct {
	BetID       string    `json:"bet_id"`
	UserID      string    `json:"user_id"`
	MatchID     string    `json:"match_id"`
	Status      string    `json:"status"` // "WON" | "LOST" | "PUSH" | "CANCELED" | "ERROR"
	PayoutCents int64     `json:"payout_cents"`
	Reason      string    `json:"reason,omitempty"`
	Ts          time.Time `json:"ts"`
}
