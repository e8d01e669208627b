package dto

import "github.com/radieske/bet-settlement-poc/pkg/contracts/provider"

// SettleBatchRequest lista as apostas a liquidar; os fatos de cada partida
// são resolvidos uma única vez por partida.
type SettleBatchRequest struct {
	BetIDs []string `json:"bet_ids"`
}

// PreviewRequest liquida uma aposta contra um payload de partida sem
// persistir nada. Útil para auditoria e suporte.
type PreviewRequest struct {
	Bet   PreviewBet     `json:"bet"`
	Match provider.Match `json:"match"`
}

type PreviewBet struct {
	OddID             int64   `json:"odd_id,omitempty"`
	MarketID          int     `json:"market_id,omitempty"`
	Selection         string  `json:"selection,omitempty"`
	Label             string  `json:"label,omitempty"`
	Name              string  `json:"name,omitempty"`
	Total             string  `json:"total,omitempty"`
	Handicap          string  `json:"handicap,omitempty"`
	MarketDescription string  `json:"market_description,omitempty"`
	StakeCents        int64   `json:"stake_cents"`
	OddValue          float64 `json:"odd_value"`
	IsLive            bool    `json:"is_live,omitempty"`
}
