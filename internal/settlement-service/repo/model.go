package repo

import (
	"time"

	"github.com/radieske/bet-settlement-poc/internal/engine"
)

// BetRecord é o modelo de aposta persistido no Postgres.
type BetRecord struct {
	ID                string
	UserID            string
	MatchID           string
	OddID             int64
	MarketID          int
	Selection         string
	SelectionLabel    string
	SelectionName     string
	SelectionTotal    string
	SelectionHandicap string
	MarketDescription string
	StakeCents        int64
	OddValue          float64
	IsLive            bool
	Status            string
	PayoutCents       int64
	Reason            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ToEngineBet converte o registro persistido na aposta imutável do motor.
func (r BetRecord) ToEngineBet() engine.Bet {
	return engine.Bet{
		ID:        r.ID,
		UserID:    r.UserID,
		MatchID:   r.MatchID,
		OddID:     r.OddID,
		MarketID:  r.MarketID,
		Selection: r.Selection,
		Details: engine.SelectionDetails{
			Label:             r.SelectionLabel,
			Name:              r.SelectionName,
			Total:             r.SelectionTotal,
			Handicap:          r.SelectionHandicap,
			MarketDescription: r.MarketDescription,
		},
		StakeCents: r.StakeCents,
		OddValue:   r.OddValue,
		IsLive:     r.IsLive,
	}
}
