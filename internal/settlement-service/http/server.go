package http

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-poc/internal/engine"
	"github.com/radieske/bet-settlement-poc/internal/facts"
	"github.com/radieske/bet-settlement-poc/internal/settlement-service/dto"
	"github.com/radieske/bet-settlement-poc/internal/settlement-service/matchdata"
	"github.com/radieske/bet-settlement-poc/internal/settlement-service/repo"
	"github.com/radieske/bet-settlement-poc/pkg/contracts/events"
)

type Server struct {
	log      *zap.Logger
	repo     *repo.Postgres
	resolver *matchdata.Resolver
	publ     interface {
		PublishBetSettled(context.Context, events.BetSettled) error
	}
}

func NewServer(log *zap.Logger, r *repo.Postgres, res *matchdata.Resolver, p interface {
	PublishBetSettled(context.Context, events.BetSettled) error
}) *Server {
	return &Server{log: log, repo: r, resolver: res, publ: p}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/settlements/batch", s.settleBatch)     // POST
	mux.HandleFunc("/settlements/preview", s.previewSettle) // POST
	mux.HandleFunc("/settlements/", s.getSettlement)        // GET /settlements/{betId}
	return mux
}

// settleBatch liquida um lote de apostas: agrupa por partida, resolve os
// fatos uma vez por partida e persiste cada desfecho terminal.
func (s *Server) settleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.SettleBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if len(req.BetIDs) == 0 {
		http.Error(w, "bet_ids required", http.StatusBadRequest)
		return
	}

	records, err := s.repo.GetByIDs(r.Context(), req.BetIDs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	bets := make([]engine.Bet, len(records))
	matchIDs := make(map[string]struct{})
	for i, rec := range records {
		bets[i] = rec.ToEngineBet()
		matchIDs[rec.MatchID] = struct{}{}
	}

	// Fatos resolvidos uma única vez por partida; partida sem fatos gera
	// ERROR para as apostas dela, sem derrubar o lote.
	factsByMatch := make(map[string]*facts.MatchFacts, len(matchIDs))
	for matchID := range matchIDs {
		f, err := s.resolver.Resolve(r.Context(), matchID)
		if err != nil {
			s.log.Warn("facts resolve failed", zap.String("match_id", matchID), zap.Error(err))
			continue
		}
		factsByMatch[matchID] = f
	}

	outcomes := engine.SettleMany(bets, factsByMatch)

	resp := dto.SettleBatchResponse{Results: make(map[string]dto.BetOutcome, len(records))}
	for i, rec := range records {
		out := outcomes[i]
		if err := s.repo.ApplyOutcome(r.Context(), rec.ID, out); err != nil {
			s.log.Error("apply outcome failed", zap.String("bet_id", rec.ID), zap.Error(err))
		} else if out.Status.Terminal() && out.Status != engine.StatusError {
			_ = s.publ.PublishBetSettled(r.Context(), events.BetSettled{
				BetID:       rec.ID,
				UserID:      rec.UserID,
				MatchID:     rec.MatchID,
				Status:      string(out.Status),
				PayoutCents: out.PayoutCents,
				Reason:      out.Reason,
			})
		}
		resp.Results[rec.ID] = dto.BetOutcome{
			BetID:       rec.ID,
			Status:      string(out.Status),
			PayoutCents: out.PayoutCents,
			Reason:      out.Reason,
			Diagnostics: out.Diagnostics,
		}
	}

	writeJSON(w, resp)
}

// previewSettle roda o motor contra um payload fornecido, sem persistência.
func (s *Server) previewSettle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.Bet.StakeCents <= 0 || req.Bet.OddValue <= 1.0 {
		http.Error(w, "invalid stake/odd", http.StatusBadRequest)
		return
	}

	b := engine.Bet{
		OddID:     req.Bet.OddID,
		MarketID:  req.Bet.MarketID,
		Selection: req.Bet.Selection,
		Details: engine.SelectionDetails{
			Label:             req.Bet.Label,
			Name:              req.Bet.Name,
			Total:             req.Bet.Total,
			Handicap:          req.Bet.Handicap,
			MarketDescription: req.Bet.MarketDescription,
		},
		StakeCents: req.Bet.StakeCents,
		OddValue:   req.Bet.OddValue,
		IsLive:     req.Bet.IsLive,
	}

	out := engine.Settle(b, facts.Build(&req.Match))
	writeJSON(w, dto.BetOutcome{
		Status:      string(out.Status),
		PayoutCents: out.PayoutCents,
		Reason:      out.Reason,
		Diagnostics: out.Diagnostics,
	})
}

func (s *Server) getSettlement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// path: /settlements/{betId}
	id := r.URL.Path[len("/settlements/"):]
	if id == "" {
		http.Error(w, "betId required", http.StatusBadRequest)
		return
	}

	rec, err := s.repo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	writeJSON(w, dto.BetStatusResponse{
		BetID:       rec.ID,
		Status:      rec.Status,
		PayoutCents: rec.PayoutCents,
		Reason:      rec.Reason,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
