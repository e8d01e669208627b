package matchdata

import (
	"context"

	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-poc/internal/facts"
	"github.com/radieske/bet-settlement-poc/internal/settlement-service/cache"
	"github.com/radieske/bet-settlement-poc/pkg/contracts/provider"
)

// Fetcher abstrai a busca do estado bruto no provedor.
type Fetcher interface {
	GetMatch(ctx context.Context, matchID string) (*provider.Match, error)
}

// Resolver resolve MatchFacts com leitura através do cache: evita refazer
// a consulta ao provedor para a mesma partida dentro da janela de TTL.
type Resolver struct {
	Cache  cache.Store
	Client Fetcher
	Log    *zap.Logger
}

func NewResolver(c cache.Store, f Fetcher, log *zap.Logger) *Resolver {
	return &Resolver{Cache: c, Client: f, Log: log}
}

// Resolve busca o payload (cache primeiro) e deriva os fatos normalizados.
func (r *Resolver) Resolve(ctx context.Context, matchID string) (*facts.MatchFacts, error) {
	if r.Cache != nil {
		m, ok, err := r.Cache.Get(ctx, matchID)
		if err != nil {
			// falha de cache não bloqueia a resolução
			r.Log.Warn("facts cache get failed", zap.String("match_id", matchID), zap.Error(err))
		} else if ok {
			return facts.Build(m), nil
		}
	}

	m, err := r.Client.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if r.Cache != nil {
		if err := r.Cache.Set(ctx, matchID, m); err != nil {
			r.Log.Warn("facts cache set failed", zap.String("match_id", matchID), zap.Error(err))
		}
	}

	return facts.Build(m), nil
}
