package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/bet-settlement-poc/pkg/contracts/provider"
)

// Store é o colaborador de cache injetado no resolvedor de fatos: o motor
// em si continua puro e testável sem efeitos de cache.
type Store interface {
	Get(ctx context.Context, matchID string) (*provider.Match, bool, error)
	Set(ctx context.Context, matchID string, m *provider.Match) error
}

// RedisStore guarda estados de partida resolvidos no Redis com TTL fixo.
// Não há invalidação além da expiração: leitores concorrentes podem observar
// uma entrada um pouco velha, nunca uma expirada.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisStore cria o cache de estados de partida com TTL configurável.
func NewRedisStore(c *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: c, TTL: ttl}
}

// key gera a chave Redis do estado de uma partida
func key(matchID string) string { return "matchstate:" + matchID }

func (r *RedisStore) Get(ctx context.Context, matchID string) (*provider.Match, bool, error) {
	b, err := r.Client.Get(ctx, key(matchID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var m provider.Match
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, false, err
	}
	return &m, true, nil
}

func (r *RedisStore) Set(ctx context.Context, matchID string, m *provider.Match) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key(matchID), b, r.TTL).Err()
}
