package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-poc/internal/engine"
	"github.com/radieske/bet-settlement-poc/internal/facts"
	"github.com/radieske/bet-settlement-poc/internal/settlement-service/cache"
	"github.com/radieske/bet-settlement-poc/internal/settlement-service/producer"
	"github.com/radieske/bet-settlement-poc/internal/settlement-service/repo"
	sharedcache "github.com/radieske/bet-settlement-poc/internal/shared/cache"
	"github.com/radieske/bet-settlement-poc/internal/shared/config"
	"github.com/radieske/bet-settlement-poc/internal/shared/db"
	"github.com/radieske/bet-settlement-poc/internal/shared/kafka"
	"github.com/radieske/bet-settlement-poc/internal/shared/logger"
	ev "github.com/radieske/bet-settlement-poc/pkg/contracts/events"
)

// Métricas do worker de liquidação
var (
	matchStatesConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_match_states_consumed_total",
		Help: "Eventos match_states consumidos do Kafka",
	})
	betsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_bets_settled_total",
		Help: "Apostas liquidadas por status final",
	}, []string{"status"})
	dlqMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_match_states_dlq_total",
		Help: "Payloads de match_states enviados para a DLQ",
	})
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Postgres: apostas pendentes e efetivação de liquidações
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	// Redis: o worker aquece o cache de estados de partida que o
	// settlement-service consulta no caminho de lote.
	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()
	factsCache := cache.NewRedisStore(redisClient, cfg.FactsCacheTTL)

	// Kafka consumer: eventos match_states do provedor
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicMatchStates, "settlement-worker")
	defer reader.Close()

	// Kafka producers: bet_settled e DLQ de payloads inválidos
	settledWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer settledWriter.Close()
	publ := producer.NewKafkaPublisher(settledWriter, cfg.TopicBetSettled)

	var dlqWriter *kafkago.Writer
	if cfg.TopicMatchStatesDLQ != "" {
		dlqWriter = kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMatchStatesDLQ)
		defer dlqWriter.Close()
	}

	betRepo := repo.NewPostgres(pg)

	// Servidor HTTP para métricas Prometheus e healthcheck
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()
			if err := pg.PingContext(ctx); err != nil {
				http.Error(w, "pg", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		addr := ":" + cfg.MetricsPort
		log.Info("metrics/health", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, mux)
	}()

	log.Info("settlement-worker started",
		zap.String("consume", cfg.TopicMatchStates),
		zap.String("publish", cfg.TopicBetSettled),
	)

	ctx := context.Background()

	// Loop principal: consome estados de partida e liquida as apostas pendentes
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			log.Warn("kafka read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		matchStatesConsumed.Inc()

		var state ev.MatchState
		if jerr := json.Unmarshal(msg.Value, &state); jerr != nil || state.MatchID == "" {
			log.Error("unmarshal match_state", zap.Error(jerr))
			if dlqWriter != nil {
				_ = kafka.WriteJSON(ctx, dlqWriter, string(msg.Key), msg.Value)
				dlqMessages.Inc()
			}
			continue
		}

		if err := processMatchState(ctx, log, betRepo, factsCache, publ, &state); err != nil {
			log.Error("process match state", zap.String("matchId", state.MatchID), zap.Error(err))
			// Backoff simples para evitar flood em caso de erro
			time.Sleep(500 * time.Millisecond)
		}
	}
}

// processMatchState liquida as apostas pendentes de uma partida:
// 1. Aquece o cache de estados com o payload recebido
// 2. Se a partida não terminou, nada a liquidar ainda
// 3. Constrói os fatos uma única vez e roda o motor por aposta
// 4. Efetiva cada desfecho terminal e publica bet_settled
func processMatchState(
	ctx context.Context,
	log *zap.Logger,
	betRepo *repo.Postgres,
	factsCache cache.Store,
	publ *producer.KafkaPublisher,
	state *ev.MatchState,
) error {
	if err := factsCache.Set(ctx, state.MatchID, &state.Payload); err != nil {
		log.Warn("facts cache set", zap.String("matchId", state.MatchID), zap.Error(err))
	}

	f := facts.Build(&state.Payload)
	if !f.Finished {
		return nil
	}

	pending, err := betRepo.PendingByMatch(ctx, state.MatchID)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	settled := 0
	for _, rec := range pending {
		out := engine.Settle(rec.ToEngineBet(), f)
		betsSettled.WithLabelValues(string(out.Status)).Inc()

		if !out.Status.Terminal() {
			continue
		}
		if err := betRepo.ApplyOutcome(ctx, rec.ID, out); err != nil {
			log.Error("apply outcome", zap.String("betId", rec.ID), zap.Error(err))
			continue
		}
		if out.Status != engine.StatusError {
			if err := publ.PublishBetSettled(ctx, ev.BetSettled{
				BetID:       rec.ID,
				UserID:      rec.UserID,
				MatchID:     rec.MatchID,
				Status:      string(out.Status),
				PayoutCents: out.PayoutCents,
				Reason:      out.Reason,
			}); err != nil {
				log.Warn("publish bet_settled", zap.String("betId", rec.ID), zap.Error(err))
			}
		}
		settled++
	}

	log.Info("match settled",
		zap.String("matchId", state.MatchID),
		zap.Int("pending", len(pending)),
		zap.Int("settled", settled),
	)
	return nil
}
