package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-poc/internal/settlement-service/cache"
	httpapi "github.com/radieske/bet-settlement-poc/internal/settlement-service/http"
	"github.com/radieske/bet-settlement-poc/internal/settlement-service/matchdata"
	"github.com/radieske/bet-settlement-poc/internal/settlement-service/producer"
	"github.com/radieske/bet-settlement-poc/internal/settlement-service/repo"
	sharedcache "github.com/radieske/bet-settlement-poc/internal/shared/cache"
	"github.com/radieske/bet-settlement-poc/internal/shared/config"
	"github.com/radieske/bet-settlement-poc/internal/shared/db"
	"github.com/radieske/bet-settlement-poc/internal/shared/kafka"
	"github.com/radieske/bet-settlement-poc/internal/shared/logger"
	"github.com/radieske/bet-settlement-poc/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Inicializa dependências: Postgres e Redis
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Resolvedor de fatos: cache Redis com TTL na frente do provedor HTTP
	factsCache := cache.NewRedisStore(redisClient, cfg.FactsCacheTTL)
	providerClient := matchdata.NewClient(cfg.ProviderBaseURL)
	resolver := matchdata.NewResolver(factsCache, providerClient, log)

	// Publisher de eventos bet_settled
	settledWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer settledWriter.Close()
	publ := producer.NewKafkaPublisher(settledWriter, cfg.TopicBetSettled)

	betRepo := repo.NewPostgres(pg)
	srv := httpapi.NewServer(log, betRepo, resolver, publ)

	// Servidor de métricas e health em porta separada
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	api := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: srv.Router(),
	}

	go func() {
		log.Info("settlement-service listening", zap.String("addr", api.Addr))
		if err := api.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	// Shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = api.Shutdown(shutdownCtx)
	log.Info("settlement-service stopped")
}
