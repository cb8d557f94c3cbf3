package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/adamcernik/biketime-public-sub000/internal/cache"
	"github.com/adamcernik/biketime-public-sub000/internal/config"
	"github.com/adamcernik/biketime-public-sub000/internal/infra"
	"github.com/adamcernik/biketime-public-sub000/internal/repository"
	"github.com/adamcernik/biketime-public-sub000/internal/router"
	"github.com/adamcernik/biketime-public-sub000/internal/worker"
)

func main() {
	// Structured logger: pretty console in dev, JSON in prod
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	client, err := infra.NewMongo(cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	cacheTTL := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	snapshots := cache.New(cacheTTL)

	// Start goroutine worker pool for async tasks (feed import, email).
	// Worker handlers are wired here (composition root) so that the pool
	// has full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := client.Database(cfg.MongoDB)
	productRepo := repository.NewProductRepository(db)

	breaker := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      time.Minute,
	})
	feed := infra.NewFeedClient(cfg.SupplierFeedURL, breaker)
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)

	handlers := &worker.Handlers{
		Import: worker.NewImportWorker(feed, productRepo, dispatcher, snapshots, cfg.ImportBatchSize, cfg.ReportEmail),
		Email:  worker.NewEmailWorker(mailer),
	}
	worker.StartPool(ctx, rdb, handlers, cfg.WorkerPoolSize)

	r := router.New(cfg, client, rdb, dispatcher, snapshots)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("biketime backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	log.Info().Msg("server exited")
}
