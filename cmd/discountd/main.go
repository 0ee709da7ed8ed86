package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"discount-service/discount"
	"discount-service/discount/application"
	"discount-service/discount/domain"
	"discount-service/discount/infra"
	"discount-service/pkg/logx"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := readConfig(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}

	logger := logx.Init(logx.ParseEnvironment(cfg.AppEnv))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var stats domain.StatsStore
	if cfg.StatsEnabled {
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis stats ping error")
		}
		defer func() { _ = rdb.Close() }()

		stats = infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.StatsPrefix),
			infra.WithStatsTTL(cfg.StatsTTL),
			infra.WithStatsBucket(cfg.StatsBucket),
			infra.WithStatsTrackCurrency(cfg.StatsTrackCurrency),
		)
	}

	quotes := application.NewQuoteService(
		application.WithStats(stats),
		application.WithLogger(logger),
		application.WithPrecision(cfg.Precision),
	)

	h := discount.Handler(discount.HandlerOptions{Quotes: quotes, Logger: &logger})
	if cfg.ThrottleRPS > 0 {
		budgets := infra.NewQuoteBudgets(cfg.ThrottleRPS, cfg.ThrottleBurst)
		budgets.Run(ctx, cfg.ThrottlePruneEvery)
		h = discount.Throttle(discount.ThrottleOptions{
			Limiter:            budgets,
			KeyHeader:          cfg.ThrottleKeyHeader,
			TrustXForwardedFor: cfg.TrustXFF,
			RetryAfter:         cfg.RetryAfter,
		})(h)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().
		Str("addr", cfg.ListenAddr).
		Int32("precision", quotes.Precision()).
		Msg("discount service listening")
	logger.Info().
		Float64("rps", cfg.ThrottleRPS).
		Int("burst", cfg.ThrottleBurst).
		Str("key_header", cfg.ThrottleKeyHeader).
		Bool("trust_xff", cfg.TrustXFF).
		Msg("throttle")
	logger.Info().
		Bool("enabled", cfg.StatsEnabled).
		Str("bucket", cfg.StatsBucket).
		Dur("ttl", cfg.StatsTTL).
		Bool("track_currency", cfg.StatsTrackCurrency).
		Msg("stats")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}
