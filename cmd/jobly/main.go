package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jobly/internal/bot"
	"jobly/internal/config"
	"jobly/internal/logger"
	"jobly/internal/service"
	"jobly/internal/storage/postgres"
	"jobly/internal/storage/redis"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("jobly stopped with error", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}

	log.Info("shut down gracefully")
}

// run wires the stores, services and bot, and blocks until ctx is done.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	log.Info("starting jobly",
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Duration("query_timeout", cfg.QueryTimeout),
	)

	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	cache, err := redis.New(redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, log)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer cache.Close()

	companies := service.NewCompanies(store, cache, cfg.CacheTTL, log)
	jobs := service.NewJobs(store, cache, cfg.CacheTTL, log)

	tgBot, err := bot.New(cfg, companies, jobs, cache, log)
	if err != nil {
		return err
	}

	log.Info("bot is running, press Ctrl+C to stop")
	return tgBot.Start(ctx)
}
