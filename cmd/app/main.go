// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subsentry/internal/config"
	"subsentry/internal/domain/ports/adapter"
	mailAdapters "subsentry/internal/infra/adapters/mail"
	pg "subsentry/internal/infra/db/postgres"
	"subsentry/internal/infra/logging"
	"subsentry/internal/infra/metrics"
	"subsentry/internal/infra/rates"
	red "subsentry/internal/infra/redis"
	"subsentry/internal/infra/sched"
	"subsentry/internal/infra/web"
	"subsentry/internal/infra/worker"
	"subsentry/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, int32(cfg.Database.MaxConns))
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	subRepo := pg.NewSubscriptionRepo(pool)
	reminderLogRepo := pg.NewReminderLogRepo(pool)

	// ---- Rate source: live client -> redis cache -> static fallback ----
	var rateSource adapter.RateSource = rates.NewClient(cfg.Rates.BaseURL, cfg.Rates.Timeout, logger)
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		rateCache := red.NewRateCache(redisClient, cfg.Rates.TTL)
		rateSource = rates.NewCachedSource(rateSource, rateCache, cfg.Rates.TTL, logger)
	} else {
		logger.Warn().Msg("redis.url not set, rate snapshots will not be shared between processes")
	}
	rateSource = rates.NewFallbackSource(rateSource, logger)

	// ---- Mail transport ----
	var mailer adapter.Mailer
	if cfg.Reminders.WebhookURL != "" && !cfg.Runtime.Dev {
		mailer = mailAdapters.NewWebhookMailer(cfg.Reminders.WebhookURL, cfg.Reminders.Token, logger)
	} else {
		mailer = mailAdapters.NewNoopMailer(logger)
	}

	// ---- Use cases ----
	sendPool := worker.NewPool(cfg.Reminders.Workers)
	subUC := usecase.NewSubscriptionUseCase(subRepo, logger)
	dashUC := usecase.NewDashboardUseCase(subRepo, rateSource, cfg.Reminders.Workers, logger)
	renewalUC := usecase.NewRenewalUseCase(subRepo, logger)
	reminderUC := usecase.NewReminderUseCase(subRepo, reminderLogRepo, mailer, sendPool, logger)

	// ---- Workers ----
	go func() {
		if err := sched.NewRenewalWorker(cfg.Scheduler.RenewalInterval, renewalUC, logger).Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("renewal worker stopped")
		}
	}()
	go func() {
		if err := sched.NewReminderWorker(cfg.Scheduler.ReminderInterval, cfg.Reminders.LeadDays, reminderUC, logger).Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("reminder worker stopped")
		}
	}()

	// ---- HTTP ----
	server := web.NewServer(dashUC, subUC, web.NewTokenVerifier(cfg.Web.JWTSecret), logger)
	go func() {
		if err := server.Start(cfg.Web.Port); err != nil && ctx.Err() == nil {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	// ---- Shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
