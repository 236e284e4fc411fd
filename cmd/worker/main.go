package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/ranchhand-app/ranchhand/internal/app"
	"github.com/ranchhand-app/ranchhand/internal/fund"
	"github.com/ranchhand-app/ranchhand/internal/platform/db"
	"github.com/ranchhand-app/ranchhand/internal/shared"
	"github.com/ranchhand-app/ranchhand/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	activityRecorder := shared.NewActivityRecorder(pool, logger)
	idempotencyStore := shared.NewIdempotencyStore(pool)

	fundRepo := fund.NewRepository(pool)
	fundService := fund.NewService(fundRepo, activityRecorder, idempotencyStore)

	depositHandler := jobs.NewFundDepositHandler(fundService, logger)
	cleanupHandler := jobs.NewIdempotencyCleanupHandler(idempotencyStore, logger)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskOrderDelivered, Handler: depositHandler},
			{Type: jobs.TaskIdempotencyCleanup, Handler: cleanupHandler},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "45 3 * * *", Task: jobs.NewIdempotencyCleanupTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
