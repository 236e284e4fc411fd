package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ranchhand-app/ranchhand/internal/activity"
	"github.com/ranchhand-app/ranchhand/internal/app"
	"github.com/ranchhand-app/ranchhand/internal/auth"
	"github.com/ranchhand-app/ranchhand/internal/catalog"
	"github.com/ranchhand-app/ranchhand/internal/fund"
	"github.com/ranchhand-app/ranchhand/internal/gamemap"
	"github.com/ranchhand-app/ranchhand/internal/orders"
	"github.com/ranchhand-app/ranchhand/internal/platform/cache"
	"github.com/ranchhand-app/ranchhand/internal/platform/db"
	"github.com/ranchhand-app/ranchhand/internal/posters"
	"github.com/ranchhand-app/ranchhand/internal/quotes"
	"github.com/ranchhand-app/ranchhand/internal/ranchlog"
	"github.com/ranchhand-app/ranchhand/internal/rbac"
	"github.com/ranchhand-app/ranchhand/internal/recipes"
	"github.com/ranchhand-app/ranchhand/internal/shared"
	"github.com/ranchhand-app/ranchhand/internal/todos"
	"github.com/ranchhand-app/ranchhand/internal/users"
	"github.com/ranchhand-app/ranchhand/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())
	activityRecorder := shared.NewActivityRecorder(pool, logger)
	idempotencyStore := shared.NewIdempotencyStore(pool)

	jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, activityRecorder)
	usersHandler := users.NewHandler(logger, usersService)

	authService := auth.NewService(usersRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	rbacService := rbac.NewService(pool)
	guard := rbac.Middleware{Source: rbacService, Logger: logger}

	ordersRepo := orders.NewRepository(pool)
	ordersService := orders.NewService(ordersRepo, usersRepo, activityRecorder, jobsClient)
	ordersHandler := orders.NewHandler(logger, ordersService)

	quotesRepo := quotes.NewRepository(pool)
	quotesService := quotes.NewService(quotesRepo, activityRecorder)
	quotesHandler := quotes.NewHandler(logger, quotesService)

	catalogRepo := catalog.NewRepository(pool)
	catalogService := catalog.NewService(catalogRepo, activityRecorder)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	fundRepo := fund.NewRepository(pool)
	fundService := fund.NewService(fundRepo, activityRecorder, idempotencyStore)
	fundHandler := fund.NewHandler(logger, fundService)

	mapRepo := gamemap.NewRepository(pool)
	mapService := gamemap.NewService(mapRepo, activityRecorder)
	mapHandler := gamemap.NewHandler(logger, mapService)

	todosRepo := todos.NewRepository(pool)
	todosService := todos.NewService(todosRepo, activityRecorder)
	todosHandler := todos.NewHandler(logger, todosService)

	driveStorage, err := posters.NewDriveStorage(ctx, cfg.DriveCredentialsFile, cfg.DriveFolderID)
	if err != nil {
		logger.Error("init drive storage", slog.Any("error", err))
		os.Exit(1)
	}
	postersRepo := posters.NewRepository(pool)
	postersService := posters.NewService(postersRepo, driveStorage, activityRecorder, logger)
	postersHandler := posters.NewHandler(logger, postersService)

	recipesRepo := recipes.NewRepository(pool)
	recipesService := recipes.NewService(recipesRepo, activityRecorder)
	recipesHandler := recipes.NewHandler(logger, recipesService)

	logsRepo := ranchlog.NewRepository(pool)
	logsService := ranchlog.NewService(logsRepo, activityRecorder)
	logsHandler := ranchlog.NewHandler(logger, logsService)

	activityRepo := activity.NewRepository(pool)
	activityService := activity.NewService(activityRepo)
	activityHandler := activity.NewHandler(logger, activityService)

	router := app.NewRouter(app.RouterParams{
		Middleware: app.MiddlewareConfig{
			Logger:         logger,
			Config:         cfg,
			SessionManager: sessionManager,
			Users:          usersRepo,
		},
		AuthHandler:     authHandler,
		OrdersHandler:   ordersHandler,
		QuotesHandler:   quotesHandler,
		CatalogHandler:  catalogHandler,
		FundHandler:     fundHandler,
		MapHandler:      mapHandler,
		TodosHandler:    todosHandler,
		PostersHandler:  postersHandler,
		RecipesHandler:  recipesHandler,
		LogsHandler:     logsHandler,
		ActivityHandler: activityHandler,
		UsersHandler:    usersHandler,
		RBACMiddleware:  guard,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
