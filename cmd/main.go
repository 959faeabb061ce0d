package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eaglebank/banking-service/internal/command"
	"github.com/eaglebank/banking-service/internal/config"
	"github.com/eaglebank/banking-service/internal/handler"
	"github.com/eaglebank/banking-service/internal/migrations"
	"github.com/eaglebank/banking-service/internal/query"
	"github.com/eaglebank/banking-service/internal/repository"
	"github.com/eaglebank/banking-service/shared/auth"
	"github.com/eaglebank/banking-service/shared/events"
	"github.com/eaglebank/banking-service/shared/logging"
	"github.com/eaglebank/banking-service/shared/middleware"
	redisClient "github.com/eaglebank/banking-service/shared/redis"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func main() {
	if err := run(); err != nil {
		logging.NewJSONLogger(os.Getenv("APP_ENV")).Error(context.Background(), "service stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.NewJSONLogger(cfg.App.Env)
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database connection (write store)
	db, err := sql.Open("postgres", cfg.PG.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		return err
	}
	if err := migrations.Run(ctx, db); err != nil {
		return err
	}

	// Redis connection (read model, revoked sessions, event streams)
	redis, err := redisClient.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer redis.Close()

	// --- CQRS wiring ---
	publisher := events.NewPublisher(redis.Client, cfg.Redis.StreamMaxLen)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	userWriteRepo := repository.NewUserWriteRepository(db)
	userReadRepo := repository.NewUserReadRepository(db, redis.Client, cfg.Redis.ViewTTL, logger)
	accountWriteRepo := repository.NewAccountWriteRepository(db)
	accountReadRepo := repository.NewAccountReadRepository(db, redis.Client, cfg.Redis.ViewTTL, logger)
	sessionRepo := repository.NewSessionRepository(redis.Client)

	userCommands := command.NewUserCommandService(userWriteRepo, userReadRepo, publisher, logger)
	accountCommands := command.NewAccountCommandService(accountWriteRepo, accountReadRepo, publisher, command.NumberRange{
		Min:         cfg.Accounts.NumberMin,
		Max:         cfg.Accounts.NumberMax,
		MaxAttempts: cfg.Accounts.MaxAttempts,
	}, logger)
	sessionCommands := command.NewSessionCommandService(sessionRepo)

	authQueries, err := query.NewAuthQueryService(userWriteRepo, tokens, logger)
	if err != nil {
		return err
	}
	userQueries := query.NewUserQueryService(userReadRepo, accountReadRepo)
	accountQueries := query.NewAccountQueryService(accountReadRepo)

	router := handler.NewRouter(handler.Handlers{
		Auth:     handler.NewAuthHandler(userCommands, authQueries, sessionCommands, cfg.IsProd(), logger),
		Users:    handler.NewUserHandler(userQueries, logger),
		Accounts: handler.NewAccountHandler(accountCommands, accountQueries, logger),
	}, middleware.AuthMiddleware(tokens, sessionRepo), cfg.HTTP.AllowedOrigins, logger)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "banking service starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
