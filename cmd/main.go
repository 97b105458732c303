// @title Accounts Service API
// @version 1.0
// @description User-account CRUD behind cookie-based JWT authentication

// @host localhost:8080
// @BasePath /
// @schemes http

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"go.uber.org/zap"

	_ "accounts-service/docs" // This is required for swagger
	"accounts-service/internal/config"
	"accounts-service/internal/handlers"
	"accounts-service/internal/logger"
	"accounts-service/internal/middleware"
	"accounts-service/internal/repository"
	"accounts-service/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	// Connection pool
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		zlog.Fatal("parse dsn", zap.Error(err))
	}
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "accounts-service"

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		zlog.Fatal("connect", zap.Error(err))
	}
	defer pool.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeout)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			zlog.Fatal("ping", zap.Error(err))
		}
	}

	// Handlers
	store := repository.NewUserRepository(pool)
	healthHandler := handlers.NewHealthHandler(pool)
	authHandler := handlers.NewAuthHandler(store, &cfg.JWT, &cfg.Cookie, zlog)
	userHandler := handlers.NewUserHandler(store, zlog)

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, healthHandler, authHandler, userHandler, &cfg.JWT, zlog)

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	handler := c.Handler(middleware.RequestLogger(mux, zlog))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info("HTTP server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("listen and serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown", zap.Error(err))
	}
	zlog.Info("server stopped")
}
