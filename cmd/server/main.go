package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/teamnote/teamnote/internal/api"
	"github.com/teamnote/teamnote/internal/auth"
	"github.com/teamnote/teamnote/internal/config"
	"github.com/teamnote/teamnote/internal/note"
	"github.com/teamnote/teamnote/internal/team"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Warn("database unreachable at startup; health will report degraded", "error", err)
	}

	userRepo := auth.NewUserRepository(pool)
	teamRepo := team.NewRepository(pool)
	noteRepo := note.NewRepository(pool)

	authService := auth.NewService(userRepo, cfg.BcryptCost, cfg.JWTSecret, time.Duration(cfg.JWTTTL)*time.Minute)
	teamService := team.NewService(teamRepo)
	noteService := note.NewService(noteRepo, teamRepo)

	router := api.NewRouter(api.RouterDeps{
		AuthService: authService,
		UserRepo:    userRepo,
		TeamService: teamService,
		TeamRepo:    teamRepo,
		NoteService: noteService,
		DBPinger:    pool,
		Version:     cfg.Version,
		RateLimit:   cfg.RateLimit,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting teamnote server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
