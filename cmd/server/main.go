package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/saeidalz13/battleship-tcp/api"
	"github.com/saeidalz13/battleship-tcp/db"
	"github.com/saeidalz13/battleship-tcp/db/sqlc"
	"github.com/saeidalz13/battleship-tcp/events"
	"github.com/saeidalz13/battleship-tcp/internal/config"
	"github.com/saeidalz13/battleship-tcp/internal/logger"
	"github.com/saeidalz13/battleship-tcp/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "battleship-server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.InitOtel(ctx, cfg.OtelEndpoint)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("error shutting down telemetry", "err", err)
		}
	}()
	logger.Init(cfg.SlogLevel())

	opts := []api.Option{
		api.WithPort(cfg.Port),
		api.WithWsPort(cfg.WsPort),
		api.WithStage(cfg.Stage),
		api.WithMaxSessions(cfg.MaxSessions),
	}

	if cfg.DatabaseURL != "" {
		psqlDb := db.MustConnectToDb(cfg.DatabaseURL)
		defer psqlDb.Close()
		opts = append(opts, api.WithQuerier(sqlc.New(psqlDb)))
	}

	if cfg.RedisAddr != "" {
		rdb, err := events.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer rdb.Close()
		opts = append(opts, api.WithPublisher(events.NewRedisPublisher(rdb)))
	}

	server, err := api.NewServer(opts...)
	if err != nil {
		return err
	}

	if err := server.ListenAndServe(ctx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
