package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardempire/internal/config"
	"cardempire/internal/game"
	"cardempire/internal/server"
	"cardempire/internal/store"
	"cardempire/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "cardempire.yml", "YAML config file")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log.Default()); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

// loadConfig reads the YAML file when present and falls back to the
// environment otherwise. CARDEMPIRE_* variables always win for the server.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = &config.Config{Difficulty: os.Getenv("DIFFICULTY"), Balance: config.FromEnv()}
		cfg.ApplyDefaults()
	case err != nil:
		return nil, err
	}
	cfg.Server = config.ServerFromEnv(cfg.Server)
	if err := cfg.Balance.Validate(); err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}
	return cfg, nil
}

type app struct {
	handler http.Handler
	session *server.Session
	store   store.Store
}

func build(ctx context.Context, cfg *config.Config, logger *log.Logger) (*app, error) {
	saves, err := store.Open(ctx, cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	events := telemetry.NewMemoryRepository()

	g := game.New(game.Options{Logger: logger, Recorder: events, Balance: cfg.Balance})
	session, err := server.NewSession(server.SessionOptions{
		Game:     g,
		Store:    saves,
		Slot:     cfg.Server.SaveSlot,
		Autosave: cfg.Server.Autosave,
		Logger:   logger,
	})
	if err != nil {
		_ = saves.Close()
		return nil, err
	}
	resumed, err := session.Resume(ctx)
	if err != nil {
		logger.Printf("resume slot %q: %v (starting fresh)", cfg.Server.SaveSlot, err)
	} else if resumed {
		logger.Printf("resumed slot %q", cfg.Server.SaveSlot)
	}

	h, err := server.NewHandler(server.Options{Session: session, Telemetry: events, Logger: logger})
	if err != nil {
		_ = saves.Close()
		return nil, err
	}
	return &app{handler: h, session: session, store: saves}, nil
}

func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	a, err := build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.store.Close()

	if cfg.Server.Realtime {
		r := &server.Runner{Session: a.session, Interval: cfg.Server.TickInterval, Logger: logger}
		go func() {
			if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Printf("runner: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s (store=%s slot=%s)", cfg.Server.Addr, cfg.Server.StoreDriver, cfg.Server.SaveSlot)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if cfg.Server.Autosave {
		if err := a.session.Save(shutdownCtx); err != nil {
			logger.Printf("final save: %v", err)
		}
	}
	return ctx.Err()
}
