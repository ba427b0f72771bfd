package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/michael-h-patrianna/prizewheel-go/internal/api"
	"github.com/michael-h-patrianna/prizewheel-go/internal/config"
	"github.com/michael-h-patrianna/prizewheel-go/internal/prize"
	"github.com/michael-h-patrianna/prizewheel-go/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "[WHEELD] ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	pool, err := loadPool(cfg)
	if err != nil {
		logger.Fatalf("prize pool: %v", err)
	}
	logger.Printf("loaded prize pool source=%s prizes=%d", cfg.PoolSource, len(pool))

	var db store.DB
	if cfg.Persist() {
		sqlite, err := store.NewSQLiteDB(cfg.DBPath)
		if err != nil {
			logger.Fatalf("open database %s: %v", cfg.DBPath, err)
		}
		defer sqlite.Close()
		if err := sqlite.Migrate(); err != nil {
			logger.Fatalf("migrate database: %v", err)
		}
		db = sqlite
		logger.Printf("session store ready path=%s", cfg.DBPath)
	} else {
		logger.Printf("session persistence disabled")
	}

	server := api.NewServer(prize.NewProvider(pool, cfg.PoolSource), db)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("listening addr=%s engine_version=%s", cfg.HTTPAddr, api.EngineVersion)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}

func loadPool(cfg config.Config) ([]prize.Prize, error) {
	if cfg.PoolPath != "" {
		return prize.LoadPool(cfg.PoolPath)
	}
	return prize.DefaultPool()
}
