package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	pg "adoptme/internal/adapters/storage/postgres"
	"adoptme/internal/config"
	"adoptme/internal/platform/logger"
	"adoptme/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = pg.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("failed to connect to database", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		if err := pg.EnsureSchema(context.Background(), db); err != nil {
			log.Fatal("failed to ensure schema", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		log.Info("connected to database", nil)
	} else {
		log.Warn("DATABASE_URL empty: using in-memory store", nil)
	}

	h, err := router.New(router.Options{Cfg: cfg, Log: log, DB: db})
	if err != nil {
		log.Fatal("failed to build router", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
