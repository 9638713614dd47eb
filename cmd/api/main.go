package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/fmorais/spendly/internal/config"
	"github.com/fmorais/spendly/internal/database"
	"github.com/fmorais/spendly/internal/expense"
	"github.com/fmorais/spendly/internal/expense/store/postgres"
	"github.com/fmorais/spendly/internal/expense/store/sqlite"
	spendlyHttp "github.com/fmorais/spendly/internal/http"
	analyticsHandler "github.com/fmorais/spendly/internal/http/analytics"
	expenseHandler "github.com/fmorais/spendly/internal/http/expense"
	exportHandler "github.com/fmorais/spendly/internal/http/export"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := newStore(cfg)
	if err != nil {
		slog.Error("failed to open expense store", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	expenseService := expense.NewService(store)

	var (
		expenseH   = expenseHandler.NewHandler(expenseService)
		analyticsH = analyticsHandler.NewHandler(expenseService)
		exportH    = exportHandler.NewHandler(expenseService)
	)

	router := spendlyHttp.New(expenseH, analyticsH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "backend", cfg.Storage.Backend)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// newStore selects the record store backend once at startup.
func newStore(cfg *config.Config) (expense.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.Storage.SQLitePath, cfg.Owner)
		if err != nil {
			return nil, nil, err
		}

		return store, func() { store.Close() }, nil

	default:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		if err := postgres.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}

		return postgres.New(db, cfg.Owner), func() { db.Close() }, nil
	}
}
