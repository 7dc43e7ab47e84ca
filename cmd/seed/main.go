package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	ledgerapp "github.com/koprogo/ledger/internal/application/ledger"
	"github.com/koprogo/ledger/internal/infrastructure/config"
	"github.com/koprogo/ledger/internal/infrastructure/logger"
	"github.com/koprogo/ledger/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		orgIDArg string
		logLevel string
		timeout  time.Duration
	)

	flag.StringVar(&orgIDArg, "org-id", "", "Organization UUID to seed the chart of accounts for (required)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Seeding timeout")
	flag.Parse()

	if orgIDArg == "" {
		fmt.Fprintln(os.Stderr, "Usage: seed -org-id <uuid> [-log-level info] [-timeout 30s]")
		os.Exit(1)
	}

	orgID, err := uuid.Parse(orgIDArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid organization id %q: %v\n", orgIDArg, err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	accountRepo := persistence.NewGormAccountRepository(db.DB)
	seeder := ledgerapp.NewChartSeederService(accountRepo, log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	count, err := seeder.SeedChart(ctx, orgID)
	if err != nil {
		log.Fatal("Chart seeding failed",
			zap.String("organization_id", orgID.String()),
			zap.Error(err),
		)
	}

	log.Info("Chart of accounts seeded",
		zap.String("organization_id", orgID.String()),
		zap.Int("accounts", count),
	)
}
