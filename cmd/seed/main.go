// Command seed applies migrations and loads the embedded glossary fixtures,
// then exits. Useful for local setups and CI databases without flipping
// LOAD_FIXTURES on the API process.
package main

import (
	"context"
	"log/slog"
	"os"

	glossarymigrations "github.com/ghuser/glossary/migrations/glossary"
	"github.com/ghuser/glossary/pkg/config"
	"github.com/ghuser/glossary/pkg/database"
	"github.com/ghuser/glossary/pkg/logger"
	"github.com/ghuser/glossary/pkg/migrator"
	"github.com/ghuser/glossary/services/glossary/application/fixtures"
	appsvcs "github.com/ghuser/glossary/services/glossary/application/services"
	"github.com/ghuser/glossary/services/glossary/infrastructure/persistence/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	ctx := context.Background()

	if err := migrator.RunMigrations(cfg.DatabaseURL, glossarymigrations.FS); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Seeding bypasses the event bus and cache; rows written here are picked
	// up by read-throughs like any other data.
	repo := postgres.NewTermRepository(pool, nil)
	svc := appsvcs.NewTermService(repo, nil, log)

	res, err := fixtures.NewLoader(svc, log).Load(ctx)
	if err != nil {
		log.Error("failed to load fixtures", "error", err,
			"created", res.Created, "skipped", res.Skipped, "failed", res.Failed)
		os.Exit(1)
	}
	log.Info("seed complete", "created", res.Created, "skipped", res.Skipped)
}
