// Applies the embedded schema migrations, optionally followed by the demo
// seed data.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"courtbook/internal/infra/db"
	"courtbook/internal/pkg/config"
)

func main() {
	seed := flag.Bool("seed", false, "load demo catalog and pricing rules after migrating")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(cfg.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")

	if !*seed {
		return
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		slog.Error("failed to connect for seeding", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := db.Seed(context.Background(), pool); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed data loaded")
}
