package bootstrap

import (
	"context"

	"courtbook/internal/infra/cache"
	"courtbook/internal/infra/readstore"
	"courtbook/internal/pkg/config"
	"courtbook/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewCourtViewRepo,
	),
)

// NewCourtViewRepo serves the court catalog straight from Postgres, wrapped
// in the Redis cache when an address is configured. Everything else reads
// the database directly.
func NewCourtViewRepo(lc fx.Lifecycle, cfg config.Config, pool *pgxpool.Pool) (queries.CourtViewRepo, error) {
	store := readstore.NewCourtReadStore(pool)
	if cfg.Redis.Addr == "" {
		return store, nil
	}

	client, cleanup, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return cache.NewCourtCatalogCache(store, client, cfg.Redis.CatalogTTL), nil
}
