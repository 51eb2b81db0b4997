package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"courtbook/internal/pkg/config"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const courtCatalogKey = "catalog:courts"

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, errs.Wrap(err, "failed to ping redis")
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err.Error())
		}
	}
	return client, cleanup, nil
}

// CourtCatalogCache caches the court list in Redis. The catalog changes
// rarely and is read on every availability request, so a short TTL is enough;
// cache failures fall back to the database rather than failing the read.
type CourtCatalogCache struct {
	inner  queries.CourtViewRepo
	client *redis.Client
	ttl    time.Duration
}

func NewCourtCatalogCache(inner queries.CourtViewRepo, client *redis.Client, ttl time.Duration) queries.CourtViewRepo {
	return &CourtCatalogCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

func (c *CourtCatalogCache) FindAll(ctx context.Context) ([]*queries.CourtView, error) {
	cached, err := c.client.Get(ctx, courtCatalogKey).Bytes()
	if err == nil {
		var views []*queries.CourtView
		if unmarshalErr := json.Unmarshal(cached, &views); unmarshalErr == nil {
			return views, nil
		}
		// Corrupt cache entry, fall through and rebuild
	} else if err != redis.Nil {
		slog.Warn("court catalog cache read failed", "error", err.Error())
	}

	views, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if payload, marshalErr := json.Marshal(views); marshalErr == nil {
		if setErr := c.client.Set(ctx, courtCatalogKey, payload, c.ttl).Err(); setErr != nil {
			slog.Warn("court catalog cache write failed", "error", setErr.Error())
		}
	}
	return views, nil
}

// FindByID bypasses the cache: single-court reads sit on the command path
// where staleness is not acceptable.
func (c *CourtCatalogCache) FindByID(ctx context.Context, id uuid.UUID) (*queries.CourtView, error) {
	return c.inner.FindByID(ctx, id)
}
