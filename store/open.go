package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/amonks/mindcache/internal/config"
	"github.com/amonks/mindcache/item"
)

// Backend is a store that also reports invalidations and holds resources.
type Backend interface {
	item.Store
	item.Watcher
	io.Closer
}

var (
	_ Backend = (*File)(nil)
	_ Backend = (*Redis)(nil)
	_ Backend = (*Postgres)(nil)
)

// Open connects to the backend named by cfg. now stamps new items and may be
// nil.
func Open(ctx context.Context, cfg config.Store, now func() time.Time) (Backend, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return OpenFile(cfg.Path, FileOptions{Now: now})
	case config.BackendRedis:
		return OpenRedis(ctx, cfg.RedisURL, RedisOptions{Now: now})
	case config.BackendPostgres:
		return OpenPostgres(ctx, cfg.PostgresDSN, PostgresOptions{Now: now})
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}
