package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/cabinbooking/config"
	"github.com/Domenick1991/cabinbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RecordStore interface {
	Append(ctx context.Context, record domain.Record) error
	Remove(ctx context.Context, seat string) error
	List(ctx context.Context) ([]domain.Record, error)
}

// OpenStore connects the backend named by cfg.Storage.Driver. The returned
// func releases its connections.
func OpenStore(ctx context.Context, cfg *config.Config) (RecordStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageFile, "":
		return NewFileStore(cfg.Storage.Path), func() {}, nil

	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		repo := NewPGRecordRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil

	case config.StorageRedis:
		store := NewRedisRecordStore(cfg.Redis)
		if err := store.client.Ping(ctx).Err(); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

var (
	_ RecordStore = (*FileStore)(nil)
	_ RecordStore = (*PGRecordRepository)(nil)
	_ RecordStore = (*RedisRecordStore)(nil)
)
