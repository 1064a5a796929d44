// Package backend opens the server-side cart storage selected by configuration.
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Skotchmaster/sakhi_shop/pkg/db"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/cart"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/config"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/repo"
)

type Resources struct {
	// Carts is nil for the cookie backend.
	Carts cart.Backend
	DB    *gorm.DB
	Redis *redis.Client
}

func Open(ctx context.Context, cfg *config.Config) (*Resources, error) {
	switch cfg.CartBackend {
	case config.BackendCookie:
		return &Resources{}, nil

	case config.BackendMemory:
		return &Resources{Carts: repo.NewMemoryBackend()}, nil

	case config.BackendSQL:
		gdb, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		r := &repo.GormRepo{DB: gdb}
		if err := r.Migrate(ctx); err != nil {
			_ = db.Close(gdb)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return &Resources{Carts: r, DB: gdb}, nil

	case config.BackendRedis:
		rdb, err := repo.RedisConfig{
			URL:          cfg.RedisURL,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		}.New(ctx)
		if err != nil {
			return nil, err
		}
		return &Resources{Carts: repo.NewRedisBackend(rdb, cfg.CartTTL), Redis: rdb}, nil
	}
	return nil, fmt.Errorf("unknown cart backend %q", cfg.CartBackend)
}

// Ready pings whatever the backend depends on.
func (r *Resources) Ready(ctx context.Context) error {
	if r.DB != nil {
		sqlDB, err := r.DB.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
	}
	if r.Redis != nil {
		if err := r.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
	}
	return nil
}

// Purge deletes the stored cart for sessionID. A session with nothing stored is not an error.
func (r *Resources) Purge(ctx context.Context, sessionID string) error {
	switch b := r.Carts.(type) {
	case *repo.GormRepo:
		if err := b.DeleteState(ctx, sessionID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("delete cart row: %w", err)
		}
		return nil
	case *repo.RedisBackend:
		if err := b.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("delete cart key: %w", err)
		}
		return nil
	case *repo.MemoryBackend:
		return b.Delete(ctx, sessionID)
	}
	return fmt.Errorf("cart backend %T cannot purge", r.Carts)
}

func (r *Resources) Close() error {
	var errs []error
	if r.DB != nil {
		errs = append(errs, db.Close(r.DB))
	}
	if r.Redis != nil {
		errs = append(errs, r.Redis.Close())
	}
	return errors.Join(errs...)
}
