package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"yatstats/internal/models"
	"yatstats/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "yatstats:view:"

// ViewCache stores whole composite views keyed by tenant.
type ViewCache interface {
	// GetView returns nil, nil on a cache miss.
	GetView(ctx context.Context, tenantKey string) (*models.CompositeView, error)
	SetView(ctx context.Context, tenantKey string, view *models.CompositeView, ttl time.Duration) error
	DeleteView(ctx context.Context, tenantKey string) error
	Ping(ctx context.Context) error
	Close() error
}

// ViewKey returns the redis key holding tenantKey's view.
func ViewKey(tenantKey string) string {
	return keyPrefix + tenantKey
}

type redisViewCache struct {
	client *redis.Client
}

// NewRedisViewCache connects to addr, which is either host:port or a
// redis://, rediss:// or unix:// URL. Credentials and db carried by the URL
// win over password and db. A failed initial ping is logged, not returned.
func NewRedisViewCache(addr, password string, db int, log *logger.Logger) (ViewCache, error) {
	opts, err := redisOptions(addr, password, db)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	if log != nil {
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis ping failed on initialization", "addr", opts.Addr, "tls", opts.TLSConfig != nil, "error", err)
		} else {
			log.Debug("redis connection established", "addr", opts.Addr, "tls", opts.TLSConfig != nil)
		}
	}

	return &redisViewCache{client: client}, nil
}

func redisOptions(addr, password string, db int) (*redis.Options, error) {
	if !strings.Contains(addr, "://") {
		return &redis.Options{Addr: addr, Password: password, DB: db}, nil
	}

	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.Password == "" {
		opts.Password = password
	}
	if opts.DB == 0 {
		opts.DB = db
	}
	return opts, nil
}

func (r *redisViewCache) GetView(ctx context.Context, tenantKey string) (*models.CompositeView, error) {
	data, err := r.client.Get(ctx, ViewKey(tenantKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var view models.CompositeView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("decode cached view: %w", err)
	}
	if view.School == nil {
		return nil, nil
	}
	return &view, nil
}

func (r *redisViewCache) SetView(ctx context.Context, tenantKey string, view *models.CompositeView, ttl time.Duration) error {
	if view == nil || view.School == nil {
		return errors.New("refusing to cache an incomplete view")
	}
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, ViewKey(tenantKey), data, ttl).Err()
}

func (r *redisViewCache) DeleteView(ctx context.Context, tenantKey string) error {
	return r.client.Del(ctx, ViewKey(tenantKey)).Err()
}

func (r *redisViewCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisViewCache) Close() error {
	return r.client.Close()
}

type noopViewCache struct{}

// NewNoopViewCache returns a cache that never hits and stores nothing.
func NewNoopViewCache() ViewCache {
	return noopViewCache{}
}

func (noopViewCache) GetView(context.Context, string) (*models.CompositeView, error) {
	return nil, nil
}

func (noopViewCache) SetView(context.Context, string, *models.CompositeView, time.Duration) error {
	return nil
}

func (noopViewCache) DeleteView(context.Context, string) error { return nil }

func (noopViewCache) Ping(context.Context) error { return nil }

func (noopViewCache) Close() error { return nil }
