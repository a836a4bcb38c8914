package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when no document is cached
var ErrCacheMiss = errors.New("document not cached")

type Config struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	Key      string
	TTL      time.Duration
}

// DocumentCache keeps the raw events document for the public read path
type DocumentCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewDocumentCache(cfg Config) (*DocumentCache, error) {
	if cfg.Key == "" {
		cfg.Key = "basstatic:events"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &DocumentCache{
		client: rdb,
		key:    cfg.Key,
		ttl:    cfg.TTL,
	}, nil
}

// Get returns the cached document bytes
func (dc *DocumentCache) Get(ctx context.Context) ([]byte, error) {
	data, err := dc.client.Get(ctx, dc.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

// Set stores the document; a zero TTL keeps it until invalidated
func (dc *DocumentCache) Set(ctx context.Context, data []byte) error {
	if err := dc.client.Set(ctx, dc.key, data, dc.ttl).Err(); err != nil {
		return fmt.Errorf("cache store error: %w", err)
	}
	return nil
}

// Invalidate drops the cached document after a commit
func (dc *DocumentCache) Invalidate(ctx context.Context) error {
	if err := dc.client.Del(ctx, dc.key).Err(); err != nil {
		return fmt.Errorf("cache invalidate error: %w", err)
	}
	return nil
}

func (dc *DocumentCache) Close() error {
	return dc.client.Close()
}
