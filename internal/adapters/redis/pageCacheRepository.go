package redis

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/ports/pagecache"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// PageCacheRepositoryRedis keeps rendered pages as JSON strings with a TTL.
type PageCacheRepositoryRedis struct {
	Client *redis.Client
	Prefix string
}

func NewPageCacheRepositoryRedis(client *redis.Client, prefix string) *PageCacheRepositoryRedis {
	return &PageCacheRepositoryRedis{
		Client: client,
		Prefix: prefix,
	}
}

func (r *PageCacheRepositoryRedis) key(key string) string {
	if r.Prefix == "" {
		return key
	}
	return r.Prefix + ":" + key
}

func (r *PageCacheRepositoryRedis) Get(ctx context.Context, key string) (*pagecache.Entry, bool, error) {
	raw, err := r.Client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry pagecache.Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next render.
		config.Logger.Warn("Dropping unreadable cache entry", zap.String("key", r.key(key)), zap.Error(err))
		return nil, false, nil
	}
	return &entry, true, nil
}

func (r *PageCacheRepositoryRedis) Set(ctx context.Context, key string, entry *pagecache.Entry, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, r.key(key), raw, ttl).Err()
}
