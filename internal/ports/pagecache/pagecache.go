package pagecache

import (
	"context"
	"time"
)

// Entry is a rendered response kept verbatim.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type PageCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, key string) (entry *Entry, ok bool, err error)
	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error
}
