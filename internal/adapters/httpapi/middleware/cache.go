package middleware

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/core/pagination"
	"inkwell/internal/metrics"
	"inkwell/internal/ports/pagecache"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// KeyFunc derives the part of the cache key that varies between requests.
// It must cover every request input the rendered body depends on.
type KeyFunc func(c *gin.Context) string

// PageKey keys on the normalized page number, so "?page=abc", "?page=0"
// and no parameter all share the page 1 entry.
func PageKey(c *gin.Context) string {
	return "page=" + strconv.Itoa(pagination.ParsePage(c.Query("page")))
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePage serves a stored copy of the handler's response for ttl.
// Only 200 responses are stored and writes elsewhere never invalidate an
// entry, so a page can be up to ttl stale. Backend failures fall through to
// the handler.
func CachePage(store pagecache.PageCache, prefix string, ttl time.Duration, keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := prefix + ":" + keyFn(c)

		entry, ok, err := store.Get(ctx, key)
		if err != nil {
			metrics.PageCacheErrors.WithLabelValues(prefix, "get").Inc()
			config.Logger.Warn("Page cache read failed", zap.String("key", key), zap.Error(err))
		}
		if ok {
			metrics.PageCacheHits.WithLabelValues(prefix).Inc()
			c.Data(entry.Status, entry.ContentType, entry.Body)
			c.Abort()
			return
		}
		metrics.PageCacheMisses.WithLabelValues(prefix).Inc()

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		if rec.Status() != http.StatusOK {
			return
		}
		err = store.Set(ctx, key, &pagecache.Entry{
			Status:      rec.Status(),
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		}, ttl)
		if err != nil {
			metrics.PageCacheErrors.WithLabelValues(prefix, "set").Inc()
			config.Logger.Warn("Page cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
}
