package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"mineral-catalog-service/internal/metrics"
)

type cacheEntry struct {
	Path        string
	Content     []byte
	ContentType string
	Header      http.Header
	Expiration  time.Time
}

// ResponseCache keeps successful GET responses in memory
type ResponseCache struct {
	mu    sync.RWMutex
	items map[string]cacheEntry
	hits  uint64
	miss  uint64

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

// NewResponseCache starts a cache whose janitor sweeps expired entries every interval
func NewResponseCache(interval time.Duration) *ResponseCache {
	rc := &ResponseCache{
		items: make(map[string]cacheEntry),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if interval > 0 {
		go rc.janitor(interval)
	}
	return rc
}

func (rc *ResponseCache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rc.cleanExpired()
		case <-rc.stop:
			return
		}
	}
}

// Close stops the janitor
func (rc *ResponseCache) Close() {
	rc.once.Do(func() { close(rc.stop) })
}

func (rc *ResponseCache) cleanExpired() {
	now := rc.now()
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for key, entry := range rc.items {
		if entry.Expiration.Before(now) {
			delete(rc.items, key)
		}
	}
}

// cacheKey hashes path, sorted query and caller so users never share favorite flags
func cacheKey(c *gin.Context) string {
	query := c.Request.URL.Query()
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(c.Request.URL.Path)
	b.WriteByte('?')
	for _, key := range keys {
		values := query[key]
		sort.Strings(values)
		for _, value := range values {
			b.WriteString(key + "=" + value + "&")
		}
	}
	if id := UserID(c); id != nil {
		fmt.Fprintf(&b, "#user=%d", *id)
	}

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Handler caches 200 responses of GET requests for ttl
func (rc *ResponseCache) Handler(ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)
		rc.mu.RLock()
		entry, found := rc.items[key]
		rc.mu.RUnlock()

		if found && entry.Expiration.After(rc.now()) {
			rc.record(true)
			for name, values := range entry.Header {
				for _, v := range values {
					c.Writer.Header().Add(name, v)
				}
			}
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, entry.ContentType, entry.Content)
			c.Abort()
			return
		}
		rc.record(false)

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		if writer.Status() != http.StatusOK {
			return
		}
		header := http.Header{}
		if total := writer.Header().Get("X-Total-Count"); total != "" {
			header.Set("X-Total-Count", total)
		}
		rc.mu.Lock()
		rc.items[key] = cacheEntry{
			Path:        c.Request.URL.Path,
			Content:     writer.body.Bytes(),
			ContentType: writer.Header().Get("Content-Type"),
			Header:      header,
			Expiration:  rc.now().Add(ttl),
		}
		rc.mu.Unlock()
	}
}

func (rc *ResponseCache) record(hit bool) {
	rc.mu.Lock()
	if hit {
		rc.hits++
	} else {
		rc.miss++
	}
	rc.mu.Unlock()
	metrics.RecordCacheLookup(hit)
}

// Purge removes every cached response
func (rc *ResponseCache) Purge() {
	rc.mu.Lock()
	rc.items = make(map[string]cacheEntry)
	rc.mu.Unlock()
}

// PurgePrefix removes cached responses for the path prefix and the paths below it
func (rc *ResponseCache) PurgePrefix(prefix string) {
	prefix = strings.TrimRight(prefix, "/")
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for key, entry := range rc.items {
		if entry.Path == prefix || strings.HasPrefix(entry.Path, prefix+"/") {
			delete(rc.items, key)
		}
	}
}

// InvalidateOnWrite purges the cache after a successful mutating request.
// With prefixes only those paths are purged, otherwise everything is.
func (rc *ResponseCache) InvalidateOnWrite(prefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			return
		}
		if status := c.Writer.Status(); status < 200 || status >= 300 {
			return
		}
		if len(prefixes) == 0 {
			rc.Purge()
			return
		}
		for _, prefix := range prefixes {
			rc.PurgePrefix(prefix)
		}
	}
}

// Stats reports the cache contents
func (rc *ResponseCache) Stats() map[string]interface{} {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	now := rc.now()
	items := make([]map[string]interface{}, 0, len(rc.items))
	for key, entry := range rc.items {
		items = append(items, map[string]interface{}{
			"key":        key,
			"path":       entry.Path,
			"size":       len(entry.Content),
			"expiration": entry.Expiration.Format(time.RFC3339),
			"expired":    entry.Expiration.Before(now),
		})
	}
	return map[string]interface{}{
		"total_items": len(rc.items),
		"hits":        rc.hits,
		"misses":      rc.miss,
		"items":       items,
	}
}

// responseWriter copies the body while it is written
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
