package offline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CacheKey derives the lookup key for a read: a pure function of method,
// path, and body. Replaying the same logical read always lands on the same
// entry; distinct reads never collide.
func CacheKey(method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{'\n'})
	h.Write([]byte(path))
	h.Write([]byte{'\n'})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// CachedResponse is a verbatim prior response plus its capture time.
type CachedResponse struct {
	Status   int         `json:"status"`
	Header   http.Header `json:"header"`
	Body     []byte      `json:"body"`
	StoredAt time.Time   `json:"storedAt"`
}

// ResponseCache is a named, file-backed response store. A zero TTL means
// entries never expire by age; the store name carries the version token
// instead, and invalidation happens by switching to a new name at deploy
// time (the static asset store). A nonzero TTL gives each entry a freshness
// window (the API store).
type ResponseCache struct {
	dir    string
	name   string
	ttl    time.Duration
	logger *slog.Logger

	mu sync.Mutex
}

func OpenResponseCache(dir, name string, ttl time.Duration, logger *slog.Logger) (*ResponseCache, error) {
	full := filepath.Join(dir, name)
	if err := os.MkdirAll(full, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &ResponseCache{dir: full, name: name, ttl: ttl, logger: logger}, nil
}

func (c *ResponseCache) Name() string { return c.name }

func (c *ResponseCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get returns the entry for key, or false on miss. Expired entries are
// removed opportunistically and reported as misses.
func (c *ResponseCache) Get(key string) (*CachedResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var resp CachedResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.Error("decode cache entry", "key", key, "error", err)
		os.Remove(c.path(key))
		return nil, false
	}

	if c.ttl > 0 && time.Since(resp.StoredAt) > c.ttl {
		os.Remove(c.path(key))
		return nil, false
	}

	return &resp, true
}

// Put stores or overwrites the entry for key.
func (c *ResponseCache) Put(key string, resp *CachedResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if resp.StoredAt.IsZero() {
		resp.StoredAt = time.Now()
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	tmp := c.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := os.Rename(tmp, c.path(key)); err != nil {
		return fmt.Errorf("commit cache entry: %w", err)
	}
	return nil
}

// Sweep deletes entries older than the freshness window. No-op for
// version-named stores without a TTL.
func (c *ResponseCache) Sweep() {
	if c.ttl == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		c.logger.Error("sweep cache", "cache", c.name, "error", err)
		return
	}

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > c.ttl {
			os.Remove(filepath.Join(c.dir, entry.Name()))
		}
	}
}

// Purge removes every entry in the store.
func (c *ResponseCache) Purge() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("purge cache: %w", err)
	}
	for _, entry := range entries {
		os.Remove(filepath.Join(c.dir, entry.Name()))
	}
	return nil
}

// dedupCache is the short-lived in-memory cache used to de-duplicate
// identical reads fired in quick succession (tens of seconds, not the
// hour-scale durable API cache).
type dedupCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]dedupEntry
}

type dedupEntry struct {
	resp     *CachedResponse
	storedAt time.Time
}

func newDedupCache(ttl time.Duration) *dedupCache {
	return &dedupCache{ttl: ttl, entries: make(map[string]dedupEntry)}
}

func (d *dedupCache) get(key string) (*CachedResponse, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry, ok := d.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.storedAt) > d.ttl {
		delete(d.entries, key)
		return nil, false
	}
	return entry.resp, true
}

func (d *dedupCache) set(key string, resp *CachedResponse) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[key] = dedupEntry{resp: resp, storedAt: time.Now()}
}
