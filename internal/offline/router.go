package offline

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/songphoh/temp-trackerV3/internal/upstream"
)

// Strategy is the resolution path chosen for an intercepted request.
type Strategy int

const (
	StrategyPassthrough Strategy = iota
	StrategyCacheFirst
	StrategyAPIFallback
	StrategyDocument
)

func (s Strategy) String() string {
	switch s {
	case StrategyCacheFirst:
		return "cache-first"
	case StrategyAPIFallback:
		return "network-first-with-fallback"
	case StrategyDocument:
		return "network-first"
	default:
		return "passthrough"
	}
}

var staticSuffixes = []string{
	".css", ".js", ".png", ".jpg", ".jpeg", ".svg", ".ico",
	".woff", ".woff2", ".html", ".webmanifest",
}

// cacheableAPIPaths is the explicit allow-list of read endpoints eligible
// for the durable API cache. Anything else under /api/ is always attempted
// live, with only the synthesizer as fallback.
var cacheableAPIPaths = []string{
	"/api/employees",
	"/api/dashboard/summary",
	"/api/config",
}

const offlinePagePath = "/offline.html"

// Router intercepts requests from the kiosk UI and dispatches each to the
// strategy for its resource class. Mutating requests are not routed here;
// the Recorder owns those.
type Router struct {
	upstream *upstream.Client
	static   *ResponseCache
	api      *ResponseCache
	dedup    *dedupCache
	synth    *Synthesizer
	logger   *slog.Logger
}

func NewRouter(client *upstream.Client, static, api *ResponseCache, dedupTTL time.Duration, synth *Synthesizer, logger *slog.Logger) *Router {
	return &Router{
		upstream: client,
		static:   static,
		api:      api,
		dedup:    newDedupCache(dedupTTL),
		synth:    synth,
		logger:   logger,
	}
}

// Classify decides the strategy for a request. Pure: no side effects, same
// answer for the same request every time.
func (rt *Router) Classify(r *http.Request) Strategy {
	if r.URL.IsAbs() && r.URL.Host != rt.upstream.Origin().Host {
		return StrategyPassthrough
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return StrategyPassthrough
	}

	if isStaticPath(r.URL.Path) {
		return StrategyCacheFirst
	}

	if strings.HasPrefix(r.URL.Path, "/api/") {
		return StrategyAPIFallback
	}

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		return StrategyDocument
	}

	return StrategyPassthrough
}

func isStaticPath(path string) bool {
	if path == "/" {
		return true
	}
	for _, suffix := range staticSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// isDocumentPath marks the static paths that render as a page. Only these
// may fall back to the offline placeholder document; other asset types must
// surface the failure rather than answer with HTML.
func isDocumentPath(path string) bool {
	return path == "/" || strings.HasSuffix(path, ".html")
}

func isCacheableAPIPath(path string) bool {
	for _, prefix := range cacheableAPIPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch rt.Classify(r) {
	case StrategyCacheFirst:
		rt.serveCacheFirst(w, r)
	case StrategyAPIFallback:
		rt.serveAPIFallback(w, r)
	case StrategyDocument:
		rt.serveDocument(w, r)
	default:
		rt.servePassthrough(w, r)
	}
}

// fetch performs the upstream request and captures the full response.
func (rt *Router) fetch(r *http.Request) (*CachedResponse, error) {
	resp, err := rt.upstream.Do(r.Context(), r.Method, r.URL.RequestURI(), r.Header, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &CachedResponse{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}, nil
}

func writeCached(w http.ResponseWriter, resp *CachedResponse, cacheServed bool) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	if cacheServed {
		w.Header().Set("X-Served-From", "cache")
		w.Header().Set("X-Cache-Date", resp.StoredAt.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(resp.Status)
	w.Write(resp.Body)
}

// serveCacheFirst answers static assets. A hit never touches the network;
// freshness is handled by the version token in the store name, not per
// entry.
func (rt *Router) serveCacheFirst(w http.ResponseWriter, r *http.Request) {
	key := CacheKey(r.Method, r.URL.RequestURI(), nil)

	if cached, ok := rt.static.Get(key); ok {
		writeCached(w, cached, false)
		return
	}

	resp, err := rt.fetch(r)
	if err != nil {
		rt.logger.Warn("static fetch failed", "path", r.URL.Path, "error", err)
		if isDocumentPath(r.URL.Path) {
			rt.serveOfflinePage(w)
			return
		}
		http.Error(w, "upstream unreachable", http.StatusBadGateway)
		return
	}

	if resp.Status < 300 {
		if err := rt.static.Put(key, resp); err != nil {
			rt.logger.Error("static cache write failed", "path", r.URL.Path, "error", err)
		}
	}

	writeCached(w, resp, false)
}

// serveAPIFallback answers API reads: network first, durable cache on
// failure, synthesizer when the cache cannot help either.
func (rt *Router) serveAPIFallback(w http.ResponseWriter, r *http.Request) {
	key := CacheKey(r.Method, r.URL.RequestURI(), nil)

	if recent, ok := rt.dedup.get(key); ok {
		writeCached(w, recent, false)
		return
	}

	resp, err := rt.fetch(r)
	if err == nil && resp.Status < 300 {
		if isCacheableAPIPath(r.URL.Path) {
			if putErr := rt.api.Put(key, resp); putErr != nil {
				rt.logger.Error("api cache write failed", "path", r.URL.Path, "error", putErr)
			}
			rt.dedup.set(key, resp)
		}
		writeCached(w, resp, false)
		return
	}

	if err != nil {
		rt.logger.Warn("api fetch failed", "path", r.URL.Path, "error", err)
	} else {
		rt.logger.Warn("api fetch rejected", "path", r.URL.Path, "status", resp.Status)
	}

	if cached, ok := rt.api.Get(key); ok {
		writeCached(w, cached, true)
		return
	}

	rt.synth.Respond(w, r.URL.Path)
}

// serveDocument answers HTML navigations: network first, cached copy on
// failure, then the pre-cached offline page.
func (rt *Router) serveDocument(w http.ResponseWriter, r *http.Request) {
	key := CacheKey(r.Method, r.URL.RequestURI(), nil)

	resp, err := rt.fetch(r)
	if err == nil && resp.Status < 300 {
		if putErr := rt.static.Put(key, resp); putErr != nil {
			rt.logger.Error("document cache write failed", "path", r.URL.Path, "error", putErr)
		}
		writeCached(w, resp, false)
		return
	}

	if cached, ok := rt.static.Get(key); ok {
		writeCached(w, cached, true)
		return
	}

	rt.serveOfflinePage(w)
}

func (rt *Router) servePassthrough(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
	}

	resp, err := rt.upstream.Do(r.Context(), r.Method, r.URL.RequestURI(), r.Header, body)
	if err != nil {
		rt.logger.Warn("passthrough failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "upstream unreachable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}

const defaultOfflinePage = `<!doctype html>
<html lang="th">
<head><meta charset="utf-8"><title>Offline</title></head>
<body><h1>ไม่มีการเชื่อมต่อ</h1><p>The time clock is offline. Queued actions will be sent when connectivity returns.</p></body>
</html>`

// PrecacheOfflinePage seeds the offline placeholder document so navigations
// always have a last-resort answer. Called once at agent startup.
func (rt *Router) PrecacheOfflinePage() error {
	key := CacheKey(http.MethodGet, offlinePagePath, nil)
	header := http.Header{}
	header.Set("Content-Type", "text/html; charset=utf-8")
	return rt.static.Put(key, &CachedResponse{
		Status: http.StatusOK,
		Header: header,
		Body:   []byte(defaultOfflinePage),
	})
}

func (rt *Router) serveOfflinePage(w http.ResponseWriter) {
	key := CacheKey(http.MethodGet, offlinePagePath, nil)
	if cached, ok := rt.static.Get(key); ok {
		writeCached(w, cached, true)
		return
	}
	http.Error(w, "offline", http.StatusServiceUnavailable)
}
