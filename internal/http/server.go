package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/cache"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/catalog"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/events"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/session"
	appweb "github.com/paulinadupin/the-dms-merchant-screen/web"
)

const catalogCacheKey = "catalog"

// Options tunes server behavior beyond the required collaborators.
type Options struct {
	CatalogCacheTTL time.Duration
	Publisher       events.Publisher
}

type Server struct {
	http.Server
	templates *template.Template
	loader    catalog.Loader
	sessions  *session.Manager
	publisher events.Publisher

	rateLimiter *rateLimiter
	metrics     *securityMetrics

	// One cached catalog snapshot; the key space exists so future
	// multi-spreadsheet setups can reuse the cache.
	catalogCache     *cache.LRUCache[*core.Catalog]
	stopCacheCleanup func()
	shutdownOnce     sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, loader catalog.Loader, sessions *session.Manager, opts Options) *Server {
	mux := http.NewServeMux()

	ttl := opts.CatalogCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		loader:       loader,
		sessions:     sessions,
		publisher:    opts.Publisher,
		rateLimiter:  newRateLimiter(),
		metrics:      &securityMetrics{},
		catalogCache: cache.NewLRUCache[*core.Catalog](4, ttl),
	}
	s.stopCacheCleanup = s.catalogCache.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metricz", s.handleMetrics)
	mux.HandleFunc("/catalog/refresh", s.withSecurityHeaders(s.handleCatalogRefresh))

	mux.HandleFunc("/session", s.withSecurityHeaders(s.handleCreateSession))
	mux.HandleFunc("/session/reset", s.withSecurityHeaders(s.handleResetSession))

	// UI partials
	mux.HandleFunc("/ui/store", s.withSecurityHeaders(s.handleStore))
	mux.HandleFunc("/ui/item", s.withSecurityHeaders(s.handleItem))
	mux.HandleFunc("/ui/wallet", s.withSecurityHeaders(s.handleWallet))
	mux.HandleFunc("/ui/summary", s.withSecurityHeaders(s.handleSummary))

	mux.HandleFunc("/purchase", s.withSecurityHeaders(s.handlePurchase))
	mux.HandleFunc("/sell", s.withSecurityHeaders(s.handleSell))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			s.stopCacheCleanup()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// getCatalog returns the cached catalog, loading it from the backend on
// a miss.
func (s *Server) getCatalog(ctx context.Context) (*core.Catalog, error) {
	if cat, found := s.catalogCache.Get(catalogCacheKey); found {
		slog.DebugContext(ctx, "Catalog cache hit")
		return cat, nil
	}

	if s.loader == nil {
		return nil, fmt.Errorf("no catalog backend configured")
	}

	// A slow sheet read should not hang a partial indefinitely.
	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	cat, err := s.loader.Load(cctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	s.catalogCache.Set(catalogCacheKey, cat)
	slog.DebugContext(ctx, "Catalog cached", "stores", len(cat.Stores))
	return cat, nil
}

func (s *Server) invalidateCatalog() {
	s.catalogCache.Delete(catalogCacheKey)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.getCatalog(r.Context()); err != nil {
		slog.WarnContext(r.Context(), "Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("catalog unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
