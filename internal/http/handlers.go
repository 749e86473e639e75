package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
)

// walletView is the template model for the coin purse panel.
type walletView struct {
	Gold      int
	Silver    int
	Copper    int
	Formatted string
}

func newWalletView(m core.Money) walletView {
	return walletView{
		Gold:      m.Gold,
		Silver:    m.Silver,
		Copper:    m.Copper,
		Formatted: m.Format(),
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	sess, err := s.currentSession(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session setup error", "error", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	cat, err := s.getCatalog(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Catalog load error", "error", err)
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		return
	}

	var firstStore string
	if len(cat.Stores) > 0 {
		firstStore = cat.Stores[0].Key
	}

	var wallet core.Money
	_ = sess.Do(func(l *core.Ledger) error {
		wallet = l.Wallet()
		return nil
	})

	data := struct {
		Site       core.SiteConfig
		Stores     []core.StoreInfo
		FirstStore string
		Wallet     walletView
	}{
		Site:       cat.Site,
		Stores:     cat.Stores,
		FirstStore: firstStore,
		Wallet:     newWalletView(wallet),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleMetrics provides application and security metrics in plain text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP sessions_active Live shopping sessions\n")
	fmt.Fprintf(w, "# TYPE sessions_active gauge\n")
	fmt.Fprintf(w, "sessions_active %d\n\n", s.sessions.ActiveSessions())

	fmt.Fprintf(w, "# HELP catalog_cache_entries Cached catalog snapshots\n")
	fmt.Fprintf(w, "# TYPE catalog_cache_entries gauge\n")
	fmt.Fprintf(w, "catalog_cache_entries %d\n\n", s.catalogCache.Size())

	fmt.Fprintf(w, "# HELP rate_limiter_clients Tracked client IPs\n")
	fmt.Fprintf(w, "# TYPE rate_limiter_clients gauge\n")
	fmt.Fprintf(w, "rate_limiter_clients %d\n\n", s.rateLimiter.ActiveClients())

	fmt.Fprintf(w, "# HELP rate_limit_hits_total Requests rejected by the rate limiter\n")
	fmt.Fprintf(w, "# TYPE rate_limit_hits_total counter\n")
	fmt.Fprintf(w, "rate_limit_hits_total %d\n\n", atomic.LoadInt64(&s.metrics.rateLimitHits))

	fmt.Fprintf(w, "# HELP suspicious_requests_total Requests matching threat patterns\n")
	fmt.Fprintf(w, "# TYPE suspicious_requests_total counter\n")
	fmt.Fprintf(w, "suspicious_requests_total %d\n", atomic.LoadInt64(&s.metrics.suspiciousRequests))
}

// handleCatalogRefresh drops the cached catalog so the next render
// reloads it from the backend.
func (s *Server) handleCatalogRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	s.invalidateCatalog()
	slog.InfoContext(r.Context(), "Catalog cache invalidated")
	NewHTMXResponse().
		TriggerSuccessNotification("Catalog will reload on the next view").
		BodyHTML(`<div class="success">Catalog refreshed</div>`).
		Write(w)
}
