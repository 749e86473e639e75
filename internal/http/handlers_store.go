package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
)

// itemView is the template model for a single catalog entry. Stats is
// provider-authored markup and is rendered as-is.
type itemView struct {
	Name        string
	Price       string
	Rarity      string
	Preview     string
	Description string
	Stats       template.HTML
	Free        bool
}

func newItemView(it core.Item) itemView {
	return itemView{
		Name:        it.Name,
		Price:       it.Price.Format(),
		Rarity:      it.Rarity,
		Preview:     it.Preview,
		Description: it.Description,
		Stats:       template.HTML(it.Stats),
		Free:        it.Price.IsZero(),
	}
}

// handleStore renders one store front as an HTML partial.
func (s *Server) handleStore(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	cat, err := s.getCatalog(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Catalog load error", "error", err)
		_, _ = w.Write([]byte(`<section class="store"><div class="placeholder">The merchant is away, try again shortly</div></section>`))
		return
	}

	key := sanitizeInput(r.URL.Query().Get("store"))
	info, ok := cat.Store(key)
	if !ok {
		slog.WarnContext(r.Context(), "Unknown store requested", "store", key)
		NotFoundError("No such store").Write(w)
		return
	}

	data := struct {
		Store core.StoreInfo
		Items []itemView
	}{Store: info}
	for _, it := range cat.ItemsFor(key) {
		data.Items = append(data.Items, newItemView(it))
	}

	if err := s.templates.ExecuteTemplate(w, "store.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "store.html", "store", key)
		_, _ = w.Write([]byte(`<section class="store"><div class="placeholder">Could not render store</div></section>`))
	}
}

// handleItem renders the item detail partial, including affordability
// for the caller's purse. Items no longer in the catalog but present in
// the purchase history get a placeholder entry so receipts stay
// clickable.
func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	sess, err := s.currentSession(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session setup error", "error", err)
		InternalServerError("Could not resolve session").Write(w)
		return
	}

	cat, err := s.getCatalog(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Catalog load error", "error", err)
		InternalServerError("Catalog unavailable").Write(w)
		return
	}

	storeKey := sanitizeInput(r.URL.Query().Get("store"))
	name := sanitizeInput(r.URL.Query().Get("name"))
	if name == "" {
		BadRequestError("Missing item name").Write(w)
		return
	}

	item, found := core.Item{}, false
	if storeKey != "" {
		item, found = cat.Item(storeKey, name)
	}
	if !found {
		item, found = cat.Find(name)
	}

	// The history scan and affordability reads run under the session
	// lock so they see a consistent ledger.
	var (
		owned             bool
		change, shortfall core.Money
		affordable        bool
		wallet            core.Money
	)
	_ = sess.Do(func(l *core.Ledger) error {
		if !found {
			for _, t := range l.Purchased() {
				if t.ItemName == name {
					item = cat.Entry(t)
					found, owned = true, true
					break
				}
			}
		}
		if !found {
			return nil
		}
		change, affordable = l.CalculateChange(item.Price)
		if !affordable {
			shortfall = l.Shortfall(item.Price)
		}
		wallet = l.Wallet()
		return nil
	})
	if !found {
		NotFoundError("No such item").Write(w)
		return
	}

	data := struct {
		Store     string
		Item      itemView
		Owned     bool
		Funded    bool
		Change    string
		Shortfall string
		Wallet    walletView
	}{
		Store:  storeKey,
		Item:   newItemView(item),
		Owned:  owned,
		Funded: affordable,
		Wallet: newWalletView(wallet),
	}
	if affordable {
		data.Change = change.Format()
	} else {
		data.Shortfall = shortfall.Format()
	}

	if err := s.templates.ExecuteTemplate(w, "item.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "item.html", "item", name)
		InternalServerError("Could not render item").Write(w)
	}
}
