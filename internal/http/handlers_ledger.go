package http

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/events"
)

// renderWallet executes the wallet partial into the given response
// builder and writes it.
func (s *Server) renderWallet(w http.ResponseWriter, r *http.Request, wallet core.Money, b *HTMXResponseBuilder) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "wallet.html", newWalletView(wallet)); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "wallet.html")
		InternalServerError("Could not render wallet").Write(w)
		return
	}
	b.BodyHTML(buf.String()).Write(w)
}

// handleWallet renders the current purse as a partial.
func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session setup error", "error", err)
		InternalServerError("Could not resolve session").Write(w)
		return
	}
	var wallet core.Money
	_ = sess.Do(func(l *core.Ledger) error {
		wallet = l.Wallet()
		return nil
	})
	s.renderWallet(w, r, wallet, NewHTMXResponse())
}

// transactionView is the template model for one summary line.
type transactionView struct {
	Name  string
	Price string
}

// handleSummary renders the session recap partial.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	sess, err := s.currentSession(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session setup error", "error", err)
		InternalServerError("Could not resolve session").Write(w)
		return
	}

	var sum core.Summary
	if err := s.sessions.Do(sess.ID, func(l *core.Ledger) error {
		sum = l.Summarize()
		return nil
	}); err != nil {
		slog.ErrorContext(r.Context(), "Summary error", "error", err, "session_id", sess.ID)
		InternalServerError("Could not build summary").Write(w)
		return
	}

	data := struct {
		Purchased       []transactionView
		Sold            []transactionView
		TotalSpent      string
		TotalEarned     string
		StartingBalance string
		Wallet          string
		Net             string
		NetNegative     bool
	}{
		TotalSpent:      sum.TotalSpent.Format(),
		TotalEarned:     sum.TotalEarned.Format(),
		StartingBalance: sum.StartingBalance.Format(),
		Wallet:          sum.Wallet.Format(),
		Net:             sum.Net,
		NetNegative:     sum.NetUnits < 0,
	}
	for _, t := range sum.Purchased {
		data.Purchased = append(data.Purchased, transactionView{Name: t.ItemName, Price: t.Price.Format()})
	}
	for _, t := range sum.Sold {
		data.Sold = append(data.Sold, transactionView{Name: t.ItemName, Price: t.Price.Format()})
	}

	if err := s.templates.ExecuteTemplate(w, "summary.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "summary.html")
		InternalServerError("Could not render summary").Write(w)
	}
}

// publishTransaction sends the event when a broker is configured.
// Failures are logged and never block the storefront.
func (s *Server) publishTransaction(r *http.Request, sessionID, kind string, t core.Transaction) {
	if s.publisher == nil {
		return
	}
	ev := events.NewTransactionEvent(sessionID, kind, t)
	if err := s.publisher.PublishTransaction(r.Context(), ev); err != nil {
		slog.WarnContext(r.Context(), "Transaction event publish failed",
			"error", err, "kind", kind, "item", t.ItemName)
	}
}

// handlePurchase deducts an item's price from the purse and records
// the purchase.
func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		BadRequestError("Could not read the form").Write(w)
		return
	}

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

	storeKey := sanitizeInput(r.Form.Get("store"))
	name := sanitizeInput(r.Form.Get("name"))

	item, found := core.Item{}, false
	if storeKey != "" {
		item, found = cat.Item(storeKey, name)
	}
	if !found {
		item, found = cat.Find(name)
	}
	if !found {
		slog.WarnContext(r.Context(), "Purchase of unknown item", "item", name, "store", storeKey)
		NotFoundError("No such item").Write(w)
		return
	}

	var wallet, shortfall core.Money
	err = s.sessions.Do(sess.ID, func(l *core.Ledger) error {
		var perr error
		wallet, perr = l.Purchase(item)
		if errors.Is(perr, core.ErrInsufficientFunds) {
			// Captured here so the message matches the wallet
			// that declined the purchase.
			shortfall = l.Shortfall(item.Price)
		}
		return perr
	})
	if err != nil {
		if errors.Is(err, core.ErrInsufficientFunds) {
			slog.InfoContext(r.Context(), "Purchase declined",
				"session_id", sess.ID, "item", item.Name, "shortfall", shortfall.Format())
			UnprocessableEntityError("Not enough coin, you are short " + shortfall.Format()).Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Purchase error", "error", err, "item", item.Name)
		InternalServerError("Purchase failed").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Purchase completed",
		"session_id", sess.ID, "item", item.Name, "price", item.Price.Format(), "wallet", wallet.Format())

	s.publishTransaction(r, sess.ID, events.KindPurchase, core.Transaction{ItemName: item.Name, Price: item.Price})

	b := NewHTMXResponse().
		TriggerPurchaseCompleted(item.Name).
		TriggerWalletUpdated(wallet.Format()).
		TriggerSuccessNotification("Bought " + item.Name + " for " + item.Price.Format())
	s.renderWallet(w, r, wallet, b)
}

// handleSell adds the asked coin to the purse and records the sale.
// The proceeds are added to the purse exactly as entered.
func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		BadRequestError("Could not read the form").Write(w)
		return
	}

	sess, err := s.currentSession(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session setup error", "error", err)
		InternalServerError("Could not resolve session").Write(w)
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	proceeds := parsePurse(r.Form.Get)

	var wallet core.Money
	err = s.sessions.Do(sess.ID, func(l *core.Ledger) error {
		var serr error
		wallet, serr = l.Sell(name, proceeds)
		return serr
	})
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			slog.InfoContext(r.Context(), "Sale declined", "session_id", sess.ID, "error", err)
			UnprocessableEntityError("A sale needs an item name and at least one coin").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Sale error", "error", err, "item", name)
		InternalServerError("Sale failed").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Sale completed",
		"session_id", sess.ID, "item", name, "proceeds", proceeds.Format(), "wallet", wallet.Format())

	s.publishTransaction(r, sess.ID, events.KindSale, core.Transaction{ItemName: name, Price: proceeds})

	b := NewHTMXResponse().
		TriggerSaleCompleted(name).
		TriggerWalletUpdated(wallet.Format()).
		TriggerSuccessNotification("Sold " + name + " for " + proceeds.Format())
	s.renderWallet(w, r, wallet, b)
}
