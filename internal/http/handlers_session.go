package http

import (
	"log/slog"
	"net/http"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
)

// handleCreateSession starts a fresh shopping session with the purse
// given in the form, replacing whatever session the cookie pointed at.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		BadRequestError("Could not read the form").Write(w)
		return
	}

	purse := parsePurse(r.Form.Get)

	sess, err := s.sessions.CreateWithPurse(purse)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session create error", "error", err)
		InternalServerError("Could not start a new session").Write(w)
		return
	}
	http.SetCookie(w, sessionCookie(sess.ID))

	slog.InfoContext(r.Context(), "Session started",
		"session_id", sess.ID,
		"gold", purse.Gold, "silver", purse.Silver, "copper", purse.Copper)

	var wallet core.Money
	_ = sess.Do(func(l *core.Ledger) error {
		wallet = l.Wallet()
		return nil
	})
	s.renderWallet(w, r, wallet,
		NewHTMXResponse().
			TriggerWalletUpdated(wallet.Format()).
			TriggerSuccessNotification("New shopping session started"))
}

// handleResetSession clears the purchase and sale history and makes the
// current purse the new starting balance.
func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	sess, err := s.currentSession(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session setup error", "error", err)
		InternalServerError("Could not resolve session").Write(w)
		return
	}

	var wallet core.Money
	err = s.sessions.Do(sess.ID, func(l *core.Ledger) error {
		l.ResetSession()
		wallet = l.Wallet()
		return nil
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "Session reset error", "error", err, "session_id", sess.ID)
		InternalServerError("Could not reset session").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Session reset", "session_id", sess.ID)

	s.renderWallet(w, r, wallet,
		NewHTMXResponse().
			TriggerSessionReset().
			TriggerWalletUpdated(wallet.Format()).
			TriggerSuccessNotification("Session reset, purse carried over"))
}
