package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/session"
)

const sessionCookieName = "merchant_session"

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// parsePurse reads the three coin fields from a form. Blank, garbled
// and negative values all count as zero.
func parsePurse(get func(string) string) core.Money {
	return core.Money{
		Gold:   core.ParseCoinField(get("gold")),
		Silver: core.ParseCoinField(get("silver")),
		Copper: core.ParseCoinField(get("copper")),
	}
}

// currentSession resolves the caller's session from the cookie,
// creating one (and setting the cookie) when none exists.
func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	var id string
	if c, err := r.Cookie(sessionCookieName); err == nil {
		id = c.Value
	}

	sess, created, err := s.sessions.GetOrCreate(id)
	if err != nil {
		return nil, err
	}
	if created {
		http.SetCookie(w, sessionCookie(sess.ID))
	}
	return sess, nil
}

func sessionCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
