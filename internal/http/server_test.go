package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/events"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/session"
)

type fakeLoader struct{ cat *core.Catalog }

func (f fakeLoader) Load(ctx context.Context) (*core.Catalog, error) { return f.cat, nil }

type failingLoader struct{}

func (failingLoader) Load(ctx context.Context) (*core.Catalog, error) {
	return nil, context.DeadlineExceeded
}

type capturingPublisher struct{ published []*events.TransactionEvent }

func (p *capturingPublisher) PublishTransaction(ctx context.Context, e *events.TransactionEvent) error {
	p.published = append(p.published, e)
	return nil
}

func testCatalog() *core.Catalog {
	return &core.Catalog{
		Site: core.SiteConfig{Title: "Test Market", Subtitle: "wares for testing"},
		Stores: []core.StoreInfo{
			{Key: "weapons", Title: "The Armory", Description: "steel and sharp edges"},
			{Key: "apothecary", Title: "The Apothecary", Description: "potions and herbs"},
		},
		Items: map[string][]core.Item{
			"weapons": {
				{Name: "Longsword", Price: core.Money{Gold: 15}, Rarity: "common", Preview: "a fine blade", Description: "Standard issue.", Stats: "<div>1d8 slashing</div>"},
				{Name: "Dagger", Price: core.Money{Silver: 20}, Rarity: "common", Preview: "small and quick", Description: "Fits up a sleeve.", Stats: "<div>1d4 piercing</div>"},
			},
			"apothecary": {
				{Name: "Healing Potion", Price: core.Money{Gold: 5}, Rarity: "uncommon", Preview: "red and bubbling", Description: "Restores vigor.", Stats: "<div>2d4+2 healing</div>"},
			},
		},
	}
}

func newTestServer(t *testing.T, purse core.Money, pub events.Publisher) (*Server, *session.Manager) {
	t.Helper()
	sessions := session.NewManager(purse, time.Hour)
	t.Cleanup(sessions.Stop)
	srv := NewServer(":0", fakeLoader{cat: testCatalog()}, sessions, Options{Publisher: pub})
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
	})
	return srv, sessions
}

// establishSession performs a GET / and returns the session cookie.
func establishSession(t *testing.T, srv *Server) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("index status = %d", rr.Code)
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("index did not set a session cookie")
	return nil
}

func TestIndexAndHealth(t *testing.T) {
	srv, _ := newTestServer(t, core.Money{Gold: 20}, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("index status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Test Market") {
		t.Fatalf("index body missing site title")
	}
	if !strings.Contains(rr.Body.String(), "The Armory") {
		t.Fatalf("index body missing store navigation")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.Handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rr.Code)
		}
	}
}

func TestReadyzFailsWithoutCatalog(t *testing.T) {
	sessions := session.NewManager(core.Money{Gold: 1}, time.Hour)
	defer sessions.Stop()
	srv := NewServer(":0", failingLoader{}, sessions, Options{})
	defer srv.Shutdown(context.Background())

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz status = %d, want 503", rr.Code)
	}
}

func TestStorePartial(t *testing.T) {
	srv, _ := newTestServer(t, core.Money{Gold: 20}, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ui/store?store=weapons", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("store status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"The Armory", "Longsword", "Dagger", "15 gold"} {
		if !strings.Contains(body, want) {
			t.Errorf("store body missing %q", want)
		}
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ui/store?store=stables", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown store status = %d, want 404", rr.Code)
	}
}

func TestItemPartialAffordability(t *testing.T) {
	srv, _ := newTestServer(t, core.Money{Gold: 20}, nil)
	cookie := establishSession(t, srv)

	// Affordable item shows the post-purchase balance.
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ui/item?store=weapons&name=Longsword", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("item status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "After purchase: 5 gold") {
		t.Errorf("item body missing change line: %s", body)
	}
	if !strings.Contains(body, "1d8 slashing") {
		t.Errorf("item body missing stats markup")
	}

	// Unaffordable item shows the shortfall instead.
	poor, _ := newTestServer(t, core.Money{Gold: 10}, nil)
	poorCookie := establishSession(t, poor)
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ui/item?store=weapons&name=Longsword", nil)
	req.AddCookie(poorCookie)
	poor.Handler.ServeHTTP(rr, req)
	if !strings.Contains(rr.Body.String(), "short 5 gold") {
		t.Errorf("item body missing shortfall: %s", rr.Body.String())
	}

	// Unknown item is a 404.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ui/item?name=Vorpal+Sword", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown item status = %d, want 404", rr.Code)
	}
}

func TestPurchaseFlow(t *testing.T) {
	pub := &capturingPublisher{}
	srv, _ := newTestServer(t, core.Money{Gold: 20}, pub)
	cookie := establishSession(t, srv)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/purchase", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /purchase status = %d, want 405", rr.Code)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/purchase", strings.NewReader("store=weapons&name=Longsword"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("purchase status = %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "5 gold") {
		t.Errorf("purchase response missing updated wallet: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "purchase:completed") {
		t.Errorf("purchase response missing HX-Trigger: %s", rr.Header().Get("HX-Trigger"))
	}
	if len(pub.published) != 1 || pub.published[0].Kind != events.KindPurchase {
		t.Fatalf("expected one purchase event, got %+v", pub.published)
	}

	// Second sword is no longer affordable (5 gold left).
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/purchase", strings.NewReader("store=weapons&name=Longsword"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unaffordable purchase status = %d, want 422", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "short") {
		t.Errorf("unaffordable purchase body missing shortfall: %s", rr.Body.String())
	}
	if len(pub.published) != 1 {
		t.Errorf("declined purchase should not publish an event")
	}

	// Unknown item.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/purchase", strings.NewReader("name=Vorpal+Sword"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown item purchase status = %d, want 404", rr.Code)
	}
}

func TestDeclinedPurchaseShortfallTracksWallet(t *testing.T) {
	srv, _ := newTestServer(t, core.Money{Gold: 10}, nil)
	cookie := establishSession(t, srv)

	buy := func() *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/purchase", strings.NewReader("store=weapons&name=Longsword"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookie)
		srv.Handler.ServeHTTP(rr, req)
		return rr
	}

	rr := buy()
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("purchase status = %d, want 422", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "short 5 gold") {
		t.Errorf("shortfall with 10 gold = %s, want short 5 gold", rr.Body.String())
	}

	// Top up the purse and the reported shortfall must follow.
	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sell", strings.NewReader("name=Old+Shield&gold=3"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("sell status = %d: %s", rr.Code, rr.Body.String())
	}

	rr = buy()
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("purchase status = %d, want 422", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "short 2 gold") {
		t.Errorf("shortfall with 13 gold = %s, want short 2 gold", rr.Body.String())
	}
}

func TestSellFlow(t *testing.T) {
	pub := &capturingPublisher{}
	srv, _ := newTestServer(t, core.Money{Gold: 1}, pub)
	cookie := establishSession(t, srv)

	// Proceeds land in the purse exactly as entered.
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sell", strings.NewReader("name=Old+Boots&silver=15"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("sell status = %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "15 silver") {
		t.Errorf("sell response missing un-normalized silver: %s", rr.Body.String())
	}
	if len(pub.published) != 1 || pub.published[0].Kind != events.KindSale {
		t.Fatalf("expected one sale event, got %+v", pub.published)
	}

	// Blank name and zero proceeds are both rejected.
	for _, form := range []string{"name=&gold=1", "name=Rope"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sell", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookie)
		srv.Handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Errorf("sell %q status = %d, want 422", form, rr.Code)
		}
	}
}

func TestSummaryAndReset(t *testing.T) {
	srv, _ := newTestServer(t, core.Money{Gold: 20}, nil)
	cookie := establishSession(t, srv)

	post := func(path, form string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookie)
		srv.Handler.ServeHTTP(rr, req)
		return rr
	}

	if rr := post("/purchase", "store=apothecary&name=Healing+Potion"); rr.Code != http.StatusOK {
		t.Fatalf("purchase status = %d", rr.Code)
	}
	if rr := post("/sell", "name=Old+Boots&silver=12"); rr.Code != http.StatusOK {
		t.Fatalf("sell status = %d", rr.Code)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ui/summary", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("summary status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"Healing Potion", "Old Boots", "Total spent: 5 gold", "Total earned: 12 silver"} {
		if !strings.Contains(body, want) {
			t.Errorf("summary body missing %q", want)
		}
	}

	if rr := post("/session/reset", ""); rr.Code != http.StatusOK {
		t.Fatalf("reset status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ui/summary", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	body = rr.Body.String()
	if !strings.Contains(body, "Nothing bought yet.") || !strings.Contains(body, "Nothing sold yet.") {
		t.Errorf("summary after reset should be empty: %s", body)
	}
	if !strings.Contains(body, "Net: +0 copper") {
		t.Errorf("summary after reset should show flat net: %s", body)
	}
}

func TestCreateSessionWithPurse(t *testing.T) {
	srv, _ := newTestServer(t, core.Money{Gold: 20}, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader("gold=3&silver=2&copper=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("session status = %d: %s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	for _, want := range []string{"3 gold", "2 silver", "1 copper"} {
		if !strings.Contains(body, want) {
			t.Errorf("session wallet missing %q: %s", want, body)
		}
	}

	var found bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("POST /session did not set a session cookie")
	}
}

func TestWalletPartial(t *testing.T) {
	srv, _ := newTestServer(t, core.Money{Gold: 7, Silver: 3}, nil)
	cookie := establishSession(t, srv)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ui/wallet", nil)
	req.AddCookie(cookie)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("wallet status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "7 gold, 3 silver") {
		t.Errorf("wallet body missing formatted purse: %s", rr.Body.String())
	}
}
