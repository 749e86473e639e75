package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/catalog/static"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSeedAndLoad(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seed := static.Catalog()
	if err := repo.SeedIfEmpty(ctx, seed); err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}

	cat, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cat.Stores) != len(seed.Stores) {
		t.Fatalf("Load() stores = %d, want %d", len(cat.Stores), len(seed.Stores))
	}
	for i, s := range seed.Stores {
		if cat.Stores[i].Key != s.Key {
			t.Errorf("store %d key = %q, want %q (order must match seed)", i, cat.Stores[i].Key, s.Key)
		}
		if len(cat.Items[s.Key]) != len(seed.Items[s.Key]) {
			t.Errorf("store %q items = %d, want %d", s.Key, len(cat.Items[s.Key]), len(seed.Items[s.Key]))
		}
	}
	if cat.Site.Title != seed.Site.Title {
		t.Errorf("site title = %q, want %q", cat.Site.Title, seed.Site.Title)
	}

	// Re-seeding a populated database is a no-op.
	if err := repo.SeedIfEmpty(ctx, &core.Catalog{}); err != nil {
		t.Fatalf("second SeedIfEmpty() error = %v", err)
	}
	again, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() after reseed error = %v", err)
	}
	if len(again.Stores) != len(seed.Stores) {
		t.Errorf("reseed changed store count: %d", len(again.Stores))
	}
}

func TestItemRoundTripPreservesDetail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.SeedIfEmpty(ctx, static.Catalog()); err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}
	cat, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want, ok := static.Catalog().Find("Longsword +1")
	if !ok {
		t.Fatal("static catalog is missing the Longsword +1 fixture")
	}
	got, ok := cat.Find("Longsword +1")
	if !ok {
		t.Fatal("loaded catalog is missing Longsword +1")
	}
	if got != want {
		t.Errorf("round-tripped item = %+v, want %+v", got, want)
	}
}

func TestArchiveAndListTransactions(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := ArchivedTransaction{
		SessionID:  "sess-1",
		Kind:       "purchase",
		ItemName:   "Longsword",
		Price:      core.Money{Gold: 15},
		OccurredAt: time.Now().UTC(),
	}
	second := ArchivedTransaction{
		SessionID:  "sess-1",
		Kind:       "sale",
		ItemName:   "Old Boots",
		Price:      core.Money{Silver: 15},
		OccurredAt: time.Now().UTC(),
	}

	if _, err := repo.ArchiveTransaction(ctx, first); err != nil {
		t.Fatalf("ArchiveTransaction() error = %v", err)
	}
	if _, err := repo.ArchiveTransaction(ctx, second); err != nil {
		t.Fatalf("ArchiveTransaction() error = %v", err)
	}
	// Another session's event must not leak into the listing.
	if _, err := repo.ArchiveTransaction(ctx, ArchivedTransaction{
		SessionID: "sess-2", Kind: "purchase", ItemName: "Dagger",
		Price: core.Money{Silver: 20}, OccurredAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("ArchiveTransaction() error = %v", err)
	}

	got, err := repo.ListTransactions(ctx, "sess-1")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListTransactions() = %d events, want 2", len(got))
	}
	if got[0].ItemName != "Longsword" || got[1].ItemName != "Old Boots" {
		t.Errorf("transactions out of order: %+v", got)
	}
	if got[0].Price != (core.Money{Gold: 15}) {
		t.Errorf("archived price = %+v, want 15 gold", got[0].Price)
	}
	if got[1].Kind != "sale" {
		t.Errorf("second event kind = %q, want sale", got[1].Kind)
	}
}

func TestArchiveRejectsUnknownKind(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.ArchiveTransaction(context.Background(), ArchivedTransaction{
		SessionID: "sess-1", Kind: "barter", ItemName: "Mule",
		Price: core.Money{Gold: 8}, OccurredAt: time.Now().UTC(),
	})
	if err == nil {
		t.Error("ArchiveTransaction() should reject kinds outside purchase/sale")
	}
}
