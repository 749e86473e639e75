package core

import "testing"

func testCatalog() *Catalog {
	return &Catalog{
		Stores: []StoreInfo{
			{Key: "weapons", Title: "Weapon Shop"},
			{Key: "magic", Title: "Magic Shop"},
		},
		Items: map[string][]Item{
			"weapons": {
				{Name: "Shortbow", Price: Money{Gold: 25}, Rarity: "common"},
			},
			"magic": {
				{Name: "Shortbow", Price: Money{Gold: 99}, Rarity: "rare"},
				{Name: "Ring of Protection", Price: Money{Gold: 200}, Rarity: "rare"},
			},
		},
	}
}

func TestCatalogFindFirstMatchWins(t *testing.T) {
	c := testCatalog()
	it, ok := c.Find("Shortbow")
	if !ok {
		t.Fatalf("expected to find Shortbow")
	}
	// Store order decides: the weapons entry shadows the magic one.
	if it.Price != (Money{Gold: 25}) {
		t.Fatalf("wrong entry found: %+v", it)
	}
	if _, ok := c.Find("Nonexistent"); ok {
		t.Fatalf("found item that does not exist")
	}
}

func TestCatalogEntryPlaceholder(t *testing.T) {
	c := testCatalog()
	rec := Transaction{ItemName: "Lost Relic", Price: Money{Gold: 7}}
	it := c.Entry(rec)
	if it.Name != "Lost Relic" || it.Price != rec.Price {
		t.Fatalf("placeholder identity: %+v", it)
	}
	if it.Rarity != "unknown" || it.Description == "" || it.Stats == "" {
		t.Fatalf("placeholder not fully populated: %+v", it)
	}

	// A known item resolves to the real entry.
	if got := c.Entry(Transaction{ItemName: "Ring of Protection"}); got.Rarity != "rare" {
		t.Fatalf("known item not resolved: %+v", got)
	}
}

func TestItemValidate(t *testing.T) {
	if err := (Item{Name: "Dagger", Price: Money{Gold: 2}}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Item{Name: "  "}).Validate(); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if err := (Item{Name: "Dagger", Price: Money{Gold: -1}}).Validate(); err == nil {
		t.Fatalf("expected error for negative price")
	}
}

func TestCatalogStoreLookup(t *testing.T) {
	c := testCatalog()
	if s, ok := c.Store("magic"); !ok || s.Title != "Magic Shop" {
		t.Fatalf("store lookup: %+v ok=%v", s, ok)
	}
	if _, ok := c.Store("tavern"); ok {
		t.Fatalf("unexpected store")
	}
	if items := c.ItemsFor("magic"); len(items) != 2 {
		t.Fatalf("items for magic: %d", len(items))
	}
	if it, ok := c.Item("magic", "Shortbow"); !ok || it.Price != (Money{Gold: 99}) {
		t.Fatalf("scoped item lookup: %+v", it)
	}
}
