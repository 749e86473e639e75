package static

import (
	"context"
	"testing"
)

func TestCatalogIsNonEmptyAndValid(t *testing.T) {
	c, err := New().Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Stores) == 0 {
		t.Fatalf("fallback catalog has no stores")
	}
	for _, s := range c.Stores {
		items := c.ItemsFor(s.Key)
		if len(items) == 0 {
			t.Fatalf("store %q has no items", s.Key)
		}
		if s.Title == "" {
			t.Fatalf("store %q has no title", s.Key)
		}
		for _, it := range items {
			if err := it.Validate(); err != nil {
				t.Fatalf("item %q invalid: %v", it.Name, err)
			}
		}
	}
	if c.Site.Title == "" || c.Site.Subtitle == "" {
		t.Fatalf("site config incomplete: %+v", c.Site)
	}
}

func TestLoadReturnsFreshCopies(t *testing.T) {
	a, _ := New().Load(context.Background())
	b, _ := New().Load(context.Background())
	a.Items["weapons"][0].Name = "mutated"
	if b.Items["weapons"][0].Name == "mutated" {
		t.Fatalf("loads share underlying item slices")
	}
}
