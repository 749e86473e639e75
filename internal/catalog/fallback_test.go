package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
)

type stubLoader struct {
	cat *core.Catalog
	err error
}

func (s *stubLoader) Load(context.Context) (*core.Catalog, error) {
	return s.cat, s.err
}

func TestFallbackLoader(t *testing.T) {
	primary := &core.Catalog{
		Site:   core.SiteConfig{Title: "Remote Market"},
		Stores: []core.StoreInfo{{Key: "weapons", Title: "Weapon Shop"}},
	}
	backup := &core.Catalog{
		Site:   core.SiteConfig{Title: "Backup Market"},
		Stores: []core.StoreInfo{{Key: "general", Title: "General Store"}},
	}

	tests := []struct {
		name      string
		primary   Loader
		wantTitle string
	}{
		{
			name:      "primary healthy",
			primary:   &stubLoader{cat: primary},
			wantTitle: "Remote Market",
		},
		{
			name:      "primary fails",
			primary:   &stubLoader{err: errors.New("sheet unreachable")},
			wantTitle: "Backup Market",
		},
		{
			name:      "primary empty",
			primary:   &stubLoader{cat: &core.Catalog{}},
			wantTitle: "Backup Market",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := WithFallback(tt.primary, &stubLoader{cat: backup})
			cat, err := f.Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error = %v, want nil", err)
			}
			if cat.Site.Title != tt.wantTitle {
				t.Errorf("Load() site title = %q, want %q", cat.Site.Title, tt.wantTitle)
			}
			if len(cat.Stores) == 0 {
				t.Error("Load() returned a catalog with no stores")
			}
		})
	}
}
