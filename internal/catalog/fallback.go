package catalog

import (
	"context"
	"log/slog"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
)

// FallbackLoader delegates to a primary loader and substitutes the
// fallback catalog when the primary fails or comes back empty. The
// rest of the application never sees a load error, only a smaller
// catalog.
type FallbackLoader struct {
	Primary  Loader
	Fallback Loader
}

// WithFallback wraps primary so that every load has a usable result.
func WithFallback(primary, fallback Loader) *FallbackLoader {
	return &FallbackLoader{Primary: primary, Fallback: fallback}
}

func (f *FallbackLoader) Load(ctx context.Context) (*core.Catalog, error) {
	cat, err := f.Primary.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Catalog load failed, using fallback data", "error", err)
		return f.Fallback.Load(ctx)
	}
	if len(cat.Stores) == 0 {
		slog.WarnContext(ctx, "Catalog loaded empty, using fallback data")
		return f.Fallback.Load(ctx)
	}
	return cat, nil
}
