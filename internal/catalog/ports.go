// Package catalog defines the ports through which the merchant screen
// obtains its store and item data.
package catalog

import (
	"context"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
)

// Ports for catalog providers.
type (
	// Loader supplies the complete catalog: site config, stores in
	// navigation order, and items grouped by store key.
	Loader interface {
		Load(ctx context.Context) (*core.Catalog, error)
	}
)
