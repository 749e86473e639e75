package backend

import (
	"context"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/catalog"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the catalog loader and optional cleanup function
type BackendResult struct {
	Loader  catalog.Loader
	Cleanup CleanupFunc
}

// Factory creates catalog backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// Google Sheets specific
	GoogleSpreadsheetID string
	ItemsSheetName      string
	StoresSheetName     string
	SiteConfigSheetName string

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the type of catalog backend
type BackendType string

const (
	StaticBackend BackendType = "static"
	SheetsBackend BackendType = "sheets"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case StaticBackend, SheetsBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
