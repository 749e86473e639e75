package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/catalog"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/catalog/google"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/catalog/static"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SheetsBackend:
		return f.createSheetsBackend(ctx)
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case StaticBackend:
		return f.createStaticBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context) (*BackendResult, error) {
	cli, err := google.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets catalog backend")

	// A sheet outage should degrade to the built-in catalog rather
	// than take the storefront down.
	return &BackendResult{
		Loader:  catalog.WithFallback(cli, static.New()),
		Cleanup: nil,
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	// First boot gets the built-in catalog so the screen is never empty.
	if err := repo.SeedIfEmpty(ctx, static.Catalog()); err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to seed SQLite catalog: %w", err)
	}

	f.logger.Info("Initialized SQLite catalog backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Loader:  repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createStaticBackend() (*BackendResult, error) {
	f.logger.Info("Initialized static catalog backend")

	return &BackendResult{
		Loader:  static.New(),
		Cleanup: nil,
	}, nil
}
