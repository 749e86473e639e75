package backend

import (
	"fmt"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.CatalogBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.CatalogBackend)
	}

	return Config{
		Type: backendType,

		GoogleSpreadsheetID: appConfig.GoogleSpreadsheetID,
		ItemsSheetName:      appConfig.ItemsSheetName,
		StoresSheetName:     appConfig.StoresSheetName,
		SiteConfigSheetName: appConfig.SiteConfigSheetName,

		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case SheetsBackend:
		if c.GoogleSpreadsheetID == "" {
			return fmt.Errorf("Google Spreadsheet ID is required for sheets backend")
		}
		if c.ItemsSheetName == "" {
			return fmt.Errorf("items sheet name is required for sheets backend")
		}
		if c.StoresSheetName == "" {
			return fmt.Errorf("stores sheet name is required for sheets backend")
		}

	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}

	case StaticBackend:
		// The built-in catalog needs no configuration.
	}

	return nil
}
