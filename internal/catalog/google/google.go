package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/catalog"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
)

// Client loads the merchant catalog from a Google Sheets spreadsheet
// laid out like the DM template: an Items sheet, a Stores sheet and a
// SiteConfig sheet.
type Client struct {
	svc             *gsheet.Service
	spreadsheetID   string
	itemsSheet      string
	storesSheet     string
	siteConfigSheet string
}

// Ensure interface conformance
var _ catalog.Loader = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID
// Optional: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS for auth.
// Optional sheet names: ITEMS_SHEET_NAME (default "Items"),
// STORES_SHEET_NAME (default "Stores"),
// SITE_CONFIG_SHEET_NAME (default "SiteConfig").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	itemsSheet := envOr("ITEMS_SHEET_NAME", "Items")
	storesSheet := envOr("STORES_SHEET_NAME", "Stores")
	siteConfigSheet := envOr("SITE_CONFIG_SHEET_NAME", "SiteConfig")

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:             svc,
		spreadsheetID:   spreadsheetID,
		itemsSheet:      itemsSheet,
		storesSheet:     storesSheet,
		siteConfigSheet: siteConfigSheet,
	}, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// newSheetsService initializes a read-only Sheets Service using Service
// Account credentials from GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Load reads the three catalog sheets concurrently and assembles the
// catalog. Rows whose enabled flag is not set are filtered out; rows
// missing a store key or name are skipped.
func (c *Client) Load(ctx context.Context) (*core.Catalog, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	var items, stores, site [][]interface{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		items, err = c.readRange(gctx, c.itemsSheet, "A:K")
		return err
	})
	g.Go(func() (err error) {
		stores, err = c.readRange(gctx, c.storesSheet, "A:D")
		return err
	})
	g.Go(func() (err error) {
		site, err = c.readRange(gctx, c.siteConfigSheet, "A:B")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cat := &core.Catalog{
		Site:   parseSiteConfig(site),
		Stores: parseStores(stores),
		Items:  parseItems(items),
	}
	slog.InfoContext(ctx, "Catalog loaded from Google Sheets",
		"spreadsheet_id", c.spreadsheetID,
		"stores", len(cat.Stores),
		"item_groups", len(cat.Items))
	return cat, nil
}

func (c *Client) readRange(ctx context.Context, sheetName, cols string) ([][]interface{}, error) {
	rng := fmt.Sprintf("%s!%s", sheetName, cols)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}
