// Package storage provides the SQLite-backed catalog and the session
// transaction archive.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/catalog"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ catalog.Loader = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements catalog.Loader over the stores/items/site_config
// tables. Only enabled rows are returned, in position order.
func (r *SQLiteRepository) Load(ctx context.Context) (*core.Catalog, error) {
	cat := &core.Catalog{
		Site:  core.SiteConfig{Title: "Default Market", Subtitle: "A shopping aid for tabletop adventurers"},
		Items: map[string][]core.Item{},
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT key, title, description FROM stores WHERE enabled = 1 ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query stores: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s core.StoreInfo
		if err := rows.Scan(&s.Key, &s.Title, &s.Description); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		cat.Stores = append(cat.Stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}

	itemRows, err := r.db.QueryContext(ctx,
		`SELECT store_key, name, gold, silver, copper, rarity, preview, description, stats
		 FROM items WHERE enabled = 1 ORDER BY store_key, position`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var storeKey string
		var it core.Item
		if err := itemRows.Scan(&storeKey, &it.Name,
			&it.Price.Gold, &it.Price.Silver, &it.Price.Copper,
			&it.Rarity, &it.Preview, &it.Description, &it.Stats); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		cat.Items[storeKey] = append(cat.Items[storeKey], it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	cfgRows, err := r.db.QueryContext(ctx, `SELECT setting, value FROM site_config`)
	if err != nil {
		return nil, fmt.Errorf("query site config: %w", err)
	}
	defer cfgRows.Close()
	for cfgRows.Next() {
		var setting, value string
		if err := cfgRows.Scan(&setting, &value); err != nil {
			return nil, fmt.Errorf("scan site config: %w", err)
		}
		switch setting {
		case "site_title":
			cat.Site.Title = value
		case "site_subtitle":
			cat.Site.Subtitle = value
		}
	}
	if err := cfgRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate site config: %w", err)
	}

	return cat, nil
}

// SeedIfEmpty populates the catalog tables from the given catalog when
// no stores exist yet, so a fresh database still renders a storefront.
func (r *SQLiteRepository) SeedIfEmpty(ctx context.Context, cat *core.Catalog) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stores`).Scan(&count); err != nil {
		return fmt.Errorf("count stores: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for pos, s := range cat.Stores {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stores (key, title, description, position) VALUES (?, ?, ?, ?)`,
			s.Key, s.Title, s.Description, pos); err != nil {
			return fmt.Errorf("seed store %s: %w", s.Key, err)
		}
		for ipos, it := range cat.Items[s.Key] {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO items (store_key, name, gold, silver, copper, rarity, preview, description, stats, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				s.Key, it.Name, it.Price.Gold, it.Price.Silver, it.Price.Copper,
				it.Rarity, it.Preview, it.Description, it.Stats, ipos); err != nil {
				return fmt.Errorf("seed item %s: %w", it.Name, err)
			}
		}
	}
	seedCfg := map[string]string{
		"site_title":    cat.Site.Title,
		"site_subtitle": cat.Site.Subtitle,
	}
	for setting, value := range seedCfg {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO site_config (setting, value) VALUES (?, ?)`, setting, value); err != nil {
			return fmt.Errorf("seed site config: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	slog.InfoContext(ctx, "Seeded catalog tables", "stores", len(cat.Stores))
	return nil
}

// ArchivedTransaction is one ledger event persisted by the worker.
type ArchivedTransaction struct {
	ID         int64
	SessionID  string
	Kind       string // "purchase" or "sale"
	ItemName   string
	Price      core.Money
	OccurredAt time.Time
}

// ArchiveTransaction appends a ledger event to the transactions table.
func (r *SQLiteRepository) ArchiveTransaction(ctx context.Context, t ArchivedTransaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (session_id, kind, item_name, gold, silver, copper, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.SessionID, t.Kind, t.ItemName, t.Price.Gold, t.Price.Silver, t.Price.Copper, t.OccurredAt)
	if err != nil {
		return 0, fmt.Errorf("archive transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("archive transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction archived",
		"id", id,
		"session_id", t.SessionID,
		"kind", t.Kind,
		"item", t.ItemName)
	return id, nil
}

// ListTransactions returns a session's archived events in the order
// they were recorded.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, sessionID string) ([]ArchivedTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, kind, item_name, gold, silver, copper, occurred_at
		 FROM transactions WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []ArchivedTransaction
	for rows.Next() {
		var t ArchivedTransaction
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Kind, &t.ItemName,
			&t.Price.Gold, &t.Price.Silver, &t.Price.Copper, &t.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
