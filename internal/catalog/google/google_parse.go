package google

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
)

// Sheet layouts follow the DM template spreadsheet:
//
//	Items:  A id, B shop, C name, D gold, E silver, F copper, G rarity,
//	        H preview, I description, J stats, K enabled
//	Stores: A shop, B title, C description, D enabled
//	SiteConfig: A setting, B value
//
// Header rows carry no enabled flag and fall out through the filter.

// parseItems converts an Items values matrix into items grouped by
// store key, preserving row order within each store.
func parseItems(values [][]interface{}) map[string][]core.Item {
	items := map[string][]core.Item{}
	for _, raw := range values {
		row := toStrings(raw)
		shop := safeGet(row, 1)
		name := safeGet(row, 2)
		if shop == "" || name == "" {
			continue
		}
		if !isEnabled(safeGet(row, 10)) {
			continue
		}
		rarity := safeGet(row, 6)
		if rarity == "" {
			rarity = "common"
		}
		items[shop] = append(items[shop], core.Item{
			Name: name,
			Price: core.Money{
				Gold:   parseCoin(safeGet(row, 3)),
				Silver: parseCoin(safeGet(row, 4)),
				Copper: parseCoin(safeGet(row, 5)),
			},
			Rarity:      rarity,
			Preview:     safeGet(row, 7),
			Description: safeGet(row, 8),
			Stats:       safeGet(row, 9),
		})
	}
	return items
}

// parseStores converts a Stores values matrix into the enabled stores
// in sheet order.
func parseStores(values [][]interface{}) []core.StoreInfo {
	var stores []core.StoreInfo
	for _, raw := range values {
		row := toStrings(raw)
		shop := safeGet(row, 0)
		title := safeGet(row, 1)
		if shop == "" || title == "" {
			continue
		}
		if !isEnabled(safeGet(row, 3)) {
			continue
		}
		stores = append(stores, core.StoreInfo{
			Key:         shop,
			Title:       title,
			Description: safeGet(row, 2),
		})
	}
	return stores
}

// parseSiteConfig extracts site_title and site_subtitle settings,
// keeping defaults for anything the sheet omits.
func parseSiteConfig(values [][]interface{}) core.SiteConfig {
	cfg := core.SiteConfig{
		Title:    "Default Market",
		Subtitle: "A shopping aid for tabletop adventurers",
	}
	for _, raw := range values {
		row := toStrings(raw)
		setting := safeGet(row, 0)
		value := safeGet(row, 1)
		if setting == "" || value == "" {
			continue
		}
		switch setting {
		case "site_title":
			cfg.Title = value
		case "site_subtitle":
			cfg.Subtitle = value
		}
	}
	return cfg
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(stringify(v))
	}
	return out
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}

// isEnabled accepts the spellings Sheets hands back for a checked flag.
func isEnabled(s string) bool {
	return strings.EqualFold(s, "true")
}

// parseCoin reads a price cell as a whole coin count; absent or
// malformed cells count as 0. Sheets may deliver numbers as "15" or
// "15.0".
func parseCoin(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return int(f)
	}
	return 0
}
