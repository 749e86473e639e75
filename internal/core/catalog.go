package core

// Catalog is the full store/item mapping supplied by a catalog
// provider before first use. Stores carries the navigation order;
// Items is keyed by store key.
type Catalog struct {
	Site   SiteConfig
	Stores []StoreInfo
	Items  map[string][]Item
}

// Store returns the store with the given key.
func (c *Catalog) Store(key string) (StoreInfo, bool) {
	for _, s := range c.Stores {
		if s.Key == key {
			return s, true
		}
	}
	return StoreInfo{}, false
}

// ItemsFor returns the items of one store, nil when the key is unknown.
func (c *Catalog) ItemsFor(key string) []Item {
	return c.Items[key]
}

// Item looks up an item by store key and name.
func (c *Catalog) Item(storeKey, name string) (Item, bool) {
	for _, it := range c.Items[storeKey] {
		if it.Name == name {
			return it, true
		}
	}
	return Item{}, false
}

// Find returns the first item with the given name, scanning stores in
// navigation order. First match wins.
func (c *Catalog) Find(name string) (Item, bool) {
	for _, s := range c.Stores {
		for _, it := range c.Items[s.Key] {
			if it.Name == name {
				return it, true
			}
		}
	}
	return Item{}, false
}

// Entry resolves a purchased transaction back to its catalog item for
// detail re-display. When the item is no longer in the catalog a
// synthetic placeholder is returned so the detail view always renders.
func (c *Catalog) Entry(t Transaction) Item {
	if it, ok := c.Find(t.ItemName); ok {
		return it
	}
	return Item{
		Name:        t.ItemName,
		Price:       t.Price,
		Rarity:      "unknown",
		Preview:     "Previously purchased item",
		Description: "This item was purchased earlier in your shopping session.",
		Stats:       "No additional details available",
	}
}
