// Package static provides the built-in fallback catalog used whenever
// the configured catalog source is unavailable. It guarantees the
// storefront never operates over an empty catalog.
package static

import (
	"context"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/catalog"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
)

type Store struct{}

var _ catalog.Loader = (*Store)(nil)

func New() *Store { return &Store{} }

// Load returns a fresh copy of the backup catalog so callers may hold
// it without aliasing package data.
func (s *Store) Load(_ context.Context) (*core.Catalog, error) {
	return Catalog(), nil
}

// Catalog builds the backup catalog.
func Catalog() *core.Catalog {
	c := &core.Catalog{
		Site: core.SiteConfig{
			Title:    "Default Market",
			Subtitle: "A shopping aid for tabletop adventurers",
		},
		Stores: []core.StoreInfo{
			{Key: "weapons", Title: "Weapon Shop", Description: "Fine blades and ranged weapons for the discerning adventurer"},
			{Key: "armory", Title: "Armory", Description: "Protective gear and shields to keep you safe in battle"},
			{Key: "magic", Title: "Magic Shop", Description: "Mystical artifacts and enchanted items of great power"},
			{Key: "apothecary", Title: "Apothecary", Description: "Healing potions and remedies for what ails you"},
		},
		Items: map[string][]core.Item{},
	}

	c.Items["weapons"] = []core.Item{
		{
			Name:        "Longsword +1",
			Price:       core.Money{Gold: 15},
			Rarity:      "uncommon",
			Preview:     "A finely crafted blade that gleams with magical enhancement.",
			Description: "This longsword is magically enhanced, granting a +1 bonus to attack and damage rolls. Ancient runes along the fuller glow faintly blue when drawn in anger.",
			Stats:       "Damage: 1d8 + 1 slashing<br>Properties: Versatile (1d10), Magical<br>Weight: 3 lbs",
		},
		{
			Name:        "Shortbow",
			Price:       core.Money{Gold: 25},
			Rarity:      "common",
			Preview:     "A simple yet reliable ranged weapon.",
			Description: "Made from seasoned yew, this shortbow is perfect for hunters and scouts. Offers excellent accuracy at short to medium range.",
			Stats:       "Damage: 1d6 piercing<br>Properties: Ammunition (range 80/320), Two-handed<br>Weight: 2 lbs",
		},
		{
			Name:        "Battleaxe",
			Price:       core.Money{Gold: 10},
			Rarity:      "common",
			Preview:     "A heavy axe designed for combat.",
			Description: "A sturdy steel-headed axe mounted on a hickory handle. Its weight and balance make it effective in the hands of a skilled warrior.",
			Stats:       "Damage: 1d8 slashing<br>Properties: Versatile (1d10)<br>Weight: 4 lbs",
		},
	}

	c.Items["armory"] = []core.Item{
		{
			Name:        "Chainmail Armor",
			Price:       core.Money{Gold: 75},
			Rarity:      "uncommon",
			Preview:     "Interlocking metal rings provide flexible protection.",
			Description: "Consists of thousands of interlocking metal rings. Provides AC 16, but imposes disadvantage on Stealth checks. Requires Strength 13 to wear.",
			Stats:       "AC: 16<br>Stealth: Disadvantage<br>Weight: 55 lbs<br>Strength Requirement: 13",
		},
		{
			Name:        "Shield +1",
			Price:       core.Money{Gold: 150},
			Rarity:      "uncommon",
			Preview:     "A reinforced shield with magical enhancements.",
			Description: "A steel shield magically enhanced to give +1 bonus to AC. Can be wielded alongside other armor for additional protection.",
			Stats:       "AC Bonus: +3 (includes +1 enhancement)<br>Weight: 6 lbs<br>Properties: Magical<br>Requires Attunement",
		},
		{
			Name:        "Leather Armor",
			Price:       core.Money{Gold: 10},
			Rarity:      "common",
			Preview:     "Supple leather crafted into protective gear.",
			Description: "Basic armor made of hardened leather. Provides protection while allowing agility.",
			Stats:       "AC: 11 + Dex modifier<br>Weight: 10 lbs<br>No Stealth penalty",
		},
	}

	c.Items["magic"] = []core.Item{
		{
			Name:        "Ring of Protection",
			Price:       core.Money{Gold: 200},
			Rarity:      "rare",
			Preview:     "A silver band inscribed with protective wards.",
			Description: "Grants +1 bonus to AC and saving throws while worn. Requires attunement.",
			Stats:       "AC Bonus: +1<br>Saving Throw Bonus: +1<br>Attunement: Required<br>Slot: Ring",
		},
		{
			Name:        "Staff of Fireballs",
			Price:       core.Money{Gold: 1500},
			Rarity:      "very rare",
			Preview:     "An ornate staff crackling with fire.",
			Description: "This staff holds 7 charges. Can cast Fireball (3rd level) using 1 charge. Regains 1d6+1 charges daily at dawn. Requires attunement by a spellcaster.",
			Stats:       "Charges: 7 (regains 1d6+1 at dawn)<br>Spell: Fireball (3rd level, 1 charge)<br>Save DC: 15<br>Attunement: Spellcaster",
		},
		{
			Name:        "Wand of Magic Missiles",
			Price:       core.Money{Gold: 500},
			Rarity:      "uncommon",
			Preview:     "A slender wand humming with arcane energy.",
			Description: "A wand that launches Magic Missile spells. Holds 7 charges, regains 1d6+1 at dawn. Requires attunement.",
			Stats:       "Charges: 7 (regains 1d6+1 at dawn)<br>Spell: Magic Missile (1st level, 1 charge)<br>Range: 120 ft.<br>Attunement: Required",
		},
	}

	c.Items["apothecary"] = []core.Item{
		{
			Name:        "Potion of Healing",
			Price:       core.Money{Gold: 50},
			Rarity:      "common",
			Preview:     "A crimson liquid that sparkles with restorative magic.",
			Description: "Restores 2d4+2 hit points when consumed.",
			Stats:       "Effect: Restore 2d4 + 2 HP<br>Duration: Instantaneous<br>Rarity: Common",
		},
		{
			Name:        "Potion of Greater Healing",
			Price:       core.Money{Gold: 150},
			Rarity:      "uncommon",
			Preview:     "A more potent healing draught with golden flecks.",
			Description: "Restores 4d4+4 hit points when consumed.",
			Stats:       "Effect: Restore 4d4 + 4 HP<br>Duration: Instantaneous<br>Rarity: Uncommon",
		},
		{
			Name:        "Antitoxin",
			Price:       core.Money{Gold: 50},
			Rarity:      "common",
			Preview:     "A clear liquid that neutralizes poison.",
			Description: "Grants advantage on saving throws against poison for 1 hour.",
			Stats:       "Effect: Advantage on saves vs poison<br>Duration: 1 hour<br>Type: Consumable",
		},
	}

	return c
}
