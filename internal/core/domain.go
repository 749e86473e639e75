package core

import (
	"errors"
	"strings"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNegativeAmount    = errors.New("negative amount")
	ErrEmptyItemName     = errors.New("empty item name")
)

type (
	// Item is a catalog entry owned by the catalog provider; the core
	// only reads it. Stats may contain simple markup.
	Item struct {
		Name        string
		Price       Money
		Rarity      string
		Preview     string
		Description string
		Stats       string
	}

	// StoreInfo describes one store front in navigation order.
	StoreInfo struct {
		Key         string
		Title       string
		Description string
	}

	// SiteConfig carries the configurable page header.
	SiteConfig struct {
		Title    string
		Subtitle string
	}

	// Transaction records one completed purchase or sale.
	Transaction struct {
		ItemName string
		Price    Money
	}
)

// Validate checks the provider guarantees: a non-empty name and
// non-negative price denominations.
func (it Item) Validate() error {
	if strings.TrimSpace(it.Name) == "" {
		return ErrEmptyItemName
	}
	if err := it.Price.Validate(); err != nil {
		return err
	}
	return nil
}
