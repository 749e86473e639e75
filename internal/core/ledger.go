package core

import (
	"fmt"
	"strings"
)

// Ledger owns the player's wallet for one shopping session and records
// every completed purchase and sale in chronological order.
//
// A Ledger is not safe for concurrent use; all operations run to
// completion inside a single UI callback, and the session layer owns
// the single instance.
type Ledger struct {
	wallet    Money
	starting  Money
	purchased []Transaction
	sold      []Transaction
}

// NewLedger starts a session with the given wallet. The starting
// balance snapshot used by summaries is taken here.
func NewLedger(initial Money) *Ledger {
	return &Ledger{wallet: initial, starting: initial}
}

// Wallet returns the current holdings.
func (l *Ledger) Wallet() Money { return l.wallet }

// StartingBalance returns the snapshot taken at session start.
func (l *Ledger) StartingBalance() Money { return l.starting }

// Purchased returns the purchase records in chronological order.
func (l *Ledger) Purchased() []Transaction {
	return append([]Transaction(nil), l.purchased...)
}

// Sold returns the sale records in chronological order.
func (l *Ledger) Sold() []Transaction {
	return append([]Transaction(nil), l.sold...)
}

// CanAfford reports whether the wallet covers the price. Comparison is
// on total copper value, so a denormalized wallet still compares
// correctly.
func (l *Ledger) CanAfford(price Money) bool {
	return l.wallet.Units() >= price.Units()
}

// CalculateChange returns the wallet the player would hold after
// paying the price, normalized. The second result is false when the
// price is unaffordable.
func (l *Ledger) CalculateChange(price Money) (Money, bool) {
	have, want := l.wallet.Units(), price.Units()
	if have < want {
		return Money{}, false
	}
	return FromUnits(have - want), true
}

// Shortfall returns how much more the player needs to afford the
// price, normalized. Zero when the price is already affordable.
func (l *Ledger) Shortfall(price Money) Money {
	have, want := l.wallet.Units(), price.Units()
	if have >= want {
		return Money{}
	}
	return FromUnits(want - have)
}

// Purchase deducts the item price from the wallet and appends a record
// to the purchase list. The new wallet is the normalized difference of
// the copper totals. On ErrInsufficientFunds nothing changes.
func (l *Ledger) Purchase(item Item) (Money, error) {
	if !l.CanAfford(item.Price) {
		return l.wallet, ErrInsufficientFunds
	}
	l.purchased = append(l.purchased, Transaction{ItemName: item.Name, Price: item.Price})
	l.wallet = FromUnits(l.wallet.Units() - item.Price.Units())
	return l.wallet, nil
}

// Sell records a sale and adds the proceeds to the wallet denomination
// by denomination, without renormalization: selling for 15 silver
// leaves a literal Silver field of 15. This asymmetry with Purchase is
// part of the ledger's observable behavior.
//
// A blank item name or all-zero proceeds fail with ErrInvalidInput and
// leave the ledger untouched.
func (l *Ledger) Sell(itemName string, proceeds Money) (Money, error) {
	if strings.TrimSpace(itemName) == "" {
		return l.wallet, fmt.Errorf("%w: item name is blank", ErrInvalidInput)
	}
	if proceeds.IsZero() {
		return l.wallet, fmt.Errorf("%w: sale amount is zero", ErrInvalidInput)
	}
	if err := proceeds.Validate(); err != nil {
		return l.wallet, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	l.sold = append(l.sold, Transaction{ItemName: itemName, Price: proceeds})
	l.wallet.Gold += proceeds.Gold
	l.wallet.Silver += proceeds.Silver
	l.wallet.Copper += proceeds.Copper
	return l.wallet, nil
}

// ResetSession clears both transaction lists and snapshots the current
// wallet as the new starting balance. The wallet itself is untouched.
func (l *Ledger) ResetSession() {
	l.purchased = nil
	l.sold = nil
	l.starting = l.wallet
}
