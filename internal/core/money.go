// Package core implements the merchant screen's economic model: the
// three-denomination coin system and the session ledger that records a
// player's purchases and sales.
//
// This file contains the currency conversion and formatting helpers.
// Everything else in the package depends on them.
package core

import (
	"strconv"
	"strings"
)

// Money is an amount expressed in the three coin denominations.
// 1 gold = 10 silver = 100 copper.
//
// Fields may individually exceed their natural range (e.g. Silver > 9):
// sale proceeds are added to the wallet denomination-wise without
// normalization. Only values produced by FromUnits are normalized.
type Money struct {
	Gold   int
	Silver int
	Copper int
}

// Units returns the total value in copper, the indivisible base unit.
// It accepts non-normalized input; this is the canonicalization step
// every comparison goes through.
func (m Money) Units() int {
	return m.Gold*100 + m.Silver*10 + m.Copper
}

// FromUnits decomposes a copper total into the canonical form where
// Silver and Copper are each in [0,9]. units must be non-negative.
// This is the only normalization path in the package.
func FromUnits(units int) Money {
	return Money{
		Gold:   units / 100,
		Silver: (units % 100) / 10,
		Copper: units % 10,
	}
}

// IsZero reports whether all three denominations are zero.
func (m Money) IsZero() bool {
	return m.Gold == 0 && m.Silver == 0 && m.Copper == 0
}

// Format renders the amount for display, listing only non-zero
// denominations in gold, silver, copper order: "2 gold, 3 silver".
// An all-zero amount renders as "0 copper"; that exact text is relied
// on by the UI.
func (m Money) Format() string {
	parts := make([]string, 0, 3)
	if m.Gold > 0 {
		parts = append(parts, strconv.Itoa(m.Gold)+" gold")
	}
	if m.Silver > 0 {
		parts = append(parts, strconv.Itoa(m.Silver)+" silver")
	}
	if m.Copper > 0 {
		parts = append(parts, strconv.Itoa(m.Copper)+" copper")
	}
	if len(parts) == 0 {
		return "0 copper"
	}
	return strings.Join(parts, ", ")
}

// Validate rejects amounts with a negative denomination. Amounts are
// allowed to be zero; callers that need a non-zero amount check that
// separately.
func (m Money) Validate() error {
	if m.Gold < 0 || m.Silver < 0 || m.Copper < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// ParseCoinField interprets a currency-setup form field as a coin
// count. Anything that is not a parseable non-negative integer counts
// as 0; setup never fails on bad input.
func ParseCoinField(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
