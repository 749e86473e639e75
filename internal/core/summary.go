package core

// Summary is the read-only session recap shown by the shopping summary
// view. Totals are field-wise sums of the recorded prices and are
// deliberately not normalized, matching how they were accumulated.
type Summary struct {
	Purchased []Transaction
	Sold      []Transaction

	TotalSpent  Money
	TotalEarned Money

	StartingBalance Money
	Wallet          Money

	// NetUnits is wallet minus starting balance in copper; Net is its
	// magnitude formatted with a "+" or "-" prefix.
	NetUnits int
	Net      string
}

// Summarize computes the session recap. It mutates nothing; calling it
// twice without intervening operations yields identical output.
func (l *Ledger) Summarize() Summary {
	var spent, earned Money
	for _, t := range l.purchased {
		spent.Gold += t.Price.Gold
		spent.Silver += t.Price.Silver
		spent.Copper += t.Price.Copper
	}
	for _, t := range l.sold {
		earned.Gold += t.Price.Gold
		earned.Silver += t.Price.Silver
		earned.Copper += t.Price.Copper
	}

	net := l.wallet.Units() - l.starting.Units()
	sign, mag := "+", net
	if net < 0 {
		sign, mag = "-", -net
	}

	return Summary{
		Purchased:       l.Purchased(),
		Sold:            l.Sold(),
		TotalSpent:      spent,
		TotalEarned:     earned,
		StartingBalance: l.starting,
		Wallet:          l.wallet,
		NetUnits:        net,
		Net:             sign + FromUnits(mag).Format(),
	}
}
