package formatter

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
)

// Amount renders a full monetary amount with the currency's own formatting
// rules, e.g. "$1,250,000.00".
func Amount(v float64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return money.NewFromFloat(v, currency).Display()
}

// AmountCompact renders a shortened amount for tables, e.g. "$1.3M".
func AmountCompact(v float64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	symbol := "$"
	if c := money.GetCurrency(currency); c != nil {
		symbol = c.Grapheme
	}

	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%s%s%.1fB", sign, symbol, abs/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%s%s%.1fM", sign, symbol, abs/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%s%s%.1fK", sign, symbol, abs/1e3)
	default:
		return fmt.Sprintf("%s%s%.0f", sign, symbol, abs)
	}
}

// Percent renders a percentage with one decimal, e.g. "12.5%".
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// OptionalPercent renders a nilable percentage, with a dim dash when the
// value is undefined.
func OptionalPercent(v *float64) string {
	if v == nil {
		return Dim("—")
	}
	return Percent(*v)
}
