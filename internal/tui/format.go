package tui

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/predictor/internal/domain"
)

const (
	minPriceDigits = 2
	maxPriceDigits = 8
)

// FormatPrice renders a USDT price with thousands separators and 2 to 8 fraction digits,
// e.g. $78,245.32 or $0.00000245.
func FormatPrice(price decimal.Decimal) string {
	rounded := price.Round(maxPriceDigits)

	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(maxPriceDigits), ".")
	frac = strings.TrimRight(frac, "0")
	for len(frac) < minPriceDigits {
		frac += "0"
	}

	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return "$" + rounded.String()
	}

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}

	return sign + "$" + humanize.BigComma(n) + "." + frac
}

// FormatDate renders a prediction date, e.g. May 18, 2026.
func FormatDate(d domain.CalendarDate) string {
	return d.Long()
}
