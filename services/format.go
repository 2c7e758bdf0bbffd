package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount as it appears in quote cells: "$X.XX".
func FormatMoney(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// FormatPercent renders a percentage with its shortest decimal form ("12.5%").
func FormatPercent(p decimal.Decimal) string {
	return p.String() + "%"
}

// FormatMoneyGrouped formats an amount with thousands separators for
// exported documents (e.g., $1,234,567.90). Cells keep the ungrouped form.
// The result always includes exactly 2 decimal places.
func FormatMoneyGrouped(amount decimal.Decimal) string {
	negative := false
	if amount.IsNegative() {
		negative = true
		amount = amount.Neg()
	}

	raw := amount.StringFixed(2)

	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "$" + applyThousandsGrouping(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// applyThousandsGrouping inserts a comma between every group of three
// digits, counting from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}
