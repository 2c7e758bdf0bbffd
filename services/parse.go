package services

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// NumericKind names the value an editable cell holds.
type NumericKind string

const (
	KindPrice    NumericKind = "price"
	KindDiscount NumericKind = "discount"
	KindQuantity NumericKind = "quantity"
)

var (
	hundred = decimal.NewFromInt(100)

	// leadingNumber mirrors parseFloat: the longest numeric prefix wins,
	// including an exponent, and anything after it is ignored ("1.2.3"
	// reads as 1.2, "1e3" as 1000).
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	nonQuantity   = regexp.MustCompile(`[^0-9.]`)
)

// ValidKind reports whether kind is one of the editable numeric fields.
func ValidKind(kind NumericKind) bool {
	switch kind {
	case KindPrice, KindDiscount, KindQuantity:
		return true
	}
	return false
}

// DefaultValue returns the fallback used when a cell cannot be parsed.
func DefaultValue(kind NumericKind) decimal.Decimal {
	if kind == KindQuantity {
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}

// stripSymbols removes the characters that are decoration for the given kind.
func stripSymbols(text string, kind NumericKind) string {
	switch kind {
	case KindPrice:
		text = strings.NewReplacer("$", "", ",", "").Replace(text)
	case KindDiscount:
		text = strings.NewReplacer("%", "", ",", "").Replace(text)
	case KindQuantity:
		text = nonQuantity.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

// TryParseNumeric strips the kind's symbols and reads the leading number.
// It reports false when no number is present or the value is negative.
func TryParseNumeric(text string, kind NumericKind) (decimal.Decimal, bool) {
	match := leadingNumber.FindString(stripSymbols(text, kind))
	if match == "" {
		return decimal.Zero, false
	}
	if strings.HasSuffix(match, ".") {
		match = strings.TrimSuffix(match, ".")
	}
	d, err := decimal.NewFromString(match)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// ParseNumeric turns user-edited cell text into a value, falling back to the
// kind default on failure. Discounts are capped at 100.
func ParseNumeric(text string, kind NumericKind) decimal.Decimal {
	d, ok := TryParseNumeric(text, kind)
	if !ok {
		return DefaultValue(kind)
	}
	if kind == KindDiscount && d.GreaterThan(hundred) {
		return hundred
	}
	return d
}

// FormatNumeric renders a value the way its cell displays it.
func FormatNumeric(value decimal.Decimal, kind NumericKind) string {
	switch kind {
	case KindPrice:
		return FormatMoney(value)
	case KindDiscount:
		return FormatPercent(value)
	default:
		return value.String()
	}
}

// NormalizeCell parses cell text and returns the canonical value together
// with the text the cell should display afterwards.
func NormalizeCell(text string, kind NumericKind) (decimal.Decimal, string) {
	v := ParseNumeric(text, kind)
	return v, FormatNumeric(v, kind)
}

// CleanFormValue reverses cell formatting for the edit form, returning the
// bare number text ("$1,200.50" -> "1200.50").
func CleanFormValue(text string, kind NumericKind) string {
	return stripSymbols(text, kind)
}
