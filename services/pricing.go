// Package services provides pricing, parsing and reference data for quote tables.
package services

import "github.com/shopspring/decimal"

// CalcLineAmount returns quantity × price × (1 − discount/100).
func CalcLineAmount(quantity, price, discount decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discount.Div(hundred))
	return quantity.Mul(price).Mul(factor)
}

// CalcTax returns the tax owed on subtotal at a percentage rate.
func CalcTax(subtotal, taxRate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate).Div(hundred)
}

// QuoteSummary holds the derived totals shown beneath a quote table.
type QuoteSummary struct {
	Subtotal  decimal.Decimal
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal // Subtotal * TaxRate / 100
	Total     decimal.Decimal // Subtotal + TaxAmount
}

// SummaryLine is one row as read back from the document: the raw cell
// texts plus the inclusion checkbox state.
type SummaryLine struct {
	QuantityText string
	PriceText    string
	DiscountText string
	Included     bool
}

// ComputeSummary sums the included lines and applies tax.
// Lines whose quantity or price cannot be parsed contribute nothing;
// an unparseable discount counts as no discount.
func ComputeSummary(lines []SummaryLine, taxRate decimal.Decimal) QuoteSummary {
	subtotal := decimal.Zero
	for _, line := range lines {
		if !line.Included {
			continue
		}
		qty, ok := TryParseNumeric(line.QuantityText, KindQuantity)
		if !ok {
			continue
		}
		price, ok := TryParseNumeric(line.PriceText, KindPrice)
		if !ok {
			continue
		}
		discount := ParseNumeric(line.DiscountText, KindDiscount)
		subtotal = subtotal.Add(CalcLineAmount(qty, price, discount))
	}

	taxAmount := CalcTax(subtotal, taxRate)
	return QuoteSummary{
		Subtotal:  subtotal,
		TaxRate:   taxRate,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount),
	}
}
