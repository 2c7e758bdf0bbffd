package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountToWords converts a money amount to English words.
// Example: 18.50 → "Eighteen Dollars and Fifty Cents Only"
func AmountToWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "Negative " + AmountToWords(amount.Neg())
	}

	cents := amount.Round(2).Shift(2).IntPart()
	dollars := cents / 100
	cents %= 100

	var b strings.Builder
	if dollars == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(convertToWords(dollars))
	}
	if dollars == 1 {
		b.WriteString(" Dollar")
	} else {
		b.WriteString(" Dollars")
	}
	if cents > 0 {
		b.WriteString(" and ")
		b.WriteString(convertUnder100(cents))
		if cents == 1 {
			b.WriteString(" Cent")
		} else {
			b.WriteString(" Cents")
		}
	}
	b.WriteString(" Only")
	return b.String()
}

var scales = []struct {
	size int64
	name string
}{
	{1_000_000_000, "Billion"},
	{1_000_000, "Million"},
	{1_000, "Thousand"},
}

func convertToWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string
	for _, s := range scales {
		if n >= s.size {
			parts = append(parts, convertUnder1000(n/s.size)+" "+s.name)
			n %= s.size
		}
	}

	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}

	// Remaining (1-99)
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+convertUnder100(n))
		} else {
			parts = append(parts, convertUnder100(n))
		}
	}

	return strings.Join(parts, " ")
}

func convertUnder1000(n int64) string {
	if n < 100 {
		return convertUnder100(n)
	}
	result := ones[n/100] + " Hundred"
	if n%100 != 0 {
		result += " " + convertUnder100(n%100)
	}
	return result
}

func convertUnder100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
