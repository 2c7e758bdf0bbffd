package services

import "testing"

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		kind   NumericKind
		expect string
	}{
		{"price plain", "10", KindPrice, "10"},
		{"price with symbol", "$10.00", KindPrice, "10"},
		{"price with commas", "$1,299.99", KindPrice, "1299.99"},
		{"price garbage", "abc", KindPrice, "0"},
		{"price empty", "", KindPrice, "0"},
		{"price negative", "-5", KindPrice, "0"},
		{"price trailing text", "12.5 each", KindPrice, "12.5"},
		{"price double dot", "1.2.3", KindPrice, "1.2"},
		{"price exponent", "1e3", KindPrice, "1000"},
		{"price negative exponent", "$2.5E-1", KindPrice, "0.25"},
		{"price dangling exponent", "7e", KindPrice, "7"},
		{"discount exponent", "1.5e1%", KindDiscount, "15"},
		{"discount percent", "10%", KindDiscount, "10"},
		{"discount decimal", "12.5 %", KindDiscount, "12.5"},
		{"discount garbage", "n/a", KindDiscount, "0"},
		{"discount negative", "-10", KindDiscount, "0"},
		{"discount over 100", "150", KindDiscount, "100"},
		{"quantity plain", "2", KindQuantity, "2"},
		{"quantity with units", "3 pcs", KindQuantity, "3"},
		{"quantity minus stripped", "-4", KindQuantity, "4"},
		{"quantity empty", "", KindQuantity, "1"},
		{"quantity letters", "many", KindQuantity, "1"},
		{"quantity trailing dot", "5.", KindQuantity, "5"},
		{"quantity exponent letters stripped", "1e3", KindQuantity, "13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumeric(tt.text, tt.kind)
			if got.String() != tt.expect {
				t.Errorf("ParseNumeric(%q, %s) = %s, want %s", tt.text, tt.kind, got, tt.expect)
			}
		})
	}
}

func TestTryParseNumeric_Failures(t *testing.T) {
	for _, text := range []string{"", "$", "abc", "-1"} {
		if _, ok := TryParseNumeric(text, KindPrice); ok {
			t.Errorf("TryParseNumeric(%q) reported ok, want failure", text)
		}
	}
}

func TestNormalizeCell(t *testing.T) {
	tests := []struct {
		text    string
		kind    NumericKind
		display string
	}{
		{"10", KindPrice, "$10.00"},
		{"oops", KindPrice, "$0.00"},
		{"10", KindDiscount, "10%"},
		{"", KindDiscount, "0%"},
		{"2.50", KindQuantity, "2.5"},
		{"x", KindQuantity, "1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.text, func(t *testing.T) {
			_, display := NormalizeCell(tt.text, tt.kind)
			if display != tt.display {
				t.Errorf("NormalizeCell(%q, %s) display = %q, want %q", tt.text, tt.kind, display, tt.display)
			}
		})
	}
}

func TestParseNumeric_Idempotent(t *testing.T) {
	inputs := []string{"10", "$10.5", "1,234.567", "0.005", "garbage", "", "99.999", "$0.10", "7e3"}
	for _, kind := range []NumericKind{KindPrice, KindDiscount, KindQuantity} {
		for _, in := range inputs {
			once := FormatNumeric(ParseNumeric(in, kind), kind)
			twice := FormatNumeric(ParseNumeric(once, kind), kind)
			if once != twice {
				t.Errorf("%s %q: format(parse) = %q, reparsed = %q", kind, in, once, twice)
			}
		}
	}
}

func TestCleanFormValue(t *testing.T) {
	if got := CleanFormValue("$1,200.50", KindPrice); got != "1200.50" {
		t.Errorf("CleanFormValue price = %q", got)
	}
	if got := CleanFormValue("15%", KindDiscount); got != "15" {
		t.Errorf("CleanFormValue discount = %q", got)
	}
	if got := CleanFormValue(" 3 pcs", KindQuantity); got != "3" {
		t.Errorf("CleanFormValue quantity = %q", got)
	}
}
