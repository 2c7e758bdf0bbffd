package quotetable

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"quotecomposer/services"
)

// SelectionMode decides which rows count toward the totals.
type SelectionMode string

const (
	AllMandatory SelectionMode = "all-mandatory"
	AllOptional  SelectionMode = "all-optional"
	OnlyOne      SelectionMode = "only-one"
)

// SelectionModes lists the modes in menu order.
var SelectionModes = []SelectionMode{AllMandatory, AllOptional, OnlyOne}

// ParseSelectionMode validates a mode name.
func ParseSelectionMode(s string) (SelectionMode, error) {
	for _, m := range SelectionModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSelectionMode, s)
}

// Label is the menu text of the mode.
func (m SelectionMode) Label() string {
	switch m {
	case AllOptional:
		return "All Optional"
	case OnlyOne:
		return "Only One"
	default:
		return "All Mandatory"
	}
}

// RowClass is the class every row carries under this mode.
func (m SelectionMode) RowClass() string {
	switch m {
	case AllOptional:
		return "product-optional"
	case OnlyOne:
		return "product-exclusive"
	default:
		return "product-mandatory"
	}
}

var rowClasses = []string{"product-mandatory", "product-optional", "product-exclusive"}

// ColumnVisibility flags the displayed columns of one table.
type ColumnVisibility struct {
	ProductName bool
	Quantity    bool
	Discount    bool
	Price       bool
	Amount      bool
}

// AllColumns shows every column.
func AllColumns() ColumnVisibility {
	return ColumnVisibility{ProductName: true, Quantity: true, Discount: true, Price: true, Amount: true}
}

func (v *ColumnVisibility) flag(column string) *bool {
	switch column {
	case services.ColumnProductName:
		return &v.ProductName
	case services.ColumnQuantity:
		return &v.Quantity
	case services.ColumnDiscount:
		return &v.Discount
	case services.ColumnPrice:
		return &v.Price
	case services.ColumnAmount:
		return &v.Amount
	}
	return nil
}

// Visible reports whether column is shown. Unknown columns are not.
func (v ColumnVisibility) Visible(column string) bool {
	f := v.flag(column)
	return f != nil && *f
}

// Set shows or hides one column.
func (v *ColumnVisibility) Set(column string, visible bool) error {
	f := v.flag(column)
	if f == nil {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	*f = visible
	return nil
}

// String lists the visible columns in canonical order, comma separated.
func (v ColumnVisibility) String() string {
	var keys []string
	for _, c := range services.ColumnOrder {
		if v.Visible(c) {
			keys = append(keys, c)
		}
	}
	return strings.Join(keys, ",")
}

// ParseColumnVisibility reads the String form back. Unknown names are ignored.
func ParseColumnVisibility(s string) ColumnVisibility {
	var v ColumnVisibility
	for _, key := range strings.Split(s, ",") {
		_ = v.Set(strings.TrimSpace(key), true)
	}
	return v
}

// Config is the per-table configuration, stored as data attributes on
// the table root so that it travels with the document.
type Config struct {
	SelectionMode   SelectionMode
	TaxRate         decimal.Decimal
	Theme           string
	Columns         ColumnVisibility
	DiscountEnabled bool
}

// DefaultConfig matches a table inserted with no configured overrides.
func DefaultConfig() Config {
	return Config{
		SelectionMode:   AllMandatory,
		TaxRate:         decimal.NewFromInt(10),
		Theme:           services.DefaultThemeID,
		Columns:         AllColumns(),
		DiscountEnabled: true,
	}
}

// Validate rejects configurations a table cannot be built from.
func (c Config) Validate() error {
	if _, err := ParseSelectionMode(string(c.SelectionMode)); err != nil {
		return err
	}
	if c.TaxRate.IsNegative() {
		return ErrInvalidTaxRate
	}
	if _, ok := services.FindTheme(c.Theme); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, c.Theme)
	}
	return nil
}

// AvailableColumns returns the columns this table renders, in canonical
// order. The discount column exists only when the feature is enabled.
func (c Config) AvailableColumns() []string {
	var cols []string
	for _, col := range services.ColumnOrder {
		if col == services.ColumnDiscount && !c.DiscountEnabled {
			continue
		}
		cols = append(cols, col)
	}
	return cols
}

// VisibleColumns returns the available columns that are shown.
func (c Config) VisibleColumns() []string {
	var cols []string
	for _, col := range c.AvailableColumns() {
		if c.Columns.Visible(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

// ConfigOf reads the configuration back from a table root. Missing or
// malformed attributes fall back to DefaultConfig values.
func ConfigOf(table *goquery.Selection) Config {
	cfg := DefaultConfig()
	if mode, err := ParseSelectionMode(table.AttrOr("data-product-selection", "")); err == nil {
		cfg.SelectionMode = mode
	}
	if rate, err := ParseTaxRate(table.AttrOr("data-tax-rate", "")); err == nil {
		cfg.TaxRate = rate
	}
	if theme := table.AttrOr("data-theme", ""); theme != "" {
		cfg.Theme = theme
	}
	if cols, ok := table.Attr("data-columns"); ok {
		cfg.Columns = ParseColumnVisibility(cols)
	}
	cfg.DiscountEnabled = table.AttrOr("data-discount", "true") != "false"
	return cfg
}

// ParseTaxRate reads a user-entered tax rate. A trailing % is allowed; the
// rest must be a non-negative decimal number.
func ParseTaxRate(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	rate, err := decimal.NewFromString(s)
	if err != nil || s == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidTaxRate, text)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidTaxRate, text)
	}
	return rate, nil
}

// GridTemplate builds the column track list: the drag handle, one track per
// visible column in canonical order and the row actions.
func GridTemplate(cols ColumnVisibility, discountEnabled bool) string {
	tracks := []string{"30px"}
	for _, col := range services.ColumnOrder {
		if col == services.ColumnDiscount && !discountEnabled {
			continue
		}
		if !cols.Visible(col) {
			continue
		}
		if col == services.ColumnProductName {
			tracks = append(tracks, "3fr")
		} else {
			tracks = append(tracks, "1fr")
		}
	}
	tracks = append(tracks, "40px")
	return strings.Join(tracks, " ")
}
