package quotetable

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTable_Structure(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	table := f.table(t)

	assert.Equal(t, "all-mandatory", table.AttrOr("data-product-selection", ""))
	assert.Equal(t, "default", table.AttrOr("data-theme", ""))
	assert.Equal(t, "10", table.AttrOr("data-tax-rate", ""))
	for _, sel := range []string{
		".quote-title-editable", ".quote-description-editable", ".quote-header",
		".quote-body .empty-row", ".quote-summary", ".quote-footer .add-product-btn",
		".quote-footer .import-products-btn", ".quote-footer .delete-table-btn",
		`.quote-menu[data-menu-kind="options"] .column-visibility-option`,
		`.quote-menu[data-menu-kind="theme"] .theme-option`,
		`.quote-menu[data-menu-kind="selection"] .selection-option`,
	} {
		assert.Positive(t, table.Find(sel).Length(), sel)
	}
	assert.Equal(t, 5, table.Find(".quote-header .column-header").Length())
	assert.Equal(t, "Click to Add Product", f.text(t, ".empty-row .add-product-link"))
	assert.Equal(t, "$0.00", f.text(t, ".total-value"))
}

func TestBuildTable_RejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = "neon"
	_, err := BuildTable("t1", cfg)
	assert.ErrorIs(t, err, ErrUnknownTheme)
}

func TestUpdateTableColumns(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.add(t, "Widget", "2", "10", "0")
	table := f.table(t)

	vis := AllColumns()
	require.NoError(t, vis.Set("quantity", false))
	UpdateTableColumns(table, vis)

	grid := "30px 3fr 1fr 1fr 1fr 40px"
	assert.Equal(t, grid, styleOf(table.Find(".quote-header"), "grid-template-columns"))
	table.Find(".quote-body > .quote-row").Each(func(_ int, row *goquery.Selection) {
		assert.Equal(t, grid, styleOf(row, "grid-template-columns"))
	})
	assert.True(t, isHidden(table.Find(`.column-header[data-column="quantity"]`)))
	qty := table.Find(`.quote-row .quantity-cell`)
	assert.True(t, isHidden(qty))
	assert.Equal(t, "2", qty.Text(), "hidden cells keep their data")
	assert.False(t, isHidden(table.Find(`.quote-row .price-cell`)))
	assert.Equal(t, 0, table.Find(`.column-visibility-option[data-column="quantity"] input[checked]`).Length())
	assert.Equal(t, "productName,discount,price,amount", table.AttrOr("data-columns", ""))
}

func TestApplyTheme(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.add(t, "A", "1", "1", "0")
	f.add(t, "B", "1", "1", "0")
	table := f.table(t)

	require.NoError(t, ApplyTheme(table, "blue"))
	first, _ := goquery.OuterHtml(table)
	require.NoError(t, ApplyTheme(table, "blue"))
	second, _ := goquery.OuterHtml(table)
	assert.Equal(t, first, second, "applying a theme twice is a no-op")

	assert.Equal(t, "blue", table.AttrOr("data-theme", ""))
	assert.Equal(t, "#1976d2", styleOf(table.Find(".quote-header"), "background"))
	rows := table.Find(productRows)
	assert.Equal(t, "#f5f9ff", styleOf(rows.Eq(0), "background"))
	assert.Equal(t, "#e3f2fd", styleOf(rows.Eq(1), "background"))
	assert.Equal(t, "#2196F3", styleOf(table.Find(".add-product-btn"), "border-color"))
	assert.True(t, table.Find(`.theme-option[data-theme-id="blue"]`).HasClass("selected"))
	assert.Equal(t, "A", ReadRow(rows.Eq(0)).ProductName)
}

func TestApplyTheme_Unknown(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	table := f.table(t)
	before, _ := goquery.OuterHtml(table)

	assert.ErrorIs(t, ApplyTheme(table, "neon"), ErrUnknownTheme)
	after, _ := goquery.OuterHtml(table)
	assert.Equal(t, before, after)
}

func TestApplySelectionMode_Reconciles(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.add(t, "A", "1", "1", "0")
	f.add(t, "B", "1", "1", "0")
	table := f.table(t)

	dropped, err := ApplySelectionMode(table, AllOptional)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Equal(t, 2, table.Find(".product-checkbox[checked]").Length())
	assert.Equal(t, 2, table.Find(".quote-row.product-optional").Length())

	dropped, err = ApplySelectionMode(table, AllMandatory)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Equal(t, 0, table.Find(".product-checkbox").Length())
	assert.Equal(t, "all-mandatory", table.AttrOr("data-product-selection", ""))

	_, err = ApplySelectionMode(table, "many")
	assert.ErrorIs(t, err, ErrUnknownSelectionMode)
}
