package quotetable

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quotecomposer/services"
	"quotecomposer/templates"
)

// Row is one product line of a quote table.
type Row struct {
	ID          string
	ProductName string
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Discount    decimal.Decimal
	Included    bool
}

// NewRowID returns an opaque row id, unique within any table.
func NewRowID() string {
	return "row-" + uuid.NewString()
}

// NewTableID returns a fresh table id.
func NewTableID() string {
	return "quote-table-" + uuid.NewString()
}

// Amount is quantity × price × (1 − discount/100).
func (r Row) Amount() decimal.Decimal {
	return services.CalcLineAmount(r.Quantity, r.Price, r.Discount)
}

// RowFromForm builds a row from a submitted product form. Unparseable
// numbers fall back to their defaults. A form without a RowID gets a new id.
func RowFromForm(form services.ProductForm) Row {
	id := form.RowID
	if id == "" {
		id = NewRowID()
	}
	return Row{
		ID:          id,
		ProductName: strings.TrimSpace(form.ProductName),
		Description: strings.TrimSpace(form.Description),
		Quantity:    services.ParseNumeric(form.Quantity, services.KindQuantity),
		Price:       services.ParseNumeric(form.Price, services.KindPrice),
		Discount:    services.ParseNumeric(form.Discount, services.KindDiscount),
		Included:    true,
	}
}

// Form is the edit form prefill for the row.
func (r Row) Form() services.ProductForm {
	return services.ProductForm{
		ProductName: r.ProductName,
		Description: r.Description,
		Quantity:    r.Quantity.String(),
		Price:       r.Price.StringFixed(2),
		Discount:    r.Discount.String(),
		RowID:       r.ID,
	}
}

func rowView(tableID string, r Row, cfg Config) templates.RowView {
	if !cfg.DiscountEnabled {
		r.Discount = decimal.Zero
	}
	hidden := make(map[string]bool)
	for _, col := range services.ColumnOrder {
		hidden[col] = !cfg.Columns.Visible(col)
	}
	return templates.RowView{
		TableID:         tableID,
		ID:              r.ID,
		ProductName:     r.ProductName,
		Description:     r.Description,
		Quantity:        services.FormatNumeric(r.Quantity, services.KindQuantity),
		Price:           services.FormatNumeric(r.Price, services.KindPrice),
		Discount:        services.FormatNumeric(r.Discount, services.KindDiscount),
		Amount:          services.FormatMoney(r.Amount()),
		RowClass:        cfg.SelectionMode.RowClass(),
		Checkbox:        cfg.SelectionMode == AllOptional,
		Included:        r.Included || cfg.SelectionMode != AllOptional,
		GridTemplate:    GridTemplate(cfg.Columns, cfg.DiscountEnabled),
		Hidden:          hidden,
		DiscountEnabled: cfg.DiscountEnabled,
	}
}

// RenderRow renders the markup of one product row of table tableID.
func RenderRow(tableID string, r Row, cfg Config) (string, error) {
	return templates.RenderString(context.Background(), templates.QuoteRow(rowView(tableID, r, cfg)))
}

// ReadRow reverses RenderRow: it reads a row's values back from its cells.
func ReadRow(row *goquery.Selection) Row {
	return Row{
		ID:          row.AttrOr("data-row-id", ""),
		ProductName: strings.TrimSpace(row.Find(".product-name").First().Text()),
		Description: strings.TrimSpace(row.Find(".product-description").First().Text()),
		Quantity:    services.ParseNumeric(cellText(row, services.KindQuantity), services.KindQuantity),
		Price:       services.ParseNumeric(cellText(row, services.KindPrice), services.KindPrice),
		Discount:    services.ParseNumeric(cellText(row, services.KindDiscount), services.KindDiscount),
		Included:    isIncluded(row),
	}
}

func cell(row *goquery.Selection, kind services.NumericKind) *goquery.Selection {
	return row.Find(`.editable-cell[data-field="` + string(kind) + `"]`).First()
}

func cellText(row *goquery.Selection, kind services.NumericKind) string {
	return strings.TrimSpace(cell(row, kind).Text())
}

// isIncluded reports the inclusion checkbox state; rows without one count.
func isIncluded(row *goquery.Selection) bool {
	box := row.Find(".product-checkbox").First()
	if box.Length() == 0 {
		return true
	}
	_, checked := box.Attr("checked")
	return checked
}

// restingOpacity is the opacity of a row that is not being dragged.
func restingOpacity(row *goquery.Selection) string {
	if isIncluded(row) {
		return "1"
	}
	return "0.5"
}

// refreshAmount recomputes the amount cell from the row's current cells.
func refreshAmount(row *goquery.Selection) {
	r := ReadRow(row)
	row.Find(".amount-cell").First().SetText(services.FormatMoney(r.Amount()))
}
