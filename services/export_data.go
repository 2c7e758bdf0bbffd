package services

// Export column keys, in canonical table order.
const (
	ColumnProductName = "productName"
	ColumnQuantity    = "quantity"
	ColumnPrice       = "price"
	ColumnDiscount    = "discount"
	ColumnAmount      = "amount"
)

// ColumnOrder is the canonical left-to-right column order.
var ColumnOrder = []string{ColumnProductName, ColumnQuantity, ColumnDiscount, ColumnPrice, ColumnAmount}

// ColumnLabels maps a column key to its header text.
var ColumnLabels = map[string]string{
	ColumnProductName: "Product Name",
	ColumnQuantity:    "Quantity",
	ColumnPrice:       "Price",
	ColumnDiscount:    "Discount (%)",
	ColumnAmount:      "Amount",
}

// ExportRow represents a single product row in the quote export.
type ExportRow struct {
	Index       int
	ProductName string
	Description string
	Quantity    string
	Price       string
	Discount    string
	Amount      string
	Included    bool
}

// ExportSignature is one signature box of the quote.
type ExportSignature struct {
	Label string
	Name  string
	Email string
	Role  string
}

// ExportData holds all data needed for export.
type ExportData struct {
	Title       string
	Description string
	CreatedDate string
	Columns     []string // visible column keys
	Rows        []ExportRow
	Summary     QuoteSummary
	Signatures  []ExportSignature
}

// cell returns the formatted value of a row for a column key.
func (r ExportRow) cell(column string) string {
	switch column {
	case ColumnProductName:
		return r.ProductName
	case ColumnQuantity:
		return r.Quantity
	case ColumnPrice:
		return r.Price
	case ColumnDiscount:
		return r.Discount
	case ColumnAmount:
		return r.Amount
	}
	return ""
}

// IncludedRows returns the rows that count toward the totals.
func (d ExportData) IncludedRows() []ExportRow {
	var rows []ExportRow
	for _, r := range d.Rows {
		if r.Included {
			rows = append(rows, r)
		}
	}
	return rows
}

// TotalInWords renders the quote total for the PDF footer.
func (d ExportData) TotalInWords() string {
	return AmountToWords(d.Summary.Total)
}
