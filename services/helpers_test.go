package services

import "bytes"

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

func sampleExport() ExportData {
	return ExportData{
		Title:       "Office Refresh",
		Description: "Hardware for the new floor",
		CreatedDate: "2026-01-15",
		Columns:     []string{ColumnProductName, ColumnQuantity, ColumnPrice, ColumnDiscount, ColumnAmount},
		Rows: []ExportRow{
			{Index: 1, ProductName: "Laptop Pro X1", Description: "16GB RAM", Quantity: "2", Price: "$1299.99", Discount: "0%", Amount: "$2599.98", Included: true},
			{Index: 2, ProductName: "Wireless Mouse", Quantity: "1", Price: "$29.99", Discount: "10%", Amount: "$26.99", Included: false},
		},
		Summary: QuoteSummary{
			Subtotal:  d("2599.98"),
			TaxRate:   d("10"),
			TaxAmount: d("260.00"),
			Total:     d("2859.98"),
		},
		Signatures: []ExportSignature{
			{Label: "Prepared by", Name: "John Doe", Role: "Manager"},
			{Label: "Approved by"},
		},
	}
}
