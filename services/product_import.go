package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one import row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// importColumn maps accepted header spellings to a ProductForm field.
type importColumn struct {
	Key     string
	Label   string
	Aliases []string
}

var importColumns = []importColumn{
	{Key: "productName", Label: "Product Name", Aliases: []string{"product name", "product", "name", "productname"}},
	{Key: "description", Label: "Description", Aliases: []string{"description", "details"}},
	{Key: "quantity", Label: "Quantity", Aliases: []string{"quantity", "qty"}},
	{Key: "price", Label: "Price", Aliases: []string{"price", "unit price", "rate"}},
	{Key: "discount", Label: "Discount (%)", Aliases: []string{"discount (%)", "discount", "discount %"}},
}

// ImportTemplateHeaders returns the header row of a blank import file.
func ImportTemplateHeaders() []string {
	headers := make([]string, len(importColumns))
	for i, c := range importColumns {
		headers[i] = c.Label
	}
	return headers
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapHeaders maps uploaded column headers to ProductForm keys.
// Unrecognized columns map to "".
func mapHeaders(headers []string) []string {
	aliasToKey := make(map[string]string)
	for _, c := range importColumns {
		for _, a := range c.Aliases {
			aliasToKey[a] = c.Key
		}
	}

	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))
		mapped[i] = aliasToKey[norm]
	}
	return mapped
}

// ParseProductImport reads an uploaded .csv or .xlsx file into product
// forms. Rows with errors are reported and left out of the returned forms.
func ParseProductImport(fileName string, data []byte) ([]ProductForm, []ValidationError, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(bytes.NewReader(data))
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(bytes.NewReader(data))
	default:
		return nil, nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, nil, err
	}

	keys := mapHeaders(headers)
	hasName := false
	for _, k := range keys {
		if k == "productName" {
			hasName = true
		}
	}
	if !hasName {
		return nil, nil, fmt.Errorf("file has no Product Name column")
	}

	var forms []ProductForm
	var errs []ValidationError
	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row

		values := make(map[string]string)
		for colIdx, key := range keys {
			if key == "" || colIdx >= len(row) {
				continue
			}
			values[key] = strings.TrimSpace(row[colIdx])
		}
		if isBlankRow(values) {
			continue
		}

		form := ProductForm{
			ProductName: values["productName"],
			Description: values["description"],
			Quantity:    values["quantity"],
			Price:       values["price"],
			Discount:    values["discount"],
		}
		if rowErrs := validateImportRow(rowNum, form); len(rowErrs) > 0 {
			errs = append(errs, rowErrs...)
			continue
		}
		forms = append(forms, form.Normalized())
	}

	return forms, errs, nil
}

func isBlankRow(values map[string]string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}

func validateImportRow(rowNum int, form ProductForm) []ValidationError {
	var errs []ValidationError
	if form.ProductName == "" {
		errs = append(errs, ValidationError{Row: rowNum, Field: "Product Name", Message: "Product Name is required"})
	}
	checks := []struct {
		label string
		value string
		kind  NumericKind
	}{
		{"Quantity", form.Quantity, KindQuantity},
		{"Price", form.Price, KindPrice},
		{"Discount (%)", form.Discount, KindDiscount},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		if _, ok := TryParseNumeric(c.value, c.kind); !ok {
			errs = append(errs, ValidationError{Row: rowNum, Field: c.label, Message: fmt.Sprintf("%s must be a non-negative number", c.label)})
		}
	}
	return errs
}

// GenerateErrorReport creates a downloadable .xlsx file from import errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
