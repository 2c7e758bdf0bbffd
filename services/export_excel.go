package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateQuoteExcel creates an Excel file from the given ExportData and
// returns the file contents as a byte slice. Only visible columns are
// written; excluded rows are greyed out and left out of the totals.
func GenerateQuoteExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars).
	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Quote"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column A is the row number; the visible columns follow.
	columns := append([]string{"#"}, data.Columns...)
	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return nil, fmt.Errorf("last column: %w", err)
	}
	for i, key := range columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		width := 16.0
		switch key {
		case "#":
			width = 6
		case ColumnProductName:
			width = 40
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	// Excluded optional rows: grey italic.
	excludedStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10, Italic: true, Color: "#999999"},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create excluded style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if data.Description != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge description: %w", err)
		}
		f.SetCellValue(sheetName, "A2", sanitizeExcelCell(data.Description))
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Date: "+data.CreatedDate)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: Column Headers ───────────────────────────────────────────

	for i, key := range columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		label := key
		if l, ok := ColumnLabels[key]; ok {
			label = l
		}
		f.SetCellValue(sheetName, name+"5", label)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// ── Data Rows (starting row 6) ──────────────────────────────────────

	row := 6
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, r.Index)
		for i, key := range data.Columns {
			name, _ := excelize.ColumnNumberToName(i + 2)
			value := r.cell(key)
			if key == ColumnProductName && r.Description != "" {
				value += "\n" + r.Description
			}
			f.SetCellValue(sheetName, name+rowStr, sanitizeExcelCell(value))
		}

		style := rowStyle
		if !r.Included {
			style = excludedStyle
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, style)
		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	row++
	labelCol, valueCol := summaryColumns(len(columns))
	summary := []struct {
		label string
		value string
	}{
		{"Subtotal:", FormatMoney(data.Summary.Subtotal)},
		{fmt.Sprintf("Tax (%s):", FormatPercent(data.Summary.TaxRate)), FormatMoney(data.Summary.TaxAmount)},
		{"Total:", FormatMoney(data.Summary.Total)},
	}
	for _, s := range summary {
		summaryRow := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, labelCol+summaryRow, s.label)
		f.SetCellStyle(sheetName, labelCol+summaryRow, labelCol+summaryRow, summaryLabelStyle)
		f.SetCellValue(sheetName, valueCol+summaryRow, s.value)
		f.SetCellStyle(sheetName, valueCol+summaryRow, valueCol+summaryRow, summaryValueStyle)
		row++
	}

	// ── Signatures ──────────────────────────────────────────────────────

	if len(data.Signatures) > 0 {
		row++
		for _, sig := range data.Signatures {
			sigRow := fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "B"+sigRow, sanitizeExcelCell(signatureLine(sig)))
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// summaryColumns returns the label and value columns for the totals block:
// the last two written columns, or A/B for a narrow sheet.
func summaryColumns(n int) (string, string) {
	if n < 3 {
		return "A", "B"
	}
	label, _ := excelize.ColumnNumberToName(n - 1)
	value, _ := excelize.ColumnNumberToName(n)
	return label, value
}

// signatureLine formats a signature box as one line of text.
func signatureLine(sig ExportSignature) string {
	if sig.Name == "" {
		return sig.Label + ": ____________________"
	}
	line := sig.Label + ": " + sig.Name
	if sig.Role != "" {
		line += " (" + sig.Role + ")"
	}
	return line
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
