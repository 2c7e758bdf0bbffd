package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateQuotePDF creates a PDF document from quote export data using maroto/v2.
// It returns the raw PDF bytes or an error.
func GenerateQuotePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)
	widths := columnWidths(data.Columns)

	addHeader(m, data)
	addTableHeader(m, data.Columns, widths)
	for _, r := range data.Rows {
		addTableRow(m, r, data.Columns, widths)
	}
	addSummary(m, data)
	addSignatures(m, data.Signatures)
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// columnWidths spreads the 12-unit grid: 1 for the row number, 2 for each
// numeric column and the remainder for the product name.
func columnWidths(columns []string) map[string]int {
	widths := map[string]int{"#": 1}
	rest := 11
	for _, c := range columns {
		if c != ColumnProductName {
			widths[c] = 2
			rest -= 2
		}
	}
	if rest < 1 {
		rest = 1
	}
	widths[ColumnProductName] = rest
	return widths
}

// addHeader adds the title, description and date to the PDF.
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	grey := &props.Color{Red: 80, Green: 80, Blue: 80}
	desc := col.New(8)
	if data.Description != "" {
		desc.Add(text.New(data.Description, props.Text{Size: 9, Align: align.Left, Color: grey}))
	}
	m.AddRows(
		row.New(8).Add(
			desc,
			col.New(4).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{Size: 9, Align: align.Right, Color: grey}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addTableHeader adds the column header row for the visible columns.
func addTableHeader(m core.Maroto, columns []string, widths map[string]int) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	cols := []core.Col{col.New(widths["#"]).Add(text.New("#", headerText)).WithStyle(&headerCell)}
	for _, c := range columns {
		style := headerText
		if c == ColumnProductName {
			style = headerTextLeft
		}
		cols = append(cols, col.New(widths[c]).Add(text.New(ColumnLabels[c], style)).WithStyle(&headerCell))
	}
	m.AddRows(row.New(8).Add(cols...))
}

// addTableRow adds a single product row; excluded rows are printed grey.
func addTableRow(m core.Maroto, r ExportRow, columns []string, widths map[string]int) {
	baseText := props.Text{Size: 8, Align: align.Center}
	if !r.Included {
		baseText.Style = fontstyle.Italic
		baseText.Color = &props.Color{Red: 150, Green: 150, Blue: 150}
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	height := 7.0
	if r.Description != "" {
		height = 11
	}

	cols := []core.Col{col.New(widths["#"]).Add(text.New(fmt.Sprintf("%d", r.Index), baseText))}
	for _, c := range columns {
		if c == ColumnProductName {
			nameText := leftText
			nameText.Style = fontstyle.Bold
			if !r.Included {
				nameText.Style = fontstyle.BoldItalic
			}
			descText := leftText
			descText.Size = 7
			descText.Top = 4
			cell := col.New(widths[c]).Add(text.New(r.ProductName, nameText))
			if r.Description != "" {
				cell.Add(text.New(r.Description, descText))
			}
			cols = append(cols, cell)
			continue
		}
		cols = append(cols, col.New(widths[c]).Add(text.New(r.cell(c), rightText)))
	}
	m.AddRows(row.New(height).Add(cols...))
}

// addSummary adds subtotal, tax and total at the bottom of the table.
func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	lines := []struct {
		label string
		value string
	}{
		{"Subtotal", FormatMoneyGrouped(data.Summary.Subtotal)},
		{fmt.Sprintf("Tax (%s)", FormatPercent(data.Summary.TaxRate)), FormatMoneyGrouped(data.Summary.TaxAmount)},
		{"Total", FormatMoneyGrouped(data.Summary.Total)},
	}
	for _, l := range lines {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(l.label, labelStyle)).WithStyle(summaryCell),
				col.New(4).Add(text.New(l.value, valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("Amount in words: "+data.TotalInWords(), props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Right,
					Top:   2,
				}),
			),
		),
	)
}

// addSignatures adds one box per signature, up to three per line.
func addSignatures(m core.Maroto, sigs []ExportSignature) {
	if len(sigs) == 0 {
		return
	}
	m.AddRows(row.New(10))

	for start := 0; start < len(sigs); start += 3 {
		end := start + 3
		if end > len(sigs) {
			end = len(sigs)
		}
		var cols []core.Col
		for _, sig := range sigs[start:end] {
			name := sig.Name
			if name == "" {
				name = "____________________"
			}
			cell := col.New(4).Add(
				text.New(sig.Label, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}),
				text.New(name, props.Text{Size: 8, Align: align.Center, Top: 10}),
			)
			if sig.Role != "" {
				cell.Add(text.New(sig.Role, props.Text{Size: 7, Align: align.Center, Top: 14}))
			}
			cols = append(cols, cell)
		}
		m.AddRows(row.New(20).Add(cols...))
	}
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
