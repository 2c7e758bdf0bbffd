package quotetable

import (
	"context"
	"fmt"
	"log"

	"github.com/PuerkitoBio/goquery"

	"quotecomposer/services"
	"quotecomposer/templates"
)

const (
	productRows = ".quote-body > .quote-row:not(.empty-row)"
	emptyRow    = ".quote-body > .quote-row.empty-row"
	// cells that follow the column layout, excluding the options checklist
	columnCells = ".quote-header [data-column], .quote-body [data-column]"
)

// BuildTable renders a new, empty quote table.
func BuildTable(id string, cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	var cols []templates.ColumnView
	for _, c := range cfg.AvailableColumns() {
		cols = append(cols, templates.ColumnView{Key: c, Label: services.ColumnLabels[c], Visible: cfg.Columns.Visible(c)})
	}
	var themes []templates.OptionView
	for _, t := range services.Themes {
		themes = append(themes, templates.OptionView{Value: t.ID, Label: t.Name, Selected: t.ID == cfg.Theme})
	}
	var modes []templates.OptionView
	for _, m := range SelectionModes {
		modes = append(modes, templates.OptionView{Value: string(m), Label: m.Label(), Selected: m == cfg.SelectionMode})
	}

	summary := services.ComputeSummary(nil, cfg.TaxRate)
	view := templates.TableView{
		ID:              id,
		Title:           "Quote",
		SelectionMode:   string(cfg.SelectionMode),
		ThemeID:         cfg.Theme,
		TaxRate:         cfg.TaxRate.String(),
		ColumnsAttr:     cfg.Columns.String(),
		DiscountEnabled: cfg.DiscountEnabled,
		GridTemplate:    GridTemplate(cfg.Columns, cfg.DiscountEnabled),
		Columns:         cols,
		Themes:          themes,
		SelectionModes:  modes,
		Summary:         summaryView(id, summary),
	}
	return templates.RenderString(context.Background(), templates.QuoteTable(view))
}

// UpdateTableColumns lays out the header, every row and the empty row for
// a new visibility set. Hidden cells keep their content.
func UpdateTableColumns(table *goquery.Selection, vis ColumnVisibility) {
	cfg := ConfigOf(table)
	grid := GridTemplate(vis, cfg.DiscountEnabled)

	setStyle(table.Find(".quote-header"), "grid-template-columns", grid)
	setStyle(table.Find(".quote-body > .quote-row"), "grid-template-columns", grid)

	table.Find(columnCells).Each(func(_ int, c *goquery.Selection) {
		show(c, vis.Visible(c.AttrOr("data-column", "")))
	})
	table.Find(".column-visibility-option").Each(func(_ int, opt *goquery.Selection) {
		box := opt.Find("input").First()
		if vis.Visible(opt.AttrOr("data-column", "")) {
			box.SetAttr("checked", "")
		} else {
			box.RemoveAttr("checked")
		}
	})
	table.SetAttr("data-columns", vis.String())
}

// ApplyTheme paints a table with a palette and records it. Applying the
// same theme again changes nothing.
func ApplyTheme(table *goquery.Selection, themeID string) error {
	theme, ok := services.FindTheme(themeID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, themeID)
	}
	table.SetAttr("data-theme", theme.ID)

	inner := table.Find(".quote-table")
	if inner.Length() == 0 {
		log.Printf("quotetable: table %s has no .quote-table container", table.AttrOr("id", ""))
	}
	setStyle(inner, "background", fmt.Sprintf("linear-gradient(%s20, %s 95px)", theme.HeaderBg, theme.RowBg))
	setStyle(inner, "border-color", theme.BorderColor)
	setStyle(inner, "color", theme.RowText)

	header := table.Find(".quote-header")
	setStyle(header, "background", theme.HeaderBg)
	setStyle(header, "border-bottom-color", theme.BorderColor)
	setStyle(header.Find(".column-header"), "color", theme.HeaderText)

	setStyle(table.Find(".quote-body"), "background", theme.RowBg)
	table.Find(productRows).Each(func(i int, row *goquery.Selection) {
		bg := theme.RowBg
		if i%2 == 1 {
			bg = theme.RowAltBg
		}
		setStyle(row, "background", bg)
		setStyle(row, "border-bottom-color", theme.BorderColor)
		setStyle(row.Find(".product-cell, .editable-cell, .amount-cell"), "color", theme.RowText)
	})
	setStyle(table.Find(".drop-indicator"), "background-color", theme.AccentColor)
	setStyle(table.Find("button"), "border-color", theme.AccentColor)

	table.Find(".theme-option").Each(func(_ int, opt *goquery.Selection) {
		if opt.AttrOr("data-theme-id", "") == theme.ID {
			opt.AddClass("selected")
		} else {
			opt.RemoveClass("selected")
		}
	})
	return nil
}

// ApplySelectionMode switches a table's selection mode and reconciles its
// rows. Switching to only-one keeps the first row and drops the others;
// the number of dropped rows is returned.
func ApplySelectionMode(table *goquery.Selection, mode SelectionMode) (int, error) {
	if _, err := ParseSelectionMode(string(mode)); err != nil {
		return 0, err
	}
	tableID := table.AttrOr("data-quote-id", "")
	table.SetAttr("data-product-selection", string(mode))

	dropped := 0
	if mode == OnlyOne {
		if rows := table.Find(productRows); rows.Length() > 1 {
			extra := rows.Slice(1, goquery.ToEnd)
			dropped = extra.Length()
			extra.Remove()
			log.Printf("quotetable: only-one mode dropped %d rows from %s", dropped, tableID)
		}
	}

	var reconcileErr error
	table.Find(productRows).Each(func(_ int, row *goquery.Selection) {
		for _, c := range rowClasses {
			row.RemoveClass(c)
		}
		row.AddClass(mode.RowClass())

		box := row.Find(".product-checkbox")
		switch {
		case mode == AllOptional && box.Length() == 0:
			html, err := templates.RenderString(context.Background(),
				templates.ProductCheckbox(tableID, row.AttrOr("data-row-id", ""), true))
			if err != nil {
				reconcileErr = err
				return
			}
			row.Find(".product-cell").First().PrependHtml(html)
		case mode != AllOptional:
			box.Remove()
		}
		setStyle(row, "opacity", restingOpacity(row))
	})
	if reconcileErr != nil {
		return dropped, fmt.Errorf("add inclusion checkbox: %w", reconcileErr)
	}

	table.Find(".selection-option").Each(func(_ int, opt *goquery.Selection) {
		if opt.AttrOr("data-selection", "") == string(mode) {
			opt.AddClass("selected")
		} else {
			opt.RemoveClass("selected")
		}
	})
	syncEmptyRow(table)
	return dropped, nil
}

// syncEmptyRow shows the placeholder exactly when the table has no products.
func syncEmptyRow(table *goquery.Selection) {
	placeholder := table.Find(emptyRow)
	if placeholder.Length() == 0 {
		log.Printf("quotetable: table %s has no empty-state row", table.AttrOr("id", ""))
		return
	}
	show(placeholder, table.Find(productRows).Length() == 0)
}
