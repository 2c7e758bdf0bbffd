package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"quotecomposer/services"
)

// ColumnView is one entry of the column visibility checklist.
type ColumnView struct {
	Key     string
	Label   string
	Visible bool
}

// OptionView is one entry of a single-select menu.
type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

// TableView configures a freshly built quote table.
type TableView struct {
	ID              string
	Title           string
	Description     string
	SelectionMode   string
	ThemeID         string
	TaxRate         string
	ColumnsAttr     string
	DiscountEnabled bool
	GridTemplate    string
	Columns         []ColumnView
	Themes          []OptionView
	SelectionModes  []OptionView
	Summary         SummaryView
}

const (
	menuPanelStyle = "display: none; position: absolute; top: 100%; right: 0; background: white; border: 1px solid #eee; border-radius: 4px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); z-index: 1000; min-width: 160px; padding: 4px 0;"
	buttonStyle    = "padding: 6px 12px; background: #fff; border: 1px solid #4CAF50; color: #333; border-radius: 4px; cursor: pointer;"
)

// QuoteTable renders a whole quote table block with no product rows.
func QuoteTable(v TableView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.open("div",
			"class", "quote-block",
			"id", v.ID,
			"data-quote-id", v.ID,
			"data-product-selection", v.SelectionMode,
			"data-tax-rate", v.TaxRate,
			"data-theme", v.ThemeID,
			"data-columns", v.ColumnsAttr,
			"data-discount", boolAttr(v.DiscountEnabled),
			"contenteditable", "false",
			"style", "margin: 16px 0; font-family: inherit;",
		)

		titleSection(h, v)
		toolbar(h, v)

		h.open("div",
			"class", "quote-table",
			"style", "border: 1px solid #eee; border-radius: 8px; overflow: hidden;",
			"hx-post", "tables/"+v.ID+"/drag/end",
			"hx-trigger", "dragend",
		)
		header(h, v)
		h.open("div",
			"class", "quote-body",
			"style", "padding: 0 12px; background: #fff;",
			"hx-post", "tables/"+v.ID+"/drag/drop",
			"hx-trigger", "drop",
			"hx-on:dragover", "event.preventDefault()",
			"hx-vals", `js:{row: (event.target.closest(".quote-row") || {dataset: {}}).dataset.rowId || "", offsetY: event.offsetY, height: (event.target.closest(".quote-row") || {offsetHeight: 0}).offsetHeight}`,
		)
		h.child(ctx, EmptyRow(v.ID, v.GridTemplate, true))
		h.close("div")
		h.close("div")

		h.child(ctx, QuoteSummary(v.Summary))
		footer(h, v)

		h.close("div")
		return h.err
	})
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func titleSection(h *htmlWriter, v TableView) {
	h.open("div", "class", "quote-title-section", "style", "padding: 12px 0;")
	h.open("div",
		"class", "quote-title-editable",
		"contenteditable", "true",
		"style", "font-size: 1.4em; font-weight: 600; outline: none;",
		"hx-post", "tables/"+v.ID+"/title",
		"hx-trigger", "blur",
		"hx-vals", "js:{text: this.innerText}",
		"hx-swap", "none",
	)
	h.text(v.Title)
	h.close("div")
	h.open("button",
		"type", "button",
		"class", "description-toggle-btn",
		"style", "background: none; border: none; color: #4CAF50; cursor: pointer; padding: 4px 0;",
		"hx-post", "tables/"+v.ID+"/description/toggle",
	)
	h.text("+ Add description")
	h.close("button")
	h.open("div", "class", "quote-description-container", "style", "display: none;")
	h.open("div",
		"class", "quote-description-editable",
		"contenteditable", "true",
		"style", "color: #666; outline: none; min-height: 1.2em;",
		"hx-post", "tables/"+v.ID+"/description",
		"hx-trigger", "blur",
		"hx-vals", "js:{text: this.innerText}",
		"hx-swap", "none",
	)
	h.text(v.Description)
	h.close("div")
	h.close("div")
	h.close("div")
}

func menuOpener(h *htmlWriter, tableID, kind, label string) {
	h.open("button",
		"type", "button",
		"class", "menu-opener "+kind+"-menu-btn",
		"style", buttonStyle,
		"hx-post", "menus/toggle",
		"hx-vals", hxVals(map[string]string{"table": tableID, "kind": kind}),
	)
	h.text(label)
	h.close("button")
}

func toolbar(h *htmlWriter, v TableView) {
	h.open("div", "class", "quote-toolbar", "style", "display: flex; gap: 8px; justify-content: flex-end; padding-bottom: 8px;")

	h.open("div", "class", "quote-menu", "data-menu-kind", "options", "style", "position: relative;")
	menuOpener(h, v.ID, "options", "Columns")
	h.open("div", "class", "menu-panel", "style", menuPanelStyle)
	for _, c := range v.Columns {
		h.open("label", "class", "column-visibility-option", "data-column", c.Key, "style", "display: flex; gap: 8px; padding: 6px 12px; cursor: pointer;")
		h.raw(`<input type="checkbox"`)
		h.attrIf("checked", c.Visible)
		h.attr("hx-post", "tables/"+v.ID+"/columns/"+c.Key)
		h.attr("hx-trigger", "change")
		h.attr("hx-vals", "js:{visible: this.checked}")
		h.raw(">")
		h.text(c.Label)
		h.close("label")
	}
	h.close("div")
	h.close("div")

	h.open("div", "class", "quote-menu", "data-menu-kind", "theme", "style", "position: relative;")
	menuOpener(h, v.ID, "theme", "Theme")
	h.open("div", "class", "menu-panel", "style", menuPanelStyle)
	for _, t := range v.Themes {
		h.open("div",
			"class", "theme-option"+selectedClass(t.Selected),
			"data-theme-id", t.Value,
			"style", "padding: 6px 12px; cursor: pointer;",
			"hx-post", "tables/"+v.ID+"/theme/"+t.Value,
		)
		h.text(t.Label)
		h.close("div")
	}
	h.close("div")
	h.close("div")

	h.open("div", "class", "quote-menu", "data-menu-kind", "selection", "style", "position: relative;")
	menuOpener(h, v.ID, "selection", "Selection")
	h.open("div", "class", "menu-panel", "style", menuPanelStyle)
	for _, m := range v.SelectionModes {
		h.open("div",
			"class", "selection-option"+selectedClass(m.Selected),
			"data-selection", m.Value,
			"style", "padding: 6px 12px; cursor: pointer;",
			"hx-post", "tables/"+v.ID+"/selection/"+m.Value,
		)
		h.text(m.Label)
		h.close("div")
	}
	h.close("div")
	h.close("div")

	h.close("div")
}

func selectedClass(selected bool) string {
	if selected {
		return " selected"
	}
	return ""
}

func header(h *htmlWriter, v TableView) {
	h.open("div",
		"class", "quote-header",
		"style", "background: #fff; padding: 12px; border-bottom: 1px solid #eee; display: grid; gap: 12px; grid-template-columns: "+v.GridTemplate+";",
	)
	h.raw(`<div class="drag-column-header"></div>`)
	for _, c := range v.Columns {
		align := "center"
		switch c.Key {
		case services.ColumnProductName:
			align = "left"
		case services.ColumnPrice, services.ColumnAmount:
			align = "right"
		}
		h.open("div",
			"class", "column-header",
			"data-column", c.Key,
			"style", hiddenStyle("font-weight: 600; color: #333; text-align: "+align+";", !c.Visible),
		)
		h.text(c.Label)
		h.close("div")
	}
	h.raw(`<div class="actions-column-header"></div>`)
	h.close("div")
}

func footer(h *htmlWriter, v TableView) {
	h.open("div", "class", "quote-footer", "style", "display: flex; gap: 8px; padding: 12px 0;")
	h.open("button", "type", "button", "class", "add-product-btn", "style", buttonStyle,
		"hx-get", "tables/"+v.ID+"/products/new", "hx-target", "#drawer")
	h.text("Add Product")
	h.close("button")
	h.open("button", "type", "button", "class", "import-products-btn", "style", buttonStyle,
		"hx-get", "tables/"+v.ID+"/import", "hx-target", "#drawer")
	h.text("Import Products")
	h.close("button")
	h.open("button", "type", "button", "class", "delete-table-btn", "style", buttonStyle,
		"hx-delete", "tables/"+v.ID,
		"hx-confirm", "Are you sure you want to delete this quote table?",
		"hx-vals", hxVals(map[string]string{"confirmed": "true"}))
	h.text("Delete Table")
	h.close("button")
	h.open("a", "class", "export-excel-btn", "style", buttonStyle, "href", "tables/"+v.ID+"/export/excel")
	h.text("Export Excel")
	h.close("a")
	h.open("a", "class", "export-pdf-btn", "style", buttonStyle, "href", "tables/"+v.ID+"/export/pdf")
	h.text("Export PDF")
	h.close("a")
	h.close("div")
}
