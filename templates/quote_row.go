package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"quotecomposer/services"
)

// RowView is one product row as displayed. Numeric fields hold the
// formatted cell text.
type RowView struct {
	TableID         string
	ID              string
	ProductName     string
	Description     string
	Quantity        string
	Price           string
	Discount        string
	Amount          string
	RowClass        string
	Checkbox        bool
	Included        bool
	GridTemplate    string
	Hidden          map[string]bool
	DiscountEnabled bool
}

const rowStyle = "display: grid; gap: 12px; padding: 12px; border-bottom: 1px solid #eee; position: relative; align-items: center;"

// cellVals is the hx-vals expression posted by an inline editable cell:
// focus snapshots, blur commits and Escape reverts.
const cellVals = `js:{action: event.type === "focus" ? "focus" : (event.type === "blur" ? "commit" : "revert"), text: this.innerText}`

// QuoteRow renders a product row.
func QuoteRow(v RowView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)

		style := rowStyle + " grid-template-columns: " + v.GridTemplate + ";"
		if v.Checkbox && !v.Included {
			style += " opacity: 0.5;"
		}
		h.open("div",
			"class", "quote-row "+v.RowClass,
			"data-row-id", v.ID,
			"style", style,
			"draggable", "false",
			"hx-post", "tables/"+v.TableID+"/drag/over",
			"hx-trigger", "dragover throttle:100ms",
			"hx-vals", `js:{row: "`+v.ID+`", offsetY: event.offsetY, height: this.offsetHeight}`,
			"hx-target", "this",
			"hx-swap", "outerHTML",
			"hx-on::before-request", `document.querySelectorAll(".drop-indicator").forEach(function (el) { el.remove(); })`,
		)

		h.open("div",
			"class", "drag-handle",
			"style", "cursor: grab; display: flex; align-items: center; justify-content: center;",
			"draggable", "true",
			"hx-post", "tables/"+v.TableID+"/drag/start",
			"hx-trigger", "dragstart",
			"hx-vals", hxVals(map[string]string{"row": v.ID}),
			"hx-swap", "none",
		)
		h.raw("&#8942;&#8942;")
		h.close("div")

		h.open("div",
			"class", "product-cell",
			"data-column", services.ColumnProductName,
			"style", hiddenStyle("color: #333;", v.Hidden[services.ColumnProductName]),
		)
		if v.Checkbox {
			h.child(ctx, ProductCheckbox(v.TableID, v.ID, v.Included))
		}
		h.open("div", "class", "product-info", "style", "display: flex; flex-direction: column;")
		h.open("div", "class", "product-name", "style", "font-weight: 500;")
		h.text(v.ProductName)
		h.close("div")
		if v.Description != "" {
			h.open("div", "class", "product-description", "style", "color: #666; font-size: 0.9em; margin-top: 4px;")
			h.text(v.Description)
			h.close("div")
		}
		h.close("div")
		h.close("div")

		editable := func(field, text, align string) {
			h.open("div",
				"class", "editable-cell "+field+"-cell",
				"data-column", field,
				"data-field", field,
				"contenteditable", "true",
				"style", hiddenStyle("color: #333; text-align: "+align+";", v.Hidden[field]),
				"hx-post", "tables/"+v.TableID+"/rows/"+v.ID+"/cells/"+field,
				"hx-trigger", "focus, blur, keydown[key=='Escape']",
				"hx-vals", cellVals,
			)
			h.text(text)
			h.close("div")
		}
		editable(services.ColumnQuantity, v.Quantity, "center")
		if v.DiscountEnabled {
			editable(services.ColumnDiscount, v.Discount, "center")
		}
		editable(services.ColumnPrice, v.Price, "right")

		h.open("div",
			"class", "amount-cell",
			"data-column", services.ColumnAmount,
			"style", hiddenStyle("color: #333; text-align: right;", v.Hidden[services.ColumnAmount]),
		)
		h.text(v.Amount)
		h.close("div")

		h.open("div", "class", "row-actions", "style", "position: relative; display: flex; justify-content: flex-end;")
		h.open("button",
			"type", "button",
			"class", "three-dots-btn",
			"data-row-id", v.ID,
			"style", "width: 30px; height: 30px; background: #f0f0f0; border: none; border-radius: 4px; cursor: pointer;",
			"hx-post", "menus/toggle",
			"hx-vals", hxVals(map[string]string{"table": v.TableID, "kind": "row", "row": v.ID}),
		)
		h.raw("&#8943;")
		h.close("button")
		h.open("div",
			"class", "dropdown-menu",
			"style", "display: none; position: absolute; right: 0; top: 100%; background: white; border: 1px solid #eee; border-radius: 4px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); z-index: 1000; min-width: 120px;",
		)
		h.open("div",
			"class", "dropdown-item edit-row-btn",
			"data-row-id", v.ID,
			"style", "padding: 8px 12px; cursor: pointer;",
			"hx-get", "tables/"+v.TableID+"/products/"+v.ID+"/edit",
			"hx-target", "#drawer",
		)
		h.raw("<span>Edit</span>")
		h.close("div")
		h.open("div",
			"class", "dropdown-item delete-row-btn",
			"data-row-id", v.ID,
			"style", "padding: 8px 12px; cursor: pointer; color: #f44336;",
			"hx-delete", "tables/"+v.TableID+"/products/"+v.ID,
			"hx-confirm", "Are you sure you want to delete this product?",
			"hx-vals", hxVals(map[string]string{"confirmed": "true"}),
		)
		h.raw("<span>Delete</span>")
		h.close("div")
		h.close("div")
		h.close("div")

		h.close("div")
		return h.err
	})
}

// ProductCheckbox is the inclusion checkbox of an all-optional row.
func ProductCheckbox(tableID, rowID string, checked bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.raw(`<input type="checkbox" class="product-checkbox"`)
		h.attrIf("checked", checked)
		h.attr("style", "margin-right: 8px; width: 16px; height: 16px; cursor: pointer;")
		h.attr("hx-post", "tables/"+tableID+"/rows/"+rowID+"/include")
		h.attr("hx-trigger", "change")
		h.attr("hx-vals", "js:{checked: this.checked}")
		h.raw(">")
		return h.err
	})
}

// EmptyRow is the "Click to Add Product" placeholder shown while a table
// has no products.
func EmptyRow(tableID, gridTemplate string, visible bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		style := rowStyle + " grid-template-columns: " + gridTemplate + "; cursor: pointer; min-height: 50px; justify-content: center;"
		h.open("div",
			"class", "quote-row empty-row",
			"style", hiddenStyle(style, !visible),
			"draggable", "false",
		)
		h.open("div", "style", "grid-column: 1 / -1; display: flex; justify-content: center; align-items: center; gap: 8px;")
		h.open("span",
			"class", "add-product-link",
			"style", "color: #4CAF50; font-weight: 500;",
			"hx-get", "tables/"+tableID+"/products/new",
			"hx-target", "#drawer",
		)
		h.text("Click to Add Product")
		h.close("span")
		h.open("button",
			"type", "button",
			"class", "quick-pick-btn",
			"style", "background: none; border: 1px solid #4CAF50; color: #4CAF50; border-radius: 4px; cursor: pointer;",
			"hx-get", "tables/"+tableID+"/quick-pick",
			"hx-target", "#drawer",
		)
		h.text("Pick")
		h.close("button")
		h.close("div")
		h.close("div")
		return h.err
	})
}
