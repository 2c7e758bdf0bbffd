package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"quotecomposer/services"
)

// ProductFormData drives the add/edit product drawer.
type ProductFormData struct {
	TableID         string
	Form            services.ProductForm
	Errors          map[string]string
	DiscountEnabled bool
}

// Editing reports whether the form edits an existing row.
func (d ProductFormData) Editing() bool {
	return d.Form.RowID != ""
}

const (
	drawerStyle = "padding: 20px;"
	inputStyle  = "width: 100%; padding: 8px; border: 1px solid #ddd; border-radius: 4px; box-sizing: border-box;"
	closeDrawer = "document.getElementById('drawer').innerHTML = ''"
)

func drawerHeader(h *htmlWriter, title string) {
	h.open("div", "class", "drawer-header", "style", "display: flex; justify-content: space-between; align-items: center; margin-bottom: 16px;")
	h.open("h2", "style", "margin: 0; font-size: 18px;")
	h.text(title)
	h.close("h2")
	h.open("button", "type", "button", "class", "drawer-close-btn", "style", "background: none; border: none; font-size: 20px; cursor: pointer;", "hx-on:click", closeDrawer)
	h.raw("&times;")
	h.close("button")
	h.close("div")
}

func formField(h *htmlWriter, label, name, value, inputType, errMsg string) {
	h.open("div", "class", "form-field", "style", "margin-bottom: 12px;")
	h.open("label", "for", "product-"+name, "style", "display: block; margin-bottom: 4px; font-weight: 500;")
	h.text(label)
	h.close("label")
	if inputType == "textarea" {
		h.open("textarea", "id", "product-"+name, "name", name, "rows", "3", "style", inputStyle)
		h.text(value)
		h.close("textarea")
	} else {
		h.raw("<input")
		h.attr("type", inputType)
		h.attr("id", "product-"+name)
		h.attr("name", name)
		h.attr("value", value)
		h.attr("style", inputStyle)
		if inputType == "number" {
			h.attr("min", "0")
			h.attr("step", "any")
		}
		h.raw(">")
	}
	if errMsg != "" {
		h.open("div", "class", "field-error", "style", "color: #dc2626; font-size: 12px; margin-top: 4px;")
		h.text(errMsg)
		h.close("div")
	}
	h.close("div")
}

// ProductFormDrawer renders the add/edit product form. Submitting posts to
// the table's products endpoint and swaps the document.
func ProductFormDrawer(data ProductFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		title, submit := "Add Product", "Add Product"
		if data.Editing() {
			title, submit = "Edit Product", "Save Changes"
		}
		h.open("div", "class", "product-form-drawer", "style", drawerStyle)
		drawerHeader(h, title)
		h.open("form",
			"class", "product-form",
			"hx-post", "tables/"+data.TableID+"/products",
			"hx-target", "#document-content",
			"hx-swap", "innerHTML",
		)
		h.raw("<input")
		h.attr("type", "hidden")
		h.attr("name", "rowId")
		h.attr("value", data.Form.RowID)
		h.raw(">")
		formField(h, "Product Name", "productName", data.Form.ProductName, "text", data.Errors["productName"])
		formField(h, "Description", "description", data.Form.Description, "textarea", data.Errors["description"])
		formField(h, "Quantity", "quantity", data.Form.Quantity, "number", data.Errors["quantity"])
		formField(h, "Price", "price", data.Form.Price, "number", data.Errors["price"])
		if data.DiscountEnabled {
			formField(h, "Discount (%)", "discount", data.Form.Discount, "number", data.Errors["discount"])
		}
		h.open("div", "style", "display: flex; gap: 8px; justify-content: flex-end;")
		h.open("button", "type", "button", "class", "btn btn-secondary", "hx-on:click", closeDrawer)
		h.text("Cancel")
		h.close("button")
		h.open("button", "type", "submit", "class", "btn product-submit-btn")
		h.text(submit)
		h.close("button")
		h.close("div")
		h.close("form")
		h.close("div")
		return h.err
	})
}

// QuickPickData drives the quick-pick dropdown.
type QuickPickData struct {
	TableID  string
	Search   string
	Products []services.Product
}

func productOption(h *htmlWriter, tableID string, p services.Product, class string) {
	h.open("div",
		"class", class,
		"data-product-id", p.ID,
		"style", "padding: 10px; border-bottom: 1px solid #f0f0f0; cursor: pointer;",
		"hx-post", "tables/"+tableID+"/catalog/"+p.ID,
		"hx-target", "#document-content",
		"hx-swap", "innerHTML",
	)
	h.open("div", "style", "display: flex; justify-content: space-between; font-weight: 500;")
	h.open("span", "class", "product-option-name")
	h.text(p.ProductName)
	h.close("span")
	h.open("span", "class", "product-option-price")
	h.text(services.FormatNumeric(services.ParseNumeric(p.Price, services.KindPrice), services.KindPrice))
	h.close("span")
	h.close("div")
	h.open("div", "style", "font-size: 12px; color: #666;")
	h.text(p.Description)
	h.close("div")
	h.close("div")
}

// QuickPickDrawer renders the quick-pick list: a search box and the first
// few matching catalog products.
func QuickPickDrawer(data QuickPickData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.open("div", "class", "quick-pick-drawer", "style", drawerStyle)
		drawerHeader(h, "Quick Add Product")
		h.raw("<input")
		h.attr("type", "search")
		h.attr("name", "search")
		h.attr("class", "quick-pick-search")
		h.attr("placeholder", "Search products...")
		h.attr("value", data.Search)
		h.attr("style", inputStyle)
		h.attr("hx-get", "tables/"+data.TableID+"/quick-pick")
		h.attr("hx-trigger", "input changed delay:300ms, search")
		h.attr("hx-target", "#drawer")
		h.attr("hx-swap", "innerHTML")
		h.raw(">")
		h.open("div", "class", "quick-pick-list", "style", "margin-top: 12px;")
		if len(data.Products) == 0 {
			h.raw(`<div class="no-products" style="padding: 10px; color: #888;">No products found</div>`)
		}
		for _, p := range data.Products {
			productOption(h, data.TableID, p, "quick-pick-option")
		}
		h.close("div")
		h.open("div", "style", "display: flex; gap: 8px; margin-top: 12px;")
		h.open("button", "type", "button", "class", "btn btn-secondary browse-products-btn",
			"hx-get", "tables/"+data.TableID+"/catalog", "hx-target", "#drawer", "hx-swap", "innerHTML")
		h.text("Browse all products")
		h.close("button")
		h.open("button", "type", "button", "class", "btn btn-secondary custom-product-btn",
			"hx-get", "tables/"+data.TableID+"/products/new", "hx-target", "#drawer", "hx-swap", "innerHTML")
		h.text("Custom product")
		h.close("button")
		h.close("div")
		h.close("div")
		return h.err
	})
}

// ProductListData drives the product list drawer.
type ProductListData struct {
	TableID    string
	Search     string
	Categories []OptionView
	Products   []services.Product
}

// ProductListDrawer renders the searchable, category-filtered catalog.
func ProductListDrawer(data ProductListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.open("div", "class", "product-list-drawer", "style", drawerStyle)
		drawerHeader(h, "Products")
		h.open("form",
			"class", "product-filters",
			"style", "display: flex; gap: 8px;",
			"hx-get", "tables/"+data.TableID+"/catalog",
			"hx-trigger", "input changed delay:300ms, change",
			"hx-target", "#drawer",
			"hx-swap", "innerHTML",
		)
		h.raw("<input")
		h.attr("type", "search")
		h.attr("name", "search")
		h.attr("placeholder", "Search by name, description or SKU")
		h.attr("value", data.Search)
		h.attr("style", inputStyle)
		h.raw(">")
		h.open("select", "name", "category", "class", "category-filter", "style", "padding: 8px; border: 1px solid #ddd; border-radius: 4px;")
		for _, c := range data.Categories {
			h.raw("<option")
			h.attr("value", c.Value)
			h.attrIf("selected", c.Selected)
			h.raw(">")
			h.text(c.Label)
			h.close("option")
		}
		h.close("select")
		h.close("form")

		h.open("div", "class", "product-count", "style", "margin: 12px 0; color: #666; font-size: 13px;")
		h.text(strconv.Itoa(len(data.Products)) + " products")
		h.close("div")
		h.open("div", "class", "product-list")
		if len(data.Products) == 0 {
			h.raw(`<div class="no-products" style="padding: 10px; color: #888;">No products found</div>`)
		}
		for _, p := range data.Products {
			h.open("div", "class", "product-card", "style", "border: 1px solid #eee; border-radius: 6px; margin-bottom: 8px;")
			productOption(h, data.TableID, p, "product-list-option")
			h.open("div", "style", "display: flex; justify-content: space-between; padding: 6px 10px; font-size: 12px; color: #888;")
			h.open("span", "class", "product-sku")
			h.text(p.SKU + " · " + p.Category)
			h.close("span")
			h.open("span", "class", "product-stock")
			h.text(strconv.Itoa(p.Stock) + " in stock")
			h.close("span")
			h.close("div")
			h.close("div")
		}
		h.close("div")
		h.close("div")
		return h.err
	})
}

// ImportData drives the product import drawer and its results.
type ImportData struct {
	TableID      string
	FileName     string
	Forms        []services.ProductForm
	Errors       []services.ValidationError
	FormsJSON    string
	ErrorsJSON   string
	ParseFailure string
}

// ImportDrawer renders the upload form.
func ImportDrawer(data ImportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.open("div", "class", "import-drawer", "style", drawerStyle)
		drawerHeader(h, "Import Products")
		h.raw(`<p style="color: #666; font-size: 13px;">Upload a .csv or .xlsx file with a Product Name column and optional Description, Quantity, Price and Discount (%) columns.</p>`)
		h.raw(`<a class="import-template-link" href="/products/import-template" style="font-size: 13px;">Download template</a>`)
		h.open("form",
			"class", "import-form",
			"style", "margin-top: 12px;",
			"hx-post", "tables/"+data.TableID+"/import",
			"hx-encoding", "multipart/form-data",
			"hx-target", "#import-results",
			"hx-swap", "innerHTML",
		)
		h.raw(`<input type="file" name="file" accept=".csv,.xlsx" required>`)
		h.raw(`<button type="submit" class="btn" style="margin-left: 8px;">Validate</button>`)
		h.close("form")
		h.raw(`<div id="import-results" style="margin-top: 16px;"></div>`)
		h.close("div")
		return h.err
	})
}

// ImportResults renders the validation outcome: the error list with a
// report download, or a preview of the rows to import.
func ImportResults(data ImportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.open("div", "class", "import-results")
		switch {
		case data.ParseFailure != "":
			h.open("div", "class", "import-failure", "style", "color: #dc2626;")
			h.text(data.ParseFailure)
			h.close("div")
		case len(data.Errors) > 0:
			h.open("div", "class", "import-errors", "style", "color: #dc2626; margin-bottom: 8px;")
			h.text(strconv.Itoa(len(data.Errors)) + " errors in " + data.FileName + ". Fix them and upload again.")
			h.close("div")
			h.open("ul", "style", "font-size: 13px;")
			for _, e := range data.Errors {
				h.open("li", "class", "import-error")
				h.text("Row " + strconv.Itoa(e.Row) + ", " + e.Field + ": " + e.Message)
				h.close("li")
			}
			h.close("ul")
			h.open("form", "method", "post", "action", "/products/import-errors")
			h.raw("<input")
			h.attr("type", "hidden")
			h.attr("name", "errors_json")
			h.attr("value", data.ErrorsJSON)
			h.raw(">")
			h.raw(`<button type="submit" class="btn btn-secondary">Download error report</button>`)
			h.close("form")
		default:
			h.open("div", "class", "import-preview-count", "style", "margin-bottom: 8px;")
			h.text(strconv.Itoa(len(data.Forms)) + " products ready to import")
			h.close("div")
			h.open("table", "class", "import-preview", "style", "width: 100%; font-size: 13px; border-collapse: collapse;")
			h.raw(`<thead><tr style="text-align: left;"><th>Product</th><th>Qty</th><th>Price</th><th>Discount</th></tr></thead>`)
			h.open("tbody")
			for _, f := range data.Forms {
				h.open("tr")
				for _, v := range []string{f.ProductName, f.Quantity, f.Price, f.Discount} {
					h.open("td")
					h.text(v)
					h.close("td")
				}
				h.close("tr")
			}
			h.close("tbody")
			h.close("table")
			h.open("form",
				"hx-post", "tables/"+data.TableID+"/import/commit",
				"hx-target", "#document-content",
				"hx-swap", "innerHTML",
				"style", "margin-top: 12px;",
			)
			h.raw("<input")
			h.attr("type", "hidden")
			h.attr("name", "products_json")
			h.attr("value", data.FormsJSON)
			h.raw(">")
			h.open("button", "type", "submit", "class", "btn import-commit-btn")
			h.text("Import " + strconv.Itoa(len(data.Forms)) + " products")
			h.close("button")
			h.close("form")
		}
		h.close("div")
		return h.err
	})
}
