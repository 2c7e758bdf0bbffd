package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotecomposer/collections"
	"quotecomposer/quotetable"
	"quotecomposer/services"
	"quotecomposer/templates"
)

// extractProductForm reads the product form fields from the request.
func extractProductForm(e *core.RequestEvent) services.ProductForm {
	return services.ProductForm{
		ProductName: e.Request.FormValue("productName"),
		Description: e.Request.FormValue("description"),
		Quantity:    e.Request.FormValue("quantity"),
		Price:       e.Request.FormValue("price"),
		Discount:    e.Request.FormValue("discount"),
		RowID:       e.Request.FormValue("rowId"),
	}
}

// tableDiscount reports whether a table has the discount column.
func tableDiscount(ctrl *quotetable.Controller, tableID string) (bool, error) {
	table, err := ctrl.Table(tableID)
	if err != nil {
		return false, err
	}
	return quotetable.ConfigOf(table).DiscountEnabled, nil
}

// withDocument appends an out-of-band swap of the document content to a
// drawer response.
func withDocument(e *core.RequestEvent, html string) error {
	_, err := e.Response.Write([]byte(`<div id="document-content" hx-swap-oob="innerHTML">` + html + `</div>`))
	return err
}

// HandleProductNew handles GET /documents/{id}/tables/{table}/products/new
func HandleProductNew(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tableID := e.Request.PathValue("table")

		var discount bool
		_, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			var err error
			discount, err = tableDiscount(ctrl, tableID)
			return err
		})
		if err != nil {
			return gestureError(e, "product_new", err)
		}

		data := templates.ProductFormData{
			TableID:         tableID,
			Form:            services.ProductForm{Quantity: "1", Price: "0.00", Discount: "0"},
			Errors:          make(map[string]string),
			DiscountEnabled: discount,
		}
		return templates.ProductFormDrawer(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleProductEdit handles GET /documents/{id}/tables/{table}/products/{row}/edit.
// The row menu that opened the form is closed in the same response.
func HandleProductEdit(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tableID := e.Request.PathValue("table")

		var (
			form     services.ProductForm
			discount bool
		)
		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			var err error
			if form, err = ctrl.EditProduct(tableID, e.Request.PathValue("row")); err != nil {
				return err
			}
			discount, err = tableDiscount(ctrl, tableID)
			return err
		})
		if err != nil {
			return gestureError(e, "product_edit", err)
		}

		data := templates.ProductFormData{
			TableID:         tableID,
			Form:            form,
			Errors:          make(map[string]string),
			DiscountEnabled: discount,
		}
		if err := templates.ProductFormDrawer(data).Render(e.Request.Context(), e.Response); err != nil {
			return err
		}
		return withDocument(e, html)
	}
}

// HandleProductSubmit handles POST /documents/{id}/tables/{table}/products.
// An invalid form is re-rendered in the drawer with field errors.
func HandleProductSubmit(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tableID := e.Request.PathValue("table")
		form := extractProductForm(e)

		if errs := form.FieldErrors(); len(errs) > 0 {
			var discount bool
			if _, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
				var err error
				discount, err = tableDiscount(ctrl, tableID)
				return err
			}); err != nil {
				return gestureError(e, "product_submit", err)
			}

			data := templates.ProductFormData{
				TableID:         tableID,
				Form:            form,
				Errors:          errs,
				DiscountEnabled: discount,
			}
			e.Response.Header().Set("HX-Retarget", "#drawer")
			e.Response.Header().Set("HX-Reswap", "innerHTML")
			return templates.ProductFormDrawer(data).Render(e.Request.Context(), e.Response)
		}

		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			_, err := ctrl.SubmitProduct(tableID, form.Normalized())
			return err
		})
		if err != nil {
			return gestureError(e, "product_submit", err)
		}

		if form.RowID != "" {
			SetToast(e, "success", "Product updated")
		} else {
			SetToast(e, "success", "Product added")
		}
		CloseDrawer(e)
		return respond(e, html)
	}
}

// HandleProductDelete handles DELETE /documents/{id}/tables/{table}/products/{row}
func HandleProductDelete(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var deleted bool
		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			var err error
			deleted, err = ctrl.DeleteProduct(e.Request.PathValue("table"), e.Request.PathValue("row"))
			return err
		})
		if err != nil {
			return gestureError(e, "product_delete", err)
		}
		if !deleted {
			return e.NoContent(http.StatusNoContent)
		}
		SetToast(e, "success", "Product deleted")
		return respond(e, html)
	}
}

// HandleQuickPick handles GET /documents/{id}/tables/{table}/quick-pick,
// the short catalog list offered by the empty row.
func HandleQuickPick(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tableID := e.Request.PathValue("table")
		if _, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			_, err := ctrl.Table(tableID)
			return err
		}); err != nil {
			return gestureError(e, "quick_pick", err)
		}

		products, err := collections.LoadProducts(ed.app)
		if err != nil {
			log.Printf("quick_pick: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		search := e.Request.FormValue("search")
		data := templates.QuickPickData{
			TableID:  tableID,
			Search:   search,
			Products: services.QuickPick(services.FilterProducts(products, search, services.AllCategories), ed.cfg.QuickPick()),
		}
		return templates.QuickPickDrawer(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleCatalog handles GET /documents/{id}/tables/{table}/catalog with
// optional search and category filters.
func HandleCatalog(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tableID := e.Request.PathValue("table")
		if _, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			_, err := ctrl.Table(tableID)
			return err
		}); err != nil {
			return gestureError(e, "catalog", err)
		}

		products, err := collections.LoadProducts(ed.app)
		if err != nil {
			log.Printf("catalog: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		search := e.Request.FormValue("search")
		category := e.Request.FormValue("category")
		if category == "" {
			category = services.AllCategories
		}

		var categories []templates.OptionView
		for _, c := range services.Categories(products) {
			categories = append(categories, templates.OptionView{
				Value:    c,
				Label:    c,
				Selected: c == category,
			})
		}

		data := templates.ProductListData{
			TableID:    tableID,
			Search:     search,
			Categories: categories,
			Products:   services.FilterProducts(products, search, category),
		}
		return templates.ProductListDrawer(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleCatalogAdd handles POST /documents/{id}/tables/{table}/catalog/{product}
func HandleCatalogAdd(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		products, err := collections.LoadProducts(ed.app)
		if err != nil {
			log.Printf("catalog_add: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		product, ok := services.FindProduct(products, e.Request.PathValue("product"))
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Product not found in catalog")
		}

		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			_, err := ctrl.AddCatalogProduct(e.Request.PathValue("table"), product)
			return err
		})
		if err != nil {
			return gestureError(e, "catalog_add", err)
		}

		SetToast(e, "success", product.ProductName+" added")
		CloseDrawer(e)
		return respond(e, html)
	}
}
