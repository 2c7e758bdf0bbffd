package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"quotecomposer/quotetable"
	"quotecomposer/services"
)

// HandleTableInsert handles POST /documents/{id}/tables. The table goes
// after the block reported in cursorBlock and is configured from the
// application config.
func HandleTableInsert(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		defaults, err := ed.cfg.TableDefaults()
		if err != nil {
			log.Printf("table_insert: invalid table defaults: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		html, err := ed.run(e, func(ctrl *quotetable.Controller, doc *quotetable.Document) error {
			placeCursor(doc, e.Request)
			_, err := ctrl.InsertQuoteTable(defaults)
			return err
		})
		if err != nil {
			return gestureError(e, "table_insert", err)
		}
		return respond(e, html)
	}
}

// HandleTableDelete handles DELETE /documents/{id}/tables/{table}
func HandleTableDelete(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var deleted bool
		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			var err error
			deleted, err = ctrl.DeleteTable(e.Request.PathValue("table"))
			return err
		})
		if err != nil {
			return gestureError(e, "table_delete", err)
		}
		if !deleted {
			return e.NoContent(http.StatusNoContent)
		}
		SetToast(e, "success", "Quote table deleted")
		return respond(e, html)
	}
}

// HandleTableTitle handles POST /documents/{id}/tables/{table}/title, sent
// when the title loses focus. The browser already shows the text.
func HandleTableTitle(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		_, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			return ctrl.SetTitle(e.Request.PathValue("table"), e.Request.FormValue("text"))
		})
		if err != nil {
			return gestureError(e, "table_title", err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleTableDescription handles POST /documents/{id}/tables/{table}/description
func HandleTableDescription(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		_, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			return ctrl.SetDescription(e.Request.PathValue("table"), e.Request.FormValue("text"))
		})
		if err != nil {
			return gestureError(e, "table_description", err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleDescriptionToggle handles POST /documents/{id}/tables/{table}/description/toggle
func HandleDescriptionToggle(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			_, err := ctrl.ToggleDescription(e.Request.PathValue("table"))
			return err
		})
		if err != nil {
			return gestureError(e, "description_toggle", err)
		}
		return respond(e, html)
	}
}

// HandleColumnVisible handles POST /documents/{id}/tables/{table}/columns/{column}
// with visible=true|false.
func HandleColumnVisible(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		visible, err := cast.ToBoolE(e.Request.FormValue("visible"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid column visibility")
		}

		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			return ctrl.SetColumnVisible(e.Request.PathValue("table"), e.Request.PathValue("column"), visible)
		})
		if err != nil {
			return gestureError(e, "column_visible", err)
		}
		return respond(e, html)
	}
}

// HandleTheme handles POST /documents/{id}/tables/{table}/theme/{theme}
func HandleTheme(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			return ctrl.SetTheme(e.Request.PathValue("table"), e.Request.PathValue("theme"))
		})
		if err != nil {
			return gestureError(e, "theme", err)
		}
		return respond(e, html)
	}
}

// HandleSelectionMode handles POST /documents/{id}/tables/{table}/selection/{mode}.
// Switching to only-one keeps the first product; the others are reported
// in an info toast.
func HandleSelectionMode(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var dropped int
		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			var err error
			dropped, err = ctrl.SetSelectionMode(e.Request.PathValue("table"), e.Request.PathValue("mode"))
			return err
		})
		if err != nil {
			return gestureError(e, "selection_mode", err)
		}
		if dropped > 0 {
			SetToast(e, "info", fmt.Sprintf("Only one product can be selected. %d products were removed.", dropped))
		}
		return respond(e, html)
	}
}

// HandleTaxRate handles POST /documents/{id}/tables/{table}/tax. The new
// rate is the answer to the hx-prompt dialog.
func HandleTaxRate(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		text := e.Request.Header.Get("HX-Prompt")
		if text == "" {
			text = e.Request.FormValue("rate")
		}

		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			_, err := ctrl.SetTaxRate(e.Request.PathValue("table"), text)
			return err
		})
		if err != nil {
			return gestureError(e, "tax_rate", err)
		}
		return respond(e, html)
	}
}

// HandleTableExport handles GET /documents/{id}/tables/{table}/export/{format}
// for the excel and pdf formats.
func HandleTableExport(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		format := e.Request.PathValue("format")
		if format != "excel" && format != "pdf" {
			return e.String(http.StatusBadRequest, "Unknown export format")
		}

		var data services.ExportData
		_, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			var err error
			data, err = ctrl.ExportTable(e.Request.PathValue("table"))
			return err
		})
		if err != nil {
			return gestureError(e, "table_export", err)
		}
		return writeExport(e, format, data)
	}
}
