package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotecomposer/quotetable"
)

// HandleMenuToggle handles POST /documents/{id}/menus/toggle. kind names
// the popup; table, row and signature identify its owner.
func HandleMenuToggle(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind, err := quotetable.ParseMenuKind(e.Request.FormValue("kind"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Unknown menu")
		}
		target := quotetable.MenuTarget{
			Kind:        kind,
			TableID:     e.Request.FormValue("table"),
			RowID:       e.Request.FormValue("row"),
			SignatureID: e.Request.FormValue("signature"),
		}

		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			_, err := ctrl.ToggleMenu(target)
			return err
		})
		if err != nil {
			return gestureError(e, "menu_toggle", err)
		}
		return respond(e, html)
	}
}

// HandleMenuClose handles POST /documents/{id}/menus/close, sent for a
// click outside the open popup.
func HandleMenuClose(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			ctrl.CloseMenus()
			return nil
		})
		if err != nil {
			return gestureError(e, "menu_close", err)
		}
		return respond(e, html)
	}
}
