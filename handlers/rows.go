package handlers

import (
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"quotecomposer/quotetable"
)

// HandleCell handles POST /documents/{id}/tables/{table}/rows/{row}/cells/{field}.
// action is focus, commit or revert. Focus only snapshots the cell, the
// other actions re-render with the normalized values.
func HandleCell(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tableID := e.Request.PathValue("table")
		rowID := e.Request.PathValue("row")
		field := e.Request.PathValue("field")
		action := e.Request.FormValue("action")

		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			var err error
			switch action {
			case "focus":
				err = ctrl.FocusCell(tableID, rowID, field)
			case "commit":
				_, err = ctrl.CommitCell(tableID, rowID, field, e.Request.FormValue("text"))
			case "revert":
				_, err = ctrl.RevertCell(tableID, rowID, field)
			}
			return err
		})
		if err != nil {
			return gestureError(e, "cell", err)
		}

		switch action {
		case "focus":
			return e.NoContent(http.StatusNoContent)
		case "commit", "revert":
			return respond(e, html)
		}
		return ErrorToast(e, http.StatusBadRequest, "Unknown cell action")
	}
}

// HandleInclude handles POST /documents/{id}/tables/{table}/rows/{row}/include
// with checked=true|false.
func HandleInclude(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		checked, err := cast.ToBoolE(e.Request.FormValue("checked"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid checkbox value")
		}

		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			return ctrl.SetIncluded(e.Request.PathValue("table"), e.Request.PathValue("row"), checked)
		})
		if err != nil {
			return gestureError(e, "include", err)
		}
		return respond(e, html)
	}
}

// dragPoint reads the row, offsetY and height values posted by drag events.
func dragPoint(e *core.RequestEvent) (string, float64, float64) {
	return e.Request.FormValue("row"),
		cast.ToFloat64(e.Request.FormValue("offsetY")),
		cast.ToFloat64(e.Request.FormValue("height"))
}

// HandleDragStart handles POST /documents/{id}/tables/{table}/drag/start.
// The browser keeps the dragged element, so nothing is swapped.
func HandleDragStart(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		_, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			return ctrl.StartDrag(e.Request.PathValue("table"), e.Request.FormValue("row"))
		})
		if err != nil {
			return gestureError(e, "drag_start", err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleDragOver handles POST /documents/{id}/tables/{table}/drag/over and
// responds with the hovered row, drop indicator included.
func HandleDragOver(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tableID := e.Request.PathValue("table")
		rowID, offsetY, height := dragPoint(e)

		var rowHTML string
		_, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			if err := ctrl.DragOver(tableID, rowID, offsetY, height); err != nil {
				return err
			}
			table, err := ctrl.Table(tableID)
			if err != nil {
				return err
			}
			row := table.Find(`.quote-row[data-row-id="` + rowID + `"]`).First()
			if row.Find(".drop-indicator").Length() == 0 {
				return nil
			}
			rowHTML, err = goquery.OuterHtml(row)
			return err
		})
		if err != nil {
			return gestureError(e, "drag_over", err)
		}
		if rowHTML == "" {
			e.Response.Header().Set("HX-Reswap", "none")
			return e.NoContent(http.StatusNoContent)
		}
		return e.HTML(http.StatusOK, rowHTML)
	}
}

// HandleDrop handles POST /documents/{id}/tables/{table}/drag/drop
func HandleDrop(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rowID, offsetY, height := dragPoint(e)

		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			return ctrl.Drop(e.Request.PathValue("table"), rowID, offsetY, height)
		})
		if err != nil {
			return gestureError(e, "drop", err)
		}
		return respond(e, html)
	}
}

// HandleDragEnd handles POST /documents/{id}/tables/{table}/drag/end. After
// a successful drop the drag is already idle and the end is a no-op.
func HandleDragEnd(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tableID := e.Request.PathValue("table")

		var dragging bool
		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			dragging = ctrl.State().Drag(tableID).Phase == quotetable.DragDragging
			return ctrl.EndDrag(tableID)
		})
		if err != nil {
			return gestureError(e, "drag_end", err)
		}
		if !dragging {
			return e.NoContent(http.StatusNoContent)
		}
		return respond(e, html)
	}
}
