package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotecomposer/quotetable"
	"quotecomposer/templates"
)

// newDocumentContent is the body of a freshly created document.
const newDocumentContent = "<p><br></p>"

func documentListData(app *pocketbase.PocketBase) (templates.DocumentListData, error) {
	col, err := app.FindCollectionByNameOrId("documents")
	if err != nil {
		return templates.DocumentListData{}, fmt.Errorf("documents collection not found: %w", err)
	}
	records, err := app.FindRecordsByFilter(col, "id != ''", "-updated", 0, 0)
	if err != nil {
		return templates.DocumentListData{}, fmt.Errorf("query documents: %w", err)
	}

	var data templates.DocumentListData
	for _, rec := range records {
		tableCount := 0
		if doc, err := quotetable.NewDocument(rec.GetString("content")); err == nil {
			tableCount = doc.Select(nil, ".quote-block").Length()
		}

		updated := "—"
		if dt := rec.GetDateTime("updated"); !dt.IsZero() {
			updated = dt.Time().Format("02 Jan 2006 15:04")
		}

		data.Items = append(data.Items, templates.DocumentListItem{
			ID:         rec.Id,
			Title:      rec.GetString("title"),
			Updated:    updated,
			TableCount: tableCount,
		})
	}
	return data, nil
}

// HandleDocumentList handles GET /documents
func HandleDocumentList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := documentListData(app)
		if err != nil {
			log.Printf("document_list: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.DocumentListContent(data)
		} else {
			component = templates.DocumentListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleDocumentCreate handles POST /documents and opens the new document.
func HandleDocumentCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		title := strings.TrimSpace(e.Request.FormValue("title"))
		if title == "" {
			return ErrorToast(e, http.StatusBadRequest, "Title is required")
		}

		col, err := app.FindCollectionByNameOrId("documents")
		if err != nil {
			log.Printf("document_create: could not find documents collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("title", title)
		record.Set("content", newDocumentContent)
		if err := app.Save(record); err != nil {
			log.Printf("document_create: failed to save: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to create document")
		}

		editorURL := "/documents/" + record.Id + "/"
		if e.Request.Header.Get("HX-Request") == "true" {
			SetToast(e, "success", "Document created")
			e.Response.Header().Set("HX-Redirect", editorURL)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, editorURL)
	}
}

// HandleDocumentDelete handles DELETE /documents/{id} and re-renders the list.
func HandleDocumentDelete(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		docID := e.Request.PathValue("id")
		if docID == "" {
			return e.String(http.StatusBadRequest, "Missing document ID")
		}

		record, err := ed.app.FindRecordById("documents", docID)
		if err != nil {
			log.Printf("document_delete: not found %s: %v", docID, err)
			return ErrorToast(e, http.StatusNotFound, "Document not found")
		}
		if err := ed.app.Delete(record); err != nil {
			log.Printf("document_delete: failed to delete %s: %v", docID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete document")
		}
		ed.forget(docID)

		data, err := documentListData(ed.app)
		if err != nil {
			log.Printf("document_delete: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		SetToast(e, "success", "Document deleted")
		return templates.DocumentListContent(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleDocumentRedirect handles GET /documents/{id}. The editor lives at
// the trailing-slash URL so its relative widget URLs resolve under it.
func HandleDocumentRedirect() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.Redirect(http.StatusFound, "/documents/"+e.Request.PathValue("id")+"/")
	}
}

// HandleEditorPage handles GET /documents/{id}/
func HandleEditorPage(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := documentRecord(ed.app, e)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Document not found")
		}

		html, err := ed.run(e, func(*quotetable.Controller, *quotetable.Document) error { return nil })
		if err != nil {
			return gestureError(e, "editor_page", err)
		}

		data := templates.EditorData{
			ID:      record.Id,
			Title:   record.GetString("title"),
			Content: html,
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.EditorContent(data)
		} else {
			component = templates.EditorPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleContentSave handles PUT /documents/{id}/content, sent when the
// user types outside the widgets.
func HandleContentSave(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := ed.replace(e, e.Request.FormValue("content")); err != nil {
			return gestureError(e, "content_save", err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}
