package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const DocumentKey contextKey = "document"

// GetDocument extracts the document record loaded by DocumentMiddleware.
func GetDocument(r *http.Request) *core.Record {
	if val, ok := r.Context().Value(DocumentKey).(*core.Record); ok {
		return val
	}
	return nil
}

// DocumentMiddleware loads the document named by the {id} path value and
// stores it in the request context. Unknown documents end the request
// with a 404 before any editor handler runs.
func DocumentMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		docID := e.Request.PathValue("id")
		if docID == "" {
			return e.Next()
		}

		rec, err := app.FindRecordById("documents", docID)
		if err != nil {
			log.Printf("middleware: document %s not found: %v", docID, err)
			return ErrorToast(e, http.StatusNotFound, "Document not found")
		}

		ctx := context.WithValue(e.Request.Context(), DocumentKey, rec)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}

// documentRecord returns the record stored by DocumentMiddleware, loading
// it when the handler runs without the middleware.
func documentRecord(app *pocketbase.PocketBase, e *core.RequestEvent) (*core.Record, error) {
	if rec := GetDocument(e.Request); rec != nil && rec.Id == e.Request.PathValue("id") {
		return rec, nil
	}
	return app.FindRecordById("documents", e.Request.PathValue("id"))
}
