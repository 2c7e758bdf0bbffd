package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"quotecomposer/config"
	"quotecomposer/quotetable"
)

var errDocumentNotFound = errors.New("document not found")

// Editor keeps one live quote document per open document record. Widget
// gestures mutate the live tree; the cleaned-up markup is written back to
// the record after every change.
type Editor struct {
	app *pocketbase.PocketBase
	cfg *config.Config

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu      sync.Mutex
	doc     *quotetable.Document
	state   *quotetable.State
	saved   int
	updated string
}

// NewEditor creates an Editor over the documents collection. A nil cfg
// uses config.Default.
func NewEditor(app *pocketbase.PocketBase, cfg *config.Config) *Editor {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Editor{
		app:      app,
		cfg:      cfg,
		sessions: map[string]*session{},
	}
}

// open returns the session of the request's document. A session whose
// record was modified elsewhere is reloaded from the record.
func (ed *Editor) open(e *core.RequestEvent) (*session, error) {
	rec, err := documentRecord(ed.app, e)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errDocumentNotFound, e.Request.PathValue("id"))
	}

	ed.mu.Lock()
	defer ed.mu.Unlock()

	updated := rec.GetDateTime("updated").String()
	if s, ok := ed.sessions[rec.Id]; ok && s.updated == updated {
		return s, nil
	}

	doc, err := quotetable.NewDocument(rec.GetString("content"))
	if err != nil {
		return nil, err
	}
	s := &session{doc: doc, state: quotetable.NewState(), updated: updated}
	ed.sessions[rec.Id] = s
	return s, nil
}

// forget drops the live document of a deleted record.
func (ed *Editor) forget(docID string) {
	ed.mu.Lock()
	delete(ed.sessions, docID)
	ed.mu.Unlock()
}

// save writes the persistable markup back to the record when the live
// document changed since the last save. Callers hold s.mu.
func (ed *Editor) save(docID string, s *session) error {
	if s.doc.Revision() == s.saved {
		return nil
	}
	content, err := s.doc.Content()
	if err != nil {
		return err
	}
	rec, err := ed.app.FindRecordById("documents", docID)
	if err != nil {
		return fmt.Errorf("%w: %s", errDocumentNotFound, docID)
	}
	s.saved = s.doc.Revision()
	if rec.GetString("content") == content {
		return nil
	}
	rec.Set("content", content)
	if err := ed.app.Save(rec); err != nil {
		return fmt.Errorf("failed to save document %s: %w", docID, err)
	}
	s.updated = rec.GetDateTime("updated").String()
	return nil
}

// run applies fn to the request's document under the session lock, saves
// the result and returns the live markup for re-rendering.
func (ed *Editor) run(e *core.RequestEvent, fn func(ctrl *quotetable.Controller, doc *quotetable.Document) error) (string, error) {
	s, err := ed.open(e)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctrl := quotetable.NewController(s.doc, &requestPrompter{e: e}, s.state)
	fnErr := fn(ctrl, s.doc)
	if err := ed.save(e.Request.PathValue("id"), s); err != nil {
		return "", err
	}
	if fnErr != nil {
		return "", fnErr
	}
	return s.doc.HTML(), nil
}

// replace swaps the live document for content typed in the browser.
func (ed *Editor) replace(e *core.RequestEvent, content string) error {
	s, err := ed.open(e)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := quotetable.NewDocument(content)
	if err != nil {
		return err
	}
	s.doc = doc
	s.state = quotetable.NewState()
	s.saved = -1
	return ed.save(e.Request.PathValue("id"), s)
}

// requestPrompter answers confirmations from the confirmed form value set
// by hx-confirm buttons and shows alerts as warning toasts.
type requestPrompter struct {
	e *core.RequestEvent
}

func (p *requestPrompter) Confirm(message string) bool {
	return p.e.Request.FormValue("confirmed") == "true"
}

func (p *requestPrompter) Alert(message string) {
	SetToast(p.e, "warning", message)
}

// placeCursor positions the cursor from the cursorTable, cursorField and
// cursorBlock values reported by the editor page. Without them the
// cursor is cleared and inserted widgets go to the end of the document.
func placeCursor(doc *quotetable.Document, r *http.Request) {
	tableID, field := r.FormValue("cursorTable"), r.FormValue("cursorField")
	if tableID != "" && (field == "title" || field == "description") {
		sel := doc.Select(nil, `.quote-block[data-quote-id="`+tableID+`"] .quote-`+field+`-editable`).First()
		if sel.Length() > 0 {
			doc.SetCursor(sel, 0)
			return
		}
	}

	if idx, err := cast.ToIntE(r.FormValue("cursorBlock")); err == nil && idx >= 0 {
		block := doc.Select(nil, "body").Children().Eq(idx)
		if block.Length() > 0 {
			doc.SetCursor(block, 0)
			return
		}
	}
	doc.SetCursor(nil, 0)
}

// respond re-renders the document content.
func respond(e *core.RequestEvent, html string) error {
	return e.HTML(http.StatusOK, html)
}

// gestureError turns a controller error into the response for the
// gesture that caused it. name prefixes the log line.
func gestureError(e *core.RequestEvent, name string, err error) error {
	switch {
	case errors.Is(err, errDocumentNotFound):
		return ErrorToast(e, http.StatusNotFound, "Document not found")
	case errors.Is(err, quotetable.ErrTableNotFound):
		return ErrorToast(e, http.StatusNotFound, "Quote table not found")
	case errors.Is(err, quotetable.ErrRowNotFound):
		return ErrorToast(e, http.StatusNotFound, "Product not found")
	case errors.Is(err, quotetable.ErrSignatureNotFound):
		return ErrorToast(e, http.StatusNotFound, "Signature block not found")
	case errors.Is(err, quotetable.ErrInvalidTaxRate),
		errors.Is(err, quotetable.ErrCursorInEditableField):
		// the controller already alerted
		e.Response.Header().Set("HX-Reswap", "none")
		return e.String(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, quotetable.ErrUnknownTheme),
		errors.Is(err, quotetable.ErrUnknownColumn),
		errors.Is(err, quotetable.ErrUnknownSelectionMode),
		errors.Is(err, quotetable.ErrUnknownField):
		return ErrorToast(e, http.StatusBadRequest, err.Error())
	}
	log.Printf("%s: %v", name, err)
	return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
