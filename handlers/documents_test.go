package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"quotecomposer/testhelpers"
)

func TestHandleDocumentList_FullPage(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestDocument(t, app, "Office Refresh Quote", "<p>Intro</p>")

	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	rec := serve(t, app, HandleDocumentList(app), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"<!DOCTYPE html>",
		"Office Refresh Quote",
		`id="document-list"`,
	)
}

func TestHandleDocumentList_HTMXPartial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestDocument(t, app, "Partial Quote", "<p>Intro</p>")

	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(t, app, HandleDocumentList(app), req)

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Partial Quote")
	testhelpers.AssertHTMLNotContains(t, body, "<!DOCTYPE html>")
}

func TestHandleDocumentCreate_HTMX(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newFormRequest(http.MethodPost, "/documents", url.Values{"title": {"  New Quote  "}}, nil)
	rec := serve(t, app, HandleDocumentCreate(app), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	col, _ := app.FindCollectionByNameOrId("documents")
	records, err := app.FindRecordsByFilter(col, "title = 'New Quote'", "", 0, 0)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected 1 document titled 'New Quote', got %d (err %v)", len(records), err)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/documents/"+records[0].Id+"/")

	if got := records[0].GetString("content"); got != newDocumentContent {
		t.Errorf("content = %q, want %q", got, newDocumentContent)
	}
}

func TestHandleDocumentCreate_MissingTitle(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newFormRequest(http.MethodPost, "/documents", url.Values{"title": {"   "}}, nil)
	rec := serve(t, app, HandleDocumentCreate(app), req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("expected HX-Reswap: none on validation error")
	}
}

func TestHandleDocumentDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)
	keep := testhelpers.CreateTestDocument(t, app, "Keep Me", "<p>a</p>")
	doc := testhelpers.CreateTestDocument(t, app, "Delete Me", "<p>b</p>")

	req := newFormRequest(http.MethodDelete, "/documents/"+doc.Id, nil, map[string]string{"id": doc.Id})
	rec := serve(t, app, HandleDocumentDelete(ed), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("documents", doc.Id); err == nil {
		t.Error("document should have been deleted")
	}
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Keep Me", keep.Id)
	testhelpers.AssertHTMLNotContains(t, body, "Delete Me")
}

func TestHandleDocumentDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)

	req := newFormRequest(http.MethodDelete, "/documents/nonexistent", nil, map[string]string{"id": "nonexistent"})
	rec := serve(t, app, HandleDocumentDelete(ed), req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleDocumentRedirect(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/documents/abc", nil)
	req.SetPathValue("id", "abc")
	rec := serve(t, app, HandleDocumentRedirect(), req)

	if rec.Code != http.StatusFound {
		t.Errorf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/documents/abc/" {
		t.Errorf("Location = %q, want /documents/abc/", loc)
	}
}

func TestHandleEditorPage(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)
	doc := testhelpers.CreateTestDocument(t, app, "Editor Quote", "<p>Dear customer,</p>")

	req := httptest.NewRequest(http.MethodGet, "/documents/"+doc.Id+"/", nil)
	req.SetPathValue("id", doc.Id)
	rec := serve(t, app, HandleEditorPage(ed), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Editor Quote",
		`id="document-content"`,
		"<p>Dear customer,</p>",
		"insert-quote-table-btn",
		`id="drawer"`,
	)
}

func TestHandleEditorPage_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)

	req := httptest.NewRequest(http.MethodGet, "/documents/missing/", nil)
	req.SetPathValue("id", "missing")
	rec := serve(t, app, HandleEditorPage(ed), req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleContentSave_StripsTransientState(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)
	doc := testhelpers.CreateTestDocument(t, app, "Typed Quote", "<p>Old</p>")

	typed := `<p>New text</p><div class="menu-panel open" style="display: block;">menu</div>`
	req := newFormRequest(http.MethodPut, "/documents/"+doc.Id+"/content",
		url.Values{"content": {typed}}, map[string]string{"id": doc.Id})
	rec := serve(t, app, HandleContentSave(ed), req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	saved := documentContent(t, app, doc.Id)
	if got := strings.TrimSpace(saved.Find("p").First().Text()); got != "New text" {
		t.Errorf("saved paragraph = %q, want 'New text'", got)
	}
	if saved.Find(".open").Length() != 0 {
		t.Error("open menus should not be persisted")
	}
}

func TestDocumentMiddleware_StoresRecord(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	doc := testhelpers.CreateTestDocument(t, app, "Middleware Quote", "<p>x</p>")

	req := httptest.NewRequest(http.MethodGet, "/documents/"+doc.Id+"/", nil)
	req.SetPathValue("id", doc.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := DocumentMiddleware(app)(e); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	got := GetDocument(e.Request)
	if got == nil || got.Id != doc.Id {
		t.Fatalf("expected document %s in context, got %v", doc.Id, got)
	}
}

func TestDocumentMiddleware_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/documents/missing/", nil)
	req.SetPathValue("id", "missing")
	rec := serve(t, app, DocumentMiddleware(app), req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestGetDocument_NotInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background())
	if got := GetDocument(req); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
