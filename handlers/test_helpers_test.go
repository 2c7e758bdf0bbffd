package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotecomposer/config"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newFormRequest builds an HTMX form request with the given path values.
// DELETE requests carry their values in the query string, as HTMX sends them.
func newFormRequest(method, target string, form url.Values, pathValues map[string]string) *http.Request {
	var req *http.Request
	if method == http.MethodGet || method == http.MethodDelete {
		if len(form) > 0 {
			target += "?" + form.Encode()
		}
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("HX-Request", "true")
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

// serve runs handler on req and returns the recorded response.
func serve(t *testing.T, app *pocketbase.PocketBase, handler func(*core.RequestEvent) error, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func newTestEditor(app *pocketbase.PocketBase) *Editor {
	return NewEditor(app, config.Default())
}

// documentContent returns the persisted content of a document record.
func documentContent(t *testing.T, app *pocketbase.PocketBase, docID string) *goquery.Document {
	t.Helper()
	rec, err := app.FindRecordById("documents", docID)
	if err != nil {
		t.Fatalf("document %s not found: %v", docID, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.GetString("content")))
	if err != nil {
		t.Fatalf("failed to parse document content: %v", err)
	}
	return doc
}

// insertTestTable inserts a quote table after the first block of docID and
// returns the table id.
func insertTestTable(t *testing.T, app *pocketbase.PocketBase, ed *Editor, docID string) string {
	t.Helper()
	req := newFormRequest(http.MethodPost, "/documents/"+docID+"/tables",
		url.Values{"cursorBlock": {"0"}}, map[string]string{"id": docID})
	rec := serve(t, app, HandleTableInsert(ed), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("insert table: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	id, ok := documentContent(t, app, docID).Find(".quote-block").Last().Attr("data-quote-id")
	if !ok || id == "" {
		t.Fatal("inserted table has no data-quote-id")
	}
	return id
}

// addTestProduct submits the product form and returns the new row id.
func addTestProduct(t *testing.T, app *pocketbase.PocketBase, ed *Editor, docID, tableID, name, quantity, price string) string {
	t.Helper()
	form := url.Values{
		"productName": {name},
		"quantity":    {quantity},
		"price":       {price},
		"discount":    {"0"},
	}
	req := newFormRequest(http.MethodPost, "/documents/"+docID+"/tables/"+tableID+"/products",
		form, map[string]string{"id": docID, "table": tableID})
	rec := serve(t, app, HandleProductSubmit(ed), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("add product: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var rowID string
	documentContent(t, app, docID).Find(".quote-row[data-row-id]").Each(func(_ int, row *goquery.Selection) {
		if strings.TrimSpace(row.Find(".product-name").Text()) == name {
			rowID = row.AttrOr("data-row-id", "")
		}
	})
	if rowID == "" {
		t.Fatalf("row for %q not found in saved content", name)
	}
	return rowID
}

// tablePath returns the path values of a table endpoint.
func tablePath(docID, tableID string, extra ...string) map[string]string {
	values := map[string]string{"id": docID, "table": tableID}
	for i := 0; i+1 < len(extra); i += 2 {
		values[extra[i]] = extra[i+1]
	}
	return values
}
