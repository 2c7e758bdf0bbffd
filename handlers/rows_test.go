package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"quotecomposer/testhelpers"
)

func cellPath(docID, tableID, rowID, field string) map[string]string {
	return tablePath(docID, tableID, "row", rowID, "field", field)
}

func TestHandleCell_CommitNormalizes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)
	doc := testhelpers.CreateTestDocument(t, app, "Cell Quote", "<p>Intro</p>")
	tableID := insertTestTable(t, app, ed, doc.Id)
	rowID := addTestProduct(t, app, ed, doc.Id, tableID, "Chair", "1", "10")

	tests := []struct {
		field string
		text  string
		want  string
	}{
		{"price", "$1,234.5", "$1234.50"},
		{"quantity", "abc", "1"},
		{"quantity", "2 pcs", "2"},
	}
	for _, tt := range tests {
		req := newFormRequest(http.MethodPost, "/",
			url.Values{"action": {"commit"}, "text": {tt.text}}, cellPath(doc.Id, tableID, rowID, tt.field))
		rec := serve(t, app, HandleCell(ed), req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s %q: expected 200, got %d", tt.field, tt.text, rec.Code)
		}
		got := strings.TrimSpace(documentContent(t, app, doc.Id).Find(".quote-row[data-row-id] ." + tt.field + "-cell").Text())
		if got != tt.want {
			t.Errorf("%s %q: cell = %q, want %q", tt.field, tt.text, got, tt.want)
		}
	}

	saved := documentContent(t, app, doc.Id)
	if got := strings.TrimSpace(saved.Find(".amount-cell").Text()); got != "$2469.00" {
		t.Errorf("amount = %q, want $2469.00", got)
	}
}

func TestHandleCell_FocusThenRevert(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)
	doc := testhelpers.CreateTestDocument(t, app, "Revert Quote", "<p>Intro</p>")
	tableID := insertTestTable(t, app, ed, doc.Id)
	rowID := addTestProduct(t, app, ed, doc.Id, tableID, "Desk", "1", "300")

	req := newFormRequest(http.MethodPost, "/", url.Values{"action": {"focus"}}, cellPath(doc.Id, tableID, rowID, "price"))
	if rec := serve(t, app, HandleCell(ed), req); rec.Code != http.StatusNoContent {
		t.Fatalf("focus: expected 204, got %d", rec.Code)
	}

	req = newFormRequest(http.MethodPost, "/", url.Values{"action": {"revert"}}, cellPath(doc.Id, tableID, rowID, "price"))
	rec := serve(t, app, HandleCell(ed), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("revert: expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(documentContent(t, app, doc.Id).Find(".price-cell").Text()); got != "$300.00" {
		t.Errorf("price = %q, want $300.00", got)
	}
}

func TestHandleCell_BadRequests(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)
	doc := testhelpers.CreateTestDocument(t, app, "Bad Cell Quote", "<p>Intro</p>")
	tableID := insertTestTable(t, app, ed, doc.Id)
	rowID := addTestProduct(t, app, ed, doc.Id, tableID, "Lamp", "1", "20")

	tests := []struct {
		name   string
		action string
		row    string
		field  string
		want   int
	}{
		{"unknown action", "shout", rowID, "price", http.StatusBadRequest},
		{"unknown field", "commit", rowID, "colour", http.StatusBadRequest},
		{"unknown row", "commit", "missing", "price", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newFormRequest(http.MethodPost, "/",
				url.Values{"action": {tt.action}, "text": {"5"}}, cellPath(doc.Id, tableID, tt.row, tt.field))
			if rec := serve(t, app, HandleCell(ed), req); rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestHandleInclude(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)
	doc := testhelpers.CreateTestDocument(t, app, "Optional Quote", "<p>Intro</p>")
	tableID := insertTestTable(t, app, ed, doc.Id)
	rowID := addTestProduct(t, app, ed, doc.Id, tableID, "Warranty", "1", "50")

	req := newFormRequest(http.MethodPost, "/", nil, tablePath(doc.Id, tableID, "mode", "all-optional"))
	if rec := serve(t, app, HandleSelectionMode(ed), req); rec.Code != http.StatusOK {
		t.Fatalf("selection mode: expected 200, got %d", rec.Code)
	}

	req = newFormRequest(http.MethodPost, "/", url.Values{"checked": {"false"}}, tablePath(doc.Id, tableID, "row", rowID))
	rec := serve(t, app, HandleInclude(ed), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("include: expected 200, got %d", rec.Code)
	}

	saved := documentContent(t, app, doc.Id)
	if _, checked := saved.Find(".product-checkbox").Attr("checked"); checked {
		t.Error("checkbox should be unchecked")
	}
	if got := strings.TrimSpace(saved.Find(".subtotal-value").Text()); got != "$0.00" {
		t.Errorf("subtotal = %q, want $0.00", got)
	}

	req = newFormRequest(http.MethodPost, "/", url.Values{"checked": {"maybe"}}, tablePath(doc.Id, tableID, "row", rowID))
	if rec := serve(t, app, HandleInclude(ed), req); rec.Code != http.StatusBadRequest {
		t.Errorf("bad checkbox value: expected 400, got %d", rec.Code)
	}
}

func rowOrder(t *testing.T, doc *goquery.Document) []string {
	t.Helper()
	var names []string
	doc.Find(".quote-row[data-row-id] .product-name").Each(func(_ int, s *goquery.Selection) {
		names = append(names, strings.TrimSpace(s.Text()))
	})
	return names
}

func TestHandleDrag_Reorder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)
	doc := testhelpers.CreateTestDocument(t, app, "Drag Quote", "<p>Intro</p>")
	tableID := insertTestTable(t, app, ed, doc.Id)
	first := addTestProduct(t, app, ed, doc.Id, tableID, "Alpha", "1", "1")
	addTestProduct(t, app, ed, doc.Id, tableID, "Bravo", "1", "2")
	third := addTestProduct(t, app, ed, doc.Id, tableID, "Charlie", "1", "3")

	path := tablePath(doc.Id, tableID)

	req := newFormRequest(http.MethodPost, "/", url.Values{"row": {first}}, path)
	if rec := serve(t, app, HandleDragStart(ed), req); rec.Code != http.StatusNoContent {
		t.Fatalf("drag start: expected 204, got %d", rec.Code)
	}

	point := url.Values{"row": {third}, "offsetY": {"35"}, "height": {"40"}}
	req = newFormRequest(http.MethodPost, "/", point, path)
	rec := serve(t, app, HandleDragOver(ed), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("drag over: expected 200, got %d", rec.Code)
	}
	over, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("parse drag over response: %v", err)
	}
	if over.Find(`.quote-row[data-row-id="`+third+`"] .drop-indicator`).Length() != 1 {
		t.Errorf("expected the hovered row with one drop indicator, got %q", rec.Body.String())
	}

	req = newFormRequest(http.MethodPost, "/", point, path)
	if rec := serve(t, app, HandleDrop(ed), req); rec.Code != http.StatusOK {
		t.Fatalf("drop: expected 200, got %d", rec.Code)
	}

	saved := documentContent(t, app, doc.Id)
	got := strings.Join(rowOrder(t, saved), ",")
	if got != "Bravo,Charlie,Alpha" {
		t.Errorf("row order = %s, want Bravo,Charlie,Alpha", got)
	}
	if saved.Find(".drop-indicator").Length() != 0 {
		t.Error("drop indicators should be cleared after the drop")
	}

	req = newFormRequest(http.MethodPost, "/", nil, path)
	if rec := serve(t, app, HandleDragEnd(ed), req); rec.Code != http.StatusNoContent {
		t.Errorf("drag end after drop: expected 204, got %d", rec.Code)
	}
}

func TestHandleDragOver_NotDragging(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)
	doc := testhelpers.CreateTestDocument(t, app, "Idle Drag Quote", "<p>Intro</p>")
	tableID := insertTestTable(t, app, ed, doc.Id)
	rowID := addTestProduct(t, app, ed, doc.Id, tableID, "Solo", "1", "1")

	req := newFormRequest(http.MethodPost, "/",
		url.Values{"row": {rowID}, "offsetY": {"5"}, "height": {"40"}}, tablePath(doc.Id, tableID))
	rec := serve(t, app, HandleDragOver(ed), req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("expected HX-Reswap: none")
	}
}

func TestHandleDragEnd_CancelRestoresRow(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)
	doc := testhelpers.CreateTestDocument(t, app, "Cancel Drag Quote", "<p>Intro</p>")
	tableID := insertTestTable(t, app, ed, doc.Id)
	first := addTestProduct(t, app, ed, doc.Id, tableID, "Alpha", "1", "1")
	addTestProduct(t, app, ed, doc.Id, tableID, "Bravo", "1", "2")

	path := tablePath(doc.Id, tableID)
	req := newFormRequest(http.MethodPost, "/", url.Values{"row": {first}}, path)
	serve(t, app, HandleDragStart(ed), req)

	req = newFormRequest(http.MethodPost, "/", nil, path)
	rec := serve(t, app, HandleDragEnd(ed), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("drag end: expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "dragging") {
		t.Error("cancelled drag should clear the dragging class")
	}
	if got := strings.Join(rowOrder(t, documentContent(t, app, doc.Id)), ","); got != "Alpha,Bravo" {
		t.Errorf("row order = %s, want Alpha,Bravo", got)
	}
}
