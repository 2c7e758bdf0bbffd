package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"quotecomposer/services"
	"quotecomposer/testhelpers"
)

// newUploadRequest builds a multipart request carrying one file field.
func newUploadRequest(t *testing.T, fileName, content string, pathValues map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("HX-Request", "true")
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

func TestHandleImportTemplate(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/products/import-template", nil)
	rec := serve(t, app, HandleImportTemplate(), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Product_Import_Template.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("template is not a valid xlsx: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil || len(rows) == 0 {
		t.Fatalf("template has no rows (err %v)", err)
	}
	if rows[0][0] != "Product Name" {
		t.Errorf("first header = %q, want 'Product Name'", rows[0][0])
	}
}

func TestHandleImportDrawer(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)
	doc := testhelpers.CreateTestDocument(t, app, "Import Drawer Quote", "<p>Intro</p>")
	tableID := insertTestTable(t, app, ed, doc.Id)

	req := newFormRequest(http.MethodGet, "/", nil, tablePath(doc.Id, tableID))
	rec := serve(t, app, HandleImportDrawer(ed), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Import Products",
		`hx-post="tables/`+tableID+`/import"`,
		`name="file"`,
	)

	req = newFormRequest(http.MethodGet, "/", nil, tablePath(doc.Id, "missing"))
	if rec := serve(t, app, HandleImportDrawer(ed), req); rec.Code != http.StatusNotFound {
		t.Errorf("unknown table: expected 404, got %d", rec.Code)
	}
}

func TestHandleImportValidate_Preview(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)

	csv := "Product Name,Quantity,Price,Discount (%)\nCable,2,$10,0\nAdapter,1,15.5,10\n"
	req := newUploadRequest(t, "products.csv", csv, map[string]string{"id": "doc", "table": "tbl"})
	rec := serve(t, app, HandleImportValidate(ed), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "2 products ready to import", "Cable", "Adapter", "import-commit-btn")

	page, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse response: %v", err)
	}
	var forms []services.ProductForm
	if err := json.Unmarshal([]byte(page.Find(`input[name="products_json"]`).AttrOr("value", "")), &forms); err != nil {
		t.Fatalf("products_json is not valid JSON: %v", err)
	}
	if len(forms) != 2 || forms[0].Price != "10" {
		t.Errorf("unexpected forms %+v", forms)
	}
}

func TestHandleImportValidate_Errors(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)

	csv := "Product Name,Quantity,Price\n,2,10\nBolt,1,abc\n"
	req := newUploadRequest(t, "products.csv", csv, map[string]string{"id": "doc", "table": "tbl"})
	rec := serve(t, app, HandleImportValidate(ed), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"2 errors in products.csv",
		"Row 2, Product Name: Product Name is required",
		"Row 3, Price: Price must be a non-negative number",
		`name="errors_json"`,
	)
	testhelpers.AssertHTMLNotContains(t, rec.Body.String(), "import-commit-btn")
}

func TestHandleImportValidate_ParseFailures(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)

	tests := []struct {
		name     string
		fileName string
		content  string
		want     string
	}{
		{"unsupported format", "products.txt", "Product Name\nCable\n", "unsupported file format"},
		{"no name column", "products.csv", "Quantity,Price\n1,2\n", "no Product Name column"},
		{"blank rows only", "products.csv", "Product Name,Price\n,\n", "The file has no product rows."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newUploadRequest(t, tt.fileName, tt.content, map[string]string{"id": "doc", "table": "tbl"})
			rec := serve(t, app, HandleImportValidate(ed), req)
			testhelpers.AssertHTMLContains(t, rec.Body.String(), "import-failure", tt.want)
		})
	}
}

func TestHandleImportValidate_MissingFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := serve(t, app, HandleImportValidate(ed), req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleImportCommit(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)
	doc := testhelpers.CreateTestDocument(t, app, "Import Quote", "<p>Intro</p>")
	tableID := insertTestTable(t, app, ed, doc.Id)

	forms := []services.ProductForm{
		{ProductName: "Cable", Quantity: "2", Price: "10", Discount: "0"},
		{ProductName: "Adapter", Quantity: "1", Price: "5", Discount: "0"},
	}
	b, _ := json.Marshal(forms)

	req := newFormRequest(http.MethodPost, "/", url.Values{"products_json": {string(b)}}, tablePath(doc.Id, tableID))
	rec := serve(t, app, HandleImportCommit(ed), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	trigger := rec.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "2 products imported successfully") || !strings.Contains(trigger, "closeDrawer") {
		t.Errorf("unexpected HX-Trigger %q", trigger)
	}

	saved := documentContent(t, app, doc.Id)
	if got := strings.Join(rowOrder(t, saved), ","); got != "Cable,Adapter" {
		t.Errorf("rows = %s, want Cable,Adapter", got)
	}
	if got := strings.TrimSpace(saved.Find(".subtotal-value").Text()); got != "$25.00" {
		t.Errorf("subtotal = %q, want $25.00", got)
	}
}

func TestHandleImportCommit_BadData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ed := newTestEditor(app)
	doc := testhelpers.CreateTestDocument(t, app, "Bad Import Quote", "<p>Intro</p>")
	tableID := insertTestTable(t, app, ed, doc.Id)

	for _, value := range []string{"", "not json", `[{"productName":""}]`} {
		req := newFormRequest(http.MethodPost, "/", url.Values{"products_json": {value}}, tablePath(doc.Id, tableID))
		if rec := serve(t, app, HandleImportCommit(ed), req); rec.Code != http.StatusBadRequest {
			t.Errorf("%q: expected 400, got %d", value, rec.Code)
		}
	}
	if n := documentContent(t, app, doc.Id).Find(".quote-row[data-row-id]").Length(); n != 0 {
		t.Errorf("expected no rows, got %d", n)
	}
}

func TestHandleImportErrorReport(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	errs := []services.ValidationError{{Row: 2, Field: "Price", Message: "Price must be a non-negative number"}}
	b, _ := json.Marshal(errs)
	req := newFormRequest(http.MethodPost, "/products/import-errors", url.Values{"errors_json": {string(b)}}, nil)
	rec := serve(t, app, HandleImportErrorReport(), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Product_Import_Errors_") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if _, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes())); err != nil {
		t.Errorf("error report is not a valid xlsx: %v", err)
	}

	req = newFormRequest(http.MethodPost, "/products/import-errors", url.Values{"errors_json": {"{"}}, nil)
	if rec := serve(t, app, HandleImportErrorReport(), req); rec.Code != http.StatusBadRequest {
		t.Errorf("bad json: expected 400, got %d", rec.Code)
	}
}
