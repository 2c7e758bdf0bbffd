package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"quotecomposer/services"
	"quotecomposer/testhelpers"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces to hyphens", "My Quote File", "My-Quote-File"},
		{"slashes to hyphens", "path/to/file", "path-to-file"},
		{"backslashes", "path\\to\\file", "path-to-file"},
		{"colons", "file:name", "file-name"},
		{"quotes removed", `LG 32" Monitor`, "LG-32-Monitor"},
		{"mixed", "A / B \\ C : D", "A---B---C---D"},
		{"no special chars", "simple", "simple"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeFilename(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		title string
		ext   string
		want  string
	}{
		{"Office Fit-out", "xlsx", "Quote_Office-Fit-out_2026.xlsx"},
		{"  Hardware  ", "pdf", "Quote_Hardware_2026.pdf"},
		{"", "pdf", "Quote_Untitled_2026.pdf"},
		{"   ", "xlsx", "Quote_Untitled_2026.xlsx"},
	}
	for _, tt := range tests {
		if got := exportFilename(tt.title, tt.ext, now); got != tt.want {
			t.Errorf("exportFilename(%q, %q) = %q, want %q", tt.title, tt.ext, got, tt.want)
		}
	}
}

func sampleExportData() services.ExportData {
	return services.ExportData{
		Title:   "Sample Quote",
		Columns: []string{services.ColumnProductName, services.ColumnQuantity, services.ColumnPrice, services.ColumnAmount},
		Rows: []services.ExportRow{
			{Index: 1, ProductName: "Cable", Quantity: "2", Price: "$10.00", Amount: "$20.00", Included: true},
		},
		Summary: services.ComputeSummary([]services.SummaryLine{
			{QuantityText: "2", PriceText: "$10.00", DiscountText: "0%", Included: true},
		}, decimal.NewFromInt(10)),
	}
}

func TestWriteExport_Formats(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		format      string
		contentType string
		filename    string
	}{
		{"excel", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "Quote_Sample-Quote_"},
		{"pdf", "application/pdf", "Quote_Sample-Quote_"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, httptest.NewRequest(http.MethodGet, "/", nil), rec)

			if err := writeExport(e, tt.format, sampleExportData()); err != nil {
				t.Fatalf("writeExport returned error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			cd := rec.Header().Get("Content-Disposition")
			if !strings.HasPrefix(cd, "attachment;") || !strings.Contains(cd, tt.filename) {
				t.Errorf("Content-Disposition = %q", cd)
			}
			if rec.Body.Len() == 0 {
				t.Error("expected a non-empty body")
			}
		})
	}
}

func TestWriteExport_PDFMagicBytes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := writeExport(e, "pdf", sampleExportData()); err != nil {
		t.Fatalf("writeExport returned error: %v", err)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("expected the body to start with %PDF")
	}
}

func TestWriteExport_UnknownFormat(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := writeExport(e, "csv", sampleExportData()); err != nil {
		t.Fatalf("writeExport returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
