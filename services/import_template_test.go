package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateImportTemplate(t *testing.T) {
	data, err := GenerateImportTemplate()
	if err != nil {
		t.Fatalf("GenerateImportTemplate() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(data))
	if err != nil {
		t.Fatalf("open template: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("Products", "A1"); got != "Product Name *" {
		t.Errorf("A1 = %q, want %q", got, "Product Name *")
	}
	if got, _ := f.GetCellValue("Products", "E1"); got != "Discount (%)" {
		t.Errorf("E1 = %q, want %q", got, "Discount (%)")
	}
}

func TestGenerateImportTemplate_ParsesBack(t *testing.T) {
	data, err := GenerateImportTemplate()
	if err != nil {
		t.Fatalf("GenerateImportTemplate() error = %v", err)
	}
	forms, errs, err := ParseProductImport("template.xlsx", data)
	if err != nil {
		t.Fatalf("ParseProductImport() error = %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected validation errors: %+v", errs)
	}
	if len(forms) != 1 {
		t.Fatalf("expected the sample row, got %d rows", len(forms))
	}
	if forms[0].ProductName != "Logitech MX Master 3" || forms[0].Quantity != "2" {
		t.Errorf("sample row = %+v", forms[0])
	}
}
