package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"quotecomposer/quotetable"
	"quotecomposer/services"
	"quotecomposer/templates"
)

// HandleImportTemplate serves the product import template.
// Route: GET /products/import-template
func HandleImportTemplate() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateImportTemplate()
		if err != nil {
			log.Printf("import_template: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			`attachment; filename="Product_Import_Template.xlsx"`)
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleImportErrorReport downloads the validation errors of an upload as
// an Excel file.
// Route: POST /products/import-errors
func HandleImportErrorReport() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var errors []services.ValidationError
		if err := json.Unmarshal([]byte(e.Request.FormValue("errors_json")), &errors); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid error data")
		}

		xlsxBytes, err := services.GenerateErrorReport(errors)
		if err != nil {
			log.Printf("import_errors: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := fmt.Sprintf("Product_Import_Errors_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleImportDrawer renders the upload form.
// Route: GET /documents/{id}/tables/{table}/import
func HandleImportDrawer(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tableID := e.Request.PathValue("table")
		if _, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			_, err := ctrl.Table(tableID)
			return err
		}); err != nil {
			return gestureError(e, "import_drawer", err)
		}
		return templates.ImportDrawer(templates.ImportData{TableID: tableID}).Render(e.Request.Context(), e.Response)
	}
}

// HandleImportValidate receives a file upload, validates it, and returns
// the validation results as an HTMX partial.
// Route: POST /documents/{id}/tables/{table}/import
func HandleImportValidate(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tableID := e.Request.PathValue("table")

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			log.Printf("import_validate: read upload: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "Could not read the uploaded file")
		}

		data := templates.ImportData{TableID: tableID, FileName: header.Filename}
		forms, validationErrors, err := services.ParseProductImport(header.Filename, content)
		switch {
		case err != nil:
			data.ParseFailure = err.Error()
		case len(validationErrors) > 0:
			data.Errors = validationErrors
			b, err := json.Marshal(validationErrors)
			if err != nil {
				log.Printf("import_validate: marshal errors: %v", err)
			}
			data.ErrorsJSON = string(b)
		case len(forms) == 0:
			data.ParseFailure = "The file has no product rows."
		default:
			data.Forms = forms
			b, err := json.Marshal(forms)
			if err != nil {
				log.Printf("import_validate: marshal products: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			data.FormsJSON = string(b)
		}

		return templates.ImportResults(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleImportCommit re-validates the previewed rows and appends them to
// the table.
// Route: POST /documents/{id}/tables/{table}/import/commit
func HandleImportCommit(ed *Editor) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		productsJSON := e.Request.FormValue("products_json")
		if productsJSON == "" {
			return ErrorToast(e, http.StatusBadRequest,
				"File data missing. Please re-upload and try again.")
		}

		var forms []services.ProductForm
		if err := json.Unmarshal([]byte(productsJSON), &forms); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid product data")
		}
		for i, form := range forms {
			if err := form.Validate(); err != nil {
				return ErrorToast(e, http.StatusBadRequest, fmt.Sprintf("Product %d: %v", i+1, err))
			}
			forms[i] = form.Normalized()
		}

		var ids []string
		html, err := ed.run(e, func(ctrl *quotetable.Controller, _ *quotetable.Document) error {
			var err error
			ids, err = ctrl.ImportProducts(e.Request.PathValue("table"), forms)
			return err
		})
		if err != nil {
			return gestureError(e, "import_commit", err)
		}

		SetToast(e, "success", fmt.Sprintf("%d products imported successfully", len(ids)))
		CloseDrawer(e)
		return respond(e, html)
	}
}
