package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"quotecomposer/services"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// exportFilename builds the download name of a quote export.
func exportFilename(title, ext string, now time.Time) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled"
	}
	return fmt.Sprintf("Quote_%s_%d.%s", sanitizeFilename(title), now.Year(), ext)
}

// writeExport generates the quote file in the requested format and sends
// it as a download.
func writeExport(e *core.RequestEvent, format string, data services.ExportData) error {
	now := time.Now()
	data.CreatedDate = now.Format("02 Jan 2006")

	var (
		body        []byte
		err         error
		contentType string
		ext         string
	)
	switch format {
	case "excel":
		body, err = services.GenerateQuoteExcel(data)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		ext = "xlsx"
	case "pdf":
		body, err = services.GenerateQuotePDF(data)
		contentType = "application/pdf"
		ext = "pdf"
	default:
		return e.String(http.StatusBadRequest, "Unknown export format")
	}
	if err != nil {
		log.Printf("export_%s: failed to generate: %v", format, err)
		return e.String(http.StatusInternalServerError, "Failed to generate "+ext+" file")
	}

	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data.Title, ext, now)))
	e.Response.Write(body)
	return nil
}
