package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
)

// downloadName builds a collision-safe attachment filename from the document
// number. Browsers keep re-downloaded copies apart thanks to the token.
func downloadName(number, ext string) string {
	base := strings.NewReplacer(" ", "_", "/", "-").Replace(number)
	token := uuid.NewString()[:8]
	return base + "_" + token + "." + ext
}

func sendAttachment(e *core.RequestEvent, name, contentType string, body []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, err := e.Response.Write(body)
	return err
}

// HandleQuoteExportExcel returns a handler that streams a quote as an Excel
// workbook.
func HandleQuoteExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")

		data, err := services.BuildQuoteExportData(app, quoteID)
		if err != nil {
			log.Printf("quote_export: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		body, err := services.GenerateQuoteExcel(data)
		if err != nil {
			log.Printf("quote_export: excel generation failed for %s: %v", quoteID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return sendAttachment(e,
			downloadName(data.Number, "xlsx"),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			body)
	}
}

// HandleQuoteExportPDF returns a handler that streams a quote as a PDF.
func HandleQuoteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")

		data, err := services.BuildQuoteExportData(app, quoteID)
		if err != nil {
			log.Printf("quote_export: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		body, err := services.GenerateQuotePDF(data)
		if err != nil {
			log.Printf("quote_export: pdf generation failed for %s: %v", quoteID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return sendAttachment(e, downloadName(data.Number, "pdf"), "application/pdf", body)
	}
}
