package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
)

// HandleCorteExportPDF returns a handler that streams a corte as a PDF.
func HandleCorteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		corteID := e.Request.PathValue("id")

		data, err := services.BuildCorteExportData(app, corteID)
		if err != nil {
			log.Printf("corte_export: %v", err)
			return e.String(http.StatusNotFound, "Corte not found")
		}

		body, err := services.GenerateCortePDF(data)
		if err != nil {
			log.Printf("corte_export: pdf generation failed for %s: %v", corteID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return sendAttachment(e, downloadName(data.Number, "pdf"), "application/pdf", body)
	}
}
