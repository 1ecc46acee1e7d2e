package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
)

// HandleExecutionExportExcel returns a handler that streams the execution
// matrix of a project as an Excel workbook.
func HandleExecutionExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		data, err := services.BuildExecutionData(app, projectID)
		if err != nil {
			log.Printf("acta_export: %v", err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		body, err := services.GenerateExecutionExcel(data)
		if err != nil {
			log.Printf("acta_export: excel generation failed for project %s: %v", projectID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		name := downloadName("Ejecucion_"+data.QuoteNumber, "xlsx")
		if data.QuoteNumber == "" {
			name = downloadName("Ejecucion", "xlsx")
		}
		return sendAttachment(e, name,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			body)
	}
}
