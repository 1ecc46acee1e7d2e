package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
	"obratrack/templates"
)

// HandleProjectView returns a handler that renders the project dashboard:
// details, contract summary and execution progress.
func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_view: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		data := templates.ProjectViewData{
			Header:    GetHeaderData(e.Request),
			ID:        record.Id,
			Name:      record.GetString("name"),
			RefNumber: record.GetString("reference_number"),
			Status:    record.GetString("status"),
			City:      record.GetString("city"),
		}

		if clientID := record.GetString("client"); clientID != "" {
			if client, err := app.FindRecordById("clients", clientID); err == nil {
				data.ClientName = client.GetString("name")
			}
		}

		if quote := services.FindAuthorizedQuote(app, projectID); quote != nil {
			data.QuoteNumber = quote.GetString("number")
			items, err := services.LoadQuoteItems(app, quote.Id)
			if err == nil {
				totals := services.ComputeTotals(services.QuoteLineItems(items))
				data.QuoteTotal = services.FormatCOP(totals.Total)
			}
			execution, err := services.BuildExecutionData(app, projectID)
			if err != nil {
				log.Printf("project_view: could not build execution for %s: %v", projectID, err)
			} else {
				data.Progress = execution.ProgressPercent
			}
		}

		actas, err := app.FindRecordsByFilter("actas", "project = {:projectId}", "", 0, 0, map[string]any{"projectId": projectID})
		if err == nil {
			data.ActaCount = len(actas)
		}
		cortes, err := app.FindRecordsByFilter("cortes", "project = {:projectId}", "", 0, 0, map[string]any{"projectId": projectID})
		if err == nil {
			data.CorteCount = len(cortes)
		}

		return templates.ProjectViewPage(data).Render(e.Request.Context(), e.Response)
	}
}
