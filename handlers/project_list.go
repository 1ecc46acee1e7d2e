package handlers

import (
	"log"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
	"obratrack/templates"
)

// HandleProjectList returns a handler that renders the project list page with
// each project's client, authorized quote and execution progress.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_list: could not find projects collection: %v", err)
			return e.String(500, "Internal error")
		}

		records, err := app.FindAllRecords(projectsCol)
		if err != nil {
			log.Printf("project_list: could not query projects: %v", err)
			return e.String(500, "Internal error")
		}

		var items []templates.ProjectListItem
		for _, rec := range records {
			item := templates.ProjectListItem{
				ID:        rec.Id,
				Name:      rec.GetString("name"),
				RefNumber: rec.GetString("reference_number"),
				Status:    rec.GetString("status"),
			}

			if clientID := rec.GetString("client"); clientID != "" {
				if client, err := app.FindRecordById("clients", clientID); err == nil {
					item.ClientName = client.GetString("name")
				}
			}

			if dt := rec.GetDateTime("updated"); !dt.IsZero() {
				item.UpdatedAgo = humanize.Time(dt.Time())
			}

			if quote := services.FindAuthorizedQuote(app, rec.Id); quote != nil {
				item.QuoteNumber = quote.GetString("number")
				execution, err := services.BuildExecutionData(app, rec.Id)
				if err != nil {
					log.Printf("project_list: could not build execution for %s: %v", rec.Id, err)
				} else {
					item.Progress = execution.ProgressPercent
				}
			}

			items = append(items, item)
		}

		data := templates.ProjectListData{
			Header: GetHeaderData(e.Request),
			Items:  items,
			Total:  len(records),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ProjectListContent(data)
		} else {
			component = templates.ProjectListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
