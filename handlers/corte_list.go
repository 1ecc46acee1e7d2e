package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
	"obratrack/templates"
)

// HandleCorteList returns a handler that renders the corte list for a project.
func HandleCorteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		records, err := app.FindRecordsByFilter(
			"cortes",
			"project = {:projectId}",
			"-created", 0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("corte_list: could not query cortes: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		var items []templates.CorteListItem
		for _, rec := range records {
			createdDate := "—"
			if dt := rec.GetDateTime("created"); !dt.IsZero() {
				createdDate = dt.Time().Format("02 Jan 2006")
			}
			items = append(items, templates.CorteListItem{
				ID:          rec.Id,
				Number:      rec.GetString("number"),
				Status:      rec.GetString("status"),
				CreatedDate: createdDate,
				Total:       services.FormatCOP(services.CoerceQty(rec.Get("total"))),
			})
		}

		data := templates.CorteListData{
			Header:    GetHeaderData(e.Request),
			ProjectID: projectID,
			Items:     items,
			Total:     len(records),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.CorteListContent(data)
		} else {
			component = templates.CorteListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
