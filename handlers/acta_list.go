package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/templates"
)

// HandleActaList returns a handler that renders the acta list for a project.
func HandleActaList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		records, err := app.FindRecordsByFilter(
			"actas",
			"project = {:projectId}",
			"-sequence", 0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("acta_list: could not query actas: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		var items []templates.ActaListItem
		for _, rec := range records {
			lines, err := app.FindRecordsByFilter(
				"acta_items",
				"acta = {:actaId}",
				"", 0, 0,
				map[string]any{"actaId": rec.Id},
			)
			if err != nil {
				log.Printf("acta_list: could not count lines for acta %s: %v", rec.Id, err)
				lines = nil
			}

			deliveryDate := "—"
			if dt := rec.GetDateTime("delivery_date"); !dt.IsZero() {
				deliveryDate = dt.Time().Format("02 Jan 2006")
			}

			items = append(items, templates.ActaListItem{
				ID:           rec.Id,
				Sequence:     rec.GetInt("sequence"),
				DeliveryDate: deliveryDate,
				Status:       rec.GetString("status"),
				Notes:        rec.GetString("notes"),
				LineCount:    len(lines),
			})
		}

		data := templates.ActaListData{
			Header:    GetHeaderData(e.Request),
			ProjectID: projectID,
			Items:     items,
			Total:     len(records),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ActaListContent(data)
		} else {
			component = templates.ActaListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
