package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
	"obratrack/templates"
)

// HandleActaView returns a handler that renders a single acta with its lines.
func HandleActaView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		actaID := e.Request.PathValue("id")

		acta, err := app.FindRecordById("actas", actaID)
		if err != nil {
			log.Printf("acta_view: could not find acta %s: %v", actaID, err)
			return e.String(http.StatusNotFound, "Acta not found")
		}

		data := templates.ActaViewData{
			Header:    GetHeaderData(e.Request),
			ProjectID: projectID,
			ID:        acta.Id,
			Sequence:  acta.GetInt("sequence"),
			Status:    acta.GetString("status"),
			Notes:     acta.GetString("notes"),
		}
		if dt := acta.GetDateTime("delivery_date"); !dt.IsZero() {
			data.DeliveryDate = dt.Time().Format("02 Jan 2006")
		}

		lines, err := app.FindRecordsByFilter(
			"acta_items",
			"acta = {:actaId}",
			"", 0, 0,
			map[string]any{"actaId": actaID},
		)
		if err != nil {
			log.Printf("acta_view: could not load lines of acta %s: %v", actaID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		for _, line := range lines {
			data.Lines = append(data.Lines, templates.ActaLineRow{
				Description: line.GetString("description"),
				Unit:        line.GetString("unit"),
				Qty:         services.FormatQty(services.CoerceQty(line.Get("qty"))),
				FromScope:   line.GetString("quote_item") != "",
			})
		}

		return templates.ActaViewPage(data).Render(e.Request.Context(), e.Response)
	}
}
