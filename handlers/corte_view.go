package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
	"obratrack/templates"
)

// HandleCorteView returns a handler that renders a corte with its priced
// snapshot and totals.
func HandleCorteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		corteID := e.Request.PathValue("id")

		export, err := services.BuildCorteExportData(app, corteID)
		if err != nil {
			log.Printf("corte_view: %v", err)
			return e.String(http.StatusNotFound, "Corte not found")
		}

		data := templates.CorteViewData{
			Header:         GetHeaderData(e.Request),
			ProjectID:      projectID,
			ID:             corteID,
			Number:         export.Number,
			Status:         export.Status,
			CreatedDate:    export.CreatedDate,
			ActaSequences:  export.ActaSequences,
			Subtotal:       services.FormatCOP(export.Totals.Subtotal),
			AdminSurcharge: services.FormatCOP(export.Totals.AdminSurcharge),
			Tax:            services.FormatCOP(export.Totals.Tax),
			GrandTotal:     services.FormatCOP(export.Totals.Total),
		}
		if export.BilledBefore > 0 {
			data.BilledBefore = services.FormatCOP(export.BilledBefore)
		}
		for _, row := range export.Rows {
			data.Items = append(data.Items, templates.CorteItemRow{
				Description: row.Description,
				Unit:        row.Unit,
				Qty:         services.FormatQty(row.Qty),
				UnitPrice:   services.FormatCOP(row.UnitPrice),
				LineTotal:   services.FormatCOP(row.LineTotal),
			})
		}

		return templates.CorteViewPage(data).Render(e.Request.Context(), e.Response)
	}
}
