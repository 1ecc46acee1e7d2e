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

// executionTableRow flattens an aggregated row into display strings, aligning
// the per-acta quantities with the acta columns.
func executionTableRow(row services.ExecutionRow, actas []services.ActaHeader, orphan bool) templates.ExecutionTableRow {
	out := templates.ExecutionTableRow{
		Description:   row.Description,
		Unit:          row.Unit,
		Contracted:    services.FormatQty(row.Contracted),
		ExecutedTotal: services.FormatQty(row.ExecutedTotal),
		Remaining:     services.FormatQty(row.Remaining),
		OverDelivered: services.FormatQty(row.OverDelivered),
		IsOver:        row.OverDelivered > 0,
		IsOrphan:      orphan,
	}
	if orphan {
		out.Contracted = "—"
		out.Remaining = "—"
		out.OverDelivered = "—"
	}
	for _, acta := range actas {
		if qty, ok := row.PerActa[acta.ID]; ok && qty != 0 {
			out.PerActa = append(out.PerActa, services.FormatQty(qty))
		} else {
			out.PerActa = append(out.PerActa, "")
		}
	}
	return out
}

// HandleExecution returns a handler that renders the execution matrix of a
// project: contracted vs delivered per item, one column per acta, plus the
// weighted progress percent.
func HandleExecution(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		execution, err := services.BuildExecutionData(app, projectID)
		if err != nil {
			log.Printf("execution: %v", err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		data := templates.ExecutionPageData{
			Header:      GetHeaderData(e.Request),
			ProjectID:   projectID,
			ProjectName: execution.ProjectName,
			QuoteNumber: execution.QuoteNumber,
			Progress:    execution.ProgressPercent,
		}
		for _, acta := range execution.Actas {
			data.Actas = append(data.Actas, templates.ExecutionActaCol{
				ID:       acta.ID,
				Sequence: acta.Sequence,
			})
		}
		for _, row := range execution.Rows {
			data.Rows = append(data.Rows, executionTableRow(row, execution.Actas, false))
		}
		for _, row := range execution.Orphans {
			data.Orphans = append(data.Orphans, executionTableRow(row, execution.Actas, true))
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ExecutionContent(data)
		} else {
			component = templates.ExecutionPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
