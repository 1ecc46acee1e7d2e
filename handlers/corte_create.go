package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
	"obratrack/templates"
)

// buildCorteFormData lists the project's final actas not yet billed by a
// corte.
func buildCorteFormData(app *pocketbase.PocketBase, header templates.HeaderData, projectID string) (templates.CorteFormData, error) {
	actas, err := app.FindRecordsByFilter(
		"actas",
		"project = {:projectId} && status = 'final'",
		"sequence", 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return templates.CorteFormData{}, fmt.Errorf("load uncut actas: %w", err)
	}

	data := templates.CorteFormData{
		Header:    header,
		ProjectID: projectID,
		Errors:    make(map[string]string),
	}
	for _, acta := range actas {
		lines, err := app.FindRecordsByFilter(
			"acta_items",
			"acta = {:actaId}",
			"", 0, 0,
			map[string]any{"actaId": acta.Id},
		)
		if err != nil {
			lines = nil
		}
		deliveryDate := "—"
		if dt := acta.GetDateTime("delivery_date"); !dt.IsZero() {
			deliveryDate = dt.Time().Format("02 Jan 2006")
		}
		data.Actas = append(data.Actas, templates.CorteActaOption{
			ID:           acta.Id,
			Sequence:     acta.GetInt("sequence"),
			DeliveryDate: deliveryDate,
			LineCount:    len(lines),
		})
	}
	return data, nil
}

// HandleCorteCreate returns a handler that renders the corte creation form.
func HandleCorteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		data, err := buildCorteFormData(app, GetHeaderData(e.Request), projectID)
		if err != nil {
			log.Printf("corte_create: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		return templates.CorteFormPage(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleCorteSave returns a handler that creates a corte from the selected
// actas: it aggregates their lines against the authorized quote, snapshots
// the priced result as corte_items and marks the actas as cut.
func HandleCorteSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			log.Printf("corte_create: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("corte_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		actaIDs := e.Request.Form["actas"]
		if len(actaIDs) == 0 {
			data, err := buildCorteFormData(app, GetHeaderData(e.Request), projectID)
			if err != nil {
				log.Printf("corte_create: %v", err)
				return e.String(http.StatusInternalServerError, "Internal error")
			}
			data.Errors["actas"] = "Seleccione al menos un acta"
			return templates.CorteFormPage(data).Render(e.Request.Context(), e.Response)
		}

		// Only final actas of this project can be cut. A stale form must not
		// re-bill an acta another corte already took.
		var actas []*core.Record
		for _, actaID := range actaIDs {
			acta, err := app.FindRecordById("actas", actaID)
			if err != nil || acta.GetString("project") != projectID {
				log.Printf("corte_create: invalid acta %s for project %s: %v", actaID, projectID, err)
				return ErrorToast(e, http.StatusBadRequest, "Acta inválida")
			}
			if acta.GetString("status") != "final" {
				return ErrorToast(e, http.StatusConflict, fmt.Sprintf("El acta %d ya fue incluida en un corte", acta.GetInt("sequence")))
			}
			actas = append(actas, acta)
		}

		drafts, orphans, err := services.BuildCorteItems(app, projectID, actaIDs)
		if err != nil {
			log.Printf("corte_create: %v", err)
			return ErrorToast(e, http.StatusConflict, "La obra no tiene cotización autorizada")
		}
		if len(drafts) == 0 {
			return ErrorToast(e, http.StatusConflict, "Las actas seleccionadas no tienen cantidades facturables")
		}

		totals := services.ComputeTotals(services.CorteDraftLineItems(drafts))

		// The snapshot, the acta links and the status flips land together or
		// not at all. A corte with half an item list, or with some of its
		// actas still billable, double-bills the next corte.
		var corte *core.Record
		err = app.RunInTransaction(func(txApp core.App) error {
			cortesCol, err := txApp.FindCollectionByNameOrId("cortes")
			if err != nil {
				return fmt.Errorf("find cortes collection: %w", err)
			}

			corte = core.NewRecord(cortesCol)
			corte.Set("project", projectID)
			corte.Set("number", services.GenerateCorteNumber(app, projectID, time.Now()))
			corte.Set("status", "draft")
			corte.Set("subtotal", totals.Subtotal)
			corte.Set("admin_surcharge", totals.AdminSurcharge)
			corte.Set("tax", totals.Tax)
			corte.Set("total", totals.Total)
			if err := txApp.Save(corte); err != nil {
				return fmt.Errorf("save corte: %w", err)
			}

			itemsCol, err := txApp.FindCollectionByNameOrId("corte_items")
			if err != nil {
				return fmt.Errorf("find corte_items collection: %w", err)
			}
			for i, draft := range drafts {
				record := core.NewRecord(itemsCol)
				record.Set("corte", corte.Id)
				record.Set("quote_item", draft.QuoteItemID)
				record.Set("sort_order", i+1)
				record.Set("description", draft.Description)
				record.Set("unit", draft.Unit)
				record.Set("qty", draft.Qty)
				record.Set("unit_price", draft.UnitPrice)
				if err := txApp.Save(record); err != nil {
					return fmt.Errorf("save corte item %d: %w", i+1, err)
				}
			}

			linksCol, err := txApp.FindCollectionByNameOrId("corte_actas")
			if err != nil {
				return fmt.Errorf("find corte_actas collection: %w", err)
			}
			for _, acta := range actas {
				link := core.NewRecord(linksCol)
				link.Set("corte", corte.Id)
				link.Set("acta", acta.Id)
				if err := txApp.Save(link); err != nil {
					return fmt.Errorf("link acta %s: %w", acta.Id, err)
				}
				acta.Set("status", "cut")
				if err := txApp.Save(acta); err != nil {
					return fmt.Errorf("mark acta %s as cut: %w", acta.Id, err)
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("corte_create: transaction rolled back: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		if len(orphans) > 0 {
			SetToast(e, "warning", fmt.Sprintf("Corte %s creado; %d línea(s) sin ítem contratado quedaron fuera", corte.GetString("number"), len(orphans)))
		} else {
			SetToast(e, "success", "Corte "+corte.GetString("number")+" creado")
		}
		return e.Redirect(http.StatusFound, "/projects/"+projectID+"/cortes/"+corte.Id)
	}
}
