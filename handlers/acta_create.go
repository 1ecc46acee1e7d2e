package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
	"obratrack/templates"
)

// buildActaFormData assembles the acta entry form: one row per contracted
// item with its executed and remaining quantities, so whoever types the acta
// sees the balance they are delivering against.
func buildActaFormData(app *pocketbase.PocketBase, header templates.HeaderData, projectID string) (templates.ActaFormData, error) {
	execution, err := services.BuildExecutionData(app, projectID)
	if err != nil {
		return templates.ActaFormData{}, err
	}

	data := templates.ActaFormData{
		Header:       header,
		ProjectID:    projectID,
		Sequence:     services.NextActaSequence(app, projectID),
		DeliveryDate: time.Now().Format("2006-01-02"),
		Errors:       make(map[string]string),
	}

	for _, row := range execution.Rows {
		// Only rows backed by a quote item get a quantity input.
		if !strings.HasPrefix(row.Key, "i:") {
			continue
		}
		data.ScopeRows = append(data.ScopeRows, templates.ActaScopeRow{
			QuoteItemID: strings.TrimPrefix(row.Key, "i:"),
			Description: row.Description,
			Unit:        row.Unit,
			Contracted:  services.FormatQty(row.Contracted),
			Executed:    services.FormatQty(row.ExecutedTotal),
			Remaining:   services.FormatQty(row.Remaining),
		})
	}

	return data, nil
}

// HandleActaCreate returns a handler that renders the acta entry form.
func HandleActaCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		data, err := buildActaFormData(app, GetHeaderData(e.Request), projectID)
		if err != nil {
			log.Printf("acta_create: %v", err)
			return e.String(http.StatusNotFound, "Project not found")
		}
		return templates.ActaFormPage(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleActaSave returns a handler that records a delivery acta. The acta is
// final on save: deliveries are corrected with a follow-up acta, not by
// editing history.
func HandleActaSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			log.Printf("acta_create: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("acta_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		quote := services.FindAuthorizedQuote(app, projectID)
		if quote == nil {
			return ErrorToast(e, http.StatusConflict, "La obra no tiene cotización autorizada")
		}

		type actaLine struct {
			quoteItem   string
			description string
			unit        string
			qty         float64
		}
		var lines []actaLine

		items, err := services.LoadQuoteItems(app, quote.Id)
		if err != nil {
			log.Printf("acta_create: could not load quote items: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		for _, item := range items {
			raw := strings.TrimSpace(e.Request.FormValue("qty_" + item.Id))
			if raw == "" {
				continue
			}
			qty := services.CoerceQty(raw)
			if qty <= 0 {
				continue
			}
			lines = append(lines, actaLine{
				quoteItem:   item.Id,
				description: item.GetString("description"),
				unit:        item.GetString("unit"),
				qty:         qty,
			})
		}

		if extraDesc := strings.TrimSpace(e.Request.FormValue("extra_description")); extraDesc != "" {
			if qty := services.CoerceQty(e.Request.FormValue("extra_qty")); qty > 0 {
				lines = append(lines, actaLine{
					description: extraDesc,
					unit:        strings.TrimSpace(e.Request.FormValue("extra_unit")),
					qty:         qty,
				})
			}
		}

		if len(lines) == 0 {
			data, err := buildActaFormData(app, GetHeaderData(e.Request), projectID)
			if err != nil {
				log.Printf("acta_create: %v", err)
				return e.String(http.StatusInternalServerError, "Internal error")
			}
			data.DeliveryDate = e.Request.FormValue("delivery_date")
			data.Errors["lines"] = "El acta necesita al menos una cantidad entregada"
			return templates.ActaFormPage(data).Render(e.Request.Context(), e.Response)
		}

		// An acta without its lines would show up in the execution matrix as
		// a delivery of nothing, so header and lines commit together.
		var acta *core.Record
		err = app.RunInTransaction(func(txApp core.App) error {
			actasCol, err := txApp.FindCollectionByNameOrId("actas")
			if err != nil {
				return fmt.Errorf("find actas collection: %w", err)
			}

			acta = core.NewRecord(actasCol)
			acta.Set("project", projectID)
			acta.Set("quote", quote.Id)
			acta.Set("sequence", services.NextActaSequence(app, projectID))
			acta.Set("status", "final")
			acta.Set("notes", strings.TrimSpace(e.Request.FormValue("notes")))
			if raw := e.Request.FormValue("delivery_date"); raw != "" {
				acta.Set("delivery_date", raw)
			} else {
				acta.Set("delivery_date", time.Now().Format("2006-01-02"))
			}
			if err := txApp.Save(acta); err != nil {
				return fmt.Errorf("save acta: %w", err)
			}

			linesCol, err := txApp.FindCollectionByNameOrId("acta_items")
			if err != nil {
				return fmt.Errorf("find acta_items collection: %w", err)
			}
			for _, line := range lines {
				record := core.NewRecord(linesCol)
				record.Set("acta", acta.Id)
				record.Set("quote_item", line.quoteItem)
				record.Set("description", line.description)
				record.Set("unit", line.unit)
				record.Set("qty", line.qty)
				if err := txApp.Save(record); err != nil {
					return fmt.Errorf("save acta line: %w", err)
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("acta_create: transaction rolled back: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		SetToast(e, "success", "Acta registrada")
		return e.Redirect(http.StatusFound, "/projects/"+projectID+"/actas/"+acta.Id)
	}
}
