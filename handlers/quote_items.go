package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
	"obratrack/templates"
)

// HandleQuoteAddItem returns a handler that appends a line item to a draft
// quote and re-renders the item table partial.
func HandleQuoteAddItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		quoteID := e.Request.PathValue("id")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("quote_items: could not find quote %s: %v", quoteID, err)
			return ErrorToast(e, http.StatusNotFound, "Cotización no encontrada")
		}
		if quote.GetString("status") != "draft" {
			return ErrorToast(e, http.StatusConflict, "La cotización ya no es editable")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("quote_items: could not parse form: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "Formulario inválido")
		}

		description := strings.TrimSpace(e.Request.FormValue("description"))
		if description == "" {
			return ErrorToast(e, http.StatusBadRequest, "La descripción es obligatoria")
		}
		qty := services.CoerceQty(e.Request.FormValue("qty"))
		unitPrice := services.CoerceQty(e.Request.FormValue("unit_price"))
		if qty < 0 || unitPrice < 0 {
			return ErrorToast(e, http.StatusBadRequest, "Cantidades y precios deben ser positivos")
		}

		existing, err := services.LoadQuoteItems(app, quoteID)
		if err != nil {
			log.Printf("quote_items: could not load items: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Error interno")
		}

		itemsCol, err := app.FindCollectionByNameOrId("quote_items")
		if err != nil {
			log.Printf("quote_items: could not find quote_items collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Error interno")
		}

		record := core.NewRecord(itemsCol)
		record.Set("quote", quoteID)
		record.Set("sort_order", len(existing)+1)
		record.Set("description", description)
		record.Set("unit", strings.TrimSpace(e.Request.FormValue("unit")))
		record.Set("qty", qty)
		record.Set("unit_price", unitPrice)

		if err := app.Save(record); err != nil {
			log.Printf("quote_items: could not save item: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "No se pudo guardar el ítem")
		}

		data, err := buildQuoteViewData(app, GetHeaderData(e.Request), projectID, quote)
		if err != nil {
			log.Printf("quote_items: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Error interno")
		}
		return templates.QuoteItemsTable(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteUpdateItem returns a handler that edits a line item of a draft
// quote. Only the fields present in the form change, so a client can patch
// just the quantity or just the price.
func HandleQuoteUpdateItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		quoteID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("quote_items: could not find quote %s: %v", quoteID, err)
			return ErrorToast(e, http.StatusNotFound, "Cotización no encontrada")
		}
		if quote.GetString("status") != "draft" {
			return ErrorToast(e, http.StatusConflict, "La cotización ya no es editable")
		}

		item, err := app.FindRecordById("quote_items", itemID)
		if err != nil || item.GetString("quote") != quoteID {
			log.Printf("quote_items: could not find item %s of quote %s: %v", itemID, quoteID, err)
			return ErrorToast(e, http.StatusNotFound, "Ítem no encontrado")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("quote_items: could not parse form: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "Formulario inválido")
		}

		if _, ok := e.Request.Form["description"]; ok {
			description := strings.TrimSpace(e.Request.FormValue("description"))
			if description == "" {
				return ErrorToast(e, http.StatusBadRequest, "La descripción es obligatoria")
			}
			item.Set("description", description)
		}
		if _, ok := e.Request.Form["unit"]; ok {
			item.Set("unit", strings.TrimSpace(e.Request.FormValue("unit")))
		}
		if _, ok := e.Request.Form["qty"]; ok {
			qty := services.CoerceQty(e.Request.FormValue("qty"))
			if qty < 0 {
				return ErrorToast(e, http.StatusBadRequest, "Cantidades y precios deben ser positivos")
			}
			item.Set("qty", qty)
		}
		if _, ok := e.Request.Form["unit_price"]; ok {
			unitPrice := services.CoerceQty(e.Request.FormValue("unit_price"))
			if unitPrice < 0 {
				return ErrorToast(e, http.StatusBadRequest, "Cantidades y precios deben ser positivos")
			}
			item.Set("unit_price", unitPrice)
		}

		if err := app.Save(item); err != nil {
			log.Printf("quote_items: could not update item %s: %v", itemID, err)
			return ErrorToast(e, http.StatusInternalServerError, "No se pudo actualizar el ítem")
		}

		data, err := buildQuoteViewData(app, GetHeaderData(e.Request), projectID, quote)
		if err != nil {
			log.Printf("quote_items: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Error interno")
		}
		return templates.QuoteItemsTable(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteDeleteItem returns a handler that removes a line item from a
// draft quote and re-renders the item table partial.
func HandleQuoteDeleteItem(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		quoteID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("quote_items: could not find quote %s: %v", quoteID, err)
			return ErrorToast(e, http.StatusNotFound, "Cotización no encontrada")
		}
		if quote.GetString("status") != "draft" {
			return ErrorToast(e, http.StatusConflict, "La cotización ya no es editable")
		}

		item, err := app.FindRecordById("quote_items", itemID)
		if err != nil || item.GetString("quote") != quoteID {
			log.Printf("quote_items: could not find item %s of quote %s: %v", itemID, quoteID, err)
			return ErrorToast(e, http.StatusNotFound, "Ítem no encontrado")
		}

		if err := app.Delete(item); err != nil {
			log.Printf("quote_items: could not delete item %s: %v", itemID, err)
			return ErrorToast(e, http.StatusInternalServerError, "No se pudo eliminar el ítem")
		}

		data, err := buildQuoteViewData(app, GetHeaderData(e.Request), projectID, quote)
		if err != nil {
			log.Printf("quote_items: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Error interno")
		}
		return templates.QuoteItemsTable(data).Render(e.Request.Context(), e.Response)
	}
}
