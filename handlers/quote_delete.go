package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleQuoteDelete returns a handler that deletes a quote and its items.
// Only drafts can be deleted; anything authorized once stays for the audit
// trail. Admin only.
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if role := AuthRole(e); role != RoleAdmin {
			log.Printf("quote_delete: role %q denied", role)
			return ErrorToast(e, http.StatusForbidden, "Solo un administrador puede eliminar cotizaciones")
		}

		projectID := e.Request.PathValue("projectId")
		quoteID := e.Request.PathValue("id")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("quote_delete: could not find quote %s: %v", quoteID, err)
			return ErrorToast(e, http.StatusNotFound, "Cotización no encontrada")
		}
		if quote.GetString("status") != "draft" {
			return ErrorToast(e, http.StatusConflict, "Solo los borradores pueden eliminarse")
		}

		items, err := app.FindRecordsByFilter(
			"quote_items",
			"quote = {:quoteId}",
			"", 0, 0,
			map[string]any{"quoteId": quoteID},
		)
		if err != nil {
			log.Printf("quote_delete: could not load items of quote %s: %v", quoteID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Error interno")
		}
		for _, item := range items {
			if err := app.Delete(item); err != nil {
				log.Printf("quote_delete: could not delete item %s: %v", item.Id, err)
				return ErrorToast(e, http.StatusInternalServerError, "Error interno")
			}
		}

		if err := app.Delete(quote); err != nil {
			log.Printf("quote_delete: could not delete quote %s: %v", quoteID, err)
			return ErrorToast(e, http.StatusInternalServerError, "No se pudo eliminar la cotización")
		}

		SetToast(e, "success", "Cotización eliminada")
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/projects/"+projectID+"/quotes")
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/projects/"+projectID+"/quotes")
	}
}
