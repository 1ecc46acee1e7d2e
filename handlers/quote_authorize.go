package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
)

// HandleQuoteAuthorize returns a handler that authorizes a draft quote,
// making it the pricing source for the project. A previously authorized
// quote is marked superseded so only one stays active. Admin only.
func HandleQuoteAuthorize(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if role := AuthRole(e); role != RoleAdmin {
			log.Printf("quote_authorize: role %q denied", role)
			return ErrorToast(e, http.StatusForbidden, "Solo un administrador puede autorizar cotizaciones")
		}

		projectID := e.Request.PathValue("projectId")
		quoteID := e.Request.PathValue("id")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("quote_authorize: could not find quote %s: %v", quoteID, err)
			return ErrorToast(e, http.StatusNotFound, "Cotización no encontrada")
		}
		if quote.GetString("status") != "draft" {
			return ErrorToast(e, http.StatusConflict, "Solo una cotización en borrador puede autorizarse")
		}

		items, err := services.LoadQuoteItems(app, quoteID)
		if err != nil {
			log.Printf("quote_authorize: could not load items: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Error interno")
		}
		if len(items) == 0 {
			return ErrorToast(e, http.StatusConflict, "La cotización no tiene ítems")
		}

		if previous := services.FindAuthorizedQuote(app, projectID); previous != nil && previous.Id != quoteID {
			previous.Set("status", "superseded")
			if err := app.Save(previous); err != nil {
				log.Printf("quote_authorize: could not supersede quote %s: %v", previous.Id, err)
				return ErrorToast(e, http.StatusInternalServerError, "Error interno")
			}
		}

		quote.Set("status", "authorized")
		if err := app.Save(quote); err != nil {
			log.Printf("quote_authorize: could not save quote %s: %v", quoteID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Error interno")
		}

		SetToast(e, "success", "Cotización "+quote.GetString("number")+" autorizada")
		e.Response.Header().Set("HX-Redirect", "/projects/"+projectID+"/quotes/"+quoteID)
		return e.Redirect(http.StatusFound, "/projects/"+projectID+"/quotes/"+quoteID)
	}
}
