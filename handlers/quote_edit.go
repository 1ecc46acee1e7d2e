package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/templates"
)

// HandleQuoteEdit returns a handler that renders the quote header edit form.
// Only drafts are editable; the number and status never change here.
func HandleQuoteEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		quoteID := e.Request.PathValue("id")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("quote_edit: could not find quote %s: %v", quoteID, err)
			return e.String(http.StatusNotFound, "Quote not found")
		}
		if quote.GetString("status") != "draft" {
			return ErrorToast(e, http.StatusConflict, "La cotización ya no es editable")
		}

		data := templates.QuoteFormData{
			Header:    GetHeaderData(e.Request),
			ProjectID: projectID,
			ID:        quote.Id,
			Number:    quote.GetString("number"),
			Notes:     quote.GetString("notes"),
			Errors:    make(map[string]string),
		}
		if dt := quote.GetDateTime("valid_until"); !dt.IsZero() {
			data.ValidUntil = dt.Time().Format("2006-01-02")
		}
		return templates.QuoteFormPage(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteUpdate returns a handler that saves header edits to a draft
// quote.
func HandleQuoteUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		quoteID := e.Request.PathValue("id")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("quote_edit: could not find quote %s: %v", quoteID, err)
			return e.String(http.StatusNotFound, "Quote not found")
		}
		if quote.GetString("status") != "draft" {
			return ErrorToast(e, http.StatusConflict, "La cotización ya no es editable")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("quote_edit: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		quote.Set("notes", strings.TrimSpace(e.Request.FormValue("notes")))
		quote.Set("valid_until", e.Request.FormValue("valid_until"))

		if err := app.Save(quote); err != nil {
			log.Printf("quote_edit: could not save quote %s: %v", quoteID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		SetToast(e, "success", "Cotización actualizada")
		return e.Redirect(http.StatusFound, "/projects/"+projectID+"/quotes/"+quoteID)
	}
}
