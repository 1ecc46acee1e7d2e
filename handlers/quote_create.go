package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
	"obratrack/templates"
)

// HandleQuoteCreate returns a handler that renders the quote creation form.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.QuoteFormData{
			Header:    GetHeaderData(e.Request),
			ProjectID: e.Request.PathValue("projectId"),
			Errors:    make(map[string]string),
		}
		return templates.QuoteFormPage(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteSave returns a handler that creates a draft quote with its
// consecutive number. Items are added afterwards on the quote page.
func HandleQuoteSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			log.Printf("quote_create: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("quote_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		quotesCol, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_create: could not find quotes collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(quotesCol)
		record.Set("project", projectID)
		record.Set("number", services.GenerateQuoteNumber(app, projectID, time.Now()))
		record.Set("status", "draft")
		record.Set("notes", strings.TrimSpace(e.Request.FormValue("notes")))

		if err := app.Save(record); err != nil {
			log.Printf("quote_create: could not save quote: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		SetToast(e, "success", "Cotización "+record.GetString("number")+" creada")
		return e.Redirect(http.StatusFound, "/projects/"+projectID+"/quotes/"+record.Id)
	}
}
