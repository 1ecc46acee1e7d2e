package handlers

import (
	"log"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
	"obratrack/templates"
)

// HandleQuoteList returns a handler that renders the quote list for a project.
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")

		records, err := app.FindRecordsByFilter(
			"quotes",
			"project = {:projectId}",
			"-created", 0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("quote_list: could not query quotes: %v", err)
			return e.String(500, "Internal error")
		}

		var items []templates.QuoteListItem
		for _, rec := range records {
			quoteItems, err := services.LoadQuoteItems(app, rec.Id)
			if err != nil {
				log.Printf("quote_list: could not load items for quote %s: %v", rec.Id, err)
				quoteItems = nil
			}
			totals := services.ComputeTotals(services.QuoteLineItems(quoteItems))

			createdDate := "—"
			if dt := rec.GetDateTime("created"); !dt.IsZero() {
				createdDate = dt.Time().Format("02 Jan 2006")
			}

			items = append(items, templates.QuoteListItem{
				ID:          rec.Id,
				Number:      rec.GetString("number"),
				Status:      rec.GetString("status"),
				CreatedDate: createdDate,
				ItemCount:   len(quoteItems),
				Total:       services.FormatCOP(totals.Total),
			})
		}

		data := templates.QuoteListData{
			Header:    GetHeaderData(e.Request),
			ProjectID: projectID,
			Items:     items,
			Total:     len(records),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.QuoteListContent(data)
		} else {
			component = templates.QuoteListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
