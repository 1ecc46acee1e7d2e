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

// buildQuoteViewData assembles the quote page payload: items, formatted
// totals and the edit/authorize affordances for the current status.
func buildQuoteViewData(app *pocketbase.PocketBase, header templates.HeaderData, projectID string, quote *core.Record) (templates.QuoteViewData, error) {
	items, err := services.LoadQuoteItems(app, quote.Id)
	if err != nil {
		return templates.QuoteViewData{}, err
	}

	status := quote.GetString("status")
	data := templates.QuoteViewData{
		Header:       header,
		ProjectID:    projectID,
		ID:           quote.Id,
		Number:       quote.GetString("number"),
		Status:       status,
		Notes:        quote.GetString("notes"),
		Editable:     status == "draft",
		CanAuthorize: status == "draft" && len(items) > 0,
	}
	if dt := quote.GetDateTime("created"); !dt.IsZero() {
		data.CreatedDate = dt.Time().Format("02 Jan 2006")
	}

	for _, item := range items {
		qty := services.CoerceQty(item.Get("qty"))
		price := services.CoerceQty(item.Get("unit_price"))
		data.Items = append(data.Items, templates.QuoteItemRow{
			ID:          item.Id,
			SortOrder:   item.GetInt("sort_order"),
			Description: item.GetString("description"),
			Unit:        item.GetString("unit"),
			Qty:         services.FormatQty(qty),
			UnitPrice:   services.FormatCOP(price),
			LineTotal:   services.FormatCOP(qty * price),
		})
	}

	totals := services.ComputeTotals(services.QuoteLineItems(items))
	data.Subtotal = services.FormatCOP(totals.Subtotal)
	data.AdminSurcharge = services.FormatCOP(totals.AdminSurcharge)
	data.Tax = services.FormatCOP(totals.Tax)
	data.GrandTotal = services.FormatCOP(totals.Total)

	return data, nil
}

// HandleQuoteView returns a handler that renders a quote with its items and
// totals.
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		quoteID := e.Request.PathValue("id")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("quote_view: could not find quote %s: %v", quoteID, err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		data, err := buildQuoteViewData(app, GetHeaderData(e.Request), projectID, quote)
		if err != nil {
			log.Printf("quote_view: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.QuoteViewContent(data)
		} else {
			component = templates.QuoteViewPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
