package handlers

import (
	"log"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/templates"
)

// HandleClientList returns a handler that renders the client list page.
func HandleClientList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clientsCol, err := app.FindCollectionByNameOrId("clients")
		if err != nil {
			log.Printf("client_list: could not find clients collection: %v", err)
			return e.String(500, "Internal error")
		}

		records, err := app.FindAllRecords(clientsCol)
		if err != nil {
			log.Printf("client_list: could not query clients: %v", err)
			return e.String(500, "Internal error")
		}

		var items []templates.ClientListItem
		for _, rec := range records {
			items = append(items, templates.ClientListItem{
				ID:          rec.Id,
				Name:        rec.GetString("name"),
				NIT:         rec.GetString("nit"),
				ContactName: rec.GetString("contact_name"),
				Phone:       rec.GetString("phone"),
				City:        rec.GetString("city"),
			})
		}

		data := templates.ClientListData{
			Header: GetHeaderData(e.Request),
			Items:  items,
			Total:  len(records),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ClientListContent(data)
		} else {
			component = templates.ClientListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
