package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/templates"
)

// HandleClientEdit returns a handler that renders the client edit form.
func HandleClientEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clientID := e.Request.PathValue("id")
		record, err := app.FindRecordById("clients", clientID)
		if err != nil {
			log.Printf("client_edit: could not find client %s: %v", clientID, err)
			return e.String(http.StatusNotFound, "Client not found")
		}

		data := templates.ClientFormData{
			Header:      GetHeaderData(e.Request),
			ID:          record.Id,
			Name:        record.GetString("name"),
			NIT:         record.GetString("nit"),
			ContactName: record.GetString("contact_name"),
			Email:       record.GetString("email"),
			Phone:       record.GetString("phone"),
			City:        record.GetString("city"),
			Errors:      make(map[string]string),
		}
		return templates.ClientFormPage(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleClientUpdate returns a handler that saves edits to a client.
func HandleClientUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clientID := e.Request.PathValue("id")
		record, err := app.FindRecordById("clients", clientID)
		if err != nil {
			log.Printf("client_edit: could not find client %s: %v", clientID, err)
			return e.String(http.StatusNotFound, "Client not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("client_edit: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		form := parseClientForm(e)
		if err := form.Validate(); err != nil {
			data := clientFormData(GetHeaderData(e.Request), record.Id, form, formErrors(err))
			return templates.ClientFormPage(data).Render(e.Request.Context(), e.Response)
		}

		record.Set("name", form.Name)
		record.Set("nit", form.NIT)
		record.Set("contact_name", form.ContactName)
		record.Set("email", form.Email)
		record.Set("phone", form.Phone)
		record.Set("city", form.City)

		if err := app.Save(record); err != nil {
			log.Printf("client_edit: could not save client %s: %v", clientID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		SetToast(e, "success", "Cliente actualizado")
		return e.Redirect(http.StatusFound, "/clients")
	}
}
