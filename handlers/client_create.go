package handlers

import (
	"log"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/templates"
)

type clientForm struct {
	Name        string
	NIT         string
	ContactName string
	Email       string
	Phone       string
	City        string
}

func (f clientForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("El nombre es obligatorio")),
		validation.Field(&f.Email, is.Email.Error("Email inválido")),
	)
}

func parseClientForm(e *core.RequestEvent) clientForm {
	return clientForm{
		Name:        strings.TrimSpace(e.Request.FormValue("name")),
		NIT:         strings.TrimSpace(e.Request.FormValue("nit")),
		ContactName: strings.TrimSpace(e.Request.FormValue("contact_name")),
		Email:       strings.TrimSpace(e.Request.FormValue("email")),
		Phone:       strings.TrimSpace(e.Request.FormValue("phone")),
		City:        strings.TrimSpace(e.Request.FormValue("city")),
	}
}

func clientFormData(header templates.HeaderData, id string, form clientForm, errors map[string]string) templates.ClientFormData {
	return templates.ClientFormData{
		Header:      header,
		ID:          id,
		Name:        form.Name,
		NIT:         form.NIT,
		ContactName: form.ContactName,
		Email:       form.Email,
		Phone:       form.Phone,
		City:        form.City,
		Errors:      errors,
	}
}

// HandleClientCreate returns a handler that renders the client creation form.
func HandleClientCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ClientFormData{
			Header: GetHeaderData(e.Request),
			Errors: make(map[string]string),
		}
		return templates.ClientFormPage(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleClientSave returns a handler that processes the client creation form.
func HandleClientSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("client_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		form := parseClientForm(e)
		if err := form.Validate(); err != nil {
			data := clientFormData(GetHeaderData(e.Request), "", form, formErrors(err))
			return templates.ClientFormPage(data).Render(e.Request.Context(), e.Response)
		}

		clientsCol, err := app.FindCollectionByNameOrId("clients")
		if err != nil {
			log.Printf("client_create: could not find clients collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(clientsCol)
		record.Set("name", form.Name)
		record.Set("nit", form.NIT)
		record.Set("contact_name", form.ContactName)
		record.Set("email", form.Email)
		record.Set("phone", form.Phone)
		record.Set("city", form.City)

		if err := app.Save(record); err != nil {
			log.Printf("client_create: could not save client: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		SetToast(e, "success", "Cliente creado")
		return e.Redirect(http.StatusFound, "/clients")
	}
}
