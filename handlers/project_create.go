package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/templates"
)

type projectForm struct {
	Name      string
	RefNumber string
	ClientID  string
	Status    string
	City      string
}

func (f projectForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error("El nombre de la obra es obligatorio")),
		validation.Field(&f.Status, validation.Required, validation.In("active", "closed").Error("Estado inválido")),
	)
}

// formErrors flattens ozzo validation errors into the field to message map
// the templates render.
func formErrors(err error) map[string]string {
	out := make(map[string]string)
	var errs validation.Errors
	if errors.As(err, &errs) {
		for field, ferr := range errs {
			out[strings.ToLower(field)] = ferr.Error()
		}
	} else if err != nil {
		out["_form"] = err.Error()
	}
	return out
}

func parseProjectForm(e *core.RequestEvent) projectForm {
	return projectForm{
		Name:      strings.TrimSpace(e.Request.FormValue("name")),
		RefNumber: strings.TrimSpace(e.Request.FormValue("reference_number")),
		ClientID:  e.Request.FormValue("client"),
		Status:    e.Request.FormValue("status"),
		City:      strings.TrimSpace(e.Request.FormValue("city")),
	}
}

func loadClientOptions(app *pocketbase.PocketBase) []templates.ClientOption {
	clientsCol, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		return nil
	}
	records, err := app.FindAllRecords(clientsCol)
	if err != nil {
		return nil
	}
	options := make([]templates.ClientOption, 0, len(records))
	for _, rec := range records {
		options = append(options, templates.ClientOption{ID: rec.Id, Name: rec.GetString("name")})
	}
	return options
}

// HandleProjectCreate returns a handler that renders the project creation form.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ProjectFormData{
			Header:  GetHeaderData(e.Request),
			Status:  "active",
			Clients: loadClientOptions(app),
			Errors:  make(map[string]string),
		}
		return templates.ProjectFormPage(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleProjectSave returns a handler that processes the project creation form.
func HandleProjectSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("project_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		form := parseProjectForm(e)
		if err := form.Validate(); err != nil {
			data := templates.ProjectFormData{
				Header:    GetHeaderData(e.Request),
				Name:      form.Name,
				RefNumber: form.RefNumber,
				ClientID:  form.ClientID,
				Status:    form.Status,
				City:      form.City,
				Clients:   loadClientOptions(app),
				Errors:    formErrors(err),
			}
			return templates.ProjectFormPage(data).Render(e.Request.Context(), e.Response)
		}

		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(projectsCol)
		record.Set("name", form.Name)
		record.Set("reference_number", form.RefNumber)
		record.Set("client", form.ClientID)
		record.Set("status", form.Status)
		record.Set("city", form.City)

		if err := app.Save(record); err != nil {
			log.Printf("project_create: could not save project: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		SetToast(e, "success", "Obra creada")
		return e.Redirect(http.StatusFound, "/projects/"+record.Id)
	}
}
