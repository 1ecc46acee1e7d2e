package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/templates"
)

// HandleProjectEdit returns a handler that renders the project edit form.
func HandleProjectEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_edit: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		data := templates.ProjectFormData{
			Header:    GetHeaderData(e.Request),
			ID:        record.Id,
			Name:      record.GetString("name"),
			RefNumber: record.GetString("reference_number"),
			ClientID:  record.GetString("client"),
			Status:    record.GetString("status"),
			City:      record.GetString("city"),
			Clients:   loadClientOptions(app),
			Errors:    make(map[string]string),
		}
		return templates.ProjectFormPage(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleProjectUpdate returns a handler that saves edits to a project.
func HandleProjectUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_edit: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("project_edit: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		form := parseProjectForm(e)
		if err := form.Validate(); err != nil {
			data := templates.ProjectFormData{
				Header:    GetHeaderData(e.Request),
				ID:        record.Id,
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

		record.Set("name", form.Name)
		record.Set("reference_number", form.RefNumber)
		record.Set("client", form.ClientID)
		record.Set("status", form.Status)
		record.Set("city", form.City)

		if err := app.Save(record); err != nil {
			log.Printf("project_edit: could not save project %s: %v", projectID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		SetToast(e, "success", "Obra actualizada")
		return e.Redirect(http.StatusFound, "/projects/"+record.Id)
	}
}
