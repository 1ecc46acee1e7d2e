package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectDelete returns a handler that deletes a project and, via
// cascade, its quotes, actas and cortes. Admin only.
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if role := AuthRole(e); role != RoleAdmin {
			log.Printf("project_delete: role %q denied", role)
			return ErrorToast(e, http.StatusForbidden, "Solo un administrador puede eliminar obras")
		}

		projectID := e.Request.PathValue("id")
		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_delete: could not find project %s: %v", projectID, err)
			return ErrorToast(e, http.StatusNotFound, "Obra no encontrada")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("project_delete: failed to delete project %s: %v", projectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "No se pudo eliminar la obra")
		}

		SetToast(e, "success", "Obra eliminada")
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/projects")
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/projects")
	}
}
