package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleActaDelete returns a handler that deletes an acta with its lines.
// Actas already included in a corte are immutable; the corte priced them.
// Admin only.
func HandleActaDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if role := AuthRole(e); role != RoleAdmin {
			log.Printf("acta_delete: role %q denied", role)
			return ErrorToast(e, http.StatusForbidden, "Solo un administrador puede eliminar actas")
		}

		projectID := e.Request.PathValue("projectId")
		actaID := e.Request.PathValue("id")

		acta, err := app.FindRecordById("actas", actaID)
		if err != nil {
			log.Printf("acta_delete: could not find acta %s: %v", actaID, err)
			return ErrorToast(e, http.StatusNotFound, "Acta no encontrada")
		}
		if acta.GetString("status") == "cut" {
			return ErrorToast(e, http.StatusConflict, "El acta ya fue incluida en un corte")
		}

		lines, err := app.FindRecordsByFilter(
			"acta_items",
			"acta = {:actaId}",
			"", 0, 0,
			map[string]any{"actaId": actaID},
		)
		if err != nil {
			log.Printf("acta_delete: could not load lines of acta %s: %v", actaID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Error interno")
		}
		for _, line := range lines {
			if err := app.Delete(line); err != nil {
				log.Printf("acta_delete: could not delete line %s: %v", line.Id, err)
				return ErrorToast(e, http.StatusInternalServerError, "Error interno")
			}
		}

		if err := app.Delete(acta); err != nil {
			log.Printf("acta_delete: could not delete acta %s: %v", actaID, err)
			return ErrorToast(e, http.StatusInternalServerError, "No se pudo eliminar el acta")
		}

		SetToast(e, "success", "Acta eliminada")
		if e.Request.Header.Get("HX-Request") == "true" {
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/projects/"+projectID+"/actas")
	}
}
