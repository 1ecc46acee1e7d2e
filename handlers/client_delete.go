package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleClientDelete returns a handler that deletes a client. Clients
// referenced by a project are kept to avoid dangling relations. Admin only.
func HandleClientDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if role := AuthRole(e); role != RoleAdmin {
			log.Printf("client_delete: role %q denied", role)
			return ErrorToast(e, http.StatusForbidden, "Solo un administrador puede eliminar clientes")
		}

		clientID := e.Request.PathValue("id")
		record, err := app.FindRecordById("clients", clientID)
		if err != nil {
			log.Printf("client_delete: could not find client %s: %v", clientID, err)
			return ErrorToast(e, http.StatusNotFound, "Cliente no encontrado")
		}

		linked, err := app.FindRecordsByFilter(
			"projects",
			"client = {:clientId}",
			"", 1, 0,
			map[string]any{"clientId": clientID},
		)
		if err == nil && len(linked) > 0 {
			return ErrorToast(e, http.StatusConflict, "El cliente tiene obras asociadas")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("client_delete: failed to delete client %s: %v", clientID, err)
			return ErrorToast(e, http.StatusInternalServerError, "No se pudo eliminar el cliente")
		}

		SetToast(e, "success", "Cliente eliminado")
		if e.Request.Header.Get("HX-Request") == "true" {
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/clients")
	}
}
