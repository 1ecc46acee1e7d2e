// Package handlers contains the HTTP route handlers. Each handler is a
// closure over the PocketBase app, in the form the router expects.
package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/templates"
)

type contextKey string

const ActiveProjectKey contextKey = "activeProject"
const HeaderDataKey contextKey = "headerData"

// RoleAdmin gates destructive and contract-changing operations.
const RoleAdmin = "admin"

// GetActiveProject extracts the active project from the request context.
func GetActiveProject(r *http.Request) *templates.ActiveProject {
	if val, ok := r.Context().Value(ActiveProjectKey).(*templates.ActiveProject); ok {
		return val
	}
	return nil
}

// GetHeaderData extracts the pre-built HeaderData from the request context.
func GetHeaderData(r *http.Request) templates.HeaderData {
	if val, ok := r.Context().Value(HeaderDataKey).(templates.HeaderData); ok {
		return val
	}
	return templates.HeaderData{}
}

// AuthRole returns the role of the authenticated user. Requests without an
// auth record (single-operator installs running behind the PocketBase
// superuser dashboard) act as operator; destructive actions still demand an
// explicit admin role. Handlers receive the role as a value and pass it on
// explicitly -- nothing below this function reads auth state ambiently.
func AuthRole(e *core.RequestEvent) string {
	if e.Auth != nil {
		if role := e.Auth.GetString("role"); role != "" {
			return role
		}
	}
	return "operator"
}

// ActiveProjectMiddleware reads the "active_project" cookie, loads the
// project record, builds HeaderData with the full project list and the
// requester's role, and stores both in the request context.
func ActiveProjectMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var activeProj *templates.ActiveProject

		cookie, err := e.Request.Cookie("active_project")
		if err == nil && cookie.Value != "" {
			rec, err := app.FindRecordById("projects", cookie.Value)
			if err == nil {
				activeProj = &templates.ActiveProject{
					ID:   rec.Id,
					Name: rec.GetString("name"),
				}
			} else {
				log.Printf("middleware: active project %s not found, clearing cookie", cookie.Value)
				http.SetCookie(e.Response, &http.Cookie{
					Name:   "active_project",
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
			}
		}

		projectsCol, _ := app.FindCollectionByNameOrId("projects")
		var selectorItems []templates.ProjectSelectorItem
		if projectsCol != nil {
			records, _ := app.FindAllRecords(projectsCol)
			for _, rec := range records {
				isActive := activeProj != nil && rec.Id == activeProj.ID
				selectorItems = append(selectorItems, templates.ProjectSelectorItem{
					ID:       rec.Id,
					Name:     rec.GetString("name"),
					IsActive: isActive,
				})
			}
		}

		headerData := templates.HeaderData{
			ActiveProject: activeProj,
			Projects:      selectorItems,
			UserRole:      AuthRole(e),
		}

		ctx := context.WithValue(e.Request.Context(), ActiveProjectKey, activeProj)
		ctx = context.WithValue(ctx, HeaderDataKey, headerData)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
