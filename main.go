package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/collections"
	"obratrack/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections, migrate legacy data and seed on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.MigrateLegacyQuoteItems(app); err != nil {
			log.Printf("Warning: legacy quote item migration failed: %v", err)
		}
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	// Serve static files from ./static
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Apply active project middleware globally
		se.Router.BindFunc(handlers.ActiveProjectMiddleware(app))

		// ── Project activation ───────────────────────────────────
		se.Router.POST("/projects/{id}/activate", handlers.HandleProjectActivate(app))
		se.Router.POST("/projects/deactivate", handlers.HandleProjectDeactivate(app))

		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/projects", handlers.HandleProjectList(app))
		se.Router.GET("/projects/create", handlers.HandleProjectCreate(app))
		se.Router.POST("/projects", handlers.HandleProjectSave(app))
		se.Router.GET("/projects/{id}/edit", handlers.HandleProjectEdit(app))
		se.Router.POST("/projects/{id}/save", handlers.HandleProjectUpdate(app))
		se.Router.DELETE("/projects/{id}", handlers.HandleProjectDelete(app))
		se.Router.GET("/projects/{id}", handlers.HandleProjectView(app))

		// ── Client CRUD (global) ─────────────────────────────────
		se.Router.GET("/clients", handlers.HandleClientList(app))
		se.Router.GET("/clients/create", handlers.HandleClientCreate(app))
		se.Router.POST("/clients", handlers.HandleClientSave(app))
		se.Router.GET("/clients/{id}/edit", handlers.HandleClientEdit(app))
		se.Router.POST("/clients/{id}/save", handlers.HandleClientUpdate(app))
		se.Router.DELETE("/clients/{id}", handlers.HandleClientDelete(app))

		// ── Quotes ───────────────────────────────────────────────
		se.Router.GET("/projects/{projectId}/quotes/create", handlers.HandleQuoteCreate(app))
		se.Router.POST("/projects/{projectId}/quotes", handlers.HandleQuoteSave(app))
		se.Router.GET("/projects/{projectId}/quotes/{id}/edit", handlers.HandleQuoteEdit(app))
		se.Router.POST("/projects/{projectId}/quotes/{id}/save", handlers.HandleQuoteUpdate(app))
		se.Router.POST("/projects/{projectId}/quotes/{id}/items", handlers.HandleQuoteAddItem(app))
		se.Router.PATCH("/projects/{projectId}/quotes/{id}/items/{itemId}", handlers.HandleQuoteUpdateItem(app))
		se.Router.DELETE("/projects/{projectId}/quotes/{id}/items/{itemId}", handlers.HandleQuoteDeleteItem(app))
		se.Router.POST("/projects/{projectId}/quotes/{id}/authorize", handlers.HandleQuoteAuthorize(app))
		se.Router.GET("/projects/{projectId}/quotes/{id}/export/excel", handlers.HandleQuoteExportExcel(app))
		se.Router.GET("/projects/{projectId}/quotes/{id}/export/pdf", handlers.HandleQuoteExportPDF(app))
		se.Router.DELETE("/projects/{projectId}/quotes/{id}", handlers.HandleQuoteDelete(app))
		se.Router.GET("/projects/{projectId}/quotes/{id}", handlers.HandleQuoteView(app))
		se.Router.GET("/projects/{projectId}/quotes", handlers.HandleQuoteList(app))

		// ── Actas de entrega ─────────────────────────────────────
		se.Router.GET("/projects/{projectId}/actas/create", handlers.HandleActaCreate(app))
		se.Router.POST("/projects/{projectId}/actas", handlers.HandleActaSave(app))
		se.Router.GET("/projects/{projectId}/actas/export/excel", handlers.HandleExecutionExportExcel(app))
		se.Router.DELETE("/projects/{projectId}/actas/{id}", handlers.HandleActaDelete(app))
		se.Router.GET("/projects/{projectId}/actas/{id}", handlers.HandleActaView(app))
		se.Router.GET("/projects/{projectId}/actas", handlers.HandleActaList(app))

		// ── Ejecución ────────────────────────────────────────────
		se.Router.GET("/projects/{projectId}/execution", handlers.HandleExecution(app))

		// ── Cortes de obra ───────────────────────────────────────
		se.Router.GET("/projects/{projectId}/cortes/create", handlers.HandleCorteCreate(app))
		se.Router.POST("/projects/{projectId}/cortes", handlers.HandleCorteSave(app))
		se.Router.GET("/projects/{projectId}/cortes/{id}/export/pdf", handlers.HandleCorteExportPDF(app))
		se.Router.GET("/projects/{projectId}/cortes/{id}", handlers.HandleCorteView(app))
		se.Router.GET("/projects/{projectId}/cortes", handlers.HandleCorteList(app))

		// ── Legacy quote redirects ───────────────────────────────
		se.Router.GET("/cotizaciones", func(e *core.RequestEvent) error {
			activeProject := handlers.GetActiveProject(e.Request)
			if activeProject != nil {
				return e.Redirect(http.StatusFound, fmt.Sprintf("/projects/%s/quotes", activeProject.ID))
			}
			return e.Redirect(http.StatusFound, "/projects")
		})

		se.Router.GET("/cotizaciones/{id}", func(e *core.RequestEvent) error {
			quoteID := e.Request.PathValue("id")
			quote, err := app.FindRecordById("quotes", quoteID)
			if err != nil {
				return e.String(http.StatusNotFound, "Quote not found")
			}
			projectID := quote.GetString("project")
			if projectID == "" {
				return e.String(http.StatusNotFound, "Quote has no project")
			}
			return e.Redirect(http.StatusFound, fmt.Sprintf("/projects/%s/quotes/%s", projectID, quoteID))
		})

		// Redirect home to projects list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/projects")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
