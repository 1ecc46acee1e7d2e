// Package collections creates and migrates the PocketBase collections used by
// the application.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ruleAuthenticated restricts an operation to logged-in users.
var ruleAuthenticated = "@request.auth.id != \"\""

// ruleAdmin restricts an operation to users with the admin role.
var ruleAdmin = "@request.auth.role = \"admin\""

// Setup programmatically ensures all collections exist: clients, projects,
// quotes and their items, actas and their items, cortes with their item
// snapshots and acta links. Every collection carries row-level API rules so
// record access always requires an authenticated user; destructive rules
// require the admin role.
func Setup(app *pocketbase.PocketBase) {
	ensureUserRoleField(app)

	clients := ensureCollection(app, "clients", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "nit", Required: false})
		c.Fields.Add(&core.TextField{Name: "contact_name", Required: false})
		c.Fields.Add(&core.EmailField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "city", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: false})
		c.Fields.Add(&core.RelationField{
			Name:         "client",
			Required:     false,
			CollectionId: clients.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "closed"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "city", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	quotes := ensureCollection(app, "quotes", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "number", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "authorized", "superseded"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.DateField{Name: "valid_until", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		// Serialized item payload carried over from the old system; decoded
		// once by MigrateLegacyQuoteItems and cleared afterwards.
		c.Fields.Add(&core.TextField{Name: "legacy_items", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	quoteItems := ensureCollection(app, "quote_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quote",
			Required:      true,
			CollectionId:  quotes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: true})
	})

	actas := ensureCollection(app, "actas", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "quote",
			Required:     false,
			CollectionId: quotes.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "sequence", Required: true})
		c.Fields.Add(&core.DateField{Name: "delivery_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "final", "cut"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "acta_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "acta",
			Required:      true,
			CollectionId:  actas.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "quote_item",
			Required:     false,
			CollectionId: quoteItems.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: true})
	})

	cortes := ensureCollection(app, "cortes", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "number", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "invoiced"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "subtotal", Required: false})
		c.Fields.Add(&core.NumberField{Name: "admin_surcharge", Required: false})
		c.Fields.Add(&core.NumberField{Name: "tax", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "corte_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "corte",
			Required:      true,
			CollectionId:  cortes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "quote_item",
			Required:     false,
			CollectionId: quoteItems.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: true})
	})

	ensureCollection(app, "corte_actas", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "corte",
			Required:      true,
			CollectionId:  cortes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "acta",
			Required:      true,
			CollectionId:  actas.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
	})
}

// ensureUserRoleField adds a "role" select field to the built-in users auth
// collection so API rules and handlers can branch on it.
func ensureUserRoleField(app *pocketbase.PocketBase) {
	users, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		log.Printf("setup: users collection not found: %v", err)
		return
	}
	if users.Fields.GetByName("role") != nil {
		return
	}
	users.Fields.Add(&core.SelectField{
		Name:      "role",
		Required:  false,
		Values:    []string{"admin", "operator", "viewer"},
		MaxSelect: 1,
	})
	if err := app.Save(users); err != nil {
		log.Printf("setup: could not add role field to users: %v", err)
	}
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, the
// row-level API rules are applied, and the collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	collection.ListRule = &ruleAuthenticated
	collection.ViewRule = &ruleAuthenticated
	collection.CreateRule = &ruleAuthenticated
	collection.UpdateRule = &ruleAuthenticated
	collection.DeleteRule = &ruleAdmin

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
