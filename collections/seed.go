package collections

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type itemDef struct {
	sortOrder   int
	description string
	unit        string
	qty         float64
	unitPrice   float64
}

type actaLineDef struct {
	itemIndex   int // index into the quote item defs, -1 for free-text lines
	description string
	unit        string
	qty         float64
}

type actaDef struct {
	sequence     int
	deliveryDate string
	status       string
	notes        string
	lines        []actaLineDef
}

var demoQuoteItems = []itemDef{
	{1, "Aviso acrílico iluminado 3x1m", "und", 4, 1850000},
	{2, "Letras en lámina galvanizada cal. 20", "und", 28, 96000},
	{3, "Estructura en tubo cuadrado 2\"", "ml", 36, 74500},
	{4, "Instalación eléctrica LED", "ml", 48, 38000},
	{5, "Pintura electrostática", "m2", 22, 41000},
	{6, "Transporte e izaje", "glb", 1, 950000},
}

var demoActas = []actaDef{
	{
		sequence:     1,
		deliveryDate: "2026-02-10",
		status:       "final",
		notes:        "Primera entrega: estructura y avisos frente norte",
		lines: []actaLineDef{
			{itemIndex: 0, qty: 2},
			{itemIndex: 2, qty: 20},
			{itemIndex: 3, qty: 18},
		},
	},
	{
		sequence:     2,
		deliveryDate: "2026-03-04",
		status:       "final",
		notes:        "Segunda entrega: letreros y acabados",
		lines: []actaLineDef{
			{itemIndex: 0, qty: 2},
			{itemIndex: 1, qty: 16},
			{itemIndex: 3, qty: 12},
			{itemIndex: -1, description: "Retiro de aviso existente", unit: "und", qty: 1},
		},
	},
}

// Seed creates a demo client, project, authorized quote and two actas so a
// fresh install has something to look at. It is a no-op when any project
// already exists.
func Seed(app *pocketbase.PocketBase) error {
	existing, err := app.FindRecordsByFilter("projects", "id != ''", "", 1, 0, nil)
	if err != nil {
		return fmt.Errorf("seed: could not check projects: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	clientsCol, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		return fmt.Errorf("seed: clients collection missing: %w", err)
	}
	client := core.NewRecord(clientsCol)
	client.Set("name", "Centro Comercial La Sabana")
	client.Set("nit", "900123456-7")
	client.Set("contact_name", "Laura Mejía")
	client.Set("email", "compras@ccsabana.co")
	client.Set("phone", "6015550134")
	client.Set("city", "Bogotá")
	if err := app.Save(client); err != nil {
		return fmt.Errorf("seed: could not save demo client: %w", err)
	}

	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: projects collection missing: %w", err)
	}
	project := core.NewRecord(projectsCol)
	project.Set("name", "Señalización fachada norte")
	project.Set("reference_number", "OBR-2026-001")
	project.Set("client", client.Id)
	project.Set("status", "active")
	project.Set("city", "Bogotá")
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: could not save demo project: %w", err)
	}

	quotesCol, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return fmt.Errorf("seed: quotes collection missing: %w", err)
	}
	quote := core.NewRecord(quotesCol)
	quote.Set("project", project.Id)
	quote.Set("number", services.GenerateQuoteNumber(app, project.Id, time.Now()))
	quote.Set("status", "authorized")
	quote.Set("notes", "Cotización demo")
	if err := app.Save(quote); err != nil {
		return fmt.Errorf("seed: could not save demo quote: %w", err)
	}

	itemsCol, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		return fmt.Errorf("seed: quote_items collection missing: %w", err)
	}
	itemIDs := make([]string, len(demoQuoteItems))
	for i, def := range demoQuoteItems {
		rec := core.NewRecord(itemsCol)
		rec.Set("quote", quote.Id)
		rec.Set("sort_order", def.sortOrder)
		rec.Set("description", def.description)
		rec.Set("unit", def.unit)
		rec.Set("qty", def.qty)
		rec.Set("unit_price", def.unitPrice)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: could not save quote item %d: %w", i, err)
		}
		itemIDs[i] = rec.Id
	}

	actasCol, err := app.FindCollectionByNameOrId("actas")
	if err != nil {
		return fmt.Errorf("seed: actas collection missing: %w", err)
	}
	actaItemsCol, err := app.FindCollectionByNameOrId("acta_items")
	if err != nil {
		return fmt.Errorf("seed: acta_items collection missing: %w", err)
	}

	for _, def := range demoActas {
		acta := core.NewRecord(actasCol)
		acta.Set("project", project.Id)
		acta.Set("quote", quote.Id)
		acta.Set("sequence", def.sequence)
		acta.Set("delivery_date", def.deliveryDate)
		acta.Set("status", def.status)
		acta.Set("notes", def.notes)
		if err := app.Save(acta); err != nil {
			return fmt.Errorf("seed: could not save acta %d: %w", def.sequence, err)
		}

		for i, line := range def.lines {
			rec := core.NewRecord(actaItemsCol)
			rec.Set("acta", acta.Id)
			if line.itemIndex >= 0 {
				src := demoQuoteItems[line.itemIndex]
				rec.Set("quote_item", itemIDs[line.itemIndex])
				rec.Set("description", src.description)
				rec.Set("unit", src.unit)
			} else {
				rec.Set("description", line.description)
				rec.Set("unit", line.unit)
			}
			rec.Set("qty", line.qty)
			if err := app.Save(rec); err != nil {
				return fmt.Errorf("seed: could not save acta %d line %d: %w", def.sequence, i, err)
			}
		}
	}

	fmt.Println("Seeded demo client, project, quote and actas.")
	return nil
}
