package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
)

// legacyItem mirrors the shape the old system stored in the quote's
// serialized "legacy_items" field. Quantities and prices arrive as numbers or
// strings depending on which client wrote them, so everything is decoded as
// loose JSON and coerced afterwards.
type legacyItem struct {
	Description string `json:"descripcion"`
	Unit        string `json:"unidad"`
	Qty         any    `json:"cantidad"`
	UnitPrice   any    `json:"valor_unitario"`
}

// MigrateLegacyQuoteItems decodes quotes whose items still live in the
// serialized legacy_items payload into proper quote_items rows. This is the
// only place that ever sees the string form; every consumer downstream works
// with typed rows. Safe to call on every startup -- quotes that already have
// item rows, or no payload, are skipped.
func MigrateLegacyQuoteItems(app *pocketbase.PocketBase) error {
	itemsCol, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		return fmt.Errorf("migrate: could not find quote_items collection: %w", err)
	}

	legacyQuotes, err := app.FindRecordsByFilter(
		"quotes",
		"legacy_items != ''",
		"", 0, 0, nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query quotes with legacy items: %w", err)
	}

	if len(legacyQuotes) == 0 {
		return nil
	}

	log.Printf("migrate: found %d quote(s) with serialized legacy items\n", len(legacyQuotes))

	for _, quote := range legacyQuotes {
		existing, err := app.FindRecordsByFilter(
			"quote_items",
			"quote = {:quoteId}",
			"", 1, 0,
			map[string]any{"quoteId": quote.Id},
		)
		if err == nil && len(existing) > 0 {
			// Rows already exist; just drop the stale payload.
			quote.Set("legacy_items", "")
			if err := app.Save(quote); err != nil {
				log.Printf("migrate: failed to clear legacy payload on quote %s: %v\n", quote.Id, err)
			}
			continue
		}

		var items []legacyItem
		if err := json.Unmarshal([]byte(quote.GetString("legacy_items")), &items); err != nil {
			log.Printf("migrate: quote %s has an undecodable legacy payload, leaving it untouched: %v\n", quote.Id, err)
			continue
		}

		// Each quote migrates all-or-nothing. A partial row set with the
		// payload cleared would silently lose the rest of the items.
		payload := quote.GetString("legacy_items")
		saved := 0
		err = app.RunInTransaction(func(txApp core.App) error {
			for i, item := range items {
				if item.Description == "" {
					log.Printf("migrate: quote %s legacy item %d has no description, skipping\n", quote.Id, i)
					continue
				}
				rec := core.NewRecord(itemsCol)
				rec.Set("quote", quote.Id)
				rec.Set("sort_order", saved+1)
				rec.Set("description", item.Description)
				rec.Set("unit", item.Unit)
				rec.Set("qty", cast.ToFloat64(item.Qty))
				rec.Set("unit_price", cast.ToFloat64(item.UnitPrice))
				if err := txApp.Save(rec); err != nil {
					return fmt.Errorf("save item %d: %w", i, err)
				}
				saved++
			}

			quote.Set("legacy_items", "")
			if err := txApp.Save(quote); err != nil {
				return fmt.Errorf("clear legacy payload: %w", err)
			}
			return nil
		})
		if err != nil {
			// Rolled back: the payload stays in place for the next startup.
			quote.Set("legacy_items", payload)
			log.Printf("migrate: quote %s rolled back, payload kept: %v\n", quote.Id, err)
			continue
		}

		log.Printf("migrate: quote %s -> %d item row(s)\n", quote.Id, saved)
	}

	log.Println("migrate: legacy quote item migration complete.")
	return nil
}
