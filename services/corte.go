package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
)

// CorteItemDraft is one billable line computed for a new corte before it is
// persisted as a corte_items snapshot.
type CorteItemDraft struct {
	QuoteItemID string
	Description string
	Unit        string
	Qty         float64
	UnitPrice   float64
}

// BuildCorteItems aggregates the acta lines of the selected actas against the
// project's authorized quote and prices the result, producing the line set a
// new corte snapshots. Orphan lines (no matching quote item, so no unit
// price to bill against) are returned separately so the handler can warn the
// operator instead of silently writing them off.
func BuildCorteItems(app *pocketbase.PocketBase, projectID string, actaIDs []string) ([]CorteItemDraft, []ExecutionRow, error) {
	quote := FindAuthorizedQuote(app, projectID)
	if quote == nil {
		return nil, nil, fmt.Errorf("project %s has no authorized quote", projectID)
	}

	items, err := LoadQuoteItems(app, quote.Id)
	if err != nil {
		return nil, nil, err
	}

	var scope []ScopeEntry
	prices := make(map[string]float64, len(items))
	itemIDs := make(map[string]string, len(items))
	descIndex := map[string]string{}
	for _, item := range items {
		desc := item.GetString("description")
		key := ItemKey(item.Id, desc)
		scope = append(scope, ScopeEntry{
			Key:         key,
			Description: desc,
			Unit:        item.GetString("unit"),
			Contracted:  CoerceQty(item.Get("qty")),
		})
		prices[key] = CoerceQty(item.Get("unit_price"))
		itemIDs[key] = item.Id
		if norm := NormalizeDescription(desc); norm != "" {
			descIndex[norm] = item.Id
		}
	}

	var lines []ActaLine
	for _, actaID := range actaIDs {
		actaLines, err := app.FindRecordsByFilter(
			"acta_items",
			"acta = {:actaId}",
			"", 0, 0,
			map[string]any{"actaId": actaID},
		)
		if err != nil {
			return nil, nil, fmt.Errorf("load acta %s items: %w", actaID, err)
		}
		for _, line := range actaLines {
			itemID := line.GetString("quote_item")
			desc := line.GetString("description")
			if itemID == "" {
				if resolved, ok := descIndex[NormalizeDescription(desc)]; ok {
					itemID = resolved
				}
			}
			lines = append(lines, ActaLine{
				ActaID:      actaID,
				ItemID:      itemID,
				Description: desc,
				Unit:        line.GetString("unit"),
				Qty:         CoerceQty(line.Get("qty")),
			})
		}
	}

	rows, orphans := ComputeExecutionRows(scope, lines)

	var drafts []CorteItemDraft
	for _, row := range rows {
		if row.ExecutedTotal <= 0 {
			continue
		}
		drafts = append(drafts, CorteItemDraft{
			QuoteItemID: itemIDs[row.Key],
			Description: row.Description,
			Unit:        row.Unit,
			Qty:         row.ExecutedTotal,
			UnitPrice:   prices[row.Key],
		})
	}

	return drafts, orphans, nil
}

// CorteDraftLineItems converts corte drafts into line items for the totals
// calculator.
func CorteDraftLineItems(drafts []CorteItemDraft) []LineItem {
	lines := make([]LineItem, 0, len(drafts))
	for _, d := range drafts {
		lines = append(lines, LineItem{
			Description: d.Description,
			Unit:        d.Unit,
			UnitPrice:   d.UnitPrice,
			Qty:         d.Qty,
		})
	}
	return lines
}
