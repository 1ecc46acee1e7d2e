package services

import (
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// PricedRow is a single priced row in a quote or corte document.
type PricedRow struct {
	Index       int
	Description string
	Unit        string
	Qty         float64
	UnitPrice   float64
	LineTotal   float64
}

// QuoteExportData holds everything the quote Excel/PDF renderers need.
type QuoteExportData struct {
	Number      string
	Status      string
	ProjectName string
	ClientName  string
	CreatedDate string
	Rows        []PricedRow
	Totals      Totals
}

// ActaHeader identifies one acta column in the execution matrix.
type ActaHeader struct {
	ID           string
	Sequence     int
	DeliveryDate string
}

// ExecutionData holds the full execution state of a project: the per-item
// rows against the authorized quote, orphan lines, the acta columns and the
// weighted progress percent.
type ExecutionData struct {
	ProjectName     string
	QuoteNumber     string
	Actas           []ActaHeader
	Rows            []ExecutionRow
	Orphans         []ExecutionRow
	ProgressPercent int
}

// CorteExportData holds everything the corte PDF renderer needs.
type CorteExportData struct {
	Number        string
	Status        string
	ProjectName   string
	ClientName    string
	CreatedDate   string
	ActaSequences []int
	Rows          []PricedRow
	Totals        Totals
	BilledBefore  float64 // sum of earlier cortes of the same project
}

// FindAuthorizedQuote returns the project's authorized quote, or nil when the
// project has no contracted scope yet.
func FindAuthorizedQuote(app *pocketbase.PocketBase, projectID string) *core.Record {
	records, err := app.FindRecordsByFilter(
		"quotes",
		"project = {:projectId} && status = 'authorized'",
		"-updated", 1, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil || len(records) == 0 {
		return nil
	}
	return records[0]
}

// LoadQuoteItems returns a quote's item records in sort order.
func LoadQuoteItems(app *pocketbase.PocketBase, quoteID string) ([]*core.Record, error) {
	items, err := app.FindRecordsByFilter(
		"quote_items",
		"quote = {:quoteId}",
		"sort_order", 0, 0,
		map[string]any{"quoteId": quoteID},
	)
	if err != nil {
		return nil, fmt.Errorf("load quote items: %w", err)
	}
	return items, nil
}

// QuoteLineItems converts quote item records into priced line items for the
// totals calculator. Quantities and prices coerce defensively so one bad row
// cannot break a totals render.
func QuoteLineItems(items []*core.Record) []LineItem {
	lines := make([]LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, LineItem{
			Description: item.GetString("description"),
			Unit:        item.GetString("unit"),
			UnitPrice:   CoerceQty(item.Get("unit_price")),
			Qty:         CoerceQty(item.Get("qty")),
		})
	}
	return lines
}

// BuildQuoteExportData loads a quote with its project, client and items and
// assembles the document payload.
func BuildQuoteExportData(app *pocketbase.PocketBase, quoteID string) (QuoteExportData, error) {
	quote, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		return QuoteExportData{}, fmt.Errorf("quote not found: %w", err)
	}

	data := QuoteExportData{
		Number: quote.GetString("number"),
		Status: quote.GetString("status"),
	}
	if dt := quote.GetDateTime("created"); !dt.IsZero() {
		data.CreatedDate = dt.Time().Format("02 Jan 2006")
	}

	if project, err := app.FindRecordById("projects", quote.GetString("project")); err == nil {
		data.ProjectName = project.GetString("name")
		if clientID := project.GetString("client"); clientID != "" {
			if client, err := app.FindRecordById("clients", clientID); err == nil {
				data.ClientName = client.GetString("name")
			}
		}
	}

	items, err := LoadQuoteItems(app, quoteID)
	if err != nil {
		return QuoteExportData{}, err
	}
	for i, item := range items {
		qty := CoerceQty(item.Get("qty"))
		price := CoerceQty(item.Get("unit_price"))
		data.Rows = append(data.Rows, PricedRow{
			Index:       i + 1,
			Description: item.GetString("description"),
			Unit:        item.GetString("unit"),
			Qty:         qty,
			UnitPrice:   price,
			LineTotal:   qty * price,
		})
	}
	data.Totals = ComputeTotals(QuoteLineItems(items))

	return data, nil
}

// BuildExecutionData assembles the execution state of a project from its
// authorized quote and all of its actas.
//
// Free-text acta lines are resolved against the scope by normalized
// description before aggregation, so a line typed without picking the quote
// item still lands on the right row when the wording matches.
func BuildExecutionData(app *pocketbase.PocketBase, projectID string) (ExecutionData, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return ExecutionData{}, fmt.Errorf("project not found: %w", err)
	}

	data := ExecutionData{ProjectName: project.GetString("name")}

	quote := FindAuthorizedQuote(app, projectID)
	var scope []ScopeEntry
	descIndex := map[string]string{}
	if quote != nil {
		data.QuoteNumber = quote.GetString("number")
		items, err := LoadQuoteItems(app, quote.Id)
		if err != nil {
			return ExecutionData{}, err
		}
		for _, item := range items {
			desc := item.GetString("description")
			scope = append(scope, ScopeEntry{
				Key:         ItemKey(item.Id, desc),
				Description: desc,
				Unit:        item.GetString("unit"),
				Contracted:  CoerceQty(item.Get("qty")),
			})
			if norm := NormalizeDescription(desc); norm != "" {
				descIndex[norm] = item.Id
			}
		}
	}

	actas, err := app.FindRecordsByFilter(
		"actas",
		"project = {:projectId}",
		"sequence", 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return ExecutionData{}, fmt.Errorf("load actas: %w", err)
	}

	var lines []ActaLine
	for _, acta := range actas {
		header := ActaHeader{ID: acta.Id, Sequence: acta.GetInt("sequence")}
		if dt := acta.GetDateTime("delivery_date"); !dt.IsZero() {
			header.DeliveryDate = dt.Time().Format("02 Jan 2006")
		}
		data.Actas = append(data.Actas, header)

		actaLines, err := app.FindRecordsByFilter(
			"acta_items",
			"acta = {:actaId}",
			"", 0, 0,
			map[string]any{"actaId": acta.Id},
		)
		if err != nil {
			return ExecutionData{}, fmt.Errorf("load acta %s items: %w", acta.Id, err)
		}
		for _, line := range actaLines {
			itemID := line.GetString("quote_item")
			desc := line.GetString("description")
			if itemID == "" {
				// Description fallback join against the scope.
				if resolved, ok := descIndex[NormalizeDescription(desc)]; ok {
					itemID = resolved
				}
			}
			lines = append(lines, ActaLine{
				ActaID:      acta.Id,
				ItemID:      itemID,
				Description: desc,
				Unit:        line.GetString("unit"),
				Qty:         CoerceQty(line.Get("qty")),
			})
		}
	}

	data.Rows, data.Orphans = ComputeExecutionRows(scope, lines)
	data.ProgressPercent = ComputeProgressPercent(data.Rows)

	return data, nil
}

// BuildCorteExportData loads a corte with its item snapshot and linked actas
// and assembles the document payload. BilledBefore aggregates the totals of
// the project's earlier cortes straight in SQL.
func BuildCorteExportData(app *pocketbase.PocketBase, corteID string) (CorteExportData, error) {
	corte, err := app.FindRecordById("cortes", corteID)
	if err != nil {
		return CorteExportData{}, fmt.Errorf("corte not found: %w", err)
	}

	data := CorteExportData{
		Number: corte.GetString("number"),
		Status: corte.GetString("status"),
	}
	if dt := corte.GetDateTime("created"); !dt.IsZero() {
		data.CreatedDate = dt.Time().Format("02 Jan 2006")
	}

	projectID := corte.GetString("project")
	if project, err := app.FindRecordById("projects", projectID); err == nil {
		data.ProjectName = project.GetString("name")
		if clientID := project.GetString("client"); clientID != "" {
			if client, err := app.FindRecordById("clients", clientID); err == nil {
				data.ClientName = client.GetString("name")
			}
		}
	}

	links, err := app.FindRecordsByFilter(
		"corte_actas",
		"corte = {:corteId}",
		"", 0, 0,
		map[string]any{"corteId": corteID},
	)
	if err != nil {
		return CorteExportData{}, fmt.Errorf("load corte actas: %w", err)
	}
	for _, link := range links {
		if acta, err := app.FindRecordById("actas", link.GetString("acta")); err == nil {
			data.ActaSequences = append(data.ActaSequences, acta.GetInt("sequence"))
		}
	}

	items, err := app.FindRecordsByFilter(
		"corte_items",
		"corte = {:corteId}",
		"sort_order", 0, 0,
		map[string]any{"corteId": corteID},
	)
	if err != nil {
		return CorteExportData{}, fmt.Errorf("load corte items: %w", err)
	}
	var lineItems []LineItem
	for i, item := range items {
		qty := CoerceQty(item.Get("qty"))
		price := CoerceQty(item.Get("unit_price"))
		data.Rows = append(data.Rows, PricedRow{
			Index:       i + 1,
			Description: item.GetString("description"),
			Unit:        item.GetString("unit"),
			Qty:         qty,
			UnitPrice:   price,
			LineTotal:   qty * price,
		})
		lineItems = append(lineItems, LineItem{
			UnitPrice: price,
			Qty:       qty,
		})
	}
	data.Totals = ComputeTotals(lineItems)

	var billed struct {
		Total float64 `db:"total"`
	}
	err = app.DB().
		Select("COALESCE(SUM(total), 0) AS total").
		From("cortes").
		Where(dbx.HashExp{"project": projectID}).
		AndWhere(dbx.NewExp("created < {:created}", dbx.Params{"created": corte.GetString("created")})).
		One(&billed)
	if err == nil {
		data.BilledBefore = billed.Total
	}

	return data, nil
}
