package services

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// ItemKey derives the identity used to join executed quantities back to the
// contracted scope. Lines recorded against a quote item use the item id;
// free-text lines fall back to their normalized description, so the same
// wording matches across actas and the quote regardless of case or
// surrounding whitespace.
func ItemKey(itemID, description string) string {
	if itemID != "" {
		return "i:" + itemID
	}
	return "d:" + NormalizeDescription(description)
}

// NormalizeDescription lowercases and trims a description for use as a
// fallback join key.
func NormalizeDescription(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CoerceQty converts an arbitrary stored value to a usable quantity.
// Anything non-numeric, NaN or infinite becomes 0 so a bad row can never
// poison an aggregation or block a page render.
func CoerceQty(v any) float64 {
	f := cast.ToFloat64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ScopeEntry is one contracted line from a project's authorized quote.
type ScopeEntry struct {
	Key         string
	Description string
	Unit        string
	Contracted  float64
}

// ActaLine is one executed quantity recorded in an acta de entrega.
type ActaLine struct {
	ActaID      string
	ItemID      string // quote item id, empty for free-text lines
	Description string
	Unit        string
	Qty         float64
}

// ExecutionRow is the derived per-item execution state. Remaining and
// OverDelivered are clamped views of the same signed balance: for every row
// ExecutedTotal - Contracted == OverDelivered - Remaining, and at most one of
// the two is nonzero.
type ExecutionRow struct {
	Key           string
	Description   string
	Unit          string
	Contracted    float64
	ExecutedTotal float64
	Remaining     float64
	OverDelivered float64
	PerActa       map[string]float64
}

type executionAcc struct {
	description string
	unit        string
	total       float64
	perActa     map[string]float64
	firstSeen   int
}

// ComputeExecutionRows aggregates acta lines against the contracted scope.
//
// The first return value holds one row per scope entry, in scope order, so
// contracted items with no recorded execution still appear with zero totals.
// The second holds orphan rows: executed quantities whose key matches no scope
// entry (for example a line recorded against a since-withdrawn quote item).
// Orphans are surfaced rather than dropped so recorded work is never lost from
// view, but they carry no contracted quantity and do not count toward
// progress. Accumulation is commutative, so line order never matters.
func ComputeExecutionRows(scope []ScopeEntry, lines []ActaLine) (rows, orphans []ExecutionRow) {
	inScope := make(map[string]bool, len(scope))
	for _, entry := range scope {
		inScope[entry.Key] = true
	}

	acc := make(map[string]*executionAcc, len(scope))
	for i, line := range lines {
		key := ItemKey(line.ItemID, line.Description)
		a := acc[key]
		if a == nil {
			a = &executionAcc{
				description: line.Description,
				unit:        line.Unit,
				perActa:     make(map[string]float64),
				firstSeen:   i,
			}
			acc[key] = a
		}
		qty := line.Qty
		if math.IsNaN(qty) || math.IsInf(qty, 0) {
			qty = 0
		}
		a.total += qty
		a.perActa[line.ActaID] += qty
	}

	rows = make([]ExecutionRow, 0, len(scope))
	for _, entry := range scope {
		row := ExecutionRow{
			Key:         entry.Key,
			Description: entry.Description,
			Unit:        entry.Unit,
			Contracted:  entry.Contracted,
			PerActa:     map[string]float64{},
		}
		if a, ok := acc[entry.Key]; ok {
			row.ExecutedTotal = a.total
			row.PerActa = a.perActa
		}
		row.Remaining = math.Max(0, entry.Contracted-row.ExecutedTotal)
		row.OverDelivered = math.Max(0, row.ExecutedTotal-entry.Contracted)
		rows = append(rows, row)
	}

	// Orphans keep first-appearance order for stable rendering.
	var orphanKeys []string
	for key := range acc {
		if !inScope[key] {
			orphanKeys = append(orphanKeys, key)
		}
	}
	for i := 1; i < len(orphanKeys); i++ {
		for j := i; j > 0 && acc[orphanKeys[j]].firstSeen < acc[orphanKeys[j-1]].firstSeen; j-- {
			orphanKeys[j], orphanKeys[j-1] = orphanKeys[j-1], orphanKeys[j]
		}
	}
	for _, key := range orphanKeys {
		a := acc[key]
		orphans = append(orphans, ExecutionRow{
			Key:           key,
			Description:   a.description,
			Unit:          a.unit,
			ExecutedTotal: a.total,
			OverDelivered: a.total,
			PerActa:       a.perActa,
		})
	}

	return rows, orphans
}

// ComputeProgressPercent returns the overall weighted progress of the scope,
// 0-100. Each row's contribution is capped at its contracted quantity so
// over-delivery on one line cannot mask under-delivery on another. Zero total
// contracted quantity yields 0.
func ComputeProgressPercent(rows []ExecutionRow) int {
	var contracted, executed float64
	for _, row := range rows {
		contracted += row.Contracted
		executed += math.Min(row.ExecutedTotal, row.Contracted)
	}
	if contracted == 0 {
		return 0
	}
	return int(math.Round(100 * executed / contracted))
}
