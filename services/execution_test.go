package services

import (
	"testing"
)

func TestItemKey(t *testing.T) {
	tests := []struct {
		name        string
		itemID      string
		description string
		want        string
	}{
		{"with_id", "abc123", "Aviso acrílico", "i:abc123"},
		{"free_text", "", "Aviso acrílico", "d:aviso acrílico"},
		{"free_text_mixed_case", "", "  AVISO Acrílico ", "d:aviso acrílico"},
		{"id_wins_over_description", "abc123", "whatever", "i:abc123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ItemKey(tt.itemID, tt.description); got != tt.want {
				t.Errorf("ItemKey(%q, %q) = %q, want %q", tt.itemID, tt.description, got, tt.want)
			}
		})
	}
}

func TestCoerceQty(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 2.5, 2.5},
		{"int", 7, 7},
		{"numeric_string", "3.25", 3.25},
		{"garbage_string", "n/a", 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceQty(tt.in); got != tt.want {
				t.Errorf("CoerceQty(%v) = %f, want %f", tt.in, got, tt.want)
			}
		})
	}
}

func testScope() []ScopeEntry {
	return []ScopeEntry{
		{Key: "i:item1", Description: "Aviso en acrílico", Unit: "und", Contracted: 10},
		{Key: "i:item2", Description: "Instalación", Unit: "und", Contracted: 20},
	}
}

func TestComputeExecutionRows_Basic(t *testing.T) {
	lines := []ActaLine{
		{ActaID: "a1", ItemID: "item1", Qty: 4},
		{ActaID: "a2", ItemID: "item1", Qty: 3},
		{ActaID: "a1", ItemID: "item2", Qty: 25},
	}
	rows, orphans := ComputeExecutionRows(testScope(), lines)

	if len(orphans) != 0 {
		t.Fatalf("expected no orphans, got %d", len(orphans))
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	r1 := rows[0]
	if r1.ExecutedTotal != 7 || r1.Remaining != 3 || r1.OverDelivered != 0 {
		t.Errorf("item1: executed %f remaining %f over %f, want 7/3/0", r1.ExecutedTotal, r1.Remaining, r1.OverDelivered)
	}
	if r1.PerActa["a1"] != 4 || r1.PerActa["a2"] != 3 {
		t.Errorf("item1 per-acta = %v, want a1:4 a2:3", r1.PerActa)
	}

	r2 := rows[1]
	if r2.ExecutedTotal != 25 || r2.Remaining != 0 || r2.OverDelivered != 5 {
		t.Errorf("item2: executed %f remaining %f over %f, want 25/0/5", r2.ExecutedTotal, r2.Remaining, r2.OverDelivered)
	}
}

func TestComputeExecutionRows_ZeroExecutionRowStillAppears(t *testing.T) {
	rows, _ := ComputeExecutionRows(testScope(), nil)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.ExecutedTotal != 0 {
			t.Errorf("row %s executed = %f, want 0", row.Key, row.ExecutedTotal)
		}
		if row.Remaining != row.Contracted {
			t.Errorf("row %s remaining = %f, want contracted %f", row.Key, row.Remaining, row.Contracted)
		}
	}
}

// Remaining and OverDelivered are clamped views of the same signed balance,
// so at most one of the two is nonzero and their difference equals
// executed - contracted.
func TestComputeExecutionRows_BalanceInvariants(t *testing.T) {
	lines := []ActaLine{
		{ActaID: "a1", ItemID: "item1", Qty: 12},
		{ActaID: "a1", ItemID: "item2", Qty: 8},
	}
	rows, _ := ComputeExecutionRows(testScope(), lines)
	for _, row := range rows {
		if row.Remaining > 0 && row.OverDelivered > 0 {
			t.Errorf("row %s has both remaining %f and over %f", row.Key, row.Remaining, row.OverDelivered)
		}
		balance := row.OverDelivered - row.Remaining
		if !floatClose(balance, row.ExecutedTotal-row.Contracted) {
			t.Errorf("row %s balance = %f, want %f", row.Key, balance, row.ExecutedTotal-row.Contracted)
		}
	}
}

func TestComputeExecutionRows_LineOrderDoesNotMatter(t *testing.T) {
	lines := []ActaLine{
		{ActaID: "a1", ItemID: "item1", Qty: 2},
		{ActaID: "a2", ItemID: "item2", Qty: 5},
		{ActaID: "a2", ItemID: "item1", Qty: 1},
	}
	reversed := []ActaLine{lines[2], lines[1], lines[0]}

	rows1, _ := ComputeExecutionRows(testScope(), lines)
	rows2, _ := ComputeExecutionRows(testScope(), reversed)

	for i := range rows1 {
		if rows1[i].ExecutedTotal != rows2[i].ExecutedTotal {
			t.Errorf("row %s totals differ across orderings: %f vs %f",
				rows1[i].Key, rows1[i].ExecutedTotal, rows2[i].ExecutedTotal)
		}
	}
}

func TestComputeExecutionRows_FreeTextMatchesByDescription(t *testing.T) {
	scope := []ScopeEntry{
		{Key: "d:pintura de fachada", Description: "Pintura de fachada", Unit: "m2", Contracted: 50},
	}
	lines := []ActaLine{
		{ActaID: "a1", Description: "  Pintura DE Fachada ", Qty: 30},
	}
	rows, orphans := ComputeExecutionRows(scope, lines)

	if len(orphans) != 0 {
		t.Fatalf("expected description to match scope, got %d orphans", len(orphans))
	}
	if rows[0].ExecutedTotal != 30 {
		t.Errorf("executed = %f, want 30", rows[0].ExecutedTotal)
	}
}

func TestComputeExecutionRows_OrphansSurfaced(t *testing.T) {
	lines := []ActaLine{
		{ActaID: "a1", ItemID: "item1", Qty: 5},
		{ActaID: "a1", Description: "Retiro de aviso existente", Unit: "und", Qty: 2},
		{ActaID: "a2", Description: "retiro de aviso existente", Qty: 1},
	}
	rows, orphans := ComputeExecutionRows(testScope(), lines)

	if len(rows) != 2 {
		t.Fatalf("expected 2 scope rows, got %d", len(rows))
	}
	if len(orphans) != 1 {
		t.Fatalf("expected 1 orphan row, got %d", len(orphans))
	}
	orphan := orphans[0]
	if orphan.ExecutedTotal != 3 {
		t.Errorf("orphan executed = %f, want 3 (merged across actas)", orphan.ExecutedTotal)
	}
	if orphan.Contracted != 0 || orphan.OverDelivered != 3 {
		t.Errorf("orphan contracted/over = %f/%f, want 0/3", orphan.Contracted, orphan.OverDelivered)
	}
}

func TestComputeProgressPercent(t *testing.T) {
	tests := []struct {
		name string
		rows []ExecutionRow
		want int
	}{
		{
			"partial",
			[]ExecutionRow{
				{Contracted: 10, ExecutedTotal: 5},
				{Contracted: 20, ExecutedTotal: 10},
			},
			50,
		},
		{
			"over_delivery_capped",
			[]ExecutionRow{
				{Contracted: 10, ExecutedTotal: 100},
				{Contracted: 10, ExecutedTotal: 0},
			},
			50,
		},
		{
			"complete",
			[]ExecutionRow{{Contracted: 30, ExecutedTotal: 30}},
			100,
		},
		{"empty_scope", nil, 0},
		{
			"zero_contracted",
			[]ExecutionRow{{Contracted: 0, ExecutedTotal: 5}},
			0,
		},
		{
			"rounds_to_nearest",
			[]ExecutionRow{{Contracted: 3, ExecutedTotal: 1}},
			33,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeProgressPercent(tt.rows); got != tt.want {
				t.Errorf("ComputeProgressPercent = %d, want %d", got, tt.want)
			}
		})
	}
}
