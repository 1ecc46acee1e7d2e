package services_test

import (
	"testing"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obratrack/services"
	"obratrack/testhelpers"
)

func TestFindAuthorizedQuote(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Obra Autorizada")

	if got := services.FindAuthorizedQuote(app, project.Id); got != nil {
		t.Errorf("expected nil for project without quotes, got %v", got)
	}

	testhelpers.CreateTestQuote(t, app, project.Id, "COT-2026-001", "superseded")
	authorized := testhelpers.CreateTestQuote(t, app, project.Id, "COT-2026-002", "authorized")
	testhelpers.CreateTestQuote(t, app, project.Id, "COT-2026-003", "draft")

	got := services.FindAuthorizedQuote(app, project.Id)
	if got == nil || got.Id != authorized.Id {
		t.Errorf("expected quote %s, got %v", authorized.Id, got)
	}
}

func TestBuildQuoteExportData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Constructora Andina")
	project := testhelpers.CreateTestProject(t, app, "Edificio Central")
	project.Set("client", client.Id)
	if err := app.Save(project); err != nil {
		t.Fatalf("failed to link client: %v", err)
	}

	quote := testhelpers.CreateTestQuote(t, app, project.Id, "COT-2026-001", "draft")
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 2, "Instalación", 10, 80000)
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso en acrílico", 10, 150000)

	data, err := services.BuildQuoteExportData(app, quote.Id)
	if err != nil {
		t.Fatalf("BuildQuoteExportData error: %v", err)
	}

	if data.Number != "COT-2026-001" || data.ProjectName != "Edificio Central" || data.ClientName != "Constructora Andina" {
		t.Errorf("header = %q / %q / %q", data.Number, data.ProjectName, data.ClientName)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(data.Rows))
	}
	// Rows come back in sort order regardless of insertion order.
	if data.Rows[0].Description != "Aviso en acrílico" {
		t.Errorf("first row = %q, want sort_order 1 item", data.Rows[0].Description)
	}
	if !floatClose(data.Totals.Subtotal, 2300000) {
		t.Errorf("subtotal = %f, want 2300000", data.Totals.Subtotal)
	}
}

func TestBuildExecutionData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Obra Ejecución")
	quote := testhelpers.CreateTestQuote(t, app, project.Id, "COT-2026-001", "authorized")
	item := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso en acrílico", 10, 150000)

	acta1 := testhelpers.CreateTestActa(t, app, project.Id, 1, "final")
	acta2 := testhelpers.CreateTestActa(t, app, project.Id, 2, "final")
	testhelpers.CreateTestActaItem(t, app, acta1.Id, item.Id, "Aviso en acrílico", 4)
	// Free-text line with matching wording resolves to the same scope row.
	testhelpers.CreateTestActaItem(t, app, acta2.Id, "", "aviso EN acrílico", 3)
	// Unmatched free-text line becomes an orphan.
	testhelpers.CreateTestActaItem(t, app, acta2.Id, "", "Retiro de aviso existente", 1)

	data, err := services.BuildExecutionData(app, project.Id)
	if err != nil {
		t.Fatalf("BuildExecutionData error: %v", err)
	}

	if data.QuoteNumber != "COT-2026-001" {
		t.Errorf("quote number = %q", data.QuoteNumber)
	}
	if len(data.Actas) != 2 {
		t.Fatalf("expected 2 acta columns, got %d", len(data.Actas))
	}
	if len(data.Rows) != 1 {
		t.Fatalf("expected 1 scope row, got %d", len(data.Rows))
	}
	row := data.Rows[0]
	if row.ExecutedTotal != 7 || row.Remaining != 3 {
		t.Errorf("executed/remaining = %f/%f, want 7/3", row.ExecutedTotal, row.Remaining)
	}
	if row.PerActa[acta1.Id] != 4 || row.PerActa[acta2.Id] != 3 {
		t.Errorf("per-acta = %v", row.PerActa)
	}
	if len(data.Orphans) != 1 || data.Orphans[0].ExecutedTotal != 1 {
		t.Errorf("orphans = %+v, want one with qty 1", data.Orphans)
	}
	if data.ProgressPercent != 70 {
		t.Errorf("progress = %d, want 70", data.ProgressPercent)
	}
}

func TestBuildExecutionData_NoAuthorizedQuote(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Obra Sin Alcance")
	acta := testhelpers.CreateTestActa(t, app, project.Id, 1, "final")
	testhelpers.CreateTestActaItem(t, app, acta.Id, "", "Trabajo suelto", 2)

	data, err := services.BuildExecutionData(app, project.Id)
	if err != nil {
		t.Fatalf("BuildExecutionData error: %v", err)
	}
	if len(data.Rows) != 0 {
		t.Errorf("expected no scope rows, got %d", len(data.Rows))
	}
	if len(data.Orphans) != 1 {
		t.Errorf("expected the loose line as orphan, got %d", len(data.Orphans))
	}
	if data.ProgressPercent != 0 {
		t.Errorf("progress = %d, want 0", data.ProgressPercent)
	}
}

func createTestCorte(t *testing.T, app *pocketbase.PocketBase, projectID, number string, total float64) *core.Record {
	t.Helper()
	col, err := app.FindCollectionByNameOrId("cortes")
	if err != nil {
		t.Fatalf("failed to find cortes collection: %v", err)
	}
	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("number", number)
	record.Set("status", "draft")
	record.Set("total", total)
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test corte: %v", err)
	}
	return record
}

func TestBuildCorteExportData_BilledBefore(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Obra Facturada")

	first := createTestCorte(t, app, project.Id, "CRT-2026-001", 1000000)
	second := createTestCorte(t, app, project.Id, "CRT-2026-002", 500000)

	// Push the first corte clearly into the past; back-to-back saves can land
	// on the same millisecond.
	if _, err := app.DB().Update("cortes",
		dbx.Params{"created": "2026-01-01 00:00:00.000Z"},
		dbx.HashExp{"id": first.Id},
	).Execute(); err != nil {
		t.Fatalf("failed to backdate first corte: %v", err)
	}

	data, err := services.BuildCorteExportData(app, second.Id)
	if err != nil {
		t.Fatalf("BuildCorteExportData error: %v", err)
	}
	if data.Number != "CRT-2026-002" {
		t.Errorf("number = %q", data.Number)
	}
	if !floatClose(data.BilledBefore, 1000000) {
		t.Errorf("BilledBefore = %f, want 1000000 (earlier cortes only)", data.BilledBefore)
	}
}
