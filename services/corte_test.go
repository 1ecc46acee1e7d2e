package services_test

import (
	"testing"

	"obratrack/services"
	"obratrack/testhelpers"
)

func TestBuildCorteItems_AggregatesAndPrices(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Obra Corte")
	quote := testhelpers.CreateTestQuote(t, app, project.Id, "COT-2026-001", "authorized")
	item1 := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso en acrílico", 10, 150000)
	item2 := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 2, "Instalación", 10, 80000)

	acta1 := testhelpers.CreateTestActa(t, app, project.Id, 1, "final")
	acta2 := testhelpers.CreateTestActa(t, app, project.Id, 2, "final")
	testhelpers.CreateTestActaItem(t, app, acta1.Id, item1.Id, "Aviso en acrílico", 4)
	testhelpers.CreateTestActaItem(t, app, acta2.Id, item1.Id, "Aviso en acrílico", 3)
	testhelpers.CreateTestActaItem(t, app, acta1.Id, item2.Id, "Instalación", 2)

	drafts, orphans, err := services.BuildCorteItems(app, project.Id, []string{acta1.Id, acta2.Id})
	if err != nil {
		t.Fatalf("BuildCorteItems error: %v", err)
	}
	if len(orphans) != 0 {
		t.Fatalf("expected no orphans, got %d", len(orphans))
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}

	if drafts[0].QuoteItemID != item1.Id || drafts[0].Qty != 7 || drafts[0].UnitPrice != 150000 {
		t.Errorf("draft 1 = %+v, want item1 qty 7 at 150000", drafts[0])
	}
	if drafts[1].QuoteItemID != item2.Id || drafts[1].Qty != 2 || drafts[1].UnitPrice != 80000 {
		t.Errorf("draft 2 = %+v, want item2 qty 2 at 80000", drafts[1])
	}

	totals := services.ComputeTotals(services.CorteDraftLineItems(drafts))
	if !floatClose(totals.Subtotal, 7*150000+2*80000) {
		t.Errorf("subtotal = %f, want %f", totals.Subtotal, float64(7*150000+2*80000))
	}
}

func TestBuildCorteItems_SkipsZeroExecution(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Obra Corte Parcial")
	quote := testhelpers.CreateTestQuote(t, app, project.Id, "COT-2026-001", "authorized")
	item1 := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso en acrílico", 10, 150000)
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 2, "Instalación", 10, 80000)

	acta := testhelpers.CreateTestActa(t, app, project.Id, 1, "final")
	testhelpers.CreateTestActaItem(t, app, acta.Id, item1.Id, "Aviso en acrílico", 5)

	drafts, _, err := services.BuildCorteItems(app, project.Id, []string{acta.Id})
	if err != nil {
		t.Fatalf("BuildCorteItems error: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("expected only the delivered item, got %d drafts", len(drafts))
	}
	if drafts[0].QuoteItemID != item1.Id {
		t.Errorf("draft item = %s, want %s", drafts[0].QuoteItemID, item1.Id)
	}
}

func TestBuildCorteItems_OrphansLeftOut(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Obra Corte Huérfanos")
	quote := testhelpers.CreateTestQuote(t, app, project.Id, "COT-2026-001", "authorized")
	item := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso en acrílico", 10, 150000)

	acta := testhelpers.CreateTestActa(t, app, project.Id, 1, "final")
	testhelpers.CreateTestActaItem(t, app, acta.Id, item.Id, "Aviso en acrílico", 5)
	testhelpers.CreateTestActaItem(t, app, acta.Id, "", "Retiro de aviso existente", 1)

	drafts, orphans, err := services.BuildCorteItems(app, project.Id, []string{acta.Id})
	if err != nil {
		t.Fatalf("BuildCorteItems error: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("expected 1 billable draft, got %d", len(drafts))
	}
	if len(orphans) != 1 {
		t.Fatalf("expected 1 orphan surfaced, got %d", len(orphans))
	}
	if orphans[0].Description != "Retiro de aviso existente" {
		t.Errorf("orphan description = %q", orphans[0].Description)
	}
}

func TestBuildCorteItems_NoAuthorizedQuote(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Obra Sin Cotización")
	testhelpers.CreateTestQuote(t, app, project.Id, "COT-2026-001", "draft")

	_, _, err := services.BuildCorteItems(app, project.Id, nil)
	if err == nil {
		t.Fatal("expected error for project without authorized quote")
	}
}

func TestBuildCorteItems_FreeTextResolvedByDescription(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Obra Texto Libre")
	quote := testhelpers.CreateTestQuote(t, app, project.Id, "COT-2026-001", "authorized")
	item := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Pintura de fachada", 50, 12000)

	acta := testhelpers.CreateTestActa(t, app, project.Id, 1, "final")
	testhelpers.CreateTestActaItem(t, app, acta.Id, "", "  PINTURA de Fachada ", 20)

	drafts, orphans, err := services.BuildCorteItems(app, project.Id, []string{acta.Id})
	if err != nil {
		t.Fatalf("BuildCorteItems error: %v", err)
	}
	if len(orphans) != 0 {
		t.Fatalf("expected description fallback to resolve the line, got %d orphans", len(orphans))
	}
	if len(drafts) != 1 || drafts[0].QuoteItemID != item.Id || drafts[0].Qty != 20 {
		t.Errorf("drafts = %+v, want the matched quote item with qty 20", drafts)
	}
}
