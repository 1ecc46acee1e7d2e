package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"obratrack/testhelpers"
)

func TestHandleActaSave_CreatesActaWithLines(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Entrega")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "authorized")
	item1 := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso acrílico", 10, 150000)
	item2 := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 2, "Instalación", 5, 96000)

	handler := HandleActaSave(app)
	req := newFormRequest(fmt.Sprintf("/projects/%s/actas", proj.Id), url.Values{
		"delivery_date": {"2026-03-20"},
		"notes":         {"Primera entrega"},
		"qty_" + item1.Id: {"4"},
		"qty_" + item2.Id: {""},
		"extra_description": {"Retiro de aviso viejo"},
		"extra_unit":        {"und"},
		"extra_qty":         {"1"},
	})
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d: %s", rec.Code, rec.Body.String())
	}

	actas, _ := app.FindRecordsByFilter("actas", "project = {:p}", "", 0, 0, map[string]any{"p": proj.Id})
	if len(actas) != 1 {
		t.Fatalf("expected 1 acta, got %d", len(actas))
	}
	acta := actas[0]
	if acta.GetInt("sequence") != 1 || acta.GetString("status") != "final" {
		t.Errorf("acta sequence %d status %q", acta.GetInt("sequence"), acta.GetString("status"))
	}

	lines, _ := app.FindRecordsByFilter("acta_items", "acta = {:a}", "", 0, 0, map[string]any{"a": acta.Id})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines (one scoped + one free text), got %d", len(lines))
	}

	var sawScoped, sawFree bool
	for _, line := range lines {
		switch line.GetString("quote_item") {
		case item1.Id:
			sawScoped = true
			if line.GetFloat("qty") != 4 {
				t.Errorf("scoped line qty = %f", line.GetFloat("qty"))
			}
		case "":
			sawFree = true
			if line.GetString("description") != "Retiro de aviso viejo" {
				t.Errorf("free line description = %q", line.GetString("description"))
			}
		}
	}
	if !sawScoped || !sawFree {
		t.Errorf("lines = scoped %t free %t", sawScoped, sawFree)
	}
}

func TestHandleActaSave_SequenceIncrements(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Consecutivo")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "authorized")
	item := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso", 10, 150000)
	testhelpers.CreateTestActa(t, app, proj.Id, 1, "cut")
	testhelpers.CreateTestActa(t, app, proj.Id, 2, "final")

	handler := HandleActaSave(app)
	req := newFormRequest(fmt.Sprintf("/projects/%s/actas", proj.Id), url.Values{
		"qty_" + item.Id: {"2"},
	})
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	actas, _ := app.FindRecordsByFilter("actas", "project = {:p}", "-sequence", 1, 0, map[string]any{"p": proj.Id})
	if len(actas) != 1 || actas[0].GetInt("sequence") != 3 {
		t.Fatalf("expected new acta with sequence 3")
	}
}

func TestHandleActaSave_NoLinesRerendersForm(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Sin Líneas")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "authorized")
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso", 10, 150000)

	handler := HandleActaSave(app)
	req := newFormRequest(fmt.Sprintf("/projects/%s/actas", proj.Id), url.Values{
		"delivery_date": {"2026-03-20"},
	})
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "El acta necesita al menos una cantidad entregada")

	actas, _ := app.FindRecordsByFilter("actas", "project = {:p}", "", 0, 0, map[string]any{"p": proj.Id})
	if len(actas) != 0 {
		t.Errorf("expected no acta saved, got %d", len(actas))
	}
}

func TestHandleActaSave_RequiresAuthorizedQuote(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Sin Contrato")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "draft")
	item := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso", 10, 150000)

	handler := HandleActaSave(app)
	req := newFormRequest(fmt.Sprintf("/projects/%s/actas", proj.Id), url.Values{
		"qty_" + item.Id: {"2"},
	})
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestHandleActaSave_RollsBackOnFailure(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Atómica")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "authorized")
	item := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso", 10, 150000)

	// Force a failure after the acta header is saved.
	linesCol, err := app.FindCollectionByNameOrId("acta_items")
	if err != nil {
		t.Fatalf("find acta_items: %v", err)
	}
	if err := app.Delete(linesCol); err != nil {
		t.Fatalf("drop acta_items: %v", err)
	}

	handler := HandleActaSave(app)
	req := newFormRequest(fmt.Sprintf("/projects/%s/actas", proj.Id), url.Values{
		"qty_" + item.Id: {"4"},
	})
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	// A headerless acta would read as a delivery of nothing.
	actas, _ := app.FindRecordsByFilter("actas", "project = {:p}", "", 0, 0, map[string]any{"p": proj.Id})
	if len(actas) != 0 {
		t.Errorf("expected no acta after rollback, got %d", len(actas))
	}
}

func TestHandleActaCreate_RendersScopeRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Formulario")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "authorized")
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso en acrílico", 10, 150000)

	handler := HandleActaCreate(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/projects/%s/actas/create", proj.Id), nil)
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Aviso en acrílico", "10")
}
