package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"obratrack/testhelpers"
)

func TestHandleQuoteAddItem_AppendsToDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Ítems")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "draft")
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Existente", 1, 1000)

	handler := HandleQuoteAddItem(app)
	req := newFormRequest(fmt.Sprintf("/projects/%s/quotes/%s/items", proj.Id, quote.Id), url.Values{
		"description": {"Aviso nuevo"},
		"unit":        {"und"},
		"qty":         {"3"},
		"unit_price":  {"250000"},
	})
	req.SetPathValue("projectId", proj.Id)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	items, _ := app.FindRecordsByFilter("quote_items", "quote = {:q}", "sort_order", 0, 0, map[string]any{"q": quote.Id})
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	added := items[1]
	if added.GetString("description") != "Aviso nuevo" || added.GetInt("sort_order") != 2 {
		t.Errorf("added item = %q sort %d", added.GetString("description"), added.GetInt("sort_order"))
	}

	// Partial re-render includes the new item and updated totals
	testhelpers.AssertHTMLContains(t, rec.Body.String(), `id="quote-items"`, "Aviso nuevo")
}

func TestHandleQuoteAddItem_RejectsNonDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Autorizada")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "authorized")

	handler := HandleQuoteAddItem(app)
	req := newFormRequest(fmt.Sprintf("/projects/%s/quotes/%s/items", proj.Id, quote.Id), url.Values{
		"description": {"Tarde"},
		"qty":         {"1"},
		"unit_price":  {"1"},
	})
	req.SetPathValue("projectId", proj.Id)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}

	items, _ := app.FindRecordsByFilter("quote_items", "quote = {:q}", "", 0, 0, map[string]any{"q": quote.Id})
	if len(items) != 0 {
		t.Errorf("expected no items on authorized quote, got %d", len(items))
	}
}

func TestHandleQuoteAddItem_RequiresDescription(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Validación")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "draft")

	handler := HandleQuoteAddItem(app)
	req := newFormRequest(fmt.Sprintf("/projects/%s/quotes/%s/items", proj.Id, quote.Id), url.Values{
		"description": {"   "},
		"qty":         {"1"},
		"unit_price":  {"1"},
	})
	req.SetPathValue("projectId", proj.Id)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func patchItemRequest(projID, quoteID, itemID string, values url.Values) *http.Request {
	target := fmt.Sprintf("/projects/%s/quotes/%s/items/%s", projID, quoteID, itemID)
	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("projectId", projID)
	req.SetPathValue("id", quoteID)
	req.SetPathValue("itemId", itemID)
	return req
}

func TestHandleQuoteUpdateItem_PatchesOnlySentFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Corregir Ítem")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "draft")
	item := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso acrílico", 10, 150000)

	handler := HandleQuoteUpdateItem(app)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, patchItemRequest(proj.Id, quote.Id, item.Id, url.Values{
		"qty": {"12"},
	}), rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	updated, _ := app.FindRecordById("quote_items", item.Id)
	if updated.GetFloat("qty") != 12 {
		t.Errorf("qty = %f, want 12", updated.GetFloat("qty"))
	}
	// Fields absent from the form stay put.
	if updated.GetString("description") != "Aviso acrílico" || updated.GetFloat("unit_price") != 150000 {
		t.Errorf("untouched fields changed: %q %f", updated.GetString("description"), updated.GetFloat("unit_price"))
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), `id="quote-items"`, "12")
}

func TestHandleQuoteUpdateItem_RejectsNonDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Congelada")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "authorized")
	item := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso", 10, 150000)

	handler := HandleQuoteUpdateItem(app)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, patchItemRequest(proj.Id, quote.Id, item.Id, url.Values{
		"qty": {"99"},
	}), rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}

	unchanged, _ := app.FindRecordById("quote_items", item.Id)
	if unchanged.GetFloat("qty") != 10 {
		t.Errorf("qty = %f, want 10", unchanged.GetFloat("qty"))
	}
}

func TestHandleQuoteDeleteItem_RemovesFromDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Borrar Ítem")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "draft")
	item := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "A eliminar", 1, 1000)

	handler := HandleQuoteDeleteItem(app)
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/projects/%s/quotes/%s/items/%s", proj.Id, quote.Id, item.Id), nil)
	req.SetPathValue("projectId", proj.Id)
	req.SetPathValue("id", quote.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if _, err := app.FindRecordById("quote_items", item.Id); err == nil {
		t.Error("expected item to be deleted")
	}
}

func TestHandleQuoteDeleteItem_WrongQuote(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Cruce")
	quoteA := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "draft")
	quoteB := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-002", "draft")
	item := testhelpers.CreateTestQuoteItem(t, app, quoteA.Id, 1, "De otra cotización", 1, 1000)

	handler := HandleQuoteDeleteItem(app)
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/projects/%s/quotes/%s/items/%s", proj.Id, quoteB.Id, item.Id), nil)
	req.SetPathValue("projectId", proj.Id)
	req.SetPathValue("id", quoteB.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("quote_items", item.Id); err != nil {
		t.Error("item of another quote must not be deleted")
	}
}
