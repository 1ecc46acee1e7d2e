package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"obratrack/services"
	"obratrack/testhelpers"
)

func executionRequest(projID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/projects/%s/execution", projID), nil)
	req.SetPathValue("projectId", projID)
	return req
}

func TestHandleExecution_RendersMatrix(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Ejecución")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "authorized")
	item := testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Aviso acrílico", 10, 150000)

	acta1 := testhelpers.CreateTestActa(t, app, proj.Id, 1, "final")
	testhelpers.CreateTestActaItem(t, app, acta1.Id, item.Id, "Aviso acrílico", 4)
	acta2 := testhelpers.CreateTestActa(t, app, proj.Id, 2, "final")
	testhelpers.CreateTestActaItem(t, app, acta2.Id, item.Id, "Aviso acrílico", 3)
	testhelpers.CreateTestActaItem(t, app, acta2.Id, "", "Retiro de aviso viejo", 1)

	handler := HandleExecution(app)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, executionRequest(proj.Id), rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// One column per acta, the contracted item with its balance, and the
	// orphan line below.
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Acta 1",
		"Acta 2",
		"Aviso acrílico",
		"Retiro de aviso viejo",
		"COT-2026-001",
	)
}

func TestHandleExecution_PartialOnHXRequest(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Obra Parcial")
	testhelpers.CreateTestQuote(t, app, proj.Id, "COT-2026-001", "authorized")

	handler := HandleExecution(app)
	req := executionRequest(proj.Id)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	if len(body) == 0 {
		t.Fatal("expected rendered partial")
	}
	if containsDoctype(body) {
		t.Error("partial response should not include the full page shell")
	}
}

func containsDoctype(body string) bool {
	return len(body) >= 9 && body[:9] == "<!DOCTYPE"
}

func TestExecutionTableRow_OrphanBlanksBalance(t *testing.T) {
	actas := []services.ActaHeader{{ID: "a1", Sequence: 1}, {ID: "a2", Sequence: 2}}
	row := services.ExecutionRow{
		Description:   "Retiro de aviso",
		Unit:          "und",
		ExecutedTotal: 2,
		PerActa:       map[string]float64{"a2": 2},
	}

	out := executionTableRow(row, actas, true)

	if out.Contracted != "—" || out.Remaining != "—" || out.OverDelivered != "—" {
		t.Errorf("orphan balance columns = %q %q %q", out.Contracted, out.Remaining, out.OverDelivered)
	}
	if len(out.PerActa) != 2 || out.PerActa[0] != "" || out.PerActa[1] != "2" {
		t.Errorf("per-acta columns = %v", out.PerActa)
	}
}

func TestExecutionTableRow_FlagsOverDelivery(t *testing.T) {
	row := services.ExecutionRow{
		Description:   "Aviso",
		Contracted:    10,
		ExecutedTotal: 12,
		OverDelivered: 2,
	}

	out := executionTableRow(row, nil, false)
	if !out.IsOver {
		t.Error("expected IsOver for over-delivered row")
	}
	if out.OverDelivered != "2" {
		t.Errorf("OverDelivered = %q", out.OverDelivered)
	}
}
