package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"obratrack/testhelpers"
)

func TestAuthRole(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		name string
		role string // empty means no auth record
		want string
	}{
		{"no auth record defaults to operator", "", "operator"},
		{"admin user", "admin", "admin"},
		{"viewer user", "viewer", "viewer"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, req, rec)
			if tt.role != "" {
				email := []string{"a@obratrack.test", "b@obratrack.test", "c@obratrack.test"}[i]
				e.Auth = testhelpers.CreateTestUser(t, app, email, tt.role)
			}
			if got := AuthRole(e); got != tt.want {
				t.Errorf("AuthRole() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetHeaderData_DefaultsWhenMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	data := GetHeaderData(req)
	if data.ActiveProject != nil || len(data.Projects) != 0 {
		t.Errorf("expected zero HeaderData, got %+v", data)
	}
}

func TestGetActiveProject_DefaultsNil(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetActiveProject(req) != nil {
		t.Error("expected nil active project without middleware")
	}
}
