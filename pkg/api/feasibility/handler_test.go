package feasibility

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	core "realty_feasibility/pkg/core/feasibility"
	"realty_feasibility/pkg/core/store"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(store.NewReportStore(nil, t.TempDir()), core.DefaultOptions())
}

func TestHandleReport_DefaultScenario(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/feasibility/report", strings.NewReader(`{"name": "default"}`))
	rec := httptest.NewRecorder()
	h.HandleReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp ReportResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID == "" {
		t.Error("expected the report to be persisted")
	}
	if resp.Report.Summary.IRRPct == nil || math.Abs(*resp.Report.Summary.IRRPct-18.2004) > 1e-3 {
		t.Errorf("unexpected IRR: %v", resp.Report.Summary.IRRPct)
	}

	// load it back
	get := httptest.NewRequest(http.MethodGet, "/api/feasibility/report?id="+resp.ID, nil)
	rec = httptest.NewRecorder()
	h.HandleReport(rec, get)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status %d: %s", rec.Code, rec.Body.String())
	}
	var loaded ReportResponse
	if err := json.NewDecoder(rec.Body).Decode(&loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.ID != resp.ID || loaded.Report.Summary.TotalProfit != resp.Report.Summary.TotalProfit {
		t.Errorf("loaded report differs: %+v", loaded)
	}
}

func TestHandleReport_CustomInputsAndPolicy(t *testing.T) {
	h := NewHandler(nil, core.DefaultOptions())
	body := `{
		"inputs": {
			"land_area_sq_mtr": 1000, "land_cost_per_sq_mtr": 150000,
			"construction_cost_per_sq_ft": 4000, "professional_fees_pct": 0.05,
			"marketing_contingency_pct": 0.08, "permissible_fsi": 2.0,
			"efficiency_ratio": 1.0, "sale_price_per_sq_ft": 25000,
			"project_duration_years": 3
		},
		"cash_flow_policy": "spread_construction"
	}`

	rec := httptest.NewRecorder()
	h.HandleReport(rec, httptest.NewRequest(http.MethodPost, "/api/feasibility/report", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp ReportResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID != "" {
		t.Error("no store configured, nothing should be saved")
	}
	if resp.Report.Options.Policy != core.PolicySpreadConstruction {
		t.Errorf("policy not applied: %q", resp.Report.Options.Policy)
	}
	if resp.Report.Areas.SaleableAreaSqFt != resp.Report.Areas.BuiltUpAreaSqFt {
		t.Errorf("efficiency 1.0 should make saleable equal built-up")
	}
}

func TestHandleReport_Errors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"malformed body", http.MethodPost, "/api/feasibility/report", `not json`, http.StatusBadRequest},
		{"invalid input", http.MethodPost, "/api/feasibility/report", `{"inputs": {"land_area_sq_mtr": -1}}`, http.StatusUnprocessableEntity},
		{"unknown policy", http.MethodPost, "/api/feasibility/report", `{"cash_flow_policy": "quarterly"}`, http.StatusUnprocessableEntity},
		{"bad id", http.MethodGet, "/api/feasibility/report?id=abc", "", http.StatusBadRequest},
		{"unknown id", http.MethodGet, "/api/feasibility/report?id=6f1c1f4e-8d2b-4b4a-9d61-2a7f3c2f0e11", "", http.StatusNotFound},
		{"bad format", http.MethodPost, "/api/feasibility/report?format=csv", `{}`, http.StatusBadRequest},
		{"method", http.MethodDelete, "/api/feasibility/report", "", http.StatusMethodNotAllowed},
		{"preflight", http.MethodOptions, "/api/feasibility/report", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleReport(rec, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestHandleReport_Rendered(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleReport(rec, httptest.NewRequest(http.MethodPost, "/api/feasibility/report?format=markdown", strings.NewReader(`{}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "| IRR | 18.20% |") {
		t.Errorf("markdown missing IRR row:\n%s", rec.Body.String())
	}
	if rec.Header().Get("X-Report-ID") == "" {
		t.Error("expected the saved report id in a header")
	}
}

func TestHandleReport_List(t *testing.T) {
	h := newTestHandler(t)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.HandleReport(rec, httptest.NewRequest(http.MethodPost, "/api/feasibility/report", strings.NewReader(`{}`)))
	}

	rec := httptest.NewRecorder()
	h.HandleReport(rec, httptest.NewRequest(http.MethodGet, "/api/feasibility/report", nil))
	var resp ReportResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Saved) != 2 {
		t.Errorf("expected 2 saved reports, got %d", len(resp.Saved))
	}
}

func TestHandleDefaults(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.HandleDefaults(rec, httptest.NewRequest(http.MethodGet, "/api/feasibility/defaults", nil))

	var resp DefaultsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Inputs != core.DefaultParams() {
		t.Errorf("unexpected defaults: %+v", resp.Inputs)
	}
	if resp.Options.Solver.MaxIterations != 100 {
		t.Errorf("unexpected solver options: %+v", resp.Options.Solver)
	}
}

func TestHandleReport_UnsupportedFormatSavesNothing(t *testing.T) {
	dir := t.TempDir()
	h := NewHandler(store.NewReportStore(nil, dir), core.DefaultOptions())

	rec := httptest.NewRecorder()
	h.HandleReport(rec, httptest.NewRequest(http.MethodPost, "/api/feasibility/report?format=csv", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}

	saved, err := h.Store.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 0 {
		t.Errorf("rejected request should not persist a report, found %d", len(saved))
	}
}

func TestHandleReport_OverflowingInputs(t *testing.T) {
	h := newTestHandler(t)
	body := `{"inputs": {
		"land_area_sq_mtr": 1e300, "land_cost_per_sq_mtr": 150000,
		"construction_cost_per_sq_ft": 4000, "professional_fees_pct": 0.05,
		"marketing_contingency_pct": 0.08, "permissible_fsi": 1e10,
		"efficiency_ratio": 0.85, "sale_price_per_sq_ft": 25000,
		"project_duration_years": 3
	}}`

	rec := httptest.NewRecorder()
	h.HandleReport(rec, httptest.NewRequest(http.MethodPost, "/api/feasibility/report", strings.NewReader(body)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want 422 (%s)", rec.Code, rec.Body.String())
	}
}

func TestWriteJSON_EncodingFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"irr": math.Inf(1)})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	if rec.Header().Get("Content-Type") == "application/json" {
		t.Error("failed encoding should not be labelled as JSON")
	}
}
