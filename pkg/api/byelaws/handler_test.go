package byelaws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	core "realty_feasibility/pkg/core/byelaws"
)

type stubProvider struct {
	response string
	prompt   string
}

func (s *stubProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	s.prompt = prompt
	return s.response, nil
}

func TestHandleExtract(t *testing.T) {
	p := &stubProvider{response: `{"extractions": [{"extraction_class": "fsi_rule", "extraction_text": "The permissible FSI shall be 1.33."}]}`}
	h := NewHandler(core.NewExtractor(p, ""))

	body := `{"html": "<html><body><p>Clause 30.1: The permissible FSI shall be 1.33.</p></body></html>"}`
	rec := httptest.NewRecorder()
	h.HandleExtract(rec, httptest.NewRequest(http.MethodPost, "/api/byelaws/extract", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var doc core.AnnotatedDocument
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Extractions) != 1 || doc.Extractions[0].Start != 13 {
		t.Errorf("unexpected extractions: %+v", doc.Extractions)
	}
	if strings.Contains(p.prompt, "<p>") {
		t.Error("HTML should be reduced to text before prompting")
	}
}

func TestHandleExtract_HTMLFormat(t *testing.T) {
	p := &stubProvider{response: `{"extractions": [{"extraction_class": "section", "extraction_text": "Section 1"}]}`}
	h := NewHandler(core.NewExtractor(p, ""))

	rec := httptest.NewRecorder()
	h.HandleExtract(rec, httptest.NewRequest(http.MethodPost, "/api/byelaws/extract?format=html", strings.NewReader(`{"text": "Section 1: Scope"}`)))
	if !strings.Contains(rec.Body.String(), "<mark") {
		t.Errorf("expected highlighted page:\n%s", rec.Body.String())
	}
}

func TestHandleExtract_BadRequests(t *testing.T) {
	h := NewHandler(core.NewExtractor(&stubProvider{}, ""))

	for _, body := range []string{`{`, `{}`, `{"text": "   "}`} {
		rec := httptest.NewRecorder()
		h.HandleExtract(rec, httptest.NewRequest(http.MethodPost, "/api/byelaws/extract", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d", body, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.HandleExtract(rec, httptest.NewRequest(http.MethodPost, "/api/byelaws/extract", strings.NewReader(`{"text": "Section 1"}`)))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("unparseable model output should be a 502, got %d", rec.Code)
	}
}
