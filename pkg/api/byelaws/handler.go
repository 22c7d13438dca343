package byelaws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	core "realty_feasibility/pkg/core/byelaws"
)

// ExtractRequest carries either plain text or an HTML page.
type ExtractRequest struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

// Handler holds dependencies for bye-law endpoints
type Handler struct {
	Extractor *core.Extractor
}

// NewHandler creates a new bye-law handler
func NewHandler(x *core.Extractor) *Handler {
	return &Handler{Extractor: x}
}

// HandleExtract runs the extraction. ?format=html returns the highlighted
// page instead of the annotated document.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	text := req.Text
	if text == "" && req.HTML != "" {
		var err error
		text, err = core.TextFromHTML(strings.NewReader(req.HTML))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if strings.TrimSpace(text) == "" {
		http.Error(w, "text or html is required", http.StatusBadRequest)
		return
	}

	doc, err := h.Extractor.Extract(r.Context(), text)
	if err != nil {
		fmt.Printf("[BYELAWS] Extraction failed: %v\n", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		page, err := core.Visualize(doc)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}
