package feasibility

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	core "realty_feasibility/pkg/core/feasibility"
	"realty_feasibility/pkg/core/input"
	"realty_feasibility/pkg/core/report"
	"realty_feasibility/pkg/core/store"
)

// ReportRequest is the body of POST /api/feasibility/report. A missing
// inputs object runs the default scenario.
type ReportRequest struct {
	Name           string          `json:"name"`
	Inputs         json.RawMessage `json:"inputs"`
	CashFlowPolicy string          `json:"cash_flow_policy"`
}

type ReportResponse struct {
	ID     string               `json:"id,omitempty"`
	Report *core.Report         `json:"report,omitempty"`
	Saved  []*store.SavedReport `json:"saved,omitempty"`
}

type DefaultsResponse struct {
	Inputs  core.Params  `json:"inputs"`
	Options core.Options `json:"options"`
}

// Handler holds dependencies for feasibility endpoints
type Handler struct {
	Store   *store.ReportStore // nil disables persistence
	Options core.Options
}

// NewHandler creates a new feasibility handler
func NewHandler(s *store.ReportStore, opts core.Options) *Handler {
	return &Handler{Store: s, Options: opts}
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleReport computes (POST) or loads (GET ?id=) a report. GET without an
// id lists saved reports. ?format=text|markdown|html renders instead of JSON.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodPost:
		h.computeReport(w, r)
	case http.MethodGet:
		h.loadReport(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) computeReport(w http.ResponseWriter, r *http.Request) {
	format, err := requestedFormat(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var req ReportRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	in, err := parseInputs(req.Inputs)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	opts := h.Options
	if req.CashFlowPolicy != "" {
		opts.Policy = core.CashFlowPolicy(req.CashFlowPolicy)
	}

	rep, err := core.Run(in, opts)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	fmt.Printf("[FEASIBILITY] Computed report: revenue %s, IRR %s\n",
		report.Money(rep.Summary.TotalRevenue), report.Percent(rep.Summary.IRRPct))

	resp := ReportResponse{Report: rep}
	if h.Store != nil {
		saved, err := h.Store.Save(r.Context(), req.Name, rep)
		if err != nil {
			// the computed report is still useful
			fmt.Printf("[WARNING] Failed to persist report: %v\n", err)
		} else {
			resp.ID = saved.ID.String()
		}
	}

	if format != report.FormatJSON {
		if resp.ID != "" {
			w.Header().Set("X-Report-ID", resp.ID)
		}
		writeRendered(w, rep, format)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) loadReport(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		http.Error(w, "Report store not configured", http.StatusServiceUnavailable)
		return
	}

	format, err := requestedFormat(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		saved, err := h.Store.List(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, ReportResponse{Saved: saved})
		return
	}

	id, err := uuid.Parse(idParam)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid report id: %s", idParam), http.StatusBadRequest)
		return
	}
	saved, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, fmt.Sprintf("Report not found: %s", idParam), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if format != report.FormatJSON {
		writeRendered(w, saved.Report, format)
		return
	}
	writeJSON(w, http.StatusOK, ReportResponse{ID: saved.ID.String(), Report: saved.Report})
}

// HandleDefaults returns the default scenario and the server's options.
func (h *Handler) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, DefaultsResponse{
		Inputs:  core.DefaultParams(),
		Options: h.Options,
	})
}

func parseInputs(raw json.RawMessage) (core.ProjectInputs, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return core.NewProjectInputs(core.DefaultParams())
	}
	return input.Parse(raw, input.FormatJSON)
}

// writeEngineError maps engine failures onto status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	var engineErr *core.Error
	if errors.As(err, &engineErr) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// requestedFormat reads ?format=, defaulting to JSON.
func requestedFormat(r *http.Request) (report.Format, error) {
	switch f := report.Format(r.URL.Query().Get("format")); f {
	case "", report.FormatJSON:
		return report.FormatJSON, nil
	case report.FormatText, report.FormatMarkdown, report.FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", f)
	}
}

var contentTypes = map[report.Format]string{
	report.FormatHTML:     "text/html; charset=utf-8",
	report.FormatMarkdown: "text/markdown; charset=utf-8",
	report.FormatText:     "text/plain; charset=utf-8",
}

func writeRendered(w http.ResponseWriter, rep *core.Report, format report.Format) {
	var buf bytes.Buffer
	if err := report.Write(&buf, rep, format); err != nil {
		http.Error(w, fmt.Sprintf("Failed to render report: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(buf.Bytes())
}

// writeJSON encodes before writing the header so an encoding failure is a
// 500 rather than an empty 200.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Printf("[WARNING] Failed to encode response: %v\n", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}
