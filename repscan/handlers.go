package repscan

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type ScanRequest struct {
	URLs []string `json:"urls"`
}

type ScanResponse struct {
	Results []ScanResult `json:"results"`
	Error   string       `json:"error,omitempty"`
}

type Handler struct {
	scanner *Scanner
	log     zerolog.Logger
}

func NewHandler(scanner *Scanner, log zerolog.Logger) *Handler {
	return &Handler{scanner: scanner, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/scan", h.ScanHandler)
	r.Get("/healthz", h.Healthz)
	return r
}

func (h *Handler) ScanHandler(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ScanResponse{Results: []ScanResult{}, Error: "invalid request body"})
		return
	}

	results, err := h.scanner.Scan(r.Context(), req.URLs)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ScanResponse{Results: []ScanResult{}, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ScanResponse{Results: results})
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
