package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/llmscore/llmscore/internal/ctxkeys"
	"github.com/llmscore/llmscore/internal/service"
)

type ScanHandler struct {
	scanService *service.ScanService
}

func NewScanHandler(scanService *service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

type scanRequest struct {
	URL      string `json:"url"`
	ScanType string `json:"scanType"`
}

func decodeScanRequest(w http.ResponseWriter, r *http.Request) (*scanRequest, bool) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return &req, true
}

// CheckFiles probes the target for AI-discovery files
func (h *ScanHandler) CheckFiles(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScanRequest(w, r)
	if !ok {
		return
	}
	userID := ctxkeys.UserID(r.Context())

	check, err := h.scanService.CheckFiles(r.Context(), userID, req.URL)
	if err != nil {
		respondScanError(w, err, "Failed to check files")
		return
	}

	respondSuccess(w, map[string]any{"check": check})
}

// Map enumerates the target's links through the crawl service
func (h *ScanHandler) Map(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScanRequest(w, r)
	if !ok {
		return
	}
	userID := ctxkeys.UserID(r.Context())

	wm, err := h.scanService.MapWebsite(r.Context(), userID, req.URL)
	if err != nil {
		respondScanError(w, err, "Failed to map website")
		return
	}

	respondSuccess(w, map[string]any{"map": wm})
}

// Evaluate runs the full scoring pipeline on the target
func (h *ScanHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScanRequest(w, r)
	if !ok {
		return
	}
	userID := ctxkeys.UserID(r.Context())

	eval, err := h.scanService.Evaluate(r.Context(), userID, req.URL, req.ScanType)
	if err != nil {
		respondScanError(w, err, "Failed to evaluate website")
		return
	}

	respondSuccess(w, map[string]any{"evaluation": eval})
}

// Evaluations lists the user's stored scan results, newest first
func (h *ScanHandler) Evaluations(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	evals, err := h.scanService.Evaluations(userID, limit)
	if err != nil {
		respondScanError(w, err, "Failed to list evaluations")
		return
	}

	respondSuccess(w, map[string]any{"evaluations": evals})
}
