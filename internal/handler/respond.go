package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/llmscore/llmscore/internal/model"
	"github.com/llmscore/llmscore/internal/service"
	"github.com/llmscore/llmscore/internal/validation"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondSuccess wraps the payload in the success envelope every data
// response carries; errors stay on the {"error": ...} contract.
func respondSuccess(w http.ResponseWriter, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	respondJSON(w, http.StatusOK, body)
}

// respondScanError maps pipeline failures onto the API error contract:
// bad URLs are the caller's fault, short balances are 402 with the exact
// shortfall, anything else is a 500 without internal detail.
func respondScanError(w http.ResponseWriter, err error, fallback string) {
	var insufficient *service.InsufficientCreditsError
	switch {
	case errors.Is(err, validation.ErrURLRequired), errors.Is(err, validation.ErrURLInvalid):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &insufficient):
		respondInsufficientCredits(w, insufficient.Check)
	default:
		slog.Error(fallback, "error", err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

func respondInsufficientCredits(w http.ResponseWriter, check model.CreditCheck) {
	respondJSON(w, http.StatusPaymentRequired, map[string]any{
		"error": "Insufficient credits",
		"details": map[string]int{
			"required":  check.RequiredCredits,
			"available": check.AvailableCredits,
			"shortfall": check.Shortfall,
		},
	})
}
