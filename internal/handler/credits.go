package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/llmscore/llmscore/internal/ctxkeys"
	"github.com/llmscore/llmscore/internal/model"
	"github.com/llmscore/llmscore/internal/service"
	"github.com/llmscore/llmscore/internal/service/payment"
)

type CreditsHandler struct {
	creditService  *service.CreditService
	paymentService payment.Provider
}

func NewCreditsHandler(creditService *service.CreditService, paymentService payment.Provider) *CreditsHandler {
	return &CreditsHandler{
		creditService:  creditService,
		paymentService: paymentService,
	}
}

// recentTransactionsLimit bounds the ledger slice riding on the balance response.
const recentTransactionsLimit = 10

// Balance returns everything the credits page needs in one call: the current
// balance, ledger stats, the most recent transactions and the pricing table.
// First contact grants the welcome bonus.
func (h *CreditsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	credits, err := h.creditService.Balance(userID)
	if err != nil {
		slog.Error("failed to load credits", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load credits")
		return
	}

	stats, err := h.creditService.Stats(userID)
	if err != nil {
		slog.Error("failed to load credit stats", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load credits")
		return
	}

	recent, err := h.creditService.Transactions(userID, recentTransactionsLimit, "")
	if err != nil {
		slog.Error("failed to load transactions", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load credits")
		return
	}

	respondSuccess(w, map[string]any{
		"credits":             credits,
		"stats":               stats,
		"recent_transactions": recent,
		"pricing": map[string]any{
			"packages": model.CreditPackages,
			"scan_costs": map[string]int{
				model.ScanTypeBasic:   model.ScanCostBasic,
				model.ScanTypePremium: model.ScanCostPremium,
			},
		},
	})
}

// Transactions returns the user's ledger history, newest first.
// Supports ?limit= and ?type=purchase|consumption.
func (h *CreditsHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	txnType := r.URL.Query().Get("type")
	if txnType != "" && txnType != model.TransactionTypePurchase && txnType != model.TransactionTypeConsumption {
		respondError(w, http.StatusBadRequest, "Invalid transaction type")
		return
	}

	transactions, err := h.creditService.Transactions(userID, limit, txnType)
	if err != nil {
		slog.Error("failed to load transactions", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	respondSuccess(w, map[string]any{"transactions": transactions})
}

// Stats summarizes the user's ledger activity
func (h *CreditsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	stats, err := h.creditService.Stats(userID)
	if err != nil {
		slog.Error("failed to load credit stats", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load credit stats")
		return
	}

	respondSuccess(w, map[string]any{"stats": stats})
}

// CreateCheckout starts a payment session for a credit package and returns
// its URL. Credits land via the webhook, never synchronously.
func (h *CreditsHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req struct {
		Package string `json:"package"`
		Email   string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, ok := model.CreditPackages[req.Package]; !ok {
		respondError(w, http.StatusBadRequest, "Invalid package selected")
		return
	}

	checkoutURL, err := h.paymentService.CheckoutURL(userID, req.Package, req.Email)
	if err != nil {
		slog.Error("failed to create checkout", "error", err, "user_id", userID, "package", req.Package, "provider", h.paymentService.Name())
		respondError(w, http.StatusInternalServerError, "Failed to create checkout session")
		return
	}

	slog.Info("checkout created", "user_id", userID, "package", req.Package, "provider", h.paymentService.Name())
	respondSuccess(w, map[string]any{"url": checkoutURL})
}

// Webhook receives payment provider events and credits completed purchases
func (h *CreditsHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read webhook payload", "error", err)
		respondError(w, http.StatusBadRequest, "Failed to read payload")
		return
	}
	defer r.Body.Close()

	err = h.paymentService.HandleWebhook(payload, r.Header)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPackage) {
			slog.Error("webhook referenced unknown package", "error", err)
		} else {
			slog.Error("failed to handle webhook", "error", err, "provider", h.paymentService.Name())
		}
		respondError(w, http.StatusBadRequest, "Failed to process webhook")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"received": true}`))
}
