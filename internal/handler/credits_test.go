package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/llmscore/llmscore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	url        string
	err        error
	webhookErr error
	credited   bool
}

func (f *fakeProvider) CheckoutURL(userID, packageID, customerEmail string) (string, error) {
	return f.url, f.err
}

func (f *fakeProvider) HandleWebhook(payload []byte, headers http.Header) error {
	if f.webhookErr != nil {
		return f.webhookErr
	}
	f.credited = true
	return nil
}

func (f *fakeProvider) Name() string { return "fake" }

func TestBalanceEndpoint(t *testing.T) {
	env := newTestEnv(t)
	h := NewCreditsHandler(env.credits, &fakeProvider{})

	req := httptest.NewRequest("GET", "/api/credits", nil)
	rec := httptest.NewRecorder()
	h.Balance(rec, asUser(req, "user-1"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success            bool                      `json:"success"`
		Credits            model.UserCredits         `json:"credits"`
		Stats              model.CreditStats         `json:"stats"`
		RecentTransactions []model.CreditTransaction `json:"recent_transactions"`
		Pricing            struct {
			Packages  map[string]model.CreditPackage `json:"packages"`
			ScanCosts map[string]int                 `json:"scan_costs"`
		} `json:"pricing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	// First contact grants the welcome bonus, visible in balance, stats and ledger
	assert.Equal(t, model.WelcomeBonusCredits, resp.Credits.Credits)
	assert.Equal(t, model.WelcomeBonusCredits, resp.Stats.CurrentBalance)
	require.Len(t, resp.RecentTransactions, 1)
	assert.Equal(t, model.TransactionTypePurchase, resp.RecentTransactions[0].Type)

	require.Len(t, resp.Pricing.Packages, 3)
	assert.Equal(t, 5, resp.Pricing.Packages["growth"].Credits)
	assert.Equal(t, 2000, resp.Pricing.Packages["growth"].Price)
	assert.Equal(t, model.ScanCostBasic, resp.Pricing.ScanCosts[model.ScanTypeBasic])
	assert.Equal(t, model.ScanCostPremium, resp.Pricing.ScanCosts[model.ScanTypePremium])
}

func TestTransactionsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	h := NewCreditsHandler(env.credits, &fakeProvider{})

	_, err := env.credits.Initialize("user-1")
	require.NoError(t, err)
	_, err = env.credits.AddPackage("user-1", "starter")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/credits/transactions?type=purchase", nil)
	rec := httptest.NewRecorder()
	h.Transactions(rec, asUser(req, "user-1"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Transactions []model.CreditTransaction `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Transactions, 2)
}

func TestTransactionsInvalidType(t *testing.T) {
	env := newTestEnv(t)
	h := NewCreditsHandler(env.credits, &fakeProvider{})

	req := httptest.NewRequest("GET", "/api/credits/transactions?type=refund", nil)
	rec := httptest.NewRecorder()
	h.Transactions(rec, asUser(req, "user-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCheckoutEndpoint(t *testing.T) {
	env := newTestEnv(t)
	h := NewCreditsHandler(env.credits, &fakeProvider{url: "https://pay.example.com/session"})

	req := httptest.NewRequest("POST", "/api/credits/checkout", strings.NewReader(`{"package":"growth","email":"user@example.com"}`))
	rec := httptest.NewRecorder()
	h.CreateCheckout(rec, asUser(req, "user-1"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "https://pay.example.com/session", resp.URL)
}

func TestCreateCheckoutUnknownPackage(t *testing.T) {
	env := newTestEnv(t)
	h := NewCreditsHandler(env.credits, &fakeProvider{})

	req := httptest.NewRequest("POST", "/api/credits/checkout", strings.NewReader(`{"package":"mega"}`))
	rec := httptest.NewRecorder()
	h.CreateCheckout(rec, asUser(req, "user-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookEndpoint(t *testing.T) {
	env := newTestEnv(t)
	provider := &fakeProvider{}
	h := NewCreditsHandler(env.credits, provider)

	req := httptest.NewRequest("POST", "/webhooks/payment", strings.NewReader(`{"type":"checkout.session.completed"}`))
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, provider.credited)
	assert.JSONEq(t, `{"received": true}`, rec.Body.String())
}

func TestWebhookFailure(t *testing.T) {
	env := newTestEnv(t)
	h := NewCreditsHandler(env.credits, &fakeProvider{webhookErr: errors.New("bad signature")})

	req := httptest.NewRequest("POST", "/webhooks/payment", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
