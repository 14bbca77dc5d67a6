package payment

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/llmscore/llmscore/internal/config"
	"github.com/llmscore/llmscore/internal/model"
	"github.com/llmscore/llmscore/internal/service"
	"github.com/stripe/stripe-go/v81"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

const ProviderStripe = "stripe"

type StripeProvider struct {
	cfg           *config.Config
	creditService *service.CreditService
}

func NewStripeProvider(cfg *config.Config, creditService *service.CreditService) *StripeProvider {
	stripe.Key = cfg.StripeSecretKey

	slog.Info("stripe provider initialized", "app_env", cfg.AppEnv)

	return &StripeProvider{
		cfg:           cfg,
		creditService: creditService,
	}
}

func (s *StripeProvider) Name() string {
	return ProviderStripe
}

// CheckoutURL creates a one-time payment session for a credit package.
// Credits are granted on the checkout.session.completed webhook, never here.
func (s *StripeProvider) CheckoutURL(userID, packageID, customerEmail string) (string, error) {
	pkg, ok := model.CreditPackages[packageID]
	if !ok {
		return "", fmt.Errorf("no credit package configured for: %s", packageID)
	}

	successURL := fmt.Sprintf("%s/app/credits?session_id={CHECKOUT_SESSION_ID}", s.cfg.AppURL)
	cancelURL := fmt.Sprintf("%s/app/credits", s.cfg.AppURL)

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(int64(pkg.Price)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(pkg.Name),
						Description: stripe.String(pkg.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(customerEmail),
		Metadata: map[string]string{
			"user_id":      userID,
			"package_type": packageID,
			"credits":      strconv.Itoa(pkg.Credits),
		},
		AllowPromotionCodes: stripe.Bool(true),
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	slog.Info("stripe checkout created", "user_id", userID, "package", packageID, "session_id", sess.ID)
	return sess.URL, nil
}

func (s *StripeProvider) HandleWebhook(payload []byte, headers http.Header) error {
	signature := headers.Get("Stripe-Signature")

	// Use ConstructEventWithOptions to ignore API version mismatch
	// Stripe's API versions are backwards compatible, so this is safe
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		s.cfg.StripeWebhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to verify webhook signature: %w", err)
	}

	slog.Info("stripe webhook received", "event_type", event.Type)

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutSessionCompleted(event.Data.Raw)
	case "checkout.session.expired":
		return s.handleCheckoutSessionExpired(event.Data.Raw)
	default:
		slog.Warn("stripe webhook unknown event type", "event_type", event.Type)
		return nil
	}
}

func (s *StripeProvider) handleCheckoutSessionCompleted(data json.RawMessage) error {
	var checkoutSession struct {
		ID            string            `json:"id"`
		PaymentStatus string            `json:"payment_status"`
		Metadata      map[string]string `json:"metadata"`
	}

	err := json.Unmarshal(data, &checkoutSession)
	if err != nil {
		return fmt.Errorf("failed to parse checkout session: %w", err)
	}

	userID := checkoutSession.Metadata["user_id"]
	packageID := checkoutSession.Metadata["package_type"]
	if userID == "" || packageID == "" {
		slog.Warn("stripe checkout session missing metadata, skipping", "session_id", checkoutSession.ID)
		return nil
	}

	if checkoutSession.PaymentStatus != "paid" {
		slog.Warn("stripe checkout completed but not paid, skipping",
			"session_id", checkoutSession.ID, "payment_status", checkoutSession.PaymentStatus)
		return nil
	}

	balance, err := s.creditService.AddPackage(userID, packageID)
	if err != nil {
		return fmt.Errorf("failed to credit package: %w", err)
	}

	slog.Info("stripe checkout completed", "user_id", userID, "package", packageID, "balance", balance)
	return nil
}

func (s *StripeProvider) handleCheckoutSessionExpired(data json.RawMessage) error {
	var checkoutSession struct {
		ID       string            `json:"id"`
		Metadata map[string]string `json:"metadata"`
	}

	err := json.Unmarshal(data, &checkoutSession)
	if err != nil {
		return fmt.Errorf("failed to parse checkout session: %w", err)
	}

	slog.Info("stripe checkout expired", "session_id", checkoutSession.ID, "user_id", checkoutSession.Metadata["user_id"])
	return nil
}
