package payment

import (
	"fmt"
	"log/slog"

	"github.com/llmscore/llmscore/internal/config"
	"github.com/llmscore/llmscore/internal/service"
)

// NewProvider creates a payment provider based on configuration
func NewProvider(cfg *config.Config, creditService *service.CreditService) (Provider, error) {
	slog.Info("initializing payment provider", "provider", ProviderStripe)

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}
	return NewStripeProvider(cfg, creditService), nil
}
