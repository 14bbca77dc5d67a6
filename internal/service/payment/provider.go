package payment

import "net/http"

// Provider defines the interface that all payment providers must implement
type Provider interface {
	// CheckoutURL creates a checkout session for a credit package and returns the URL
	CheckoutURL(userID, packageID, customerEmail string) (string, error)

	// HandleWebhook processes webhook events from the payment provider
	HandleWebhook(payload []byte, headers http.Header) error

	// Name returns the provider name (e.g., "stripe")
	Name() string
}
