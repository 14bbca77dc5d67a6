package model

import (
	"time"
)

const (
	TransactionTypePurchase    = "purchase"
	TransactionTypeConsumption = "consumption"

	ScanTypeBasic   = "basic"
	ScanTypePremium = "premium"

	ScanCostBasic   = 1
	ScanCostPremium = 3

	// WelcomeBonusCredits is granted once when a user's credit row is first created.
	WelcomeBonusCredits = 1
)

type UserCredits struct {
	UserID         string    `db:"user_id" json:"userId"`
	Credits        int       `db:"credits" json:"credits"`
	TotalPurchased int       `db:"total_purchased" json:"total_purchased"`
	TotalConsumed  int       `db:"total_consumed" json:"total_consumed"`
	LastUpdated    time.Time `db:"last_updated" json:"last_updated"`
}

// CreditTransaction is one immutable ledger entry. Rows are only ever inserted.
type CreditTransaction struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	Type          string    `db:"type" json:"type"`
	Amount        int       `db:"amount" json:"amount"`
	CreditsBefore int       `db:"credits_before" json:"credits_before"`
	CreditsAfter  int       `db:"credits_after" json:"credits_after"`
	Description   string    `db:"description" json:"description"`
	ScanType      *string   `db:"scan_type" json:"scan_type,omitempty"`
	ScanURL       *string   `db:"scan_url" json:"scan_url,omitempty"`
	PackageType   *string   `db:"package_type" json:"package_type,omitempty"`
	PricePaid     *int      `db:"price_paid" json:"price_paid,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// CreditPackage is a purchasable credit bundle. Prices are USD cents.
type CreditPackage struct {
	Name        string `json:"name"`
	Credits     int    `json:"credits"`
	Price       int    `json:"price"`
	Description string `json:"description"`
	Savings     int    `json:"savings,omitempty"`
}

var CreditPackages = map[string]CreditPackage{
	"starter": {
		Name:        "Starter Pack",
		Credits:     1,
		Price:       500,
		Description: "Perfect for testing our service",
	},
	"growth": {
		Name:        "Growth Pack",
		Credits:     5,
		Price:       2000,
		Description: "Best value for regular users",
		Savings:     500,
	},
	"pro": {
		Name:        "Pro Pack",
		Credits:     15,
		Price:       5000,
		Description: "For power users and agencies",
		Savings:     2500,
	},
}

// ScanCost returns the credit price for a scan type. Unknown types cost a basic scan.
func ScanCost(scanType string) int {
	if scanType == ScanTypePremium {
		return ScanCostPremium
	}
	return ScanCostBasic
}

// CreditCheck is the result of a pure balance read against a scan's cost.
type CreditCheck struct {
	HasEnoughCredits bool `json:"hasEnoughCredits"`
	AvailableCredits int  `json:"availableCredits"`
	RequiredCredits  int  `json:"requiredCredits"`
	Shortfall        int  `json:"shortfall"`
}

// CreditStats summarizes a user's ledger activity.
type CreditStats struct {
	CurrentBalance int        `json:"current_balance"`
	TotalPurchased int        `json:"total_purchased"`
	TotalConsumed  int        `json:"total_consumed"`
	TotalPurchases int        `json:"total_purchases"`
	TotalScans     int        `json:"total_scans"`
	RecentScans30d int        `json:"recent_scans_30d"`
	LastPurchase   *time.Time `json:"last_purchase"`
	LastScan       *time.Time `json:"last_scan"`
}
