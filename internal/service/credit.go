package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/llmscore/llmscore/internal/model"
	"github.com/llmscore/llmscore/internal/repository"
)

var ErrUnknownPackage = errors.New("unknown credit package")

// InsufficientCreditsError carries the balance snapshot so handlers can tell
// the caller exactly how short they are.
type InsufficientCreditsError struct {
	Check model.CreditCheck
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: need %d, have %d", e.Check.RequiredCredits, e.Check.AvailableCredits)
}

type CreditService struct {
	repo repository.CreditRepository
}

func NewCreditService(repo repository.CreditRepository) *CreditService {
	return &CreditService{repo: repo}
}

// Initialize grants the welcome bonus on first contact with a user. Safe to
// call on every authenticated request.
func (s *CreditService) Initialize(userID string) (*model.UserCredits, error) {
	credits, created, err := s.repo.Initialize(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credits: %w", err)
	}
	if created {
		slog.Info("credits initialized with welcome bonus", "user_id", userID, "credits", credits.Credits)
	}
	return credits, nil
}

func (s *CreditService) Balance(userID string) (*model.UserCredits, error) {
	return s.Initialize(userID)
}

// CheckForScan reports whether the user can afford a scan without mutating
// anything. The answer can go stale under concurrency; Consume is the
// authoritative gate.
func (s *CreditService) CheckForScan(userID, scanType string) (*model.CreditCheck, error) {
	credits, err := s.Initialize(userID)
	if err != nil {
		return nil, err
	}

	required := model.ScanCost(scanType)
	check := &model.CreditCheck{
		HasEnoughCredits: credits.Credits >= required,
		AvailableCredits: credits.Credits,
		RequiredCredits:  required,
	}
	if !check.HasEnoughCredits {
		check.Shortfall = required - credits.Credits
	}
	return check, nil
}

// Consume debits one scan. Returns InsufficientCreditsError when the balance
// cannot cover it, with nothing mutated.
func (s *CreditService) Consume(userID, scanType, scanURL string) (int, error) {
	required := model.ScanCost(scanType)
	description := fmt.Sprintf("%s scan of %s", scanType, scanURL)

	balance, err := s.repo.Consume(userID, required, scanType, scanURL, description)
	if err == repository.ErrInsufficientCredits {
		check, checkErr := s.CheckForScan(userID, scanType)
		if checkErr != nil {
			return 0, checkErr
		}
		return 0, &InsufficientCreditsError{Check: *check}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to consume credits: %w", err)
	}

	slog.Info("credits consumed", "user_id", userID, "scan_type", scanType, "url", scanURL, "balance", balance)
	return balance, nil
}

// AddPackage credits a purchased package to the user's balance.
func (s *CreditService) AddPackage(userID, packageID string) (int, error) {
	pkg, ok := model.CreditPackages[packageID]
	if !ok {
		return 0, ErrUnknownPackage
	}

	description := fmt.Sprintf("Purchased %s package - %d credits", pkg.Name, pkg.Credits)
	balance, err := s.repo.Add(userID, pkg.Credits, packageID, pkg.Price, description)
	if err != nil {
		return 0, fmt.Errorf("failed to add credits: %w", err)
	}

	slog.Info("credits purchased", "user_id", userID, "package", packageID, "credits", pkg.Credits, "balance", balance)
	return balance, nil
}

func (s *CreditService) Transactions(userID string, limit int, txnType string) ([]*model.CreditTransaction, error) {
	return s.repo.Transactions(userID, limit, txnType)
}

func (s *CreditService) Stats(userID string) (*model.CreditStats, error) {
	return s.repo.Stats(userID)
}
