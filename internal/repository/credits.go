package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/llmscore/llmscore/internal/model"
)

var (
	ErrCreditsNotFound     = errors.New("credits not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

type CreditRepository interface {
	ByUserID(userID string) (*model.UserCredits, error)
	Initialize(userID string) (*model.UserCredits, bool, error)
	Add(userID string, credits int, packageType string, pricePaid int, description string) (int, error)
	Consume(userID string, credits int, scanType, scanURL, description string) (int, error)
	Transactions(userID string, limit int, txnType string) ([]*model.CreditTransaction, error)
	Stats(userID string) (*model.CreditStats, error)
}

type creditRepository struct {
	db *sqlx.DB
}

func NewCreditRepository(db *sqlx.DB) CreditRepository {
	return &creditRepository{db: db}
}

func (r *creditRepository) ByUserID(userID string) (*model.UserCredits, error) {
	credits := &model.UserCredits{}
	query := `SELECT * FROM user_credits WHERE user_id = $1`

	err := r.db.Get(credits, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCreditsNotFound
	}
	if err != nil {
		return nil, err
	}

	return credits, nil
}

// Initialize creates the user's credit row with the welcome bonus and its
// matching ledger entry. Idempotent: an existing row is returned unchanged.
func (r *creditRepository) Initialize(userID string) (*model.UserCredits, bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	existing := &model.UserCredits{}
	err = tx.Get(existing, `SELECT * FROM user_credits WHERE user_id = $1`, userID)
	if err == nil {
		return existing, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, err
	}

	now := time.Now().UTC()
	credits := &model.UserCredits{
		UserID:         userID,
		Credits:        model.WelcomeBonusCredits,
		TotalPurchased: model.WelcomeBonusCredits,
		TotalConsumed:  0,
		LastUpdated:    now,
	}

	_, err = tx.Exec(
		`INSERT INTO user_credits (user_id, credits, total_purchased, total_consumed, last_updated)
		 VALUES ($1, $2, $3, $4, $5)`,
		credits.UserID, credits.Credits, credits.TotalPurchased, credits.TotalConsumed, credits.LastUpdated,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create credits row: %w", err)
	}

	packageType := "free"
	pricePaid := 0
	err = insertTransaction(tx, &model.CreditTransaction{
		ID:            uuid.New().String(),
		UserID:        userID,
		Type:          model.TransactionTypePurchase,
		Amount:        model.WelcomeBonusCredits,
		CreditsBefore: 0,
		CreditsAfter:  model.WelcomeBonusCredits,
		Description:   "Welcome bonus - Free credit for new users",
		PackageType:   &packageType,
		PricePaid:     &pricePaid,
		CreatedAt:     now,
	})
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return credits, true, nil
}

// Add credits a purchase: the balance patch and the ledger insert commit as
// one transaction, creating the row at balance zero if it does not exist.
func (r *creditRepository) Add(userID string, credits int, packageType string, pricePaid int, description string) (int, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	var before int
	err = tx.Get(&before, `SELECT credits FROM user_credits WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		before = 0
		_, err = tx.Exec(
			`INSERT INTO user_credits (user_id, credits, total_purchased, total_consumed, last_updated)
			 VALUES ($1, 0, 0, 0, $2)`,
			userID, now,
		)
	}
	if err != nil {
		return 0, err
	}

	after := before + credits
	_, err = tx.Exec(
		`UPDATE user_credits
		 SET credits = credits + $1, total_purchased = total_purchased + $1, last_updated = $2
		 WHERE user_id = $3`,
		credits, now, userID,
	)
	if err != nil {
		return 0, err
	}

	err = insertTransaction(tx, &model.CreditTransaction{
		ID:            uuid.New().String(),
		UserID:        userID,
		Type:          model.TransactionTypePurchase,
		Amount:        credits,
		CreditsBefore: before,
		CreditsAfter:  after,
		Description:   description,
		PackageType:   &packageType,
		PricePaid:     &pricePaid,
		CreatedAt:     now,
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return after, nil
}

// Consume debits a scan as one atomic conditional decrement: the guarded
// UPDATE checks the balance and applies the debit in a single statement, so
// two concurrent scans can never overspend. Zero rows affected means the row
// is missing or the balance is short; nothing is mutated in that case.
func (r *creditRepository) Consume(userID string, credits int, scanType, scanURL, description string) (int, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	result, err := tx.Exec(
		`UPDATE user_credits
		 SET credits = credits - $1, total_consumed = total_consumed + $1, last_updated = $2
		 WHERE user_id = $3 AND credits >= $1`,
		credits, now, userID,
	)
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, ErrInsufficientCredits
	}

	var after int
	err = tx.Get(&after, `SELECT credits FROM user_credits WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}

	err = insertTransaction(tx, &model.CreditTransaction{
		ID:            uuid.New().String(),
		UserID:        userID,
		Type:          model.TransactionTypeConsumption,
		Amount:        credits,
		CreditsBefore: after + credits,
		CreditsAfter:  after,
		Description:   description,
		ScanType:      &scanType,
		ScanURL:       &scanURL,
		CreatedAt:     now,
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return after, nil
}

func (r *creditRepository) Transactions(userID string, limit int, txnType string) ([]*model.CreditTransaction, error) {
	if limit <= 0 {
		limit = 50
	}

	var transactions []*model.CreditTransaction
	var err error

	if txnType != "" {
		query := `SELECT * FROM credit_transactions WHERE user_id = $1 AND type = $2
		          ORDER BY created_at DESC LIMIT $3`
		err = r.db.Select(&transactions, query, userID, txnType, limit)
	} else {
		query := `SELECT * FROM credit_transactions WHERE user_id = $1
		          ORDER BY created_at DESC LIMIT $2`
		err = r.db.Select(&transactions, query, userID, limit)
	}
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *creditRepository) Stats(userID string) (*model.CreditStats, error) {
	stats := &model.CreditStats{}

	credits, err := r.ByUserID(userID)
	if err == nil {
		stats.CurrentBalance = credits.Credits
		stats.TotalPurchased = credits.TotalPurchased
		stats.TotalConsumed = credits.TotalConsumed
	} else if err != ErrCreditsNotFound {
		return nil, err
	}

	err = r.db.QueryRow(
		`SELECT COUNT(*) FROM credit_transactions WHERE user_id = $1 AND type = $2`,
		userID, model.TransactionTypePurchase,
	).Scan(&stats.TotalPurchases)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(
		`SELECT COUNT(*) FROM credit_transactions WHERE user_id = $1 AND type = $2`,
		userID, model.TransactionTypeConsumption,
	).Scan(&stats.TotalScans)
	if err != nil {
		return nil, err
	}

	thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)
	err = r.db.QueryRow(
		`SELECT COUNT(*) FROM credit_transactions WHERE user_id = $1 AND type = $2 AND created_at > $3`,
		userID, model.TransactionTypeConsumption, thirtyDaysAgo,
	).Scan(&stats.RecentScans30d)
	if err != nil {
		return nil, err
	}

	stats.LastPurchase, err = r.lastTransactionAt(userID, model.TransactionTypePurchase)
	if err != nil {
		return nil, err
	}
	stats.LastScan, err = r.lastTransactionAt(userID, model.TransactionTypeConsumption)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *creditRepository) lastTransactionAt(userID, txnType string) (*time.Time, error) {
	var at time.Time
	err := r.db.Get(&at,
		`SELECT created_at FROM credit_transactions WHERE user_id = $1 AND type = $2
		 ORDER BY created_at DESC LIMIT 1`,
		userID, txnType,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &at, nil
}

func insertTransaction(tx *sqlx.Tx, txn *model.CreditTransaction) error {
	_, err := tx.Exec(
		`INSERT INTO credit_transactions (
			id, user_id, type, amount, credits_before, credits_after,
			description, scan_type, scan_url, package_type, price_paid, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		txn.ID, txn.UserID, txn.Type, txn.Amount, txn.CreditsBefore, txn.CreditsAfter,
		txn.Description, txn.ScanType, txn.ScanURL, txn.PackageType, txn.PricePaid, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}
