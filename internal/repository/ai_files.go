package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/llmscore/llmscore/internal/model"
)

var ErrAIFilesNotFound = errors.New("ai files check not found")

type AIFilesRepository interface {
	Upsert(check *model.AIFilesCheck) error
	ByUserURL(userID, url string) (*model.AIFilesCheck, error)
	ByUser(userID string, limit int) ([]*model.AIFilesCheck, error)
}

type aiFilesRepository struct {
	db *sqlx.DB
}

func NewAIFilesRepository(db *sqlx.DB) AIFilesRepository {
	return &aiFilesRepository{db: db}
}

// Upsert replaces the stored probe run for (user_id, url).
func (r *aiFilesRepository) Upsert(check *model.AIFilesCheck) error {
	if check.ID == "" {
		check.ID = uuid.New().String()
	}
	check.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO ai_files (
			id, user_id, url, domain, files, credits_consumed, scan_type, created_at
		) VALUES (
			:id, :user_id, :url, :domain, :files, :credits_consumed, :scan_type, :created_at
		)
		ON CONFLICT (user_id, url) DO UPDATE SET
			domain = excluded.domain,
			files = excluded.files,
			credits_consumed = excluded.credits_consumed,
			scan_type = excluded.scan_type,
			created_at = excluded.created_at`

	_, err := r.db.NamedExec(query, check)
	return err
}

func (r *aiFilesRepository) ByUserURL(userID, url string) (*model.AIFilesCheck, error) {
	check := &model.AIFilesCheck{}
	query := `SELECT * FROM ai_files WHERE user_id = $1 AND url = $2`

	err := r.db.Get(check, query, userID, url)
	if err == sql.ErrNoRows {
		return nil, ErrAIFilesNotFound
	}
	if err != nil {
		return nil, err
	}

	return check, nil
}

func (r *aiFilesRepository) ByUser(userID string, limit int) ([]*model.AIFilesCheck, error) {
	if limit <= 0 {
		limit = 50
	}

	var checks []*model.AIFilesCheck
	query := `SELECT * FROM ai_files WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	if err := r.db.Select(&checks, query, userID, limit); err != nil {
		return nil, err
	}
	return checks, nil
}
