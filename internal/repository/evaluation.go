package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/llmscore/llmscore/internal/model"
)

var ErrEvaluationNotFound = errors.New("evaluation not found")

type EvaluationRepository interface {
	Upsert(eval *model.Evaluation) error
	ByUserURL(userID, url string) (*model.Evaluation, error)
	ByUser(userID string, limit int) ([]*model.Evaluation, error)
}

type evaluationRepository struct {
	db *sqlx.DB
}

func NewEvaluationRepository(db *sqlx.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

// Upsert writes the evaluation keyed on (user_id, url). A rescan overwrites
// every scored field in place and keeps the original created_at.
func (r *evaluationRepository) Upsert(eval *model.Evaluation) error {
	now := time.Now().UTC()
	if eval.ID == "" {
		eval.ID = uuid.New().String()
	}
	if eval.CreatedAt.IsZero() {
		eval.CreatedAt = now
	}
	eval.UpdatedAt = now

	query := `
		INSERT INTO evaluations (
			id, user_id, url, domain,
			overall_score, search_visibility_score, content_quality_score,
			technical_seo_score, ai_optimization_score,
			search_reasoning, content_reasoning, technical_reasoning, ai_reasoning,
			search_performance, recommendations,
			credits_consumed, scan_type, created_at, updated_at
		) VALUES (
			:id, :user_id, :url, :domain,
			:overall_score, :search_visibility_score, :content_quality_score,
			:technical_seo_score, :ai_optimization_score,
			:search_reasoning, :content_reasoning, :technical_reasoning, :ai_reasoning,
			:search_performance, :recommendations,
			:credits_consumed, :scan_type, :created_at, :updated_at
		)
		ON CONFLICT (user_id, url) DO UPDATE SET
			domain = excluded.domain,
			overall_score = excluded.overall_score,
			search_visibility_score = excluded.search_visibility_score,
			content_quality_score = excluded.content_quality_score,
			technical_seo_score = excluded.technical_seo_score,
			ai_optimization_score = excluded.ai_optimization_score,
			search_reasoning = excluded.search_reasoning,
			content_reasoning = excluded.content_reasoning,
			technical_reasoning = excluded.technical_reasoning,
			ai_reasoning = excluded.ai_reasoning,
			search_performance = excluded.search_performance,
			recommendations = excluded.recommendations,
			credits_consumed = excluded.credits_consumed,
			scan_type = excluded.scan_type,
			updated_at = excluded.updated_at`

	_, err := r.db.NamedExec(query, eval)
	return err
}

func (r *evaluationRepository) ByUserURL(userID, url string) (*model.Evaluation, error) {
	eval := &model.Evaluation{}
	query := `SELECT * FROM evaluations WHERE user_id = $1 AND url = $2`

	err := r.db.Get(eval, query, userID, url)
	if err == sql.ErrNoRows {
		return nil, ErrEvaluationNotFound
	}
	if err != nil {
		return nil, err
	}

	return eval, nil
}

func (r *evaluationRepository) ByUser(userID string, limit int) ([]*model.Evaluation, error) {
	if limit <= 0 {
		limit = 50
	}

	var evals []*model.Evaluation
	query := `SELECT * FROM evaluations WHERE user_id = $1 ORDER BY updated_at DESC LIMIT $2`

	if err := r.db.Select(&evals, query, userID, limit); err != nil {
		return nil, err
	}
	return evals, nil
}
