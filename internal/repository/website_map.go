package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/llmscore/llmscore/internal/model"
)

var ErrWebsiteMapNotFound = errors.New("website map not found")

type WebsiteMapRepository interface {
	Upsert(wm *model.WebsiteMap) error
	ByUserURL(userID, url string) (*model.WebsiteMap, error)
	ByUser(userID string, limit int) ([]*model.WebsiteMap, error)
}

type websiteMapRepository struct {
	db *sqlx.DB
}

func NewWebsiteMapRepository(db *sqlx.DB) WebsiteMapRepository {
	return &websiteMapRepository{db: db}
}

// Upsert replaces the stored map for (user_id, url); created_at reflects the
// latest run.
func (r *websiteMapRepository) Upsert(wm *model.WebsiteMap) error {
	if wm.ID == "" {
		wm.ID = uuid.New().String()
	}
	wm.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO website_maps (
			id, user_id, url, domain, links,
			total_links, html_pages, missing_titles, missing_descriptions,
			credits_consumed, scan_type, created_at
		) VALUES (
			:id, :user_id, :url, :domain, :links,
			:total_links, :html_pages, :missing_titles, :missing_descriptions,
			:credits_consumed, :scan_type, :created_at
		)
		ON CONFLICT (user_id, url) DO UPDATE SET
			domain = excluded.domain,
			links = excluded.links,
			total_links = excluded.total_links,
			html_pages = excluded.html_pages,
			missing_titles = excluded.missing_titles,
			missing_descriptions = excluded.missing_descriptions,
			credits_consumed = excluded.credits_consumed,
			scan_type = excluded.scan_type,
			created_at = excluded.created_at`

	_, err := r.db.NamedExec(query, wm)
	return err
}

func (r *websiteMapRepository) ByUserURL(userID, url string) (*model.WebsiteMap, error) {
	wm := &model.WebsiteMap{}
	query := `SELECT * FROM website_maps WHERE user_id = $1 AND url = $2`

	err := r.db.Get(wm, query, userID, url)
	if err == sql.ErrNoRows {
		return nil, ErrWebsiteMapNotFound
	}
	if err != nil {
		return nil, err
	}

	return wm, nil
}

func (r *websiteMapRepository) ByUser(userID string, limit int) ([]*model.WebsiteMap, error) {
	if limit <= 0 {
		limit = 50
	}

	var maps []*model.WebsiteMap
	query := `SELECT * FROM website_maps WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	if err := r.db.Select(&maps, query, userID, limit); err != nil {
		return nil, err
	}
	return maps, nil
}
