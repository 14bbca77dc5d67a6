package model

import (
	"time"
)

// Link is one discovered URL with whatever metadata the crawl service returned.
type Link struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// WebsiteMap is the stored link enumeration for one (user, url).
type WebsiteMap struct {
	ID                  string    `db:"id" json:"id"`
	UserID              string    `db:"user_id" json:"userId"`
	URL                 string    `db:"url" json:"url"`
	Domain              string    `db:"domain" json:"domain"`
	Links               LinkList  `db:"links" json:"links"`
	TotalLinks          int       `db:"total_links" json:"total_links"`
	HTMLPages           int       `db:"html_pages" json:"html_pages"`
	MissingTitles       int       `db:"missing_titles" json:"missing_titles"`
	MissingDescriptions int       `db:"missing_descriptions" json:"missing_descriptions"`
	CreditsConsumed     int       `db:"credits_consumed" json:"credits_consumed"`
	ScanType            string    `db:"scan_type" json:"scan_type"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}
