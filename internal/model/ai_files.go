package model

import (
	"time"
)

// FileCheck is the probe result for one well-known AI-discovery path.
type FileCheck struct {
	Path        string `json:"path"`
	Exists      bool   `json:"exists"`
	Content     string `json:"content,omitempty"`
	Error       string `json:"error,omitempty"`
	StatusCode  int    `json:"statusCode"`
	ContentType string `json:"contentType,omitempty"`
}

// AIFilesCheck is the stored probe run for one (user, url).
type AIFilesCheck struct {
	ID              string        `db:"id" json:"id"`
	UserID          string        `db:"user_id" json:"userId"`
	URL             string        `db:"url" json:"url"`
	Domain          string        `db:"domain" json:"domain"`
	Files           FileCheckList `db:"files" json:"files"`
	CreditsConsumed int           `db:"credits_consumed" json:"credits_consumed"`
	ScanType        string        `db:"scan_type" json:"scan_type"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
}
