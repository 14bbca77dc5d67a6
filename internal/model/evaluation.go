package model

import (
	"time"
)

const (
	KeywordSourceContent = "content_analysis"
	KeywordSourceDomain  = "domain_analysis"
)

// SearchPerformance records the raw search visibility data behind a score.
type SearchPerformance struct {
	KeywordsAnalyzed int        `json:"keywords_analyzed"`
	Keywords         StringList `json:"keywords"`
	KeywordSource    string     `json:"keyword_source"`
	TotalSearches    int        `json:"total_searches"`
	AppearanceRate   float64    `json:"appearance_rate"`
	Top10Appearances int        `json:"top10_appearances"`
	AveragePosition  float64    `json:"average_position"`
	SearchInsights   StringList `json:"search_insights"`
}

// Evaluation is the scored result of one scan. One row per (user, url);
// rescans overwrite in place and the credit ledger keeps the history.
type Evaluation struct {
	ID                 string            `db:"id" json:"id"`
	UserID             string            `db:"user_id" json:"userId"`
	URL                string            `db:"url" json:"url"`
	Domain             string            `db:"domain" json:"domain"`
	OverallScore       int               `db:"overall_score" json:"overall_score"`
	SearchVisibility   int               `db:"search_visibility_score" json:"search_visibility_score"`
	ContentQuality     int               `db:"content_quality_score" json:"content_quality_score"`
	TechnicalSEO       int               `db:"technical_seo_score" json:"technical_seo_score"`
	AIOptimization     int               `db:"ai_optimization_score" json:"ai_optimization_score"`
	SearchReasoning    string            `db:"search_reasoning" json:"search_reasoning"`
	ContentReasoning   string            `db:"content_reasoning" json:"content_reasoning"`
	TechnicalReasoning string            `db:"technical_reasoning" json:"technical_reasoning"`
	AIReasoning        string            `db:"ai_reasoning" json:"ai_reasoning"`
	SearchPerformance  SearchPerformance `db:"search_performance" json:"search_performance"`
	Recommendations    StringList        `db:"recommendations" json:"recommendations"`
	CreditsConsumed    int               `db:"credits_consumed" json:"credits_consumed"`
	ScanType           string            `db:"scan_type" json:"scan_type"`
	CreatedAt          time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time         `db:"updated_at" json:"updated_at"`
}
