package evaluate

import (
	"math"

	"github.com/llmscore/llmscore/internal/linkmap"
	"github.com/llmscore/llmscore/internal/model"
)

// Overall score weights. Components are 0-10 integers, not re-normalized.
const (
	weightSearch    = 0.4
	weightContent   = 0.3
	weightTechnical = 0.2
	weightAI        = 0.1
)

// ContentQuality scores title/description coverage over HTML pages only.
func ContentQuality(links []model.Link) (int, string) {
	if len(links) == 0 {
		return 5, "Moderate content structure detected."
	}

	pages := linkmap.HTMLPages(links)
	if len(pages) == 0 {
		return 7, "No HTML pages detected to evaluate for titles and descriptions."
	}

	var withTitles, withDescriptions int
	for _, page := range pages {
		if page.Title != "" {
			withTitles++
		}
		if page.Description != "" {
			withDescriptions++
		}
	}

	titleRatio := float64(withTitles) / float64(len(pages))
	descRatio := float64(withDescriptions) / float64(len(pages))

	switch {
	case titleRatio > 0.8 && descRatio > 0.8:
		return 9, "Excellent content structure with comprehensive titles and descriptions on HTML pages."
	case titleRatio > 0.6 && descRatio > 0.6:
		return 7, "Good content structure with most HTML pages having titles and descriptions."
	case titleRatio > 0.4 && descRatio > 0.4:
		return 6, "Moderate content structure, some HTML pages missing metadata."
	default:
		return 4, "Poor content structure, many HTML pages missing essential metadata."
	}
}

// TechnicalSEO scores content discovery breadth and description depth.
// "Has a sitemap" is inferred from link volume, not fetched directly.
func TechnicalSEO(links []model.Link) (int, string) {
	hasSitemap := len(links) > 10

	hasStructuredContent := false
	for _, link := range links {
		if len(link.Description) > 50 {
			hasStructuredContent = true
			break
		}
	}

	switch {
	case hasSitemap && hasStructuredContent:
		return 8, "Good technical foundation with substantial content and proper structure."
	case hasSitemap:
		return 6, "Adequate technical setup with content discovery capabilities."
	default:
		return 4, "Limited technical SEO implementation detected."
	}
}

// AIOptimization scores how many AI-discovery files the probe actually found.
func AIOptimization(files []model.FileCheck) (int, string) {
	if files == nil {
		return 3, "No AI optimization files detected."
	}

	existing := 0
	for _, file := range files {
		if file.Exists {
			existing++
		}
	}

	switch {
	case existing >= 3:
		return 9, "Excellent AI optimization with multiple configuration files."
	case existing >= 1:
		return 7, "Good AI optimization with some configuration files present."
	default:
		return 4, "Minimal AI optimization, missing standard configuration files."
	}
}

// Overall combines the four sub-scores into the weighted 0-10 headline score.
func Overall(search, content, technical, ai int) int {
	return int(math.Round(
		float64(search)*weightSearch +
			float64(content)*weightContent +
			float64(technical)*weightTechnical +
			float64(ai)*weightAI,
	))
}

// Recommendations returns one fixed advisory per sub-score below 7, in
// search, content, technical, ai order, or a single congratulatory message.
func Recommendations(search, content, technical, ai int) []string {
	var recs []string

	if search < 7 {
		recs = append(recs, "Improve AI search visibility by optimizing for semantic search and AI discovery")
	}
	if content < 7 {
		recs = append(recs, "Add comprehensive titles and meta descriptions to all pages")
	}
	if technical < 7 {
		recs = append(recs, "Implement proper technical SEO foundations and content structure")
	}
	if ai < 7 {
		recs = append(recs, "Add AI optimization files (/llms.txt, /llm.txt, /ai.txt, etc.) for better AI compatibility")
	}

	if len(recs) == 0 {
		recs = append(recs, "Excellent optimization! Continue monitoring and maintaining high standards.")
	}
	return recs
}
