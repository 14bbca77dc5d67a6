// Package linkmap partitions discovered URLs into HTML pages and static
// assets, and derives the coverage stats stored with a website map.
package linkmap

import (
	"regexp"
	"strings"

	"github.com/llmscore/llmscore/internal/model"
)

// assetExtensions are path suffixes that never need page metadata.
var assetExtensions = []string{
	".txt", ".md", ".css", ".js", ".json", ".xml", ".csv",
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".webp",
	".mp3", ".mp4", ".pdf", ".zip", ".exe", ".bin",
}

var assetPathPattern = regexp.MustCompile(`(?i)/(assets?|static|media|images?|css|js|files?|downloads?)/`)

// IsAsset reports whether a URL points at a static asset rather than an HTML
// page, by extension or by a conventional asset path segment.
func IsAsset(url string) bool {
	lower := strings.ToLower(url)
	for _, ext := range assetExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return assetPathPattern.MatchString(url)
}

// HTMLPages filters links down to the pages eligible for title/description
// evaluation.
func HTMLPages(links []model.Link) []model.Link {
	pages := make([]model.Link, 0, len(links))
	for _, link := range links {
		if !IsAsset(link.URL) {
			pages = append(pages, link)
		}
	}
	return pages
}

// Stats summarizes metadata coverage over a link list.
type Stats struct {
	TotalLinks          int
	HTMLPages           int
	MissingTitles       int
	MissingDescriptions int
}

// Summarize counts HTML pages and how many of them lack titles/descriptions.
func Summarize(links []model.Link) Stats {
	stats := Stats{TotalLinks: len(links)}
	for _, page := range HTMLPages(links) {
		stats.HTMLPages++
		if page.Title == "" {
			stats.MissingTitles++
		}
		if page.Description == "" {
			stats.MissingDescriptions++
		}
	}
	return stats
}
