package probe

import (
	"strings"
)

// MaxFileSize is the largest body accepted as a legitimate discovery file.
const MaxFileSize = 50000

// errorPageIndicators is the fixed vocabulary used to recognize HTML error
// pages served in place of a real file or a plain 404. Matching is a
// substring count, not a parser; false positives and negatives are accepted.
var errorPageIndicators = []string{
	"page not found",
	"404 error",
	"not found",
	"error 404",
	"sorry, the page you are looking for",
	"oops! that page can't be found",
	"the requested url was not found",
	"<html",
	"<head>",
	"<title>",
	"nginx",
	"apache",
	"cloudflare",
	"page does not exist",
	"file not found",
}

// IsProbablyErrorPage reports whether a body looks like a generated error
// page: two or more distinct indicators must match.
func IsProbablyErrorPage(content string) bool {
	lower := strings.ToLower(content)

	found := 0
	for _, indicator := range errorPageIndicators {
		if strings.Contains(lower, indicator) {
			found++
			if found >= 2 {
				return true
			}
		}
	}
	return false
}

// IsLegitimateTextFile reports whether a 2xx body is a real discovery file:
// non-HTML content type, non-empty, at most MaxFileSize bytes, and not an
// error page by the indicator heuristic.
func IsLegitimateTextFile(content, contentType string) bool {
	if strings.Contains(contentType, "text/html") {
		return false
	}
	if IsProbablyErrorPage(content) {
		return false
	}
	if strings.TrimSpace(content) == "" {
		return false
	}
	if len(content) > MaxFileSize {
		return false
	}
	return true
}

// IsLegitimate404 reports whether a 404 body is a plain not-found response
// rather than a decorated error page. Short bodies pass outright; slightly
// longer ones pass only with a plain-text content type.
func IsLegitimate404(content, contentType string) bool {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) < 100 {
		return true
	}
	if strings.Contains(contentType, "text/plain") && len(trimmed) < 500 {
		return true
	}
	return false
}
