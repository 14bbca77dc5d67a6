package keywords

import (
	"strings"
)

// MaxKeywords caps how many keywords one generation may return.
const MaxKeywords = 10

// Parse turns an untrusted model completion into a keyword list: quotes are
// stripped, the text is split on commas, items are trimmed, empties dropped,
// and the list is capped at max. Malformed input silently yields fewer items,
// never an error.
func Parse(completion string, max int) []string {
	if max <= 0 {
		max = MaxKeywords
	}

	cleaned := strings.ReplaceAll(completion, `"`, "")
	parts := strings.Split(cleaned, ",")

	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		kw := strings.TrimSpace(part)
		if kw == "" {
			continue
		}
		keywords = append(keywords, kw)
		if len(keywords) == max {
			break
		}
	}
	return keywords
}
