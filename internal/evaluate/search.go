// Package evaluate turns probe, map and search signals into 0-10 scores.
package evaluate

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/llmscore/llmscore/internal/firecrawl"
	"github.com/llmscore/llmscore/internal/llm"
	"github.com/llmscore/llmscore/internal/model"
)

const narrativePromptTemplate = `Based on the actual search performance data for %s, provide additional insights about the website's search visibility and AI compatibility.

Search Performance Summary:
- Keywords analyzed: %d (generated from %s)
- Appearance rate: %d%%
- Top 10 appearances: %d
- Average position: %s

Consider:
1. How does this search performance translate to AI/LLM discoverability?
2. What does this say about the website's SEO and content strategy?
3. Any recommendations for improving search visibility?

Provide a brief analysis (2-3 sentences) of the search performance and AI compatibility.`

// SearchScorer measures how visible a domain is for a set of keywords.
type SearchScorer struct {
	searcher  firecrawl.Searcher
	completer llm.Completer
}

func NewSearchScorer(searcher firecrawl.Searcher, completer llm.Completer) *SearchScorer {
	return &SearchScorer{searcher: searcher, completer: completer}
}

// DomainMatches reports whether a search result URL belongs to the target
// domain. Substring matching in both directions, same as rank detection has
// always worked here; unrelated domains sharing a substring can false-match.
func DomainMatches(domain, resultURL string) bool {
	if strings.Contains(resultURL, domain) {
		return true
	}
	stripped := strings.TrimPrefix(strings.TrimPrefix(resultURL, "https://"), "http://")
	return stripped != "" && strings.Contains(domain, stripped)
}

// Rank returns the 1-based position of the first result matching the domain,
// or 0 when the domain does not appear.
func Rank(domain string, results []firecrawl.SearchResult) int {
	for i, result := range results {
		if DomainMatches(domain, result.URL) {
			return i + 1
		}
	}
	return 0
}

// Score searches each keyword in order, aggregates appearance statistics and
// maps them onto a 0-10 score. Failed calls and responses carrying no web
// results payload are excluded from the aggregates; insight ordering follows
// keyword input order.
func (s *SearchScorer) Score(ctx context.Context, domain string, kws []string, source string) (int, string, model.SearchPerformance) {
	var (
		totalSearches int
		appeared      int
		top10         int
		positionSum   int
		insights      []string
	)

	for _, kw := range kws {
		results, err := s.searcher.Search(ctx, kw, firecrawl.SearchLimit)
		if err != nil {
			slog.Warn("keyword search failed", "keyword", kw, "error", err)
			continue
		}
		if results == nil {
			// No web results payload; an empty payload would be non-nil
			slog.Warn("keyword search returned no results payload", "keyword", kw)
			continue
		}
		totalSearches++

		rank := Rank(domain, results)
		if rank > 0 {
			appeared++
			positionSum += rank
			if rank <= 10 {
				top10++
			}
			insights = append(insights, fmt.Sprintf("%s: Position %d", kw, rank))
		} else {
			insights = append(insights, fmt.Sprintf("%s: Not found in top %d", kw, firecrawl.SearchLimit))
		}
	}

	perf := model.SearchPerformance{
		KeywordsAnalyzed: len(kws),
		Keywords:         kws,
		KeywordSource:    source,
		TotalSearches:    totalSearches,
		Top10Appearances: top10,
		SearchInsights:   insights,
	}
	if totalSearches > 0 {
		perf.AppearanceRate = float64(appeared) / float64(totalSearches)
	}
	if appeared > 0 {
		perf.AveragePosition = float64(positionSum) / float64(appeared)
	}

	score, reasoning := scoreSearchVisibility(totalSearches, appeared, top10, positionSum)
	return score, reasoning, perf
}

// scoreSearchVisibility applies the fixed threshold table, first match wins.
func scoreSearchVisibility(totalSearches, appeared, top10, positionSum int) (int, string) {
	if totalSearches == 0 {
		return 5, "Limited search visibility analysis available."
	}

	appearanceRate := float64(appeared) / float64(totalSearches)
	top10Rate := float64(top10) / float64(totalSearches)
	avgPos := 20.0
	if appeared > 0 {
		avgPos = float64(positionSum) / float64(appeared)
	}

	appearancePct := int(math.Round(appearanceRate * 100))
	top10Pct := int(math.Round(top10Rate * 100))

	switch {
	case appearanceRate >= 0.8 && top10Rate >= 0.6 && avgPos <= 5:
		return 9, fmt.Sprintf("Excellent search visibility: Appears in %d%% of searches, %d%% in top 10, average position %.1f.", appearancePct, top10Pct, avgPos)
	case appearanceRate >= 0.6 && top10Rate >= 0.4 && avgPos <= 10:
		return 7, fmt.Sprintf("Good search visibility: Appears in %d%% of searches, %d%% in top 10, average position %.1f.", appearancePct, top10Pct, avgPos)
	case appearanceRate >= 0.4 && avgPos <= 15:
		return 6, fmt.Sprintf("Moderate search visibility: Appears in %d%% of searches, average position %.1f.", appearancePct, avgPos)
	case appearanceRate >= 0.2:
		return 5, fmt.Sprintf("Fair search visibility: Appears in %d%% of searches, average position %.1f.", appearancePct, avgPos)
	default:
		return 3, fmt.Sprintf("Poor search visibility: Rarely appears in search results, average position %.1f.", avgPos)
	}
}

// Narrative asks the LLM to summarize the measured search performance. The
// text is informational only and never affects the score; failures degrade
// to a fixed fallback message.
func (s *SearchScorer) Narrative(ctx context.Context, domain string, perf model.SearchPerformance) string {
	avgPos := "N/A"
	if perf.AveragePosition > 0 {
		avgPos = fmt.Sprintf("%.1f", perf.AveragePosition)
	}

	sourceDesc := "domain analysis"
	if perf.KeywordSource == model.KeywordSourceContent {
		sourceDesc = "actual website content"
	}

	prompt := fmt.Sprintf(narrativePromptTemplate,
		domain,
		perf.KeywordsAnalyzed,
		sourceDesc,
		int(math.Round(perf.AppearanceRate*100)),
		perf.Top10Appearances,
		avgPos,
	)

	text, err := s.completer.Complete(ctx, llm.CompletionRequest{
		Prompt:      prompt,
		MaxTokens:   300,
		Temperature: 0.3,
	})
	if err != nil {
		slog.Warn("search narrative failed", "domain", domain, "error", err)
		return "Additional AI analysis not available."
	}
	return text
}
