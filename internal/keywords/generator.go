// Package keywords asks the LLM for likely search keywords describing a site.
package keywords

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/llmscore/llmscore/internal/firecrawl"
	"github.com/llmscore/llmscore/internal/llm"
	"github.com/llmscore/llmscore/internal/model"
)

// contentLimit bounds how much scraped markdown goes into the prompt.
const contentLimit = 3000

const contentPromptTemplate = `Based on the following website content, generate 10 relevant search keywords or phrases that users might use to find this website. Analyze the content to understand what the site offers, its main topics, and services.

Website Content:
%s

Consider:
1. Main topics and services mentioned in the content
2. Key features and offerings
3. Industry-specific terms
4. Problem-solving keywords
5. Brand/product specific terms

Return only a comma-separated list of keywords, no explanations. Example: "web scraping, data extraction, api tools, crawler service, content parsing"`

const domainPromptTemplate = `Based on the website %s, generate 10 relevant search keywords or phrases that users might use to find this website. Consider:

1. The website's domain name and branding
2. Common industry terms related to the domain
3. Popular search queries for similar websites
4. Long-tail keywords that are specific to the site

Return only a comma-separated list of keywords, no explanations. Example: "web scraping, data extraction, api tools, crawler service, content parsing"`

// Generator produces search keywords for a target site, preferring scraped
// page content over the bare domain name.
type Generator struct {
	completer llm.Completer
	scraper   firecrawl.Scraper
}

func NewGenerator(completer llm.Completer, scraper firecrawl.Scraper) *Generator {
	return &Generator{completer: completer, scraper: scraper}
}

// Generate returns up to MaxKeywords keywords and the source they were
// derived from. A failed scrape falls back to domain analysis; a failed
// completion degrades to an empty list so scoring can use its defaults.
func (g *Generator) Generate(ctx context.Context, url, domain string) ([]string, string) {
	content := g.scrapeContent(ctx, url)

	source := model.KeywordSourceDomain
	prompt := fmt.Sprintf(domainPromptTemplate, domain)
	if content != "" {
		source = model.KeywordSourceContent
		prompt = fmt.Sprintf(contentPromptTemplate, content)
	}

	completion, err := g.completer.Complete(ctx, llm.CompletionRequest{
		Prompt:      prompt,
		MaxTokens:   200,
		Temperature: 0.7,
	})
	if err != nil {
		slog.Warn("keyword generation failed", "url", url, "error", err)
		return nil, source
	}

	return Parse(completion, MaxKeywords), source
}

func (g *Generator) scrapeContent(ctx context.Context, url string) string {
	markdown, err := g.scraper.Scrape(ctx, url)
	if err != nil {
		slog.Warn("content scrape failed, falling back to domain analysis", "url", url, "error", err)
		return ""
	}
	if len(markdown) > contentLimit {
		markdown = markdown[:contentLimit]
	}
	return markdown
}
