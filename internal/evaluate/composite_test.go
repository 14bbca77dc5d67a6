package evaluate

import (
	"fmt"
	"testing"

	"github.com/llmscore/llmscore/internal/model"
	"github.com/stretchr/testify/assert"
)

func pages(n, withTitle, withDesc int) []model.Link {
	links := make([]model.Link, 0, n)
	for i := 0; i < n; i++ {
		link := model.Link{URL: fmt.Sprintf("https://example.com/page-%d", i)}
		if i < withTitle {
			link.Title = "Title"
		}
		if i < withDesc {
			link.Description = "A description that says what the page is about in detail."
		}
		links = append(links, link)
	}
	return links
}

func TestContentQuality(t *testing.T) {
	tests := []struct {
		name  string
		links []model.Link
		want  int
	}{
		{"no links", nil, 5},
		{"assets only", []model.Link{{URL: "https://example.com/a.css"}}, 7},
		{"excellent coverage", pages(10, 9, 9), 9},
		{"good coverage", pages(10, 7, 7), 7},
		{"moderate coverage", pages(10, 5, 5), 6},
		{"poor coverage", pages(10, 2, 1), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reasoning := ContentQuality(tt.links)
			assert.Equal(t, tt.want, score)
			assert.NotEmpty(t, reasoning)
		})
	}
}

func TestTechnicalSEO(t *testing.T) {
	// Few links, no rich descriptions
	score, _ := TechnicalSEO(pages(5, 5, 0))
	assert.Equal(t, 4, score)

	// Enough links to imply discoverability, still shallow descriptions
	score, _ = TechnicalSEO(pages(11, 11, 0))
	assert.Equal(t, 6, score)

	// Broad and structured
	score, reasoning := TechnicalSEO(pages(11, 11, 11))
	assert.Equal(t, 8, score)
	assert.Contains(t, reasoning, "Good technical foundation")
}

func TestAIOptimization(t *testing.T) {
	found := model.FileCheck{Exists: true}
	missing := model.FileCheck{}

	tests := []struct {
		name  string
		files []model.FileCheck
		want  int
	}{
		{"probe never ran", nil, 3},
		{"none found", []model.FileCheck{missing, missing}, 4},
		{"one found", []model.FileCheck{found, missing}, 7},
		{"three found", []model.FileCheck{found, found, found, missing}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reasoning := AIOptimization(tt.files)
			assert.Equal(t, tt.want, score)
			assert.NotEmpty(t, reasoning)
		})
	}
}

func TestOverall(t *testing.T) {
	// 9*0.4 + 7*0.3 + 8*0.2 + 4*0.1 = 7.7 -> 8
	assert.Equal(t, 8, Overall(9, 7, 8, 4))
	// 5*0.4 + 5*0.3 + 4*0.2 + 4*0.1 = 4.7 -> 5
	assert.Equal(t, 5, Overall(5, 5, 4, 4))
	assert.Equal(t, 0, Overall(0, 0, 0, 0))
	assert.Equal(t, 10, Overall(10, 10, 10, 10))
}

func TestRecommendations(t *testing.T) {
	recs := Recommendations(6, 9, 5, 9)
	assert.Len(t, recs, 2)
	assert.Contains(t, recs[0], "search visibility")
	assert.Contains(t, recs[1], "technical SEO")

	recs = Recommendations(9, 9, 9, 9)
	assert.Len(t, recs, 1)
	assert.Contains(t, recs[0], "Excellent optimization")

	recs = Recommendations(1, 1, 1, 1)
	assert.Len(t, recs, 4)
}
