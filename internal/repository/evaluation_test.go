package repository

import (
	"testing"

	"github.com/llmscore/llmscore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvaluation(userID, url string) *model.Evaluation {
	return &model.Evaluation{
		UserID:           userID,
		URL:              url,
		Domain:           "example.com",
		OverallScore:     7,
		SearchVisibility: 7,
		ContentQuality:   6,
		TechnicalSEO:     8,
		AIOptimization:   4,
		SearchReasoning:  "Good search visibility: Appears in 70% of searches, 50% in top 10, average position 7.0.",
		SearchPerformance: model.SearchPerformance{
			KeywordsAnalyzed: 10,
			Keywords:         model.StringList{"web scraping", "api tools"},
			KeywordSource:    model.KeywordSourceContent,
			TotalSearches:    10,
			AppearanceRate:   0.7,
			Top10Appearances: 5,
			AveragePosition:  7.0,
			SearchInsights:   model.StringList{"web scraping: Position 3"},
		},
		Recommendations: model.StringList{"Add AI optimization files (/llms.txt, /llm.txt, /ai.txt, etc.) for better AI compatibility"},
		CreditsConsumed: 1,
		ScanType:        model.ScanTypeBasic,
	}
}

func TestEvaluationUpsertRoundTrip(t *testing.T) {
	repo := NewEvaluationRepository(newTestDB(t))

	eval := sampleEvaluation("user-1", "https://example.com")
	require.NoError(t, repo.Upsert(eval))
	assert.NotEmpty(t, eval.ID)

	got, err := repo.ByUserURL("user-1", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, eval.ID, got.ID)
	assert.Equal(t, 7, got.OverallScore)
	assert.Equal(t, model.KeywordSourceContent, got.SearchPerformance.KeywordSource)
	assert.Equal(t, model.StringList{"web scraping", "api tools"}, got.SearchPerformance.Keywords)
	require.Len(t, got.Recommendations, 1)
}

func TestEvaluationRescanOverwritesInPlace(t *testing.T) {
	repo := NewEvaluationRepository(newTestDB(t))

	first := sampleEvaluation("user-1", "https://example.com")
	require.NoError(t, repo.Upsert(first))

	second := sampleEvaluation("user-1", "https://example.com")
	second.OverallScore = 9
	second.ScanType = model.ScanTypePremium
	second.CreditsConsumed = 3
	require.NoError(t, repo.Upsert(second))

	got, err := repo.ByUserURL("user-1", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, 9, got.OverallScore)
	assert.Equal(t, model.ScanTypePremium, got.ScanType)

	// Still one row per (user, url)
	all, err := repo.ByUser("user-1", 10)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEvaluationIsolatedPerUser(t *testing.T) {
	repo := NewEvaluationRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(sampleEvaluation("user-1", "https://example.com")))
	require.NoError(t, repo.Upsert(sampleEvaluation("user-2", "https://example.com")))

	_, err := repo.ByUserURL("user-3", "https://example.com")
	assert.ErrorIs(t, err, ErrEvaluationNotFound)

	all, err := repo.ByUser("user-1", 10)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
