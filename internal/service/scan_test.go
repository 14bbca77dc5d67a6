package service

import (
	"context"
	"errors"
	"testing"

	"github.com/llmscore/llmscore/internal/firecrawl"
	"github.com/llmscore/llmscore/internal/model"
	"github.com/llmscore/llmscore/internal/repository"
	"github.com/llmscore/llmscore/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	files []model.FileCheck
}

func (f *fakeProber) CheckFiles(context.Context, string) []model.FileCheck {
	return f.files
}

type fakeMapper struct {
	links []model.Link
	err   error
}

func (f *fakeMapper) Map(context.Context, string) ([]model.Link, error) {
	return f.links, f.err
}

type fakeKeywords struct {
	kws    []string
	source string
}

func (f *fakeKeywords) Generate(context.Context, string, string) ([]string, string) {
	return f.kws, f.source
}

type fakeSearchEvaluator struct {
	score     int
	reasoning string
	perf      model.SearchPerformance
	narrative string
}

func (f *fakeSearchEvaluator) Score(context.Context, string, []string, string) (int, string, model.SearchPerformance) {
	return f.score, f.reasoning, f.perf
}

func (f *fakeSearchEvaluator) Narrative(context.Context, string, model.SearchPerformance) string {
	return f.narrative
}

type scanFixture struct {
	scans   *ScanService
	credits *CreditService
}

func newScanFixture(t *testing.T, prober FileProber, mapper firecrawl.Mapper, kw KeywordGenerator, search SearchEvaluator) *scanFixture {
	database := newTestDB(t)
	credits := NewCreditService(repository.NewCreditRepository(database))
	scans := NewScanService(
		prober,
		mapper,
		kw,
		search,
		credits,
		repository.NewEvaluationRepository(database),
		repository.NewWebsiteMapRepository(database),
		repository.NewAIFilesRepository(database),
	)
	return &scanFixture{scans: scans, credits: credits}
}

func defaultFakes() (*fakeProber, *fakeMapper, *fakeKeywords, *fakeSearchEvaluator) {
	prober := &fakeProber{files: []model.FileCheck{
		{Path: "/llms.txt", Exists: true, Content: "# hello", StatusCode: 200},
		{Path: "/ai.txt", Error: "File not found (404)", StatusCode: 404},
	}}
	mapper := &fakeMapper{links: []model.Link{
		{URL: "https://example.com/", Title: "Home", Description: "Welcome"},
		{URL: "https://example.com/app.js"},
	}}
	kw := &fakeKeywords{kws: []string{"web scraping"}, source: model.KeywordSourceContent}
	search := &fakeSearchEvaluator{
		score:     7,
		reasoning: "Good search visibility: Appears in 70% of searches, 50% in top 10, average position 7.0.",
		perf: model.SearchPerformance{
			KeywordsAnalyzed: 1,
			Keywords:         model.StringList{"web scraping"},
			KeywordSource:    model.KeywordSourceContent,
			TotalSearches:    1,
			AppearanceRate:   1,
			Top10Appearances: 1,
			AveragePosition:  3,
			SearchInsights:   model.StringList{"web scraping: Position 3"},
		},
		narrative: "Solid discoverability.",
	}
	return prober, mapper, kw, search
}

func TestCheckFilesConsumesOneBasicCredit(t *testing.T) {
	prober, mapper, kw, search := defaultFakes()
	f := newScanFixture(t, prober, mapper, kw, search)

	check, err := f.scans.CheckFiles(context.Background(), "user-1", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", check.URL)
	assert.Equal(t, "example.com", check.Domain)
	require.Len(t, check.Files, 2)
	assert.Equal(t, model.ScanCostBasic, check.CreditsConsumed)

	// Welcome bonus fully spent
	credits, err := f.credits.Balance("user-1")
	require.NoError(t, err)
	assert.Zero(t, credits.Credits)
}

func TestCheckFilesRejectsBadURL(t *testing.T) {
	prober, mapper, kw, search := defaultFakes()
	f := newScanFixture(t, prober, mapper, kw, search)

	_, err := f.scans.CheckFiles(context.Background(), "user-1", "")
	assert.ErrorIs(t, err, validation.ErrURLRequired)
}

func TestCheckFilesInsufficientCredits(t *testing.T) {
	prober, mapper, kw, search := defaultFakes()
	f := newScanFixture(t, prober, mapper, kw, search)

	_, err := f.scans.CheckFiles(context.Background(), "user-1", "example.com")
	require.NoError(t, err)

	// Balance is now zero; the next scan is refused before any probing
	_, err = f.scans.CheckFiles(context.Background(), "user-1", "example.com")
	var insufficient *InsufficientCreditsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 1, insufficient.Check.Shortfall)
}

func TestMapWebsiteStoresStats(t *testing.T) {
	prober, mapper, kw, search := defaultFakes()
	f := newScanFixture(t, prober, mapper, kw, search)

	wm, err := f.scans.MapWebsite(context.Background(), "user-1", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, wm.TotalLinks)
	assert.Equal(t, 1, wm.HTMLPages)
	assert.Zero(t, wm.MissingTitles)
}

func TestMapWebsiteFailureDoesNotConsume(t *testing.T) {
	prober, _, kw, search := defaultFakes()
	mapper := &fakeMapper{err: firecrawl.ErrNoLinks}
	f := newScanFixture(t, prober, mapper, kw, search)

	_, err := f.scans.MapWebsite(context.Background(), "user-1", "https://example.com")
	require.Error(t, err)

	credits, err := f.credits.Balance("user-1")
	require.NoError(t, err)
	assert.Equal(t, model.WelcomeBonusCredits, credits.Credits)
}

func TestEvaluateBuildsCompositeResult(t *testing.T) {
	prober, mapper, kw, search := defaultFakes()
	f := newScanFixture(t, prober, mapper, kw, search)

	eval, err := f.scans.Evaluate(context.Background(), "user-1", "example.com", model.ScanTypeBasic)
	require.NoError(t, err)

	assert.Equal(t, 7, eval.SearchVisibility)
	// One HTML page with full metadata scores excellent content quality
	assert.Equal(t, 9, eval.ContentQuality)
	// Two links, no sitemap signal
	assert.Equal(t, 4, eval.TechnicalSEO)
	// One discovery file present
	assert.Equal(t, 7, eval.AIOptimization)
	// 7*0.4 + 9*0.3 + 4*0.2 + 7*0.1 = 7.0
	assert.Equal(t, 7, eval.OverallScore)

	assert.Equal(t, model.ScanTypeBasic, eval.ScanType)
	assert.Equal(t, model.ScanCostBasic, eval.CreditsConsumed)
	assert.NotEmpty(t, eval.Recommendations)

	// Narrative extends the stored reasoning; insights stay per-keyword
	assert.Equal(t, search.reasoning+"\n\nSolid discoverability.", eval.SearchReasoning)
	assert.Equal(t, search.perf.SearchInsights, eval.SearchPerformance.SearchInsights)

	// Persisted and listable
	evals, err := f.scans.Evaluations("user-1", 10)
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.Equal(t, eval.OverallScore, evals[0].OverallScore)
}

func TestEvaluatePremiumRequiresThreeCredits(t *testing.T) {
	prober, mapper, kw, search := defaultFakes()
	f := newScanFixture(t, prober, mapper, kw, search)

	_, err := f.scans.Evaluate(context.Background(), "user-1", "example.com", model.ScanTypePremium)
	var insufficient *InsufficientCreditsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, model.ScanCostPremium, insufficient.Check.RequiredCredits)

	// Top up and retry
	_, err = f.credits.AddPackage("user-1", "growth")
	require.NoError(t, err)

	eval, err := f.scans.Evaluate(context.Background(), "user-1", "example.com", model.ScanTypePremium)
	require.NoError(t, err)
	assert.Equal(t, model.ScanTypePremium, eval.ScanType)
	assert.Equal(t, model.ScanCostPremium, eval.CreditsConsumed)
}

func TestEvaluateToleratesMapFailure(t *testing.T) {
	prober, _, kw, search := defaultFakes()
	mapper := &fakeMapper{err: errors.New("map service down")}
	f := newScanFixture(t, prober, mapper, kw, search)

	eval, err := f.scans.Evaluate(context.Background(), "user-1", "example.com", model.ScanTypeBasic)
	require.NoError(t, err)

	// No-links defaults kick in
	assert.Equal(t, 5, eval.ContentQuality)
	assert.Equal(t, 4, eval.TechnicalSEO)
}

func TestEvaluateUnknownScanTypeDefaultsToBasic(t *testing.T) {
	prober, mapper, kw, search := defaultFakes()
	f := newScanFixture(t, prober, mapper, kw, search)

	eval, err := f.scans.Evaluate(context.Background(), "user-1", "example.com", "deluxe")
	require.NoError(t, err)
	assert.Equal(t, model.ScanTypeBasic, eval.ScanType)
}
