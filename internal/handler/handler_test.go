package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/llmscore/llmscore/internal/ctxkeys"
	"github.com/llmscore/llmscore/internal/db"
	"github.com/llmscore/llmscore/internal/firecrawl"
	"github.com/llmscore/llmscore/internal/model"
	"github.com/llmscore/llmscore/internal/repository"
	"github.com/llmscore/llmscore/internal/service"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

// asUser injects an authenticated user the way AuthMiddleware would
func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(ctxkeys.WithUserID(r.Context(), userID))
}

type fakeProber struct{}

func (fakeProber) CheckFiles(context.Context, string) []model.FileCheck {
	return []model.FileCheck{
		{Path: "/llms.txt", Exists: true, Content: "# hello", StatusCode: 200},
		{Path: "/ai.txt", Error: "File not found (404)", StatusCode: 404},
	}
}

type fakeMapper struct{}

func (fakeMapper) Map(context.Context, string) ([]model.Link, error) {
	return []model.Link{
		{URL: "https://example.com/", Title: "Home", Description: "Welcome"},
		{URL: "https://example.com/app.js"},
	}, nil
}

type fakeKeywords struct{}

func (fakeKeywords) Generate(context.Context, string, string) ([]string, string) {
	return []string{"web scraping"}, model.KeywordSourceContent
}

type fakeSearchEvaluator struct{}

func (fakeSearchEvaluator) Score(context.Context, string, []string, string) (int, string, model.SearchPerformance) {
	return 7, "Good search visibility: Appears in 70% of searches, 50% in top 10, average position 7.0.", model.SearchPerformance{
		KeywordsAnalyzed: 1,
		Keywords:         model.StringList{"web scraping"},
		KeywordSource:    model.KeywordSourceContent,
		TotalSearches:    1,
		AppearanceRate:   1,
		Top10Appearances: 1,
		AveragePosition:  3,
		SearchInsights:   model.StringList{"web scraping: Position 3"},
	}
}

func (fakeSearchEvaluator) Narrative(context.Context, string, model.SearchPerformance) string {
	return "Solid discoverability."
}

type testEnv struct {
	credits *service.CreditService
	scans   *service.ScanService
}

func newTestEnv(t *testing.T) *testEnv {
	database := newTestDB(t)
	credits := service.NewCreditService(repository.NewCreditRepository(database))
	scans := service.NewScanService(
		fakeProber{},
		fakeMapper{},
		fakeKeywords{},
		fakeSearchEvaluator{},
		credits,
		repository.NewEvaluationRepository(database),
		repository.NewWebsiteMapRepository(database),
		repository.NewAIFilesRepository(database),
	)
	return &testEnv{credits: credits, scans: scans}
}

var _ firecrawl.Mapper = fakeMapper{}
