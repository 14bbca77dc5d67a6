package service

import (
	"context"
	"log/slog"

	"github.com/llmscore/llmscore/internal/evaluate"
	"github.com/llmscore/llmscore/internal/firecrawl"
	"github.com/llmscore/llmscore/internal/linkmap"
	"github.com/llmscore/llmscore/internal/model"
	"github.com/llmscore/llmscore/internal/repository"
	"github.com/llmscore/llmscore/internal/validation"
)

// FileProber probes well-known AI-discovery paths on an origin.
type FileProber interface {
	CheckFiles(ctx context.Context, origin string) []model.FileCheck
}

// KeywordGenerator derives search keywords for a site.
type KeywordGenerator interface {
	Generate(ctx context.Context, url, domain string) ([]string, string)
}

// SearchEvaluator scores search visibility and narrates the result.
type SearchEvaluator interface {
	Score(ctx context.Context, domain string, kws []string, source string) (int, string, model.SearchPerformance)
	Narrative(ctx context.Context, domain string, perf model.SearchPerformance) string
}

// ScanService runs the scan pipelines and owns their credit gating: check
// before the work, consume after it succeeds. Persistence is best effort;
// a failed write never voids a scan the user already paid for.
type ScanService struct {
	prober    FileProber
	mapper    firecrawl.Mapper
	keywords  KeywordGenerator
	search    SearchEvaluator
	credits   *CreditService
	evalRepo  repository.EvaluationRepository
	mapRepo   repository.WebsiteMapRepository
	filesRepo repository.AIFilesRepository
}

func NewScanService(
	prober FileProber,
	mapper firecrawl.Mapper,
	keywords KeywordGenerator,
	search SearchEvaluator,
	credits *CreditService,
	evalRepo repository.EvaluationRepository,
	mapRepo repository.WebsiteMapRepository,
	filesRepo repository.AIFilesRepository,
) *ScanService {
	return &ScanService{
		prober:    prober,
		mapper:    mapper,
		keywords:  keywords,
		search:    search,
		credits:   credits,
		evalRepo:  evalRepo,
		mapRepo:   mapRepo,
		filesRepo: filesRepo,
	}
}

// CheckFiles probes the AI-discovery files on a site. Costs one basic credit.
func (s *ScanService) CheckFiles(ctx context.Context, userID, rawURL string) (*model.AIFilesCheck, error) {
	url, domain, origin, err := s.resolveTarget(rawURL)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCredits(userID, model.ScanTypeBasic); err != nil {
		return nil, err
	}

	files := s.prober.CheckFiles(ctx, origin)

	if _, err := s.credits.Consume(userID, model.ScanTypeBasic, url); err != nil {
		return nil, err
	}

	check := &model.AIFilesCheck{
		UserID:          userID,
		URL:             url,
		Domain:          domain,
		Files:           files,
		CreditsConsumed: model.ScanCostBasic,
		ScanType:        model.ScanTypeBasic,
	}
	if err := s.filesRepo.Upsert(check); err != nil {
		slog.Error("failed to store ai files check", "user_id", userID, "url", url, "error", err)
	}

	return check, nil
}

// MapWebsite enumerates a site's links through the crawl service and computes
// page statistics. Costs one basic credit.
func (s *ScanService) MapWebsite(ctx context.Context, userID, rawURL string) (*model.WebsiteMap, error) {
	url, domain, _, err := s.resolveTarget(rawURL)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCredits(userID, model.ScanTypeBasic); err != nil {
		return nil, err
	}

	links, err := s.mapper.Map(ctx, url)
	if err != nil {
		return nil, err
	}
	stats := linkmap.Summarize(links)

	if _, err := s.credits.Consume(userID, model.ScanTypeBasic, url); err != nil {
		return nil, err
	}

	wm := &model.WebsiteMap{
		UserID:              userID,
		URL:                 url,
		Domain:              domain,
		Links:               links,
		TotalLinks:          stats.TotalLinks,
		HTMLPages:           stats.HTMLPages,
		MissingTitles:       stats.MissingTitles,
		MissingDescriptions: stats.MissingDescriptions,
		CreditsConsumed:     model.ScanCostBasic,
		ScanType:            model.ScanTypeBasic,
	}
	if err := s.mapRepo.Upsert(wm); err != nil {
		slog.Error("failed to store website map", "user_id", userID, "url", url, "error", err)
	}

	return wm, nil
}

// Evaluate runs the full scoring pipeline: probe, map, keyword generation,
// search visibility, then the weighted composite. The whole run costs one
// scan of the given type, consumed once after the pipeline finishes.
func (s *ScanService) Evaluate(ctx context.Context, userID, rawURL, scanType string) (*model.Evaluation, error) {
	if scanType != model.ScanTypePremium {
		scanType = model.ScanTypeBasic
	}

	url, domain, origin, err := s.resolveTarget(rawURL)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCredits(userID, scanType); err != nil {
		return nil, err
	}

	files := s.prober.CheckFiles(ctx, origin)

	links, err := s.mapper.Map(ctx, url)
	if err != nil {
		// Scoring degrades to its no-links defaults rather than failing the scan.
		slog.Warn("link map failed during evaluation", "url", url, "error", err)
		links = nil
	}

	kws, source := s.keywords.Generate(ctx, url, domain)

	searchScore, searchReasoning, perf := s.search.Score(ctx, domain, kws, source)
	// The LLM narrative extends the threshold reasoning; insights stay the
	// per-keyword position list.
	searchReasoning = searchReasoning + "\n\n" + s.search.Narrative(ctx, domain, perf)

	contentScore, contentReasoning := evaluate.ContentQuality(links)
	techScore, techReasoning := evaluate.TechnicalSEO(links)
	aiScore, aiReasoning := evaluate.AIOptimization(files)

	if _, err := s.credits.Consume(userID, scanType, url); err != nil {
		return nil, err
	}

	eval := &model.Evaluation{
		UserID:             userID,
		URL:                url,
		Domain:             domain,
		OverallScore:       evaluate.Overall(searchScore, contentScore, techScore, aiScore),
		SearchVisibility:   searchScore,
		ContentQuality:     contentScore,
		TechnicalSEO:       techScore,
		AIOptimization:     aiScore,
		SearchReasoning:    searchReasoning,
		ContentReasoning:   contentReasoning,
		TechnicalReasoning: techReasoning,
		AIReasoning:        aiReasoning,
		SearchPerformance:  perf,
		Recommendations:    evaluate.Recommendations(searchScore, contentScore, techScore, aiScore),
		CreditsConsumed:    model.ScanCost(scanType),
		ScanType:           scanType,
	}
	if err := s.evalRepo.Upsert(eval); err != nil {
		slog.Error("failed to store evaluation", "user_id", userID, "url", url, "error", err)
	}

	return eval, nil
}

// Evaluations returns the user's stored scan results, newest first.
func (s *ScanService) Evaluations(userID string, limit int) ([]*model.Evaluation, error) {
	return s.evalRepo.ByUser(userID, limit)
}

func (s *ScanService) resolveTarget(rawURL string) (url, domain, origin string, err error) {
	url, err = validation.NormalizeURL(rawURL)
	if err != nil {
		return "", "", "", err
	}
	domain, err = validation.Domain(url)
	if err != nil {
		return "", "", "", err
	}
	origin, err = validation.Origin(url)
	if err != nil {
		return "", "", "", err
	}
	return url, domain, origin, nil
}

// ensureCredits rejects a scan the balance cannot cover before any external
// calls happen. Consume remains the authoritative gate afterwards.
func (s *ScanService) ensureCredits(userID, scanType string) error {
	check, err := s.credits.CheckForScan(userID, scanType)
	if err != nil {
		return err
	}
	if !check.HasEnoughCredits {
		return &InsufficientCreditsError{Check: *check}
	}
	return nil
}
