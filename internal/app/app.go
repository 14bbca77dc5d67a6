package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/llmscore/llmscore/internal/config"
	"github.com/llmscore/llmscore/internal/db"
	"github.com/llmscore/llmscore/internal/evaluate"
	"github.com/llmscore/llmscore/internal/firecrawl"
	"github.com/llmscore/llmscore/internal/keywords"
	"github.com/llmscore/llmscore/internal/llm"
	"github.com/llmscore/llmscore/internal/probe"
	"github.com/llmscore/llmscore/internal/repository"
	"github.com/llmscore/llmscore/internal/service"
	"github.com/llmscore/llmscore/internal/service/payment"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	CreditService  *service.CreditService
	ScanService    *service.ScanService
	PaymentService payment.Provider
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	creditRepository := repository.NewCreditRepository(database)
	evaluationRepository := repository.NewEvaluationRepository(database)
	websiteMapRepository := repository.NewWebsiteMapRepository(database)
	aiFilesRepository := repository.NewAIFilesRepository(database)

	// External clients
	crawlClient := firecrawl.NewClient(cfg.FirecrawlAPIURL, cfg.FirecrawlAPIKey, cfg.ExternalTimeout)
	llmClient := llm.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	prober := probe.New(cfg.ExternalTimeout)

	// Services
	creditService := service.NewCreditService(creditRepository)

	paymentProvider, err := payment.NewProvider(cfg, creditService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment provider: %v", err)
	}

	keywordGenerator := keywords.NewGenerator(llmClient, crawlClient)
	searchScorer := evaluate.NewSearchScorer(crawlClient, llmClient)
	scanService := service.NewScanService(
		prober,
		crawlClient,
		keywordGenerator,
		searchScorer,
		creditService,
		evaluationRepository,
		websiteMapRepository,
		aiFilesRepository,
	)

	return &App{
		Cfg:            cfg,
		DB:             database,
		CreditService:  creditService,
		ScanService:    scanService,
		PaymentService: paymentProvider,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
