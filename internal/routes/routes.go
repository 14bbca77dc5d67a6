package routes

import (
	"net/http"

	"github.com/llmscore/llmscore/internal/app"
	"github.com/llmscore/llmscore/internal/handler"
	"github.com/llmscore/llmscore/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	scan := handler.NewScanHandler(app.ScanService)
	credits := handler.NewCreditsHandler(app.CreditService, app.PaymentService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /health", health.Health)

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Scans burn credits and fan out to external services, so they carry an
	// extra per-IP limiter on top of auth.
	rateLimiter := middleware.RateLimitScan()

	mux.HandleFunc("POST /api/check-files", rateLimiter(middleware.RequireAuth(scan.CheckFiles)))
	mux.HandleFunc("POST /api/map", rateLimiter(middleware.RequireAuth(scan.Map)))
	mux.HandleFunc("POST /api/evaluate", rateLimiter(middleware.RequireAuth(scan.Evaluate)))
	mux.HandleFunc("GET /api/evaluations", middleware.RequireAuth(scan.Evaluations))

	// Credits
	mux.HandleFunc("GET /api/credits", middleware.RequireAuth(credits.Balance))
	mux.HandleFunc("GET /api/credits/transactions", middleware.RequireAuth(credits.Transactions))
	mux.HandleFunc("GET /api/credits/stats", middleware.RequireAuth(credits.Stats))
	mux.HandleFunc("POST /api/credits/checkout", middleware.RequireAuth(credits.CreateCheckout))

	// ============================================================================
	// WEBHOOKS
	// ============================================================================

	// Payment provider webhook, authenticated by signature instead of JWT
	mux.HandleFunc("POST /webhooks/payment", credits.Webhook)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.Cfg.JWTSecret),
	)
}
