package handler

import (
	"net/http"

	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/ratelimit"
	"github.com/portfolio/backend/pkg/auth"
)

// RouterConfig wires the HTTP surface. Limiter and Metrics may be nil.
type RouterConfig struct {
	Handler     *Handler
	Submissions *SubmissionHandler
	Content     *ContentHandler
	AdminToken  string
	Limiter     ratelimit.Limiter
	ClientIP    ClientIP
	Metrics     *metrics.Metrics
}

// NewRouter returns the mux wrapped as RequestLogger(SecurityHeaders(CORS(mux))).
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", cfg.Handler.Health)
	mux.Handle("GET /metrics", cfg.Metrics.Handler())
	mux.HandleFunc("OPTIONS /api/", cfg.Handler.Preflight)

	// contact form: public, rate limited
	submit := http.Handler(http.HandlerFunc(cfg.Submissions.Submit))
	if cfg.Limiter != nil {
		submit = RateLimit(cfg.Limiter, cfg.ClientIP)(submit)
	}
	mux.Handle("POST /api/submit", submit)
	mux.HandleFunc("OPTIONS /api/submit", cfg.Submissions.SubmitPreflight)

	// admin API: bearer token required
	requireAdmin := auth.RequireBearer(cfg.AdminToken)
	mux.Handle("GET /api/submissions", requireAdmin(http.HandlerFunc(cfg.Submissions.List)))
	mux.Handle("PATCH /api/submissions", requireAdmin(http.HandlerFunc(cfg.Submissions.Update)))

	if cfg.Content != nil {
		mux.HandleFunc("GET /api/nav", cfg.Content.Nav)
		mux.HandleFunc("GET /api/search", cfg.Content.Search)
		mux.HandleFunc("GET /api/blog", cfg.Content.BlogList)
		mux.HandleFunc("GET /api/blog/{slug}", cfg.Content.BlogPost)
		mux.HandleFunc("GET /api/projects", cfg.Content.Projects)
	}

	return RequestLogger(cfg.Metrics)(SecurityHeaders(cfg.Handler.CORS(mux)))
}
