package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/i-am-zach/uiuc-grade-stats/internal/app"
	"github.com/i-am-zach/uiuc-grade-stats/internal/dataset"
	"github.com/i-am-zach/uiuc-grade-stats/internal/metrics"
	"github.com/i-am-zach/uiuc-grade-stats/internal/selection"
	"github.com/i-am-zach/uiuc-grade-stats/internal/server/handlers"
	"github.com/i-am-zach/uiuc-grade-stats/internal/server/middleware"
	"github.com/i-am-zach/uiuc-grade-stats/internal/server/ratelimit"
	"github.com/i-am-zach/uiuc-grade-stats/internal/server/router"
)

// RateLimitCleanupInterval is how often the API sweeps stale rate-limit windows.
const RateLimitCleanupInterval = time.Minute

// Options configures the HTTP handler.
type Options struct {
	RateLimit      int
	RateWindow     time.Duration
	SearchCacheTTL time.Duration
}

// NewHandler builds the routed handler over an explicit provider and store.
func NewHandler(data *dataset.Provider, store *selection.Store, m *metrics.Metrics, opts Options) (http.Handler, *ratelimit.Limiter) {
	limiter := ratelimit.NewLimiter(opts.RateLimit, opts.RateWindow)
	handler := handlers.New(data, store, m, opts.SearchCacheTTL)
	mw := middleware.NewManager(limiter, m)
	return router.New(handler, mw, m), limiter
}

// NewServer builds the HTTP server for a wired app.
func NewServer(a *app.App) (*http.Server, *ratelimit.Limiter) {
	cfg := a.Config
	handler, limiter := NewHandler(a.Data, a.Store, a.Metrics, Options{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     time.Duration(cfg.Server.RateWindow) * time.Second,
		SearchCacheTTL: cfg.Server.SearchCacheTTL,
	})

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, limiter
}
