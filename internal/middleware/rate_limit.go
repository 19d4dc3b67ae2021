package middleware

import (
	"math"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/newrelic"
	"golang.org/x/time/rate"

	"github.com/deppfellow/invoice-dashboard/internal/errs"
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

type RateLimitMiddleware struct {
	nrApp *newrelic.Application
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{nrApp: s.LoggerService.GetApplication()}
}

// RecordRateLimitHit reports a throttled request to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.nrApp != nil {
		r.nrApp.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}

// PerIP throttles each client IP to perSecond requests per second, with a
// burst of the same size. A non-positive rate disables throttling.
func (r *RateLimitMiddleware) PerIP(perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     int(math.Ceil(perSecond)),
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Unable to identify client", false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("client", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Too many attempts, please try again later")
		},
	})
}
