package middleware

import (
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

// Middlewares groups every middleware component used by the router.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Auth            *AuthMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
}

// NewMiddlewares builds all middleware components. New Relic backed pieces
// degrade into no-ops when the agent is not configured.
func NewMiddlewares(s *server.Server, sessions SessionLoader) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s, sessions),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
