package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/invoice-dashboard/internal/auth"
	"github.com/deppfellow/invoice-dashboard/internal/logger"
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

const (
	// UserIDKey holds the signed-in user id in the echo context.
	UserIDKey = "user_id"

	// SessionKey holds the *auth.Session in the echo context.
	SessionKey = "session"

	// LoggerKey holds the request-scoped logger in the echo context.
	LoggerKey = "logger"
)

// ContextEnhancer builds the request-scoped logger.
type ContextEnhancer struct {
	logger *zerolog.Logger
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{logger: s.Logger}
}

// EnhanceContext tags the request logger with request id, method, path, ip
// and New Relic trace ids, and makes it reachable from both the echo context
// and the request context.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if userID := GetUserID(c); userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}

			setLogger(c, &contextLogger)

			return next(c)
		}
	}
}

func setLogger(c echo.Context, l *zerolog.Logger) {
	c.Set(LoggerKey, l)
	c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context(), l)))
}

// GetUserID returns the id of the signed-in user, or "".
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetSession returns the session attached by RequireAuth.
func GetSession(c echo.Context) (*auth.Session, bool) {
	session, ok := c.Get(SessionKey).(*auth.Session)
	return session, ok && session != nil
}

// GetLogger retrieves the request-scoped logger from the echo context, or a
// no-op logger when EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}

	l := zerolog.Nop()
	return &l
}
