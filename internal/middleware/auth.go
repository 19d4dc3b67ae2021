package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/invoice-dashboard/internal/auth"
	"github.com/deppfellow/invoice-dashboard/internal/errs"
	"github.com/deppfellow/invoice-dashboard/internal/server"
	"github.com/deppfellow/invoice-dashboard/internal/validation"
)

// LoginPath is where unauthenticated dashboard requests are sent.
const LoginPath = "/login"

type SessionLoader interface {
	Get(ctx context.Context, token string) (*auth.Session, error)
}

// AuthMiddleware guards the dashboard with the session cookie.
type AuthMiddleware struct {
	sessions   SessionLoader
	cookieName string
}

func NewAuthMiddleware(s *server.Server, sessions SessionLoader) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: s.Config.Auth.CookieName,
	}
}

func unauthorized() error {
	return errs.NewUnauthorizedError("Unauthorized", false).
		WithAction(errs.NewRedirectAction("Please sign in to continue", LoginPath))
}

// RequireAuth loads the session named by the cookie. Requests without a
// live session get a 401 carrying a redirect to the login page.
func (a *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		log := GetLogger(c)

		cookie, err := c.Cookie(a.cookieName)
		if errors.Is(err, http.ErrNoCookie) || (err == nil && !validation.IsValidUUID(cookie.Value)) {
			log.Debug().
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("missing or malformed session cookie")
			return unauthorized()
		}
		if err != nil {
			return unauthorized()
		}

		session, err := a.sessions.Get(c.Request().Context(), cookie.Value)
		if errors.Is(err, auth.ErrSessionNotFound) {
			log.Info().
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("session expired or unknown")
			return unauthorized()
		}
		if err != nil {
			return fmt.Errorf("loading session: %w", err)
		}

		c.Set(SessionKey, session)
		c.Set(UserIDKey, session.UserID)

		userLogger := log.With().Str("user_id", session.UserID).Logger()
		setLogger(c, &userLogger)

		userLogger.Debug().
			Str("function", "RequireAuth").
			Dur("duration", time.Since(start)).
			Msg("user authenticated successfully")

		return next(c)
	}
}
