package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/invoice-dashboard/internal/auth"
	"github.com/deppfellow/invoice-dashboard/internal/middleware"
	"github.com/deppfellow/invoice-dashboard/internal/model"
)

type Authenticator interface {
	Authenticate(ctx context.Context, form *model.LoginForm) (*model.Result, *auth.Session, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler serves the login form and sign-out.
type AuthHandler struct {
	auth         Authenticator
	cookieName   string
	secureCookie bool
}

func NewAuthHandler(a Authenticator, cookieName string, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: a, cookieName: cookieName, secureCookie: secureCookie}
}

type LogoutRequest struct{}

// Login signs in and, on success, sets the session cookie before the
// redirect is written.
func (h *AuthHandler) Login(c echo.Context, req *model.LoginForm) (*model.Result, error) {
	result, session, err := h.auth.Authenticate(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}

	if session != nil {
		c.SetCookie(h.cookie(session.Token, session.ExpiresAt))
	}

	return result, nil
}

// Logout ends the current session, if any, and clears the cookie. It always
// lands on the login page.
func (h *AuthHandler) Logout(c echo.Context, _ *LogoutRequest) (*model.Result, error) {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.auth.Logout(c.Request().Context(), cookie.Value); err != nil {
			return nil, err
		}
	}

	expired := h.cookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	c.SetCookie(expired)

	return model.Redirect(middleware.LoginPath), nil
}

func (h *AuthHandler) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
