package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/invoice-dashboard/internal/auth"
	"github.com/deppfellow/invoice-dashboard/internal/logger"
	"github.com/deppfellow/invoice-dashboard/internal/model"
)

const (
	MsgInvalidCredentials = "Invalid Credentials"
	MsgSomethingWentWrong = "Something Went wrong"

	// DefaultLoginRedirect is where a successful sign-in lands without an
	// explicit redirectTo.
	DefaultLoginRedirect = "/dashboard"
)

type SessionEnder interface {
	Delete(ctx context.Context, token string) error
}

// AuthService signs users in and out.
type AuthService struct {
	provider auth.Provider
	sessions SessionEnder
	logger   *zerolog.Logger
}

func NewAuthService(provider auth.Provider, sessions SessionEnder, log *zerolog.Logger) *AuthService {
	return &AuthService{provider: provider, sessions: sessions, logger: log}
}

// Authenticate signs in with the credentials provider.
//
// Rejected credentials and other classified provider failures come back as
// a Failed result. Any other error is returned as is.
func (s *AuthService) Authenticate(ctx context.Context, form *model.LoginForm) (*model.Result, *auth.Session, error) {
	session, err := s.provider.SignIn(ctx, auth.ProviderCredentials, auth.Credentials{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		errType, ok := auth.TypeOf(err)
		if !ok {
			return nil, nil, err
		}

		logger.FromContext(ctx, s.logger).Info().
			Str("auth_error", string(errType)).
			Msg("sign-in rejected")

		if errType == auth.CredentialsSignin {
			return model.Failed(MsgInvalidCredentials), nil, nil
		}
		return model.Failed(MsgSomethingWentWrong), nil, nil
	}

	return model.Redirect(SafeRedirect(form.RedirectTo)), session, nil
}

// Logout ends the session behind token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// SafeRedirect returns target when it is a local absolute path, the
// default landing page otherwise.
func SafeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return DefaultLoginRedirect
	}

	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return DefaultLoginRedirect
	}
	return target
}
