package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/validation"
)

// ProviderCredentials names the email/password provider.
const ProviderCredentials = "credentials"

// Credentials is what the login form submits.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Provider signs a user in through the named provider and returns the new
// session.
type Provider interface {
	SignIn(ctx context.Context, provider string, creds Credentials) (*Session, error)
}

type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, user *model.User) (*Session, error)
}

// CredentialsProvider checks an email and password against the users table.
type CredentialsProvider struct {
	users    UserStore
	sessions SessionStore
}

func NewCredentialsProvider(users UserStore, sessions SessionStore) *CredentialsProvider {
	return &CredentialsProvider{users: users, sessions: sessions}
}

// SignIn verifies creds and opens a session.
//
// Malformed input, an unknown email and a wrong password all fail with
// CredentialsSignin. A failing user lookup is a CallbackRouteError. A
// failure to store the session is returned unclassified.
func (p *CredentialsProvider) SignIn(ctx context.Context, provider string, creds Credentials) (*Session, error) {
	if provider != ProviderCredentials {
		return nil, newError(InvalidProvider, fmt.Errorf("unknown provider %q", provider))
	}

	user, err := p.authorize(ctx, creds)
	if err != nil {
		return nil, err
	}

	session, err := p.sessions.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return session, nil
}

func (p *CredentialsProvider) authorize(ctx context.Context, creds Credentials) (*model.User, error) {
	if err := validation.Struct(&creds); err != nil {
		return nil, newError(CredentialsSignin, nil)
	}

	user, err := p.users.GetUserByEmail(ctx, creds.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, newError(CredentialsSignin, nil)
	}
	if err != nil {
		return nil, newError(CallbackRouteError, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return nil, newError(CredentialsSignin, nil)
	}

	return user, nil
}
