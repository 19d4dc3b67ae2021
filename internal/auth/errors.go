// Package auth signs dashboard users in.
//
// A Provider verifies credentials and opens a session. Sign-in failures are
// reported as *Error values carrying an ErrorType, so callers can tell a
// rejected password from a broken provider without inspecting messages.
// Unknown email and wrong password are deliberately indistinguishable.
package auth

import (
	"errors"
	"fmt"
)

// ErrorType classifies a sign-in failure.
type ErrorType string

const (
	// CredentialsSignin: the credentials were rejected.
	CredentialsSignin ErrorType = "CredentialsSignin"
	// CallbackRouteError: the provider failed while checking credentials.
	CallbackRouteError ErrorType = "CallbackRouteError"
	// InvalidProvider: no provider is registered under the requested name.
	InvalidProvider ErrorType = "InvalidProvider"
)

// Error is a classified sign-in failure.
type Error struct {
	Type ErrorType
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %v", e.Type, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(t ErrorType, err error) *Error {
	return &Error{Type: t, Err: err}
}

// TypeOf returns the ErrorType of the first *Error in err's chain.
func TypeOf(err error) (ErrorType, bool) {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Type, true
	}
	return "", false
}
