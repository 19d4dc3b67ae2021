// Package errs defines custom error types and utilities.
//
//   - Return consistent error shapes to API clients (JSON).
//   - Support field-level validation errors for forms.
//   - Support "action hints" (like redirect) that frontends can interpret.
//   - Provide errors that play nicely with Go's standard errors package.
package errs

import (
	"sort"
	"strings"
)

// FieldError represents a single field-level validation error.
//
//	{ "field": "amount", "error": "Please enter an amount greater than $0" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// FieldErrors groups validation messages by form field name. A field may
// carry several messages.
//
//	{ "customerId": ["Please select a customer"], "amount": ["..."] }
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Has reports whether field has at least one message.
func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// List flattens the map into FieldError values ordered by field name.
func (fe FieldErrors) List() []FieldError {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []FieldError
	for _, field := range fields {
		for _, msg := range fe[field] {
			out = append(out, FieldError{Field: field, Error: msg})
		}
	}
	return out
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client to navigate to Action.Value.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional "what the client should do next" instruction,
// e.g. "redirect to /login".
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// NewRedirectAction builds a redirect Action.
func NewRedirectAction(message, to string) *Action {
	return &Action{Type: ActionTypeRedirect, Message: message, Value: to}
}

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: lets the client show Message verbatim.
//   - Errors: per-field errors (validation).
//   - Action: optional client instruction.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. Code and Status are not
// compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithAction returns a copy of e carrying action.
func (e *HTTPError) WithAction(action *Action) *HTTPError {
	cp := *e
	cp.Action = action
	return &cp
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
