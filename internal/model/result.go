package model

import "github.com/deppfellow/invoice-dashboard/internal/errs"

// State is what a form action hands back to the form for re-rendering.
//
//	{ "errors": { "amount": ["..."] }, "message": "..." }
type State struct {
	Errors  errs.FieldErrors `json:"errors,omitempty"`
	Message string           `json:"message,omitempty"`
}

// Outcome discriminates the variants of Result.
type Outcome int

const (
	// OutcomeDone: the action succeeded and the client stays where it is.
	OutcomeDone Outcome = iota
	// OutcomeRedirect: the action succeeded, navigate to Result.RedirectTo.
	OutcomeRedirect
	// OutcomeInvalid: validation failed, nothing was written.
	OutcomeInvalid
	// OutcomeFailed: the write (or its follow-up) failed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the value every form action returns. The caller interprets it:
// follow the redirect, or re-render the form with State.
type Result struct {
	Outcome    Outcome
	RedirectTo string
	State      State
}

// Redirect ends an action by navigating to path.
func Redirect(path string) *Result {
	return &Result{Outcome: OutcomeRedirect, RedirectTo: path}
}

// Invalid reports field errors together with a form-level message.
func Invalid(fieldErrors errs.FieldErrors, message string) *Result {
	return &Result{Outcome: OutcomeInvalid, State: State{Errors: fieldErrors, Message: message}}
}

// Failed reports a failure message.
func Failed(message string) *Result {
	return &Result{Outcome: OutcomeFailed, State: State{Message: message}}
}

// Done reports success without navigation.
func Done() *Result {
	return &Result{Outcome: OutcomeDone}
}
