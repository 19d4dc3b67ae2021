package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/invoice-dashboard/internal/middleware"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/validation"
)

// FormFunc is a typed form action. It receives the bound request and
// returns the action's outcome. A non-nil error is handed to the global
// error handler.
type FormFunc[Req any] func(c echo.Context, req *Req) (*model.Result, error)

// ResponseHandler defines how a successful handler result is written to
// the HTTP response and which attributes it adds to the transaction.
type ResponseHandler interface {
	// Handle writes the HTTP response for the given result.
	Handle(c echo.Context, result any) error

	// GetOperation names the handler type in logs.
	GetOperation() string

	// AddAttributes attaches New Relic attributes based on the result.
	AddAttributes(txn *newrelic.Transaction, result any)
}

// FormResponseHandler writes a model.Result:
//
//	Redirect -> 303 See Other
//	Invalid  -> 422 with the form state
//	Failed   -> failedStatus with the form state
//	Done     -> 204
type FormResponseHandler struct {
	failedStatus int
}

func (h FormResponseHandler) Handle(c echo.Context, result any) error {
	res, ok := result.(*model.Result)
	if !ok || res == nil {
		return fmt.Errorf("form action returned %T, want *model.Result", result)
	}

	switch res.Outcome {
	case model.OutcomeRedirect:
		return c.Redirect(http.StatusSeeOther, res.RedirectTo)
	case model.OutcomeInvalid:
		return c.JSON(http.StatusUnprocessableEntity, res.State)
	case model.OutcomeFailed:
		return c.JSON(h.failedStatus, res.State)
	default:
		return c.NoContent(http.StatusNoContent)
	}
}

func (h FormResponseHandler) GetOperation() string {
	return "form_action"
}

func (h FormResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	if txn == nil {
		return
	}
	if res, ok := result.(*model.Result); ok && res != nil {
		txn.AddAttribute("form.outcome", res.Outcome.String())
	}
}

// handleRequest is the shared pipeline behind every form route: bind a
// fresh Req, run the action, log and trace, write the response.
//
// Field rules are not checked here. Each action validates its own input so
// it can answer with form state instead of an error.
func handleRequest[Req any](
	c echo.Context,
	handler FormFunc[Req],
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	path := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", path)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", c.Request().Method).
		Str("route", path).
		Logger()

	logger.Info().Msg("handling request")

	req := new(Req)
	if err := validation.Bind(c, req); err != nil {
		logger.Warn().Err(err).Msg("request binding failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("binding.status", "failed")
		}
		return err
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}
	if result == nil {
		return fmt.Errorf("form action %s returned no result", path)
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Str("outcome", result.Outcome.String()).
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed")

	return responseHandler.Handle(c, result)
}

// HandleForm wraps a form action into an echo.HandlerFunc. failedStatus is
// the status used for a Failed result.
//
//	router.POST("/dashboard/invoices/create", handler.HandleForm(h.Invoice.CreateInvoice, http.StatusInternalServerError))
func HandleForm[Req any](handler FormFunc[Req], failedStatus int) echo.HandlerFunc {
	responseHandler := FormResponseHandler{failedStatus: failedStatus}
	return func(c echo.Context) error {
		return handleRequest(c, handler, responseHandler)
	}
}
