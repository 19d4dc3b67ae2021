package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/invoice-dashboard/internal/cache"
	"github.com/deppfellow/invoice-dashboard/internal/logger"
	"github.com/deppfellow/invoice-dashboard/internal/model"
)

// Form-level messages returned with the invoice form state.
const (
	MsgCreateInvalid = "Missing Fields Failed to Create Invoice"
	MsgCreateFailed  = "Failed to Create Invoice"
	MsgUpdateInvalid = "Update Form not correctly filled"
	MsgUpdateFailed  = "Failed to Update Invoice"
	MsgDeleteFailed  = "Failed to delete Invoice"
)

// ErrDeleteDisabled is returned by DeleteInvoice while deletion is switched
// off. It is not a form state: it surfaces as a server error.
var ErrDeleteDisabled = errors.New(MsgDeleteFailed)

type InvoiceStore interface {
	Create(ctx context.Context, params model.CreateInvoiceParams) (*model.Invoice, error)
	Update(ctx context.Context, id string, params model.UpdateInvoiceParams) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type Revalidator interface {
	RevalidatePath(ctx context.Context, path string) error
}

// Notifier announces newly created invoices.
type Notifier interface {
	EnqueueInvoiceCreated(ctx context.Context, invoice *model.Invoice) error
}

// InvoiceService validates invoice forms, writes them with a single
// statement and invalidates the invoice listing.
type InvoiceService struct {
	store       InvoiceStore
	revalidator Revalidator
	notifier    Notifier
	logger      *zerolog.Logger

	now           func() time.Time
	deleteEnabled bool
}

// InvoiceServiceOption customises an InvoiceService.
type InvoiceServiceOption func(*InvoiceService)

// WithClock replaces time.Now, the source of new invoice dates.
func WithClock(now func() time.Time) InvoiceServiceOption {
	return func(s *InvoiceService) { s.now = now }
}

// WithNotifier sends a notification for every created invoice.
func WithNotifier(n Notifier) InvoiceServiceOption {
	return func(s *InvoiceService) { s.notifier = n }
}

// WithDeleteEnabled lifts the guard that makes DeleteInvoice fail.
func WithDeleteEnabled(enabled bool) InvoiceServiceOption {
	return func(s *InvoiceService) { s.deleteEnabled = enabled }
}

func NewInvoiceService(store InvoiceStore, revalidator Revalidator, log *zerolog.Logger, opts ...InvoiceServiceOption) *InvoiceService {
	s := &InvoiceService{
		store:       store,
		revalidator: revalidator,
		logger:      log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InvoiceService) log(ctx context.Context) *zerolog.Logger {
	return logger.FromContext(ctx, s.logger)
}

// CreateInvoice validates form and inserts it dated today (UTC). On success
// the listing is revalidated and the result redirects to it.
func (s *InvoiceService) CreateInvoice(ctx context.Context, form *model.InvoiceForm) *model.Result {
	fields, fieldErrors := form.Parse()
	if fieldErrors != nil {
		return model.Invalid(fieldErrors, MsgCreateInvalid)
	}

	log := s.log(ctx)

	invoice, err := s.store.Create(ctx, fields.CreateParams(s.now()))
	if err != nil {
		log.Error().Err(err).Str("customer_id", fields.CustomerID).Msg("failed to create invoice")
		return model.Failed(MsgCreateFailed)
	}

	if err := s.revalidator.RevalidatePath(ctx, cache.InvoicesPath); err != nil {
		log.Error().Err(err).Str("invoice_id", invoice.ID).Msg("failed to revalidate invoices after create")
		return model.Failed(MsgCreateFailed)
	}

	if s.notifier != nil {
		if err := s.notifier.EnqueueInvoiceCreated(ctx, invoice); err != nil {
			log.Warn().Err(err).Str("invoice_id", invoice.ID).Msg("failed to enqueue invoice notification")
		}
	}

	log.Info().
		Str("invoice_id", invoice.ID).
		Int64("amount", invoice.Amount).
		Str("status", string(invoice.Status)).
		Msg("invoice created")

	return model.Redirect(cache.InvoicesPath)
}

// UpdateInvoice validates form and rewrites customer, amount and status of
// invoice id. An id that matches no row still counts as success.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, form *model.InvoiceForm) *model.Result {
	fields, fieldErrors := form.Parse()
	if fieldErrors != nil {
		return model.Invalid(fieldErrors, MsgUpdateInvalid)
	}

	log := s.log(ctx).With().Str("invoice_id", id).Logger()

	affected, err := s.store.Update(ctx, id, fields.UpdateParams())
	if err != nil {
		log.Error().Err(err).Msg("failed to update invoice")
		return model.Failed(MsgUpdateFailed)
	}
	if affected == 0 {
		log.Warn().Msg("update matched no invoice")
	}

	if err := s.revalidator.RevalidatePath(ctx, cache.InvoicesPath); err != nil {
		log.Error().Err(err).Msg("failed to revalidate invoices after update")
		return model.Failed(MsgUpdateFailed)
	}

	return model.Redirect(cache.InvoicesPath)
}

// DeleteInvoice removes invoice id. While deletion is disabled it returns
// ErrDeleteDisabled without touching the store. Otherwise the listing is
// revalidated and the result stays on the current page.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) (*model.Result, error) {
	if !s.deleteEnabled {
		return nil, ErrDeleteDisabled
	}

	log := s.log(ctx).With().Str("invoice_id", id).Logger()

	affected, err := s.store.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete invoice")
		return model.Failed(MsgDeleteFailed), nil
	}
	if affected == 0 {
		log.Warn().Msg("delete matched no invoice")
	}

	if err := s.revalidator.RevalidatePath(ctx, cache.InvoicesPath); err != nil {
		log.Error().Err(err).Msg("failed to revalidate invoices after delete")
		return model.Failed(MsgDeleteFailed), nil
	}

	return model.Done(), nil
}
