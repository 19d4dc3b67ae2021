package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/invoice-dashboard/internal/model"
)

// InvoiceActions is the invoice side of the service layer.
type InvoiceActions interface {
	CreateInvoice(ctx context.Context, form *model.InvoiceForm) *model.Result
	UpdateInvoice(ctx context.Context, id string, form *model.InvoiceForm) *model.Result
	DeleteInvoice(ctx context.Context, id string) (*model.Result, error)
}

// InvoiceHandler serves the create, edit and delete invoice forms.
type InvoiceHandler struct {
	invoices InvoiceActions
}

func NewInvoiceHandler(invoices InvoiceActions) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

type UpdateInvoiceRequest struct {
	ID string `param:"id" json:"-"`
	model.InvoiceForm
}

type DeleteInvoiceRequest struct {
	ID string `param:"id" json:"-"`
}

func (h *InvoiceHandler) CreateInvoice(c echo.Context, req *model.InvoiceForm) (*model.Result, error) {
	return h.invoices.CreateInvoice(c.Request().Context(), req), nil
}

func (h *InvoiceHandler) UpdateInvoice(c echo.Context, req *UpdateInvoiceRequest) (*model.Result, error) {
	return h.invoices.UpdateInvoice(c.Request().Context(), req.ID, &req.InvoiceForm), nil
}

// DeleteInvoice returns the service error unchanged so a disabled delete
// surfaces as a server error.
func (h *InvoiceHandler) DeleteInvoice(c echo.Context, req *DeleteInvoiceRequest) (*model.Result, error) {
	return h.invoices.DeleteInvoice(c.Request().Context(), req.ID)
}
