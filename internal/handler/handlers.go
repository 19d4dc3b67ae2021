package handler

import (
	"github.com/deppfellow/invoice-dashboard/internal/server"
	"github.com/deppfellow/invoice-dashboard/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Auth    *AuthHandler
	Invoice *InvoiceHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Auth: NewAuthHandler(
			services.Auth,
			s.Config.Auth.CookieName,
			s.Config.IsProduction(),
		),
		Invoice: NewInvoiceHandler(services.Invoices),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(),
	}
}
