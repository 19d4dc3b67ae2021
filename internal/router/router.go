// Package router builds the echo instance: serializer, error handler,
// global middleware and every route group.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/invoice-dashboard/internal/handler"
	"github.com/deppfellow/invoice-dashboard/internal/middleware"
	"github.com/deppfellow/invoice-dashboard/internal/server"
	"github.com/deppfellow/invoice-dashboard/internal/service"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Sessions)

	router := echo.New()
	router.HideBanner = true
	router.JSONSerializer = server.JSONSerializer{}
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// RequestID runs first so the id reaches the trace attributes and the
	// request-scoped logger.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)
	registerAuthRoutes(router, h, middlewares, s.Config.Auth.LoginRateLimit)
	registerInvoiceRoutes(router, h, middlewares)

	return router
}

func registerAuthRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares, loginRate float64) {
	r.POST("/login", handler.HandleForm(h.Auth.Login, http.StatusUnauthorized), m.RateLimit.PerIP(loginRate))
	r.POST("/logout", handler.HandleForm(h.Auth.Logout, http.StatusInternalServerError))
}

// registerInvoiceRoutes mounts the invoice form actions under the
// authenticated dashboard group.
func registerInvoiceRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	dashboard := r.Group("/dashboard", m.Auth.RequireAuth)

	invoices := dashboard.Group("/invoices")
	invoices.POST("/create", handler.HandleForm(h.Invoice.CreateInvoice, http.StatusInternalServerError))
	invoices.POST("/:id/edit", handler.HandleForm(h.Invoice.UpdateInvoice, http.StatusInternalServerError))
	invoices.POST("/:id/delete", handler.HandleForm(h.Invoice.DeleteInvoice, http.StatusInternalServerError))
}
