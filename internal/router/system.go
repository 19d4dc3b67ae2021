package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/invoice-dashboard/internal/handler"
)

// registerSystemRoutes mounts the endpoints that are not part of the
// dashboard: health, docs and the static docs assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
