package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

// DefaultOpenAPIUIPath is the docs page served by ServeOpenAPIUI. It loads
// /static/openapi.json in the browser.
const DefaultOpenAPIUIPath = "static/openapi.html"

// OpenAPIHandler serves the API docs UI.
type OpenAPIHandler struct {
	uiPath string
}

func NewOpenAPIHandler() *OpenAPIHandler {
	return &OpenAPIHandler{uiPath: DefaultOpenAPIUIPath}
}

// ServeOpenAPIUI serves the docs page with caching disabled so edits show
// up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := os.ReadFile(h.uiPath)

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(page)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
