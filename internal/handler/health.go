package handler

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/invoice-dashboard/internal/middleware"
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

// HealthCheck checks one dependency.
type HealthCheck func(ctx context.Context) error

// HealthHandler reports whether the service and its dependencies are
// reachable. Any failing check turns the response into a 503.
type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
	env     string
	nrApp   *newrelic.Application
}

// NewHealthHandler registers the database and Redis checks named in the
// health check config. With health checks disabled only liveness is
// reported.
func NewHealthHandler(s *server.Server) *HealthHandler {
	hc := s.Config.Observability.HealthChecks

	available := map[string]HealthCheck{
		"database": s.DB.Ping,
		"redis": func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		},
	}

	checks := make(map[string]HealthCheck)
	if hc.Enabled {
		for name, check := range available {
			if len(hc.Checks) == 0 || slices.Contains(hc.Checks, name) {
				checks[name] = check
			}
		}
	}

	return &HealthHandler{
		checks:  checks,
		timeout: hc.Timeout,
		env:     s.Config.Primary.Env,
		nrApp:   s.LoggerService.GetApplication(),
	}
}

func (h *HealthHandler) recordError(attrs map[string]any) {
	if h.nrApp != nil {
		attrs["operation"] = "health_check"
		h.nrApp.RecordCustomEvent("HealthCheckError", attrs)
	}
}

// CheckHealth returns 200 when every check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any, len(h.checks))
	isHealthy := true

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := h.checks[name](ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err != nil {
			isHealthy = false
			checks[name] = map[string]any{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Str("check", name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordError(map[string]any{
				"check_type":       name,
				"error_type":       name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		checks[name] = map[string]any{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}
		logger.Debug().
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")

		h.recordError(map[string]any{
			"check_type":        "overall",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}
