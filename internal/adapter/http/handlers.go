package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// Health is the liveness probe. It reports nothing about MySQL or Redis;
// those surface through request errors and /metrics.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "edfund-backend",
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
