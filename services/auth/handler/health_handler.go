package handler

import (
	"context"
	"net/http"
	"time"

	"radar/pkg/dto"

	"github.com/labstack/echo/v4"
)

const pingTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	database Pinger
}

func NewHealthHandler(database Pinger) *HealthHandler {
	return &HealthHandler{database: database}
}

func (h *HealthHandler) HealthHandler(c echo.Context) error {
	database := dto.ComponentHealth{Status: dto.StatusHealthy, Message: "Database connection is healthy"}
	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()

	if err := h.database.Ping(ctx); err != nil {
		database = dto.ComponentHealth{Status: dto.StatusUnhealthy, Message: err.Error()}
	}

	health := dto.NewHealthResponse(time.Now().UTC(), map[string]dto.ComponentHealth{"database": database})
	if !health.Healthy() {
		return c.JSON(http.StatusServiceUnavailable, health)
	}
	return c.JSON(http.StatusOK, health)
}
