package handler

import (
	"context"
	"net/http"
	"time"

	"radar/pkg/dto"
	"radar/pkg/helper"
)

const pingTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	database Pinger
	now      func() time.Time
}

func NewHealthHandler(database Pinger) *HealthHandler {
	return &HealthHandler{database: database, now: time.Now}
}

// 헬스 체크. DB 연결 실패 시 503
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	database := dto.ComponentHealth{Status: dto.StatusHealthy, Message: "Database connection is healthy"}
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.database.Ping(ctx); err != nil {
		database = dto.ComponentHealth{Status: dto.StatusUnhealthy, Message: err.Error()}
	}

	health := dto.NewHealthResponse(h.now().UTC(), map[string]dto.ComponentHealth{"database": database})
	status := http.StatusOK
	if !health.Healthy() {
		status = http.StatusServiceUnavailable
	}
	helper.WriteJSON(w, status, health)
}
