package dto

import "time"

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string                     `json:"status"`
	Timestamp time.Time                  `json:"timestamp"`
	Services  map[string]ComponentHealth `json:"services"`
}

// NewHealthResponse는 모든 구성 요소가 healthy일 때만 healthy로 판단합니다
func NewHealthResponse(now time.Time, services map[string]ComponentHealth) HealthResponse {
	status := StatusHealthy
	for _, component := range services {
		if component.Status != StatusHealthy {
			status = StatusUnhealthy
			break
		}
	}
	return HealthResponse{Status: status, Timestamp: now, Services: services}
}

func (h HealthResponse) Healthy() bool {
	return h.Status == StatusHealthy
}
