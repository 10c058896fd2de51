package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"radar/pkg/apperror"
	"radar/pkg/config"
	"radar/pkg/dto"
	"radar/pkg/helper"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const apiPrefix = "/api"

// 업스트림으로 전달하지 않는 hop-by-hop 헤더
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

type GatewayHandler struct {
	client    *http.Client
	upstreams map[string]string
	health    map[string]string
}

func NewGatewayHandler(cfg config.GatewayConfig) *GatewayHandler {
	authURL := strings.TrimRight(cfg.AuthServiceURL, "/")
	userURL := strings.TrimRight(cfg.UserServiceURL, "/")

	return &GatewayHandler{
		client: &http.Client{Timeout: cfg.UpstreamTimeout},
		upstreams: map[string]string{
			"auth":      authURL,
			"users":     userURL,
			"interests": userURL,
		},
		health: map[string]string{
			"auth": authURL + "/health",
			"user": userURL + "/health",
		},
	}
}

// ResolveTarget은 /api/<resource>/... 경로를 업스트림 URL로 변환합니다
func (h *GatewayHandler) ResolveTarget(path string) (string, bool) {
	if !strings.HasPrefix(path, apiPrefix+"/") {
		return "", false
	}

	firstPath, trimmedPath := helper.ExtractFirstPath(strings.TrimPrefix(path, apiPrefix))
	baseURL, ok := h.upstreams[firstPath]
	if !ok {
		return "", false
	}

	if trimmedPath == "/" {
		return baseURL + "/" + firstPath, true
	}
	return baseURL + "/" + firstPath + trimmedPath, true
}

// ProxyService - API를 프록시해주는 역할
func (h *GatewayHandler) ProxyService(c echo.Context) error {
	targetURL, ok := h.ResolveTarget(c.Request().URL.Path)
	if !ok {
		return echo.ErrNotFound
	}

	// 쿼리 스트링 추가
	if c.QueryString() != "" {
		targetURL += "?" + c.QueryString()
	}

	// 새로운 요청 생성 (전달받은 HTTP 메서드 유지)
	req, err := http.NewRequestWithContext(c.Request().Context(), c.Request().Method, targetURL, c.Request().Body)
	if err != nil {
		return helper.EchoError(c, apperror.Internal(fmt.Errorf("failed to create request: %w", err)))
	}

	// 원본 요청 헤더 복사
	copyHeaders(req.Header, c.Request().Header)
	req.Header.Set(echo.HeaderXForwardedFor, c.RealIP())
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		req.Header.Set(echo.HeaderXRequestID, id)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("target", targetURL).Msg("❌ Failed to send request")
		return helper.EchoError(c, apperror.Unavailable("Service unavailable", err))
	}
	defer resp.Body.Close()

	// 응답 헤더 복사. CORS 헤더는 게이트웨이에서 설정
	for key, values := range resp.Header {
		if strings.HasPrefix(key, "Access-Control-") {
			continue
		}
		for _, value := range values {
			c.Response().Header().Add(key, value)
		}
	}

	c.Response().WriteHeader(resp.StatusCode)

	// 응답 본문을 클라이언트에게 전달
	if _, err := io.Copy(c.Response().Writer, resp.Body); err != nil {
		log.Error().Err(err).Str("target", targetURL).Msg("❌ Failed to copy response body")
	}
	return nil
}

// HealthHandler - 업스트림 서비스 상태 확인
func (h *GatewayHandler) HealthHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		services = make(map[string]dto.ComponentHealth, len(h.health))
	)
	for name, url := range h.health {
		wg.Add(1)
		go func(name, url string) {
			defer wg.Done()
			result := h.probe(ctx, url)
			mu.Lock()
			services[name] = result
			mu.Unlock()
		}(name, url)
	}
	wg.Wait()

	health := dto.NewHealthResponse(time.Now().UTC(), services)
	if !health.Healthy() {
		return c.JSON(http.StatusServiceUnavailable, health)
	}
	return c.JSON(http.StatusOK, health)
}

func (h *GatewayHandler) probe(ctx context.Context, url string) dto.ComponentHealth {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return dto.ComponentHealth{Status: dto.StatusUnhealthy, Message: err.Error()}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return dto.ComponentHealth{Status: dto.StatusUnhealthy, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return dto.ComponentHealth{Status: dto.StatusUnhealthy, Message: fmt.Sprintf("health check returned %d", resp.StatusCode)}
	}
	return dto.ComponentHealth{Status: dto.StatusHealthy, Message: "Service is healthy"}
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		for _, value := range values {
			dst.Add(key, value)
		}
	}
	for _, key := range hopHeaders {
		dst.Del(key)
	}
}
