package transport

import (
	"net/http"
	"time"

	"radar/pkg/config"
	"radar/pkg/helper"
	mw "radar/pkg/middleware"
	"radar/services/gateway/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// NewRouter: 게이트웨이 라우터 설정
func NewRouter(gatewayHandler *handler.GatewayHandler, cfg config.GatewayConfig, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = helper.EchoHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(mw.EchoRequestLogger(logger))

	// CORS 설정
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/health", gatewayHandler.HealthHandler)

	// IP별 요청 제한
	limiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RateLimit),
			Burst:     cfg.RateBurst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, helper.ErrorResponse{Error: "Unable to identify client"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, helper.ErrorResponse{Error: "Too many requests"})
		},
	})

	api := e.Group("/api", limiter)
	api.Any("/auth/*", gatewayHandler.ProxyService)
	api.Any("/users", gatewayHandler.ProxyService)
	api.Any("/users/*", gatewayHandler.ProxyService)
	api.Any("/interests", gatewayHandler.ProxyService)
	api.Any("/interests/*", gatewayHandler.ProxyService)

	return e
}
