package transport

import (
	"radar/pkg/auth"
	"radar/pkg/helper"
	mw "radar/pkg/middleware"
	"radar/services/auth/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// RegisterAuthRoutes 설정
func RegisterAuthRoutes(e *echo.Echo, authHandler *handler.AuthHandler, healthHandler *handler.HealthHandler, verifier mw.TokenVerifier, revocations auth.RevocationStore, logger zerolog.Logger) {
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

	e.GET("/health", healthHandler.HealthHandler)

	g := e.Group("/auth")
	g.POST("/register", authHandler.RegisterHandler)
	g.POST("/login", authHandler.LoginHandler)

	authenticated := mw.EchoAuthenticate(verifier, revocations)
	g.GET("/me", authHandler.MeHandler, authenticated)
	g.POST("/logout", authHandler.LogoutHandler, authenticated)
}
