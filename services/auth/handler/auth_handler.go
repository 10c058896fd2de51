package handler

import (
	"net/http"

	"radar/pkg/apperror"
	"radar/pkg/dto"
	"radar/pkg/helper"
	"radar/pkg/middleware"
	"radar/services/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// 회원가입
func (h *AuthHandler) RegisterHandler(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return helper.EchoError(c, apperror.Validation("Invalid request payload"))
	}

	resp, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return helper.EchoError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// 로그인
func (h *AuthHandler) LoginHandler(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return helper.EchoError(c, apperror.Validation("Invalid request payload"))
	}

	resp, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return helper.EchoError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// 내 정보 조회
func (h *AuthHandler) MeHandler(c echo.Context) error {
	caller, ok := middleware.EchoCaller(c)
	if !ok {
		return helper.EchoError(c, apperror.Authentication("Authentication required"))
	}

	user, err := h.authService.Me(c.Request().Context(), caller)
	if err != nil {
		return helper.EchoError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// 로그아웃
func (h *AuthHandler) LogoutHandler(c echo.Context) error {
	caller, ok := middleware.EchoCaller(c)
	if !ok {
		return helper.EchoError(c, apperror.Authentication("Authentication required"))
	}

	if err := h.authService.Logout(c.Request().Context(), caller); err != nil {
		return helper.EchoError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}
