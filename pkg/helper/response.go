package helper

import (
	"encoding/json"
	"net/http"

	"radar/pkg/apperror"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// WriteError: 도메인 에러를 상태 코드와 {"error": message} 로 변환
func WriteError(w http.ResponseWriter, err error) {
	status := apperror.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	}
	WriteJSON(w, status, ErrorResponse{Error: apperror.PublicMessage(err)})
}

// EchoError: echo 핸들러용 WriteError
func EchoError(c echo.Context, err error) error {
	status := apperror.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Str("path", c.Path()).Msg("request failed")
	}
	return c.JSON(status, ErrorResponse{Error: apperror.PublicMessage(err)})
}

// EchoHTTPErrorHandler: echo 기본 에러도 {"error": message} 형식으로 응답
func EchoHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		c.JSON(he.Code, ErrorResponse{Error: message})
		return
	}

	EchoError(c, err)
}
