package middleware

import (
	"net/http"
	"time"

	"radar/pkg/apperror"
	"radar/pkg/auth"
	"radar/pkg/helper"
	"radar/pkg/models"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// RequireRoles는 권한만으로 접근을 허용합니다 (본인 예외 없음)
func RequireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := auth.CallerFrom(r.Context())
			if !ok {
				helper.WriteError(w, apperror.Authentication("Authentication required"))
				return
			}

			if err := auth.RequireRole(caller, roles...); err != nil {
				helper.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger는 chi 요청을 zerolog로 기록합니다
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			event := logger.Info()
			if ww.Status() >= http.StatusInternalServerError {
				event = logger.Error()
			}
			event.
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("latency", time.Since(start)).
				Msg("request")
		})
	}
}

// EchoRequestLogger는 echo 요청을 zerolog로 기록합니다
func EchoRequestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			event := logger.Info()
			if v.Status >= http.StatusInternalServerError {
				event = logger.Error().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
