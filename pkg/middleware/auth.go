package middleware

import (
	"context"
	"net/http"
	"strings"

	"radar/pkg/apperror"
	"radar/pkg/auth"
	"radar/pkg/helper"

	"github.com/labstack/echo/v4"
)

// CallerContextKey는 echo Context에 저장되는 요청자 키입니다
const CallerContextKey = "caller"

// TokenVerifier는 bearer 토큰을 검증합니다
type TokenVerifier interface {
	Verify(token string) (*auth.Caller, error)
}

// Authenticate는 chi용 인증 미들웨어입니다. 검증된 요청자를 context에 저장합니다
func Authenticate(verifier TokenVerifier, revocations auth.RevocationStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := authenticateRequest(r.Context(), r.Header.Get("Authorization"), verifier, revocations)
			if err != nil {
				helper.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithCaller(r.Context(), *caller)))
		})
	}
}

// EchoAuthenticate는 echo용 인증 미들웨어입니다
func EchoAuthenticate(verifier TokenVerifier, revocations auth.RevocationStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			caller, err := authenticateRequest(req.Context(), req.Header.Get("Authorization"), verifier, revocations)
			if err != nil {
				return helper.EchoError(c, err)
			}

			c.Set(CallerContextKey, *caller)
			c.SetRequest(req.WithContext(auth.WithCaller(req.Context(), *caller)))
			return next(c)
		}
	}
}

// EchoCaller는 EchoAuthenticate가 저장한 요청자를 반환합니다
func EchoCaller(c echo.Context) (auth.Caller, bool) {
	caller, ok := c.Get(CallerContextKey).(auth.Caller)
	return caller, ok
}

func authenticateRequest(ctx context.Context, header string, verifier TokenVerifier, revocations auth.RevocationStore) (*auth.Caller, error) {
	token, ok := bearerToken(header)
	if !ok {
		return nil, apperror.Authentication("Authentication required")
	}

	caller, err := verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	revoked, err := revocations.IsRevoked(ctx, caller.TokenID)
	if err != nil {
		return nil, apperror.Unavailable("Token store unavailable", err)
	}
	if revoked {
		return nil, apperror.Authentication("Token has been revoked")
	}

	return caller, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
