package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"radar/pkg/auth"
	"radar/pkg/config"
	"radar/pkg/db"
	"radar/pkg/dto"
	"radar/pkg/models"
	"radar/pkg/redis"
	"radar/services/auth/handler"
	"radar/services/auth/repository"
	"radar/services/auth/service"
	user_event "radar/services/user/event"
	user_repository "radar/services/user/repository"
	user_service "radar/services/user/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

const testSecret = "this-is-a-test-secret-with-32-bytes!"

func newTestEcho(t *testing.T) (*echo.Echo, *miniredis.Miniredis) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	conn, err := db.Open(sqlite.Open(dsn))
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	userRepo := user_repository.NewUserRepository(conn)
	require.NoError(t, userRepo.InitDB())
	users := user_service.NewUserService(userRepo, user_repository.NewInterestRepository(conn), user_event.NoopEmitter{})

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	redisClient, err := redis.NewRedisClient(config.RedisConfig{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { redisClient.Close() })

	tokens := auth.NewTokenManager(testSecret, time.Hour, "radar")
	authRepo := repository.NewAuthRepository(redisClient)

	e := echo.New()
	RegisterAuthRoutes(e,
		handler.NewAuthHandler(service.NewAuthService(authRepo, users, tokens)),
		handler.NewHealthHandler(&db.SQLDatabase{DB: conn}),
		tokens, authRepo, zerolog.Nop())
	return e, mr
}

func call(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterLoginMeLogout(t *testing.T) {
	e, mr := newTestEcho(t)

	rec := call(e, http.MethodPost, "/auth/register", "", `{"email":"kim@example.com","password":"secret1","name":"Kim"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	var registered dto.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, models.RoleUser, registered.User.Role)
	assert.Equal(t, models.DefaultRadius, registered.User.Radius)

	rec = call(e, http.MethodPost, "/auth/register", "", `{"email":"kim@example.com","password":"secret1","name":"Kim"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"Email already registered"}`, rec.Body.String())

	rec = call(e, http.MethodPost, "/auth/login", "", `{"email":"kim@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login dto.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.Equal(t, registered.User.ID, login.User.ID)

	rec = call(e, http.MethodGet, "/auth/me", login.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var me dto.UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "kim@example.com", me.Email)

	rec = call(e, http.MethodPost, "/auth/logout", login.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, mr.Keys(), 1)

	rec = call(e, http.MethodGet, "/auth/me", login.Token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Token has been revoked"}`, rec.Body.String())

	// 다른 토큰은 영향 없음
	rec = call(e, http.MethodGet, "/auth/me", registered.Token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	e, _ := newTestEcho(t)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing name", `{"email":"a@example.com","password":"secret1"}`, "Email, password and name are required"},
		{"bad email", `{"email":"nope","password":"secret1","name":"A"}`, "Invalid email format"},
		{"short password", `{"email":"a@example.com","password":"123","name":"A"}`, "Password must be at least 6 characters"},
		{"malformed json", `{"email":`, "Invalid request payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, http.MethodPost, "/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.wantErr), rec.Body.String())
		})
	}
}

func TestLoginFailures(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := call(e, http.MethodPost, "/auth/register", "", `{"email":"kim@example.com","password":"secret1","name":"Kim"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"missing password", `{"email":"kim@example.com"}`, 400, "Email and password are required"},
		{"wrong password", `{"email":"kim@example.com","password":"secret2"}`, 401, "Invalid email or password"},
		{"unknown email", `{"email":"lee@example.com","password":"secret1"}`, 401, "Invalid email or password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, http.MethodPost, "/auth/login", "", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.wantErr), rec.Body.String())
		})
	}
}

func TestMe_RequiresToken(t *testing.T) {
	e, _ := newTestEcho(t)

	rec := call(e, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(e, http.MethodGet, "/auth/me", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())

	// 삭제된 유저의 유효한 토큰
	tokens := auth.NewTokenManager(testSecret, time.Hour, "radar")
	token, err := tokens.Issue(999, models.RoleUser)
	require.NoError(t, err)
	rec = call(e, http.MethodGet, "/auth/me", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	e, _ := newTestEcho(t)

	rec := call(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(e, http.MethodGet, "/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}
