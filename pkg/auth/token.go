package auth

import (
	"errors"
	"fmt"
	"time"

	"radar/pkg/apperror"
	"radar/pkg/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims는 JWT에 담기는 클레임입니다
type Claims struct {
	UserID int         `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Caller는 인증된 요청자입니다
type Caller struct {
	ID        int
	Role      models.Role
	TokenID   string
	ExpiresAt time.Time
}

// TokenManager는 토큰 발급, 검증을 담당합니다
type TokenManager struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenManager(secret string, expiry time.Duration, issuer string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue는 유저 ID와 권한을 담은 서명된 토큰을 발급합니다
func (m *TokenManager) Issue(userID int, role models.Role) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify는 토큰을 검증하고 요청자 정보를 복원합니다
func (m *TokenManager) Verify(tokenString string) (*Caller, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Wrap(apperror.KindAuthentication, "Token has expired", err)
		}
		return nil, apperror.Wrap(apperror.KindAuthentication, "Invalid token", err)
	}
	if !token.Valid {
		return nil, apperror.Authentication("Invalid token")
	}

	role, err := models.ParseRole(string(claims.Role))
	if err != nil {
		return nil, apperror.Wrap(apperror.KindAuthentication, "Invalid token", err)
	}
	if claims.UserID <= 0 {
		return nil, apperror.Authentication("Invalid token")
	}

	return &Caller{
		ID:        claims.UserID,
		Role:      role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
