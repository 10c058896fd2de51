package auth

import (
	"context"
	"time"

	"radar/pkg/apperror"
	"radar/pkg/models"
)

var ErrAccessDenied = apperror.Forbidden("Access denied")

// Authorize는 본인이거나 허용된 권한일 때 통과시킵니다
func Authorize(caller Caller, ownerID int, roles ...models.Role) error {
	if caller.ID == ownerID {
		return nil
	}
	return RequireRole(caller, roles...)
}

// RequireRole은 본인 예외 없이 권한만으로 판단합니다
func RequireRole(caller Caller, roles ...models.Role) error {
	if caller.Role.In(roles...) {
		return nil
	}
	return ErrAccessDenied
}

type callerKey struct{}

func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

func CallerFrom(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(Caller)
	return caller, ok
}

// RevocationStore는 로그아웃된 토큰 ID를 만료 시점까지 보관합니다
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NoopRevocationStore는 Redis가 설정되지 않았을 때 사용됩니다
type NoopRevocationStore struct{}

func (NoopRevocationStore) Revoke(context.Context, string, time.Duration) error { return nil }

func (NoopRevocationStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
