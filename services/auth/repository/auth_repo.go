package repository

import (
	"context"
	"log"
	"time"

	"radar/pkg/auth"
)

// AuthRepository는 로그아웃된 토큰을 폐기 저장소(Redis)에 기록합니다
type AuthRepository struct {
	store auth.RevocationStore
	now   func() time.Time
}

func NewAuthRepository(store auth.RevocationStore) *AuthRepository {
	return &AuthRepository{store: store, now: time.Now}
}

// Enabled는 실제 저장소가 연결되어 있는지 여부입니다
func (repo *AuthRepository) Enabled() bool {
	_, noop := repo.store.(auth.NoopRevocationStore)
	return !noop
}

// 토큰 폐기. 남은 유효 기간 동안만 보관
func (repo *AuthRepository) RevokeToken(ctx context.Context, caller auth.Caller) error {
	ttl := caller.ExpiresAt.Sub(repo.now())
	if ttl <= 0 {
		return nil
	}

	if err := repo.store.Revoke(ctx, caller.TokenID, ttl); err != nil {
		log.Printf("❌ Failed to revoke token for user %d: %v", caller.ID, err)
		return err
	}
	return nil
}

func (repo *AuthRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return repo.store.Revoke(ctx, tokenID, ttl)
}

func (repo *AuthRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return repo.store.IsRevoked(ctx, tokenID)
}
