package redis

import (
	"context"
	"fmt"
	"log"
	"time"
)

const revokedKeyPrefix = "revoked:"

func revokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}

// Revoke: 로그아웃된 토큰 ID를 남은 만료 시간 동안 저장
func (r *RedisClient) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return fmt.Errorf("token id is required")
	}
	if ttl <= 0 {
		// 이미 만료된 토큰은 저장할 필요 없음
		return nil
	}
	return r.Set(ctx, revokedKey(tokenID), 1, ttl)
}

// IsRevoked: 토큰이 로그아웃 처리되었는지 확인
func (r *RedisClient) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.Client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		log.Printf("Check Revocation Error, %s", err.Error())
		return false, err
	}
	return n > 0, nil
}
