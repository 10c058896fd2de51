package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"radar/pkg/config"

	"github.com/go-redis/redis/v8"
)

type RedisClient struct {
	Client *redis.Client
}

// Redis 클라이언트 생성
func NewRedisClient(cfg config.RedisConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 연결 확인
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		return nil, err
	}

	return &RedisClient{Client: rdb}, nil
}

// 데이터 저장
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	err := r.Client.Set(ctx, key, value, expiration).Err()
	if err != nil {
		log.Printf("Failed to set key %s in Redis: %v", key, err)
		return err
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.Client.Close()
}
