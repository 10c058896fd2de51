package db

import (
	"context"

	"gorm.io/gorm"
)

type DB interface {
	GetDB() *gorm.DB
	Ping(ctx context.Context) error
}

// SQLDatabase 구조체
type SQLDatabase struct {
	DB *gorm.DB
}

func (s *SQLDatabase) GetDB() *gorm.DB {
	return s.DB
}

func (s *SQLDatabase) Ping(ctx context.Context) error {
	return Ping(ctx, s.DB)
}
