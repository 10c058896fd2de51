package service

import (
	"context"

	"radar/pkg/models"
)

// UserStore는 repository.UserRepository가 구현합니다
type UserStore interface {
	InsertUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindLocatedUsersExcept(ctx context.Context, id int) ([]models.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]models.User, int64, error)
	UpdateUserFields(ctx context.Context, id int, fields map[string]interface{}) error
	ReplaceInterests(ctx context.Context, user *models.User, interests []models.Interest) error
	DeleteUser(ctx context.Context, id int) error
}

// InterestStore는 repository.InterestRepository가 구현합니다
type InterestStore interface {
	ListInterests(ctx context.Context) ([]models.Interest, error)
	GetInterestByID(ctx context.Context, id string) (*models.Interest, error)
	GetInterestsByIDs(ctx context.Context, ids []string) ([]models.Interest, error)
	InsertInterest(ctx context.Context, interest *models.Interest) error
	UpdateInterestFields(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteInterest(ctx context.Context, id string) error
}

// EventEmitter는 도메인 이벤트를 발행합니다. 실패는 요청을 실패시키지 않습니다
type EventEmitter interface {
	Emit(eventType string, data interface{})
}
