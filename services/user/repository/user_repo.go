package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"radar/pkg/apperror"
	"radar/pkg/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = apperror.NotFound("User not found")
	ErrEmailAlreadyTaken = apperror.Conflict("Email already registered")
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// 데이터베이스 초기화
func (r *UserRepository) InitDB() error {
	if err := r.db.SetupJoinTable(&models.User{}, "Interests", &models.UserInterest{}); err != nil {
		log.Printf("❌ Failed to setup join table for users: %v", err)
		return err
	}
	if err := r.db.SetupJoinTable(&models.Interest{}, "Users", &models.UserInterest{}); err != nil {
		log.Printf("❌ Failed to setup join table for interests: %v", err)
		return err
	}

	err := r.db.AutoMigrate(&models.User{}, &models.Interest{}, &models.UserInterest{})
	if err != nil {
		log.Printf("❌ Failed to migrate tables: %v", err)
		return err
	}
	log.Println("✅ Tables users, interests and user_interests migrated or already exist.")
	return nil
}

// 유저 생성
func (r *UserRepository) InsertUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit("Interests").Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailAlreadyTaken
		}
		log.Printf("❌ Failed to insert user: %v", err)
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// 유저 조회 (ID), 관심사 포함
func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Interests").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("❌ Failed to get user by ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, err)
	}
	return &user, nil
}

// 유저 조회 (Email)
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Interests").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("❌ Failed to get user by email: %v", err)
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

// 위치가 설정된 다른 유저 목록 (위도, 경도 모두 있는 유저만)
func (r *UserRepository) FindLocatedUsersExcept(ctx context.Context, id int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Preload("Interests").
		Where("id <> ?", id).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		log.Printf("❌ Failed to get located users: %v", err)
		return nil, fmt.Errorf("failed to find located users: %w", err)
	}
	return users, nil
}

// 유저 리스트 조회 (최신 가입순, 페이지네이션)
func (r *UserRepository) ListUsers(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		log.Printf("❌ Failed to count users: %v", err)
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	err := r.db.WithContext(ctx).
		Preload("Interests").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		log.Printf("❌ Failed to get user list: %v", err)
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// 유저 필드 업데이트. 하나의 UPDATE 문으로 반영
func (r *UserRepository) UpdateUserFields(ctx context.Context, id int, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Model(&models.User{ID: id}).Updates(fields).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailAlreadyTaken
		}
		log.Printf("❌ Failed to update user ID %d: %v", id, err)
		return fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return nil
}

// 유저 관심사 교체
func (r *UserRepository) ReplaceInterests(ctx context.Context, user *models.User, interests []models.Interest) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(user).Association("Interests").Replace(interests)
	})
	if err != nil {
		log.Printf("❌ Failed to replace interests for user ID %d: %v", user.ID, err)
		return fmt.Errorf("failed to replace interests for user %d: %w", user.ID, err)
	}
	return nil
}

// 유저 삭제 (관심사 연결도 함께 삭제)
func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserInterest{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		log.Printf("❌ Failed to delete user ID %d: %v", id, err)
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}
