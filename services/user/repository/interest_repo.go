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
	ErrInterestNotFound  = apperror.NotFound("Interest not found")
	ErrInterestNameTaken = apperror.Conflict("Interest already exists")
)

type InterestRepository struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) *InterestRepository {
	return &InterestRepository{db: db}
}

// 관심사 목록 조회 (연결된 유저 포함)
func (r *InterestRepository) ListInterests(ctx context.Context) ([]models.Interest, error) {
	var interests []models.Interest
	err := r.db.WithContext(ctx).Preload("Users").Order("name ASC").Find(&interests).Error
	if err != nil {
		log.Printf("❌ Failed to get interest list: %v", err)
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	return interests, nil
}

// 관심사 조회 (ID)
func (r *InterestRepository) GetInterestByID(ctx context.Context, id string) (*models.Interest, error) {
	var interest models.Interest
	err := r.db.WithContext(ctx).First(&interest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterestNotFound
		}
		log.Printf("❌ Failed to get interest by ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to find interest %s: %w", id, err)
	}
	return &interest, nil
}

// 관심사 조회 (ID 목록). 없는 ID가 있으면 ErrInterestNotFound
func (r *InterestRepository) GetInterestsByIDs(ctx context.Context, ids []string) ([]models.Interest, error) {
	if len(ids) == 0 {
		return []models.Interest{}, nil
	}

	var interests []models.Interest
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&interests).Error; err != nil {
		log.Printf("❌ Failed to get interests by IDs: %v", err)
		return nil, fmt.Errorf("failed to find interests: %w", err)
	}
	if len(interests) != len(ids) {
		return nil, ErrInterestNotFound
	}
	return interests, nil
}

// 관심사 생성
func (r *InterestRepository) InsertInterest(ctx context.Context, interest *models.Interest) error {
	if err := r.db.WithContext(ctx).Omit("Users").Create(interest).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrInterestNameTaken
		}
		log.Printf("❌ Failed to insert interest: %v", err)
		return fmt.Errorf("failed to insert interest: %w", err)
	}
	return nil
}

// 관심사 필드 업데이트
func (r *InterestRepository) UpdateInterestFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Model(&models.Interest{ID: id}).Updates(fields).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrInterestNameTaken
		}
		log.Printf("❌ Failed to update interest ID %s: %v", id, err)
		return fmt.Errorf("failed to update interest %s: %w", id, err)
	}
	return nil
}

// 관심사 삭제 (유저 연결도 함께 삭제)
func (r *InterestRepository) DeleteInterest(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("interest_id = ?", id).Delete(&models.UserInterest{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Interest{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInterestNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInterestNotFound) {
			return err
		}
		log.Printf("❌ Failed to delete interest ID %s: %v", id, err)
		return fmt.Errorf("failed to delete interest %s: %w", id, err)
	}
	return nil
}
