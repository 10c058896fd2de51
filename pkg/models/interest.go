package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultInterestWeight = 1.0

type Interest struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Weight    float64   `gorm:"not null" json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Users     []User    `gorm:"many2many:user_interests;constraint:OnDelete:CASCADE" json:"users,omitempty"`
}

func (Interest) TableName() string {
	return "interests"
}

func (i *Interest) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// UserInterest는 users와 interests의 조인 테이블입니다
type UserInterest struct {
	UserID     int       `gorm:"primaryKey" json:"userId"`
	InterestID string    `gorm:"primaryKey;size:36" json:"interestId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (UserInterest) TableName() string {
	return "user_interests"
}
