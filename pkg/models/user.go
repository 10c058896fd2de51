package models

import (
	"time"

	"radar/pkg/geo"

	"gorm.io/gorm"
)

const (
	DefaultRadius = 50
	MinRadius     = 1
	MaxRadius     = 1000

	DefaultMinAge = 18
	DefaultMaxAge = 99
	AgeFloor      = 18
	AgeCeiling    = 99
)

type User struct {
	ID        int        `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Role      Role       `gorm:"size:16;not null;default:user" json:"role"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Radius    int        `gorm:"not null;default:50" json:"radius"`
	MinAge    int        `gorm:"not null;default:18" json:"minAge"`
	MaxAge    int        `gorm:"not null;default:99" json:"maxAge"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Interests []Interest `gorm:"many2many:user_interests;constraint:OnDelete:CASCADE" json:"interests"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate는 비어 있는 선호 설정에 기본값을 채웁니다
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Radius == 0 {
		u.Radius = DefaultRadius
	}
	if u.MinAge == 0 {
		u.MinAge = DefaultMinAge
	}
	if u.MaxAge == 0 {
		u.MaxAge = DefaultMaxAge
	}
	return nil
}

// Location은 위도, 경도가 모두 있을 때만 좌표를 반환합니다
func (u *User) Location() (geo.Point, bool) {
	if u.Latitude == nil || u.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: *u.Latitude, Lon: *u.Longitude}, true
}
