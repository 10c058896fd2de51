package dto

import (
	"time"

	"radar/pkg/models"

	"github.com/samber/lo"
)

type InterestDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserDTO는 API로 노출되는 유저 정보입니다. 비밀번호 해시는 포함하지 않습니다
type UserDTO struct {
	ID        int           `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Role      models.Role   `json:"role"`
	Latitude  *float64      `json:"latitude"`
	Longitude *float64      `json:"longitude"`
	Radius    int           `json:"radius"`
	MinAge    int           `json:"minAge"`
	MaxAge    int           `json:"maxAge"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Interests []InterestDTO `json:"interests"`
}

// UserSummaryDTO는 관심사 목록에 포함되는 유저 정보입니다
type UserSummaryDTO struct {
	ID    int         `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

type InterestWithUsersDTO struct {
	InterestDTO
	Users []UserSummaryDTO `json:"users"`
}

type NearbyUserDTO struct {
	UserDTO
	Distance float64 `json:"distance"`
}

type NearbyResponse struct {
	Count  int             `json:"count"`
	Radius int             `json:"radius"`
	Users  []NearbyUserDTO `json:"users"`
}

type Pagination struct {
	Total           int64 `json:"total"`
	TotalPages      int   `json:"totalPages"`
	CurrentPage     int   `json:"currentPage"`
	Limit           int   `json:"limit"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

type UserListResponse struct {
	Users      []UserDTO  `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PasswordUpdateRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ProfileUpdate는 PATCH /users/:id 에서 허용되는 필드입니다
type ProfileUpdate struct {
	Name  Optional[string] `json:"name"`
	Email Optional[string] `json:"email"`
}

type UserInterestsRequest struct {
	InterestIDs []string `json:"interestIds"`
}

type InterestCreateRequest struct {
	Name   string            `json:"name"`
	Weight Optional[float64] `json:"weight"`
}

// InterestUpdate는 PATCH /interests/:id 에서 허용되는 필드입니다
type InterestUpdate struct {
	Name   Optional[string]  `json:"name"`
	Weight Optional[float64] `json:"weight"`
}

func NewPagination(total int64, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Total:           total,
		TotalPages:      totalPages,
		CurrentPage:     page,
		Limit:           limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

func ToInterestDTO(interest models.Interest) InterestDTO {
	return InterestDTO{
		ID:        interest.ID,
		Name:      interest.Name,
		Weight:    interest.Weight,
		CreatedAt: interest.CreatedAt,
		UpdatedAt: interest.UpdatedAt,
	}
}

func ToInterestDTOs(interests []models.Interest) []InterestDTO {
	return lo.Map(interests, func(item models.Interest, _ int) InterestDTO {
		return ToInterestDTO(item)
	})
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		Latitude:  user.Latitude,
		Longitude: user.Longitude,
		Radius:    user.Radius,
		MinAge:    user.MinAge,
		MaxAge:    user.MaxAge,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		Interests: ToInterestDTOs(user.Interests),
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	return lo.Map(users, func(item models.User, _ int) UserDTO {
		return ToUserDTO(item)
	})
}

func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}

func ToInterestWithUsersDTO(interest models.Interest) InterestWithUsersDTO {
	return InterestWithUsersDTO{
		InterestDTO: ToInterestDTO(interest),
		Users:       lo.Map(interest.Users, func(item models.User, _ int) UserSummaryDTO { return ToUserSummaryDTO(item) }),
	}
}
