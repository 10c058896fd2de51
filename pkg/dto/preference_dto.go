package dto

import "radar/pkg/models"

// PreferencesUpdate는 부분 업데이트 요청입니다. 요청에 포함된 필드만 검사, 반영됩니다.
// radius와 나이는 범위 검사 메시지를 돌려주기 위해 숫자 그대로 받습니다
type PreferencesUpdate struct {
	Latitude  Optional[float64] `json:"latitude"`
	Longitude Optional[float64] `json:"longitude"`
	Radius    Optional[float64] `json:"radius"`
	MinAge    Optional[float64] `json:"minAge"`
	MaxAge    Optional[float64] `json:"maxAge"`
}

// Empty는 어떤 필드도 포함되지 않은 요청인지 확인합니다
func (u PreferencesUpdate) Empty() bool {
	return !u.Latitude.Set && !u.Longitude.Set && !u.Radius.Set && !u.MinAge.Set && !u.MaxAge.Set
}

type PreferencesDTO struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Radius    int      `json:"radius"`
	MinAge    int      `json:"minAge"`
	MaxAge    int      `json:"maxAge"`
}

type PreferencesResponse struct {
	Message     string         `json:"message"`
	Preferences PreferencesDTO `json:"preferences"`
}

func ToPreferencesDTO(user models.User) PreferencesDTO {
	return PreferencesDTO{
		Latitude:  user.Latitude,
		Longitude: user.Longitude,
		Radius:    user.Radius,
		MinAge:    user.MinAge,
		MaxAge:    user.MaxAge,
	}
}
