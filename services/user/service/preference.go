package service

import (
	"context"
	"math"

	"radar/pkg/apperror"
	"radar/pkg/auth"
	"radar/pkg/dto"
	"radar/pkg/geo"
	"radar/pkg/logger"
	"radar/pkg/models"
	eventtypes "radar/pkg/types/eventtype"

	"github.com/samber/lo"
)

var (
	ErrInvalidLatitude  = apperror.Validation("Invalid latitude value")
	ErrInvalidLongitude = apperror.Validation("Invalid longitude value")
	ErrInvalidRadius    = apperror.Validation("Radius must be between 1 and 1000 kilometers")
	ErrInvalidMinAge    = apperror.Validation("Minimum age must be between 18 and 99")
	ErrInvalidMaxAge    = apperror.Validation("Maximum age must be between 18 and 99")
	ErrAgeRangeInverted = apperror.Validation("Minimum age cannot be greater than maximum age")
)

// ValidatePreferences는 요청에 포함된 필드만 검사하고 첫 번째 오류를 반환합니다.
// null 값은 잘못된 값으로 취급합니다.
func ValidatePreferences(u dto.PreferencesUpdate) error {
	if u.Latitude.Set {
		lat, ok := u.Latitude.Get()
		if !ok || !geo.ValidLatitude(lat) {
			return ErrInvalidLatitude
		}
	}
	if u.Longitude.Set {
		lon, ok := u.Longitude.Get()
		if !ok || !geo.ValidLongitude(lon) {
			return ErrInvalidLongitude
		}
	}
	if u.Radius.Set {
		radius, ok := u.Radius.Get()
		if !ok || !wholeInRange(radius, models.MinRadius, models.MaxRadius) {
			return ErrInvalidRadius
		}
	}

	minAge, hasMin := u.MinAge.Get()
	if u.MinAge.Set && (!hasMin || !validAge(minAge)) {
		return ErrInvalidMinAge
	}
	maxAge, hasMax := u.MaxAge.Get()
	if u.MaxAge.Set && (!hasMax || !validAge(maxAge)) {
		return ErrInvalidMaxAge
	}

	// 두 값이 같은 요청에 있을 때만 비교
	if hasMin && hasMax && minAge > maxAge {
		return ErrAgeRangeInverted
	}
	return nil
}

func validAge(age float64) bool {
	return wholeInRange(age, models.AgeFloor, models.AgeCeiling)
}

// 정수 컬럼에 저장되므로 소수는 범위 안이어도 거부
func wholeInRange(v float64, min, max int) bool {
	return v == math.Trunc(v) && v >= float64(min) && v <= float64(max)
}

// preferenceFields는 검증된 요청을 컬럼 맵으로 변환합니다
func preferenceFields(u dto.PreferencesUpdate) map[string]interface{} {
	fields := map[string]interface{}{}
	if v, ok := u.Latitude.Get(); ok {
		fields["latitude"] = v
	}
	if v, ok := u.Longitude.Get(); ok {
		fields["longitude"] = v
	}
	if v, ok := u.Radius.Get(); ok {
		fields["radius"] = int(v)
	}
	if v, ok := u.MinAge.Get(); ok {
		fields["min_age"] = int(v)
	}
	if v, ok := u.MaxAge.Get(); ok {
		fields["max_age"] = int(v)
	}
	return fields
}

// 매칭 선호도 수정. 전체 요청을 검증한 뒤 한 번에 반영
func (s *UserService) UpdatePreferences(ctx context.Context, caller auth.Caller, id int, update dto.PreferencesUpdate) (*dto.PreferencesDTO, error) {
	user, err := s.loadAuthorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if err := ValidatePreferences(update); err != nil {
		return nil, err
	}

	fields := preferenceFields(update)
	if len(fields) == 0 {
		prefs := dto.ToPreferencesDTO(*user)
		return &prefs, nil
	}

	if err := s.repo.UpdateUserFields(ctx, id, fields); err != nil {
		return nil, err
	}

	updated, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	fieldNames := lo.Keys(fields)
	logger.Info(logger.LogEventPreferencesUpdate, "preferences updated", map[string]interface{}{"user_id": id, "fields": fieldNames})
	s.events.Emit(eventtypes.EventTypeUserPreferencesUpdated, eventtypes.UserEvent{UserID: id, ActorID: caller.ID, Fields: fieldNames})

	prefs := dto.ToPreferencesDTO(*updated)
	return &prefs, nil
}
