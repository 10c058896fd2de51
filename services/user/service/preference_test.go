package service

import (
	"context"
	"testing"

	"radar/pkg/apperror"
	"radar/pkg/auth"
	"radar/pkg/dto"
	"radar/pkg/models"
	eventtypes "radar/pkg/types/eventtype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePreferences(t *testing.T) {
	tests := []struct {
		name    string
		update  dto.PreferencesUpdate
		wantErr error
	}{
		{"empty update", dto.PreferencesUpdate{}, nil},
		{"latitude 90", dto.PreferencesUpdate{Latitude: dto.Some(90.0)}, nil},
		{"latitude -90", dto.PreferencesUpdate{Latitude: dto.Some(-90.0)}, nil},
		{"latitude 91", dto.PreferencesUpdate{Latitude: dto.Some(91.0)}, ErrInvalidLatitude},
		{"latitude -91", dto.PreferencesUpdate{Latitude: dto.Some(-91.0)}, ErrInvalidLatitude},
		{"latitude 90.0001", dto.PreferencesUpdate{Latitude: dto.Some(90.0001)}, ErrInvalidLatitude},
		{"latitude null", dto.PreferencesUpdate{Latitude: dto.Optional[float64]{Set: true, Null: true}}, ErrInvalidLatitude},
		{"longitude 180", dto.PreferencesUpdate{Longitude: dto.Some(180.0)}, nil},
		{"longitude 180.5", dto.PreferencesUpdate{Longitude: dto.Some(180.5)}, ErrInvalidLongitude},
		{"radius 1", dto.PreferencesUpdate{Radius: dto.Some(1.0)}, nil},
		{"radius 1000", dto.PreferencesUpdate{Radius: dto.Some(1000.0)}, nil},
		{"radius 0", dto.PreferencesUpdate{Radius: dto.Some(0.0)}, ErrInvalidRadius},
		{"radius 1001", dto.PreferencesUpdate{Radius: dto.Some(1001.0)}, ErrInvalidRadius},
		{"minAge 17", dto.PreferencesUpdate{MinAge: dto.Some(17.0)}, ErrInvalidMinAge},
		{"maxAge 100", dto.PreferencesUpdate{MaxAge: dto.Some(100.0)}, ErrInvalidMaxAge},
		{"minAge 50 alone", dto.PreferencesUpdate{MinAge: dto.Some(50.0)}, nil},
		{"minAge 50 maxAge 40", dto.PreferencesUpdate{MinAge: dto.Some(50.0), MaxAge: dto.Some(40.0)}, ErrAgeRangeInverted},
		{"minAge equals maxAge", dto.PreferencesUpdate{MinAge: dto.Some(30.0), MaxAge: dto.Some(30.0)}, nil},
		{"radius 0.5", dto.PreferencesUpdate{Radius: dto.Some(0.5)}, ErrInvalidRadius},
		{"radius 1000.5", dto.PreferencesUpdate{Radius: dto.Some(1000.5)}, ErrInvalidRadius},
		{"radius 10.5 in range", dto.PreferencesUpdate{Radius: dto.Some(10.5)}, ErrInvalidRadius},
		{"minAge 17.5", dto.PreferencesUpdate{MinAge: dto.Some(17.5)}, ErrInvalidMinAge},
		{"maxAge 40.2", dto.PreferencesUpdate{MaxAge: dto.Some(40.2)}, ErrInvalidMaxAge},
		{"radius null", dto.PreferencesUpdate{Radius: dto.Optional[float64]{Set: true, Null: true}}, ErrInvalidRadius},
		{
			"first failing field wins",
			dto.PreferencesUpdate{Latitude: dto.Some(100.0), Radius: dto.Some(0.0)},
			ErrInvalidLatitude,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePreferences(tt.update)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}

func TestUpdatePreferences_OnlyPresentFields(t *testing.T) {
	stored := located(1, 37.5, 127.0)
	var written map[string]interface{}

	store := &mockUserStore{
		getUserByIDFunc: func(_ context.Context, id int) (*models.User, error) {
			u := stored
			return &u, nil
		},
		updateUserFieldsFunc: func(_ context.Context, id int, fields map[string]interface{}) error {
			written = fields
			stored.Radius = fields["radius"].(int)
			return nil
		},
	}
	events := &mockEmitter{}
	svc := NewUserService(store, &mockInterestStore{}, events)

	prefs, err := svc.UpdatePreferences(context.Background(), auth.Caller{ID: 1, Role: models.RoleUser}, 1,
		dto.PreferencesUpdate{Radius: dto.Some(200.0)})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"radius": 200}, written)
	assert.Equal(t, 200, prefs.Radius)
	assert.Equal(t, 37.5, *prefs.Latitude)
	assert.Equal(t, 127.0, *prefs.Longitude)
	assert.Equal(t, models.DefaultMinAge, prefs.MinAge)
	assert.Equal(t, models.DefaultMaxAge, prefs.MaxAge)
	assert.Equal(t, []string{eventtypes.EventTypeUserPreferencesUpdated}, events.types())
}

func TestUpdatePreferences_RejectsWholeUpdate(t *testing.T) {
	store := &mockUserStore{
		getUserByIDFunc: userByID(map[int]*models.User{1: {ID: 1, Role: models.RoleUser}}),
		updateUserFieldsFunc: func(context.Context, int, map[string]interface{}) error {
			t.Fatal("no write expected")
			return nil
		},
	}
	svc := NewUserService(store, &mockInterestStore{}, &mockEmitter{})

	_, err := svc.UpdatePreferences(context.Background(), auth.Caller{ID: 1, Role: models.RoleUser}, 1,
		dto.PreferencesUpdate{Latitude: dto.Some(10.0), Radius: dto.Some(5000.0)})
	assert.ErrorIs(t, err, ErrInvalidRadius)
}

func TestUpdatePreferences_AccessGate(t *testing.T) {
	users := map[int]*models.User{1: {ID: 1, Role: models.RoleUser}}

	tests := []struct {
		name     string
		caller   auth.Caller
		targetID int
		wantCode int
	}{
		{"owner", auth.Caller{ID: 1, Role: models.RoleUser}, 1, 200},
		{"admin", auth.Caller{ID: 9, Role: models.RoleAdmin}, 1, 200},
		{"other user", auth.Caller{ID: 2, Role: models.RoleUser}, 1, 403},
		{"missing target", auth.Caller{ID: 9, Role: models.RoleAdmin}, 5, 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(&mockUserStore{getUserByIDFunc: userByID(users)}, &mockInterestStore{}, &mockEmitter{})
			_, err := svc.UpdatePreferences(context.Background(), tt.caller, tt.targetID, dto.PreferencesUpdate{Radius: dto.Some(10.0)})
			if tt.wantCode == 200 {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantCode, apperror.StatusCode(err))
		})
	}
}

func TestAuthorizeTarget(t *testing.T) {
	users := map[int]*models.User{1: {ID: 1, Role: models.RoleUser}}
	svc := NewUserService(&mockUserStore{getUserByIDFunc: userByID(users)}, &mockInterestStore{}, &mockEmitter{})

	tests := []struct {
		name     string
		caller   auth.Caller
		targetID int
		wantErr  error
	}{
		{"owner", auth.Caller{ID: 1, Role: models.RoleUser}, 1, nil},
		{"admin", auth.Caller{ID: 9, Role: models.RoleAdmin}, 1, nil},
		{"other user", auth.Caller{ID: 2, Role: models.RoleUser}, 1, auth.ErrAccessDenied},
		{"missing target wins over role", auth.Caller{ID: 2, Role: models.RoleUser}, 5, ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AuthorizeTarget(context.Background(), tt.caller, tt.targetID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
