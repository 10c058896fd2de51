package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"radar/pkg/apperror"
	"radar/pkg/geo"
	"radar/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankNearby(t *testing.T) {
	candidates := []models.User{
		located(4, 0, 1.5),
		located(2, 0, 0),
		located(3, 0, 0.5),
		{ID: 5, Latitude: floatPtr(0)},
	}

	users := RankNearby(geo.Point{Lat: 0, Lon: 0}, 100, candidates)

	require.Len(t, users, 2)
	assert.Equal(t, 2, users[0].ID)
	assert.Equal(t, 0.0, users[0].Distance)
	assert.Equal(t, 3, users[1].ID)
	assert.InDelta(t, 55.6, users[1].Distance, 0.01)
}

func TestRankNearby_BoundaryAndStableOrder(t *testing.T) {
	// 0.5도 거리의 반올림 값을 반경으로 사용
	edge := geo.FormatDistance(geo.Distance(0, 0, 0, 0.5))
	radius := int(edge)

	tests := []struct {
		name   string
		radius int
		want   int
	}{
		{"radius below distance", radius, 0},
		{"radius above distance", radius + 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := RankNearby(geo.Point{}, tt.radius, []models.User{located(7, 0, 0.5), located(8, 0.5, 0)})
			require.Len(t, users, tt.want)
			if tt.want == 2 {
				// 같은 거리는 입력 순서 유지
				assert.Equal(t, []int{7, 8}, []int{users[0].ID, users[1].ID})
			}
		})
	}
}

func TestRankNearby_ExactlyAtValidRadius(t *testing.T) {
	// 적도에서 경도 차이만 있으면 거리 = R * Δλ 이므로 정확히 100km
	lon := 100 / (geo.EarthRadiusKm * math.Pi / 180)
	require.Equal(t, 100.0, geo.FormatDistance(geo.Distance(0, 0, 0, lon)))

	tests := []struct {
		name   string
		radius int
		want   int
	}{
		{"radius equal to distance", 100, 1},
		{"radius one below", 99, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := RankNearby(geo.Point{}, tt.radius, []models.User{located(6, 0, lon)})
			require.Len(t, users, tt.want)
			if tt.want == 1 {
				assert.Equal(t, 100.0, users[0].Distance)
			}
		})
	}
}

func TestFindNearby(t *testing.T) {
	requester := located(1, 0, 0)
	requester.Radius = 100

	store := &mockUserStore{
		getUserByIDFunc: userByID(map[int]*models.User{1: &requester}),
		findLocatedUsersExceptFunc: func(_ context.Context, id int) ([]models.User, error) {
			assert.Equal(t, 1, id)
			return []models.User{located(2, 0, 0), located(3, 0, 0.5), located(4, 0, 1.5)}, nil
		},
	}
	svc := NewUserService(store, &mockInterestStore{}, &mockEmitter{})

	resp, err := svc.FindNearby(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 100, resp.Radius)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, 0.0, resp.Users[0].Distance)
	assert.InDelta(t, 55.6, resp.Users[1].Distance, 0.01)
}

func TestFindNearby_Errors(t *testing.T) {
	halfSet := models.User{ID: 1, Latitude: floatPtr(10), Radius: 50}

	tests := []struct {
		name    string
		store   *mockUserStore
		wantErr error
	}{
		{
			name:    "requester without location",
			store:   &mockUserStore{getUserByIDFunc: userByID(map[int]*models.User{1: {ID: 1, Radius: 50}})},
			wantErr: ErrLocationNotSet,
		},
		{
			name:    "requester with half-set location",
			store:   &mockUserStore{getUserByIDFunc: userByID(map[int]*models.User{1: &halfSet})},
			wantErr: ErrLocationNotSet,
		},
		{
			name:    "missing requester",
			store:   &mockUserStore{},
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.store, &mockInterestStore{}, &mockEmitter{})
			_, err := svc.FindNearby(context.Background(), 1)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, apperror.KindPrecondition, apperror.KindOf(ErrLocationNotSet))
}

func TestFindNearby_StoreFailure(t *testing.T) {
	requester := located(1, 0, 0)
	boom := errors.New("connection refused")
	store := &mockUserStore{
		getUserByIDFunc: userByID(map[int]*models.User{1: &requester}),
		findLocatedUsersExceptFunc: func(context.Context, int) ([]models.User, error) {
			return nil, boom
		},
	}
	svc := NewUserService(store, &mockInterestStore{}, &mockEmitter{})

	_, err := svc.FindNearby(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 500, apperror.StatusCode(err))
}
