package service

import (
	"context"

	"radar/pkg/apperror"
	"radar/pkg/models"
)

var errInterestMissing = apperror.NotFound("Interest not found")

// ===== Mock Implementations =====

type mockUserStore struct {
	insertUserFunc             func(ctx context.Context, user *models.User) error
	getUserByIDFunc            func(ctx context.Context, id int) (*models.User, error)
	getUserByEmailFunc         func(ctx context.Context, email string) (*models.User, error)
	findLocatedUsersExceptFunc func(ctx context.Context, id int) ([]models.User, error)
	listUsersFunc              func(ctx context.Context, offset, limit int) ([]models.User, int64, error)
	updateUserFieldsFunc       func(ctx context.Context, id int, fields map[string]interface{}) error
	replaceInterestsFunc       func(ctx context.Context, user *models.User, interests []models.Interest) error
	deleteUserFunc             func(ctx context.Context, id int) error
}

func (m *mockUserStore) InsertUser(ctx context.Context, user *models.User) error {
	if m.insertUserFunc != nil {
		return m.insertUserFunc(ctx, user)
	}
	return nil
}

func (m *mockUserStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	if m.getUserByIDFunc != nil {
		return m.getUserByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getUserByEmailFunc != nil {
		return m.getUserByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserStore) FindLocatedUsersExcept(ctx context.Context, id int) ([]models.User, error) {
	if m.findLocatedUsersExceptFunc != nil {
		return m.findLocatedUsersExceptFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserStore) ListUsers(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	if m.listUsersFunc != nil {
		return m.listUsersFunc(ctx, offset, limit)
	}
	return nil, 0, nil
}

func (m *mockUserStore) UpdateUserFields(ctx context.Context, id int, fields map[string]interface{}) error {
	if m.updateUserFieldsFunc != nil {
		return m.updateUserFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *mockUserStore) ReplaceInterests(ctx context.Context, user *models.User, interests []models.Interest) error {
	if m.replaceInterestsFunc != nil {
		return m.replaceInterestsFunc(ctx, user, interests)
	}
	return nil
}

func (m *mockUserStore) DeleteUser(ctx context.Context, id int) error {
	if m.deleteUserFunc != nil {
		return m.deleteUserFunc(ctx, id)
	}
	return nil
}

type mockInterestStore struct {
	listInterestsFunc        func(ctx context.Context) ([]models.Interest, error)
	getInterestByIDFunc      func(ctx context.Context, id string) (*models.Interest, error)
	getInterestsByIDsFunc    func(ctx context.Context, ids []string) ([]models.Interest, error)
	insertInterestFunc       func(ctx context.Context, interest *models.Interest) error
	updateInterestFieldsFunc func(ctx context.Context, id string, fields map[string]interface{}) error
	deleteInterestFunc       func(ctx context.Context, id string) error
}

func (m *mockInterestStore) ListInterests(ctx context.Context) ([]models.Interest, error) {
	if m.listInterestsFunc != nil {
		return m.listInterestsFunc(ctx)
	}
	return nil, nil
}

func (m *mockInterestStore) GetInterestByID(ctx context.Context, id string) (*models.Interest, error) {
	if m.getInterestByIDFunc != nil {
		return m.getInterestByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockInterestStore) GetInterestsByIDs(ctx context.Context, ids []string) ([]models.Interest, error) {
	if m.getInterestsByIDsFunc != nil {
		return m.getInterestsByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockInterestStore) InsertInterest(ctx context.Context, interest *models.Interest) error {
	if m.insertInterestFunc != nil {
		return m.insertInterestFunc(ctx, interest)
	}
	return nil
}

func (m *mockInterestStore) UpdateInterestFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if m.updateInterestFieldsFunc != nil {
		return m.updateInterestFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *mockInterestStore) DeleteInterest(ctx context.Context, id string) error {
	if m.deleteInterestFunc != nil {
		return m.deleteInterestFunc(ctx, id)
	}
	return nil
}

type emitted struct {
	eventType string
	data      interface{}
}

type mockEmitter struct {
	events []emitted
}

func (m *mockEmitter) Emit(eventType string, data interface{}) {
	m.events = append(m.events, emitted{eventType, data})
}

func (m *mockEmitter) types() []string {
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.eventType)
	}
	return out
}

// ===== Helpers =====

func floatPtr(f float64) *float64 { return &f }

func located(id int, lat, lon float64) models.User {
	return models.User{
		ID:        id,
		Email:     "user@example.com",
		Name:      "user",
		Role:      models.RoleUser,
		Latitude:  floatPtr(lat),
		Longitude: floatPtr(lon),
		Radius:    models.DefaultRadius,
		MinAge:    models.DefaultMinAge,
		MaxAge:    models.DefaultMaxAge,
	}
}

// userByID는 고정된 유저 맵으로 조회하는 getUserByIDFunc를 만듭니다
func userByID(users map[int]*models.User) func(context.Context, int) (*models.User, error) {
	return func(_ context.Context, id int) (*models.User, error) {
		if u, ok := users[id]; ok {
			copied := *u
			return &copied, nil
		}
		return nil, ErrUserNotFound
	}
}
