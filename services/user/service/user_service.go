package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"radar/pkg/apperror"
	"radar/pkg/auth"
	"radar/pkg/dto"
	"radar/pkg/logger"
	"radar/pkg/models"
	eventtypes "radar/pkg/types/eventtype"

	"github.com/samber/lo"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	MinPasswordLength = 6
)

var (
	ErrRegisterFieldsRequired = apperror.Validation("Email, password and name are required")
	ErrInvalidEmail           = apperror.Validation("Invalid email format")
	ErrPasswordTooShort       = apperror.Validation("Password must be at least 6 characters")
	ErrNameRequired           = apperror.Validation("Name cannot be empty")

	ErrLoginFieldsRequired = apperror.Validation("Email and password are required")
	ErrInvalidCredentials  = apperror.Authentication("Invalid email or password")

	ErrPasswordFieldsRequired = apperror.Validation("Current password and new password are required")
	ErrPasswordUnchanged      = apperror.Validation("New password must be different from current password")
	ErrCurrentPasswordWrong   = apperror.Validation("Current password is incorrect")

	ErrUserNotFound = apperror.NotFound("User not found")
)

type UserService struct {
	repo      UserStore
	interests InterestStore
	events    EventEmitter
}

func NewUserService(repo UserStore, interests InterestStore, events EventEmitter) *UserService {
	return &UserService{repo: repo, interests: interests, events: events}
}

// 회원가입. 비밀번호는 bcrypt 해시로 저장
func (s *UserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || req.Password == "" || name == "" {
		return nil, ErrRegisterFieldsRequired
	}
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &models.User{
		Email:    email,
		Password: hash,
		Name:     name,
		Role:     models.RoleUser,
	}
	if err := s.repo.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(logger.LogEventRegister, "user registered", map[string]interface{}{"user_id": user.ID})
	s.events.Emit(eventtypes.EventTypeUserRegistered, eventtypes.UserEvent{UserID: user.ID, ActorID: user.ID})

	return user, nil
}

// 로그인 자격 증명 확인
func (s *UserService) VerifyCredentials(ctx context.Context, req dto.LoginRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrLoginFieldsRequired
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			logger.Warn(logger.LogEventLoginFail, "unknown email", nil)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		logger.Warn(logger.LogEventLoginFail, "wrong password", map[string]interface{}{"user_id": user.ID})
		return nil, ErrInvalidCredentials
	}

	logger.Info(logger.LogEventLogin, "user logged in", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// 특정 유저 조회
func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFoundAsUser(err)
	}
	return user, nil
}

// 유저 리스트 조회 (관리자)
func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*dto.UserListResponse, error) {
	page, limit = NormalizePage(page, limit)

	users, total, err := s.repo.ListUsers(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	return &dto.UserListResponse{
		Users:      dto.ToUserDTOs(users),
		Pagination: dto.NewPagination(total, page, limit),
	}, nil
}

// NormalizePage는 잘못된 page, limit을 기본값으로 되돌리고 limit 상한을 적용합니다
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// 프로필 수정 (name, email)
func (s *UserService) UpdateProfile(ctx context.Context, caller auth.Caller, id int, update dto.ProfileUpdate) (*models.User, error) {
	user, err := s.loadAuthorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Name.Set {
		name, ok := update.Name.Get()
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, ErrNameRequired
		}
		fields["name"] = name
	}
	if update.Email.Set {
		email, ok := update.Email.Get()
		email = strings.TrimSpace(email)
		if !ok || !validEmail(email) {
			return nil, ErrInvalidEmail
		}
		fields["email"] = email
	}

	if len(fields) == 0 {
		return user, nil
	}

	if err := s.repo.UpdateUserFields(ctx, id, fields); err != nil {
		return nil, err
	}

	logger.Info(logger.LogEventUserUpdate, "profile updated", map[string]interface{}{"user_id": id, "actor_id": caller.ID})
	s.events.Emit(eventtypes.EventTypeUserUpdated, eventtypes.UserEvent{UserID: id, ActorID: caller.ID, Fields: lo.Keys(fields)})

	return s.GetUser(ctx, id)
}

// 비밀번호 변경
func (s *UserService) UpdatePassword(ctx context.Context, caller auth.Caller, id int, req dto.PasswordUpdateRequest) error {
	user, err := s.loadAuthorized(ctx, caller, id)
	if err != nil {
		return err
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return ErrPasswordFieldsRequired
	}
	if req.CurrentPassword == req.NewPassword {
		return ErrPasswordUnchanged
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return ErrCurrentPasswordWrong
	}
	if len(req.NewPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := s.repo.UpdateUserFields(ctx, id, map[string]interface{}{"password": hash}); err != nil {
		return err
	}

	logger.Info(logger.LogEventPasswordChange, "password changed", map[string]interface{}{"user_id": id, "actor_id": caller.ID})
	s.events.Emit(eventtypes.EventTypeUserPasswordChanged, eventtypes.UserEvent{UserID: id, ActorID: caller.ID})
	return nil
}

// 유저 관심사 교체
func (s *UserService) ReplaceInterests(ctx context.Context, caller auth.Caller, id int, interestIDs []string) (*models.User, error) {
	user, err := s.loadAuthorized(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	interests, err := s.interests.GetInterestsByIDs(ctx, lo.Uniq(interestIDs))
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceInterests(ctx, user, interests); err != nil {
		return nil, err
	}

	logger.Info(logger.LogEventInterestChange, "user interests replaced", map[string]interface{}{"user_id": id, "count": len(interests)})
	s.events.Emit(eventtypes.EventTypeUserInterestsUpdated, eventtypes.UserEvent{UserID: id, ActorID: caller.ID})

	return s.GetUser(ctx, id)
}

// 유저 삭제 (관리자)
func (s *UserService) DeleteUser(ctx context.Context, caller auth.Caller, id int) error {
	if err := auth.RequireRole(caller, models.RoleAdmin); err != nil {
		return err
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return notFoundAsUser(err)
	}

	logger.Info(logger.LogEventUserDelete, "user deleted", map[string]interface{}{"user_id": id, "actor_id": caller.ID})
	s.events.Emit(eventtypes.EventTypeUserDeleted, eventtypes.UserEvent{UserID: id, ActorID: caller.ID})
	return nil
}

// AuthorizeTarget은 요청 본문을 읽기 전에 대상 유저 존재(404)와 접근 권한(403)을 확인합니다
func (s *UserService) AuthorizeTarget(ctx context.Context, caller auth.Caller, id int) error {
	_, err := s.loadAuthorized(ctx, caller, id)
	return err
}

// 대상 유저를 조회한 뒤 본인 또는 관리자인지 확인
func (s *UserService) loadAuthorized(ctx context.Context, caller auth.Caller, id int) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(caller, id, models.RoleAdmin); err != nil {
		return nil, err
	}
	return user, nil
}

func notFoundAsUser(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Kind == apperror.KindNotFound {
		return ErrUserNotFound
	}
	return err
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
