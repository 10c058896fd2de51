package service

import (
	"context"

	"radar/pkg/apperror"
	"radar/pkg/auth"
	"radar/pkg/dto"
	"radar/pkg/logger"
	"radar/pkg/models"
	"radar/services/auth/repository"
)

// UserAccounts는 user 서비스의 계정 기능입니다
type UserAccounts interface {
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	VerifyCredentials(ctx context.Context, req dto.LoginRequest) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
}

// TokenIssuer는 auth.TokenManager가 구현합니다
type TokenIssuer interface {
	Issue(userID int, role models.Role) (string, error)
}

type AuthService struct {
	repo   *repository.AuthRepository
	users  UserAccounts
	tokens TokenIssuer
}

func NewAuthService(repo *repository.AuthRepository, users UserAccounts, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, users: users, tokens: tokens}
}

// 회원가입 후 토큰 발급
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	user, err := s.users.RegisterUser(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// 로그인 후 토큰 발급
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.VerifyCredentials(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// 현재 로그인한 유저 조회
func (s *AuthService) Me(ctx context.Context, caller auth.Caller) (*dto.UserDTO, error) {
	user, err := s.users.GetUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	result := dto.ToUserDTO(*user)
	return &result, nil
}

// 로그아웃: 토큰 폐기
func (s *AuthService) Logout(ctx context.Context, caller auth.Caller) error {
	if !s.repo.Enabled() {
		logger.Warn(logger.LogEventLogout, "token revocation disabled, token stays valid until expiry", map[string]interface{}{"user_id": caller.ID})
		return nil
	}

	if err := s.repo.RevokeToken(ctx, caller); err != nil {
		return apperror.Unavailable("Token store unavailable", err)
	}

	logger.Info(logger.LogEventLogout, "user logged out", map[string]interface{}{"user_id": caller.ID})
	return nil
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &dto.AuthResponse{User: dto.ToUserDTO(*user), Token: token}, nil
}
