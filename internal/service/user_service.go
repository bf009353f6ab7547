package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"fittrack-api/internal/core/auth"
	"fittrack-api/internal/domain"
	"fittrack-api/pkg/utils"
)

type UserService struct {
	users    domain.UserStore
	workouts *WorkoutService
	jwter    *auth.JWTer
	log      *zap.Logger
}

func NewUserService(users domain.UserStore, workouts *WorkoutService, jwter *auth.JWTer, log *zap.Logger) *UserService {
	return &UserService{users: users, workouts: workouts, jwter: jwter, log: log}
}

// AuthResult 登录/注册统一出参：令牌 + 带统计的用户
type AuthResult struct {
	Token string       `json:"token"`
	User  *ProfileView `json:"user"`
}

// ProfileView 用户档案 + 读时聚合的统计
type ProfileView struct {
	domain.User
	Stats *domain.UserStats `json:"stats,omitempty"`
}

func (s *UserService) Register(ctx context.Context, email, password, name, username string) (*AuthResult, error) {
	v := domain.NewValidationError()
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	if email == "" {
		v.Add("email", "email is required")
	}
	if len(password) < 6 {
		v.Add("password", "password must be at least 6 characters")
	}
	if name == "" {
		v.Add("name", "name is required")
	}
	if !domain.ValidUsername(username) {
		v.Add("username", "username must be 3-20 characters, letters, digits and underscore only")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	// 邮箱区分大小写精确比对；用户名忽略大小写
	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.ByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Username:     username,
		Name:         name,
		PasswordHash: utils.HashPassword(password),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("username", u.Username))
	return s.authResult(ctx, u)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.ByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return s.authResult(ctx, u)
}

// CheckUsername 注册表单实时查重；格式不合法直接算不可用
func (s *UserService) CheckUsername(ctx context.Context, username string) (bool, error) {
	if !domain.ValidUsername(username) {
		return false, nil
	}
	_, err := s.users.ByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (s *UserService) Me(ctx context.Context, uid string) (*ProfileView, error) {
	u, err := s.users.ByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, u)
}

// ProfilePatch 档案更新：nil 字段不动
type ProfilePatch struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Avatar *string `json:"avatar"`
}

func (s *UserService) UpdateProfile(ctx context.Context, uid string, patch ProfilePatch) (*ProfileView, error) {
	u, err := s.users.ByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		u.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) != "" {
		email := strings.TrimSpace(*patch.Email)
		if email != u.Email {
			if _, err := s.users.ByEmail(ctx, email); err == nil {
				return nil, domain.ErrEmailTaken
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			u.Email = email
		}
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("profile updated", zap.String("user_id", uid))
	return s.withStats(ctx, u)
}

func (s *UserService) List(ctx context.Context, offset, limit int, q string) ([]domain.User, int64, error) {
	return s.users.List(ctx, offset, limit, q)
}

func (s *UserService) Ban(ctx context.Context, id string) error {
	return s.users.SoftDelete(ctx, id)
}

func (s *UserService) authResult(ctx context.Context, u *domain.User) (*AuthResult, error) {
	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	view, err := s.withStats(ctx, u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: tok, User: view}, nil
}

func (s *UserService) withStats(ctx context.Context, u *domain.User) (*ProfileView, error) {
	stats, err := s.workouts.StatsFor(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileView{User: *u, Stats: stats}, nil
}
