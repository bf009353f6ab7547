// Package memory 提供一套内存版实体存储：单机演示与测试用的替身。
// 与 gorm 实现遵守同一套接口与错误语义；数组即"数据库"，ID 单调递增。
package memory

import (
	"context"
	"strings"
	"sync"

	"fittrack-api/internal/domain"
	"fittrack-api/pkg/utils"
)

type UserStore struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewUserStore() *UserStore { return &UserStore{} }

var _ domain.UserStore = (*UserStore)(nil)

func (s *UserStore) Create(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range s.users {
		if ex.Email == u.Email {
			return domain.ErrEmailTaken
		}
		if strings.EqualFold(ex.Username, u.Username) {
			return domain.ErrUsernameTaken
		}
	}
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	s.users = append(s.users, *u)
	return nil
}

func (s *UserStore) ByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *UserStore) ByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		// 邮箱匹配区分大小写，和参照实现一致
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *UserStore) ByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if strings.EqualFold(s.users[i].Username, username) {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *UserStore) Update(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			continue
		}
		if s.users[i].Email == u.Email {
			return domain.ErrEmailTaken
		}
		if strings.EqualFold(s.users[i].Username, u.Username) {
			return domain.ErrUsernameTaken
		}
	}
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = *u
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *UserStore) List(_ context.Context, offset, limit int, q string) ([]domain.User, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []domain.User
	needle := strings.ToLower(strings.TrimSpace(q))
	for _, u := range s.users {
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Email), needle) &&
			!strings.Contains(strings.ToLower(u.Name), needle) &&
			!strings.Contains(strings.ToLower(u.Username), needle) {
			continue
		}
		matched = append(matched, u)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	out := make([]domain.User, len(matched))
	copy(out, matched)
	return out, total, nil
}

func (s *UserStore) SoftDelete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
