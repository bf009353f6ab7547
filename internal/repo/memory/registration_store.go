package memory

import (
	"context"
	"sync"
	"time"

	"fittrack-api/internal/domain"
)

// RegistrationStore 台账 + 计数的内存实现。
// 所有写路径都拿 mu 串行化；名额占用/释放经由 EventStore 的
// 原子小步（tryReserve / release），抢最后一个名额只会成功一次。
type RegistrationStore struct {
	mu     sync.Mutex
	events *EventStore
	regs   []domain.Registration
	nextID uint
}

func NewRegistrationStore(events *EventStore) *RegistrationStore {
	return &RegistrationStore{events: events, nextID: 1}
}

var _ domain.RegistrationStore = (*RegistrationStore)(nil)

// tryReserve 占一个名额：满了返回 ErrEventFull
func (s *EventStore) tryReserve(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	if s.events[i].IsFull() {
		return domain.ErrEventFull
	}
	s.events[i].Participants++
	return nil
}

// release 释放一个名额，下限 0
func (s *EventStore) release(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 && s.events[i].Participants > 0 {
		s.events[i].Participants--
	}
}

func (s *RegistrationStore) Register(_ context.Context, userID string, eventID uint) (*domain.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.regs {
		if s.regs[i].UserID == userID && s.regs[i].EventID == eventID {
			return nil, domain.ErrAlreadyRegistered
		}
	}
	if err := s.events.tryReserve(eventID); err != nil {
		return nil, err
	}
	reg := domain.Registration{
		ID:           s.nextID,
		UserID:       userID,
		EventID:      eventID,
		RegisteredAt: time.Now().UTC(),
	}
	s.nextID++
	s.regs = append(s.regs, reg)
	return &reg, nil
}

func (s *RegistrationStore) Unregister(_ context.Context, userID string, eventID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.regs {
		if s.regs[i].UserID == userID && s.regs[i].EventID == eventID {
			s.regs = append(s.regs[:i], s.regs[i+1:]...)
			s.events.release(eventID)
			return nil
		}
	}
	return domain.ErrNotRegistered
}

func (s *RegistrationStore) IsRegistered(_ context.Context, userID string, eventID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.regs {
		if s.regs[i].UserID == userID && s.regs[i].EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (s *RegistrationStore) EventIDsForUser(_ context.Context, userID string) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uint
	for i := range s.regs {
		if s.regs[i].UserID == userID {
			ids = append(ids, s.regs[i].EventID)
		}
	}
	return ids, nil
}

func (s *RegistrationStore) ListForEvent(_ context.Context, eventID uint) ([]domain.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Registration
	for i := range s.regs {
		if s.regs[i].EventID == eventID {
			out = append(out, s.regs[i])
		}
	}
	return out, nil
}

// purgeEvent 赛事删除后的连带清理
func (s *RegistrationStore) purgeEvent(eventID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.regs[:0]
	for _, reg := range s.regs {
		if reg.EventID != eventID {
			kept = append(kept, reg)
		}
	}
	s.regs = kept
}

func (s *RegistrationStore) CountForUser(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for i := range s.regs {
		if s.regs[i].UserID == userID {
			n++
		}
	}
	return n, nil
}
