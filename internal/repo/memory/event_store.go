package memory

import (
	"context"
	"sync"
	"time"

	"fittrack-api/internal/domain"
)

type EventStore struct {
	mu     sync.RWMutex
	events []domain.Event
	nextID uint

	// 删赛事时连带清理报名台账（NewStores 里接线）
	onDelete func(eventID uint)
}

func NewEventStore() *EventStore { return &EventStore{nextID: 1} }

var _ domain.EventStore = (*EventStore)(nil)

func (s *EventStore) List(_ context.Context) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *EventStore) ByID(_ context.Context, id uint) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		e := s.events[i]
		return &e, nil
	}
	return nil, domain.ErrNotFound
}

func (s *EventStore) Create(_ context.Context, e *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	s.events = append(s.events, *e)
	return nil
}

func (s *EventStore) Update(_ context.Context, id uint, patch domain.EventPatch) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	e := &s.events[i]
	// 名额上限不得压到在册人数以下，否则计数区间被改表单打穿
	if patch.MaxParticipants != nil && *patch.MaxParticipants < e.Participants {
		v := domain.NewValidationError()
		v.Add("maxParticipants", "cannot be less than current participants")
		return nil, v.OrNil()
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.DateDisplay != nil {
		e.DateDisplay = *patch.DateDisplay
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.MaxParticipants != nil {
		e.MaxParticipants = *patch.MaxParticipants
	}
	if patch.Image != nil {
		e.Image = *patch.Image
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.Distance != nil {
		e.Distance = *patch.Distance
	}
	if patch.Difficulty != nil {
		e.Difficulty = *patch.Difficulty
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	e.UpdatedAt = time.Now()
	out := *e
	return &out, nil
}

func (s *EventStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	s.events = append(s.events[:i], s.events[i+1:]...)
	s.mu.Unlock()
	// 台账清理在锁外做，避免和 tryReserve 的取锁顺序打架
	if s.onDelete != nil {
		s.onDelete(id)
	}
	return nil
}

// 台账在同一把锁下改计数时用（见 registration_store.go）
func (s *EventStore) index(id uint) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}
