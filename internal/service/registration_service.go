package service

import (
	"context"

	"go.uber.org/zap"

	"fittrack-api/internal/domain"
)

// RegistrationService 报名台账门面：存储层保证原子性，
// 这里加日志、指标和赛事列表缓存失效。
type RegistrationService struct {
	regs   domain.RegistrationStore
	events *EventService
	log    *zap.Logger
}

func NewRegistrationService(regs domain.RegistrationStore, events *EventService, log *zap.Logger) *RegistrationService {
	return &RegistrationService{regs: regs, events: events, log: log}
}

func (s *RegistrationService) Register(ctx context.Context, userID string, eventID uint) (*domain.Registration, error) {
	reg, err := s.regs.Register(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	registrationsTotal.WithLabelValues("register").Inc()
	s.events.InvalidateList(ctx)
	s.log.Info("event registration",
		zap.String("user_id", userID), zap.Uint("event_id", eventID))
	return reg, nil
}

func (s *RegistrationService) Unregister(ctx context.Context, userID string, eventID uint) error {
	if err := s.regs.Unregister(ctx, userID, eventID); err != nil {
		return err
	}
	registrationsTotal.WithLabelValues("unregister").Inc()
	s.events.InvalidateList(ctx)
	s.log.Info("event unregistration",
		zap.String("user_id", userID), zap.Uint("event_id", eventID))
	return nil
}

func (s *RegistrationService) IsRegistered(ctx context.Context, userID string, eventID uint) (bool, error) {
	return s.regs.IsRegistered(ctx, userID, eventID)
}

// EventIDsForUser "我的赛事" 徽标用
func (s *RegistrationService) EventIDsForUser(ctx context.Context, userID string) ([]uint, error) {
	ids, err := s.regs.EventIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

// Roster 管理端查看某赛事的报名名单
func (s *RegistrationService) Roster(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	if _, err := s.events.Get(ctx, eventID); err != nil {
		return nil, err
	}
	return s.regs.ListForEvent(ctx, eventID)
}
