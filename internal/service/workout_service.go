package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fittrack-api/internal/domain"
)

type WorkoutService struct {
	workouts domain.WorkoutStore
	regs     domain.RegistrationStore
	log      *zap.Logger
	now      func() time.Time
}

func NewWorkoutService(workouts domain.WorkoutStore, regs domain.RegistrationStore, log *zap.Logger) *WorkoutService {
	return &WorkoutService{workouts: workouts, regs: regs, log: log, now: time.Now}
}

func (s *WorkoutService) ForUser(ctx context.Context, userID string) ([]domain.Workout, error) {
	ws, err := s.workouts.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		ws = []domain.Workout{}
	}
	return ws, nil
}

// Create 客户端先在本地攒好整段动作序列，这里一次性落库。
// 日期与时间戳都由服务端盖章。
func (s *WorkoutService) Create(ctx context.Context, userID string, exercises []domain.Exercise, notes string) (*domain.Workout, error) {
	v := domain.NewValidationError()
	if len(exercises) == 0 {
		v.Add("exercises", "at least one exercise is required")
	}
	for i := range exercises {
		if strings.TrimSpace(exercises[i].Exercise) == "" {
			v.Add(fmt.Sprintf("exercises[%d].exercise", i), "exercise name is required")
		}
		switch exercises[i].WeightUnit {
		case "":
			exercises[i].WeightUnit = domain.WeightUnitKg
		case domain.WeightUnitKg, domain.WeightUnitKm:
		default:
			v.Add(fmt.Sprintf("exercises[%d].weightUnit", i), "weightUnit must be kg or km")
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	w := &domain.Workout{
		UserID:    userID,
		Date:      s.now().Format("2006-01-02"),
		Exercises: exercises,
		Notes:     notes,
	}
	if err := s.workouts.Create(ctx, w); err != nil {
		return nil, err
	}
	s.log.Info("workout created",
		zap.Uint("id", w.ID), zap.String("user_id", userID), zap.Int("exercises", len(w.Exercises)))
	return w, nil
}

func (s *WorkoutService) Delete(ctx context.Context, id uint, userID string) error {
	if err := s.workouts.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.log.Info("workout deleted", zap.Uint("id", id), zap.String("user_id", userID))
	return nil
}

// StatsFor 读时聚合：对动作列表做一次严格可复现的折叠，
// 缺失/非数字字段按 0 计
func (s *WorkoutService) StatsFor(ctx context.Context, userID string) (*domain.UserStats, error) {
	ws, err := s.workouts.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := &domain.UserStats{TotalWorkouts: len(ws)}
	for _, w := range ws {
		stats.TotalExercises += len(w.Exercises)
		for _, ex := range w.Exercises {
			stats.TotalTime += domain.ParseDecimal(ex.Time)
			switch ex.WeightUnit {
			case domain.WeightUnitKm:
				stats.TotalDistance += domain.ParseDecimal(ex.Weight)
			case domain.WeightUnitKg:
				stats.TotalWeight += domain.ParseDecimal(ex.Weight)
			}
		}
	}
	n, err := s.regs.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.TotalEvents = int(n)
	return stats, nil
}
