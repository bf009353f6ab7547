package memory

import (
	"context"
	"sync"
	"time"

	"fittrack-api/internal/domain"
)

type WorkoutStore struct {
	mu             sync.RWMutex
	workouts       []domain.Workout
	nextID         uint
	nextExerciseID uint
}

func NewWorkoutStore() *WorkoutStore { return &WorkoutStore{nextID: 1, nextExerciseID: 1} }

var _ domain.WorkoutStore = (*WorkoutStore)(nil)

func (s *WorkoutStore) ByUser(_ context.Context, userID string) ([]domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Workout
	for _, w := range s.workouts {
		if w.UserID == userID {
			cp := w
			cp.Exercises = append([]domain.Exercise(nil), w.Exercises...)
			out = append(out, cp)
		}
	}
	return out, nil
}

// Create 训练和动作序列一次性写入，动作 ID 同样单调分配
func (s *WorkoutStore) Create(_ context.Context, w *domain.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.nextID
	s.nextID++
	now := time.Now()
	w.CreatedAt, w.UpdatedAt = now, now
	for i := range w.Exercises {
		w.Exercises[i].ID = s.nextExerciseID
		s.nextExerciseID++
		w.Exercises[i].WorkoutID = w.ID
	}
	cp := *w
	cp.Exercises = append([]domain.Exercise(nil), w.Exercises...)
	s.workouts = append(s.workouts, cp)
	return nil
}

func (s *WorkoutStore) Delete(_ context.Context, id uint, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workouts {
		if s.workouts[i].ID == id {
			if s.workouts[i].UserID != userID {
				// 非本人当作不存在，避免泄露他人记录
				return domain.ErrNotFound
			}
			s.workouts = append(s.workouts[:i], s.workouts[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
