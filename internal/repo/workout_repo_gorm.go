package repo

import (
	"context"

	"gorm.io/gorm"

	"fittrack-api/internal/domain"
)

type WorkoutRepo struct{ db *gorm.DB }

func NewWorkoutRepo(db *gorm.DB) *WorkoutRepo { return &WorkoutRepo{db: db} }

var _ domain.WorkoutStore = (*WorkoutRepo)(nil)

func (r *WorkoutRepo) ByUser(ctx context.Context, userID string) ([]domain.Workout, error) {
	var ws []domain.Workout
	err := r.db.WithContext(ctx).
		Preload("Exercises").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&ws).Error
	return ws, err
}

// Create 连同动作序列一次事务写入
func (r *WorkoutRepo) Create(ctx context.Context, w *domain.Workout) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(w).Error // 关联的 exercises 一并落库
	})
}

// Delete 仅限 owner，动作随之整体删除
func (r *WorkoutRepo) Delete(ctx context.Context, id uint, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Workout{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Delete(&domain.Exercise{}, "workout_id = ?", id).Error
	})
}
