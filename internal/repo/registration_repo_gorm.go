package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fittrack-api/internal/domain"
)

type RegistrationRepo struct{ db *gorm.DB }

func NewRegistrationRepo(db *gorm.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

var _ domain.RegistrationStore = (*RegistrationRepo)(nil)

// Register 一个事务内完成：锁行 → 查重 → 校验名额 → 计数 +1 → 写台账。
// SELECT ... FOR UPDATE 把并发报名串行化，最后一个名额不可能被抢两次。
func (r *RegistrationRepo) Register(ctx context.Context, userID string, eventID uint) (*domain.Registration, error) {
	var reg *domain.Registration
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e domain.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&e, "id = ?", eventID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		var dup int64
		if err := tx.Model(&domain.Registration{}).
			Where("user_id = ? AND event_id = ?", userID, eventID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return domain.ErrAlreadyRegistered
		}

		if e.IsFull() {
			return domain.ErrEventFull
		}

		if err := tx.Model(&domain.Event{}).Where("id = ?", eventID).
			UpdateColumn("participants", gorm.Expr("participants + 1")).Error; err != nil {
			return err
		}

		reg = &domain.Registration{
			UserID:       userID,
			EventID:      eventID,
			RegisteredAt: time.Now().UTC(),
		}
		return tx.Create(reg).Error
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// Unregister 同样整段进事务；计数下限 0
func (r *RegistrationRepo) Unregister(ctx context.Context, userID string, eventID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e domain.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&e, "id = ?", eventID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND event_id = ?", userID, eventID).
			Delete(&domain.Registration{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotRegistered
		}

		return tx.Model(&domain.Event{}).
			Where("id = ? AND participants > 0", eventID).
			UpdateColumn("participants", gorm.Expr("participants - 1")).Error
	})
}

func (r *RegistrationRepo) IsRegistered(ctx context.Context, userID string, eventID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Registration{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&n).Error
	return n > 0, err
}

func (r *RegistrationRepo) EventIDsForUser(ctx context.Context, userID string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.Registration{}).
		Where("user_id = ?", userID).
		Order("registered_at asc").
		Pluck("event_id", &ids).Error
	return ids, err
}

func (r *RegistrationRepo) ListForEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	var regs []domain.Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("registered_at asc").
		Find(&regs).Error
	return regs, err
}

func (r *RegistrationRepo) CountForUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Registration{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}
