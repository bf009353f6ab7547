package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fittrack-api/internal/domain"
)

type EventRepo struct{ db *gorm.DB }

func NewEventRepo(db *gorm.DB) *EventRepo { return &EventRepo{db: db} }

var _ domain.EventStore = (*EventRepo)(nil)

func (r *EventRepo) List(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	// 插入顺序 = 自增 ID 升序
	if err := r.db.WithContext(ctx).Order("id asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepo) ByID(ctx context.Context, id uint) (*domain.Event, error) {
	var e domain.Event
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// Update 浅合并补丁；participants 不在补丁里，计数只走报名台账
func (r *EventRepo) Update(ctx context.Context, id uint, patch domain.EventPatch) (*domain.Event, error) {
	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Date != nil {
		fields["date"] = *patch.Date
	}
	if patch.DateDisplay != nil {
		fields["date_display"] = *patch.DateDisplay
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.MaxParticipants != nil {
		fields["max_participants"] = *patch.MaxParticipants
	}
	if patch.Image != nil {
		fields["image"] = *patch.Image
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	if patch.Distance != nil {
		fields["distance"] = *patch.Distance
	}
	if patch.Difficulty != nil {
		fields["difficulty"] = *patch.Difficulty
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}

	var out *domain.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e domain.Event
		// 行锁和报名路径串行化，检查和改写之间不会混进新报名
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&e, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if patch.MaxParticipants != nil && *patch.MaxParticipants < e.Participants {
			v := domain.NewValidationError()
			v.Add("maxParticipants", "cannot be less than current participants")
			return v.OrNil()
		}
		if len(fields) > 0 {
			if err := tx.Model(&e).Updates(fields).Error; err != nil {
				return err
			}
		}
		out = &e
		return nil
	})
	return out, err
}

func (r *EventRepo) Delete(ctx context.Context, id uint) error {
	// 赛事和它的报名台账一起删
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Event{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Delete(&domain.Registration{}, "event_id = ?", id).Error
	})
}
