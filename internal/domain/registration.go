package domain

import (
	"context"
	"time"
)

// Registration 报名台账条目，(userId,eventId) 唯一
type Registration struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"size:32;not null;uniqueIndex:idx_reg_user_event" json:"userId"`
	EventID      uint      `gorm:"not null;uniqueIndex:idx_reg_user_event" json:"eventId"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func (Registration) TableName() string { return "registrations" }

// RegistrationStore 维护台账并保证 participants 计数与之一致。
// Register / Unregister 必须原子：gorm 实现走事务 + 行锁，
// 内存实现持锁完成整段读改写，并发抢最后一个名额只能成功一个。
type RegistrationStore interface {
	Register(ctx context.Context, userID string, eventID uint) (*Registration, error)
	Unregister(ctx context.Context, userID string, eventID uint) error
	IsRegistered(ctx context.Context, userID string, eventID uint) (bool, error)
	EventIDsForUser(ctx context.Context, userID string) ([]uint, error)
	ListForEvent(ctx context.Context, eventID uint) ([]Registration, error)
	CountForUser(ctx context.Context, userID string) (int64, error)
}
