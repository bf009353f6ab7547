package domain

import (
	"context"
	"time"
)

// 赛事分类 / 难度为固定枚举
var (
	EventCategories = []string{"RUNNING", "CROSSFIT", "TRIATHLON", "CYCLING", "SWIMMING", "OTHER"}
	Difficulties    = []string{"Beginner", "Intermediate", "Advanced"}
)

func ValidCategory(c string) bool {
	for _, v := range EventCategories {
		if v == c {
			return true
		}
	}
	return false
}

func ValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

// DefaultEventImage 表单未传图片时的占位图
const DefaultEventImage = "/vibrant-sports-event.png"

type Event struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Title           string `gorm:"size:191;not null" json:"title"`
	Date            string `gorm:"size:10;not null" json:"date"` // YYYY-MM-DD
	DateDisplay     string `gorm:"size:32" json:"dateDisplay"`
	Location        string `gorm:"size:191;not null" json:"location"`
	Participants    int    `gorm:"not null;default:0" json:"participants"`
	MaxParticipants int    `gorm:"not null" json:"maxParticipants"`
	Image           string `gorm:"size:255" json:"image"`
	Category        string `gorm:"size:16;not null" json:"category"`
	Distance        string `gorm:"size:64;not null" json:"distance"`
	Difficulty      string `gorm:"size:16;not null" json:"difficulty"`
	Description     string `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Event) TableName() string { return "events" }

func (e *Event) Remaining() int { return e.MaxParticipants - e.Participants }

func (e *Event) IsFull() bool { return e.Participants >= e.MaxParticipants }

// EventPatch 浅合并更新；nil 字段不动。
// 注意没有 Participants：名额计数只允许经由报名台账变更。
type EventPatch struct {
	Title           *string `json:"title"`
	Date            *string `json:"date"`
	DateDisplay     *string `json:"-"`
	Location        *string `json:"location"`
	MaxParticipants *int    `json:"maxParticipants"`
	Image           *string `json:"image"`
	Category        *string `json:"category"`
	Distance        *string `json:"distance"`
	Difficulty      *string `json:"difficulty"`
	Description     *string `json:"description"`
}

type EventStore interface {
	// List 按插入顺序（即 ID 升序）返回全部赛事
	List(ctx context.Context) ([]Event, error)
	ByID(ctx context.Context, id uint) (*Event, error)
	Create(ctx context.Context, e *Event) error
	// Update 新的 maxParticipants 不得低于当前在册人数，
	// 否则返回 maxParticipants 字段的 ValidationError
	Update(ctx context.Context, id uint, patch EventPatch) (*Event, error)
	Delete(ctx context.Context, id uint) error
}
