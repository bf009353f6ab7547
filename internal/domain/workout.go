package domain

import (
	"context"
	"strconv"
	"strings"
	"time"
)

const (
	WeightUnitKg = "kg" // 负重
	WeightUnitKm = "km" // 距离
)

// Exercise 训练条目。数值字段按自由文本收，聚合时宽松解析，
// 缺失或非数字一律按 0 计，绝不因此报错。
type Exercise struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	WorkoutID  uint   `gorm:"index;not null" json:"-"`
	Exercise   string `gorm:"size:100;not null" json:"exercise"`
	Sets       string `gorm:"size:8" json:"sets,omitempty"`
	Reps       string `gorm:"size:8" json:"reps,omitempty"`
	Weight     string `gorm:"size:16" json:"weight,omitempty"`
	WeightUnit string `gorm:"size:4;not null;default:kg" json:"weightUnit"`
	Time       string `gorm:"size:8" json:"time,omitempty"` // 分钟
}

func (Exercise) TableName() string { return "exercises" }

type Workout struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"size:32;index;not null" json:"userId"`
	Date      string     `gorm:"size:10;not null" json:"date"` // YYYY-MM-DD
	Exercises []Exercise `gorm:"constraint:OnDelete:CASCADE" json:"exercises"`
	Notes     string     `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Workout) TableName() string { return "workouts" }

// ParseDecimal 宽松十进制解析，解析不了返回 0
func ParseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// WorkoutStore 训练记录归单个用户所有；整体创建、整体删除
type WorkoutStore interface {
	ByUser(ctx context.Context, userID string) ([]Workout, error)
	Create(ctx context.Context, w *Workout) error
	// Delete 仅限 owner；id 不存在或非本人返回 ErrNotFound
	Delete(ctx context.Context, id uint, userID string) error
}
