package domain

import (
	"context"
	"regexp"
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           string `gorm:"primaryKey;size:32" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username     string `gorm:"uniqueIndex;size:20;not null" json:"username"`
	Name         string `gorm:"size:64;not null" json:"name"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	Role         string `gorm:"size:16;not null;default:user" json:"role"`
	Avatar       string `gorm:"size:255" json:"avatar,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// UserStats 只读统计，读时聚合，不落库
type UserStats struct {
	TotalWorkouts  int     `json:"totalWorkouts"`
	TotalExercises int     `json:"totalExercises"`
	TotalEvents    int     `json:"totalEvents"`
	TotalDistance  float64 `json:"totalDistance"`
	TotalTime      float64 `json:"totalTime"`
	TotalWeight    float64 `json:"totalWeight"`
}

// 用户名规则：3-20 位，字母/数字/下划线
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

func ValidUsername(username string) bool { return usernameRe.MatchString(username) }

type UserStore interface {
	Create(ctx context.Context, u *User) error
	ByID(ctx context.Context, id string) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	// ByUsername 忽略大小写
	ByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, offset, limit int, q string) ([]User, int64, error)
	SoftDelete(ctx context.Context, id string) error
}
