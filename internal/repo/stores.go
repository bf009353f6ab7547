package repo

import (
	"gorm.io/gorm"

	"fittrack-api/internal/domain"
)

// Stores 四个实体存储的装配包，gorm 与内存实现都装得进来
type Stores struct {
	Users         domain.UserStore
	Events        domain.EventStore
	Registrations domain.RegistrationStore
	Workouts      domain.WorkoutStore
}

func NewGormStores(db *gorm.DB) Stores {
	return Stores{
		Users:         NewUserRepo(db),
		Events:        NewEventRepo(db),
		Registrations: NewRegistrationRepo(db),
		Workouts:      NewWorkoutRepo(db),
	}
}
