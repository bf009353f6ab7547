package memory

import "fittrack-api/internal/repo"

// NewStores 组一套互相接好线的内存存储
func NewStores() repo.Stores {
	events := NewEventStore()
	regs := NewRegistrationStore(events)
	events.onDelete = regs.purgeEvent
	return repo.Stores{
		Users:         NewUserStore(),
		Events:        events,
		Registrations: regs,
		Workouts:      NewWorkoutStore(),
	}
}
