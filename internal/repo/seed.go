package repo

import (
	"context"
	"fmt"

	"fittrack-api/internal/domain"
	"fittrack-api/pkg/utils"
)

// Seed 灌入演示数据集（memory 驱动默认执行，SQL 驱动由 db.seed 开关控制）。
// 已有用户则跳过，避免重复灌。
func Seed(ctx context.Context, s Stores) error {
	if _, err := s.Users.ByEmail(ctx, "admin@fittrack.com"); err == nil {
		return nil
	}

	users := []domain.User{
		{ID: "1", Email: "admin@fittrack.com", Username: "admin", Name: "Admin FitTrack",
			Role: domain.RoleAdmin, Avatar: "/admin-avatar.png",
			PasswordHash: utils.HashPassword("Admin123!")},
		{ID: "2", Email: "carlos@example.com", Username: "carlos_runner", Name: "Carlos Rodríguez",
			Role: domain.RoleUser, Avatar: "/male-athlete.png",
			PasswordHash: utils.HashPassword("Carlos123!")},
		{ID: "3", Email: "maria@example.com", Username: "maria123", Name: "María González",
			Role: domain.RoleAdmin, Avatar: "/athlete-female.jpg",
			PasswordHash: utils.HashPassword("Maria123!")},
	}
	for i := range users {
		if err := s.Users.Create(ctx, &users[i]); err != nil {
			return fmt.Errorf("seed user %s: %w", users[i].Email, err)
		}
	}

	// 赛事 2 的在册人数预留一个名额给下面的种子报名
	events := []domain.Event{
		{Title: "Maratón Ciudad 2025", Date: "2025-04-15", DateDisplay: "15 ABR 2025",
			Location: "Estadio Nacional", Participants: 2500, MaxParticipants: 3000,
			Image: "/marathon-runners-city.jpg", Category: "RUNNING", Distance: "42.2 km",
			Difficulty: "Advanced", Description: "Maratón oficial de la ciudad con recorrido por los principales monumentos"},
		{Title: "CrossFit Challenge", Date: "2025-05-08", DateDisplay: "8 MAY 2025",
			Location: "Centro Deportivo Elite", Participants: 849, MaxParticipants: 1000,
			Image: "/crossfit-competition-athletes.jpg", Category: "CROSSFIT", Distance: "N/A",
			Difficulty: "Intermediate", Description: "Competición de CrossFit con múltiples categorías"},
		{Title: "Triatlón Costa", Date: "2025-06-02", DateDisplay: "2 JUN 2025",
			Location: "Playa del Sol", Participants: 1200, MaxParticipants: 1500,
			Image: "/triathlon-swimming-ocean.jpg", Category: "TRIATHLON", Distance: "Sprint",
			Difficulty: "Advanced", Description: "Triatlón sprint en la costa con natación, ciclismo y carrera"},
		{Title: "5K Nocturna", Date: "2025-04-22", DateDisplay: "22 ABR 2025",
			Location: "Parque Central", Participants: 1800, MaxParticipants: 2000,
			Image: "/night-running-event.png", Category: "RUNNING", Distance: "5 km",
			Difficulty: "Beginner", Description: "Carrera nocturna de 5km por el parque central"},
		{Title: "Ciclismo de Montaña", Date: "2025-05-15", DateDisplay: "15 MAY 2025",
			Location: "Sierra Norte", Participants: 450, MaxParticipants: 500,
			Image: "/mountain-biking-competition.jpg", Category: "CYCLING", Distance: "60 km",
			Difficulty: "Advanced", Description: "Ruta de ciclismo de montaña por terreno técnico"},
		{Title: "Natación Open Water", Date: "2025-07-10", DateDisplay: "10 JUL 2025",
			Location: "Lago Azul", Participants: 320, MaxParticipants: 400,
			Image: "/open-water-swimming.jpg", Category: "SWIMMING", Distance: "2 km",
			Difficulty: "Intermediate", Description: "Natación en aguas abiertas en el lago azul"},
	}
	for i := range events {
		if err := s.Events.Create(ctx, &events[i]); err != nil {
			return fmt.Errorf("seed event %q: %w", events[i].Title, err)
		}
	}

	// 种子报名：carlos → CrossFit Challenge（计数回到 850）
	if _, err := s.Registrations.Register(ctx, "2", events[1].ID); err != nil {
		return fmt.Errorf("seed registration: %w", err)
	}

	workouts := []domain.Workout{
		{UserID: "2", Date: "2025-01-06",
			Notes: "Buena sesión de fuerza, aumentar peso la próxima vez",
			Exercises: []domain.Exercise{
				{Exercise: "Sentadillas", Sets: "4", Reps: "10", Weight: "80", WeightUnit: "kg", Time: "45"},
				{Exercise: "Press de Banca", Sets: "3", Reps: "12", Weight: "60", WeightUnit: "kg", Time: "30"},
			}},
		{UserID: "2", Date: "2025-01-05",
			Notes: "Ritmo constante, buen tiempo",
			Exercises: []domain.Exercise{
				{Exercise: "Carrera", Weight: "10", WeightUnit: "km", Time: "60"},
				{Exercise: "Dominadas", Sets: "5", Reps: "8", WeightUnit: "kg", Time: "20"},
			}},
		{UserID: "2", Date: "2025-01-07",
			Exercises: []domain.Exercise{
				{Exercise: "Sentadillas", Sets: "3", Reps: "12", Weight: "70", WeightUnit: "kg", Time: "30"},
				{Exercise: "Press militar", Sets: "2", Reps: "10", Weight: "40", WeightUnit: "kg", Time: "20"},
			}},
	}
	for i := range workouts {
		if err := s.Workouts.Create(ctx, &workouts[i]); err != nil {
			return fmt.Errorf("seed workout: %w", err)
		}
	}
	return nil
}
