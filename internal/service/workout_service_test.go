package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fittrack-api/internal/domain"
	"fittrack-api/internal/repo"
	"fittrack-api/internal/repo/memory"
)

func newWorkoutService() (*WorkoutService, repo.Stores) {
	stores := memory.NewStores()
	svc := NewWorkoutService(stores.Workouts, stores.Registrations, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC) }
	return svc, stores
}

func TestWorkoutCreateStampsDate(t *testing.T) {
	svc, _ := newWorkoutService()
	w, err := svc.Create(context.Background(), "u1", []domain.Exercise{
		{Exercise: "Sentadillas", Sets: "4", Reps: "10", Weight: "80"},
	}, "primera sesión")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", w.Date)
	// missing unit defaults to kg
	assert.Equal(t, domain.WeightUnitKg, w.Exercises[0].WeightUnit)
	assert.NotZero(t, w.ID)
}

func TestWorkoutCreateValidation(t *testing.T) {
	svc, _ := newWorkoutService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", nil, "")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "exercises")

	_, err = svc.Create(ctx, "u1", []domain.Exercise{
		{Exercise: "  "},
		{Exercise: "Carrera", WeightUnit: "mi"},
	}, "")
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "exercises[0].exercise")
	assert.Contains(t, ve.Fields, "exercises[1].weightUnit")
}

func TestStatsAggregation(t *testing.T) {
	svc, stores := newWorkoutService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", []domain.Exercise{
		{Exercise: "Sentadillas", Weight: "80", WeightUnit: "kg", Time: "45"},
		{Exercise: "Carrera", Weight: "10", WeightUnit: "km", Time: "60"},
	}, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", []domain.Exercise{
		// malformed numbers count as zero, never as an error
		{Exercise: "Dominadas", Weight: "", WeightUnit: "kg", Time: "abc"},
		{Exercise: "Press", Weight: "40.5", WeightUnit: "kg", Time: "20"},
	}, "")
	require.NoError(t, err)

	// a registration feeds totalEvents
	e := &domain.Event{Title: "5K", MaxParticipants: 10}
	require.NoError(t, stores.Events.Create(ctx, e))
	_, err = stores.Registrations.Register(ctx, "u1", e.ID)
	require.NoError(t, err)

	stats, err := svc.StatsFor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalWorkouts)
	assert.Equal(t, 4, stats.TotalExercises)
	assert.Equal(t, 1, stats.TotalEvents)
	assert.InDelta(t, 10.0, stats.TotalDistance, 1e-9)
	assert.InDelta(t, 120.5, stats.TotalWeight, 1e-9)
	assert.InDelta(t, 125.0, stats.TotalTime, 1e-9)
}

func TestStatsForUserWithoutData(t *testing.T) {
	svc, _ := newWorkoutService()
	stats, err := svc.StatsFor(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, &domain.UserStats{}, stats)
}

func TestWorkoutDeleteOwnerOnly(t *testing.T) {
	svc, _ := newWorkoutService()
	ctx := context.Background()

	w, err := svc.Create(ctx, "u1", []domain.Exercise{{Exercise: "Sentadillas"}}, "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, w.ID, "u2"), domain.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, w.ID, "u1"))

	ws, err := svc.ForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Workout{}, ws) // empty slice, not nil
}
