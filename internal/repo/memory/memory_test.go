package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack-api/internal/domain"
)

func TestUserStoreConflicts(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	u := &domain.User{Email: "a@x.com", Username: "alpha", Name: "A"}
	require.NoError(t, s.Create(ctx, u))
	assert.NotEmpty(t, u.ID) // ID assigned on create

	// duplicate email
	err := s.Create(ctx, &domain.User{Email: "a@x.com", Username: "beta", Name: "B"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// username collision is case insensitive
	err = s.Create(ctx, &domain.User{Email: "b@x.com", Username: "ALPHA", Name: "B"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	// email lookup is exact, username lookup ignores case
	_, err = s.ByEmail(ctx, "A@X.COM")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := s.ByUsername(ctx, "Alpha")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestUserStoreListAndSoftDelete(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Create(ctx, &domain.User{
			Email:    fmt.Sprintf("u%d@x.com", i),
			Username: fmt.Sprintf("user%d", i),
			Name:     fmt.Sprintf("User %d", i),
		}))
	}

	all, total, err := s.List(ctx, 0, 0, "")
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, all, 5)

	page, total, err := s.List(ctx, 2, 2, "")
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page, 2)
	assert.Equal(t, "u2@x.com", page[0].Email)

	// fuzzy match on email/name/username
	hit, total, err := s.List(ctx, 0, 10, "user3")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, hit, 1)

	require.NoError(t, s.SoftDelete(ctx, hit[0].ID))
	_, err = s.ByID(ctx, hit[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.SoftDelete(ctx, hit[0].ID), domain.ErrNotFound)
}

func TestEventStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewEventStore()

	e1 := &domain.Event{Title: "A", MaxParticipants: 10}
	e2 := &domain.Event{Title: "B", MaxParticipants: 10}
	require.NoError(t, s.Create(ctx, e1))
	require.NoError(t, s.Create(ctx, e2))
	// IDs are monotonic and never reused
	assert.Equal(t, uint(1), e1.ID)
	assert.Equal(t, uint(2), e2.ID)

	require.NoError(t, s.Delete(ctx, e1.ID))
	e3 := &domain.Event{Title: "C", MaxParticipants: 10}
	require.NoError(t, s.Create(ctx, e3))
	assert.Equal(t, uint(3), e3.ID)

	_, err := s.ByID(ctx, e1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 99), domain.ErrNotFound)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []uint{2, 3}, []uint{list[0].ID, list[1].ID})
}

func TestEventStorePatchIsShallowMerge(t *testing.T) {
	ctx := context.Background()
	s := NewEventStore()
	e := &domain.Event{Title: "Maratón", Location: "Estadio", MaxParticipants: 100, Participants: 7}
	require.NoError(t, s.Create(ctx, e))

	title := "Maratón 2025"
	got, err := s.Update(ctx, e.ID, domain.EventPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Maratón 2025", got.Title)
	assert.Equal(t, "Estadio", got.Location) // untouched fields survive
	assert.Equal(t, 7, got.Participants)     // counter never patched

	_, err = s.Update(ctx, 99, domain.EventPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventStorePatchCannotShrinkCapBelowCount(t *testing.T) {
	ctx := context.Background()
	s := NewEventStore()
	e := &domain.Event{Title: "Llena", Participants: 7, MaxParticipants: 10}
	require.NoError(t, s.Create(ctx, e))

	limit := 5
	_, err := s.Update(ctx, e.ID, domain.EventPatch{MaxParticipants: &limit})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "maxParticipants")

	got, _ := s.ByID(ctx, e.ID)
	assert.Equal(t, 10, got.MaxParticipants)

	// exactly the counter is the lowest allowed cap
	limit = 7
	got, err = s.Update(ctx, e.ID, domain.EventPatch{MaxParticipants: &limit})
	require.NoError(t, err)
	assert.Equal(t, 7, got.MaxParticipants)
}

func TestRegistrationRoundTrip(t *testing.T) {
	ctx := context.Background()
	events := NewEventStore()
	regs := NewRegistrationStore(events)

	e := &domain.Event{Title: "5K", MaxParticipants: 2}
	require.NoError(t, events.Create(ctx, e))

	reg, err := regs.Register(ctx, "u1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", reg.UserID)
	assert.Equal(t, e.ID, reg.EventID)
	assert.False(t, reg.RegisteredAt.IsZero())

	got, _ := events.ByID(ctx, e.ID)
	assert.Equal(t, 1, got.Participants)

	// duplicate registration does not bump the counter
	_, err = regs.Register(ctx, "u1", e.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	got, _ = events.ByID(ctx, e.ID)
	assert.Equal(t, 1, got.Participants)

	ok, err := regs.IsRegistered(ctx, "u1", e.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, regs.Unregister(ctx, "u1", e.ID))
	got, _ = events.ByID(ctx, e.ID)
	assert.Equal(t, 0, got.Participants)

	// second unregister is a no-op error and never goes below zero
	assert.ErrorIs(t, regs.Unregister(ctx, "u1", e.ID), domain.ErrNotRegistered)
	got, _ = events.ByID(ctx, e.ID)
	assert.Equal(t, 0, got.Participants)
}

func TestRegistrationCapacity(t *testing.T) {
	ctx := context.Background()
	events := NewEventStore()
	regs := NewRegistrationStore(events)

	e := &domain.Event{Title: "Final", MaxParticipants: 1}
	require.NoError(t, events.Create(ctx, e))

	_, err := regs.Register(ctx, "u1", e.ID)
	require.NoError(t, err)
	_, err = regs.Register(ctx, "u2", e.ID)
	assert.ErrorIs(t, err, domain.ErrEventFull)

	// failed attempt leaves no ledger row behind
	ok, _ := regs.IsRegistered(ctx, "u2", e.ID)
	assert.False(t, ok)

	// unknown event
	_, err = regs.Register(ctx, "u3", 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Many users racing for the last slot: exactly one wins.
func TestRegistrationLastSlotRace(t *testing.T) {
	ctx := context.Background()
	events := NewEventStore()
	regs := NewRegistrationStore(events)

	e := &domain.Event{Title: "Last Slot", Participants: 9, MaxParticipants: 10}
	require.NoError(t, events.Create(ctx, e))

	const racers = 50
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = regs.Register(ctx, fmt.Sprintf("racer%d", i), e.ID)
		}(i)
	}
	wg.Wait()

	wins, fulls := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case err == domain.ErrEventFull:
			fulls++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, fulls)

	got, _ := events.ByID(ctx, e.ID)
	assert.Equal(t, 10, got.Participants)
}

func TestEventDeletePurgesLedger(t *testing.T) {
	ctx := context.Background()
	stores := NewStores()

	e := &domain.Event{Title: "Borrable", MaxParticipants: 5}
	require.NoError(t, stores.Events.Create(ctx, e))
	_, err := stores.Registrations.Register(ctx, "u1", e.ID)
	require.NoError(t, err)

	require.NoError(t, stores.Events.Delete(ctx, e.ID))
	n, err := stores.Registrations.CountForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWorkoutStoreOwnerScopedDelete(t *testing.T) {
	ctx := context.Background()
	s := NewWorkoutStore()

	w := &domain.Workout{UserID: "u1", Date: "2025-01-06",
		Exercises: []domain.Exercise{
			{Exercise: "Sentadillas", Sets: "4", Reps: "10", Weight: "80", WeightUnit: "kg"},
			{Exercise: "Carrera", Weight: "10", WeightUnit: "km", Time: "60"},
		}}
	require.NoError(t, s.Create(ctx, w))
	assert.Equal(t, uint(1), w.ID)
	assert.Equal(t, uint(1), w.Exercises[0].ID)
	assert.Equal(t, uint(2), w.Exercises[1].ID)
	assert.Equal(t, w.ID, w.Exercises[0].WorkoutID)

	// someone else's delete reads as not found
	assert.ErrorIs(t, s.Delete(ctx, w.ID, "u2"), domain.ErrNotFound)
	ws, err := s.ByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, ws, 1)

	require.NoError(t, s.Delete(ctx, w.ID, "u1"))
	ws, _ = s.ByUser(ctx, "u1")
	assert.Empty(t, ws)
}
