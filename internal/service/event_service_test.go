package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fittrack-api/internal/domain"
	"fittrack-api/internal/repo/memory"
)

func newEventService() *EventService {
	stores := memory.NewStores()
	svc := NewEventService(stores.Events, nil, zap.NewNop())
	// frozen clock keeps the "not before today" rule deterministic
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func validInput() EventInput {
	return EventInput{
		Title:           "Maratón Ciudad",
		Date:            "2025-04-15",
		Location:        "Estadio Nacional",
		MaxParticipants: 3000,
		Category:        "RUNNING",
		Distance:        "42.2 km",
		Difficulty:      "Advanced",
	}
}

func TestEventCreateDefaults(t *testing.T) {
	svc := newEventService()
	e, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotZero(t, e.ID)
	assert.Equal(t, 0, e.Participants)
	assert.Equal(t, domain.DefaultEventImage, e.Image)
	assert.Equal(t, "15 ABR 2025", e.DateDisplay)
}

func TestEventValidationReportsAllFields(t *testing.T) {
	svc := newEventService()

	in := validInput()
	in.Title = "  "
	in.Category = ""
	_, err := svc.Create(context.Background(), in)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	// both problems come back in one round trip, nothing persisted
	assert.Len(t, ve.Fields, 2)
	assert.Contains(t, ve.Fields, "title")
	assert.Contains(t, ve.Fields, "category")

	list, lerr := svc.List(context.Background())
	require.NoError(t, lerr)
	assert.Empty(t, list)
}

func TestEventValidationDate(t *testing.T) {
	svc := newEventService()
	ctx := context.Background()

	cases := []struct {
		date string
		msg  string
	}{
		{"", "date is required"},
		{"15/04/2025", "date must be YYYY-MM-DD"},
		{"2025-02-28", "date cannot be before today"},
	}
	for _, tc := range cases {
		in := validInput()
		in.Date = tc.date
		_, err := svc.Create(ctx, in)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve, "date %q", tc.date)
		assert.Equal(t, tc.msg, ve.Fields["date"])
	}

	// today itself is allowed
	in := validInput()
	in.Date = "2025-03-01"
	_, err := svc.Create(ctx, in)
	assert.NoError(t, err)
}

func TestEventValidationEnums(t *testing.T) {
	svc := newEventService()

	in := validInput()
	in.Category = "YOGA"
	in.Difficulty = "Expert"
	_, err := svc.Create(context.Background(), in)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "unknown category", ve.Fields["category"])
	assert.Equal(t, "unknown difficulty", ve.Fields["difficulty"])
}

func TestEventUpdateRevalidatesAndKeepsCounter(t *testing.T) {
	svc := newEventService()
	ctx := context.Background()

	e, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Title = "Maratón Ciudad 2025"
	in.Date = "2025-05-01"
	got, err := svc.Update(ctx, e.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Maratón Ciudad 2025", got.Title)
	assert.Equal(t, "1 MAY 2025", got.DateDisplay)
	assert.Equal(t, 0, got.Participants)

	in.Location = ""
	_, err = svc.Update(ctx, e.ID, in)
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Update(ctx, 999, validInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Shrinking the cap below the live registrant count would break
// 0 ≤ participants ≤ maxParticipants through the edit form.
func TestEventUpdateCannotShrinkBelowRegistered(t *testing.T) {
	stores := memory.NewStores()
	svc := NewEventService(stores.Events, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	in := validInput()
	in.MaxParticipants = 2
	e, err := svc.Create(ctx, in)
	require.NoError(t, err)
	_, err = stores.Registrations.Register(ctx, "u1", e.ID)
	require.NoError(t, err)
	_, err = stores.Registrations.Register(ctx, "u2", e.ID)
	require.NoError(t, err)

	in.MaxParticipants = 1
	_, err = svc.Update(ctx, e.ID, in)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "maxParticipants")

	// event untouched, invariant holds
	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Participants)
	assert.Equal(t, 2, got.MaxParticipants)
	assert.LessOrEqual(t, got.Participants, got.MaxParticipants)

	// shrinking down to exactly the counter is fine
	in.MaxParticipants = 2
	got, err = svc.Update(ctx, e.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MaxParticipants)
}

func TestFormatDateDisplay(t *testing.T) {
	cases := map[string]string{
		"2025-04-15": "15 ABR 2025",
		"2025-01-06": "6 ENE 2025",
		"2025-12-31": "31 DIC 2025",
		"2025-05-08": "8 MAY 2025",
		"bogus":      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatDateDisplay(in), "input %q", in)
	}
}
