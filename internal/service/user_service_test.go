package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fittrack-api/internal/core/auth"
	"fittrack-api/internal/domain"
	"fittrack-api/internal/repo/memory"
)

func newUserService() *UserService {
	stores := memory.NewStores()
	log := zap.NewNop()
	workouts := NewWorkoutService(stores.Workouts, stores.Registrations, log)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	return NewUserService(stores.Users, workouts, jwter, log)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	res, err := svc.Register(ctx, "carlos@example.com", "Carlos123!", "Carlos", "carlos_runner")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleUser, res.User.Role)
	assert.NotNil(t, res.User.Stats)

	// token carries the user id
	claims, err := svc.jwter.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UID)

	// password hash never equals the raw password and is not serialized
	assert.NotEqual(t, "Carlos123!", res.User.PasswordHash)

	got, err := svc.Login(ctx, "carlos@example.com", "Carlos123!")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, got.User.ID)

	_, err = svc.Login(ctx, "carlos@example.com", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ghost@example.com", "Carlos123!")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), "", "123", "", "ab")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	// every broken field reported at once
	assert.Len(t, ve.Fields, 4)
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "password")
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "username")
}

func TestRegisterConflicts(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "carlos@example.com", "Carlos123!", "Carlos", "carlos_runner")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "carlos@example.com", "Other123!", "Otro", "otro_user")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// username check ignores case
	_, err = svc.Register(ctx, "otro@example.com", "Other123!", "Otro", "CARLOS_RUNNER")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestCheckUsername(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	ok, err := svc.CheckUsername(ctx, "carlos_runner")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Register(ctx, "carlos@example.com", "Carlos123!", "Carlos", "carlos_runner")
	require.NoError(t, err)

	ok, err = svc.CheckUsername(ctx, "Carlos_Runner")
	require.NoError(t, err)
	assert.False(t, ok)

	// malformed names read as unavailable without error
	ok, err = svc.CheckUsername(ctx, "ab")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateProfile(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	a, err := svc.Register(ctx, "a@example.com", "Secret123", "A", "user_a")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "b@example.com", "Secret123", "B", "user_b")
	require.NoError(t, err)

	name := "Alicia"
	avatar := "/new-avatar.png"
	view, err := svc.UpdateProfile(ctx, a.User.ID, ProfilePatch{Name: &name, Avatar: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", view.Name)
	assert.Equal(t, "/new-avatar.png", view.Avatar)
	assert.Equal(t, "a@example.com", view.Email) // untouched

	taken := "b@example.com"
	_, err = svc.UpdateProfile(ctx, a.User.ID, ProfilePatch{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// re-submitting your own email is not a conflict
	same := "a@example.com"
	_, err = svc.UpdateProfile(ctx, a.User.ID, ProfilePatch{Email: &same})
	assert.NoError(t, err)
}

func TestBan(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	res, err := svc.Register(ctx, "a@example.com", "Secret123", "A", "user_a")
	require.NoError(t, err)

	require.NoError(t, svc.Ban(ctx, res.User.ID))
	_, err = svc.Me(ctx, res.User.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Ban(ctx, res.User.ID), domain.ErrNotFound)
}
