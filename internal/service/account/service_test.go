package account

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/repository/memory"
	apperrors "github.com/shark062/EridesSouzaStudio/pkg/errors"
	"github.com/shark062/EridesSouzaStudio/pkg/logger"
	"github.com/shark062/EridesSouzaStudio/pkg/security"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store, err := memory.Open("")
	require.NoError(t, err)

	log := logger.NewLogger(&logger.Config{
		Level:      logger.ErrorLevel,
		TimeFormat: time.RFC3339,
		Output:     io.Discard,
	})
	// MinCost keeps the hashing rounds cheap in tests.
	svc := NewService(store.Users(), store.Bookings(), security.NewBcryptHasher(4), nil, log)
	return svc, store
}

func register(t *testing.T, svc *Service, username string) *model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username:  username,
		Password:  "secret1",
		Name:      username,
		Email:     username + "@example.com",
		BirthDate: "1990-06-15",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	user := register(t, svc, "alice")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, model.RoleClient, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	got, err := svc.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.AsAppError(err).Code)

	_, err = svc.Authenticate(ctx, "nobody", "secret1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.AsAppError(err).Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "alice")

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "alice",
		Password: "other12",
		Name:     "Other Alice",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.AsAppError(err).Code)
}

func TestUpdateProfilePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	register(t, svc, "alice")

	newPassword := "changed1"
	_, err := svc.UpdateProfile(ctx, "alice", &model.UpdateProfileRequest{
		NewPassword: &newPassword,
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice", "secret1")
	require.Error(t, err)
	_, err = svc.Authenticate(ctx, "alice", "changed1")
	require.NoError(t, err)
}

func TestUpdateProfileRename(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	user := register(t, svc, "alice")

	// A booking carries the account's display name; renames must
	// refresh it.
	booking := &model.Booking{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		UserName:  user.Name,
		ServiceID: 1,
		Date:      "2024-07-01",
		Time:      "10:00",
		Status:    model.BookingStatusConfirmed,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Bookings().CreateIfSlotFree(ctx, booking))

	newUsername := "alicesmith"
	newName := "Alice Smith"
	updated, err := svc.UpdateProfile(ctx, "alice", &model.UpdateProfileRequest{
		NewUsername: &newUsername,
		NewName:     &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "alicesmith", updated.Username)

	// The old username no longer resolves, the new one does.
	_, err = svc.Authenticate(ctx, "alice", "secret1")
	require.Error(t, err)
	got, err := svc.Authenticate(ctx, "alicesmith", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	stored, err := store.Bookings().Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", stored.UserName)
}

func TestUpdateProfileRenameTaken(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "alice")
	register(t, svc, "bob")

	taken := "bob"
	_, err := svc.UpdateProfile(context.Background(), "alice", &model.UpdateProfileRequest{
		NewUsername: &taken,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.AsAppError(err).Code)
}

func TestAdminCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.EnsureAdmin(ctx, "Erides Souza", "admin123"))

	admin, err := svc.Authenticate(ctx, "Erides Souza", "admin123")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	// Re-seeding must not reset existing credentials.
	require.NoError(t, svc.SetAdminCredentials(ctx, "erides", "newpass1"))
	require.NoError(t, svc.EnsureAdmin(ctx, "Erides Souza", "admin123"))

	_, err = svc.Authenticate(ctx, "Erides Souza", "admin123")
	require.Error(t, err)

	admin, err = svc.Authenticate(ctx, "erides", "newpass1")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}
