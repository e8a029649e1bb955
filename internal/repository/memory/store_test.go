package memory

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/repository"
)

func newUser(username string) *model.User {
	return &model.User{
		ID:        uuid.New().String(),
		Username:  username,
		Name:      username,
		Email:     username + "@example.com",
		Role:      model.RoleClient,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func newBooking(userID, date, at string) *model.Booking {
	return &model.Booking{
		ID:        uuid.New().String(),
		UserID:    userID,
		ServiceID: 1,
		Date:      date,
		Time:      at,
		Status:    model.BookingStatusConfirmed,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)

	user := newUser("alice")
	require.NoError(t, store.Users().Create(ctx, user))
	booking := newBooking(user.ID, "2024-07-01", "10:00")
	require.NoError(t, store.Bookings().CreateIfSlotFree(ctx, booking))

	// Files land next to each other in the data dir.
	_, err = os.Stat(filepath.Join(dir, usersFile))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, bookingsFile))
	require.NoError(t, err)

	// A second store opened on the same dir sees everything.
	reopened, err := Open(dir)
	require.NoError(t, err)

	gotUser, err := reopened.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotUser.ID)
	assert.Equal(t, user.Email, gotUser.Email)

	gotBooking, err := reopened.Bookings().Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.Date, gotBooking.Date)
	assert.Equal(t, booking.Time, gotBooking.Time)
}

func TestOpenEmptyDirIsInMemory(t *testing.T) {
	ctx := context.Background()
	store, err := Open("")
	require.NoError(t, err)

	require.NoError(t, store.Users().Create(ctx, newUser("alice")))

	// Nothing is written anywhere.
	_, err = os.Stat(usersFile)
	assert.True(t, os.IsNotExist(err))
}

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	store, err := Open("")
	require.NoError(t, err)
	users := store.Users()

	alice := newUser("alice")
	require.NoError(t, users.Create(ctx, alice))

	// Usernames are unique.
	err = users.Create(ctx, newUser("alice"))
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)

	// Lookups by username, id and email all resolve.
	byName, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	byID, err := users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	byEmail, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, byName.ID, byID.ID)
	assert.Equal(t, byName.ID, byEmail.ID)

	_, err = users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Returned values are copies; mutating them does not leak back.
	byName.Email = "hacked@example.com"
	fresh, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", fresh.Email)
}

func TestUserRename(t *testing.T) {
	ctx := context.Background()
	store, err := Open("")
	require.NoError(t, err)
	users := store.Users()

	alice := newUser("alice")
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, newUser("bob")))

	// Renaming onto an existing username fails and leaves the old key.
	alice.Username = "bob"
	err = users.Rename(ctx, "alice", alice)
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)
	_, err = users.GetByUsername(ctx, "alice")
	require.NoError(t, err)

	alice.Username = "alicesmith"
	require.NoError(t, users.Rename(ctx, "alice", alice))

	_, err = users.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	got, err := users.GetByUsername(ctx, "alicesmith")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
}

func TestSlotUniqueness(t *testing.T) {
	ctx := context.Background()
	store, err := Open("")
	require.NoError(t, err)
	bookings := store.Bookings()

	first := newBooking("u1", "2024-07-01", "10:00")
	require.NoError(t, bookings.CreateIfSlotFree(ctx, first))

	err = bookings.CreateIfSlotFree(ctx, newBooking("u2", "2024-07-01", "10:00"))
	assert.ErrorIs(t, err, repository.ErrSlotTaken)

	// Same time on another date is a different slot.
	require.NoError(t, bookings.CreateIfSlotFree(ctx, newBooking("u2", "2024-07-02", "10:00")))

	// A cancelled booking releases the slot.
	first.Status = model.BookingStatusCancelled
	require.NoError(t, bookings.Update(ctx, first))
	require.NoError(t, bookings.CreateIfSlotFree(ctx, newBooking("u2", "2024-07-01", "10:00")))
}

func TestSlotUniquenessConcurrent(t *testing.T) {
	ctx := context.Background()
	store, err := Open("")
	require.NoError(t, err)
	bookings := store.Bookings()

	const attempts = 32
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = bookings.CreateIfSlotFree(ctx, newBooking("u1", "2024-07-01", "10:00"))
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, repository.ErrSlotTaken)
		}
	}
	assert.Equal(t, 1, won)
}

func TestBookingFilter(t *testing.T) {
	ctx := context.Background()
	store, err := Open("")
	require.NoError(t, err)
	bookings := store.Bookings()

	b1 := newBooking("u1", "2024-07-01", "10:00")
	b2 := newBooking("u2", "2024-07-01", "11:00")
	b3 := newBooking("u1", "2024-07-02", "10:00")
	for _, b := range []*model.Booking{b1, b2, b3} {
		require.NoError(t, bookings.CreateIfSlotFree(ctx, b))
	}
	b3.Status = model.BookingStatusCompleted
	require.NoError(t, bookings.Update(ctx, b3))

	byDate, err := bookings.List(ctx, &model.BookingFilter{Date: "2024-07-01"})
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	byUser, err := bookings.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byStatus, err := bookings.List(ctx, &model.BookingFilter{Status: model.BookingStatusCompleted})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, b3.ID, byStatus[0].ID)

	all, err := bookings.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTokenStore(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenStore(time.Hour)

	rt := &model.ResetToken{
		Token:     "tok-1",
		Username:  "alice",
		Email:     "alice@example.com",
		CreatedAt: time.Now(),
	}
	require.NoError(t, tokens.StoreResetToken(ctx, rt, time.Hour))

	got, err := tokens.GetResetToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	require.NoError(t, tokens.DeleteResetToken(ctx, "tok-1"))
	_, err = tokens.GetResetToken(ctx, "tok-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// The cache expires entries on read once the TTL passes.
	require.NoError(t, tokens.StoreResetToken(ctx, rt, time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	_, err = tokens.GetResetToken(ctx, "tok-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, tokens.RevokeSession(ctx, "jti-1", time.Hour))
	revoked, err := tokens.IsSessionRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = tokens.IsSessionRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
