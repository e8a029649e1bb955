package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shark062/EridesSouzaStudio/internal/model"
)

// Sentinel errors shared by all backends. Services translate these into
// API-level errors at the boundary.
var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrSlotTaken     = errors.New("slot already booked")
)

// UserRepository stores accounts keyed by username.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Update persists field edits; the username key must not change.
	Update(ctx context.Context, user *model.User) error
	// Rename moves the store key from oldUsername to user.Username
	// atomically, failing with ErrUsernameTaken if the target exists.
	Rename(ctx context.Context, oldUsername string, user *model.User) error
	List(ctx context.Context) ([]*model.User, error)
}

// BookingRepository stores bookings in creation order.
type BookingRepository interface {
	// CreateIfSlotFree inserts the booking unless a non-cancelled
	// booking already occupies its (date, time) slot, in which case it
	// fails with ErrSlotTaken. The check and insert are atomic.
	CreateIfSlotFree(ctx context.Context, booking *model.Booking) error
	Get(ctx context.Context, id string) (*model.Booking, error)
	Update(ctx context.Context, booking *model.Booking) error
	ListByUser(ctx context.Context, userID string) ([]*model.Booking, error)
	List(ctx context.Context, filter *model.BookingFilter) ([]*model.Booking, error)
	// UpdateUserName refreshes the denormalized user_name snapshot on
	// every booking owned by userID.
	UpdateUserName(ctx context.Context, userID, name string) error
}

// TokenRepository holds password-reset tokens and revoked session ids.
// Entries expire on their own; unredeemed tokens never accumulate.
type TokenRepository interface {
	StoreResetToken(ctx context.Context, token *model.ResetToken, ttl time.Duration) error
	GetResetToken(ctx context.Context, token string) (*model.ResetToken, error)
	DeleteResetToken(ctx context.Context, token string) error
	RevokeSession(ctx context.Context, jti string, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, jti string) (bool, error)
}
