package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/repository"
)

type BookingRepository struct {
	db *DB
}

func NewBookingRepository(db *DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, user_name, service_id, service_name,
	date, time, price, original_price, discount_applied, status, notes,
	admin_notes, created_at`

func (r *BookingRepository) CreateIfSlotFree(ctx context.Context, booking *model.Booking) error {
	// The partial unique index on (date, time) for non-cancelled rows
	// makes the conflict check atomic with the insert.
	query := r.db.Rebind(`
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		booking.ID, booking.UserID, booking.UserName,
		booking.ServiceID, booking.ServiceName,
		booking.Date, booking.Time,
		booking.Price, booking.OriginalPrice, booking.DiscountApplied,
		booking.Status, booking.Notes, booking.AdminNotes, booking.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) Get(ctx context.Context, id string) (*model.Booking, error) {
	query := r.db.Rebind(`SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`)

	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	query := r.db.Rebind(`
		UPDATE bookings
		SET status = ?, notes = ?, admin_notes = ?, user_name = ?
		WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query,
		booking.Status, booking.Notes, booking.AdminNotes,
		booking.UserName, booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return requireRow(result)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	query := r.db.Rebind(`
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE user_id = ?
		ORDER BY created_at ASC
	`)

	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) List(ctx context.Context, filter *model.BookingFilter) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	var args []interface{}

	if filter != nil {
		if filter.UserID != "" {
			query += " AND user_id = ?"
			args = append(args, filter.UserID)
		}
		if filter.Date != "" {
			query += " AND date = ?"
			args = append(args, filter.Date)
		}
		if filter.Status != "" {
			query += " AND status = ?"
			args = append(args, filter.Status)
		}
	}
	query += " ORDER BY created_at ASC"

	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) UpdateUserName(ctx context.Context, userID, name string) error {
	query := r.db.Rebind(`UPDATE bookings SET user_name = ? WHERE user_id = ?`)
	if _, err := r.db.ExecContext(ctx, query, name, userID); err != nil {
		return fmt.Errorf("failed to refresh user name: %w", err)
	}
	return nil
}
