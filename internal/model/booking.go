package model

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// ValidBookingStatus reports whether s is one of the closed set of
// booking states. Free-text statuses are rejected at the boundary.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCancelled,
		BookingStatusCompleted, BookingStatusNoShow:
		return true
	}
	return false
}

// Booking occupies one (date, time) slot. UserName and ServiceName are
// denormalized snapshots kept for display without re-joining.
type Booking struct {
	ID              string        `json:"id" db:"id"`
	UserID          string        `json:"user_id" db:"user_id"`
	UserName        string        `json:"user_name" db:"user_name"`
	ServiceID       int           `json:"service_id" db:"service_id"`
	ServiceName     string        `json:"service_name" db:"service_name"`
	Date            string        `json:"date" db:"date"`
	Time            string        `json:"time" db:"time"`
	Price           float64       `json:"price" db:"price"`
	OriginalPrice   float64       `json:"original_price" db:"original_price"`
	DiscountApplied bool          `json:"discount_applied" db:"discount_applied"`
	Status          BookingStatus `json:"status" db:"status"`
	Notes           string        `json:"notes" db:"notes"`
	AdminNotes      string        `json:"admin_notes" db:"admin_notes"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
}

// BookingFilter narrows admin listings.
type BookingFilter struct {
	UserID string
	Date   string
	Status BookingStatus
}

// CreateBookingRequest represents booking creation parameters
type CreateBookingRequest struct {
	ServiceID int    `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required,bookingdate"`
	Time      string `json:"time" binding:"required,bookingtime"`
	Notes     string `json:"notes" binding:"max=1000"`
}

// Admin booking actions
const (
	BookingActionUpdateStatus = "update_status"
	BookingActionUpdateNotes  = "update_notes"
)

// AdminBookingRequest mutates one booking on behalf of an admin.
type AdminBookingRequest struct {
	Action string `json:"action" binding:"required,oneof=update_status update_notes"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// TodayStats aggregates the current date's bookings. Cancelled bookings
// count toward neither field.
type TodayStats struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}
