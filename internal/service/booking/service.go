package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/shark062/EridesSouzaStudio/internal/catalog"
	"github.com/shark062/EridesSouzaStudio/internal/metrics"
	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/repository"
	apperrors "github.com/shark062/EridesSouzaStudio/pkg/errors"
	"github.com/shark062/EridesSouzaStudio/pkg/logger"
)

const (
	dateLayout       = "2006-01-02"
	birthdayDiscount = 0.10
)

// Service is the booking engine. It enforces the one-booking-per-slot
// invariant, computes the birthday discount and credits loyalty
// counters on creation.
type Service struct {
	bookings repository.BookingRepository
	users    repository.UserRepository
	catalog  *catalog.Catalog
	metrics  *metrics.Metrics
	log      *logger.Logger

	// now is swapped in tests pinned to a fixed date.
	now func() time.Time
}

func NewService(bookings repository.BookingRepository, users repository.UserRepository,
	cat *catalog.Catalog, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		bookings: bookings,
		users:    users,
		catalog:  cat,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// ListServices flattens the catalog in declaration order.
func (s *Service) ListServices() []model.Service {
	return s.catalog.List()
}

// Create books a slot for the account. The slot scan and insert happen
// atomically in the store, so two concurrent requests for one slot
// cannot both succeed.
func (s *Service) Create(ctx context.Context, user *model.User, req *model.CreateBookingRequest) (*model.Booking, error) {
	svc, ok := s.catalog.Get(req.ServiceID)
	if !ok {
		return nil, apperrors.NotFound("service", nil)
	}

	price := svc.Price
	discounted := user.Birthday(s.now())
	if discounted {
		price = round2(price * (1 - birthdayDiscount))
	}

	booking := &model.Booking{
		ID:              uuid.New().String(),
		UserID:          user.ID,
		UserName:        user.Name,
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		Date:            req.Date,
		Time:            req.Time,
		Price:           price,
		OriginalPrice:   svc.Price,
		DiscountApplied: discounted,
		Status:          model.BookingStatusConfirmed,
		Notes:           req.Notes,
		CreatedAt:       s.now(),
	}

	if err := s.bookings.CreateIfSlotFree(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			s.metrics.SlotConflicts.Inc()
			return nil, apperrors.Conflict("this time slot is already booked", err)
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	user.LoyaltyPoints += int(math.Floor(price))
	user.TotalVisits++
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to credit loyalty points: %w", err)
	}

	s.metrics.BookingsCreated.Inc()
	if discounted {
		s.metrics.DiscountsApplied.Inc()
	}
	s.log.Info("booking created",
		"booking_id", booking.ID,
		"user", user.Username,
		"slot", booking.Date+" "+booking.Time,
	)
	return booking, nil
}

// Cancel sets the booking to cancelled. Only the owner or an admin may
// cancel; cancelling an already-cancelled booking is a no-op.
func (s *Service) Cancel(ctx context.Context, actor *model.User, bookingID string) (*model.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != actor.ID && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("you can only cancel your own bookings", nil)
	}

	if booking.Status == model.BookingStatusCancelled {
		return booking, nil
	}

	booking.Status = model.BookingStatusCancelled
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.metrics.BookingsCancelled.Inc()
	s.log.Info("booking cancelled", "booking_id", booking.ID, "by", actor.Username)
	return booking, nil
}

// AdminUpdate applies an admin mutation to one booking. Status values
// outside the closed enum are rejected.
func (s *Service) AdminUpdate(ctx context.Context, bookingID string, req *model.AdminBookingRequest) (*model.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch req.Action {
	case model.BookingActionUpdateStatus:
		status := model.BookingStatus(req.Status)
		if !model.ValidBookingStatus(status) {
			return nil, apperrors.BadRequest(fmt.Sprintf("unknown status %q", req.Status), nil)
		}
		booking.Status = status
	case model.BookingActionUpdateNotes:
		booking.AdminNotes = req.Notes
	default:
		return nil, apperrors.BadRequest(fmt.Sprintf("unknown action %q", req.Action), nil)
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return booking, nil
}

// ListFor returns the account's bookings in creation order.
func (s *Service) ListFor(ctx context.Context, userID string) ([]*model.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListAll returns all bookings matching the filter, in creation order.
func (s *Service) ListAll(ctx context.Context, filter *model.BookingFilter) ([]*model.Booking, error) {
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// TodayStats aggregates today's bookings. Cancelled bookings count
// toward neither the total nor the revenue.
func (s *Service) TodayStats(ctx context.Context) (*model.TodayStats, error) {
	today := s.now().Format(dateLayout)
	bookings, err := s.bookings.List(ctx, &model.BookingFilter{Date: today})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	stats := &model.TodayStats{}
	for _, b := range bookings {
		if b.Status == model.BookingStatusCancelled {
			continue
		}
		stats.Count++
		stats.Revenue += b.Price
	}
	stats.Revenue = round2(stats.Revenue)
	return stats, nil
}

func (s *Service) getBooking(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.bookings.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
