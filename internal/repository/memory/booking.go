package memory

import (
	"context"

	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/repository"
)

type bookingRepo struct {
	s *Store
}

func (r *bookingRepo) CreateIfSlotFree(ctx context.Context, booking *model.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, b := range r.s.bookings {
		if b.Date == booking.Date && b.Time == booking.Time &&
			b.Status != model.BookingStatusCancelled {
			return repository.ErrSlotTaken
		}
	}

	b := *booking
	r.s.bookings = append(r.s.bookings, &b)
	r.s.byID[b.ID] = &b
	return r.s.persistBookings()
}

func (r *bookingRepo) Get(ctx context.Context, id string) (*model.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	booking, ok := r.s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b := *booking
	return &b, nil
}

func (r *bookingRepo) Update(ctx context.Context, booking *model.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.byID[booking.ID]
	if !ok {
		return repository.ErrNotFound
	}

	*existing = *booking
	return r.s.persistBookings()
}

func (r *bookingRepo) ListByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Booking
	for _, booking := range r.s.bookings {
		if booking.UserID == userID {
			b := *booking
			out = append(out, &b)
		}
	}
	return out, nil
}

func (r *bookingRepo) List(ctx context.Context, filter *model.BookingFilter) ([]*model.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Booking
	for _, booking := range r.s.bookings {
		if filter != nil {
			if filter.UserID != "" && booking.UserID != filter.UserID {
				continue
			}
			if filter.Date != "" && booking.Date != filter.Date {
				continue
			}
			if filter.Status != "" && booking.Status != filter.Status {
				continue
			}
		}
		b := *booking
		out = append(out, &b)
	}
	return out, nil
}

func (r *bookingRepo) UpdateUserName(ctx context.Context, userID, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	changed := false
	for _, booking := range r.s.bookings {
		if booking.UserID == userID && booking.UserName != name {
			booking.UserName = name
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.s.persistBookings()
}
