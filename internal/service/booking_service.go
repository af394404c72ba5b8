package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sporthub/sporthub/internal/community"
	"github.com/sporthub/sporthub/internal/store"
)

type BookingService struct {
	db       *sqlx.DB
	bookings *store.BookingStore
	venues   *store.VenueStore
}

func NewBookingService(db *sqlx.DB, bookings *store.BookingStore, venues *store.VenueStore) *BookingService {
	return &BookingService{db: db, bookings: bookings, venues: venues}
}

// CreateBooking opens a booking with a zero total. The time slot's
// availability is deliberately not checked or locked here; cancellation is
// the only operation that touches the flag.
func (s *BookingService) CreateBooking(ctx context.Context, userID, venueID, timeSlotID uuid.UUID) (*community.Booking, error) {
	booking := &community.Booking{
		ID:          uuid.New(),
		UserID:      userID,
		VenueID:     venueID,
		TimeSlotID:  timeSlotID,
		BookingDate: time.Now().UTC(),
		Status:      community.BookingCreated,
		TotalPrice:  0,
	}
	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatus sets the status; cancelling additionally restores the
// booked time slot's availability.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status community.BookingStatus) (*community.Booking, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	booking, err := s.bookings.GetBookingTx(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if _, err := s.bookings.UpdateBookingStatus(ctx, tx, bookingID, status); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	booking.Status = status

	if status == community.BookingCancelled {
		if err := s.venues.SetTimeSlotAvailability(ctx, tx, booking.TimeSlotID, true); err != nil {
			return nil, fmt.Errorf("failed to restore time slot: %w", err)
		}
	}

	return booking, tx.Commit()
}

// AddService attaches a venue service to a booking and adds its price to
// the running total. The service must be active and belong to the
// booking's venue. Re-attaching returns the existing row without charging
// again.
func (s *BookingService) AddService(ctx context.Context, bookingID, serviceID uuid.UUID) (*community.BookingService, error) {
	existing, err := s.bookings.GetBookingService(ctx, bookingID, serviceID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check booking service: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	booking, err := s.bookings.GetBookingTx(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	service, err := s.venues.GetActiveVenueService(ctx, tx, serviceID, booking.VenueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get venue service: %w", err)
	}

	bs := &community.BookingService{
		ID:        uuid.New(),
		BookingID: bookingID,
		ServiceID: serviceID,
	}
	if err := s.bookings.CreateBookingService(ctx, tx, bs); err != nil {
		return nil, fmt.Errorf("failed to attach service: %w", err)
	}
	if err := s.bookings.AddToTotalPrice(ctx, tx, bookingID, service.Price); err != nil {
		return nil, fmt.Errorf("failed to update total price: %w", err)
	}

	return bs, tx.Commit()
}

// RemoveService detaches a service from a booking. The price comes off the
// total only when the booking can afford it; the join row is removed
// either way. Reports false when no such service was attached.
func (s *BookingService) RemoveService(ctx context.Context, bookingID, serviceID uuid.UUID) (bool, error) {
	_, err := s.bookings.GetBookingService(ctx, bookingID, serviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check booking service: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	service, err := s.venues.GetVenueServiceTx(ctx, tx, serviceID)
	if err == nil {
		if _, err := s.bookings.SubtractFromTotalPrice(ctx, tx, bookingID, service.Price); err != nil {
			return false, fmt.Errorf("failed to update total price: %w", err)
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to get venue service: %w", err)
	}

	if _, err := s.bookings.DeleteBookingService(ctx, tx, bookingID, serviceID); err != nil {
		return false, fmt.Errorf("failed to detach service: %w", err)
	}

	return true, tx.Commit()
}
