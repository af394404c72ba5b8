package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sporthub/sporthub/internal/community"
)

type BookingStore struct {
	db *sqlx.DB
}

const (
	getBookingQuery    = "SELECT * FROM bookings WHERE id = ?"
	createBookingQuery = `
		INSERT INTO bookings (id, user_id, venue_id, time_slot_id, booking_date, status, total_price)
		VALUES (:id, :user_id, :venue_id, :time_slot_id, :booking_date, :status, :total_price)
	`
	updateBookingStatusQuery = "UPDATE bookings SET status = ? WHERE id = ?"

	addToTotalPriceQuery = "UPDATE bookings SET total_price = total_price + ? WHERE id = ?"
	// Subtracting is guarded so a detached service can never push the total negative.
	subtractFromTotalPriceQuery = "UPDATE bookings SET total_price = total_price - ? WHERE id = ? AND total_price >= ?"

	getBookingServiceQuery    = "SELECT * FROM booking_services WHERE booking_id = ? AND service_id = ?"
	createBookingServiceQuery = `
		INSERT INTO booking_services (id, booking_id, service_id)
		VALUES (:id, :booking_id, :service_id)
	`
	deleteBookingServiceQuery = "DELETE FROM booking_services WHERE booking_id = ? AND service_id = ?"
	listBookingServicesQuery  = "SELECT * FROM booking_services WHERE booking_id = ?"
)

func NewBookingStore(db *sqlx.DB) *BookingStore {
	return &BookingStore{db: db}
}

func (s *BookingStore) GetBooking(ctx context.Context, id uuid.UUID) (*community.Booking, error) {
	var booking community.Booking
	err := s.db.GetContext(ctx, &booking, getBookingQuery, id)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingStore) GetBookingTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*community.Booking, error) {
	var booking community.Booking
	err := tx.GetContext(ctx, &booking, getBookingQuery, id)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingStore) ListUserBookings(ctx context.Context, userID uuid.UUID, status *community.BookingStatus) ([]community.Booking, error) {
	query := "SELECT * FROM bookings WHERE user_id = ?"
	args := []interface{}{userID}
	if status != nil {
		query += " AND status = ?"
		args = append(args, *status)
	}
	query += " ORDER BY booking_date DESC"

	var bookings []community.Booking
	err := s.db.SelectContext(ctx, &bookings, query, args...)
	return bookings, err
}

func (s *BookingStore) ListVenueBookings(ctx context.Context, venueID uuid.UUID, status *community.BookingStatus, startDate, endDate *time.Time) ([]community.Booking, error) {
	query := "SELECT b.* FROM bookings b"
	args := []interface{}{}

	if startDate != nil || endDate != nil {
		query += " JOIN time_slots ts ON b.time_slot_id = ts.id"
	}
	query += " WHERE b.venue_id = ?"
	args = append(args, venueID)

	if status != nil {
		query += " AND b.status = ?"
		args = append(args, *status)
	}
	if startDate != nil {
		query += " AND ts.date >= ?"
		args = append(args, *startDate)
	}
	if endDate != nil {
		query += " AND ts.date <= ?"
		args = append(args, *endDate)
	}
	query += " ORDER BY b.booking_date DESC"

	var bookings []community.Booking
	err := s.db.SelectContext(ctx, &bookings, query, args...)
	return bookings, err
}

func (s *BookingStore) CreateBooking(ctx context.Context, booking *community.Booking) error {
	_, err := s.db.NamedExecContext(ctx, createBookingQuery, booking)
	return err
}

func (s *BookingStore) UpdateBookingStatus(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status community.BookingStatus) (bool, error) {
	res, err := tx.ExecContext(ctx, updateBookingStatusQuery, status, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *BookingStore) AddToTotalPrice(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, amount float64) error {
	_, err := tx.ExecContext(ctx, addToTotalPriceQuery, amount, id)
	return err
}

// SubtractFromTotalPrice reports whether the total actually changed; it
// does not when the booking cannot afford the amount.
func (s *BookingStore) SubtractFromTotalPrice(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, amount float64) (bool, error) {
	res, err := tx.ExecContext(ctx, subtractFromTotalPriceQuery, amount, id, amount)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *BookingStore) GetBookingService(ctx context.Context, bookingID, serviceID uuid.UUID) (*community.BookingService, error) {
	var bs community.BookingService
	err := s.db.GetContext(ctx, &bs, getBookingServiceQuery, bookingID, serviceID)
	if err != nil {
		return nil, err
	}
	return &bs, nil
}

func (s *BookingStore) CreateBookingService(ctx context.Context, tx *sqlx.Tx, bs *community.BookingService) error {
	_, err := tx.NamedExecContext(ctx, createBookingServiceQuery, bs)
	return err
}

func (s *BookingStore) DeleteBookingService(ctx context.Context, tx *sqlx.Tx, bookingID, serviceID uuid.UUID) (bool, error) {
	res, err := tx.ExecContext(ctx, deleteBookingServiceQuery, bookingID, serviceID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *BookingStore) ListBookingServices(ctx context.Context, bookingID uuid.UUID) ([]community.BookingService, error) {
	var services []community.BookingService
	err := s.db.SelectContext(ctx, &services, listBookingServicesQuery, bookingID)
	return services, err
}
