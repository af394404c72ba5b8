package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sporthub/sporthub/internal/community"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertTestBooking(t *testing.T, db *sqlx.DB, userID, venueID uuid.UUID) uuid.UUID {
	t.Helper()

	slot := &community.TimeSlot{
		ID:          uuid.New(),
		VenueID:     venueID,
		Date:        time.Now().UTC(),
		StartTime:   time.Now().UTC(),
		EndTime:     time.Now().UTC().Add(time.Hour),
		IsAvailable: true,
	}
	require.NoError(t, NewVenueStore(db).CreateTimeSlot(context.Background(), slot))

	booking := &community.Booking{
		ID:          uuid.New(),
		UserID:      userID,
		VenueID:     venueID,
		TimeSlotID:  slot.ID,
		BookingDate: time.Now().UTC(),
		Status:      community.BookingCreated,
	}
	require.NoError(t, NewBookingStore(db).CreateBooking(context.Background(), booking))
	return booking.ID
}

func TestCreateBooking(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewBookingStore(db)
	ctx := context.Background()
	userID := insertTestUser(t, db, "guest")
	venueID := insertTestVenue(t, db)
	bookingID := insertTestBooking(t, db, userID, venueID)

	fetched, err := store.GetBooking(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, userID, fetched.UserID)
	assert.Equal(t, venueID, fetched.VenueID)
	assert.Equal(t, community.BookingCreated, fetched.Status)
	assert.Equal(t, float64(0), fetched.TotalPrice)

	byUser, err := store.ListUserBookings(ctx, userID, nil)
	require.NoError(t, err)
	require.Len(t, byUser, 1)

	byVenue, err := store.ListVenueBookings(ctx, venueID, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, byVenue, 1)
}

func TestTotalPriceFloor(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewBookingStore(db)
	ctx := context.Background()
	userID := insertTestUser(t, db, "guest")
	venueID := insertTestVenue(t, db)
	bookingID := insertTestBooking(t, db, userID, venueID)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	err = store.AddToTotalPrice(ctx, tx, bookingID, 30)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	tx, err = db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	subtracted, err := store.SubtractFromTotalPrice(ctx, tx, bookingID, 20)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.True(t, subtracted)

	// 10 left, subtracting 20 would go negative and must be skipped.
	tx, err = db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	subtracted, err = store.SubtractFromTotalPrice(ctx, tx, bookingID, 20)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.False(t, subtracted)

	booking, err := store.GetBooking(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, float64(10), booking.TotalPrice)
}

func TestBookingServicesJoin(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewBookingStore(db)
	ctx := context.Background()
	userID := insertTestUser(t, db, "guest")
	venueID := insertTestVenue(t, db)
	bookingID := insertTestBooking(t, db, userID, venueID)

	service := &community.VenueService{
		ID:       uuid.New(),
		VenueID:  venueID,
		Name:     "Equipment rental",
		Price:    15,
		IsActive: true,
	}
	require.NoError(t, NewVenueStore(db).CreateVenueService(ctx, service))

	bs := &community.BookingService{
		ID:        uuid.New(),
		BookingID: bookingID,
		ServiceID: service.ID,
	}
	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	err = store.CreateBookingService(ctx, tx, bs)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	fetched, err := store.GetBookingService(ctx, bookingID, service.ID)
	require.NoError(t, err)
	assert.Equal(t, bs.ID, fetched.ID)

	services, err := store.ListBookingServices(ctx, bookingID)
	require.NoError(t, err)
	require.Len(t, services, 1)

	tx, err = db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	deleted, err := store.DeleteBookingService(ctx, tx, bookingID, service.ID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.True(t, deleted)

	services, err = store.ListBookingServices(ctx, bookingID)
	require.NoError(t, err)
	assert.Empty(t, services)
}
