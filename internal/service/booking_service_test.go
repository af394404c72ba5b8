package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sporthub/sporthub/internal/community"
	"github.com/sporthub/sporthub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingDoesNotLockSlot(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	venueStore := store.NewVenueStore(db)
	bookingService := NewBookingService(db, store.NewBookingStore(db), venueStore)
	ctx := context.Background()
	userID := createTestUser(t, db, "guest")
	venueID := createTestVenue(t, db)
	slotID := createTestTimeSlot(t, db, venueID)

	booking, err := bookingService.CreateBooking(ctx, userID, venueID, slotID)
	require.NoError(t, err)
	assert.Equal(t, community.BookingCreated, booking.Status)
	assert.Equal(t, float64(0), booking.TotalPrice)

	// The slot stays available; creation never flips the flag, and a second
	// booking of the same slot goes through.
	slot, err := venueStore.GetTimeSlot(ctx, slotID)
	require.NoError(t, err)
	assert.True(t, slot.IsAvailable)

	otherID := createTestUser(t, db, "other")
	_, err = bookingService.CreateBooking(ctx, otherID, venueID, slotID)
	require.NoError(t, err)
}

func TestCancelBookingRestoresSlot(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	venueStore := store.NewVenueStore(db)
	bookingService := NewBookingService(db, store.NewBookingStore(db), venueStore)
	ctx := context.Background()
	userID := createTestUser(t, db, "guest")
	venueID := createTestVenue(t, db)
	slotID := createTestTimeSlot(t, db, venueID)

	booking, err := bookingService.CreateBooking(ctx, userID, venueID, slotID)
	require.NoError(t, err)

	slot, err := venueStore.GetTimeSlot(ctx, slotID)
	require.NoError(t, err)
	slot.IsAvailable = false
	require.NoError(t, venueStore.UpdateTimeSlot(ctx, slot))

	cancelled, err := bookingService.UpdateBookingStatus(ctx, booking.ID, community.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, community.BookingCancelled, cancelled.Status)

	slot, err = venueStore.GetTimeSlot(ctx, slotID)
	require.NoError(t, err)
	assert.True(t, slot.IsAvailable)
}

func TestUpdateBookingStatusUnknownBooking(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	bookingService := NewBookingService(db, store.NewBookingStore(db), store.NewVenueStore(db))

	_, err := bookingService.UpdateBookingStatus(context.Background(), uuid.New(), community.BookingPaid)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddService(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	bookingStore := store.NewBookingStore(db)
	bookingService := NewBookingService(db, bookingStore, store.NewVenueStore(db))
	ctx := context.Background()
	userID := createTestUser(t, db, "guest")
	venueID := createTestVenue(t, db)
	slotID := createTestTimeSlot(t, db, venueID)
	serviceID := createTestVenueService(t, db, venueID, 15, true)

	booking, err := bookingService.CreateBooking(ctx, userID, venueID, slotID)
	require.NoError(t, err)

	bs, err := bookingService.AddService(ctx, booking.ID, serviceID)
	require.NoError(t, err)
	assert.Equal(t, serviceID, bs.ServiceID)

	fetched, err := bookingStore.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(15), fetched.TotalPrice)

	// Re-attaching returns the existing row without charging again.
	again, err := bookingService.AddService(ctx, booking.ID, serviceID)
	require.NoError(t, err)
	assert.Equal(t, bs.ID, again.ID)

	fetched, err = bookingStore.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(15), fetched.TotalPrice)
}

func TestAddServiceInactiveOrForeign(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	bookingService := NewBookingService(db, store.NewBookingStore(db), store.NewVenueStore(db))
	ctx := context.Background()
	userID := createTestUser(t, db, "guest")
	venueID := createTestVenue(t, db)
	otherVenueID := createTestVenue(t, db)
	slotID := createTestTimeSlot(t, db, venueID)
	inactiveID := createTestVenueService(t, db, venueID, 15, false)
	foreignID := createTestVenueService(t, db, otherVenueID, 15, true)

	booking, err := bookingService.CreateBooking(ctx, userID, venueID, slotID)
	require.NoError(t, err)

	_, err = bookingService.AddService(ctx, booking.ID, inactiveID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = bookingService.AddService(ctx, booking.ID, foreignID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveService(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	bookingStore := store.NewBookingStore(db)
	bookingService := NewBookingService(db, bookingStore, store.NewVenueStore(db))
	ctx := context.Background()
	userID := createTestUser(t, db, "guest")
	venueID := createTestVenue(t, db)
	slotID := createTestTimeSlot(t, db, venueID)
	serviceID := createTestVenueService(t, db, venueID, 15, true)

	booking, err := bookingService.CreateBooking(ctx, userID, venueID, slotID)
	require.NoError(t, err)
	_, err = bookingService.AddService(ctx, booking.ID, serviceID)
	require.NoError(t, err)

	removed, err := bookingService.RemoveService(ctx, booking.ID, serviceID)
	require.NoError(t, err)
	assert.True(t, removed)

	fetched, err := bookingStore.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), fetched.TotalPrice)

	removed, err = bookingService.RemoveService(ctx, booking.ID, serviceID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRemoveServiceUnaffordableTotal(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	bookingStore := store.NewBookingStore(db)
	venueStore := store.NewVenueStore(db)
	bookingService := NewBookingService(db, bookingStore, venueStore)
	ctx := context.Background()
	userID := createTestUser(t, db, "guest")
	venueID := createTestVenue(t, db)
	slotID := createTestTimeSlot(t, db, venueID)
	serviceID := createTestVenueService(t, db, venueID, 15, true)

	booking, err := bookingService.CreateBooking(ctx, userID, venueID, slotID)
	require.NoError(t, err)
	_, err = bookingService.AddService(ctx, booking.ID, serviceID)
	require.NoError(t, err)

	// The price went up since the service was attached; subtracting it now
	// would drive the total negative, so the detach keeps the total as is.
	service, err := venueStore.GetVenueService(ctx, serviceID)
	require.NoError(t, err)
	service.Price = 40
	require.NoError(t, venueStore.UpdateVenueService(ctx, service))

	removed, err := bookingService.RemoveService(ctx, booking.ID, serviceID)
	require.NoError(t, err)
	assert.True(t, removed)

	fetched, err := bookingStore.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(15), fetched.TotalPrice)

	services, err := bookingStore.ListBookingServices(ctx, booking.ID)
	require.NoError(t, err)
	assert.Empty(t, services)
}
