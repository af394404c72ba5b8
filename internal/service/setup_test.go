package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sporthub/sporthub/internal/community"
	"github.com/sporthub/sporthub/internal/store"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	// An in-memory SQLite database exists per connection, so the pool must
	// stay on the one the migrations ran against.
	database.SetMaxOpenConns(1)

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

func createTestUser(t *testing.T, db *sqlx.DB, username string) uuid.UUID {
	t.Helper()

	user := &community.User{
		ID:       uuid.New(),
		Username: username,
		Password: "secret",
	}
	err := store.NewUserStore(db).CreateUser(context.Background(), user)
	require.NoError(t, err)
	return user.ID
}

func createTestEvent(t *testing.T, db *sqlx.DB, seats int) uuid.UUID {
	t.Helper()

	event := &community.Event{
		ID:             uuid.New(),
		Title:          "Test Event",
		EventDate:      time.Now().UTC().Add(24 * time.Hour),
		AvailableSeats: seats,
		TotalSeats:     seats,
		Status:         community.EventNew,
	}
	err := store.NewEventStore(db).CreateEvent(context.Background(), event)
	require.NoError(t, err)
	return event.ID
}

func createTestVenue(t *testing.T, db *sqlx.DB) uuid.UUID {
	t.Helper()

	venue := &community.Venue{
		ID:   uuid.New(),
		Name: "Test Venue",
	}
	err := store.NewVenueStore(db).CreateVenue(context.Background(), venue)
	require.NoError(t, err)
	return venue.ID
}

func createTestTimeSlot(t *testing.T, db *sqlx.DB, venueID uuid.UUID) uuid.UUID {
	t.Helper()

	slot := &community.TimeSlot{
		ID:          uuid.New(),
		VenueID:     venueID,
		Date:        time.Now().UTC(),
		StartTime:   time.Now().UTC(),
		EndTime:     time.Now().UTC().Add(time.Hour),
		IsAvailable: true,
	}
	err := store.NewVenueStore(db).CreateTimeSlot(context.Background(), slot)
	require.NoError(t, err)
	return slot.ID
}

func createTestVenueService(t *testing.T, db *sqlx.DB, venueID uuid.UUID, price float64, active bool) uuid.UUID {
	t.Helper()

	service := &community.VenueService{
		ID:       uuid.New(),
		VenueID:  venueID,
		Name:     "Test Service",
		Price:    price,
		IsActive: active,
	}
	err := store.NewVenueStore(db).CreateVenueService(context.Background(), service)
	require.NoError(t, err)
	return service.ID
}
