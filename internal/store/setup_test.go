package store

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

func insertTestUser(t *testing.T, db *sqlx.DB, username string) uuid.UUID {
	t.Helper()

	user := &community.User{
		ID:       uuid.New(),
		Username: username,
		Password: "secret",
	}
	err := NewUserStore(db).CreateUser(context.Background(), user)
	require.NoError(t, err)
	return user.ID
}

func insertTestEvent(t *testing.T, db *sqlx.DB, seats int) uuid.UUID {
	t.Helper()

	event := &community.Event{
		ID:             uuid.New(),
		Title:          "Test Event",
		EventDate:      time.Now().UTC().Add(24 * time.Hour),
		AvailableSeats: seats,
		TotalSeats:     seats,
		Status:         community.EventNew,
	}
	err := NewEventStore(db).CreateEvent(context.Background(), event)
	require.NoError(t, err)
	return event.ID
}

func insertTestVenue(t *testing.T, db *sqlx.DB) uuid.UUID {
	t.Helper()

	venue := &community.Venue{
		ID:   uuid.New(),
		Name: "Test Venue",
	}
	err := NewVenueStore(db).CreateVenue(context.Background(), venue)
	require.NoError(t, err)
	return venue.ID
}

func insertTestTeam(t *testing.T, db *sqlx.DB, creatorID uuid.UUID, capacity int) uuid.UUID {
	t.Helper()

	team := &community.Team{
		ID:             uuid.New(),
		Name:           "Test Team",
		Capacity:       capacity,
		CurrentMembers: 1,
		CreatorID:      creatorID,
	}

	store := NewTeamStore(db)
	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	err = store.CreateTeam(context.Background(), tx, team)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	return team.ID
}
