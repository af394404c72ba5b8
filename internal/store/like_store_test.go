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

func TestLikeRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewEventLikeStore(db)
	ctx := context.Background()
	eventID := insertTestEvent(t, db, 10)
	userID := insertTestUser(t, db, "fan")

	like := &community.Like{
		ID:        uuid.New(),
		SubjectID: eventID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	err = store.CreateLike(ctx, tx, like)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	fetched, err := store.GetLike(ctx, eventID, userID)
	require.NoError(t, err)
	assert.Equal(t, like.ID, fetched.ID)
	assert.Equal(t, eventID, fetched.SubjectID)
	assert.Equal(t, userID, fetched.UserID)

	tx, err = db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	deleted, err := store.DeleteLike(ctx, tx, eventID, userID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.True(t, deleted)

	tx, err = db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	deleted, err = store.DeleteLike(ctx, tx, eventID, userID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.False(t, deleted)
}

func TestLikeCounterFloorsAtZero(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewFeedLikeStore(db)
	ctx := context.Background()

	item := &community.FeedItem{ID: uuid.New(), Title: "Transfer news"}
	require.NoError(t, NewFeedStore(db).CreateFeedItem(ctx, item))

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	changed, err := store.IncrementLikes(ctx, tx, item.ID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.True(t, changed)

	assert.Equal(t, 1, feedLikesCount(t, db, item.ID))

	tx, err = db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	changed, err = store.DecrementLikes(ctx, tx, item.ID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.True(t, changed)

	tx, err = db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	changed, err = store.DecrementLikes(ctx, tx, item.ID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.False(t, changed)

	assert.Equal(t, 0, feedLikesCount(t, db, item.ID))
}

func TestIncrementLikesMissingSubject(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewVenueLikeStore(db)
	ctx := context.Background()

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	changed, err := store.IncrementLikes(ctx, tx, uuid.New())
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.False(t, changed)
}

func TestIncrementViews(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewVenueLikeStore(db)
	ctx := context.Background()
	venueID := insertTestVenue(t, db)

	for i := 0; i < 3; i++ {
		changed, err := store.IncrementViews(ctx, venueID)
		require.NoError(t, err)
		assert.True(t, changed)
	}

	venue, err := NewVenueStore(db).GetVenue(ctx, venueID)
	require.NoError(t, err)
	assert.Equal(t, 3, venue.ViewsCount)

	changed, err := store.IncrementViews(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, changed)
}

func feedLikesCount(t *testing.T, db *sqlx.DB, itemID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.Get(&count, "SELECT likes_count FROM feed_items WHERE id=$1", itemID)
	require.NoError(t, err)
	return count
}
