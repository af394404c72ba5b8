package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sporthub/sporthub/internal/community"
)

// LikeStore covers one (subject table, like table) pair. Feed items, events
// and venues all carry the same likes_count/views_count columns, so one
// store parameterized over table names serves all three.
type LikeStore struct {
	db *sqlx.DB

	getLikeQuery    string
	createLikeQuery string
	deleteLikeQuery string
	incLikesQuery   string
	decLikesQuery   string
	incViewsQuery   string
}

func newLikeStore(db *sqlx.DB, likeTable, subjectCol, subjectTable string) *LikeStore {
	return &LikeStore{
		db: db,
		getLikeQuery: fmt.Sprintf(
			"SELECT id, %s AS subject_id, user_id, created_at FROM %s WHERE %s = ? AND user_id = ?",
			subjectCol, likeTable, subjectCol),
		createLikeQuery: fmt.Sprintf(
			"INSERT INTO %s (id, %s, user_id, created_at) VALUES (:id, :subject_id, :user_id, :created_at)",
			likeTable, subjectCol),
		deleteLikeQuery: fmt.Sprintf(
			"DELETE FROM %s WHERE %s = ? AND user_id = ?", likeTable, subjectCol),
		incLikesQuery: fmt.Sprintf(
			"UPDATE %s SET likes_count = likes_count + 1 WHERE id = ?", subjectTable),
		decLikesQuery: fmt.Sprintf(
			"UPDATE %s SET likes_count = likes_count - 1 WHERE id = ? AND likes_count > 0", subjectTable),
		incViewsQuery: fmt.Sprintf(
			"UPDATE %s SET views_count = views_count + 1 WHERE id = ?", subjectTable),
	}
}

func NewFeedLikeStore(db *sqlx.DB) *LikeStore {
	return newLikeStore(db, "feed_likes", "feed_item_id", "feed_items")
}

func NewEventLikeStore(db *sqlx.DB) *LikeStore {
	return newLikeStore(db, "event_likes", "event_id", "events")
}

func NewVenueLikeStore(db *sqlx.DB) *LikeStore {
	return newLikeStore(db, "venue_likes", "venue_id", "venues")
}

func (s *LikeStore) GetLike(ctx context.Context, subjectID, userID uuid.UUID) (*community.Like, error) {
	var like community.Like
	err := s.db.GetContext(ctx, &like, s.getLikeQuery, subjectID, userID)
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (s *LikeStore) CreateLike(ctx context.Context, tx *sqlx.Tx, like *community.Like) error {
	_, err := tx.NamedExecContext(ctx, s.createLikeQuery, like)
	return err
}

func (s *LikeStore) DeleteLike(ctx context.Context, tx *sqlx.Tx, subjectID, userID uuid.UUID) (bool, error) {
	res, err := tx.ExecContext(ctx, s.deleteLikeQuery, subjectID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *LikeStore) IncrementLikes(ctx context.Context, tx *sqlx.Tx, subjectID uuid.UUID) (bool, error) {
	res, err := tx.ExecContext(ctx, s.incLikesQuery, subjectID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DecrementLikes floors at zero; decrementing an already-zero counter
// changes nothing.
func (s *LikeStore) DecrementLikes(ctx context.Context, tx *sqlx.Tx, subjectID uuid.UUID) (bool, error) {
	res, err := tx.ExecContext(ctx, s.decLikesQuery, subjectID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// IncrementViews counts raw view events; there is no per-user dedup.
func (s *LikeStore) IncrementViews(ctx context.Context, subjectID uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.incViewsQuery, subjectID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
