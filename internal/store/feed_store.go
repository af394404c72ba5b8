package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sporthub/sporthub/internal/community"
)

type FeedStore struct {
	db *sqlx.DB
}

const (
	getFeedItemQuery    = "SELECT * FROM feed_items WHERE id = ?"
	createFeedItemQuery = `
		INSERT INTO feed_items (id, title, image_url, category_id, is_interesting) VALUES
		(:id, :title, :image_url, :category_id, :is_interesting)
	`
	updateFeedItemQuery = `
		UPDATE feed_items SET
		title = :title,
		image_url = :image_url,
		category_id = :category_id,
		is_interesting = :is_interesting
		WHERE id = :id
	`
	deleteFeedItemQuery = "DELETE FROM feed_items WHERE id = ?"
)

func NewFeedStore(db *sqlx.DB) *FeedStore {
	return &FeedStore{db: db}
}

// FeedFilter narrows ListFeedItems; nil fields are ignored.
type FeedFilter struct {
	CategoryID    *string
	IsInteresting *bool
}

func (s *FeedStore) GetFeedItem(ctx context.Context, id uuid.UUID) (*community.FeedItem, error) {
	var item community.FeedItem
	err := s.db.GetContext(ctx, &item, getFeedItemQuery, id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *FeedStore) ListFeedItems(ctx context.Context, filter FeedFilter, limit, offset int) ([]community.FeedItem, error) {
	query := "SELECT * FROM feed_items WHERE 1=1"
	args := []interface{}{}

	if filter.CategoryID != nil {
		query += " AND category_id = ?"
		args = append(args, *filter.CategoryID)
	}
	if filter.IsInteresting != nil {
		query += " AND is_interesting = ?"
		args = append(args, *filter.IsInteresting)
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var items []community.FeedItem
	err := s.db.SelectContext(ctx, &items, query, args...)
	return items, err
}

func (s *FeedStore) CreateFeedItem(ctx context.Context, item *community.FeedItem) error {
	_, err := s.db.NamedExecContext(ctx, createFeedItemQuery, item)
	return err
}

func (s *FeedStore) UpdateFeedItem(ctx context.Context, item *community.FeedItem) error {
	_, err := s.db.NamedExecContext(ctx, updateFeedItemQuery, item)
	return err
}

func (s *FeedStore) DeleteFeedItem(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, deleteFeedItemQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
