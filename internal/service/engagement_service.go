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

// EngagementService runs the shared like/view pattern for feed items,
// events, and venues.
type EngagementService struct {
	db         *sqlx.DB
	feedLikes  *store.LikeStore
	eventLikes *store.LikeStore
	venueLikes *store.LikeStore
}

func NewEngagementService(db *sqlx.DB) *EngagementService {
	return &EngagementService{
		db:         db,
		feedLikes:  store.NewFeedLikeStore(db),
		eventLikes: store.NewEventLikeStore(db),
		venueLikes: store.NewVenueLikeStore(db),
	}
}

// like is idempotent: an existing like is returned without touching the
// counter. The counter increment doubles as the subject existence check.
func (s *EngagementService) like(ctx context.Context, likes *store.LikeStore, subjectID, userID uuid.UUID) (*community.Like, error) {
	existing, err := likes.GetLike(ctx, subjectID, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check like: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	changed, err := likes.IncrementLikes(ctx, tx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to increment likes: %w", err)
	}
	if !changed {
		return nil, ErrNotFound
	}

	like := &community.Like{
		ID:        uuid.New(),
		SubjectID: subjectID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := likes.CreateLike(ctx, tx, like); err != nil {
		return nil, fmt.Errorf("failed to create like: %w", err)
	}

	return like, tx.Commit()
}

// unlike reports false when no like existed. The counter decrement floors
// at zero.
func (s *EngagementService) unlike(ctx context.Context, likes *store.LikeStore, subjectID, userID uuid.UUID) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	deleted, err := likes.DeleteLike(ctx, tx, subjectID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	if !deleted {
		return false, nil
	}

	if _, err := likes.DecrementLikes(ctx, tx, subjectID); err != nil {
		return false, fmt.Errorf("failed to decrement likes: %w", err)
	}

	return true, tx.Commit()
}

func (s *EngagementService) view(ctx context.Context, likes *store.LikeStore, subjectID uuid.UUID) error {
	changed, err := likes.IncrementViews(ctx, subjectID)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if !changed {
		return ErrNotFound
	}
	return nil
}

func (s *EngagementService) LikeFeedItem(ctx context.Context, itemID, userID uuid.UUID) (*community.Like, error) {
	return s.like(ctx, s.feedLikes, itemID, userID)
}

func (s *EngagementService) UnlikeFeedItem(ctx context.Context, itemID, userID uuid.UUID) (bool, error) {
	return s.unlike(ctx, s.feedLikes, itemID, userID)
}

func (s *EngagementService) ViewFeedItem(ctx context.Context, itemID uuid.UUID) error {
	return s.view(ctx, s.feedLikes, itemID)
}

func (s *EngagementService) LikeEvent(ctx context.Context, eventID, userID uuid.UUID) (*community.Like, error) {
	return s.like(ctx, s.eventLikes, eventID, userID)
}

func (s *EngagementService) UnlikeEvent(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	return s.unlike(ctx, s.eventLikes, eventID, userID)
}

func (s *EngagementService) ViewEvent(ctx context.Context, eventID uuid.UUID) error {
	return s.view(ctx, s.eventLikes, eventID)
}

func (s *EngagementService) LikeVenue(ctx context.Context, venueID, userID uuid.UUID) (*community.Like, error) {
	return s.like(ctx, s.venueLikes, venueID, userID)
}

func (s *EngagementService) UnlikeVenue(ctx context.Context, venueID, userID uuid.UUID) (bool, error) {
	return s.unlike(ctx, s.venueLikes, venueID, userID)
}

func (s *EngagementService) ViewVenue(ctx context.Context, venueID uuid.UUID) error {
	return s.view(ctx, s.venueLikes, venueID)
}
