package community

import "github.com/google/uuid"

type FeedItem struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	ImageURL      *string    `db:"image_url" json:"image_url"`
	CategoryID    *uuid.UUID `db:"category_id" json:"category_id"`
	IsInteresting bool       `db:"is_interesting" json:"is_interesting"`
	ViewsCount    int        `db:"views_count" json:"views_count"`
	LikesCount    int        `db:"likes_count" json:"likes_count"`
}
