package community

import "github.com/google/uuid"

type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Password       string    `db:"password" json:"-"`
	AvatarURL      *string   `db:"avatar_url" json:"avatar_url"`
	FollowersCount int       `db:"followers_count" json:"followers_count"`
	ReviewsCount   int       `db:"reviews_count" json:"reviews_count"`
}
