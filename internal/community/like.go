package community

import (
	"time"

	"github.com/google/uuid"
)

// Like is one user's like of a feed item, event, or venue. The same row
// shape backs all three like tables; SubjectID is the liked entity.
type Like struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SubjectID uuid.UUID `db:"subject_id" json:"subject_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
