package community

import "github.com/google/uuid"

type SportCategory struct {
	ID      uuid.UUID `db:"id" json:"id"`
	Name    string    `db:"name" json:"name"`
	IconURL *string   `db:"icon_url" json:"icon_url"`
}
