package community

import (
	"time"

	"github.com/google/uuid"
)

type TeamRole string

const (
	RoleCaptain TeamRole = "captain"
	RolePlayer  TeamRole = "player"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

type Team struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	SportCategoryID *uuid.UUID `db:"sport_category_id" json:"sport_category_id"`
	LogoURL         *string    `db:"logo_url" json:"logo_url"`
	Capacity        int        `db:"capacity" json:"capacity"`
	CurrentMembers  int        `db:"current_members" json:"current_members"`
	IsAutoTeam      bool       `db:"is_auto_team" json:"is_auto_team"`
	CreatorID       uuid.UUID  `db:"creator_id" json:"creator_id"`
	EventID         *uuid.UUID `db:"event_id" json:"event_id"`
}

// IsFull is the team's only state gate; there is no stored status field.
func (t *Team) IsFull() bool {
	return t.CurrentMembers >= t.Capacity
}

type TeamMember struct {
	ID       uuid.UUID `db:"id" json:"id"`
	TeamID   uuid.UUID `db:"team_id" json:"team_id"`
	UserID   uuid.UUID `db:"user_id" json:"user_id"`
	Role     TeamRole  `db:"role" json:"role"`
	Position *string   `db:"position" json:"position"`
	Status   string    `db:"status" json:"status"`
	JoinDate time.Time `db:"join_date" json:"join_date"`
}

type TeamRequest struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	TeamID      uuid.UUID     `db:"team_id" json:"team_id"`
	UserID      uuid.UUID     `db:"user_id" json:"user_id"`
	Status      RequestStatus `db:"status" json:"status"`
	RequestDate time.Time     `db:"request_date" json:"request_date"`
}

type TeamStats struct {
	ID            uuid.UUID `db:"id" json:"id"`
	TeamID        uuid.UUID `db:"team_id" json:"team_id"`
	MatchesPlayed int       `db:"matches_played" json:"matches_played"`
	Wins          int       `db:"wins" json:"wins"`
	WinPercentage float64   `db:"win_percentage" json:"win_percentage"`
	GoalsScored   int       `db:"goals_scored" json:"goals_scored"`
}
