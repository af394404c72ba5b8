package community

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventNew       EventStatus = "new"
	EventActive    EventStatus = "active"
	EventCompleted EventStatus = "completed"
)

type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type Event struct {
	ID                  uuid.UUID   `db:"id" json:"id"`
	Title               string      `db:"title" json:"title"`
	Description         *string     `db:"description" json:"description"`
	ImageURL            *string     `db:"image_url" json:"image_url"`
	SportCategoryID     *uuid.UUID  `db:"sport_category_id" json:"sport_category_id"`
	EventDate           time.Time   `db:"event_date" json:"event_date"`
	RegistrationEndDate *time.Time  `db:"registration_end_date" json:"registration_end_date"`
	Price               float64     `db:"price" json:"price"`
	AvailableSeats      int         `db:"available_seats" json:"available_seats"`
	TotalSeats          int         `db:"total_seats" json:"total_seats"`
	Location            *string     `db:"location" json:"location"`
	Longitude           *float64    `db:"longitude" json:"longitude"`
	Latitude            *float64    `db:"latitude" json:"latitude"`
	CompetitionRules    *string     `db:"competition_rules" json:"competition_rules"`
	OwnerID             *uuid.UUID  `db:"owner_id" json:"owner_id"`
	Status              EventStatus `db:"status" json:"status"`
	ViewsCount          int         `db:"views_count" json:"views_count"`
	LikesCount          int         `db:"likes_count" json:"likes_count"`
}

// EventRegistration consumes exactly one seat of its event at creation.
type EventRegistration struct {
	ID               uuid.UUID          `db:"id" json:"id"`
	EventID          uuid.UUID          `db:"event_id" json:"event_id"`
	UserID           uuid.UUID          `db:"user_id" json:"user_id"`
	RegistrationDate time.Time          `db:"registration_date" json:"registration_date"`
	Status           RegistrationStatus `db:"status" json:"status"`
}

type EventTeamRegistration struct {
	ID               uuid.UUID          `db:"id" json:"id"`
	EventID          uuid.UUID          `db:"event_id" json:"event_id"`
	TeamID           uuid.UUID          `db:"team_id" json:"team_id"`
	RegistrationDate time.Time          `db:"registration_date" json:"registration_date"`
	Status           RegistrationStatus `db:"status" json:"status"`
	IndividualFee    float64            `db:"individual_fee" json:"individual_fee"`
	TeamFee          float64            `db:"team_fee" json:"team_fee"`
	PaymentStatus    PaymentStatus      `db:"payment_status" json:"payment_status"`
}

// RegistrationTotal is computed on demand from the team's current member
// count, never stored.
type RegistrationTotal struct {
	Total         float64 `json:"total"`
	TeamFee       float64 `json:"team_fee"`
	IndividualFee float64 `json:"individual_fee"`
	MembersCount  int     `json:"members_count"`
}
