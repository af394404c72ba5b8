package community

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingCreated   BookingStatus = "created"
	BookingPaid      BookingStatus = "paid"
	BookingCancelled BookingStatus = "cancelled"
)

type Venue struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Description     *string    `db:"description" json:"description"`
	Address         *string    `db:"address" json:"address"`
	ImageURL        *string    `db:"image_url" json:"image_url"`
	OwnerID         *uuid.UUID `db:"owner_id" json:"owner_id"`
	VenueType       *string    `db:"venue_type" json:"venue_type"`
	SportCategoryID *uuid.UUID `db:"sport_category_id" json:"sport_category_id"`
	ViewsCount      int        `db:"views_count" json:"views_count"`
	LikesCount      int        `db:"likes_count" json:"likes_count"`
}

type TimeSlot struct {
	ID          uuid.UUID `db:"id" json:"id"`
	VenueID     uuid.UUID `db:"venue_id" json:"venue_id"`
	Date        time.Time `db:"date" json:"date"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
}

type VenueService struct {
	ID          uuid.UUID `db:"id" json:"id"`
	VenueID     uuid.UUID `db:"venue_id" json:"venue_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	IsActive    bool      `db:"is_active" json:"is_active"`
}

// Booking.TotalPrice accumulates as services are attached and detached.
type Booking struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	UserID      uuid.UUID     `db:"user_id" json:"user_id"`
	VenueID     uuid.UUID     `db:"venue_id" json:"venue_id"`
	TimeSlotID  uuid.UUID     `db:"time_slot_id" json:"time_slot_id"`
	BookingDate time.Time     `db:"booking_date" json:"booking_date"`
	Status      BookingStatus `db:"status" json:"status"`
	TotalPrice  float64       `db:"total_price" json:"total_price"`
}

type BookingService struct {
	ID        uuid.UUID `db:"id" json:"id"`
	BookingID uuid.UUID `db:"booking_id" json:"booking_id"`
	ServiceID uuid.UUID `db:"service_id" json:"service_id"`
}
