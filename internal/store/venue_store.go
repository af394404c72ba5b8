package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sporthub/sporthub/internal/community"
)

type VenueStore struct {
	db *sqlx.DB
}

const (
	getVenueQuery    = "SELECT * FROM venues WHERE id = ?"
	createVenueQuery = `
		INSERT INTO venues (id, name, description, address, image_url, owner_id, venue_type, sport_category_id)
		VALUES (:id, :name, :description, :address, :image_url, :owner_id, :venue_type, :sport_category_id)
	`
	updateVenueQuery = `
		UPDATE venues SET
		name = :name,
		description = :description,
		address = :address,
		image_url = :image_url,
		venue_type = :venue_type,
		sport_category_id = :sport_category_id
		WHERE id = :id
	`
	deleteVenueQuery = "DELETE FROM venues WHERE id = ?"

	getTimeSlotQuery    = "SELECT * FROM time_slots WHERE id = ?"
	createTimeSlotQuery = `
		INSERT INTO time_slots (id, venue_id, date, start_time, end_time, is_available)
		VALUES (:id, :venue_id, :date, :start_time, :end_time, :is_available)
	`
	updateTimeSlotQuery = `
		UPDATE time_slots SET
		date = :date,
		start_time = :start_time,
		end_time = :end_time,
		is_available = :is_available
		WHERE id = :id
	`
	deleteTimeSlotQuery          = "DELETE FROM time_slots WHERE id = ?"
	setTimeSlotAvailabilityQuery = "UPDATE time_slots SET is_available = ? WHERE id = ?"

	getServiceQuery       = "SELECT * FROM venue_services WHERE id = ?"
	getActiveServiceQuery = "SELECT * FROM venue_services WHERE id = ? AND venue_id = ? AND is_active = 1"
	createServiceQuery    = `
		INSERT INTO venue_services (id, venue_id, name, description, price, is_active)
		VALUES (:id, :venue_id, :name, :description, :price, :is_active)
	`
	updateServiceQuery = `
		UPDATE venue_services SET
		name = :name,
		description = :description,
		price = :price,
		is_active = :is_active
		WHERE id = :id
	`
	deleteServiceQuery = "DELETE FROM venue_services WHERE id = ?"
)

func NewVenueStore(db *sqlx.DB) *VenueStore {
	return &VenueStore{db: db}
}

// VenueFilter narrows ListVenues; nil fields are ignored.
type VenueFilter struct {
	CategoryID *string
	VenueType  *string
	OwnerID    *string
}

// TimeSlotFilter narrows ListTimeSlots for one venue.
type TimeSlotFilter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	IsAvailable *bool
}

func (s *VenueStore) GetVenue(ctx context.Context, id uuid.UUID) (*community.Venue, error) {
	var venue community.Venue
	err := s.db.GetContext(ctx, &venue, getVenueQuery, id)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (s *VenueStore) ListVenues(ctx context.Context, filter VenueFilter, limit, offset int) ([]community.Venue, error) {
	query := "SELECT * FROM venues WHERE 1=1"
	args := []interface{}{}

	if filter.CategoryID != nil {
		query += " AND sport_category_id = ?"
		args = append(args, *filter.CategoryID)
	}
	if filter.VenueType != nil {
		query += " AND venue_type = ?"
		args = append(args, *filter.VenueType)
	}
	if filter.OwnerID != nil {
		query += " AND owner_id = ?"
		args = append(args, *filter.OwnerID)
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var venues []community.Venue
	err := s.db.SelectContext(ctx, &venues, query, args...)
	return venues, err
}

func (s *VenueStore) CreateVenue(ctx context.Context, venue *community.Venue) error {
	_, err := s.db.NamedExecContext(ctx, createVenueQuery, venue)
	return err
}

func (s *VenueStore) UpdateVenue(ctx context.Context, venue *community.Venue) error {
	_, err := s.db.NamedExecContext(ctx, updateVenueQuery, venue)
	return err
}

func (s *VenueStore) DeleteVenue(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, deleteVenueQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *VenueStore) GetTimeSlot(ctx context.Context, id uuid.UUID) (*community.TimeSlot, error) {
	var slot community.TimeSlot
	err := s.db.GetContext(ctx, &slot, getTimeSlotQuery, id)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (s *VenueStore) ListTimeSlots(ctx context.Context, venueID uuid.UUID, filter TimeSlotFilter) ([]community.TimeSlot, error) {
	query := "SELECT * FROM time_slots WHERE venue_id = ?"
	args := []interface{}{venueID}

	if filter.StartDate != nil {
		query += " AND date >= ?"
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += " AND date <= ?"
		args = append(args, *filter.EndDate)
	}
	if filter.IsAvailable != nil {
		query += " AND is_available = ?"
		args = append(args, *filter.IsAvailable)
	}
	query += " ORDER BY date ASC, start_time ASC"

	var slots []community.TimeSlot
	err := s.db.SelectContext(ctx, &slots, query, args...)
	return slots, err
}

func (s *VenueStore) CreateTimeSlot(ctx context.Context, slot *community.TimeSlot) error {
	_, err := s.db.NamedExecContext(ctx, createTimeSlotQuery, slot)
	return err
}

func (s *VenueStore) UpdateTimeSlot(ctx context.Context, slot *community.TimeSlot) error {
	_, err := s.db.NamedExecContext(ctx, updateTimeSlotQuery, slot)
	return err
}

func (s *VenueStore) DeleteTimeSlot(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, deleteTimeSlotQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *VenueStore) SetTimeSlotAvailability(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, available bool) error {
	_, err := tx.ExecContext(ctx, setTimeSlotAvailabilityQuery, available, id)
	return err
}

func (s *VenueStore) GetVenueService(ctx context.Context, id uuid.UUID) (*community.VenueService, error) {
	var service community.VenueService
	err := s.db.GetContext(ctx, &service, getServiceQuery, id)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (s *VenueStore) GetVenueServiceTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*community.VenueService, error) {
	var service community.VenueService
	err := tx.GetContext(ctx, &service, getServiceQuery, id)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// GetActiveVenueService resolves a service only when it is active and
// belongs to the given venue.
func (s *VenueStore) GetActiveVenueService(ctx context.Context, tx *sqlx.Tx, serviceID, venueID uuid.UUID) (*community.VenueService, error) {
	var service community.VenueService
	err := tx.GetContext(ctx, &service, getActiveServiceQuery, serviceID, venueID)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (s *VenueStore) ListVenueServices(ctx context.Context, venueID uuid.UUID, isActive *bool) ([]community.VenueService, error) {
	query := "SELECT * FROM venue_services WHERE venue_id = ?"
	args := []interface{}{venueID}
	if isActive != nil {
		query += " AND is_active = ?"
		args = append(args, *isActive)
	}
	query += " ORDER BY name ASC"

	var services []community.VenueService
	err := s.db.SelectContext(ctx, &services, query, args...)
	return services, err
}

func (s *VenueStore) CreateVenueService(ctx context.Context, service *community.VenueService) error {
	_, err := s.db.NamedExecContext(ctx, createServiceQuery, service)
	return err
}

func (s *VenueStore) UpdateVenueService(ctx context.Context, service *community.VenueService) error {
	_, err := s.db.NamedExecContext(ctx, updateServiceQuery, service)
	return err
}

func (s *VenueStore) DeleteVenueService(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, deleteServiceQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
