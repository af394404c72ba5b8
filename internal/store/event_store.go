package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sporthub/sporthub/internal/community"
)

type EventStore struct {
	db *sqlx.DB
}

const (
	getEventQuery    = "SELECT * FROM events WHERE id = ?"
	createEventQuery = `
		INSERT INTO events (id, title, description, image_url, sport_category_id, event_date,
			registration_end_date, price, available_seats, total_seats, location, longitude,
			latitude, competition_rules, owner_id, status)
		VALUES (:id, :title, :description, :image_url, :sport_category_id, :event_date,
			:registration_end_date, :price, :available_seats, :total_seats, :location, :longitude,
			:latitude, :competition_rules, :owner_id, :status)
	`
	updateEventQuery = `
		UPDATE events SET
		title = :title,
		description = :description,
		image_url = :image_url,
		sport_category_id = :sport_category_id,
		event_date = :event_date,
		registration_end_date = :registration_end_date,
		price = :price,
		available_seats = :available_seats,
		total_seats = :total_seats,
		location = :location,
		longitude = :longitude,
		latitude = :latitude,
		competition_rules = :competition_rules,
		status = :status
		WHERE id = :id
	`
	deleteEventQuery = "DELETE FROM events WHERE id = ?"

	incrementSeatsQuery = "UPDATE events SET available_seats = available_seats + 1 WHERE id = ?"
	decrementSeatsQuery = "UPDATE events SET available_seats = available_seats - 1 WHERE id = ? AND available_seats > 0"

	getRegistrationQuery       = "SELECT * FROM event_registrations WHERE event_id = ? AND user_id = ?"
	createRegistrationQuery    = `
		INSERT INTO event_registrations (id, event_id, user_id, registration_date, status) VALUES
		(:id, :event_id, :user_id, :registration_date, :status)
	`
	listEventRegistrationsQuery = "SELECT * FROM event_registrations WHERE event_id = ?"
	listUserRegistrationsQuery  = "SELECT * FROM event_registrations WHERE user_id = ?"

	getTeamRegistrationQuery       = "SELECT * FROM event_team_registrations WHERE id = ?"
	getTeamRegistrationByPairQuery = "SELECT * FROM event_team_registrations WHERE event_id = ? AND team_id = ?"
	createTeamRegistrationQuery    = `
		INSERT INTO event_team_registrations (id, event_id, team_id, registration_date, status,
			individual_fee, team_fee, payment_status)
		VALUES (:id, :event_id, :team_id, :registration_date, :status,
			:individual_fee, :team_fee, :payment_status)
	`
	updateTeamRegistrationStatusQuery  = "UPDATE event_team_registrations SET status = ? WHERE id = ?"
	updateTeamRegistrationPaymentQuery = "UPDATE event_team_registrations SET payment_status = ? WHERE id = ?"
	updateTeamRegistrationFeesQuery    = "UPDATE event_team_registrations SET individual_fee = ?, team_fee = ? WHERE id = ?"
	deleteTeamRegistrationQuery        = "DELETE FROM event_team_registrations WHERE id = ?"
)

func NewEventStore(db *sqlx.DB) *EventStore {
	return &EventStore{db: db}
}

// EventFilter narrows ListEvents; nil fields are ignored.
type EventFilter struct {
	CategoryID *string
	Status     *community.EventStatus
	OwnerID    *string
	MinDate    *time.Time
	MaxDate    *time.Time
}

func (s *EventStore) GetEvent(ctx context.Context, id uuid.UUID) (*community.Event, error) {
	var event community.Event
	err := s.db.GetContext(ctx, &event, getEventQuery, id)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventStore) GetEventTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*community.Event, error) {
	var event community.Event
	err := tx.GetContext(ctx, &event, getEventQuery, id)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventStore) ListEvents(ctx context.Context, filter EventFilter, limit, offset int) ([]community.Event, error) {
	query := "SELECT * FROM events WHERE 1=1"
	args := []interface{}{}

	if filter.CategoryID != nil {
		query += " AND sport_category_id = ?"
		args = append(args, *filter.CategoryID)
	}
	if filter.Status != nil {
		query += " AND status = ?"
		args = append(args, *filter.Status)
	}
	if filter.OwnerID != nil {
		query += " AND owner_id = ?"
		args = append(args, *filter.OwnerID)
	}
	if filter.MinDate != nil {
		query += " AND event_date >= ?"
		args = append(args, *filter.MinDate)
	}
	if filter.MaxDate != nil {
		query += " AND event_date <= ?"
		args = append(args, *filter.MaxDate)
	}
	query += " ORDER BY event_date ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var events []community.Event
	err := s.db.SelectContext(ctx, &events, query, args...)
	return events, err
}

func (s *EventStore) CreateEvent(ctx context.Context, event *community.Event) error {
	_, err := s.db.NamedExecContext(ctx, createEventQuery, event)
	return err
}

func (s *EventStore) UpdateEvent(ctx context.Context, event *community.Event) error {
	_, err := s.db.NamedExecContext(ctx, updateEventQuery, event)
	return err
}

func (s *EventStore) DeleteEvent(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, deleteEventQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *EventStore) IncrementSeats(ctx context.Context, tx *sqlx.Tx, eventID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, incrementSeatsQuery, eventID)
	return err
}

// DecrementSeats reports whether a seat was actually taken. The conditional
// UPDATE keeps available_seats from going negative under concurrent calls.
func (s *EventStore) DecrementSeats(ctx context.Context, tx *sqlx.Tx, eventID uuid.UUID) (bool, error) {
	res, err := tx.ExecContext(ctx, decrementSeatsQuery, eventID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *EventStore) GetRegistration(ctx context.Context, eventID, userID uuid.UUID) (*community.EventRegistration, error) {
	var reg community.EventRegistration
	err := s.db.GetContext(ctx, &reg, getRegistrationQuery, eventID, userID)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *EventStore) CreateRegistration(ctx context.Context, tx *sqlx.Tx, reg *community.EventRegistration) error {
	_, err := tx.NamedExecContext(ctx, createRegistrationQuery, reg)
	return err
}

func (s *EventStore) ListEventRegistrations(ctx context.Context, eventID uuid.UUID) ([]community.EventRegistration, error) {
	var regs []community.EventRegistration
	err := s.db.SelectContext(ctx, &regs, listEventRegistrationsQuery, eventID)
	return regs, err
}

func (s *EventStore) ListUserRegistrations(ctx context.Context, userID uuid.UUID) ([]community.EventRegistration, error) {
	var regs []community.EventRegistration
	err := s.db.SelectContext(ctx, &regs, listUserRegistrationsQuery, userID)
	return regs, err
}

func (s *EventStore) GetTeamRegistration(ctx context.Context, id uuid.UUID) (*community.EventTeamRegistration, error) {
	var reg community.EventTeamRegistration
	err := s.db.GetContext(ctx, &reg, getTeamRegistrationQuery, id)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *EventStore) GetTeamRegistrationTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*community.EventTeamRegistration, error) {
	var reg community.EventTeamRegistration
	err := tx.GetContext(ctx, &reg, getTeamRegistrationQuery, id)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *EventStore) GetTeamRegistrationByPair(ctx context.Context, eventID, teamID uuid.UUID) (*community.EventTeamRegistration, error) {
	var reg community.EventTeamRegistration
	err := s.db.GetContext(ctx, &reg, getTeamRegistrationByPairQuery, eventID, teamID)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *EventStore) CreateTeamRegistration(ctx context.Context, tx *sqlx.Tx, reg *community.EventTeamRegistration) error {
	_, err := tx.NamedExecContext(ctx, createTeamRegistrationQuery, reg)
	return err
}

func (s *EventStore) ListTeamRegistrationsByEvent(ctx context.Context, eventID uuid.UUID, status *community.RegistrationStatus) ([]community.EventTeamRegistration, error) {
	query := "SELECT * FROM event_team_registrations WHERE event_id = ?"
	args := []interface{}{eventID}
	if status != nil {
		query += " AND status = ?"
		args = append(args, *status)
	}

	var regs []community.EventTeamRegistration
	err := s.db.SelectContext(ctx, &regs, query, args...)
	return regs, err
}

func (s *EventStore) ListTeamRegistrationsByTeam(ctx context.Context, teamID uuid.UUID, status *community.RegistrationStatus) ([]community.EventTeamRegistration, error) {
	query := "SELECT * FROM event_team_registrations WHERE team_id = ?"
	args := []interface{}{teamID}
	if status != nil {
		query += " AND status = ?"
		args = append(args, *status)
	}

	var regs []community.EventTeamRegistration
	err := s.db.SelectContext(ctx, &regs, query, args...)
	return regs, err
}

func (s *EventStore) UpdateTeamRegistrationStatus(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status community.RegistrationStatus) error {
	_, err := tx.ExecContext(ctx, updateTeamRegistrationStatusQuery, status, id)
	return err
}

func (s *EventStore) UpdateTeamRegistrationPayment(ctx context.Context, id uuid.UUID, status community.PaymentStatus) error {
	_, err := s.db.ExecContext(ctx, updateTeamRegistrationPaymentQuery, status, id)
	return err
}

func (s *EventStore) UpdateTeamRegistrationFees(ctx context.Context, id uuid.UUID, individualFee, teamFee float64) error {
	_, err := s.db.ExecContext(ctx, updateTeamRegistrationFeesQuery, individualFee, teamFee, id)
	return err
}

func (s *EventStore) DeleteTeamRegistration(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (bool, error) {
	res, err := tx.ExecContext(ctx, deleteTeamRegistrationQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
