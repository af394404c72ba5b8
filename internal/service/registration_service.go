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

type RegistrationService struct {
	db     *sqlx.DB
	events *store.EventStore
	teams  *store.TeamStore
}

func NewRegistrationService(db *sqlx.DB, events *store.EventStore, teams *store.TeamStore) *RegistrationService {
	return &RegistrationService{db: db, events: events, teams: teams}
}

// RegisterForEvent registers one user for an event, consuming one seat.
// Idempotent on an existing registration; ErrNoSeats when the event is
// sold out.
func (s *RegistrationService) RegisterForEvent(ctx context.Context, eventID, userID uuid.UUID) (*community.EventRegistration, error) {
	existing, err := s.events.GetRegistration(ctx, eventID, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check registration: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	event, err := s.events.GetEventTx(ctx, tx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event.AvailableSeats <= 0 {
		return nil, ErrNoSeats
	}

	reg := &community.EventRegistration{
		ID:               uuid.New(),
		EventID:          eventID,
		UserID:           userID,
		RegistrationDate: time.Now().UTC(),
		Status:           community.RegistrationPending,
	}
	if err := s.events.CreateRegistration(ctx, tx, reg); err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}
	if _, err := s.events.DecrementSeats(ctx, tx, eventID); err != nil {
		return nil, fmt.Errorf("failed to decrement seats: %w", err)
	}

	return reg, tx.Commit()
}

// RegisterTeamForEvent registers a team for an event. Unlike individual
// registration it never fails on a sold-out event: with no seats left the
// registration is still created and the decrement is skipped. That
// asymmetry matches the current product behavior and is intentionally
// not unified here.
func (s *RegistrationService) RegisterTeamForEvent(ctx context.Context, eventID, teamID uuid.UUID, individualFee, teamFee float64) (*community.EventTeamRegistration, error) {
	existing, err := s.events.GetTeamRegistrationByPair(ctx, eventID, teamID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check team registration: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := s.events.GetEventTx(ctx, tx, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if _, err := s.teams.GetTeamTx(ctx, tx, teamID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	reg := &community.EventTeamRegistration{
		ID:               uuid.New(),
		EventID:          eventID,
		TeamID:           teamID,
		RegistrationDate: time.Now().UTC(),
		Status:           community.RegistrationPending,
		IndividualFee:    individualFee,
		TeamFee:          teamFee,
		PaymentStatus:    community.PaymentPending,
	}
	if err := s.events.CreateTeamRegistration(ctx, tx, reg); err != nil {
		return nil, fmt.Errorf("failed to create team registration: %w", err)
	}
	if _, err := s.events.DecrementSeats(ctx, tx, eventID); err != nil {
		return nil, fmt.Errorf("failed to decrement seats: %w", err)
	}

	return reg, tx.Commit()
}

// UpdateTeamRegistrationStatus applies seat accounting to the transition,
// not the absolute status: entering rejected frees the seat, leaving
// rejected for approved re-takes one if any remain. Every other transition
// leaves seats alone since the seat was consumed at registration time.
func (s *RegistrationService) UpdateTeamRegistrationStatus(ctx context.Context, regID uuid.UUID, status community.RegistrationStatus) (*community.EventTeamRegistration, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	reg, err := s.events.GetTeamRegistrationTx(ctx, tx, regID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team registration: %w", err)
	}

	oldStatus := reg.Status
	if err := s.events.UpdateTeamRegistrationStatus(ctx, tx, regID, status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	reg.Status = status

	switch {
	case oldStatus != community.RegistrationRejected && status == community.RegistrationRejected:
		if err := s.events.IncrementSeats(ctx, tx, reg.EventID); err != nil {
			return nil, fmt.Errorf("failed to free seat: %w", err)
		}
	case oldStatus == community.RegistrationRejected && status == community.RegistrationApproved:
		if _, err := s.events.DecrementSeats(ctx, tx, reg.EventID); err != nil {
			return nil, fmt.Errorf("failed to take seat: %w", err)
		}
	}

	return reg, tx.Commit()
}

func (s *RegistrationService) UpdateTeamRegistrationPayment(ctx context.Context, regID uuid.UUID, status community.PaymentStatus) (*community.EventTeamRegistration, error) {
	reg, err := s.events.GetTeamRegistration(ctx, regID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team registration: %w", err)
	}

	if err := s.events.UpdateTeamRegistrationPayment(ctx, regID, status); err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	reg.PaymentStatus = status
	return reg, nil
}

func (s *RegistrationService) UpdateTeamRegistrationFees(ctx context.Context, regID uuid.UUID, individualFee, teamFee *float64) (*community.EventTeamRegistration, error) {
	reg, err := s.events.GetTeamRegistration(ctx, regID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team registration: %w", err)
	}

	if individualFee != nil {
		reg.IndividualFee = *individualFee
	}
	if teamFee != nil {
		reg.TeamFee = *teamFee
	}
	if err := s.events.UpdateTeamRegistrationFees(ctx, regID, reg.IndividualFee, reg.TeamFee); err != nil {
		return nil, fmt.Errorf("failed to update fees: %w", err)
	}
	return reg, nil
}

// DeleteTeamRegistration frees the consumed seat unless the registration
// was already rejected (its seat was freed at rejection time).
func (s *RegistrationService) DeleteTeamRegistration(ctx context.Context, regID uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	reg, err := s.events.GetTeamRegistrationTx(ctx, tx, regID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get team registration: %w", err)
	}

	if reg.Status != community.RegistrationRejected {
		if err := s.events.IncrementSeats(ctx, tx, reg.EventID); err != nil {
			return fmt.Errorf("failed to free seat: %w", err)
		}
	}
	if _, err := s.events.DeleteTeamRegistration(ctx, tx, regID); err != nil {
		return fmt.Errorf("failed to delete team registration: %w", err)
	}

	return tx.Commit()
}

// CalculateTotal prices a team registration against the team's current
// member count: team_fee + individual_fee * current_members. Nothing is
// persisted; the total drifts as members join and leave.
func (s *RegistrationService) CalculateTotal(ctx context.Context, regID uuid.UUID) (*community.RegistrationTotal, error) {
	reg, err := s.events.GetTeamRegistration(ctx, regID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team registration: %w", err)
	}

	team, err := s.teams.GetTeam(ctx, reg.TeamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &community.RegistrationTotal{
		Total:         reg.TeamFee + reg.IndividualFee*float64(team.CurrentMembers),
		TeamFee:       reg.TeamFee,
		IndividualFee: reg.IndividualFee,
		MembersCount:  team.CurrentMembers,
	}, nil
}
