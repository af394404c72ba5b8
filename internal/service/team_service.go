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

type TeamService struct {
	db    *sqlx.DB
	store *store.TeamStore
}

func NewTeamService(db *sqlx.DB, store *store.TeamStore) *TeamService {
	return &TeamService{db: db, store: store}
}

type CreateTeamInput struct {
	Name            string
	SportCategoryID *uuid.UUID
	CreatorID       uuid.UUID
	Capacity        int
	LogoURL         *string
	IsAutoTeam      bool
	EventID         *uuid.UUID
}

// CreateTeam creates the team, its captain membership for the creator, and
// a zeroed stats row in one transaction. The creator counts as the first
// member, so current_members starts at 1.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*community.Team, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	team := &community.Team{
		ID:              uuid.New(),
		Name:            input.Name,
		SportCategoryID: input.SportCategoryID,
		LogoURL:         input.LogoURL,
		Capacity:        input.Capacity,
		CurrentMembers:  1,
		IsAutoTeam:      input.IsAutoTeam,
		CreatorID:       input.CreatorID,
		EventID:         input.EventID,
	}
	if err := s.store.CreateTeam(ctx, tx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	captain := &community.TeamMember{
		ID:       uuid.New(),
		TeamID:   team.ID,
		UserID:   input.CreatorID,
		Role:     community.RoleCaptain,
		Status:   "active",
		JoinDate: time.Now().UTC(),
	}
	if err := s.store.CreateMember(ctx, tx, captain); err != nil {
		return nil, fmt.Errorf("failed to create captain membership: %w", err)
	}

	stats := &community.TeamStats{
		ID:     uuid.New(),
		TeamID: team.ID,
	}
	if err := s.store.CreateStats(ctx, tx, stats); err != nil {
		return nil, fmt.Errorf("failed to create team stats: %w", err)
	}

	return team, tx.Commit()
}

// AddMember is idempotent: an existing membership is returned unchanged.
// A full team yields ErrTeamFull.
func (s *TeamService) AddMember(ctx context.Context, teamID, userID uuid.UUID, role community.TeamRole, position *string) (*community.TeamMember, error) {
	existing, err := s.store.GetMember(ctx, teamID, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	team, err := s.store.GetTeamTx(ctx, tx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if team.IsFull() {
		return nil, ErrTeamFull
	}

	member := &community.TeamMember{
		ID:       uuid.New(),
		TeamID:   teamID,
		UserID:   userID,
		Role:     role,
		Position: position,
		Status:   "active",
		JoinDate: time.Now().UTC(),
	}
	if err := s.store.CreateMember(ctx, tx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	if err := s.store.IncrementMembers(ctx, tx, teamID); err != nil {
		return nil, fmt.Errorf("failed to increment member count: %w", err)
	}

	return member, tx.Commit()
}

// RemoveMember deletes a membership and decrements the team counter. A
// captain may only be removed while no other member exists; otherwise
// ErrCaptainLocked is returned and nothing changes.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	member, err := s.store.GetMemberTx(ctx, tx, teamID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get member: %w", err)
	}

	if member.Role == community.RoleCaptain {
		others, err := s.store.CountOtherMembers(ctx, tx, teamID, userID)
		if err != nil {
			return fmt.Errorf("failed to count members: %w", err)
		}
		if others > 0 {
			return ErrCaptainLocked
		}
	}

	if _, err := s.store.DeleteMember(ctx, tx, teamID, userID); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if _, err := s.store.DecrementMembers(ctx, tx, teamID); err != nil {
		return fmt.Errorf("failed to decrement member count: %w", err)
	}

	return tx.Commit()
}

type UpdateMemberInput struct {
	Role     *community.TeamRole
	Position *string
	Status   *string
}

func (s *TeamService) UpdateMember(ctx context.Context, teamID, userID uuid.UUID, input UpdateMemberInput) (*community.TeamMember, error) {
	member, err := s.store.GetMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	if input.Role != nil {
		member.Role = *input.Role
	}
	if input.Position != nil {
		member.Position = input.Position
	}
	if input.Status != nil {
		member.Status = *input.Status
	}

	if err := s.store.UpdateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	return member, nil
}

// RequestJoin is idempotent on an existing request. Current members cannot
// request to join again.
func (s *TeamService) RequestJoin(ctx context.Context, teamID, userID uuid.UUID) (*community.TeamRequest, error) {
	existing, err := s.store.GetRequestByPair(ctx, teamID, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check request: %w", err)
	}

	_, err = s.store.GetMember(ctx, teamID, userID)
	if err == nil {
		return nil, ErrAlreadyMember
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	request := &community.TeamRequest{
		ID:          uuid.New(),
		TeamID:      teamID,
		UserID:      userID,
		Status:      community.RequestPending,
		RequestDate: time.Now().UTC(),
	}
	if err := s.store.CreateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return request, nil
}

// HandleRequest sets the request status. Acceptance adds the requester as a
// player, subject to the usual capacity gate: accepting against a full team
// leaves the request accepted but creates no membership, and ErrTeamFull is
// returned so the caller sees the mismatch.
func (s *TeamService) HandleRequest(ctx context.Context, requestID uuid.UUID, status community.RequestStatus) (*community.TeamRequest, error) {
	request, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	if err := s.store.UpdateRequestStatus(ctx, requestID, status); err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}
	request.Status = status

	if status == community.RequestAccepted {
		if _, err := s.AddMember(ctx, request.TeamID, request.UserID, community.RolePlayer, nil); err != nil {
			return request, err
		}
	}

	return request, nil
}

type UpdateStatsInput struct {
	MatchesPlayed *int
	Wins          *int
	GoalsScored   *int
}

// UpdateStats upserts the stats row before applying fields. The win
// percentage is recomputed only when the payload carries both wins and a
// positive matches_played.
func (s *TeamService) UpdateStats(ctx context.Context, teamID uuid.UUID, input UpdateStatsInput) (*community.TeamStats, error) {
	stats, err := s.store.GetStats(ctx, teamID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to get stats: %w", err)
		}
		stats = &community.TeamStats{ID: uuid.New(), TeamID: teamID}
		if err := s.store.CreateStatsDB(ctx, stats); err != nil {
			return nil, fmt.Errorf("failed to create stats: %w", err)
		}
	}

	if input.MatchesPlayed != nil {
		stats.MatchesPlayed = *input.MatchesPlayed
	}
	if input.Wins != nil {
		stats.Wins = *input.Wins
	}
	if input.GoalsScored != nil {
		stats.GoalsScored = *input.GoalsScored
	}

	if input.MatchesPlayed != nil && *input.MatchesPlayed > 0 && input.Wins != nil {
		stats.WinPercentage = float64(stats.Wins) / float64(stats.MatchesPlayed) * 100
	}

	if err := s.store.UpdateStats(ctx, stats); err != nil {
		return nil, fmt.Errorf("failed to update stats: %w", err)
	}
	return stats, nil
}
