package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sporthub/sporthub/internal/community"
)

type TeamStore struct {
	db *sqlx.DB
}

const (
	getTeamQuery    = "SELECT * FROM teams WHERE id = ?"
	createTeamQuery = `
		INSERT INTO teams (id, name, sport_category_id, logo_url, capacity, current_members,
			is_auto_team, creator_id, event_id)
		VALUES (:id, :name, :sport_category_id, :logo_url, :capacity, :current_members,
			:is_auto_team, :creator_id, :event_id)
	`
	updateTeamQuery = `
		UPDATE teams SET
		name = :name,
		sport_category_id = :sport_category_id,
		logo_url = :logo_url,
		capacity = :capacity,
		is_auto_team = :is_auto_team,
		event_id = :event_id
		WHERE id = :id
	`
	deleteTeamQuery = "DELETE FROM teams WHERE id = ?"

	incrementMembersQuery = "UPDATE teams SET current_members = current_members + 1 WHERE id = ?"
	decrementMembersQuery = "UPDATE teams SET current_members = current_members - 1 WHERE id = ? AND current_members > 0"

	getMemberQuery    = "SELECT * FROM team_members WHERE team_id = ? AND user_id = ?"
	listMembersQuery  = "SELECT * FROM team_members WHERE team_id = ? ORDER BY join_date ASC"
	createMemberQuery = `
		INSERT INTO team_members (id, team_id, user_id, role, position, status, join_date)
		VALUES (:id, :team_id, :user_id, :role, :position, :status, :join_date)
	`
	updateMemberQuery = `
		UPDATE team_members SET
		role = :role,
		position = :position,
		status = :status
		WHERE team_id = :team_id AND user_id = :user_id
	`
	deleteMemberQuery      = "DELETE FROM team_members WHERE team_id = ? AND user_id = ?"
	countOtherMembersQuery = "SELECT COUNT(*) FROM team_members WHERE team_id = ? AND user_id != ?"

	getRequestQuery       = "SELECT * FROM team_requests WHERE id = ?"
	getRequestByPairQuery = "SELECT * FROM team_requests WHERE team_id = ? AND user_id = ?"
	createRequestQuery    = `
		INSERT INTO team_requests (id, team_id, user_id, status, request_date)
		VALUES (:id, :team_id, :user_id, :status, :request_date)
	`
	updateRequestStatusQuery = "UPDATE team_requests SET status = ? WHERE id = ?"

	getStatsQuery    = "SELECT * FROM team_stats WHERE team_id = ?"
	createStatsQuery = `
		INSERT INTO team_stats (id, team_id, matches_played, wins, win_percentage, goals_scored)
		VALUES (:id, :team_id, :matches_played, :wins, :win_percentage, :goals_scored)
	`
	updateStatsQuery = `
		UPDATE team_stats SET
		matches_played = :matches_played,
		wins = :wins,
		win_percentage = :win_percentage,
		goals_scored = :goals_scored
		WHERE team_id = :team_id
	`
)

func NewTeamStore(db *sqlx.DB) *TeamStore {
	return &TeamStore{db: db}
}

// TeamFilter narrows ListTeams; nil fields are ignored.
type TeamFilter struct {
	CategoryID *string
	EventID    *string
	IsAutoTeam *bool
}

func (s *TeamStore) GetTeam(ctx context.Context, id uuid.UUID) (*community.Team, error) {
	var team community.Team
	err := s.db.GetContext(ctx, &team, getTeamQuery, id)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamStore) GetTeamTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*community.Team, error) {
	var team community.Team
	err := tx.GetContext(ctx, &team, getTeamQuery, id)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamStore) ListTeams(ctx context.Context, filter TeamFilter, limit, offset int) ([]community.Team, error) {
	query := "SELECT * FROM teams WHERE 1=1"
	args := []interface{}{}

	if filter.CategoryID != nil {
		query += " AND sport_category_id = ?"
		args = append(args, *filter.CategoryID)
	}
	if filter.EventID != nil {
		query += " AND event_id = ?"
		args = append(args, *filter.EventID)
	}
	if filter.IsAutoTeam != nil {
		query += " AND is_auto_team = ?"
		args = append(args, *filter.IsAutoTeam)
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var teams []community.Team
	err := s.db.SelectContext(ctx, &teams, query, args...)
	return teams, err
}

func (s *TeamStore) CreateTeam(ctx context.Context, tx *sqlx.Tx, team *community.Team) error {
	_, err := tx.NamedExecContext(ctx, createTeamQuery, team)
	return err
}

func (s *TeamStore) UpdateTeam(ctx context.Context, team *community.Team) error {
	_, err := s.db.NamedExecContext(ctx, updateTeamQuery, team)
	return err
}

func (s *TeamStore) DeleteTeam(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, deleteTeamQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *TeamStore) IncrementMembers(ctx context.Context, tx *sqlx.Tx, teamID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, incrementMembersQuery, teamID)
	return err
}

// DecrementMembers floors at zero rather than failing.
func (s *TeamStore) DecrementMembers(ctx context.Context, tx *sqlx.Tx, teamID uuid.UUID) (bool, error) {
	res, err := tx.ExecContext(ctx, decrementMembersQuery, teamID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *TeamStore) GetMember(ctx context.Context, teamID, userID uuid.UUID) (*community.TeamMember, error) {
	var member community.TeamMember
	err := s.db.GetContext(ctx, &member, getMemberQuery, teamID, userID)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *TeamStore) GetMemberTx(ctx context.Context, tx *sqlx.Tx, teamID, userID uuid.UUID) (*community.TeamMember, error) {
	var member community.TeamMember
	err := tx.GetContext(ctx, &member, getMemberQuery, teamID, userID)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *TeamStore) ListMembers(ctx context.Context, teamID uuid.UUID) ([]community.TeamMember, error) {
	var members []community.TeamMember
	err := s.db.SelectContext(ctx, &members, listMembersQuery, teamID)
	return members, err
}

func (s *TeamStore) CreateMember(ctx context.Context, tx *sqlx.Tx, member *community.TeamMember) error {
	_, err := tx.NamedExecContext(ctx, createMemberQuery, member)
	return err
}

func (s *TeamStore) UpdateMember(ctx context.Context, member *community.TeamMember) error {
	_, err := s.db.NamedExecContext(ctx, updateMemberQuery, member)
	return err
}

func (s *TeamStore) DeleteMember(ctx context.Context, tx *sqlx.Tx, teamID, userID uuid.UUID) (bool, error) {
	res, err := tx.ExecContext(ctx, deleteMemberQuery, teamID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CountOtherMembers counts members of the team besides the given user.
func (s *TeamStore) CountOtherMembers(ctx context.Context, tx *sqlx.Tx, teamID, userID uuid.UUID) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, countOtherMembersQuery, teamID, userID)
	return count, err
}

func (s *TeamStore) GetRequest(ctx context.Context, id uuid.UUID) (*community.TeamRequest, error) {
	var request community.TeamRequest
	err := s.db.GetContext(ctx, &request, getRequestQuery, id)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *TeamStore) GetRequestByPair(ctx context.Context, teamID, userID uuid.UUID) (*community.TeamRequest, error) {
	var request community.TeamRequest
	err := s.db.GetContext(ctx, &request, getRequestByPairQuery, teamID, userID)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *TeamStore) ListRequests(ctx context.Context, teamID uuid.UUID, status *community.RequestStatus) ([]community.TeamRequest, error) {
	query := "SELECT * FROM team_requests WHERE team_id = ?"
	args := []interface{}{teamID}
	if status != nil {
		query += " AND status = ?"
		args = append(args, *status)
	}
	query += " ORDER BY request_date ASC"

	var requests []community.TeamRequest
	err := s.db.SelectContext(ctx, &requests, query, args...)
	return requests, err
}

func (s *TeamStore) CreateRequest(ctx context.Context, request *community.TeamRequest) error {
	_, err := s.db.NamedExecContext(ctx, createRequestQuery, request)
	return err
}

func (s *TeamStore) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status community.RequestStatus) error {
	_, err := s.db.ExecContext(ctx, updateRequestStatusQuery, status, id)
	return err
}

func (s *TeamStore) GetStats(ctx context.Context, teamID uuid.UUID) (*community.TeamStats, error) {
	var stats community.TeamStats
	err := s.db.GetContext(ctx, &stats, getStatsQuery, teamID)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *TeamStore) CreateStats(ctx context.Context, tx *sqlx.Tx, stats *community.TeamStats) error {
	_, err := tx.NamedExecContext(ctx, createStatsQuery, stats)
	return err
}

func (s *TeamStore) CreateStatsDB(ctx context.Context, stats *community.TeamStats) error {
	_, err := s.db.NamedExecContext(ctx, createStatsQuery, stats)
	return err
}

func (s *TeamStore) UpdateStats(ctx context.Context, stats *community.TeamStats) error {
	_, err := s.db.NamedExecContext(ctx, updateStatsQuery, stats)
	return err
}
