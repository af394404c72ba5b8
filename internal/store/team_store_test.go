package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sporthub/sporthub/internal/community"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTeam(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewTeamStore(db)
	ctx := context.Background()
	creatorID := insertTestUser(t, db, "founder")

	team := &community.Team{
		ID:             uuid.New(),
		Name:           "Red Hawks",
		Capacity:       11,
		CurrentMembers: 1,
		CreatorID:      creatorID,
	}

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	err = store.CreateTeam(ctx, tx, team)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	fetched, err := store.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, team.Name, fetched.Name)
	assert.Equal(t, 11, fetched.Capacity)
	assert.Equal(t, 1, fetched.CurrentMembers)
	assert.Equal(t, creatorID, fetched.CreatorID)
	assert.False(t, fetched.IsFull())
}

func TestMemberCounter(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewTeamStore(db)
	ctx := context.Background()
	creatorID := insertTestUser(t, db, "founder")
	teamID := insertTestTeam(t, db, creatorID, 5)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	err = store.IncrementMembers(ctx, tx, teamID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	team, err := store.GetTeam(ctx, teamID)
	require.NoError(t, err)
	assert.Equal(t, 2, team.CurrentMembers)

	// Two decrements against a count of 2, then one more that must not
	// push the counter below zero.
	for i := 0; i < 3; i++ {
		tx, err = db.BeginTxx(ctx, nil)
		require.NoError(t, err)
		_, err = store.DecrementMembers(ctx, tx, teamID)
		require.NoError(t, err)
		require.NoError(t, tx.Commit())
	}

	team, err = store.GetTeam(ctx, teamID)
	require.NoError(t, err)
	assert.Equal(t, 0, team.CurrentMembers)
}

func TestCountOtherMembers(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewTeamStore(db)
	ctx := context.Background()
	captainID := insertTestUser(t, db, "captain")
	playerID := insertTestUser(t, db, "player")
	teamID := insertTestTeam(t, db, captainID, 5)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	err = store.CreateMember(ctx, tx, &community.TeamMember{
		ID:       uuid.New(),
		TeamID:   teamID,
		UserID:   captainID,
		Role:     community.RoleCaptain,
		Status:   "active",
		JoinDate: time.Now().UTC(),
	})
	require.NoError(t, err)

	others, err := store.CountOtherMembers(ctx, tx, teamID, captainID)
	require.NoError(t, err)
	assert.Equal(t, 0, others)

	err = store.CreateMember(ctx, tx, &community.TeamMember{
		ID:       uuid.New(),
		TeamID:   teamID,
		UserID:   playerID,
		Role:     community.RolePlayer,
		Status:   "active",
		JoinDate: time.Now().UTC(),
	})
	require.NoError(t, err)

	others, err = store.CountOtherMembers(ctx, tx, teamID, captainID)
	require.NoError(t, err)
	assert.Equal(t, 1, others)
	require.NoError(t, tx.Commit())
}

func TestTeamRequests(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewTeamStore(db)
	ctx := context.Background()
	creatorID := insertTestUser(t, db, "founder")
	applicantID := insertTestUser(t, db, "applicant")
	teamID := insertTestTeam(t, db, creatorID, 5)

	request := &community.TeamRequest{
		ID:          uuid.New(),
		TeamID:      teamID,
		UserID:      applicantID,
		Status:      community.RequestPending,
		RequestDate: time.Now().UTC(),
	}
	err := store.CreateRequest(ctx, request)
	require.NoError(t, err)

	byPair, err := store.GetRequestByPair(ctx, teamID, applicantID)
	require.NoError(t, err)
	assert.Equal(t, request.ID, byPair.ID)

	err = store.UpdateRequestStatus(ctx, request.ID, community.RequestAccepted)
	require.NoError(t, err)

	fetched, err := store.GetRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, community.RequestAccepted, fetched.Status)

	pending := community.RequestPending
	requests, err := store.ListRequests(ctx, teamID, &pending)
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestTeamStats(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewTeamStore(db)
	ctx := context.Background()
	creatorID := insertTestUser(t, db, "founder")
	teamID := insertTestTeam(t, db, creatorID, 5)

	stats := &community.TeamStats{ID: uuid.New(), TeamID: teamID}
	err := store.CreateStatsDB(ctx, stats)
	require.NoError(t, err)

	stats.MatchesPlayed = 10
	stats.Wins = 4
	stats.WinPercentage = 40
	stats.GoalsScored = 17
	err = store.UpdateStats(ctx, stats)
	require.NoError(t, err)

	fetched, err := store.GetStats(ctx, teamID)
	require.NoError(t, err)
	assert.Equal(t, 10, fetched.MatchesPlayed)
	assert.Equal(t, 4, fetched.Wins)
	assert.Equal(t, float64(40), fetched.WinPercentage)
	assert.Equal(t, 17, fetched.GoalsScored)
}
