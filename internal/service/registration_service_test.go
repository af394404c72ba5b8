package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sporthub/sporthub/internal/community"
	"github.com/sporthub/sporthub/internal/store"
	"github.com/sporthub/sporthub/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistrationFixture(db *sqlx.DB) (*RegistrationService, *store.EventStore, *TeamService) {
	eventStore := store.NewEventStore(db)
	teamStore := store.NewTeamStore(db)
	return NewRegistrationService(db, eventStore, teamStore), eventStore, NewTeamService(db, teamStore)
}

func TestRegisterForEvent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	regService, eventStore, _ := newRegistrationFixture(db)
	ctx := context.Background()
	eventID := createTestEvent(t, db, 2)
	userID := createTestUser(t, db, "runner")

	reg, err := regService.RegisterForEvent(ctx, eventID, userID)
	require.NoError(t, err)
	assert.Equal(t, community.RegistrationPending, reg.Status)

	event, err := eventStore.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 1, event.AvailableSeats)

	// Registering again returns the existing row without taking a seat.
	again, err := regService.RegisterForEvent(ctx, eventID, userID)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, again.ID)

	event, err = eventStore.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 1, event.AvailableSeats)
}

func TestRegisterForEventSoldOut(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	regService, eventStore, _ := newRegistrationFixture(db)
	ctx := context.Background()
	eventID := createTestEvent(t, db, 1)
	firstID := createTestUser(t, db, "first")
	secondID := createTestUser(t, db, "second")

	_, err := regService.RegisterForEvent(ctx, eventID, firstID)
	require.NoError(t, err)

	_, err = regService.RegisterForEvent(ctx, eventID, secondID)
	assert.ErrorIs(t, err, ErrNoSeats)

	event, err := eventStore.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 0, event.AvailableSeats)

	regs, err := eventStore.ListEventRegistrations(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, firstID, regs[0].UserID)
}

func TestRegisterForEventUnknownEvent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	regService, _, _ := newRegistrationFixture(db)
	userID := createTestUser(t, db, "runner")

	_, err := regService.RegisterForEvent(context.Background(), uuid.New(), userID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterTeamForEvent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	regService, eventStore, teamService := newRegistrationFixture(db)
	ctx := context.Background()
	eventID := createTestEvent(t, db, 4)
	creatorID := createTestUser(t, db, "captain")

	team, err := teamService.CreateTeam(ctx, CreateTeamInput{
		Name:      "Blue Sharks",
		CreatorID: creatorID,
		Capacity:  8,
	})
	require.NoError(t, err)

	reg, err := regService.RegisterTeamForEvent(ctx, eventID, team.ID, 10, 50)
	require.NoError(t, err)
	assert.Equal(t, community.RegistrationPending, reg.Status)
	assert.Equal(t, community.PaymentPending, reg.PaymentStatus)
	assert.Equal(t, float64(10), reg.IndividualFee)
	assert.Equal(t, float64(50), reg.TeamFee)

	event, err := eventStore.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 3, event.AvailableSeats)

	again, err := regService.RegisterTeamForEvent(ctx, eventID, team.ID, 99, 99)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, again.ID)
	assert.Equal(t, float64(10), again.IndividualFee)
}

func TestRegisterTeamForEventSoldOut(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	regService, eventStore, teamService := newRegistrationFixture(db)
	ctx := context.Background()
	eventID := createTestEvent(t, db, 0)
	creatorID := createTestUser(t, db, "captain")

	team, err := teamService.CreateTeam(ctx, CreateTeamInput{
		Name:      "Blue Sharks",
		CreatorID: creatorID,
		Capacity:  8,
	})
	require.NoError(t, err)

	// Team registration still succeeds against a sold-out event; only the
	// seat decrement is skipped.
	reg, err := regService.RegisterTeamForEvent(ctx, eventID, team.ID, 10, 50)
	require.NoError(t, err)
	assert.Equal(t, community.RegistrationPending, reg.Status)

	event, err := eventStore.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 0, event.AvailableSeats)
}

func TestUpdateTeamRegistrationStatusSeatAccounting(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	regService, eventStore, teamService := newRegistrationFixture(db)
	ctx := context.Background()
	eventID := createTestEvent(t, db, 4)
	creatorID := createTestUser(t, db, "captain")

	team, err := teamService.CreateTeam(ctx, CreateTeamInput{
		Name:      "Blue Sharks",
		CreatorID: creatorID,
		Capacity:  8,
	})
	require.NoError(t, err)

	reg, err := regService.RegisterTeamForEvent(ctx, eventID, team.ID, 10, 50)
	require.NoError(t, err)

	event, err := eventStore.GetEvent(ctx, eventID)
	require.NoError(t, err)
	require.Equal(t, 3, event.AvailableSeats)

	// pending -> approved keeps the seat taken at registration time.
	updated, err := regService.UpdateTeamRegistrationStatus(ctx, reg.ID, community.RegistrationApproved)
	require.NoError(t, err)
	assert.Equal(t, community.RegistrationApproved, updated.Status)

	event, err = eventStore.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 3, event.AvailableSeats)

	// approved -> rejected frees the seat.
	_, err = regService.UpdateTeamRegistrationStatus(ctx, reg.ID, community.RegistrationRejected)
	require.NoError(t, err)

	event, err = eventStore.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 4, event.AvailableSeats)

	// rejected -> approved takes it back.
	_, err = regService.UpdateTeamRegistrationStatus(ctx, reg.ID, community.RegistrationApproved)
	require.NoError(t, err)

	event, err = eventStore.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 3, event.AvailableSeats)
}

func TestUpdateTeamRegistrationPaymentAndFees(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	regService, _, teamService := newRegistrationFixture(db)
	ctx := context.Background()
	eventID := createTestEvent(t, db, 4)
	creatorID := createTestUser(t, db, "captain")

	team, err := teamService.CreateTeam(ctx, CreateTeamInput{
		Name:      "Blue Sharks",
		CreatorID: creatorID,
		Capacity:  8,
	})
	require.NoError(t, err)

	reg, err := regService.RegisterTeamForEvent(ctx, eventID, team.ID, 10, 50)
	require.NoError(t, err)

	paid, err := regService.UpdateTeamRegistrationPayment(ctx, reg.ID, community.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, community.PaymentPaid, paid.PaymentStatus)

	// A partial fee update leaves the other fee alone.
	updated, err := regService.UpdateTeamRegistrationFees(ctx, reg.ID, utils.Ptr(12.5), nil)
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.IndividualFee)
	assert.Equal(t, float64(50), updated.TeamFee)
}

func TestDeleteTeamRegistration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	regService, eventStore, teamService := newRegistrationFixture(db)
	ctx := context.Background()
	eventID := createTestEvent(t, db, 4)
	creatorID := createTestUser(t, db, "captain")

	team, err := teamService.CreateTeam(ctx, CreateTeamInput{
		Name:      "Blue Sharks",
		CreatorID: creatorID,
		Capacity:  8,
	})
	require.NoError(t, err)

	reg, err := regService.RegisterTeamForEvent(ctx, eventID, team.ID, 10, 50)
	require.NoError(t, err)

	err = regService.DeleteTeamRegistration(ctx, reg.ID)
	require.NoError(t, err)

	event, err := eventStore.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 4, event.AvailableSeats)

	err = regService.DeleteTeamRegistration(ctx, reg.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRejectedTeamRegistrationKeepsSeats(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	regService, eventStore, teamService := newRegistrationFixture(db)
	ctx := context.Background()
	eventID := createTestEvent(t, db, 4)
	creatorID := createTestUser(t, db, "captain")

	team, err := teamService.CreateTeam(ctx, CreateTeamInput{
		Name:      "Blue Sharks",
		CreatorID: creatorID,
		Capacity:  8,
	})
	require.NoError(t, err)

	reg, err := regService.RegisterTeamForEvent(ctx, eventID, team.ID, 10, 50)
	require.NoError(t, err)

	// Rejection already freed the seat; deletion must not free another.
	_, err = regService.UpdateTeamRegistrationStatus(ctx, reg.ID, community.RegistrationRejected)
	require.NoError(t, err)

	err = regService.DeleteTeamRegistration(ctx, reg.ID)
	require.NoError(t, err)

	event, err := eventStore.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 4, event.AvailableSeats)
}

func TestCalculateTotal(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	regService, _, teamService := newRegistrationFixture(db)
	ctx := context.Background()
	eventID := createTestEvent(t, db, 10)
	creatorID := createTestUser(t, db, "captain")

	team, err := teamService.CreateTeam(ctx, CreateTeamInput{
		Name:      "Blue Sharks",
		CreatorID: creatorID,
		Capacity:  8,
	})
	require.NoError(t, err)

	for _, name := range []string{"p1", "p2", "p3"} {
		playerID := createTestUser(t, db, name)
		_, err = teamService.AddMember(ctx, team.ID, playerID, community.RolePlayer, nil)
		require.NoError(t, err)
	}

	reg, err := regService.RegisterTeamForEvent(ctx, eventID, team.ID, 10, 50)
	require.NoError(t, err)

	total, err := regService.CalculateTotal(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, total.MembersCount)
	assert.Equal(t, float64(50), total.TeamFee)
	assert.Equal(t, float64(10), total.IndividualFee)
	assert.Equal(t, float64(90), total.Total)
}
