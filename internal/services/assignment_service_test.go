package services

import (
	"testing"

	app_errors "satta-board/internal/errors"
	"satta-board/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssignmentService(t *testing.T) (*AssignmentService, *GameService, *UserService) {
	t.Helper()
	db := newTestDB(t)
	s := store.NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })
	cfg := newStubConfig()
	return NewAssignmentService(db), NewGameService(db, s, cfg), NewUserService(db, s, cfg)
}

func TestAssignAndListUserGames(t *testing.T) {
	assignments, games, users := newTestAssignmentService(t)
	profile, err := users.CreateUser(CreateUserParams{Email: "a@b.c", Password: "longenough"}, nil)
	require.NoError(t, err)
	early := createGame(t, games, "Early", "ER", "09:00")
	late := createGame(t, games, "Late", "LT", "21:00")

	_, err = assignments.Assign(profile.UserID, late.ID)
	require.NoError(t, err)
	_, err = assignments.Assign(profile.UserID, early.ID)
	require.NoError(t, err)

	list, err := assignments.ListForUser(profile.UserID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, early.ID, list[0].ID)
}

func TestAssignRejectsDuplicates(t *testing.T) {
	assignments, games, users := newTestAssignmentService(t)
	profile, err := users.CreateUser(CreateUserParams{Email: "a@b.c", Password: "longenough"}, nil)
	require.NoError(t, err)
	game := createGame(t, games, "Desawar", "DSWR", "14:30")

	_, err = assignments.Assign(profile.UserID, game.ID)
	require.NoError(t, err)
	_, err = assignments.Assign(profile.UserID, game.ID)
	require.Error(t, err)
}

func TestAssignUnknownReferences(t *testing.T) {
	assignments, games, users := newTestAssignmentService(t)
	profile, err := users.CreateUser(CreateUserParams{Email: "a@b.c", Password: "longenough"}, nil)
	require.NoError(t, err)
	game := createGame(t, games, "Desawar", "DSWR", "14:30")

	_, err = assignments.Assign("no-such-user", game.ID)
	require.Error(t, err)
	_, err = assignments.Assign(profile.UserID, 9999)
	require.Error(t, err)
}

func TestUnassign(t *testing.T) {
	assignments, games, users := newTestAssignmentService(t)
	profile, err := users.CreateUser(CreateUserParams{Email: "a@b.c", Password: "longenough"}, nil)
	require.NoError(t, err)
	game := createGame(t, games, "Desawar", "DSWR", "14:30")

	_, err = assignments.Assign(profile.UserID, game.ID)
	require.NoError(t, err)
	require.NoError(t, assignments.Unassign(profile.UserID, game.ID))

	err = assignments.Unassign(profile.UserID, game.ID)
	require.ErrorIs(t, err, app_errors.ErrResourceNotFound)

	list, err := assignments.ListForUser(profile.UserID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
