package services

import (
	"testing"

	app_errors "satta-board/internal/errors"
	"satta-board/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createGame(t *testing.T, svc *GameService, name, code, at string) *models.Game {
	t.Helper()
	game, err := svc.CreateGame(GameParams{Name: name, Code: code, ScheduledTime: at})
	require.NoError(t, err)
	return game
}

func TestCreateGameNormalizesSchedule(t *testing.T) {
	svc, _, _ := newTestGameService(t)

	game := createGame(t, svc, "Desawar", "DSWR", "2:30 PM")
	assert.Equal(t, "14:30", game.ScheduledTime)
	assert.True(t, game.Enabled)
	assert.Equal(t, models.StatusPending, game.Status)
	assert.Nil(t, game.TodayResult)
}

func TestCreateGameRejectsBadSchedule(t *testing.T) {
	svc, _, _ := newTestGameService(t)

	_, err := svc.CreateGame(GameParams{Name: "X", Code: "X", ScheduledTime: "25:99"})
	require.Error(t, err)
	apiErr, ok := err.(*app_errors.APIError)
	require.True(t, ok)
	assert.Equal(t, app_errors.ErrValidation.Code, apiErr.Code)
}

func TestCreateGameRejectsDuplicateCode(t *testing.T) {
	svc, _, _ := newTestGameService(t)

	createGame(t, svc, "Desawar", "DSWR", "14:30")
	_, err := svc.CreateGame(GameParams{Name: "Other", Code: "DSWR", ScheduledTime: "15:00"})
	require.Error(t, err)
}

func TestPublishResultManual(t *testing.T) {
	svc, db, _ := newTestGameService(t)
	game := createGame(t, svc, "Desawar", "DSWR", "14:30")

	updated, err := svc.PublishResult(game.ID, 45, models.ModeManual, "phone entry")
	require.NoError(t, err)
	require.NotNil(t, updated.TodayResult)
	assert.Equal(t, 45, *updated.TodayResult)
	assert.Equal(t, models.StatusManual, updated.Status)

	var history []models.GameResultHistory
	require.NoError(t, db.Where("game_id = ?", game.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, 45, history[0].Result)
	assert.Equal(t, models.ModeManual, history[0].Mode)
	assert.Equal(t, "phone entry", history[0].Note)
}

func TestPublishResultAutoStatus(t *testing.T) {
	svc, _, _ := newTestGameService(t)
	game := createGame(t, svc, "Desawar", "DSWR", "14:30")

	updated, err := svc.PublishResult(game.ID, 7, models.ModeAuto, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, updated.Status)
}

func TestPublishResultSameDayOverwrites(t *testing.T) {
	svc, db, _ := newTestGameService(t)
	game := createGame(t, svc, "Desawar", "DSWR", "14:30")

	_, err := svc.PublishResult(game.ID, 12, models.ModeManual, "")
	require.NoError(t, err)
	_, err = svc.PublishResult(game.ID, 88, models.ModeManual, "correction")
	require.NoError(t, err)

	var history []models.GameResultHistory
	require.NoError(t, db.Where("game_id = ?", game.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, 88, history[0].Result)
	assert.Equal(t, "correction", history[0].Note)
}

func TestPublishResultRejectsOutOfRange(t *testing.T) {
	svc, _, _ := newTestGameService(t)
	game := createGame(t, svc, "Desawar", "DSWR", "14:30")

	for _, value := range []int{-1, 100, 1000} {
		_, err := svc.PublishResult(game.ID, value, models.ModeManual, "")
		require.Error(t, err, "value %d must be rejected", value)
	}
}

func TestClearResultKeepsHistory(t *testing.T) {
	svc, db, _ := newTestGameService(t)
	game := createGame(t, svc, "Desawar", "DSWR", "14:30")

	_, err := svc.PublishResult(game.ID, 33, models.ModeManual, "")
	require.NoError(t, err)

	cleared, err := svc.ClearResult(game.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.TodayResult)
	assert.Equal(t, models.StatusPending, cleared.Status)

	var count int64
	require.NoError(t, db.Model(&models.GameResultHistory{}).Where("game_id = ?", game.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestListGamesOrderAndFilter(t *testing.T) {
	svc, _, _ := newTestGameService(t)
	createGame(t, svc, "Late", "LT", "21:00")
	early := createGame(t, svc, "Early", "ER", "09:00")
	disabled := createGame(t, svc, "Off", "OFF", "12:00")
	off := false
	_, err := svc.UpdateGame(disabled.ID, GameParams{Name: "Off", Code: "OFF", ScheduledTime: "12:00", Enabled: &off})
	require.NoError(t, err)

	all, err := svc.ListGames(false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, early.ID, all[0].ID)

	enabled, err := svc.ListGames(true)
	require.NoError(t, err)
	require.Len(t, enabled, 2)
	for _, g := range enabled {
		assert.True(t, g.Enabled)
	}
}

func TestDeleteGameCascades(t *testing.T) {
	svc, db, _ := newTestGameService(t)
	game := createGame(t, svc, "Desawar", "DSWR", "14:30")
	_, err := svc.PublishResult(game.ID, 5, models.ModeManual, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGame(game.ID))

	var count int64
	require.NoError(t, db.Model(&models.GameResultHistory{}).Where("game_id = ?", game.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = svc.GetGame(game.ID)
	require.Error(t, err)
}

func TestGetGameNotFound(t *testing.T) {
	svc, _, _ := newTestGameService(t)

	_, err := svc.GetGame(9999)
	require.Error(t, err)
	apiErr, ok := err.(*app_errors.APIError)
	require.True(t, ok)
	assert.Equal(t, app_errors.ErrResourceNotFound.Code, apiErr.Code)
}

func TestDashboardStats(t *testing.T) {
	svc, _, _ := newTestGameService(t)
	a := createGame(t, svc, "A", "A", "10:00")
	createGame(t, svc, "B", "B", "11:00")
	_, err := svc.PublishResult(a.ID, 45, models.ModeManual, "")
	require.NoError(t, err)

	stats, err := svc.DashboardStats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Games.Value)
	assert.EqualValues(t, 1, stats.PublishedToday.Value)
	assert.EqualValues(t, 1, stats.PendingToday.Value)
}
