package services

import (
	"testing"
	"time"

	"satta-board/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBulkUpload(t *testing.T) (*BulkUploadService, *GameService) {
	t.Helper()
	games, db, s := newTestGameService(t)
	return NewBulkUploadService(db, s, games), games
}

func TestBulkUploadMatchesNameAndCode(t *testing.T) {
	bulk, games := newTestBulkUpload(t)
	createGame(t, games, "Desawar", "DSWR", "14:30")
	today := games.Today().Format("02/01/2006")

	report, err := bulk.Process([]BulkUploadRow{
		{Game: "desawar", Date: today, Result: 45},
		{Game: "  DSWR  ", Date: today, Result: 46},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Applied)
	assert.Empty(t, report.Errors)
}

func TestBulkUploadReportsRowErrorsWithoutAborting(t *testing.T) {
	bulk, games := newTestBulkUpload(t)
	createGame(t, games, "Desawar", "DSWR", "14:30")
	today := games.Today().Format("02/01/2006")

	report, err := bulk.Process([]BulkUploadRow{
		{Game: "Desawar", Date: today, Result: 45},
		{Game: "Unknown Game", Date: today, Result: 10},
		{Game: "Desawar", Date: "bad-date", Result: 10},
		{Game: "Desawar", Date: today, Result: 150},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 1, report.Applied)
	require.Len(t, report.Errors, 3)
	assert.Equal(t, 2, report.Errors[0].Row)
	assert.Contains(t, report.Errors[0].Message, "no game matches")
	assert.Equal(t, 3, report.Errors[1].Row)
	assert.Equal(t, 4, report.Errors[2].Row)
}

func TestBulkUploadMirrorsTodayOnly(t *testing.T) {
	bulk, games := newTestBulkUpload(t)
	game := createGame(t, games, "Desawar", "DSWR", "14:30")
	today := games.Today()
	yesterday := today.AddDate(0, 0, -1)

	report, err := bulk.Process([]BulkUploadRow{
		{Game: "Desawar", Date: yesterday.Format("02/01/2006"), Result: 11},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Applied)

	// A backdated row lands in history but leaves the live board alone.
	after, err := games.GetGame(game.ID)
	require.NoError(t, err)
	assert.Nil(t, after.TodayResult)
	assert.Equal(t, models.StatusPending, after.Status)

	report, err = bulk.Process([]BulkUploadRow{
		{Game: "Desawar", Date: today.Format("02/01/2006"), Result: 22},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Applied)

	after, err = games.GetGame(game.ID)
	require.NoError(t, err)
	require.NotNil(t, after.TodayResult)
	assert.Equal(t, 22, *after.TodayResult)
	assert.Equal(t, models.StatusPublished, after.Status)
}

func TestBulkUploadWritesHistoryPerDate(t *testing.T) {
	bulk, games := newTestBulkUpload(t)
	game := createGame(t, games, "Desawar", "DSWR", "14:30")
	base := games.Today().AddDate(0, 0, -5)

	rows := make([]BulkUploadRow, 0, 3)
	for i := 0; i < 3; i++ {
		rows = append(rows, BulkUploadRow{
			Game:   "DSWR",
			Date:   base.AddDate(0, 0, i).Format("02/01/2006"),
			Result: 10 + i,
		})
	}
	report, err := bulk.Process(rows)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Applied)

	history, err := games.History(game.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for _, row := range history {
		assert.Equal(t, models.ModeAuto, row.Mode)
	}
}

func TestBulkUploadEmptyBatch(t *testing.T) {
	bulk, _ := newTestBulkUpload(t)

	report, err := bulk.Process(nil)
	require.NoError(t, err)
	assert.Zero(t, report.Total)
	assert.Zero(t, report.Applied)
	assert.Empty(t, report.Errors)
}

func TestBulkUploadLeapDay(t *testing.T) {
	bulk, games := newTestBulkUpload(t)
	game := createGame(t, games, "Desawar", "DSWR", "14:30")

	report, err := bulk.Process([]BulkUploadRow{
		{Game: "Desawar", Date: "29/02/2024", Result: 7},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Applied)

	history, err := games.History(game.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, time.February, history[0].ResultDate.Month())
	assert.Equal(t, 29, history[0].ResultDate.Day())
}
