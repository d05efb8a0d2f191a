package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileImport(t *testing.T) (*FileImportService, *GameService) {
	t.Helper()
	games, db, s := newTestGameService(t)
	bulk := NewBulkUploadService(db, s, games)
	return NewFileImportService(db, bulk), games
}

func TestFileImportApplies(t *testing.T) {
	imports, games := newTestFileImport(t)
	game := createGame(t, games, "Desawar", "DSWR", "14:30")
	today := games.Today().Format("02/01/2006")

	sheet := "date,game_name,result\n" +
		today + ",Desawar,45\n" +
		"01/01/2026,desawar,12\n"
	report, err := imports.Import(strings.NewReader(sheet))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Applied)

	after, err := games.GetGame(game.ID)
	require.NoError(t, err)
	require.NotNil(t, after.TodayResult)
	assert.Equal(t, 45, *after.TodayResult)

	history, err := games.History(game.ID, 10)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestFileImportRejectsBadHeader(t *testing.T) {
	imports, games := newTestFileImport(t)
	createGame(t, games, "Desawar", "DSWR", "14:30")

	_, err := imports.Import(strings.NewReader("game,when,value\nDesawar,01/01/2026,45\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestFileImportAcceptsHeaderCaseInsensitively(t *testing.T) {
	imports, games := newTestFileImport(t)
	createGame(t, games, "Desawar", "DSWR", "14:30")

	_, err := imports.Import(strings.NewReader("Date, Game_Name, Result\n01/01/2026,Desawar,45\n"))
	require.NoError(t, err)
}

func TestFileImportAbortsOnUnknownGame(t *testing.T) {
	imports, games := newTestFileImport(t)
	game := createGame(t, games, "Desawar", "DSWR", "14:30")

	// One unknown game rejects the whole sheet, valid rows included.
	sheet := "date,game_name,result\n" +
		"01/01/2026,Desawar,45\n" +
		"01/01/2026,Nope,12\n"
	_, err := imports.Import(strings.NewReader(sheet))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "Nope")

	history, err := games.History(game.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestFileImportAbortsOnBadRow(t *testing.T) {
	imports, games := newTestFileImport(t)
	createGame(t, games, "Desawar", "DSWR", "14:30")

	for _, tc := range []struct {
		name  string
		sheet string
	}{
		{"bad date", "date,game_name,result\n30/02/2026,Desawar,45\n"},
		{"bad result", "date,game_name,result\n01/01/2026,Desawar,abc\n"},
		{"out of range", "date,game_name,result\n01/01/2026,Desawar,100\n"},
		{"empty name", "date,game_name,result\n01/01/2026,,45\n"},
		{"missing column", "date,game_name,result\n\"01/01/2026,Desawar\"\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := imports.Import(strings.NewReader(tc.sheet))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "row 2")
		})
	}
}

func TestFileImportEmptySheet(t *testing.T) {
	imports, _ := newTestFileImport(t)

	_, err := imports.Import(strings.NewReader(""))
	require.Error(t, err)

	_, err = imports.Import(strings.NewReader("date,game_name,result\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}

func TestTemplateListsEnabledGames(t *testing.T) {
	imports, games := newTestFileImport(t)
	createGame(t, games, "Desawar", "DSWR", "14:30")
	disabled := createGame(t, games, "Off", "OFF", "12:00")
	off := false
	_, err := games.UpdateGame(disabled.ID, GameParams{Name: "Off", Code: "OFF", ScheduledTime: "12:00", Enabled: &off})
	require.NoError(t, err)

	body, err := imports.Template()
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.HasPrefix(text, "date,game_name,result\n"))
	assert.Contains(t, text, "Desawar")
	assert.NotContains(t, text, "Off")
}

func TestTemplateWithoutGames(t *testing.T) {
	imports, _ := newTestFileImport(t)

	body, err := imports.Template()
	require.NoError(t, err)
	assert.Contains(t, string(body), "Example Game")
}
