package services

import (
	"fmt"
	"strings"
	"time"

	app_errors "satta-board/internal/errors"
	"satta-board/internal/models"
	"satta-board/internal/store"
	"satta-board/internal/utils"

	"gorm.io/gorm"
)

// BulkUploadService applies batches of dated results. Rows are matched to
// games case-insensitively on name or code. The batch never aborts: invalid
// and unmatched rows are reported per row while the rest are applied.
type BulkUploadService struct {
	db    *gorm.DB
	store store.Store
	games *GameService
}

// NewBulkUploadService creates a BulkUploadService.
func NewBulkUploadService(db *gorm.DB, s store.Store, games *GameService) *BulkUploadService {
	return &BulkUploadService{db: db, store: s, games: games}
}

// BulkUploadRow is one uploaded result row.
type BulkUploadRow struct {
	Game   string `json:"game" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Result int    `json:"result"`
	Note   string `json:"note"`
}

// RowError reports why one row was rejected. Row is 1-based.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// BulkUploadReport summarizes a processed batch.
type BulkUploadReport struct {
	Total   int        `json:"total"`
	Applied int        `json:"applied"`
	Errors  []RowError `json:"errors"`
}

// gameMatcher indexes games by lowercased name and code.
type gameMatcher map[string]*models.Game

// buildMatcher loads every game into a case-insensitive lookup table.
func (s *BulkUploadService) buildMatcher() (gameMatcher, error) {
	var games []models.Game
	if err := s.db.Find(&games).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	matcher := make(gameMatcher, len(games)*2)
	for i := range games {
		game := &games[i]
		matcher[strings.ToLower(strings.TrimSpace(game.Name))] = game
		matcher[strings.ToLower(strings.TrimSpace(game.Code))] = game
	}
	return matcher, nil
}

// match resolves a row's game reference against name or code.
func (m gameMatcher) match(ref string) *models.Game {
	return m[strings.ToLower(strings.TrimSpace(ref))]
}

// Process applies a batch of rows and reports per-row errors.
func (s *BulkUploadService) Process(rows []BulkUploadRow) (*BulkUploadReport, error) {
	matcher, err := s.buildMatcher()
	if err != nil {
		return nil, err
	}

	today := s.games.Today()
	report := &BulkUploadReport{Total: len(rows)}

	for i, row := range rows {
		if err := s.applyRow(matcher, row, today); err != nil {
			report.Errors = append(report.Errors, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		report.Applied++
	}
	return report, nil
}

// applyRow validates and applies one row. History is always upserted; the
// game's board fields only mirror the row when it is for today.
func (s *BulkUploadService) applyRow(matcher gameMatcher, row BulkUploadRow, today time.Time) error {
	if err := utils.ValidateResult(row.Result); err != nil {
		return err
	}
	date, err := utils.ParseResultDate(row.Date)
	if err != nil {
		return err
	}
	game := matcher.match(row.Game)
	if game == nil {
		return fmt.Errorf("no game matches %q", row.Game)
	}

	isToday := date.Format("2006-01-02") == today.Format("2006-01-02")

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertHistory(tx, game.ID, date, row.Result, models.ModeAuto, row.Note); err != nil {
			return err
		}
		if isToday {
			result := row.Result
			game.TodayResult = &result
			game.Status = models.StatusPublished
			return tx.Save(game).Error
		}
		return nil
	})
	if err != nil {
		return app_errors.ParseDBError(err)
	}

	if isToday {
		publishResultEvent(s.store, game)
	}
	return nil
}
