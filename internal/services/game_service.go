package services

import (
	"time"

	app_errors "satta-board/internal/errors"
	"satta-board/internal/models"
	"satta-board/internal/store"
	"satta-board/internal/types"
	"satta-board/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameService manages games and their published results.
type GameService struct {
	db       *gorm.DB
	store    store.Store
	location *time.Location
}

// NewGameService creates a GameService.
func NewGameService(db *gorm.DB, s store.Store, configManager types.ConfigManager) *GameService {
	return &GameService{
		db:       db,
		store:    s,
		location: resolveLocation(configManager),
	}
}

// resolveLocation loads the configured timezone. Config validation already
// rejected bad names, so a failure here only happens on env drift.
func resolveLocation(configManager types.ConfigManager) *time.Location {
	name := configManager.GetSchedulerConfig().Timezone
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Today returns the current calendar date in the board's timezone.
func (s *GameService) Today() time.Time {
	return utils.DateOnly(time.Now(), s.location)
}

// GameParams are the mutable game fields.
type GameParams struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	ScheduledTime string `json:"scheduled_time" binding:"required"`
	Enabled       *bool  `json:"enabled"`
}

// CreateGame creates a game with a normalized schedule time.
func (s *GameService) CreateGame(params GameParams) (*models.Game, error) {
	scheduled, err := utils.NormalizeScheduledTime(params.ScheduledTime)
	if err != nil {
		return nil, app_errors.NewValidationError(err.Error())
	}

	game := &models.Game{
		Name:          params.Name,
		Code:          params.Code,
		ScheduledTime: scheduled,
		Enabled:       true,
		Status:        models.StatusPending,
	}
	if params.Enabled != nil {
		game.Enabled = *params.Enabled
	}

	if err := s.db.Create(game).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return game, nil
}

// GetGame loads one game by ID.
func (s *GameService) GetGame(id uint) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, id).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return &game, nil
}

// ListGames returns all games ordered by their daily schedule.
func (s *GameService) ListGames(enabledOnly bool) ([]models.Game, error) {
	query := s.db.Order("scheduled_time asc, id asc")
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	var games []models.Game
	if err := query.Find(&games).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return games, nil
}

// UpdateGame updates a game's metadata.
func (s *GameService) UpdateGame(id uint, params GameParams) (*models.Game, error) {
	game, err := s.GetGame(id)
	if err != nil {
		return nil, err
	}

	scheduled, perr := utils.NormalizeScheduledTime(params.ScheduledTime)
	if perr != nil {
		return nil, app_errors.NewValidationError(perr.Error())
	}

	game.Name = params.Name
	game.Code = params.Code
	game.ScheduledTime = scheduled
	if params.Enabled != nil {
		game.Enabled = *params.Enabled
	}

	if err := s.db.Save(game).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return game, nil
}

// DeleteGame removes a game together with its history and assignments.
func (s *GameService) DeleteGame(id uint) error {
	game, err := s.GetGame(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", game.ID).Delete(&models.GameResultHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", game.ID).Delete(&models.GameAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(game).Error
	})
	if err != nil {
		return app_errors.ParseDBError(err)
	}
	return nil
}

// PublishResult publishes today's result for a game. mode records provenance:
// ModeManual marks the game status manual, anything else published. The
// history ledger is upserted in the same transaction; last write per day wins.
func (s *GameService) PublishResult(id uint, value int, mode, note string) (*models.Game, error) {
	if err := utils.ValidateResult(value); err != nil {
		return nil, app_errors.NewValidationError(err.Error())
	}

	game, err := s.GetGame(id)
	if err != nil {
		return nil, err
	}

	status := models.StatusPublished
	if mode == models.ModeManual {
		status = models.StatusManual
	} else {
		mode = models.ModeAuto
	}

	today := s.Today()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		game.TodayResult = &value
		game.Status = status
		if err := tx.Save(game).Error; err != nil {
			return err
		}
		return upsertHistory(tx, game.ID, today, value, mode, note)
	})
	if err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	publishResultEvent(s.store, game)
	return game, nil
}

// ClearResult clears today's result, returning the game to pending. The
// history row, if any, is kept; republishing the same day overwrites it.
func (s *GameService) ClearResult(id uint) (*models.Game, error) {
	game, err := s.GetGame(id)
	if err != nil {
		return nil, err
	}

	game.TodayResult = nil
	game.Status = models.StatusPending
	if err := s.db.Save(game).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	publishResultEvent(s.store, game)
	return game, nil
}

// History returns a game's result ledger, newest first.
func (s *GameService) History(gameID uint, limit int) ([]models.GameResultHistory, error) {
	if _, err := s.GetGame(gameID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 365 {
		limit = 90
	}
	var rows []models.GameResultHistory
	err := s.db.Where("game_id = ?", gameID).
		Order("result_date desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return rows, nil
}

// upsertHistory writes one ledger row keyed on (game_id, result_date).
func upsertHistory(tx *gorm.DB, gameID uint, date time.Time, result int, mode, note string) error {
	row := models.GameResultHistory{
		GameID:      gameID,
		ResultDate:  date,
		Result:      result,
		Mode:        mode,
		Note:        note,
		PublishedAt: time.Now(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "result_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"result", "mode", "note", "published_at"}),
	}).Create(&row).Error
}

// DashboardStats aggregates the admin dashboard cards.
func (s *GameService) DashboardStats() (*models.DashboardStatsResponse, error) {
	var totalGames, enabledGames, published, pending, activeUsers, totalUsers int64

	if err := s.db.Model(&models.Game{}).Count(&totalGames).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	if err := s.db.Model(&models.Game{}).Where("enabled = ?", true).Count(&enabledGames).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	if err := s.db.Model(&models.Game{}).
		Where("enabled = ? AND status IN ?", true, []string{models.StatusPublished, models.StatusManual}).
		Count(&published).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	if err := s.db.Model(&models.Game{}).
		Where("enabled = ? AND status = ?", true, models.StatusPending).
		Count(&pending).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	if err := s.db.Model(&models.Profile{}).Count(&totalUsers).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	if err := s.db.Model(&models.Profile{}).Where("is_active = ?", true).Count(&activeUsers).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	return &models.DashboardStatsResponse{
		Games:          models.StatCard{Value: totalGames, SubValue: enabledGames, Label: "Games"},
		PublishedToday: models.StatCard{Value: published, Label: "Published today"},
		PendingToday:   models.StatCard{Value: pending, Label: "Pending today"},
		ActiveUsers:    models.StatCard{Value: activeUsers, SubValue: totalUsers, Label: "Active users"},
	}, nil
}
