package services

import (
	"encoding/json"
	"errors"

	app_errors "satta-board/internal/errors"
	"satta-board/internal/models"
	"satta-board/internal/store"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LifecycleService runs the daily rollover and its undo. A rollover first
// snapshots every game's mutable result fields into migration_backups, then
// migrates each game in its own transaction. Cross-game atomicity is not a
// goal; a partial failure leaves the snapshot available for undo.
type LifecycleService struct {
	db    *gorm.DB
	store store.Store
}

// NewLifecycleService creates a LifecycleService.
func NewLifecycleService(db *gorm.DB, s store.Store) *LifecycleService {
	return &LifecycleService{db: db, store: s}
}

// MigrationReport summarizes a rollover run.
type MigrationReport struct {
	BackupID uint `json:"backup_id"`
	Games    int  `json:"games"`
	Migrated int  `json:"migrated"`
	Failed   int  `json:"failed"`
}

// RunDailyMigration snapshots all games and rolls them over: a set
// today_result moves to yesterday_result, then today_result clears and the
// status returns to pending. Games still pending keep their previous
// yesterday_result.
func (s *LifecycleService) RunDailyMigration() (*MigrationReport, error) {
	var games []models.Game
	if err := s.db.Find(&games).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	snapshots := make([]models.GameSnapshot, 0, len(games))
	for _, game := range games {
		snapshots = append(snapshots, models.GameSnapshot{
			GameID:          game.ID,
			TodayResult:     game.TodayResult,
			YesterdayResult: game.YesterdayResult,
			Status:          game.Status,
		})
	}

	payload, err := json.Marshal(snapshots)
	if err != nil {
		return nil, app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to encode migration snapshot")
	}
	backup := models.MigrationBackup{Snapshot: payload}
	if err := s.db.Create(&backup).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	report := &MigrationReport{BackupID: backup.ID, Games: len(games)}
	for i := range games {
		game := &games[i]
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if game.TodayResult != nil {
				game.YesterdayResult = game.TodayResult
			}
			game.TodayResult = nil
			game.Status = models.StatusPending
			return tx.Save(game).Error
		})
		if err != nil {
			report.Failed++
			logrus.WithError(err).WithField("game_id", game.ID).Error("Daily migration failed for game")
			continue
		}
		report.Migrated++
		publishResultEvent(s.store, game)
	}

	logrus.WithFields(logrus.Fields{
		"backup_id": report.BackupID,
		"migrated":  report.Migrated,
		"failed":    report.Failed,
	}).Info("Daily migration completed")
	return report, nil
}

// UndoMigration restores the games recorded in a backup, verbatim, and marks
// the backup restored. A backup restores exactly once: the restored flag is
// claimed with a guarded update before any game row changes.
func (s *LifecycleService) UndoMigration(backupID uint) (*MigrationReport, error) {
	var backup models.MigrationBackup
	if err := s.db.First(&backup, backupID).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	if backup.Restored {
		return nil, app_errors.ErrAlreadyRestored
	}

	var snapshots []models.GameSnapshot
	if err := json.Unmarshal(backup.Snapshot, &snapshots); err != nil {
		return nil, app_errors.NewAPIError(app_errors.ErrInternalServer, "corrupt migration snapshot")
	}

	report := &MigrationReport{BackupID: backup.ID, Games: len(snapshots)}
	var restored []models.Game
	err := s.db.Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.MigrationBackup{}).
			Where("id = ? AND restored = ?", backup.ID, false).
			Update("restored", true)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return app_errors.ErrAlreadyRestored
		}

		for _, snap := range snapshots {
			var game models.Game
			if err := tx.First(&game, snap.GameID).Error; err != nil {
				// A game deleted after the snapshot cannot be restored
				if errors.Is(err, gorm.ErrRecordNotFound) {
					report.Failed++
					continue
				}
				return err
			}
			game.TodayResult = snap.TodayResult
			game.YesterdayResult = snap.YesterdayResult
			game.Status = snap.Status
			if err := tx.Save(&game).Error; err != nil {
				return err
			}
			restored = append(restored, game)
			report.Migrated++
		}
		return nil
	})
	if err != nil {
		if apiErr, ok := err.(*app_errors.APIError); ok {
			return nil, apiErr
		}
		return nil, app_errors.ParseDBError(err)
	}

	for i := range restored {
		publishResultEvent(s.store, &restored[i])
	}

	logrus.WithFields(logrus.Fields{
		"backup_id": report.BackupID,
		"restored":  report.Migrated,
	}).Info("Migration restored")
	return report, nil
}

// UndoLatest restores the most recent unrestored backup.
func (s *LifecycleService) UndoLatest() (*MigrationReport, error) {
	var backup models.MigrationBackup
	err := s.db.Where("restored = ?", false).Order("id desc").First(&backup).Error
	if err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return s.UndoMigration(backup.ID)
}

// ListBackups returns recent backups, newest first.
func (s *LifecycleService) ListBackups(limit int) ([]models.MigrationBackup, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var backups []models.MigrationBackup
	if err := s.db.Order("id desc").Limit(limit).Find(&backups).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return backups, nil
}
