package services

import (
	app_errors "satta-board/internal/errors"
	"satta-board/internal/models"

	"gorm.io/gorm"
)

// AssignmentService links users to the games shown on their public pages.
type AssignmentService struct {
	db *gorm.DB
}

// NewAssignmentService creates an AssignmentService.
func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db}
}

// Assign links a game to a user. Duplicate links surface as conflicts.
func (s *AssignmentService) Assign(userID string, gameID uint) (*models.GameAssignment, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	assignment := &models.GameAssignment{UserID: userID, GameID: gameID}
	if err := s.db.Create(assignment).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return assignment, nil
}

// Unassign removes a user-game link.
func (s *AssignmentService) Unassign(userID string, gameID uint) error {
	result := s.db.Where("user_id = ? AND game_id = ?", userID, gameID).Delete(&models.GameAssignment{})
	if result.Error != nil {
		return app_errors.ParseDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return app_errors.ErrResourceNotFound
	}
	return nil
}

// ListForUser returns the games assigned to a user, ordered by schedule.
func (s *AssignmentService) ListForUser(userID string) ([]models.Game, error) {
	var games []models.Game
	err := s.db.
		Joins("JOIN game_assignments ON game_assignments.game_id = games.id").
		Where("game_assignments.user_id = ?", userID).
		Order("games.scheduled_time asc").
		Find(&games).Error
	if err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return games, nil
}

// ListAll returns every assignment row.
func (s *AssignmentService) ListAll() ([]models.GameAssignment, error) {
	var assignments []models.GameAssignment
	if err := s.db.Order("user_id, game_id").Find(&assignments).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return assignments, nil
}
