// Package services implements the domain logic between the HTTP handlers and
// the database: games and results, the daily lifecycle, imports, users and
// the website builder.
package services

import (
	"encoding/json"

	"satta-board/internal/models"
	"satta-board/internal/store"

	"github.com/sirupsen/logrus"
)

// ResultEventsChannel is the pub/sub channel carrying result mutations. The
// public SSE endpoint relays it to connected clients.
const ResultEventsChannel = "results.events"

// publishResultEvent emits a realtime event for a game's current board state.
// Event delivery is best effort; a publish failure never fails the mutation.
func publishResultEvent(s store.Store, game *models.Game) {
	event := models.ResultEvent{
		GameID:      game.ID,
		GameCode:    game.Code,
		TodayResult: game.TodayResult,
		Status:      game.Status,
		UpdatedAt:   game.UpdatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Warn("Failed to marshal result event")
		return
	}
	if err := s.Publish(ResultEventsChannel, payload); err != nil {
		logrus.WithError(err).Warn("Failed to publish result event")
	}
}
