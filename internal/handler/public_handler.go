package handler

import (
	"io"
	"strconv"
	"time"

	"satta-board/internal/response"
	"satta-board/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PublicBoard returns the enabled games with their current results.
// GET /api/public/board
func (s *Server) PublicBoard(c *gin.Context) {
	games, err := s.Games.ListGames(true)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, gin.H{
		"date":  s.Games.Today().Format("2006-01-02"),
		"games": games,
	})
}

// PublicGameHistory returns a game's result ledger.
// GET /api/public/games/:id/history
func (s *Server) PublicGameHistory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "90"))
	rows, err := s.Games.History(id, limit)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, rows)
}

// PublicSiteConfig returns the merged website configuration.
// GET /api/public/site
func (s *Server) PublicSiteConfig(c *gin.Context) {
	config, err := s.Website.PublicConfig()
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, config)
}

// Microsite serves a user's public page: their profile header and assigned
// games. Inactive accounts resolve to 404.
// GET /api/public/u/:username
func (s *Server) Microsite(c *gin.Context) {
	profile, err := s.Users.GetByPublicUsername(c.Param("username"))
	if HandleServiceError(c, err) {
		return
	}
	games, err := s.Assignments.ListForUser(profile.UserID)
	if HandleServiceError(c, err) {
		return
	}

	response.Success(c, gin.H{
		"username":   profile.PublicUsername,
		"first_name": profile.FirstName,
		"last_name":  profile.LastName,
		"games":      games,
	})
}

// ResultEvents relays the result event channel to the client as
// server-sent events. The stream ends when the client disconnects.
// GET /api/public/events
func (s *Server) ResultEvents(c *gin.Context) {
	sub, err := s.Store.Subscribe(services.ResultEventsChannel)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	defer func() {
		if err := sub.Close(); err != nil {
			logrus.WithError(err).Debug("Failed to close event subscription")
		}
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, open := <-sub.Messages():
			if !open {
				return false
			}
			c.SSEvent("result", string(msg.Payload))
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-ctx.Done():
			return false
		}
	})
}
