package handler

import (
	app_errors "satta-board/internal/errors"
	"satta-board/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandleServiceError handles service errors uniformly across all handlers.
// Returns true if an error was handled (response already sent to client).
func HandleServiceError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if apiErr, ok := err.(*app_errors.APIError); ok {
		response.Error(c, apiErr)
		return true
	}

	if dbErr := app_errors.ParseDBError(err); dbErr != nil {
		response.Error(c, dbErr)
		return true
	}

	logrus.WithContext(c.Request.Context()).WithError(err).Error("unexpected service error")
	response.Error(c, app_errors.ErrInternalServer)
	return true
}
