package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	enginetasks "github.com/ndiayefarms/broodplan/internal/engine/tasks"
	"github.com/ndiayefarms/broodplan/internal/repository"
	"github.com/ndiayefarms/broodplan/internal/service/planning"
)

// farmerIDHeader carries the authenticated farmer identity. Session issuance
// itself lives upstream of this service.
const farmerIDHeader = "X-Farmer-ID"

// actorID extracts the caller identity or aborts with 401.
func actorID(c *gin.Context) (string, bool) {
	id := c.GetHeader(farmerIDHeader)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing " + farmerIDHeader + " header"})
		return "", false
	}
	return id, true
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, planning.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrAlreadyGenerated):
		c.JSON(http.StatusConflict, gin.H{"error": "tasks already generated for this plan"})
	case errors.Is(err, repository.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": "task already completed"})
	case errors.Is(err, enginetasks.ErrNoTemplatesFound):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no task templates configured for this cycle"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
