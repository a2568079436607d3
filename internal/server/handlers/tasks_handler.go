package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ndiayefarms/broodplan/internal/service/tasks"
)

// TasksHandler adapts the task service to HTTP.
type TasksHandler struct {
	svc    *tasks.Service
	logger *zap.Logger
}

// NewTasksHandler constructs the HTTP handler adapter.
func NewTasksHandler(svc *tasks.Service, logger *zap.Logger) *TasksHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TasksHandler{svc: svc, logger: logger}
}

// Generate expands the template catalog into the plan's task calendar.
func (h *TasksHandler) Generate(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	generated, err := h.svc.Generate(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tasks": generated, "count": len(generated)})
}

// ByDay returns the plan's tasks grouped by cycle day.
func (h *TasksHandler) ByDay(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	calendar, err := h.svc.TasksByDay(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, calendar)
}

// Today returns the tasks scheduled for today, critical first.
func (h *TasksHandler) Today(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	list, err := h.svc.TodaysTasks(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": list})
}

// Upcoming returns the pending tasks of the next seven days.
func (h *TasksHandler) Upcoming(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	list, err := h.svc.UpcomingTasks(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": list})
}

// Stats returns the plan's task progress statistics.
func (h *TasksHandler) Stats(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	stats, err := h.svc.Statistics(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

type completeRequest struct {
	Notes    string `json:"notes"`
	PhotoRef string `json:"photo_ref"`
}

// Complete records the task's completion event.
func (h *TasksHandler) Complete(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.logger.Warn("invalid complete payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := h.svc.Complete(c.Request.Context(), c.Param("id"), actor, req.Notes, req.PhotoRef)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

type notesRequest struct {
	Notes string `json:"notes" binding:"required"`
}

// Annotate overwrites the task's notes.
func (h *TasksHandler) Annotate(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "notes is required"})
		return
	}

	task, err := h.svc.Annotate(c.Request.Context(), c.Param("id"), actor, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

type photoRequest struct {
	PhotoRef string `json:"photo_ref" binding:"required"`
}

// AttachPhoto overwrites the task's photo reference.
func (h *TasksHandler) AttachPhoto(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo_ref is required"})
		return
	}

	task, err := h.svc.AttachPhoto(c.Request.Context(), c.Param("id"), actor, req.PhotoRef)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}
