package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ndiayefarms/broodplan/internal/domain/models"
	"github.com/ndiayefarms/broodplan/internal/service/planning"
)

// PlanningHandler adapts the planning service to HTTP.
type PlanningHandler struct {
	svc    *planning.Service
	logger *zap.Logger
}

// NewPlanningHandler constructs the HTTP handler adapter.
func NewPlanningHandler(svc *planning.Service, logger *zap.Logger) *PlanningHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningHandler{svc: svc, logger: logger}
}

type planningRequest struct {
	Budget          int64   `json:"budget"`
	SpaceM2         float64 `json:"space_m2"`
	ExperienceLevel string  `json:"experience_level"`
	DurationDays    int     `json:"duration_days"`
	StartDate       string  `json:"start_date"`
}

func (r planningRequest) input() models.PlanningInput {
	return models.PlanningInput{
		Budget:          r.Budget,
		SpaceM2:         r.SpaceM2,
		ExperienceLevel: models.ExperienceLevel(r.ExperienceLevel),
		DurationDays:    r.DurationDays,
	}
}

// Calculate runs the calculator without persisting a plan.
func (h *PlanningHandler) Calculate(c *gin.Context) {
	var req planningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid calculate payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	outcome, err := h.svc.Calculate(req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// Create computes a recommendation and persists the resulting farm plan. An
// insufficient-resources outcome comes back as 200 with success=false and no
// persisted plan.
func (h *PlanningHandler) Create(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req planningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid plan payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		startDate = parsed
	}

	plan, outcome, err := h.svc.CreatePlan(c.Request.Context(), actor, req.input(), startDate)
	if err != nil {
		respondError(c, err)
		return
	}
	if !outcome.Success {
		c.JSON(http.StatusOK, outcome)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"plan": plan, "outcome": outcome})
}

// Get returns one of the caller's plans.
func (h *PlanningHandler) Get(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	plan, err := h.svc.GetPlan(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// List returns the caller's plans.
func (h *PlanningHandler) List(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	plans, err := h.svc.ListPlans(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// Delete removes a plan and cascades to its tasks.
func (h *PlanningHandler) Delete(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	if err := h.svc.DeletePlan(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
