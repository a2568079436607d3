// Package planning is the validation boundary in front of the calculator and
// the owner of farm plan records.
package planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/google/uuid"

	"github.com/ndiayefarms/broodplan/internal/domain/models"
	"github.com/ndiayefarms/broodplan/internal/engine/calculator"
	"github.com/ndiayefarms/broodplan/internal/metrics"
	"github.com/ndiayefarms/broodplan/internal/repository"
)

// ErrInvalidInput indicates planning parameters the calculator must never
// see. The engine does not revalidate, so everything is checked here.
var ErrInvalidInput = errors.New("invalid planning input")

const (
	minDurationDays = 21
	maxDurationDays = 60
)

// PlanStore is the persistence surface the planning service needs.
type PlanStore interface {
	InsertPlan(ctx context.Context, plan models.FarmPlan) error
	FindPlan(ctx context.Context, id string) (models.FarmPlan, error)
	ListPlansByOwner(ctx context.Context, ownerID string) ([]models.FarmPlan, error)
	DeletePlan(ctx context.Context, id string) error
}

// Service validates planning input, runs the calculator and manages farm
// plan records.
type Service struct {
	calc   *calculator.Calculator
	store  PlanStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a planning service instance.
func NewService(calc *calculator.Calculator, store PlanStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		calc:   calc,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ValidateInput checks the planning parameters the engine assumes valid.
func ValidateInput(in models.PlanningInput) error {
	if in.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive", ErrInvalidInput)
	}
	if in.SpaceM2 <= 0 {
		return fmt.Errorf("%w: space must be positive", ErrInvalidInput)
	}
	if _, err := models.ParseExperienceLevel(string(in.ExperienceLevel)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if in.DurationDays < minDurationDays || in.DurationDays > maxDurationDays {
		return fmt.Errorf("%w: duration must be between %d and %d days", ErrInvalidInput, minDurationDays, maxDurationDays)
	}
	return nil
}

// Calculate validates the input and runs the calculator without persisting
// anything.
func (s *Service) Calculate(in models.PlanningInput) (models.Outcome, error) {
	if err := ValidateInput(in); err != nil {
		return models.Outcome{}, err
	}

	outcome := s.calc.ComputeRecommendation(in)
	if outcome.Success {
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeRecommended).Inc()
		s.logger.Debug("recommendation computed",
			zap.Int("flock_size", outcome.Recommendation.FlockSize),
			zap.String("cycle", string(outcome.Recommendation.CycleType)))
	} else {
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeInsufficient).Inc()
	}
	return outcome, nil
}

// CreatePlan runs the calculator and, when the resources are sufficient,
// persists a farm plan embedding the recommended flock size. An insufficient
// outcome is returned without persisting and without error.
func (s *Service) CreatePlan(ctx context.Context, ownerID string, in models.PlanningInput, startDate time.Time) (models.FarmPlan, models.Outcome, error) {
	outcome, err := s.Calculate(in)
	if err != nil {
		return models.FarmPlan{}, models.Outcome{}, err
	}
	if !outcome.Success {
		return models.FarmPlan{}, outcome, nil
	}

	if startDate.IsZero() {
		startDate = s.now()
	}

	plan := models.FarmPlan{
		ID:                   uuid.NewString(),
		OwnerID:              ownerID,
		Budget:               in.Budget,
		SpaceM2:              in.SpaceM2,
		ExperienceLevel:      in.ExperienceLevel,
		DurationDays:         in.DurationDays,
		StartDate:            midnightUTC(startDate),
		RecommendedFlockSize: outcome.Recommendation.FlockSize,
		CreatedAt:            s.now().UTC(),
	}

	if err := s.store.InsertPlan(ctx, plan); err != nil {
		return models.FarmPlan{}, models.Outcome{}, err
	}

	s.logger.Info("farm plan created",
		zap.String("plan_id", plan.ID),
		zap.String("owner_id", ownerID),
		zap.Int("flock_size", plan.RecommendedFlockSize))

	return plan, outcome, nil
}

// GetPlan loads a plan owned by the actor. Missing and foreign plans are
// both reported as not found.
func (s *Service) GetPlan(ctx context.Context, planID, actorID string) (models.FarmPlan, error) {
	plan, err := s.store.FindPlan(ctx, planID)
	if err != nil {
		return models.FarmPlan{}, err
	}
	if plan.OwnerID != actorID {
		return models.FarmPlan{}, repository.ErrNotFound
	}
	return plan, nil
}

// ListPlans returns the actor's plans.
func (s *Service) ListPlans(ctx context.Context, actorID string) ([]models.FarmPlan, error) {
	return s.store.ListPlansByOwner(ctx, actorID)
}

// DeletePlan removes a plan and, through the store cascade, its tasks.
func (s *Service) DeletePlan(ctx context.Context, planID, actorID string) error {
	if _, err := s.GetPlan(ctx, planID, actorID); err != nil {
		return err
	}
	return s.store.DeletePlan(ctx, planID)
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
