package planning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndiayefarms/broodplan/internal/domain/models"
	"github.com/ndiayefarms/broodplan/internal/engine/calculator"
	"github.com/ndiayefarms/broodplan/internal/repository"
)

type fakePlanStore struct {
	plans map[string]models.FarmPlan
}

func newFakePlanStore() *fakePlanStore {
	return &fakePlanStore{plans: make(map[string]models.FarmPlan)}
}

func (f *fakePlanStore) InsertPlan(_ context.Context, plan models.FarmPlan) error {
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanStore) FindPlan(_ context.Context, id string) (models.FarmPlan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return models.FarmPlan{}, repository.ErrNotFound
	}
	return plan, nil
}

func (f *fakePlanStore) ListPlansByOwner(_ context.Context, ownerID string) ([]models.FarmPlan, error) {
	var out []models.FarmPlan
	for _, plan := range f.plans {
		if plan.OwnerID == ownerID {
			out = append(out, plan)
		}
	}
	return out, nil
}

func (f *fakePlanStore) DeletePlan(_ context.Context, id string) error {
	if _, ok := f.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.plans, id)
	return nil
}

func validInput() models.PlanningInput {
	return models.PlanningInput{
		Budget:          150000,
		SpaceM2:         20,
		ExperienceLevel: models.ExperienceBeginner,
		DurationDays:    21,
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.PlanningInput)
		wantErr bool
	}{
		{name: "valid", mutate: func(*models.PlanningInput) {}},
		{name: "zero budget", mutate: func(in *models.PlanningInput) { in.Budget = 0 }, wantErr: true},
		{name: "negative budget", mutate: func(in *models.PlanningInput) { in.Budget = -5 }, wantErr: true},
		{name: "zero space", mutate: func(in *models.PlanningInput) { in.SpaceM2 = 0 }, wantErr: true},
		{name: "unknown experience", mutate: func(in *models.PlanningInput) { in.ExperienceLevel = "expert" }, wantErr: true},
		{name: "duration too short", mutate: func(in *models.PlanningInput) { in.DurationDays = 20 }, wantErr: true},
		{name: "duration lower bound", mutate: func(in *models.PlanningInput) { in.DurationDays = 21 }},
		{name: "duration upper bound", mutate: func(in *models.PlanningInput) { in.DurationDays = 60 }},
		{name: "duration too long", mutate: func(in *models.PlanningInput) { in.DurationDays = 61 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := ValidateInput(in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("err = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCalculateRejectsBeforeEngine(t *testing.T) {
	svc := NewService(calculator.New(calculator.DefaultPricing()), newFakePlanStore(), nil)

	in := validInput()
	in.DurationDays = 5
	if _, err := svc.Calculate(in); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCreatePlanPersistsRecommendation(t *testing.T) {
	store := newFakePlanStore()
	svc := NewService(calculator.New(calculator.DefaultPricing()), store, nil)

	start := time.Date(2024, 1, 1, 15, 45, 0, 0, time.UTC)
	plan, outcome, err := svc.CreatePlan(context.Background(), "farmer-1", validInput(), start)
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}
	if !outcome.Success {
		t.Fatalf("expected a successful outcome")
	}

	if plan.RecommendedFlockSize != outcome.Recommendation.FlockSize {
		t.Errorf("plan flock %d differs from recommendation %d", plan.RecommendedFlockSize, outcome.Recommendation.FlockSize)
	}
	if plan.OwnerID != "farmer-1" {
		t.Errorf("owner = %q, want farmer-1", plan.OwnerID)
	}

	// Start dates normalize to midnight UTC so day arithmetic stays stable.
	wantStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !plan.StartDate.Equal(wantStart) {
		t.Errorf("start date = %v, want %v", plan.StartDate, wantStart)
	}

	stored, err := store.FindPlan(context.Background(), plan.ID)
	if err != nil {
		t.Fatalf("plan not persisted: %v", err)
	}
	if stored.RecommendedFlockSize != plan.RecommendedFlockSize {
		t.Errorf("stored plan differs from returned plan")
	}
}

func TestCreatePlanInsufficientDoesNotPersist(t *testing.T) {
	store := newFakePlanStore()
	svc := NewService(calculator.New(calculator.DefaultPricing()), store, nil)

	in := models.PlanningInput{
		Budget:          1000,
		SpaceM2:         1,
		ExperienceLevel: models.ExperienceAdvanced,
		DurationDays:    30,
	}

	plan, outcome, err := svc.CreatePlan(context.Background(), "farmer-1", in, time.Time{})
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}
	if outcome.Success {
		t.Fatalf("expected insufficient resources")
	}
	if plan.ID != "" {
		t.Errorf("insufficient outcome must not produce a plan")
	}
	if len(store.plans) != 0 {
		t.Errorf("insufficient outcome persisted a plan")
	}
}

func TestGetPlanOwnership(t *testing.T) {
	store := newFakePlanStore()
	store.plans["plan-1"] = models.FarmPlan{ID: "plan-1", OwnerID: "farmer-1"}
	svc := NewService(calculator.New(calculator.DefaultPricing()), store, nil)

	if _, err := svc.GetPlan(context.Background(), "plan-1", "farmer-1"); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := svc.GetPlan(context.Background(), "plan-1", "intruder"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("foreign lookup err = %v, want ErrNotFound", err)
	}
	if err := svc.DeletePlan(context.Background(), "plan-1", "intruder"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("foreign delete err = %v, want ErrNotFound", err)
	}
}
