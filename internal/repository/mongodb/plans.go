package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ndiayefarms/broodplan/internal/domain/models"
	"github.com/ndiayefarms/broodplan/internal/repository"
)

// InsertPlan persists a new farm plan.
func (s *Store) InsertPlan(ctx context.Context, plan models.FarmPlan) error {
	_, err := s.db.Collection(plansCollection).InsertOne(ctx, plan)
	if err != nil {
		return fmt.Errorf("failed to insert farm plan: %w", err)
	}
	return nil
}

// FindPlan loads one farm plan by ID.
func (s *Store) FindPlan(ctx context.Context, id string) (models.FarmPlan, error) {
	var plan models.FarmPlan
	err := s.db.Collection(plansCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.FarmPlan{}, repository.ErrNotFound
	}
	if err != nil {
		return models.FarmPlan{}, fmt.Errorf("failed to load farm plan %s: %w", id, err)
	}
	return plan, nil
}

// ListPlansByOwner returns a farmer's plans, most recent first.
func (s *Store) ListPlansByOwner(ctx context.Context, ownerID string) ([]models.FarmPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(plansCollection).Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list farm plans: %w", err)
	}
	defer cursor.Close(ctx)

	var plans []models.FarmPlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("failed to decode farm plans: %w", err)
	}
	return plans, nil
}

// ListGeneratedPlans returns every plan that already has generated tasks, for
// the reminder digest.
func (s *Store) ListGeneratedPlans(ctx context.Context) ([]models.FarmPlan, error) {
	cursor, err := s.db.Collection(generationsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list generation markers: %w", err)
	}
	defer cursor.Close(ctx)

	var markers []generationMarker
	if err := cursor.All(ctx, &markers); err != nil {
		return nil, fmt.Errorf("failed to decode generation markers: %w", err)
	}
	if len(markers) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(markers))
	for _, m := range markers {
		ids = append(ids, m.FarmPlanID)
	}

	planCursor, err := s.db.Collection(plansCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to list generated plans: %w", err)
	}
	defer planCursor.Close(ctx)

	var plans []models.FarmPlan
	if err := planCursor.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("failed to decode generated plans: %w", err)
	}
	return plans, nil
}

// DeletePlan removes a plan together with its tasks and generation marker.
// Tasks are owned exclusively by their plan, so the cascade is total.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	if _, err := s.db.Collection(tasksCollection).DeleteMany(ctx, bson.M{"farm_plan_id": id}); err != nil {
		return fmt.Errorf("failed to delete tasks for plan %s: %w", id, err)
	}
	if _, err := s.db.Collection(generationsCollection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete generation marker for plan %s: %w", id, err)
	}

	res, err := s.db.Collection(plansCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete farm plan %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	s.logger.Debug("farm plan deleted", zap.String("plan_id", id))
	return nil
}
