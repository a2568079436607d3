package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ndiayefarms/broodplan/internal/domain/models"
	"github.com/ndiayefarms/broodplan/internal/repository"
)

// generationMarker records that a plan's tasks were generated. Its _id is the
// plan ID, so the collection's primary key is the serialization boundary that
// makes generation at-most-once under concurrent requests.
type generationMarker struct {
	FarmPlanID  string    `bson:"_id"`
	GeneratedAt time.Time `bson:"generated_at"`
	TaskCount   int       `bson:"task_count"`
}

// InsertGeneration atomically claims the plan's generation slot and persists
// the task batch. A second call for the same plan fails with
// repository.ErrAlreadyGenerated and writes nothing.
func (s *Store) InsertGeneration(ctx context.Context, planID string, tasks []models.DailyTask) error {
	marker := generationMarker{
		FarmPlanID:  planID,
		GeneratedAt: time.Now().UTC(),
		TaskCount:   len(tasks),
	}

	if _, err := s.db.Collection(generationsCollection).InsertOne(ctx, marker); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAlreadyGenerated
		}
		return fmt.Errorf("failed to claim generation for plan %s: %w", planID, err)
	}

	docs := make([]interface{}, 0, len(tasks))
	for _, task := range tasks {
		docs = append(docs, task)
	}

	if _, err := s.db.Collection(tasksCollection).InsertMany(ctx, docs); err != nil {
		// Release the claim so a retry can succeed.
		if _, delErr := s.db.Collection(generationsCollection).DeleteOne(ctx, bson.M{"_id": planID}); delErr != nil {
			s.logger.Error("failed to release generation marker", zap.String("plan_id", planID), zap.Error(delErr))
		}
		return fmt.Errorf("failed to insert tasks for plan %s: %w", planID, err)
	}

	s.logger.Debug("task batch generated", zap.String("plan_id", planID), zap.Int("count", len(tasks)))
	return nil
}

// ListTasksByPlan returns a plan's tasks ordered by day, critical first
// within a day.
func (s *Store) ListTasksByPlan(ctx context.Context, planID string) ([]models.DailyTask, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "day_number", Value: 1},
		{Key: "is_critical", Value: -1},
	})
	cursor, err := s.db.Collection(tasksCollection).Find(ctx, bson.M{"farm_plan_id": planID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for plan %s: %w", planID, err)
	}
	defer cursor.Close(ctx)

	var tasks []models.DailyTask
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks for plan %s: %w", planID, err)
	}
	return tasks, nil
}

// FindTask loads one task by ID.
func (s *Store) FindTask(ctx context.Context, id string) (models.DailyTask, error) {
	var task models.DailyTask
	err := s.db.Collection(tasksCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DailyTask{}, repository.ErrNotFound
	}
	if err != nil {
		return models.DailyTask{}, fmt.Errorf("failed to load task %s: %w", id, err)
	}
	return task, nil
}

// CompleteTask records the completion event with a conditional update so two
// concurrent completions cannot both succeed; the loser observes
// repository.ErrAlreadyCompleted.
func (s *Store) CompleteTask(ctx context.Context, id string, completedAt time.Time, notes, photoRef string) (models.DailyTask, error) {
	set := bson.M{
		"completed":    true,
		"completed_at": completedAt,
	}
	if notes != "" {
		set["notes"] = notes
	}
	if photoRef != "" {
		set["photo_ref"] = photoRef
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var task models.DailyTask
	err := s.db.Collection(tasksCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": id, "completed": false}, bson.M{"$set": set}, opts).
		Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either completed=false failed or the task was deleted between the
		// caller's read and this update; a second lookup tells them apart.
		lookupErr := s.db.Collection(tasksCollection).FindOne(ctx, bson.M{"_id": id}).Err()
		if errors.Is(lookupErr, mongo.ErrNoDocuments) {
			return models.DailyTask{}, repository.ErrNotFound
		}
		if lookupErr != nil {
			return models.DailyTask{}, fmt.Errorf("failed to complete task %s: %w", id, lookupErr)
		}
		return models.DailyTask{}, repository.ErrAlreadyCompleted
	}
	if err != nil {
		return models.DailyTask{}, fmt.Errorf("failed to complete task %s: %w", id, err)
	}
	return task, nil
}

// UpdateTaskNotes overwrites a task's notes regardless of completion state.
func (s *Store) UpdateTaskNotes(ctx context.Context, id, notes string) (models.DailyTask, error) {
	return s.updateTaskField(ctx, id, "notes", notes)
}

// UpdateTaskPhoto overwrites a task's photo reference regardless of
// completion state.
func (s *Store) UpdateTaskPhoto(ctx context.Context, id, photoRef string) (models.DailyTask, error) {
	return s.updateTaskField(ctx, id, "photo_ref", photoRef)
}

func (s *Store) updateTaskField(ctx context.Context, id, field, value string) (models.DailyTask, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var task models.DailyTask
	err := s.db.Collection(tasksCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{field: value}}, opts).
		Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DailyTask{}, repository.ErrNotFound
	}
	if err != nil {
		return models.DailyTask{}, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return task, nil
}
