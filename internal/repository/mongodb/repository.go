package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	plansCollection       = "farm_plans"
	templatesCollection   = "task_templates"
	tasksCollection       = "daily_tasks"
	generationsCollection = "task_generations"
)

// Store is the MongoDB persistence adapter for plans, templates and tasks.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewStore connects to MongoDB, verifies the connection and ensures the
// indexes the task workflow relies on.
func NewStore(ctx context.Context, uri, dbName string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	store := &Store{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}

	if err := store.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	tasks := s.db.Collection(tasksCollection)
	_, err := tasks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "farm_plan_id", Value: 1}, {Key: "day_number", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create daily_tasks index: %w", err)
	}

	templates := s.db.Collection(templatesCollection)
	_, err = templates.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "duration_type", Value: 1}, {Key: "day_number", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create task_templates index: %w", err)
	}

	plans := s.db.Collection(plansCollection)
	_, err = plans.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create farm_plans index: %w", err)
	}

	return nil
}

// Close disconnects the underlying MongoDB client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
