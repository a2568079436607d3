package mongodb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ndiayefarms/broodplan/internal/domain/models"
)

// ListTemplatesByCycle returns the full catalog for one cycle type, ordered
// by day. Experience filtering belongs to the generation engine.
func (s *Store) ListTemplatesByCycle(ctx context.Context, cycle models.CycleType) ([]models.TaskTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "day_number", Value: 1}})
	cursor, err := s.db.Collection(templatesCollection).Find(ctx, bson.M{"duration_type": cycle}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates for cycle %s: %w", cycle, err)
	}
	defer cursor.Close(ctx)

	var templates []models.TaskTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode templates for cycle %s: %w", cycle, err)
	}
	return templates, nil
}

// SeedDefaultTemplates loads the starter catalog when the collection is
// empty. Existing catalogs are never touched; the catalog stays read-only to
// the generation engine.
func (s *Store) SeedDefaultTemplates(ctx context.Context) error {
	count, err := s.db.Collection(templatesCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count templates: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(defaultCatalog))
	for _, tpl := range defaultCatalog {
		tpl.ID = uuid.NewString()
		docs = append(docs, tpl)
	}

	if _, err := s.db.Collection(templatesCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed templates: %w", err)
	}

	s.logger.Info("default template catalog seeded", zap.Int("count", len(defaultCatalog)))
	return nil
}

// defaultCatalog is the starter task catalog for new deployments. Days are
// 1-based offsets from cycle start; {count} is replaced with the plan's
// recommended flock size at generation time.
var defaultCatalog = []models.TaskTemplate{
	{DurationType: models.CycleShort, DayNumber: 1, Category: "setup", IsCritical: true, Title: "Receive and place chicks", Description: "Place {count} day-old chicks in the preheated brooder and give sugar water within two hours of arrival.", EstimatedMinutes: 60},
	{DurationType: models.CycleShort, DayNumber: 1, Category: "monitoring", IsCritical: true, Title: "Check brooder temperature", Description: "Confirm brooder temperature holds between 32 and 34 degrees and chicks spread evenly instead of huddling.", EstimatedMinutes: 15},
	{DurationType: models.CycleShort, DayNumber: 2, Category: "feeding", IsCritical: true, Title: "Start starter feed", Description: "Serve starter feed for {count} birds in shallow trays and refresh drinking water twice today.", EstimatedMinutes: 30},
	{DurationType: models.CycleShort, DayNumber: 3, Category: "monitoring", IsCritical: true, Title: "Inspect chick vigor", Description: "Walk the pen and check every corner: droppings, pasted vents and any bird sitting apart from the flock.", EstimatedMinutes: 20},
	{DurationType: models.CycleShort, DayNumber: 5, Category: "health", IsCritical: true, Title: "First vaccination", Description: "Administer the first Newcastle vaccine to all {count} birds via drinking water.", EstimatedMinutes: 45},
	{DurationType: models.CycleShort, DayNumber: 7, Category: "cleaning", IsCritical: false, Title: "Refresh litter", Description: "Turn and top up litter, and clean feeders and drinkers with plain water.", EstimatedMinutes: 40},
	{DurationType: models.CycleShort, DayNumber: 10, Category: "feeding", IsCritical: false, Title: "Weigh sample birds", Description: "Weigh ten birds and compare the average against the feed chart before adjusting rations for {count} birds.", EstimatedMinutes: 30},
	{DurationType: models.CycleShort, DayNumber: 14, Category: "health", IsCritical: true, Title: "Booster vaccination", Description: "Give the Gumboro booster vaccine in the cool morning hours.", EstimatedMinutes: 45},
	{DurationType: models.CycleShort, DayNumber: 18, Category: "marketing", IsCritical: false, Title: "Confirm buyers", Description: "Call your buyers and confirm pickup quantities and prices for {count} birds.", EstimatedMinutes: 30},
	{DurationType: models.CycleShort, DayNumber: 21, Category: "marketing", IsCritical: true, Title: "Sale day preparation", Description: "Withdraw feed overnight, prepare crates and settle transport for market day.", EstimatedMinutes: 90},
	{DurationType: models.CycleShort, DayNumber: 4, Category: "monitoring", IsCritical: false, ExperienceLevel: models.ExperienceBeginner, Title: "Review daily log", Description: "Go through your feed and mortality log for the first days and note anything unusual.", EstimatedMinutes: 15},

	{DurationType: models.CycleStandard, DayNumber: 1, Category: "setup", IsCritical: true, Title: "Receive and place chicks", Description: "Place {count} day-old chicks in the preheated brooder and give sugar water within two hours of arrival.", EstimatedMinutes: 60},
	{DurationType: models.CycleStandard, DayNumber: 1, Category: "monitoring", IsCritical: true, Title: "Check brooder temperature", Description: "Confirm brooder temperature holds between 32 and 34 degrees and chicks spread evenly instead of huddling.", EstimatedMinutes: 15},
	{DurationType: models.CycleStandard, DayNumber: 3, Category: "feeding", IsCritical: true, Title: "Transition to full starter ration", Description: "Move {count} birds onto the full starter ration and record feed consumed.", EstimatedMinutes: 30},
	{DurationType: models.CycleStandard, DayNumber: 6, Category: "monitoring", IsCritical: true, Title: "First-week health sweep", Description: "Inspect all {count} birds for respiratory signs and cull hopeless cases humanely.", EstimatedMinutes: 30},
	{DurationType: models.CycleStandard, DayNumber: 7, Category: "health", IsCritical: true, Title: "Newcastle vaccination", Description: "Administer the Newcastle vaccine via drinking water after two hours of water withdrawal.", EstimatedMinutes: 45},
	{DurationType: models.CycleStandard, DayNumber: 10, Category: "cleaning", IsCritical: false, Title: "Deep-clean drinkers", Description: "Scrub and disinfect all drinkers, then rinse until no disinfectant smell remains.", EstimatedMinutes: 40},
	{DurationType: models.CycleStandard, DayNumber: 14, Category: "feeding", IsCritical: true, Title: "Switch to grower feed", Description: "Blend grower feed in over two days for {count} birds to avoid digestive upsets.", EstimatedMinutes: 30},
	{DurationType: models.CycleStandard, DayNumber: 17, Category: "health", IsCritical: true, Title: "Gumboro booster", Description: "Give the Gumboro booster vaccine in the cool morning hours.", EstimatedMinutes: 45},
	{DurationType: models.CycleStandard, DayNumber: 21, Category: "monitoring", IsCritical: false, Title: "Weigh sample birds", Description: "Weigh ten birds and compare against the target curve before adjusting rations.", EstimatedMinutes: 30},
	{DurationType: models.CycleStandard, DayNumber: 25, Category: "marketing", IsCritical: false, Title: "Confirm buyers", Description: "Call your buyers and confirm pickup quantities and prices for {count} birds.", EstimatedMinutes: 30},
	{DurationType: models.CycleStandard, DayNumber: 30, Category: "marketing", IsCritical: true, Title: "Sale day preparation", Description: "Withdraw feed overnight, prepare crates and settle transport for market day.", EstimatedMinutes: 90},
	{DurationType: models.CycleStandard, DayNumber: 4, Category: "monitoring", IsCritical: false, ExperienceLevel: models.ExperienceBeginner, Title: "Review daily log", Description: "Go through your feed and mortality log for the first days and note anything unusual.", EstimatedMinutes: 15},
	{DurationType: models.CycleStandard, DayNumber: 12, Category: "feeding", IsCritical: false, ExperienceLevel: models.ExperienceAdvanced, Title: "Tune feed conversion", Description: "Compute feed conversion ratio from your log and adjust ration timing for {count} birds.", EstimatedMinutes: 25},

	{DurationType: models.CycleExtended, DayNumber: 1, Category: "setup", IsCritical: true, Title: "Receive and place chicks", Description: "Place {count} day-old chicks in the preheated brooder and give sugar water within two hours of arrival.", EstimatedMinutes: 60},
	{DurationType: models.CycleExtended, DayNumber: 2, Category: "monitoring", IsCritical: true, Title: "Check brooder temperature", Description: "Confirm brooder temperature holds between 32 and 34 degrees and chicks spread evenly instead of huddling.", EstimatedMinutes: 15},
	{DurationType: models.CycleExtended, DayNumber: 7, Category: "health", IsCritical: true, Title: "Newcastle vaccination", Description: "Administer the Newcastle vaccine via drinking water after two hours of water withdrawal.", EstimatedMinutes: 45},
	{DurationType: models.CycleExtended, DayNumber: 14, Category: "feeding", IsCritical: true, Title: "Switch to grower feed", Description: "Blend grower feed in over two days for {count} birds to avoid digestive upsets.", EstimatedMinutes: 30},
	{DurationType: models.CycleExtended, DayNumber: 18, Category: "cleaning", IsCritical: false, Title: "Full litter change", Description: "Replace litter completely and disinfect the floor while birds range in the run.", EstimatedMinutes: 60},
	{DurationType: models.CycleExtended, DayNumber: 21, Category: "health", IsCritical: true, Title: "Deworming round", Description: "Deworm all {count} birds and log the product and dose used.", EstimatedMinutes: 45},
	{DurationType: models.CycleExtended, DayNumber: 28, Category: "feeding", IsCritical: true, Title: "Switch to finisher feed", Description: "Move {count} birds to finisher feed and increase drinker capacity for the heavier flock.", EstimatedMinutes: 30},
	{DurationType: models.CycleExtended, DayNumber: 35, Category: "monitoring", IsCritical: false, Title: "Weigh sample birds", Description: "Weigh ten birds and compare against the target curve before adjusting rations.", EstimatedMinutes: 30},
	{DurationType: models.CycleExtended, DayNumber: 42, Category: "marketing", IsCritical: false, Title: "Confirm buyers", Description: "Call your buyers and confirm pickup quantities and prices for {count} birds.", EstimatedMinutes: 30},
	{DurationType: models.CycleExtended, DayNumber: 45, Category: "marketing", IsCritical: true, Title: "Sale day preparation", Description: "Withdraw feed overnight, prepare crates and settle transport for market day.", EstimatedMinutes: 90},
}
