package tasks

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ndiayefarms/broodplan/internal/domain/models"
)

func testPlan(level models.ExperienceLevel) models.FarmPlan {
	return models.FarmPlan{
		ID:                   "plan-1",
		OwnerID:              "farmer-1",
		DurationDays:         21,
		ExperienceLevel:      level,
		StartDate:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RecommendedFlockSize: 50,
	}
}

func shortTemplate(id string, day int, critical bool, category, title, description string) models.TaskTemplate {
	return models.TaskTemplate{
		ID:           id,
		DayNumber:    day,
		Category:     category,
		IsCritical:   critical,
		DurationType: models.CycleShort,
		Title:        title,
		Description:  description,
	}
}

func TestExpandSchedulesAndDropsOutOfRange(t *testing.T) {
	plan := testPlan(models.ExperienceAdvanced)
	catalog := []models.TaskTemplate{
		shortTemplate("t1", 1, true, "setup", "Place chicks", "Place {count} chicks."),
		shortTemplate("t2", 10, false, "feeding", "Weigh birds", "Weigh a sample."),
		shortTemplate("t3", 25, true, "marketing", "Sale prep", "Prepare crates."),
	}

	result, err := Expand(plan, catalog)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("got %d tasks, want 2 (day 25 dropped)", len(result))
	}
	for _, task := range result {
		if task.DayNumber > plan.DurationDays {
			t.Errorf("task %q scheduled past cycle end on day %d", task.Title, task.DayNumber)
		}
		want := plan.StartDate.AddDate(0, 0, task.DayNumber-1)
		if !task.ScheduledDate.Equal(want) {
			t.Errorf("task %q scheduled %v, want %v", task.Title, task.ScheduledDate, want)
		}
	}

	if !result[0].ScheduledDate.Equal(plan.StartDate) {
		t.Errorf("day-1 task scheduled %v, want the start date", result[0].ScheduledDate)
	}

	if result[0].Completed || result[0].CompletedAt != nil || result[0].Notes != "" || result[0].PhotoRef != "" {
		t.Errorf("new task not initialized pristine: %+v", result[0])
	}
}

func TestExpandSubstitutesFlockSize(t *testing.T) {
	plan := testPlan(models.ExperienceAdvanced)
	catalog := []models.TaskTemplate{
		shortTemplate("t1", 2, true, "feeding", "Start feed", "Serve starter feed for {count} birds."),
	}

	result, err := Expand(plan, catalog)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if want := "Serve starter feed for 50 birds."; result[0].Description != want {
		t.Errorf("description = %q, want %q", result[0].Description, want)
	}
}

func TestExpandBeginnerKeywordTips(t *testing.T) {
	plan := testPlan(models.ExperienceBeginner)
	catalog := []models.TaskTemplate{
		shortTemplate("t1", 1, false, "setup", "Brooder check", "Confirm the temperature holds overnight."),
		shortTemplate("t2", 2, false, "health", "Water check", "Refresh the drinking water."),
	}

	result, err := Expand(plan, catalog)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	if !strings.Contains(result[0].Description, "thermometer at bird height") {
		t.Errorf("temperature keyword tip not appended: %q", result[0].Description)
	}
	if strings.Contains(result[1].Description, "Tip:") {
		t.Errorf("tip appended without matching keyword: %q", result[1].Description)
	}

	// Non-beginners never receive tips.
	advanced, err := Expand(testPlan(models.ExperienceAdvanced), catalog)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if strings.Contains(advanced[0].Description, "Tip:") {
		t.Errorf("advanced plan received beginner tip: %q", advanced[0].Description)
	}
}

func TestExpandBeginnerDoubleCheckSynthesis(t *testing.T) {
	plan := testPlan(models.ExperienceBeginner)
	catalog := []models.TaskTemplate{
		shortTemplate("t1", 3, true, "monitoring", "Inspect chick vigor", "Walk the pen."),
		shortTemplate("t2", 9, true, "monitoring", "Late inspection", "Walk the pen again."),
		shortTemplate("t3", 4, true, "health", "Vaccination", "Administer the vaccine."),
	}

	result, err := Expand(plan, catalog)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	var doubles []models.DailyTask
	for _, task := range result {
		if strings.HasPrefix(task.Title, "Double-check:") {
			doubles = append(doubles, task)
		}
	}

	// Only the critical monitoring template inside the first week qualifies.
	if len(doubles) != 1 {
		t.Fatalf("got %d double-check tasks, want 1", len(doubles))
	}
	double := doubles[0]
	if double.DayNumber != 3 {
		t.Errorf("double-check on day %d, want 3", double.DayNumber)
	}
	if double.IsCritical {
		t.Errorf("double-check task must not be critical")
	}
	if double.TemplateID != "" {
		t.Errorf("double-check task must not reference a stored template, got %q", double.TemplateID)
	}
}

func TestExpandOrderingCriticalFirstWithinDay(t *testing.T) {
	plan := testPlan(models.ExperienceAdvanced)
	catalog := []models.TaskTemplate{
		shortTemplate("t1", 5, false, "cleaning", "Refresh litter", "Turn litter."),
		shortTemplate("t2", 5, true, "health", "Vaccination", "Administer the vaccine."),
		shortTemplate("t3", 2, false, "feeding", "Feed", "Serve feed."),
	}

	result, err := Expand(plan, catalog)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	if result[0].DayNumber != 2 {
		t.Fatalf("tasks not sorted by day: %+v", result)
	}
	if result[1].Title != "Vaccination" || result[2].Title != "Refresh litter" {
		t.Errorf("day-5 tasks not critical-first: %q then %q", result[1].Title, result[2].Title)
	}
}

func TestExpandExperienceFilterAndFallback(t *testing.T) {
	plan := testPlan(models.ExperienceBeginner)
	catalog := []models.TaskTemplate{
		shortTemplate("t1", 1, true, "setup", "Place chicks", "Place {count} chicks."),
		func() models.TaskTemplate {
			tpl := shortTemplate("t2", 2, false, "monitoring", "Tune conversion", "Compute feed conversion.")
			tpl.ExperienceLevel = models.ExperienceAdvanced
			return tpl
		}(),
	}

	result, err := Expand(plan, catalog)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	for _, task := range result {
		if task.Title == "Tune conversion" {
			t.Errorf("advanced-only template leaked into beginner plan")
		}
	}
}

func TestExpandAllTemplatesPastCycleEnd(t *testing.T) {
	plan := testPlan(models.ExperienceAdvanced)
	plan.DurationDays = 22 // standard cycle

	catalog := []models.TaskTemplate{
		{ID: "t1", DayNumber: 25, DurationType: models.CycleStandard, Category: "feeding", Title: "Switch feed", Description: "Switch rations."},
		{ID: "t2", DayNumber: 30, DurationType: models.CycleStandard, Category: "marketing", IsCritical: true, Title: "Sale prep", Description: "Prepare crates."},
	}

	// Every matching template falls past the cycle end; generation must fail
	// rather than produce an empty batch.
	if _, err := Expand(plan, catalog); !errors.Is(err, ErrNoTemplatesFound) {
		t.Errorf("err = %v, want ErrNoTemplatesFound when all templates are dropped", err)
	}
}

func TestExpandNoTemplates(t *testing.T) {
	plan := testPlan(models.ExperienceBeginner)

	// Catalog holds only other-cycle and other-experience rows.
	extended := models.TaskTemplate{ID: "t1", DayNumber: 1, DurationType: models.CycleExtended, Title: "x", Description: "x"}
	advancedOnly := func() models.TaskTemplate {
		tpl := shortTemplate("t2", 1, false, "setup", "x", "x")
		tpl.ExperienceLevel = models.ExperienceAdvanced
		return tpl
	}()

	for _, catalog := range [][]models.TaskTemplate{nil, {extended}, {extended, advancedOnly}} {
		if _, err := Expand(plan, catalog); !errors.Is(err, ErrNoTemplatesFound) {
			t.Errorf("catalog %+v: err = %v, want ErrNoTemplatesFound", catalog, err)
		}
	}
}
