package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ndiayefarms/broodplan/internal/domain/models"
)

type captureExporter struct {
	sheetRange string
	values     []interface{}
}

func (c *captureExporter) AppendRow(_ context.Context, sheetRange string, values []interface{}) error {
	c.sheetRange = sheetRange
	c.values = values
	return nil
}

func digestPlan() models.FarmPlan {
	return models.FarmPlan{
		ID:                   "0b7aa6c2-plan",
		OwnerID:              "farmer-1",
		DurationDays:         30,
		ExperienceLevel:      models.ExperienceBeginner,
		StartDate:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RecommendedFlockSize: 40,
	}
}

func TestBuildDailyDigest(t *testing.T) {
	svc := NewService(nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 1, 10, 7, 0, 0, 0, time.UTC) }

	todays := []models.DailyTask{
		{Title: "Vaccinate the flock", IsCritical: true},
		{Title: "Refresh litter"},
	}
	stats := models.TaskStatistics{TotalTasks: 20, CompletedTasks: 5, CompletionPercent: 25, OverdueTasks: 2}

	digest := svc.BuildDailyDigest(digestPlan(), todays, stats)

	if !strings.Contains(digest, "day 10 of 30") {
		t.Errorf("digest missing cycle day: %q", digest)
	}
	if !strings.Contains(digest, "2 task(s) today") {
		t.Errorf("digest missing task count: %q", digest)
	}
	if !strings.Contains(digest, "[critical] Vaccinate the flock") {
		t.Errorf("digest missing critical marker: %q", digest)
	}
	if !strings.Contains(digest, "2 task(s) overdue") {
		t.Errorf("digest missing overdue count: %q", digest)
	}
}

func TestBuildDailyDigestNoTasks(t *testing.T) {
	svc := NewService(nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 7, 0, 0, 0, time.UTC) }

	digest := svc.BuildDailyDigest(digestPlan(), nil, models.TaskStatistics{})
	if !strings.Contains(digest, "No tasks scheduled today") {
		t.Errorf("digest = %q", digest)
	}
}

func TestExportPlanSnapshot(t *testing.T) {
	exporter := &captureExporter{}
	svc := NewService(exporter, nil)
	svc.now = func() time.Time { return time.Date(2024, 1, 10, 7, 0, 0, 0, time.UTC) }

	stats := models.TaskStatistics{TotalTasks: 20, CompletedTasks: 5, OverdueTasks: 2, CompletionPercent: 25}
	if err := svc.ExportPlanSnapshot(context.Background(), digestPlan(), stats); err != nil {
		t.Fatalf("ExportPlanSnapshot failed: %v", err)
	}

	if exporter.sheetRange != plansSheetRange {
		t.Errorf("sheet range = %q, want %q", exporter.sheetRange, plansSheetRange)
	}
	if len(exporter.values) != 10 {
		t.Errorf("row width = %d, want 10", len(exporter.values))
	}
	if exporter.values[0] != "2024-01-10" {
		t.Errorf("row date = %v, want 2024-01-10", exporter.values[0])
	}
}

func TestExportPlanSnapshotWithoutExporter(t *testing.T) {
	svc := NewService(nil, nil)
	if err := svc.ExportPlanSnapshot(context.Background(), digestPlan(), models.TaskStatistics{}); err != nil {
		t.Errorf("nil exporter must be a no-op, got %v", err)
	}
}
