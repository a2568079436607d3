package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ndiayefarms/broodplan/internal/domain/models"
)

const (
	dateLayout      = "2006-01-02"
	plansSheetRange = "Plans!A:J"
)

// Exporter appends bookkeeping rows to external storage.
type Exporter interface {
	AppendRow(ctx context.Context, sheetRange string, values []interface{}) error
}

// Service composes plan summaries for the reminder digest and the
// spreadsheet export. The exporter may be nil when export is disabled.
type Service struct {
	exporter Exporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(exporter Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{exporter: exporter, logger: logger, now: time.Now}
}

// BuildDailyDigest renders the morning reminder body for one plan.
func (s *Service) BuildDailyDigest(plan models.FarmPlan, todays []models.DailyTask, stats models.TaskStatistics) string {
	var b strings.Builder

	day := cycleDay(plan, s.now())
	fmt.Fprintf(&b, "Plan %s (day %d of %d): %d task(s) today.", shortID(plan.ID), day, plan.DurationDays, len(todays))
	fmt.Fprintf(&b, " Progress %.2f%%.", stats.CompletionPercent)
	if stats.OverdueTasks > 0 {
		fmt.Fprintf(&b, " %d task(s) overdue.", stats.OverdueTasks)
	}

	for _, task := range todays {
		b.WriteString("\n- ")
		if task.IsCritical {
			b.WriteString("[critical] ")
		}
		b.WriteString(task.Title)
	}

	if len(todays) == 0 {
		b.WriteString("\nNo tasks scheduled today. Check the upcoming list to stay ahead.")
	}

	return b.String()
}

// ExportPlanSnapshot appends one bookkeeping row with the plan's task
// progress to the spreadsheet. A nil exporter makes this a no-op.
func (s *Service) ExportPlanSnapshot(ctx context.Context, plan models.FarmPlan, stats models.TaskStatistics) error {
	if s.exporter == nil {
		return nil
	}

	values := []interface{}{
		s.now().UTC().Format(dateLayout),
		plan.ID,
		plan.OwnerID,
		string(plan.ExperienceLevel),
		plan.DurationDays,
		plan.RecommendedFlockSize,
		stats.TotalTasks,
		stats.CompletedTasks,
		stats.OverdueTasks,
		stats.CompletionPercent,
	}

	if err := s.exporter.AppendRow(ctx, plansSheetRange, values); err != nil {
		return fmt.Errorf("export plan snapshot: %w", err)
	}

	s.logger.Debug("plan snapshot exported", zap.String("plan_id", plan.ID))
	return nil
}

// cycleDay is the 1-based day index of the plan relative to its start date,
// clamped to the cycle bounds.
func cycleDay(plan models.FarmPlan, now time.Time) int {
	day := int(now.UTC().Sub(plan.StartDate).Hours()/24) + 1
	if day < 1 {
		day = 1
	}
	if day > plan.DurationDays {
		day = plan.DurationDays
	}
	return day
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
