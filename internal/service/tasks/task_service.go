// Package tasks owns the persisted task workflow for a farm plan:
// generation, calendar and progress queries, and the completion and
// annotation operations.
package tasks

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/google/uuid"

	"github.com/ndiayefarms/broodplan/internal/domain/models"
	enginetasks "github.com/ndiayefarms/broodplan/internal/engine/tasks"
	"github.com/ndiayefarms/broodplan/internal/metrics"
	"github.com/ndiayefarms/broodplan/internal/repository"
)

const upcomingWindowDays = 7

// PlanStore resolves plans for ownership checks and generation input.
type PlanStore interface {
	FindPlan(ctx context.Context, id string) (models.FarmPlan, error)
}

// TemplateStore supplies the read-only template catalog.
type TemplateStore interface {
	ListTemplatesByCycle(ctx context.Context, cycle models.CycleType) ([]models.TaskTemplate, error)
}

// TaskStore is the persistence surface for daily tasks.
type TaskStore interface {
	InsertGeneration(ctx context.Context, planID string, tasks []models.DailyTask) error
	ListTasksByPlan(ctx context.Context, planID string) ([]models.DailyTask, error)
	FindTask(ctx context.Context, id string) (models.DailyTask, error)
	CompleteTask(ctx context.Context, id string, completedAt time.Time, notes, photoRef string) (models.DailyTask, error)
	UpdateTaskNotes(ctx context.Context, id, notes string) (models.DailyTask, error)
	UpdateTaskPhoto(ctx context.Context, id, photoRef string) (models.DailyTask, error)
}

// Service implements the task workflow over the injected stores.
type Service struct {
	plans     PlanStore
	templates TemplateStore
	tasks     TaskStore
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a task service instance.
func NewService(plans PlanStore, templates TemplateStore, tasks TaskStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		plans:     plans,
		templates: templates,
		tasks:     tasks,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate expands the template catalog for the plan and persists the dated
// task batch. It runs at most once per plan; a second call fails with
// repository.ErrAlreadyGenerated.
func (s *Service) Generate(ctx context.Context, planID, actorID string) ([]models.DailyTask, error) {
	plan, err := s.ownedPlan(ctx, planID, actorID)
	if err != nil {
		return nil, err
	}

	cycle := models.CycleTypeForDuration(plan.DurationDays)
	catalog, err := s.templates.ListTemplatesByCycle(ctx, cycle)
	if err != nil {
		return nil, err
	}

	expanded, err := enginetasks.Expand(plan, catalog)
	if err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	for i := range expanded {
		expanded[i].ID = uuid.NewString()
		expanded[i].CreatedAt = createdAt
	}

	if err := s.tasks.InsertGeneration(ctx, planID, expanded); err != nil {
		return nil, err
	}

	metrics.TaskBatchesGenerated.Inc()
	metrics.TasksGenerated.Add(float64(len(expanded)))
	s.logger.Info("tasks generated",
		zap.String("plan_id", planID),
		zap.String("cycle", string(cycle)),
		zap.Int("count", len(expanded)))

	return expanded, nil
}

// TasksByDay groups the plan's tasks by cycle day with aggregate counts.
func (s *Service) TasksByDay(ctx context.Context, planID, actorID string) (models.TaskCalendar, error) {
	tasks, err := s.planTasks(ctx, planID, actorID)
	if err != nil {
		return models.TaskCalendar{}, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].DayNumber != tasks[j].DayNumber {
			return tasks[i].DayNumber < tasks[j].DayNumber
		}
		return tasks[i].IsCritical && !tasks[j].IsCritical
	})

	today := s.today()
	calendar := models.TaskCalendar{TotalTasks: len(tasks)}

	var current *models.TaskDayGroup
	for _, task := range tasks {
		if task.Completed {
			calendar.CompletedTasks++
		}
		if task.IsCritical {
			calendar.CriticalTasks++
		}
		if !task.Completed && !task.ScheduledDate.Before(today) {
			calendar.UpcomingTasks++
		}

		if current == nil || current.DayNumber != task.DayNumber {
			calendar.Days = append(calendar.Days, models.TaskDayGroup{
				DayNumber:     task.DayNumber,
				ScheduledDate: task.ScheduledDate,
			})
			current = &calendar.Days[len(calendar.Days)-1]
		}
		current.Tasks = append(current.Tasks, task)
	}

	return calendar, nil
}

// TodaysTasks returns the tasks scheduled for today, critical first.
func (s *Service) TodaysTasks(ctx context.Context, planID, actorID string) ([]models.DailyTask, error) {
	tasks, err := s.planTasks(ctx, planID, actorID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	var out []models.DailyTask
	for _, task := range tasks {
		if task.ScheduledDate.Equal(today) {
			out = append(out, task)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IsCritical && !out[j].IsCritical
	})
	return out, nil
}

// UpcomingTasks returns the not-yet-completed tasks scheduled within the next
// seven days, ordered by date then critical first.
func (s *Service) UpcomingTasks(ctx context.Context, planID, actorID string) ([]models.DailyTask, error) {
	tasks, err := s.planTasks(ctx, planID, actorID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	horizon := today.AddDate(0, 0, upcomingWindowDays)

	var out []models.DailyTask
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		if task.ScheduledDate.Before(today) || task.ScheduledDate.After(horizon) {
			continue
		}
		out = append(out, task)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ScheduledDate.Equal(out[j].ScheduledDate) {
			return out[i].ScheduledDate.Before(out[j].ScheduledDate)
		}
		return out[i].IsCritical && !out[j].IsCritical
	})
	return out, nil
}

// Statistics summarizes the plan's task progress. Percentages fall back to 0
// when their denominator is 0.
func (s *Service) Statistics(ctx context.Context, planID, actorID string) (models.TaskStatistics, error) {
	tasks, err := s.planTasks(ctx, planID, actorID)
	if err != nil {
		return models.TaskStatistics{}, err
	}

	today := s.today()
	stats := models.TaskStatistics{TotalTasks: len(tasks)}

	for _, task := range tasks {
		if task.Completed {
			stats.CompletedTasks++
		}
		if task.IsCritical {
			stats.CriticalTasks++
			if task.Completed {
				stats.CompletedCriticalTasks++
			}
		}
		if !task.Completed {
			switch {
			case task.ScheduledDate.Before(today):
				stats.OverdueTasks++
			case task.ScheduledDate.Equal(today):
				stats.TodayPendingTasks++
			}
		}
	}

	if stats.TotalTasks > 0 {
		stats.CompletionPercent = round2(float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100)
	}
	if stats.CriticalTasks > 0 {
		stats.CriticalCompletionPercent = round2(float64(stats.CompletedCriticalTasks) / float64(stats.CriticalTasks) * 100)
	}

	return stats, nil
}

// Complete records the task's single completion event, attaching notes and a
// photo reference when provided. Re-completing is a caller error so the audit
// timestamp reflects one true event.
func (s *Service) Complete(ctx context.Context, taskID, actorID, notes, photoRef string) (models.DailyTask, error) {
	task, err := s.ownedTask(ctx, taskID, actorID)
	if err != nil {
		return models.DailyTask{}, err
	}
	if task.Completed {
		return models.DailyTask{}, repository.ErrAlreadyCompleted
	}

	updated, err := s.tasks.CompleteTask(ctx, taskID, s.now().UTC(), notes, photoRef)
	if err != nil {
		return models.DailyTask{}, err
	}

	metrics.TasksCompleted.Inc()
	s.logger.Info("task completed", zap.String("task_id", taskID), zap.String("plan_id", task.FarmPlanID))
	return updated, nil
}

// Annotate overwrites the task's notes regardless of completion state.
func (s *Service) Annotate(ctx context.Context, taskID, actorID, notes string) (models.DailyTask, error) {
	if _, err := s.ownedTask(ctx, taskID, actorID); err != nil {
		return models.DailyTask{}, err
	}
	return s.tasks.UpdateTaskNotes(ctx, taskID, notes)
}

// AttachPhoto overwrites the task's photo reference regardless of completion
// state.
func (s *Service) AttachPhoto(ctx context.Context, taskID, actorID, photoRef string) (models.DailyTask, error) {
	if _, err := s.ownedTask(ctx, taskID, actorID); err != nil {
		return models.DailyTask{}, err
	}
	return s.tasks.UpdateTaskPhoto(ctx, taskID, photoRef)
}

func (s *Service) planTasks(ctx context.Context, planID, actorID string) ([]models.DailyTask, error) {
	if _, err := s.ownedPlan(ctx, planID, actorID); err != nil {
		return nil, err
	}
	return s.tasks.ListTasksByPlan(ctx, planID)
}

// ownedPlan resolves the plan and enforces ownership. A foreign plan looks
// identical to a missing one so existence is not leaked.
func (s *Service) ownedPlan(ctx context.Context, planID, actorID string) (models.FarmPlan, error) {
	plan, err := s.plans.FindPlan(ctx, planID)
	if err != nil {
		return models.FarmPlan{}, err
	}
	if plan.OwnerID != actorID {
		return models.FarmPlan{}, repository.ErrNotFound
	}
	return plan, nil
}

func (s *Service) ownedTask(ctx context.Context, taskID, actorID string) (models.DailyTask, error) {
	task, err := s.tasks.FindTask(ctx, taskID)
	if err != nil {
		return models.DailyTask{}, err
	}
	if _, err := s.ownedPlan(ctx, task.FarmPlanID, actorID); err != nil {
		return models.DailyTask{}, err
	}
	return task, nil
}

func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
