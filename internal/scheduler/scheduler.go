// Package scheduler runs the cron job that pushes the morning task digest
// for every plan with generated tasks.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ndiayefarms/broodplan/internal/config"
	"github.com/ndiayefarms/broodplan/internal/domain/models"
	"github.com/ndiayefarms/broodplan/internal/service/reporting"
	client "github.com/ndiayefarms/broodplan/pkg/clients/whatsapp"
)

// PlanSource lists the plans eligible for a reminder.
type PlanSource interface {
	ListGeneratedPlans(ctx context.Context) ([]models.FarmPlan, error)
}

// TaskReader supplies the per-plan digest inputs.
type TaskReader interface {
	TodaysTasks(ctx context.Context, planID, actorID string) ([]models.DailyTask, error)
	Statistics(ctx context.Context, planID, actorID string) (models.TaskStatistics, error)
}

// Scheduler manages the daily reminder job.
type Scheduler struct {
	cron      *cron.Cron
	plans     PlanSource
	tasks     TaskReader
	reporting *reporting.Service
	notifier  client.Client
	cfg       config.RemindersConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.RemindersConfig, plans PlanSource, tasks TaskReader, reportingSvc *reporting.Service, notifier client.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:      cron.New(),
		plans:     plans,
		tasks:     tasks,
		reporting: reportingSvc,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers and starts the daily reminder job.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.sendDailyReminders); err != nil {
		s.logger.Error("failed to schedule daily reminders", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sendDailyReminders() {
	s.logger.Info("sending daily task reminders")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	plans, err := s.plans.ListGeneratedPlans(ctx)
	if err != nil {
		s.logger.Error("failed to list generated plans", zap.Error(err))
		return
	}

	for _, plan := range plans {
		if err := s.remind(ctx, plan); err != nil {
			s.logger.Error("failed to send reminder",
				zap.String("plan_id", plan.ID),
				zap.Error(err))
		}
	}
}

func (s *Scheduler) remind(ctx context.Context, plan models.FarmPlan) error {
	todays, err := s.tasks.TodaysTasks(ctx, plan.ID, plan.OwnerID)
	if err != nil {
		return err
	}
	stats, err := s.tasks.Statistics(ctx, plan.ID, plan.OwnerID)
	if err != nil {
		return err
	}

	if err := s.reporting.ExportPlanSnapshot(ctx, plan, stats); err != nil {
		// The reminder still goes out when bookkeeping export fails.
		s.logger.Warn("failed to export plan snapshot", zap.String("plan_id", plan.ID), zap.Error(err))
	}

	digest := s.reporting.BuildDailyDigest(plan, todays, stats)
	return s.notifier.SendDigest(ctx, s.cfg.RecipientID, digest)
}
