package models

import "time"

// DailyTask is one dated, personalized task expanded from the template
// catalog for a farm plan. Tasks are created once per plan; afterwards only
// the completion and annotation fields change, and they are removed only as a
// cascade of plan deletion.
type DailyTask struct {
	ID            string     `bson:"_id" json:"id"`
	FarmPlanID    string     `bson:"farm_plan_id" json:"farm_plan_id"`
	TemplateID    string     `bson:"template_id,omitempty" json:"template_id,omitempty"`
	DayNumber     int        `bson:"day_number" json:"day_number"`
	ScheduledDate time.Time  `bson:"scheduled_date" json:"scheduled_date"`
	Title         string     `bson:"title" json:"title"`
	Description   string     `bson:"description" json:"description"`
	Category      string     `bson:"category" json:"category"`
	IsCritical    bool       `bson:"is_critical" json:"is_critical"`
	Completed     bool       `bson:"completed" json:"completed"`
	CompletedAt   *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	PhotoRef      string     `bson:"photo_ref,omitempty" json:"photo_ref,omitempty"`
	Notes         string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
}

// TaskDayGroup bundles the tasks scheduled for one cycle day.
type TaskDayGroup struct {
	DayNumber     int         `json:"day_number"`
	ScheduledDate time.Time   `json:"scheduled_date"`
	Tasks         []DailyTask `json:"tasks"`
}

// TaskCalendar is the by-day view over a plan's tasks with aggregate counts.
// Upcoming counts tasks that are not completed and scheduled today or later.
type TaskCalendar struct {
	Days           []TaskDayGroup `json:"days"`
	TotalTasks     int            `json:"total_tasks"`
	CompletedTasks int            `json:"completed_tasks"`
	CriticalTasks  int            `json:"critical_tasks"`
	UpcomingTasks  int            `json:"upcoming_tasks"`
}

// TaskStatistics summarizes progress over a plan's tasks. Percentages are 0
// when their denominator is 0.
type TaskStatistics struct {
	TotalTasks                int     `json:"total_tasks"`
	CompletedTasks            int     `json:"completed_tasks"`
	CriticalTasks             int     `json:"critical_tasks"`
	CompletedCriticalTasks    int     `json:"completed_critical_tasks"`
	OverdueTasks              int     `json:"overdue_tasks"`
	TodayPendingTasks         int     `json:"today_pending_tasks"`
	CompletionPercent         float64 `json:"completion_percent"`
	CriticalCompletionPercent float64 `json:"critical_completion_percent"`
}
