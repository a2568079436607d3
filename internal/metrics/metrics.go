// Package metrics exposes the application's Prometheus instruments. All
// collectors register on the default registry and are served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationsTotal counts calculator invocations by outcome
	// (recommended or insufficient).
	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "broodplan_recommendations_total",
		Help: "Calculator invocations partitioned by outcome.",
	}, []string{"outcome"})

	// TaskBatchesGenerated counts successful task generation runs.
	TaskBatchesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "broodplan_task_batches_generated_total",
		Help: "Successful task generation runs.",
	})

	// TasksGenerated counts individual tasks written by generation runs.
	TasksGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "broodplan_tasks_generated_total",
		Help: "Individual daily tasks created by generation runs.",
	})

	// TasksCompleted counts recorded task completion events.
	TasksCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "broodplan_tasks_completed_total",
		Help: "Task completion events recorded.",
	})
)

const (
	// OutcomeRecommended labels calculator runs that produced a recommendation.
	OutcomeRecommended = "recommended"
	// OutcomeInsufficient labels calculator runs that found the resources infeasible.
	OutcomeInsufficient = "insufficient"
)
