// Package metrics holds the Prometheus collectors for task lifecycle operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics. A nil *Metrics records nothing.
type Metrics struct {
	// Counters
	tasksCreated   *prometheus.CounterVec
	tasksCancelled prometheus.Counter
	taskUpdates    *prometheus.CounterVec
	commentsAdded  prometheus.Counter

	// Histograms
	fetchResultSize prometheus.Histogram
}

// Task creation sources.
const (
	SourceCreate   = "create"
	SourceReassign = "reassign"
)

// Updated task fields.
const (
	FieldStatus      = "status"
	FieldDescription = "description"
	FieldPriority    = "priority"
)

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tasksCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasks_created_total",
				Help: "Total number of tasks created",
			},
			[]string{"source"},
		),
		tasksCancelled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tasks_cancelled_total",
				Help: "Total number of tasks cancelled by reassignment",
			},
		),
		taskUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "task_updates_total",
				Help: "Total number of task field updates",
			},
			[]string{"field"},
		),
		commentsAdded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "comments_added_total",
				Help: "Total number of comments added to tasks",
			},
		),
		fetchResultSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fetch_by_date_result_size",
				Help:    "Number of tasks returned by date window queries",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
			},
		),
	}

	reg.MustRegister(
		m.tasksCreated,
		m.tasksCancelled,
		m.taskUpdates,
		m.commentsAdded,
		m.fetchResultSize,
	)

	return m
}

// TasksCreated records n new tasks from source.
func (m *Metrics) TasksCreated(source string, n int) {
	if m == nil {
		return
	}
	m.tasksCreated.WithLabelValues(source).Add(float64(n))
}

// TasksCancelled records n tasks cancelled by reassignment.
func (m *Metrics) TasksCancelled(n int) {
	if m == nil {
		return
	}
	m.tasksCancelled.Add(float64(n))
}

// TaskUpdated records a change to one task field.
func (m *Metrics) TaskUpdated(field string) {
	if m == nil {
		return
	}
	m.taskUpdates.WithLabelValues(field).Inc()
}

// CommentAdded records a new comment.
func (m *Metrics) CommentAdded() {
	if m == nil {
		return
	}
	m.commentsAdded.Inc()
}

// FetchedByDate records the size of a date window result.
func (m *Metrics) FetchedByDate(n int) {
	if m == nil {
		return
	}
	m.fetchResultSize.Observe(float64(n))
}
