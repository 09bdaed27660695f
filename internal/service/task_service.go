package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/mtlprog/workforcemgmt/internal/domain"
	"github.com/mtlprog/workforcemgmt/internal/metrics"
)

const (
	createdDescription    = "New task created."
	reassignedDescription = "Task reassigned by assign-by-ref"

	activityCreated   = "Created"
	activityCancelled = "Cancelled by reassignment"
)

// TaskService coordinates task lifecycle operations and queries.
type TaskService struct {
	store   TaskStore
	catalog Catalog
	metrics *metrics.Metrics
	clock   Clock
}

// NewTaskService creates a new TaskService. A nil clock falls back to
// time.Now and nil metrics record nothing.
func NewTaskService(store TaskStore, catalog Catalog, m *metrics.Metrics, clock Clock) *TaskService {
	if clock == nil {
		clock = time.Now
	}
	return &TaskService{
		store:   store,
		catalog: catalog,
		metrics: m,
		clock:   clock,
	}
}

// CreateTaskParams describes one task to create.
type CreateTaskParams struct {
	ReferenceID   int64
	ReferenceType domain.ReferenceType
	Kind          domain.TaskKind
	AssigneeID    int64
	Priority      domain.Priority
	Deadline      int64
}

// UpdateTaskParams describes one task update. Nil fields are left untouched.
type UpdateTaskParams struct {
	TaskID      string
	Status      *domain.TaskStatus
	Description *string
}

// BatchResult is the outcome of one item of a batch operation.
// Exactly one of Task and Err is set.
type BatchResult struct {
	Task *domain.Task
	Err  error
}

// now returns the clock reading in epoch millis.
func (s *TaskService) now() int64 {
	return s.clock().UnixMilli()
}

// getTask loads a task, wrapping a missing id into a not found error that names it.
func (s *TaskService) getTask(ctx context.Context, store TaskStore, taskID string) (*domain.Task, error) {
	task, err := store.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, fmt.Errorf("%w with id: %s", domain.ErrTaskNotFound, taskID)
		}
		return nil, fmt.Errorf("find task %s: %w", taskID, err)
	}
	return task, nil
}

// mutateTask loads a task, applies change and saves it in one transaction, so
// the read and the write see the same row.
func (s *TaskService) mutateTask(ctx context.Context, taskID string, change func(task *domain.Task)) (*domain.Task, error) {
	var saved *domain.Task
	err := s.store.WithinTx(ctx, func(ctx context.Context, store TaskStore) error {
		task, err := s.getTask(ctx, store, taskID)
		if err != nil {
			return err
		}

		change(task)

		saved, err = store.Save(ctx, task)
		if err != nil {
			return fmt.Errorf("save task %s: %w", taskID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// CreateTasks creates one ASSIGNED task per item. Items are processed in
// order and each is persisted before the next; a failed item does not roll
// back earlier ones.
func (s *TaskService) CreateTasks(ctx context.Context, items []CreateTaskParams) []BatchResult {
	results := make([]BatchResult, len(items))
	for i, item := range items {
		task, err := s.createTask(ctx, item)
		if err != nil {
			slog.Warn("task creation failed",
				"index", i,
				"reference_id", item.ReferenceID,
				"error", err,
			)
			results[i] = BatchResult{Err: err}
			continue
		}
		results[i] = BatchResult{Task: task}
	}
	return results
}

func (s *TaskService) createTask(ctx context.Context, item CreateTaskParams) (*domain.Task, error) {
	if err := validateCreate(item); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ReferenceID:   item.ReferenceID,
		ReferenceType: item.ReferenceType,
		Kind:          item.Kind,
		AssigneeID:    item.AssigneeID,
		Priority:      item.Priority,
		Deadline:      item.Deadline,
		Status:        domain.TaskStatusAssigned,
		Description:   createdDescription,
	}
	task.AddActivity(activityCreated, s.now())

	saved, err := s.store.Save(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	s.metrics.TasksCreated(metrics.SourceCreate, 1)

	slog.Info("task created",
		"task_id", saved.ID,
		"reference_id", saved.ReferenceID,
		"reference_type", saved.ReferenceType,
		"kind", saved.Kind,
		"assignee_id", saved.AssigneeID,
	)

	return saved, nil
}

// UpdateTasks applies status and description changes item by item.
// A status change appends an activity entry; a description change does not.
func (s *TaskService) UpdateTasks(ctx context.Context, items []UpdateTaskParams) []BatchResult {
	results := make([]BatchResult, len(items))
	for i, item := range items {
		task, err := s.updateTask(ctx, item)
		if err != nil {
			slog.Warn("task update failed",
				"index", i,
				"task_id", item.TaskID,
				"error", err,
			)
			results[i] = BatchResult{Err: err}
			continue
		}
		results[i] = BatchResult{Task: task}
	}
	return results
}

func (s *TaskService) updateTask(ctx context.Context, item UpdateTaskParams) (*domain.Task, error) {
	if err := validateUpdate(item); err != nil {
		return nil, err
	}

	saved, err := s.mutateTask(ctx, item.TaskID, func(task *domain.Task) {
		if item.Status != nil {
			task.Status = *item.Status
			task.AddActivity("Status changed to "+string(*item.Status), s.now())
		}
		if item.Description != nil {
			task.Description = *item.Description
		}
	})
	if err != nil {
		return nil, err
	}

	if item.Status != nil {
		s.metrics.TaskUpdated(metrics.FieldStatus)
	}
	if item.Description != nil {
		s.metrics.TaskUpdated(metrics.FieldDescription)
	}

	slog.Info("task updated",
		"task_id", saved.ID,
		"status", saved.Status,
	)

	return saved, nil
}

// AssignByReference cancels every non-completed task of each applicable kind
// for the reference and creates one fresh ASSIGNED task per kind for the new
// assignee. Completed tasks are left untouched. An unknown reference type
// yields no new tasks.
func (s *TaskService) AssignByReference(
	ctx context.Context,
	referenceID int64,
	referenceType domain.ReferenceType,
	assigneeID int64,
) (string, error) {
	message := fmt.Sprintf("Tasks reassigned and old assignments cancelled for reference %d", referenceID)

	kinds := s.catalog.KindsFor(referenceType)
	if len(kinds) == 0 {
		slog.Warn("no task kinds for reference type, nothing to reassign",
			"reference_id", referenceID,
			"reference_type", referenceType,
		)
		return message, nil
	}

	var cancelled, created int
	err := s.store.WithinTx(ctx, func(ctx context.Context, store TaskStore) error {
		cancelled, created = 0, 0

		existing, err := store.FindByReference(ctx, referenceID, referenceType)
		if err != nil {
			return fmt.Errorf("find tasks by reference: %w", err)
		}

		for _, kind := range kinds {
			for _, task := range existing {
				if task.Kind != kind || task.IsCompleted() {
					continue
				}
				task.Status = domain.TaskStatusCancelled
				task.AddActivity(activityCancelled, s.now())
				if _, err := store.Save(ctx, task); err != nil {
					return fmt.Errorf("cancel task %s: %w", task.ID, err)
				}
				cancelled++
			}

			task := &domain.Task{
				ReferenceID:   referenceID,
				ReferenceType: referenceType,
				Kind:          kind,
				AssigneeID:    assigneeID,
				Status:        domain.TaskStatusAssigned,
				Description:   reassignedDescription,
			}
			task.AddActivity("Assigned to user "+strconv.FormatInt(assigneeID, 10), s.now())
			if _, err := store.Save(ctx, task); err != nil {
				return fmt.Errorf("create %s task: %w", kind, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.metrics.TasksCancelled(cancelled)
	s.metrics.TasksCreated(metrics.SourceReassign, created)

	slog.Info("tasks reassigned",
		"reference_id", referenceID,
		"reference_type", referenceType,
		"assignee_id", assigneeID,
		"cancelled", cancelled,
		"created", created,
	)

	return message, nil
}

// UpdatePriority sets a task's priority.
func (s *TaskService) UpdatePriority(ctx context.Context, taskID string, priority domain.Priority) error {
	if err := validatePriority(priority); err != nil {
		return err
	}

	_, err := s.mutateTask(ctx, taskID, func(task *domain.Task) {
		task.Priority = priority
		task.AddActivity("Priority changed to "+string(priority), s.now())
	})
	if err != nil {
		return err
	}
	s.metrics.TaskUpdated(metrics.FieldPriority)

	slog.Info("task priority changed",
		"task_id", taskID,
		"priority", priority,
	)

	return nil
}

// AddComment appends a user comment to a task.
func (s *TaskService) AddComment(ctx context.Context, taskID string, userID int64, comment string) error {
	if err := validateComment(comment); err != nil {
		return err
	}

	_, err := s.mutateTask(ctx, taskID, func(task *domain.Task) {
		now := s.now()
		task.Comments = append(task.Comments, domain.TaskComment{
			UserID:    userID,
			Comment:   comment,
			Timestamp: now,
		})
		task.AddActivity("Comment added by user "+strconv.FormatInt(userID, 10), now)
	})
	if err != nil {
		return err
	}
	s.metrics.CommentAdded()

	slog.Info("task comment added",
		"task_id", taskID,
		"user_id", userID,
	)

	return nil
}
