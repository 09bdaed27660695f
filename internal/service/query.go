package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mtlprog/workforcemgmt/internal/domain"
)

// FindTaskByID returns a single task or an error wrapping domain.ErrTaskNotFound.
func (s *TaskService) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.getTask(ctx, s.store, taskID)
}

// GetTasksByPriority returns all tasks with the given priority in store order.
func (s *TaskService) GetTasksByPriority(ctx context.Context, priority domain.Priority) ([]*domain.Task, error) {
	if err := validatePriority(priority); err != nil {
		return nil, err
	}

	tasks, err := s.store.FindByPriority(ctx, priority)
	if err != nil {
		return nil, fmt.Errorf("find tasks by priority: %w", err)
	}
	return tasks, nil
}

// FetchTasksByDate returns the tasks of the given assignees that fall into
// the [start, end] window, including overdue tasks that are still open.
// Store order is preserved.
func (s *TaskService) FetchTasksByDate(ctx context.Context, assigneeIDs []int64, start, end int64) ([]*domain.Task, error) {
	if len(assigneeIDs) == 0 {
		return []*domain.Task{}, nil
	}

	tasks, err := s.store.FindByAssigneeIDs(ctx, assigneeIDs)
	if err != nil {
		return nil, fmt.Errorf("find tasks by assignees: %w", err)
	}

	filtered := make([]*domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if InDateWindow(task, start, end) {
			filtered = append(filtered, task)
		}
	}

	slog.Debug("fetched tasks by date",
		"assignees", len(assigneeIDs),
		"before_filter", len(tasks),
		"after_filter", len(filtered),
	)
	s.metrics.FetchedByDate(len(filtered))

	return filtered, nil
}
