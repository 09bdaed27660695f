package service

import "github.com/mtlprog/workforcemgmt/internal/domain"

// InDateWindow reports whether a task belongs in a [start, end] window query.
// Cancelled tasks never do. A task matches when its deadline falls inside the
// window (inclusive), or when it is overdue (deadline before start) and not
// completed. Tasks due after end never match.
func InDateWindow(task *domain.Task, start, end int64) bool {
	if task.IsCancelled() {
		return false
	}

	inRange := task.Deadline >= start && task.Deadline <= end
	carriedForward := task.Deadline < start && !task.IsCompleted()

	return inRange || carriedForward
}
