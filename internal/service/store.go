package service

import (
	"context"
	"time"

	"github.com/mtlprog/workforcemgmt/internal/domain"
)

// TaskStore persists tasks. Implementations must return domain.ErrTaskNotFound
// from FindByID for unknown ids and must reject a Save that would shrink a
// task's activity or comment history.
type TaskStore interface {
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// Save inserts the task when ID is empty (assigning one) and updates it otherwise.
	Save(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByReference(ctx context.Context, referenceID int64, referenceType domain.ReferenceType) ([]*domain.Task, error)
	FindByAssigneeIDs(ctx context.Context, assigneeIDs []int64) ([]*domain.Task, error)
	FindByPriority(ctx context.Context, priority domain.Priority) ([]*domain.Task, error)
	// WithinTx runs fn against a store whose writes commit together when fn
	// returns nil and are discarded otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, store TaskStore) error) error
}

// Catalog resolves the task kinds required for a reference type.
type Catalog interface {
	KindsFor(referenceType domain.ReferenceType) []domain.TaskKind
}

// Clock returns the current time.
type Clock func() time.Time
