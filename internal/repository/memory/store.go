// Package memory provides an in-process TaskStore. Tasks are kept in
// insertion order, which is the natural order of every query. Callers always
// receive copies, so mutating a returned task never changes stored state
// until it is saved.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/mtlprog/workforcemgmt/internal/domain"
	"github.com/mtlprog/workforcemgmt/internal/service"
)

// Store is a mutex-guarded in-memory task store.
type Store struct {
	mu    sync.Mutex
	state *state
}

var (
	_ service.TaskStore = (*Store)(nil)
	_ service.TaskStore = (*txStore)(nil)
)

// New creates an empty Store.
func New() *Store {
	return &Store{state: newState()}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// FindByID retrieves a task by ID.
func (s *Store) FindByID(_ context.Context, id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.findByID(id)
}

// Save inserts or updates a task.
func (s *Store) Save(_ context.Context, task *domain.Task) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.save(task)
}

// FindByReference retrieves all tasks attached to a reference.
func (s *Store) FindByReference(_ context.Context, referenceID int64, referenceType domain.ReferenceType) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.filter(func(t *domain.Task) bool {
		return t.ReferenceID == referenceID && t.ReferenceType == referenceType
	}), nil
}

// FindByAssigneeIDs retrieves all tasks assigned to any of the given users.
func (s *Store) FindByAssigneeIDs(_ context.Context, assigneeIDs []int64) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.filter(func(t *domain.Task) bool {
		return slices.Contains(assigneeIDs, t.AssigneeID)
	}), nil
}

// FindByPriority retrieves all tasks with the given priority.
func (s *Store) FindByPriority(_ context.Context, priority domain.Priority) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.filter(func(t *domain.Task) bool {
		return t.Priority == priority
	}), nil
}

// WithinTx runs fn against a snapshot of the store and publishes the snapshot
// only if fn succeeds. The store is locked for the duration of fn, so fn must
// use the store it is given rather than s.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, store service.TaskStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txStore{state: s.state.clone()}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// txStore operates on a private snapshot without locking.
type txStore struct {
	state *state
}

func (t *txStore) FindByID(_ context.Context, id string) (*domain.Task, error) {
	return t.state.findByID(id)
}

func (t *txStore) Save(_ context.Context, task *domain.Task) (*domain.Task, error) {
	return t.state.save(task)
}

func (t *txStore) FindByReference(_ context.Context, referenceID int64, referenceType domain.ReferenceType) ([]*domain.Task, error) {
	return t.state.filter(func(task *domain.Task) bool {
		return task.ReferenceID == referenceID && task.ReferenceType == referenceType
	}), nil
}

func (t *txStore) FindByAssigneeIDs(_ context.Context, assigneeIDs []int64) ([]*domain.Task, error) {
	return t.state.filter(func(task *domain.Task) bool {
		return slices.Contains(assigneeIDs, task.AssigneeID)
	}), nil
}

func (t *txStore) FindByPriority(_ context.Context, priority domain.Priority) ([]*domain.Task, error) {
	return t.state.filter(func(task *domain.Task) bool {
		return task.Priority == priority
	}), nil
}

// WithinTx nests by snapshotting the enclosing transaction.
func (t *txStore) WithinTx(ctx context.Context, fn func(ctx context.Context, store service.TaskStore) error) error {
	child := &txStore{state: t.state.clone()}
	if err := fn(ctx, child); err != nil {
		return err
	}
	t.state = child.state
	return nil
}

type state struct {
	tasks map[string]*domain.Task
	order []string
}

func newState() *state {
	return &state{tasks: make(map[string]*domain.Task)}
}

// clone copies the index; tasks themselves are replaced, never mutated, on save.
func (st *state) clone() *state {
	tasks := make(map[string]*domain.Task, len(st.tasks))
	for id, task := range st.tasks {
		tasks[id] = task
	}
	return &state{tasks: tasks, order: slices.Clone(st.order)}
}

func (st *state) findByID(id string) (*domain.Task, error) {
	task, ok := st.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task.Clone(), nil
}

func (st *state) filter(match func(*domain.Task) bool) []*domain.Task {
	tasks := []*domain.Task{}
	for _, id := range st.order {
		if task := st.tasks[id]; match(task) {
			tasks = append(tasks, task.Clone())
		}
	}
	return tasks
}

func (st *state) save(task *domain.Task) (*domain.Task, error) {
	stored := task.Clone()

	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	existing, ok := st.tasks[stored.ID]
	if ok {
		if stored.Version != existing.Version {
			return nil, fmt.Errorf("%w: task %s saved at version %d, stored version is %d",
				domain.ErrConcurrentUpdate, existing.ID, stored.Version, existing.Version)
		}
		if err := checkAppendOnly(existing, stored); err != nil {
			return nil, err
		}
	} else {
		st.order = append(st.order, stored.ID)
	}
	stored.Version++
	st.tasks[stored.ID] = stored

	task.ID = stored.ID
	return stored.Clone(), nil
}

// checkAppendOnly rejects updates that change a task's reference or rewrite
// any persisted activity or comment. Versions are already known to match.
func checkAppendOnly(existing, updated *domain.Task) error {
	if existing.ReferenceID != updated.ReferenceID ||
		existing.ReferenceType != updated.ReferenceType ||
		existing.Kind != updated.Kind {
		return fmt.Errorf("%w: task %s", domain.ErrIdentityChanged, existing.ID)
	}
	if len(updated.Activities) < len(existing.Activities) ||
		!slices.Equal(existing.Activities, updated.Activities[:len(existing.Activities)]) {
		return fmt.Errorf("%w: activities of task %s", domain.ErrHistoryTruncated, existing.ID)
	}
	if len(updated.Comments) < len(existing.Comments) ||
		!slices.Equal(existing.Comments, updated.Comments[:len(existing.Comments)]) {
		return fmt.Errorf("%w: comments of task %s", domain.ErrHistoryTruncated, existing.ID)
	}
	return nil
}
