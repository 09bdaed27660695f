package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/workforcemgmt/internal/domain"
	"github.com/mtlprog/workforcemgmt/internal/service"
)

// taskColumns is the shared list of columns for task queries.
var taskColumns = []string{
	"id", "reference_id", "reference_type", "kind", "description",
	"status", "assignee_id", "deadline", "priority", "version",
}

var _ service.TaskStore = (*TaskRepository)(nil)

// TaskRepository handles database operations for tasks.
type TaskRepository struct {
	pool *pgxpool.Pool
	db   querier
	// locking is set inside WithinTx: reads lock the rows they return
	// until the transaction ends.
	locking bool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool, db: pool}
}

// Ping checks if the database is reachable.
func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// scanTask scans a single row into a Task struct.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.ReferenceID,
		&task.ReferenceType,
		&task.Kind,
		&task.Description,
		&task.Status,
		&task.AssigneeID,
		&task.Deadline,
		&task.Priority,
		&task.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &task, nil
}

// queryTasks runs a task select ordered by insertion and attaches history.
func (r *TaskRepository) queryTasks(ctx context.Context, where sq.Sqlizer) ([]*domain.Task, error) {
	builder := psql.
		Select(taskColumns...).
		From("tasks").
		Where(where).
		OrderBy("seq ASC")
	if r.locking {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tasks query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Task, error) {
		return scanTask(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect tasks: %w", err)
	}

	if err := r.loadHistory(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByID retrieves a task by ID.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	// A malformed id would abort an enclosing transaction.
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrTaskNotFound
	}

	tasks, err := r.queryTasks(ctx, sq.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return tasks[0], nil
}

// FindByReference retrieves all tasks attached to a reference. Inside a
// transaction it also takes an advisory lock on the reference, so concurrent
// reassignments of one reference run one after another even when it has no
// tasks yet.
func (r *TaskRepository) FindByReference(ctx context.Context, referenceID int64, referenceType domain.ReferenceType) ([]*domain.Task, error) {
	if r.locking {
		_, err := r.db.Exec(ctx,
			"SELECT pg_advisory_xact_lock(hashtextextended($1, 0))",
			fmt.Sprintf("%s:%d", referenceType, referenceID),
		)
		if err != nil {
			return nil, fmt.Errorf("lock reference %s %d: %w", referenceType, referenceID, err)
		}
	}

	return r.queryTasks(ctx, sq.Eq{
		"reference_id":   referenceID,
		"reference_type": referenceType,
	})
}

// FindByAssigneeIDs retrieves all tasks assigned to any of the given users.
func (r *TaskRepository) FindByAssigneeIDs(ctx context.Context, assigneeIDs []int64) ([]*domain.Task, error) {
	if len(assigneeIDs) == 0 {
		return []*domain.Task{}, nil
	}
	return r.queryTasks(ctx, sq.Eq{"assignee_id": assigneeIDs})
}

// FindByPriority retrieves all tasks with the given priority.
func (r *TaskRepository) FindByPriority(ctx context.Context, priority domain.Priority) ([]*domain.Task, error) {
	return r.queryTasks(ctx, sq.Eq{"priority": priority})
}

// Save upserts the task row and appends any activities and comments not yet
// persisted, all within one transaction.
func (r *TaskRepository) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	saved := task.Clone()
	if saved.ID == "" {
		if err := insertTask(ctx, tx, saved); err != nil {
			return nil, err
		}
	} else if err := updateTask(ctx, tx, saved); err != nil {
		return nil, err
	}

	if err := appendHistory(ctx, tx, saved); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	task.ID = saved.ID
	return saved, nil
}

// WithinTx runs fn against a repository bound to a single transaction whose
// reads lock what they return.
func (r *TaskRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, store service.TaskStore) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	if err := fn(ctx, &TaskRepository{pool: r.pool, db: tx, locking: true}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// insertTask creates the task row and populates task.ID.
func insertTask(ctx context.Context, tx pgx.Tx, task *domain.Task) error {
	query, args, err := psql.
		Insert("tasks").
		Columns(
			"reference_id", "reference_type", "kind", "description",
			"status", "assignee_id", "deadline", "priority",
		).
		Values(
			task.ReferenceID,
			task.ReferenceType,
			task.Kind,
			task.Description,
			task.Status,
			task.AssigneeID,
			task.Deadline,
			task.Priority,
		).
		Suffix("RETURNING id, version").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query for task: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&task.ID, &task.Version); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// updateTask updates the mutable columns of an existing task and bumps its
// version. Only a row still at task.Version with the same reference matches;
// when none does, the reason is looked up.
func updateTask(ctx context.Context, tx pgx.Tx, task *domain.Task) error {
	query, args, err := psql.
		Update("tasks").
		Set("description", task.Description).
		Set("status", task.Status).
		Set("assignee_id", task.AssigneeID).
		Set("deadline", task.Deadline).
		Set("priority", task.Priority).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":             task.ID,
			"reference_id":   task.ReferenceID,
			"reference_type": task.ReferenceType,
			"kind":           task.Kind,
			"version":        task.Version,
		}).
		Suffix("RETURNING version").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query for task %s: %w", task.ID, err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&task.Version)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update task %s: %w", task.ID, err)
	}

	current, err := scanTask(tx.QueryRow(ctx,
		"SELECT "+strings.Join(taskColumns, ", ")+" FROM tasks WHERE id = $1",
		task.ID,
	))
	if err != nil {
		return err
	}
	if current.ReferenceID != task.ReferenceID ||
		current.ReferenceType != task.ReferenceType ||
		current.Kind != task.Kind {
		return fmt.Errorf("%w: task %s", domain.ErrIdentityChanged, task.ID)
	}
	return fmt.Errorf("%w: task %s saved at version %d, stored version is %d",
		domain.ErrConcurrentUpdate, task.ID, task.Version, current.Version)
}
