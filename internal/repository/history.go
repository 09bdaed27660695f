package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mtlprog/workforcemgmt/internal/domain"
)

// loadHistory attaches activities and comments to tasks with one query per
// table, ordered by position.
func (r *TaskRepository) loadHistory(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Task, len(tasks))
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
		ids = append(ids, task.ID)
	}

	query, args, err := psql.
		Select("task_id", "description", "timestamp_ms").
		From("task_activities").
		Where(sq.Eq{"task_id": ids}).
		OrderBy("task_id", "position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build activities query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query activities: %w", err)
	}
	for rows.Next() {
		var taskID string
		var activity domain.TaskActivity
		if err := rows.Scan(&taskID, &activity.Description, &activity.Timestamp); err != nil {
			rows.Close()
			return fmt.Errorf("scan activity: %w", err)
		}
		task := byID[taskID]
		task.Activities = append(task.Activities, activity)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate activities: %w", err)
	}

	query, args, err = psql.
		Select("task_id", "user_id", "comment", "timestamp_ms").
		From("task_comments").
		Where(sq.Eq{"task_id": ids}).
		OrderBy("task_id", "position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build comments query: %w", err)
	}

	rows, err = r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var taskID string
		var comment domain.TaskComment
		if err := rows.Scan(&taskID, &comment.UserID, &comment.Comment, &comment.Timestamp); err != nil {
			return fmt.Errorf("scan comment: %w", err)
		}
		task := byID[taskID]
		task.Comments = append(task.Comments, comment)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate comments: %w", err)
	}
	return nil
}

// appendHistory inserts the activities and comments past the persisted
// count. Fewer entries than already stored means history was dropped.
func appendHistory(ctx context.Context, tx pgx.Tx, task *domain.Task) error {
	var storedActivities, storedComments int
	err := tx.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM task_activities WHERE task_id = $1),
			(SELECT COUNT(*) FROM task_comments WHERE task_id = $1)`,
		task.ID,
	).Scan(&storedActivities, &storedComments)
	if err != nil {
		return fmt.Errorf("count history of task %s: %w", task.ID, err)
	}

	if len(task.Activities) < storedActivities {
		return fmt.Errorf("%w: activities of task %s", domain.ErrHistoryTruncated, task.ID)
	}
	if len(task.Comments) < storedComments {
		return fmt.Errorf("%w: comments of task %s", domain.ErrHistoryTruncated, task.ID)
	}

	if pending := task.Activities[storedActivities:]; len(pending) > 0 {
		insert := psql.Insert("task_activities").
			Columns("task_id", "position", "description", "timestamp_ms")
		for i, activity := range pending {
			insert = insert.Values(task.ID, storedActivities+i, activity.Description, activity.Timestamp)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert query for activities: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert activities of task %s: %w", task.ID, err)
		}
	}

	if pending := task.Comments[storedComments:]; len(pending) > 0 {
		insert := psql.Insert("task_comments").
			Columns("task_id", "position", "user_id", "comment", "timestamp_ms")
		for i, comment := range pending {
			insert = insert.Values(task.ID, storedComments+i, comment.UserID, comment.Comment, comment.Timestamp)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert query for comments: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert comments of task %s: %w", task.ID, err)
		}
	}
	return nil
}
