package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/workforcemgmt/internal/domain"
	"github.com/mtlprog/workforcemgmt/internal/repository/memory"
	"github.com/mtlprog/workforcemgmt/internal/service"
)

func newTask(assignee int64) *domain.Task {
	t := &domain.Task{
		ReferenceID:   1,
		ReferenceType: domain.ReferenceTypeOrder,
		Kind:          domain.TaskKindCreateInvoice,
		Status:        domain.TaskStatusAssigned,
		AssigneeID:    assignee,
		Priority:      domain.PriorityHigh,
	}
	t.AddActivity("Created", 1)
	return t
}

func TestSave_AssignsIDAndCopies(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	task := newTask(1)
	saved, err := store.Save(ctx, task)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	assert.Equal(t, saved.ID, task.ID)

	saved.Description = "mutated"
	found, err := store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Description)
}

func TestFindByID_NotFound(t *testing.T) {
	_, err := memory.New().FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestSave_RejectsHistoryRewrite(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	saved, err := store.Save(ctx, newTask(1))
	require.NoError(t, err)

	truncated := saved.Clone()
	truncated.Activities = nil
	_, err = store.Save(ctx, truncated)
	assert.ErrorIs(t, err, domain.ErrHistoryTruncated)

	rewritten := saved.Clone()
	rewritten.Activities[0].Description = "Edited"
	_, err = store.Save(ctx, rewritten)
	assert.ErrorIs(t, err, domain.ErrHistoryTruncated)

	moved := saved.Clone()
	moved.ReferenceID = 2
	_, err = store.Save(ctx, moved)
	assert.ErrorIs(t, err, domain.ErrIdentityChanged)
}

func TestQueries_PreserveInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	var ids []string
	for _, assignee := range []int64{3, 1, 2, 1} {
		saved, err := store.Save(ctx, newTask(assignee))
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}

	tasks, err := store.FindByAssigneeIDs(ctx, []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{ids[1], ids[2], ids[3]}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})

	byRef, err := store.FindByReference(ctx, 1, domain.ReferenceTypeOrder)
	require.NoError(t, err)
	assert.Len(t, byRef, 4)

	none, err := store.FindByPriority(ctx, domain.PriorityLow)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context, tx service.TaskStore) error {
		if _, err := tx.Save(ctx, newTask(1)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	tasks, err := store.FindByAssigneeIDs(ctx, []int64{1})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	err := store.WithinTx(ctx, func(ctx context.Context, tx service.TaskStore) error {
		saved, err := tx.Save(ctx, newTask(1))
		if err != nil {
			return err
		}
		saved.Status = domain.TaskStatusCancelled
		_, err = tx.Save(ctx, saved)
		return err
	})
	require.NoError(t, err)

	tasks, err := store.FindByAssigneeIDs(ctx, []int64{1})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.TaskStatusCancelled, tasks[0].Status)
}

func TestSave_RejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	saved, err := store.Save(ctx, newTask(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)

	first, err := store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	second, err := store.FindByID(ctx, saved.ID)
	require.NoError(t, err)

	first.Priority = domain.PriorityLow
	first.AddActivity("Priority changed to LOW", 2)
	updated, err := store.Save(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	second.AddActivity("Comment added by user 4", 3)
	_, err = store.Save(ctx, second)
	require.ErrorIs(t, err, domain.ErrConcurrentUpdate)
	assert.NotErrorIs(t, err, domain.ErrHistoryTruncated)

	found, err := store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, found.Priority)
	require.Len(t, found.Activities, 2)
	assert.Equal(t, "Priority changed to LOW", found.Activities[1].Description)
}
