package dto

import (
	"github.com/mtlprog/workforcemgmt/internal/domain"
)

// TaskResponse represents a task with its full history.
type TaskResponse struct {
	ID            string             `json:"id"`
	ReferenceID   int64              `json:"reference_id"`
	ReferenceType string             `json:"reference_type"`
	Kind          string             `json:"task"`
	Description   string             `json:"description"`
	Status        string             `json:"status"`
	AssigneeID    int64              `json:"assignee_id"`
	Deadline      int64              `json:"task_deadline_time"`
	Priority      string             `json:"priority"`
	Activities    []ActivityResponse `json:"activities"`
	Comments      []CommentResponse  `json:"comments"`
}

// ActivityResponse represents one audit log entry.
type ActivityResponse struct {
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"`
}

// CommentResponse represents one user comment.
type CommentResponse struct {
	UserID    int64  `json:"user_id"`
	Comment   string `json:"comment"`
	Timestamp int64  `json:"timestamp"`
}

// BatchItemResponse is the outcome of one batch item. Exactly one of Task
// and Error is set.
type BatchItemResponse struct {
	Task  *TaskResponse `json:"task,omitempty"`
	Error *ErrorDetail  `json:"error,omitempty"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// CatalogResponse maps each reference type to the task kinds it requires.
type CatalogResponse struct {
	ReferenceTypes map[string][]string `json:"reference_types"`
}

// ToTaskResponse converts domain.Task to TaskResponse.
func ToTaskResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:            task.ID,
		ReferenceID:   task.ReferenceID,
		ReferenceType: string(task.ReferenceType),
		Kind:          string(task.Kind),
		Description:   task.Description,
		Status:        string(task.Status),
		AssigneeID:    task.AssigneeID,
		Deadline:      task.Deadline,
		Priority:      string(task.Priority),
		Activities:    make([]ActivityResponse, len(task.Activities)),
		Comments:      make([]CommentResponse, len(task.Comments)),
	}

	for i, a := range task.Activities {
		resp.Activities[i] = ActivityResponse{Description: a.Description, Timestamp: a.Timestamp}
	}
	for i, c := range task.Comments {
		resp.Comments[i] = CommentResponse{UserID: c.UserID, Comment: c.Comment, Timestamp: c.Timestamp}
	}

	return resp
}

// ToTaskResponses converts a task list, always returning a non-nil slice.
func ToTaskResponses(tasks []*domain.Task) []TaskResponse {
	resp := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		resp[i] = ToTaskResponse(task)
	}
	return resp
}
