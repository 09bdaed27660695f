package dto

// CreateTaskItem is one element of the POST /tasks batch.
type CreateTaskItem struct {
	ReferenceID   int64  `json:"reference_id"`
	ReferenceType string `json:"reference_type"`
	Kind          string `json:"task"`
	AssigneeID    int64  `json:"assignee_id"`
	Priority      string `json:"priority,omitempty"`
	Deadline      int64  `json:"task_deadline_time"`
}

// CreateTasksRequest represents the request body for POST /tasks.
type CreateTasksRequest struct {
	Requests []CreateTaskItem `json:"requests"`
}

// UpdateTaskItem is one element of the PATCH /tasks batch.
// Omitted fields are left unchanged.
type UpdateTaskItem struct {
	TaskID      string  `json:"task_id"`
	Status      *string `json:"task_status,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateTasksRequest represents the request body for PATCH /tasks.
type UpdateTasksRequest struct {
	Requests []UpdateTaskItem `json:"requests"`
}

// AssignByReferenceRequest represents the request body for POST /tasks/assign-by-ref.
type AssignByReferenceRequest struct {
	ReferenceID   int64  `json:"reference_id"`
	ReferenceType string `json:"reference_type"`
	AssigneeID    int64  `json:"assignee_id"`
}

// FetchByDateRequest represents the request body for POST /tasks/fetch-by-date.
type FetchByDateRequest struct {
	StartDate   int64   `json:"start_date"`
	EndDate     int64   `json:"end_date"`
	AssigneeIDs []int64 `json:"assignee_ids"`
}

// UpdatePriorityRequest represents the request body for PATCH /tasks/:id/priority.
type UpdatePriorityRequest struct {
	Priority string `json:"priority"`
}

// CommentTaskRequest represents the request body for POST /tasks/:id/comments.
type CommentTaskRequest struct {
	UserID  int64  `json:"user_id"`
	Comment string `json:"comment"`
}
