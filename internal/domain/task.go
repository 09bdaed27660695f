package domain

// TaskStatus represents the workflow status of a task.
type TaskStatus string

const (
	TaskStatusAssigned  TaskStatus = "ASSIGNED"
	TaskStatusStarted   TaskStatus = "STARTED"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusCancelled TaskStatus = "CANCELLED"
)

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusAssigned, TaskStatusStarted, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// Priority represents the priority level of a task.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// IsValid checks if the priority is one of the allowed values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// TaskActivity is an immutable audit log line. Timestamp is epoch millis.
type TaskActivity struct {
	Description string
	Timestamp   int64
}

// TaskComment is a user comment left on a task. Timestamp is epoch millis.
type TaskComment struct {
	UserID    int64
	Comment   string
	Timestamp int64
}

// Task is a unit of work attached to an external business reference.
type Task struct {
	ID            string
	ReferenceID   int64
	ReferenceType ReferenceType
	Kind          TaskKind
	Description   string
	Status        TaskStatus
	AssigneeID    int64
	Deadline      int64 // epoch millis
	Priority      Priority
	Activities    []TaskActivity
	Comments      []TaskComment

	// Version counts successful saves. Stores refuse a save whose Version
	// differs from the stored one.
	Version int64
}

// IsCompleted returns true if the task reached COMPLETED.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// IsCancelled returns true if the task was cancelled.
func (t *Task) IsCancelled() bool {
	return t.Status == TaskStatusCancelled
}

// AddActivity appends an audit entry.
func (t *Task) AddActivity(description string, timestamp int64) {
	t.Activities = append(t.Activities, TaskActivity{Description: description, Timestamp: timestamp})
}

// Clone returns a deep copy so callers can mutate it without aliasing the
// activity and comment slices of the original.
func (t *Task) Clone() *Task {
	c := *t
	c.Activities = append([]TaskActivity(nil), t.Activities...)
	c.Comments = append([]TaskComment(nil), t.Comments...)
	return &c
}
