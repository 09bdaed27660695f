package handler

import (
	"net/http"

	"github.com/mtlprog/workforcemgmt/internal/domain"
	"github.com/mtlprog/workforcemgmt/internal/handler/dto"
	"github.com/mtlprog/workforcemgmt/internal/service"
)

// handleCreateTasks creates a batch of tasks.
// @Summary Create tasks
// @Description Creates one ASSIGNED task per request item. Items fail independently.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTasksRequest true "Task creation batch"
// @Success 201 {array} dto.BatchItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /tasks [post]
func (h *Handler) handleCreateTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CreateTasksRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items := make([]service.CreateTaskParams, len(req.Requests))
	for i, item := range req.Requests {
		items[i] = service.CreateTaskParams{
			ReferenceID:   item.ReferenceID,
			ReferenceType: domain.ReferenceType(item.ReferenceType),
			Kind:          domain.TaskKind(item.Kind),
			AssigneeID:    item.AssigneeID,
			Priority:      domain.Priority(item.Priority),
			Deadline:      item.Deadline,
		}
	}

	results := h.taskService.CreateTasks(ctx, items)
	respondJSON(w, http.StatusCreated, toBatchResponse(results))
}

// handleUpdateTasks applies a batch of status and description changes.
// @Summary Update tasks
// @Description Updates status and/or description per item. A status change is recorded in the task activity log.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.UpdateTasksRequest true "Task update batch"
// @Success 200 {array} dto.BatchItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /tasks [patch]
func (h *Handler) handleUpdateTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.UpdateTasksRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items := make([]service.UpdateTaskParams, len(req.Requests))
	for i, item := range req.Requests {
		p := service.UpdateTaskParams{
			TaskID:      item.TaskID,
			Description: item.Description,
		}
		if item.Status != nil {
			status := domain.TaskStatus(*item.Status)
			p.Status = &status
		}
		items[i] = p
	}

	results := h.taskService.UpdateTasks(ctx, items)
	respondJSON(w, http.StatusOK, toBatchResponse(results))
}

// handleGetTasksByPriority lists tasks of one priority.
// @Summary List tasks by priority
// @Tags tasks
// @Produce json
// @Param priority query string true "Priority (HIGH, MEDIUM, LOW)"
// @Success 200 {array} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks [get]
func (h *Handler) handleGetTasksByPriority(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	priority := r.URL.Query().Get("priority")
	if priority == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "priority query parameter is required")
		return
	}

	tasks, err := h.taskService.GetTasksByPriority(ctx, domain.Priority(priority))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponses(tasks))
}

// handleGetTask retrieves a task with its activities and comments.
// @Summary Get task details
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.FindTaskByID(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleAssignByReference moves all open work of a reference to a new assignee.
// @Summary Reassign a reference
// @Description Cancels every open task of each applicable kind and creates fresh tasks for the new assignee. Completed tasks are kept.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.AssignByReferenceRequest true "Reassignment request"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /tasks/assign-by-ref [post]
func (h *Handler) handleAssignByReference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.AssignByReferenceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.taskService.AssignByReference(ctx,
		req.ReferenceID,
		domain.ReferenceType(req.ReferenceType),
		req.AssigneeID,
	)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.MessageResponse{Message: message})
}

// handleFetchByDate lists the assignees' tasks due in a window, plus open overdue tasks.
// @Summary Fetch tasks by date
// @Description Returns non-cancelled tasks due within [start_date, end_date] and open tasks due before start_date. An inverted window yields only the overdue open tasks.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.FetchByDateRequest true "Date window and assignees"
// @Success 200 {array} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /tasks/fetch-by-date [post]
func (h *Handler) handleFetchByDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.FetchByDateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tasks, err := h.taskService.FetchTasksByDate(ctx, req.AssigneeIDs, req.StartDate, req.EndDate)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponses(tasks))
}

// handleUpdatePriority changes a task's priority.
// @Summary Update task priority
// @Tags tasks
// @Accept json
// @Param id path string true "Task ID"
// @Param request body dto.UpdatePriorityRequest true "New priority"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks/{id}/priority [patch]
func (h *Handler) handleUpdatePriority(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePriorityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.taskService.UpdatePriority(ctx, taskID, domain.Priority(req.Priority)); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleCommentTask adds a comment to a task.
// @Summary Add comment to task
// @Tags tasks
// @Accept json
// @Param id path string true "Task ID"
// @Param request body dto.CommentTaskRequest true "Comment"
// @Success 201
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks/{id}/comments [post]
func (h *Handler) handleCommentTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	var req dto.CommentTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.taskService.AddComment(ctx, taskID, req.UserID, req.Comment); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// toBatchResponse converts per-item service results, keeping their order.
func toBatchResponse(results []service.BatchResult) []dto.BatchItemResponse {
	resp := make([]dto.BatchItemResponse, len(results))
	for i, result := range results {
		if result.Err != nil {
			_, code, message := dto.MapDomainError(result.Err)
			detail := dto.NewErrorDetail(code, message)
			resp[i] = dto.BatchItemResponse{Error: &detail}
			continue
		}
		task := dto.ToTaskResponse(result.Task)
		resp[i] = dto.BatchItemResponse{Task: &task}
	}
	return resp
}
