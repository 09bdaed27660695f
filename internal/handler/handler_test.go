package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/workforcemgmt/internal/catalog"
	"github.com/mtlprog/workforcemgmt/internal/domain"
	"github.com/mtlprog/workforcemgmt/internal/handler"
	"github.com/mtlprog/workforcemgmt/internal/handler/dto"
	"github.com/mtlprog/workforcemgmt/internal/metrics"
	"github.com/mtlprog/workforcemgmt/internal/repository/memory"
	"github.com/mtlprog/workforcemgmt/internal/service"
)

const fixedNow int64 = 1_700_000_000_000

type HandlerTestSuite struct {
	suite.Suite
	store *memory.Store
	mux   *http.ServeMux
}

func (s *HandlerTestSuite) SetupTest() {
	s.store = memory.New()
	s.mux = s.newMux(s.store)
}

func (s *HandlerTestSuite) newMux(pinger handler.Pinger) *http.ServeMux {
	registry := prometheus.NewRegistry()
	cat := catalog.Default()
	clock := func() time.Time { return time.UnixMilli(fixedNow) }

	taskService := service.NewTaskService(s.store, cat, metrics.New(registry), clock)
	mux := http.NewServeMux()
	handler.New(taskService, cat, pinger, registry).RegisterRoutes(mux)
	return mux
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// Helper to make a JSON request
func (s *HandlerTestSuite) makeRequest(method, path string, body interface{}) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.NewDecoder(w.Body).Decode(v))
}

func (s *HandlerTestSuite) createTask(item dto.CreateTaskItem) dto.TaskResponse {
	w := s.makeRequest("POST", "/api/v1/tasks", dto.CreateTasksRequest{Requests: []dto.CreateTaskItem{item}})
	s.Require().Equal(http.StatusCreated, w.Code)

	var resp []dto.BatchItemResponse
	s.decode(w, &resp)
	s.Require().Len(resp, 1)
	s.Require().NotNil(resp[0].Task, "create failed: %+v", resp[0].Error)
	return *resp[0].Task
}

func orderTask(referenceID, assigneeID int64, kind domain.TaskKind, deadline int64) dto.CreateTaskItem {
	return dto.CreateTaskItem{
		ReferenceID:   referenceID,
		ReferenceType: string(domain.ReferenceTypeOrder),
		Kind:          string(kind),
		AssigneeID:    assigneeID,
		Priority:      string(domain.PriorityMedium),
		Deadline:      deadline,
	}
}

func (s *HandlerTestSuite) TestHealthz() {
	w := s.makeRequest("GET", "/healthz", nil)
	s.Equal(http.StatusOK, w.Code)
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("connection refused") }

func (s *HandlerTestSuite) TestHealthz_StoreDown() {
	s.mux = s.newMux(downPinger{})

	w := s.makeRequest("GET", "/healthz", nil)
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *HandlerTestSuite) TestCreateTasks_PartialFailure() {
	req := dto.CreateTasksRequest{Requests: []dto.CreateTaskItem{
		orderTask(1, 7, domain.TaskKindCreateInvoice, fixedNow),
		{ReferenceID: 1, ReferenceType: "INVOICE", Kind: string(domain.TaskKindCreateInvoice), AssigneeID: 7},
	}}

	w := s.makeRequest("POST", "/api/v1/tasks", req)
	s.Equal(http.StatusCreated, w.Code)

	var resp []dto.BatchItemResponse
	s.decode(w, &resp)
	s.Require().Len(resp, 2)

	s.Require().NotNil(resp[0].Task)
	s.Nil(resp[0].Error)
	s.Equal(string(domain.TaskStatusAssigned), resp[0].Task.Status)
	s.Equal("New task created.", resp[0].Task.Description)
	s.Require().Len(resp[0].Task.Activities, 1)
	s.Equal("Created", resp[0].Task.Activities[0].Description)
	s.Equal(fixedNow, resp[0].Task.Activities[0].Timestamp)
	s.NotNil(resp[0].Task.Comments)

	s.Nil(resp[1].Task)
	s.Require().NotNil(resp[1].Error)
	s.Equal("VALIDATION_ERROR", resp[1].Error.Code)
}

func (s *HandlerTestSuite) TestCreateTasks_InvalidJSON() {
	req := httptest.NewRequest("POST", "/api/v1/tasks", strings.NewReader("{"))
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)

	var errResp dto.ErrorResponse
	s.decode(w, &errResp)
	s.Equal("INVALID_JSON", errResp.Error.Code)
}

func (s *HandlerTestSuite) TestUpdateTasks() {
	task := s.createTask(orderTask(1, 7, domain.TaskKindCreateInvoice, fixedNow))

	status := string(domain.TaskStatusStarted)
	description := "Waiting on customer"
	req := dto.UpdateTasksRequest{Requests: []dto.UpdateTaskItem{
		{TaskID: task.ID, Status: &status, Description: &description},
		{TaskID: "00000000-0000-0000-0000-000000000099", Description: &description},
	}}

	w := s.makeRequest("PATCH", "/api/v1/tasks", req)
	s.Equal(http.StatusOK, w.Code)

	var resp []dto.BatchItemResponse
	s.decode(w, &resp)
	s.Require().Len(resp, 2)

	s.Require().NotNil(resp[0].Task)
	s.Equal(status, resp[0].Task.Status)
	s.Equal(description, resp[0].Task.Description)
	s.Require().Len(resp[0].Task.Activities, 2)
	s.Equal("Status changed to STARTED", resp[0].Task.Activities[1].Description)

	s.Require().NotNil(resp[1].Error)
	s.Equal("TASK_NOT_FOUND", resp[1].Error.Code)
	s.Equal("task not found with id: 00000000-0000-0000-0000-000000000099", resp[1].Error.Message)
}

func (s *HandlerTestSuite) TestGetTask() {
	task := s.createTask(orderTask(1, 7, domain.TaskKindArrangePickup, fixedNow))

	w := s.makeRequest("GET", "/api/v1/tasks/"+task.ID, nil)
	s.Equal(http.StatusOK, w.Code)

	var resp dto.TaskResponse
	s.decode(w, &resp)
	s.Equal(task.ID, resp.ID)
	s.Equal(string(domain.TaskKindArrangePickup), resp.Kind)
}

func (s *HandlerTestSuite) TestGetTask_NotFound() {
	w := s.makeRequest("GET", "/api/v1/tasks/00000000-0000-0000-0000-000000000001", nil)
	s.Equal(http.StatusNotFound, w.Code)

	var errResp dto.ErrorResponse
	s.decode(w, &errResp)
	s.Equal("TASK_NOT_FOUND", errResp.Error.Code)
}

func (s *HandlerTestSuite) TestGetTask_InvalidID() {
	w := s.makeRequest("GET", "/api/v1/tasks/not-a-uuid", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestAssignByReference() {
	completed := s.createTask(orderTask(42, 1, domain.TaskKindCollectPayment, fixedNow))
	status := string(domain.TaskStatusCompleted)
	w := s.makeRequest("PATCH", "/api/v1/tasks", dto.UpdateTasksRequest{Requests: []dto.UpdateTaskItem{
		{TaskID: completed.ID, Status: &status},
	}})
	s.Require().Equal(http.StatusOK, w.Code)
	open := s.createTask(orderTask(42, 1, domain.TaskKindCreateInvoice, fixedNow))

	w = s.makeRequest("POST", "/api/v1/tasks/assign-by-ref", dto.AssignByReferenceRequest{
		ReferenceID:   42,
		ReferenceType: string(domain.ReferenceTypeOrder),
		AssigneeID:    9,
	})
	s.Require().Equal(http.StatusOK, w.Code)

	var msg dto.MessageResponse
	s.decode(w, &msg)
	s.Equal("Tasks reassigned and old assignments cancelled for reference 42", msg.Message)

	w = s.makeRequest("GET", "/api/v1/tasks/"+open.ID, nil)
	var cancelled dto.TaskResponse
	s.decode(w, &cancelled)
	s.Equal(string(domain.TaskStatusCancelled), cancelled.Status)

	w = s.makeRequest("GET", "/api/v1/tasks/"+completed.ID, nil)
	var kept dto.TaskResponse
	s.decode(w, &kept)
	s.Equal(string(domain.TaskStatusCompleted), kept.Status)

	tasks, err := s.store.FindByAssigneeIDs(context.Background(), []int64{9})
	s.Require().NoError(err)
	s.Len(tasks, 3)
}

// Concurrent reassignments leave exactly one open task per kind.
func (s *HandlerTestSuite) TestAssignByReference_Concurrent() {
	var wg sync.WaitGroup
	codes := make(chan int, 4)

	for assignee := int64(1); assignee <= 4; assignee++ {
		wg.Add(1)
		go func(assignee int64) {
			defer wg.Done()
			w := s.makeRequest("POST", "/api/v1/tasks/assign-by-ref", dto.AssignByReferenceRequest{
				ReferenceID:   5,
				ReferenceType: string(domain.ReferenceTypeOrder),
				AssigneeID:    assignee,
			})
			codes <- w.Code
		}(assignee)
	}

	wg.Wait()
	close(codes)

	for code := range codes {
		s.Equal(http.StatusOK, code)
	}

	tasks, err := s.store.FindByReference(context.Background(), 5, domain.ReferenceTypeOrder)
	s.Require().NoError(err)
	s.Len(tasks, 12)

	open := map[domain.TaskKind]int{}
	for _, task := range tasks {
		if !task.IsCancelled() {
			open[task.Kind]++
		}
	}
	s.Equal(map[domain.TaskKind]int{
		domain.TaskKindCreateInvoice:  1,
		domain.TaskKindArrangePickup:  1,
		domain.TaskKindCollectPayment: 1,
	}, open)
}

func (s *HandlerTestSuite) TestFetchByDate() {
	inWindow := s.createTask(orderTask(1, 7, domain.TaskKindCreateInvoice, 150))
	overdue := s.createTask(orderTask(2, 7, domain.TaskKindCreateInvoice, 50))
	s.createTask(orderTask(3, 7, domain.TaskKindCreateInvoice, 500))
	s.createTask(orderTask(4, 8, domain.TaskKindCreateInvoice, 150))

	w := s.makeRequest("POST", "/api/v1/tasks/fetch-by-date", dto.FetchByDateRequest{
		StartDate:   100,
		EndDate:     200,
		AssigneeIDs: []int64{7},
	})
	s.Require().Equal(http.StatusOK, w.Code)

	var tasks []dto.TaskResponse
	s.decode(w, &tasks)
	s.Require().Len(tasks, 2)
	s.Equal(inWindow.ID, tasks[0].ID)
	s.Equal(overdue.ID, tasks[1].ID)
}

// An inverted window matches no deadline, so only open overdue tasks come back.
func (s *HandlerTestSuite) TestFetchByDate_InvertedWindow() {
	overdue := s.createTask(orderTask(1, 7, domain.TaskKindCreateInvoice, 150))
	s.createTask(orderTask(2, 7, domain.TaskKindCreateInvoice, 250))

	w := s.makeRequest("POST", "/api/v1/tasks/fetch-by-date", dto.FetchByDateRequest{
		StartDate:   200,
		EndDate:     100,
		AssigneeIDs: []int64{7},
	})
	s.Require().Equal(http.StatusOK, w.Code)

	var tasks []dto.TaskResponse
	s.decode(w, &tasks)
	s.Require().Len(tasks, 1)
	s.Equal(overdue.ID, tasks[0].ID)
}

func (s *HandlerTestSuite) TestFetchByDate_NoAssignees() {
	w := s.makeRequest("POST", "/api/v1/tasks/fetch-by-date", dto.FetchByDateRequest{StartDate: 1, EndDate: 2})
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq("[]", w.Body.String())
}

func (s *HandlerTestSuite) TestUpdatePriorityAndListByPriority() {
	task := s.createTask(orderTask(1, 7, domain.TaskKindCreateInvoice, fixedNow))

	w := s.makeRequest("PATCH", "/api/v1/tasks/"+task.ID+"/priority", dto.UpdatePriorityRequest{Priority: "HIGH"})
	s.Require().Equal(http.StatusNoContent, w.Code)

	w = s.makeRequest("GET", "/api/v1/tasks?priority=HIGH", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var tasks []dto.TaskResponse
	s.decode(w, &tasks)
	s.Require().Len(tasks, 1)
	s.Equal(task.ID, tasks[0].ID)
	s.Equal("Priority changed to HIGH", tasks[0].Activities[len(tasks[0].Activities)-1].Description)
}

func (s *HandlerTestSuite) TestUpdatePriority_Invalid() {
	task := s.createTask(orderTask(1, 7, domain.TaskKindCreateInvoice, fixedNow))

	w := s.makeRequest("PATCH", "/api/v1/tasks/"+task.ID+"/priority", dto.UpdatePriorityRequest{Priority: "URGENT"})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *HandlerTestSuite) TestListByPriority_MissingParam() {
	w := s.makeRequest("GET", "/api/v1/tasks", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestCommentTask() {
	task := s.createTask(orderTask(1, 7, domain.TaskKindCreateInvoice, fixedNow))

	w := s.makeRequest("POST", "/api/v1/tasks/"+task.ID+"/comments", dto.CommentTaskRequest{UserID: 3, Comment: "Called the customer"})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.makeRequest("GET", "/api/v1/tasks/"+task.ID, nil)
	var resp dto.TaskResponse
	s.decode(w, &resp)
	s.Require().Len(resp.Comments, 1)
	s.Equal(int64(3), resp.Comments[0].UserID)
	s.Equal("Called the customer", resp.Comments[0].Comment)
	s.Equal("Comment added by user 3", resp.Activities[len(resp.Activities)-1].Description)
}

func (s *HandlerTestSuite) TestCommentTask_Empty() {
	task := s.createTask(orderTask(1, 7, domain.TaskKindCreateInvoice, fixedNow))

	w := s.makeRequest("POST", "/api/v1/tasks/"+task.ID+"/comments", dto.CommentTaskRequest{UserID: 3, Comment: "  "})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *HandlerTestSuite) TestGetCatalog() {
	w := s.makeRequest("GET", "/api/v1/catalog", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.CatalogResponse
	s.decode(w, &resp)
	s.Equal([]string{"CREATE_INVOICE", "ARRANGE_PICKUP", "COLLECT_PAYMENT"}, resp.ReferenceTypes["ORDER"])
	s.Equal([]string{"ASSIGN_CUSTOMER_TO_SALES_PERSON"}, resp.ReferenceTypes["ENTITY"])
}

func (s *HandlerTestSuite) TestMetrics() {
	s.createTask(orderTask(1, 7, domain.TaskKindCreateInvoice, fixedNow))

	w := s.makeRequest("GET", "/metrics", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `tasks_created_total{source="create"} 1`)
}
