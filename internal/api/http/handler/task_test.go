package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/mocks"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/testutil"
)

func newTaskApp(t *testing.T, userID uuid.UUID) (*mocks.TaskService, func(method, path, body string) (int, []byte)) {
	t.Helper()

	svc := mocks.NewTaskService(t)
	app, ctxMgr := newTestApp(userID)
	h := NewTask(svc, ctxMgr, testutil.MakeNoopLogger())
	app.Get("/tasks", h.List)
	app.Post("/tasks", h.Create)
	app.Get("/tasks/:id", h.Get)
	app.Put("/tasks/:id", h.Update)
	app.Delete("/tasks/:id", h.Delete)

	return svc, func(method, path, body string) (int, []byte) {
		var raw []byte
		if body != "" {
			raw = []byte(body)
		}
		code, resp, _ := doRequest(t, app, method, path, raw)
		return code, resp
	}
}

func TestTask_Create(t *testing.T) {
	userID := uuid.New()
	created := model.Task{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "Write",
		Status:    model.TaskStatusPending,
		CreatedAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	svc, do := newTaskApp(t, userID)
	svc.On("CreateTask", mock.Anything, mock.MatchedBy(func(p model.CreateTaskParams) bool {
		return p.UserID == userID && p.Title == "Write" && p.DueDate != nil
	})).Return(created, nil).Once()

	code, raw := do(http.MethodPost, "/tasks", `{"title":"Write","dueDate":"2030-01-05"}`)
	require.Equal(t, http.StatusCreated, code)

	var resp taskMessageResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.Equal(t, "Task created successfully", resp.Message)
	assert.Equal(t, created.ID.String(), resp.Task.ID)
	assert.Equal(t, userID.String(), resp.Task.UserID)
}

func TestTask_Create_InvalidDueDate(t *testing.T) {
	_, do := newTaskApp(t, uuid.New())

	code, raw := do(http.MethodPost, "/tasks", `{"title":"Write","dueDate":"soon"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, decodeMessage(t, raw), "Due date")
}

func TestTask_List(t *testing.T) {
	userID := uuid.New()

	svc, do := newTaskApp(t, userID)
	svc.On("GetTasks", mock.Anything, userID, model.TaskFilter{Status: model.TaskStatusCompleted, Sort: model.TaskSortDueDate}).
		Return([]model.Task{{ID: uuid.New(), UserID: userID, Title: "A"}}, nil).Once()
	svc.On("GetTasks", mock.Anything, userID, model.TaskFilter{}).
		Return(nil, nil).Once()

	code, raw := do(http.MethodGet, "/tasks?status=completed&sort=dueDate", "")
	require.Equal(t, http.StatusOK, code)
	var list []taskResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 1)

	code, raw = do(http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestTask_Get(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	tests := []struct {
		name     string
		path     string
		setup    func(s *mocks.TaskService)
		wantCode int
	}{
		{
			name: "own task",
			path: "/tasks/" + taskID.String(),
			setup: func(s *mocks.TaskService) {
				s.On("GetTask", mock.Anything, userID, taskID).Return(model.Task{ID: taskID, UserID: userID}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "foreign task hidden",
			path: "/tasks/" + taskID.String(),
			setup: func(s *mocks.TaskService) {
				s.On("GetTask", mock.Anything, userID, taskID).Return(model.Task{}, apperror.NewErrTaskForbidden(false)).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "foreign task revealed",
			path: "/tasks/" + taskID.String(),
			setup: func(s *mocks.TaskService) {
				s.On("GetTask", mock.Anything, userID, taskID).Return(model.Task{}, apperror.NewErrTaskForbidden(true)).Once()
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "malformed id",
			path:     "/tasks/not-a-uuid",
			setup:    func(s *mocks.TaskService) {},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, do := newTaskApp(t, userID)
			tt.setup(svc)

			code, _ := do(http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestTask_Update(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	svc, do := newTaskApp(t, userID)
	svc.On("UpdateTask", mock.Anything, userID, taskID, model.UpdateTaskParams{
		Status:       ptr(model.TaskStatusCompleted),
		ClearDueDate: true,
	}).Return(model.Task{ID: taskID, UserID: userID, Status: model.TaskStatusCompleted}, nil).Once()

	code, raw := do(http.MethodPut, "/tasks/"+taskID.String(), `{"status":"completed","dueDate":null}`)
	require.Equal(t, http.StatusOK, code)

	var resp taskMessageResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.Equal(t, "Task updated successfully", resp.Message)
	assert.Equal(t, "completed", resp.Task.Status)
	assert.Nil(t, resp.Task.DueDate)
}

func TestTask_Delete(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	svc, do := newTaskApp(t, userID)
	svc.On("DeleteTask", mock.Anything, userID, taskID).Return(nil).Once()

	code, raw := do(http.MethodDelete, "/tasks/"+taskID.String(), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Task deleted successfully", decodeMessage(t, raw))
}

func TestTask_RequiresPrincipal(t *testing.T) {
	_, do := newTaskApp(t, uuid.Nil)

	code, raw := do(http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "No token, authorization denied", decodeMessage(t, raw))
}
