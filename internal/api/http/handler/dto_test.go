package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tasktracker-server/internal/model"
)

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    *time.Time
		wantErr bool
	}{
		{name: "empty", value: "", want: nil},
		{name: "blank", value: "   ", want: nil},
		{name: "date", value: "2030-01-02", want: ptr(time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC))},
		{name: "timestamp", value: "2030-01-02T10:00:00+02:00", want: ptr(time.Date(2030, 1, 2, 8, 0, 0, 0, time.UTC))},
		{name: "garbage", value: "next week", wantErr: true},
		{name: "impossible date", value: "2030-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDueDate(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s", got)
		})
	}
}

func TestUpdateTaskRequest_ToParams(t *testing.T) {
	due := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		body    string
		want    model.UpdateTaskParams
		wantErr bool
	}{
		{
			name: "absent fields",
			body: `{}`,
			want: model.UpdateTaskParams{},
		},
		{
			name: "title and status",
			body: `{"title":"New","status":"in-progress"}`,
			want: model.UpdateTaskParams{Title: ptr("New"), Status: ptr(model.TaskStatusInProgress)},
		},
		{
			name: "null due date clears",
			body: `{"dueDate":null}`,
			want: model.UpdateTaskParams{ClearDueDate: true},
		},
		{
			name: "empty due date clears",
			body: `{"dueDate":""}`,
			want: model.UpdateTaskParams{ClearDueDate: true},
		},
		{
			name: "due date set",
			body: `{"dueDate":"2030-01-02"}`,
			want: model.UpdateTaskParams{DueDate: &due},
		},
		{
			name:    "due date wrong type",
			body:    `{"dueDate":20300102}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req updateTaskRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			got, err := req.toParams()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateTaskRequest_ToParams(t *testing.T) {
	req := createTaskRequest{Title: "Write", Status: "completed", DueDate: ptr("2030-01-02")}

	params, err := req.toParams()
	require.NoError(t, err)
	assert.Equal(t, "Write", params.Title)
	assert.Equal(t, model.TaskStatusCompleted, params.Status)
	require.NotNil(t, params.DueDate)

	_, err = createTaskRequest{Title: "Write", DueDate: ptr("soon")}.toParams()
	assert.Error(t, err)
}

func TestNewTaskListResponse_EmptyIsArray(t *testing.T) {
	raw, err := json.Marshal(newTaskListResponse(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestNewUserResponse_OmitsHash(t *testing.T) {
	raw, err := json.Marshal(newUserResponse(model.User{Name: "A", Email: "a@example.com", PasswordHash: "secret"}))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}

func ptr[T any](v T) *T {
	return &v
}
