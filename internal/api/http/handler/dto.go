package handler

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/model"
)

const dateLayout = "2006-01-02"

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newUserResponse(user model.User) userResponse {
	return userResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type taskResponse struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func newTaskResponse(task model.Task) taskResponse {
	return taskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		DueDate:     task.DueDate,
		UserID:      task.UserID.String(),
		CreatedAt:   task.CreatedAt,
	}
}

func newTaskListResponse(tasks []model.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, newTaskResponse(task))
	}
	return out
}

type taskMessageResponse struct {
	Message string       `json:"message"`
	Task    taskResponse `json:"task"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"dueDate"`
}

func (r createTaskRequest) toParams() (model.CreateTaskParams, error) {
	params := model.CreateTaskParams{
		Title:       r.Title,
		Description: r.Description,
		Status:      model.TaskStatus(r.Status),
	}

	if r.DueDate != nil {
		due, err := parseDueDate(*r.DueDate)
		if err != nil {
			return model.CreateTaskParams{}, err
		}
		params.DueDate = due
	}

	return params, nil
}

// updateTaskRequest distinguishes absent fields from explicit values.
// DueDate stays raw so that null can clear the date.
type updateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Status      *string         `json:"status"`
	DueDate     json.RawMessage `json:"dueDate"`
}

func (r updateTaskRequest) toParams() (model.UpdateTaskParams, error) {
	params := model.UpdateTaskParams{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Status != nil {
		status := model.TaskStatus(*r.Status)
		params.Status = &status
	}

	if len(r.DueDate) == 0 {
		return params, nil
	}
	if bytes.Equal(bytes.TrimSpace(r.DueDate), []byte("null")) {
		params.ClearDueDate = true
		return params, nil
	}

	var raw string
	if err := json.Unmarshal(r.DueDate, &raw); err != nil {
		return model.UpdateTaskParams{}, errInvalidDueDate()
	}
	due, err := parseDueDate(raw)
	if err != nil {
		return model.UpdateTaskParams{}, err
	}
	if due == nil {
		params.ClearDueDate = true
	} else {
		params.DueDate = due
	}

	return params, nil
}

// parseDueDate accepts a calendar date or an RFC 3339 timestamp. An empty
// string means no due date.
func parseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	for _, layout := range []string{dateLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}

	return nil, errInvalidDueDate()
}

func errInvalidDueDate() error {
	return apperror.NewErrValidation("Due date must be YYYY-MM-DD or an RFC 3339 timestamp")
}

// decodeJSON reads the request body into v regardless of Content-Type.
func decodeJSON(c *fiber.Ctx, v any) error {
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return apperror.NewErrValidation("Invalid request body")
	}
	return nil
}
