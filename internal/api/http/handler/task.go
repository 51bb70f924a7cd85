package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// TaskService defines owner-scoped task operations.
type TaskService interface {
	CreateTask(ctx context.Context, params model.CreateTaskParams) (model.Task, error)
	GetTasks(ctx context.Context, userID uuid.UUID, filter model.TaskFilter) ([]model.Task, error)
	GetTask(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) (model.Task, error)
	UpdateTask(ctx context.Context, userID uuid.UUID, taskID uuid.UUID, params model.UpdateTaskParams) (model.Task, error)
	DeleteTask(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) error
}

// Task handles HTTP endpoints for tasks.
type Task struct {
	taskService    TaskService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTask creates a new Task handler.
func NewTask(taskService TaskService, contextManager model.ContextManager, logger *logger.Logger) *Task {
	return &Task{
		taskService:    taskService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Task) Create(c *fiber.Ctx) error {
	userID, err := principal(c, h.contextManager)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	params, err := req.toParams()
	if err != nil {
		return err
	}
	params.UserID = userID

	task, err := h.taskService.CreateTask(c.UserContext(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(taskMessageResponse{
		Message: "Task created successfully",
		Task:    newTaskResponse(task),
	})
}

func (h *Task) List(c *fiber.Ctx) error {
	userID, err := principal(c, h.contextManager)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.GetTasks(c.UserContext(), userID, model.TaskFilter{
		Status: model.TaskStatus(c.Query("status")),
		Sort:   model.TaskSort(c.Query("sort")),
	})
	if err != nil {
		return err
	}

	return c.JSON(newTaskListResponse(tasks))
}

func (h *Task) Get(c *fiber.Ctx) error {
	userID, taskID, err := taskTarget(c, h.contextManager)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.UserContext(), userID, taskID)
	if err != nil {
		return err
	}

	return c.JSON(newTaskResponse(task))
}

func (h *Task) Update(c *fiber.Ctx) error {
	userID, taskID, err := taskTarget(c, h.contextManager)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	params, err := req.toParams()
	if err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.UserContext(), userID, taskID, params)
	if err != nil {
		return err
	}

	return c.JSON(taskMessageResponse{
		Message: "Task updated successfully",
		Task:    newTaskResponse(task),
	})
}

func (h *Task) Delete(c *fiber.Ctx) error {
	userID, taskID, err := taskTarget(c, h.contextManager)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.UserContext(), userID, taskID); err != nil {
		return err
	}

	h.logger.Info("Task handler: task deleted",
		"user_id", userID,
		"task_id", taskID)

	return c.JSON(messageResponse{Message: "Task deleted successfully"})
}

func principal(c *fiber.Ctx, contextManager model.ContextManager) (uuid.UUID, error) {
	userID, ok := contextManager.GetUserIDFromContext(c.UserContext())
	if !ok {
		return uuid.Nil, apperror.NewErrMissingAuthorizationToken()
	}
	return userID, nil
}

// taskTarget resolves the principal and the :id route parameter. An id that
// is not a UUID cannot name any task and is reported as not found.
func taskTarget(c *fiber.Ctx, contextManager model.ContextManager) (uuid.UUID, uuid.UUID, error) {
	userID, err := principal(c, contextManager)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperror.NewErrTaskNotFound()
	}

	return userID, taskID, nil
}
