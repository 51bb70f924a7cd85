package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// TaskDeleteHook runs after a task is deleted. Errors are logged, not returned.
type TaskDeleteHook func(ctx context.Context, task model.Task) error

type Task struct {
	taskStore       model.TaskStore
	logger          *logger.Logger
	revealForbidden bool
	onDelete        []TaskDeleteHook
}

func NewTask(taskStore model.TaskStore, logger *logger.Logger, revealForbidden bool) *Task {
	return &Task{
		taskStore:       taskStore,
		logger:          logger,
		revealForbidden: revealForbidden,
	}
}

// OnDelete registers a hook run after every successful delete.
func (s *Task) OnDelete(hook TaskDeleteHook) {
	s.onDelete = append(s.onDelete, hook)
}

func (s *Task) CreateTask(ctx context.Context, params model.CreateTaskParams) (model.Task, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return model.Task{}, apperror.NewErrValidation("Title is required")
	}

	status := params.Status
	if status == "" {
		status = model.TaskStatusPending
	}
	if !status.Valid() {
		return model.Task{}, apperror.NewErrValidation(invalidStatusMessage)
	}

	task, err := s.taskStore.Create(ctx, model.Task{
		UserID:      params.UserID,
		Title:       title,
		Description: params.Description,
		Status:      status,
		DueDate:     params.DueDate,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("Task service: failed to create task",
			"user_id", params.UserID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Debug("Task service: task created",
		"user_id", params.UserID,
		"task_id", task.ID)

	return task, nil
}

func (s *Task) GetTasks(ctx context.Context, userID uuid.UUID, filter model.TaskFilter) ([]model.Task, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperror.NewErrValidation(invalidStatusMessage)
	}
	if filter.Sort == "" {
		filter.Sort = model.TaskSortCreatedAt
	}
	if !filter.Sort.Valid() {
		return nil, apperror.NewErrValidation("Sort must be one of createdAt, dueDate, title, status")
	}

	tasks, err := s.taskStore.ListByUserID(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks by user id: %w", err)
	}

	return tasks, nil
}

func (s *Task) GetTask(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) (model.Task, error) {
	task, access, err := s.lookup(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	switch access {
	case model.AccessGranted:
		return task, nil
	case model.AccessForbidden:
		s.logger.Info("Task service: access to foreign task denied",
			"user_id", userID,
			"task_id", taskID)
		return model.Task{}, apperror.NewErrTaskForbidden(s.revealForbidden)
	case model.AccessNotFound:
		return model.Task{}, apperror.NewErrTaskNotFound()
	default:
		return model.Task{}, fmt.Errorf("unexpected access outcome %d", access)
	}
}

func (s *Task) UpdateTask(ctx context.Context, userID uuid.UUID, taskID uuid.UUID, params model.UpdateTaskParams) (model.Task, error) {
	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		return model.Task{}, apperror.NewErrValidation("Title is required")
	}
	if params.Status != nil && !params.Status.Valid() {
		return model.Task{}, apperror.NewErrValidation(invalidStatusMessage)
	}

	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	if params.Title != nil {
		task.Title = strings.TrimSpace(*params.Title)
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	if params.ClearDueDate {
		task.DueDate = nil
	} else if params.DueDate != nil {
		task.DueDate = params.DueDate
	}

	updated, err := s.taskStore.Update(ctx, task)
	if errors.Is(err, model.ErrNotFound) {
		// Deleted between the read and the write.
		return model.Task{}, apperror.NewErrTaskNotFound()
	}
	if err != nil {
		s.logger.Error("Task service: failed to update task",
			"user_id", userID,
			"task_id", taskID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

func (s *Task) DeleteTask(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) error {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	err = s.taskStore.Delete(ctx, taskID, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apperror.NewErrTaskNotFound()
	}
	if err != nil {
		s.logger.Error("Task service: failed to delete task",
			"user_id", userID,
			"task_id", taskID,
			"error", err.Error())
		return fmt.Errorf("failed to delete task: %w", err)
	}

	for _, hook := range s.onDelete {
		if err := hook(ctx, task); err != nil {
			s.logger.Warn("Task service: delete hook failed",
				"task_id", taskID,
				"error", err.Error())
		}
	}

	return nil
}

// lookup resolves taskID to an access outcome for userID. Only store
// failures other than not-found are returned as errors.
func (s *Task) lookup(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) (model.Task, model.Access, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, model.AccessNotFound, nil
	}
	if err != nil {
		return model.Task{}, model.AccessNotFound, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, CheckOwnership(task, userID), nil
}

// CheckOwnership compares the task's owner with the requesting principal.
func CheckOwnership(task model.Task, userID uuid.UUID) model.Access {
	if userID == uuid.Nil || task.UserID != userID {
		return model.AccessForbidden
	}
	return model.AccessGranted
}

const invalidStatusMessage = "Status must be one of pending, in-progress, completed"
