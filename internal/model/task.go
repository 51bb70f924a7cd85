package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskStore defines persistence operations for tasks.
// Every method except Create and GetByID is scoped to an owner.
type TaskStore interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, filter TaskFilter) ([]Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Status      TaskStatus
	DueDate     *time.Time
	CreatedAt   time.Time
}

// TaskStatus enumerates task progress states.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// TaskSort selects the ordering of a task listing.
type TaskSort string

const (
	// TaskSortCreatedAt orders newest first. It is the default.
	TaskSortCreatedAt TaskSort = "createdAt"
	// TaskSortDueDate orders earliest due date first, undated tasks last.
	TaskSortDueDate TaskSort = "dueDate"
	TaskSortTitle   TaskSort = "title"
	TaskSortStatus  TaskSort = "status"
)

// Valid reports whether s is one of the known sort keys.
func (s TaskSort) Valid() bool {
	switch s {
	case TaskSortCreatedAt, TaskSortDueDate, TaskSortTitle, TaskSortStatus:
		return true
	}
	return false
}

// TaskFilter narrows and orders a task listing.
type TaskFilter struct {
	Status TaskStatus
	Sort   TaskSort
}

// CreateTaskParams contains parameters to create a task.
type CreateTaskParams struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Status      TaskStatus
	DueDate     *time.Time
}

// UpdateTaskParams carries a partial update. Nil fields are left unchanged;
// ClearDueDate removes the due date.
type UpdateTaskParams struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	DueDate      *time.Time
	ClearDueDate bool
}

// Access is the outcome of checking a task against the requesting principal.
type Access int

const (
	AccessGranted Access = iota
	AccessNotFound
	AccessForbidden
)
