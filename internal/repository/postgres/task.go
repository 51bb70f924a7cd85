package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

const taskColumns = `id, user_id, title, description, status, due_date, created_at`

type TaskRepository struct {
	db *Connection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	query := `INSERT INTO tasks (id, user_id, title, description, status, due_date, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, string(task.Status), task.DueDate, task.CreatedAt,
	))
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return saved, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) ListByUserID(ctx context.Context, userID uuid.UUID, filter model.TaskFilter) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
			  WHERE user_id = $1 AND ($2 = '' OR status = $2)
			  ORDER BY ` + orderClause(filter.Sort)

	rows, err := r.db.Query(ctx, query, userID, string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// Update overwrites the mutable fields of a task owned by task.UserID.
func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `UPDATE tasks
			  SET title = $3, description = $4, status = $5, due_date = $6
			  WHERE id = $1 AND user_id = $2
			  RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, string(task.Status), task.DueDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return saved, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func scanTask(row pgx.Row) (model.Task, error) {
	var task model.Task
	var status string
	err := row.Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &status, &task.DueDate, &task.CreatedAt,
	)
	task.Status = model.TaskStatus(status)
	return task, err
}

// orderClause maps a sort key to a fixed ORDER BY expression. Unknown keys
// fall back to newest first.
func orderClause(sort model.TaskSort) string {
	switch sort {
	case model.TaskSortDueDate:
		return "due_date ASC NULLS LAST, created_at DESC"
	case model.TaskSortTitle:
		return "title ASC, created_at DESC"
	case model.TaskSortStatus:
		return "status ASC, created_at DESC"
	default:
		return "created_at DESC"
	}
}
