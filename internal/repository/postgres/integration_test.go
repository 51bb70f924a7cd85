//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/tasktracker-server/internal/model"
	repo "github.com/dtroode/tasktracker-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "tasktracker_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/tasktracker_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *repo.Connection {
	t.Helper()

	conn, err := repo.NewConnection(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func createUser(t *testing.T, ur *repo.UserRepository, email string) model.User {
	t.Helper()

	u, err := ur.Create(context.Background(), model.User{
		Name:         "User",
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	return u
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	ur := repo.NewUserRepository(connect(t))

	u := createUser(t, ur, "user@example.com")
	require.NotEqual(t, uuid.Nil, u.ID)

	byEmail, err := ur.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byID, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)

	_, err = ur.Create(ctx, model.User{Name: "Dup", Email: u.Email, PasswordHash: "x", CreatedAt: time.Now()})
	require.ErrorIs(t, err, model.ErrAlreadyExists)

	require.NoError(t, ur.UpdatePasswordHash(ctx, u.ID, "upgraded"))
	byID, err = ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "upgraded", byID.PasswordHash)

	_, err = ur.GetByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)
	require.ErrorIs(t, ur.UpdatePasswordHash(ctx, uuid.New(), "x"), model.ErrNotFound)
}

func TestTaskRepository(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	ur := repo.NewUserRepository(conn)
	tr := repo.NewTaskRepository(conn)

	owner := createUser(t, ur, "owner@example.com")
	other := createUser(t, ur, "other@example.com")

	now := time.Now().UTC().Truncate(time.Millisecond)
	soon := now.Add(24 * time.Hour)
	later := now.Add(72 * time.Hour)

	mk := func(userID uuid.UUID, title string, status model.TaskStatus, due *time.Time, offset time.Duration) model.Task {
		task, err := tr.Create(ctx, model.Task{
			UserID:    userID,
			Title:     title,
			Status:    status,
			DueDate:   due,
			CreatedAt: now.Add(offset),
		})
		require.NoError(t, err)
		return task
	}

	a := mk(owner.ID, "b-task", model.TaskStatusPending, &later, 0)
	b := mk(owner.ID, "a-task", model.TaskStatusCompleted, nil, time.Second)
	c := mk(owner.ID, "c-task", model.TaskStatusPending, &soon, 2*time.Second)
	foreign := mk(other.ID, "foreign", model.TaskStatusPending, nil, 0)

	t.Run("list is scoped to the owner", func(t *testing.T) {
		tasks, err := tr.ListByUserID(ctx, owner.ID, model.TaskFilter{Sort: model.TaskSortCreatedAt})
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{c.ID, b.ID, a.ID}, taskIDs(tasks))
	})

	t.Run("due date ascending with undated last", func(t *testing.T) {
		tasks, err := tr.ListByUserID(ctx, owner.ID, model.TaskFilter{Sort: model.TaskSortDueDate})
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{c.ID, a.ID, b.ID}, taskIDs(tasks))
	})

	t.Run("title", func(t *testing.T) {
		tasks, err := tr.ListByUserID(ctx, owner.ID, model.TaskFilter{Sort: model.TaskSortTitle})
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{b.ID, a.ID, c.ID}, taskIDs(tasks))
	})

	t.Run("status filter", func(t *testing.T) {
		tasks, err := tr.ListByUserID(ctx, owner.ID, model.TaskFilter{Status: model.TaskStatusCompleted})
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{b.ID}, taskIDs(tasks))
	})

	t.Run("empty list", func(t *testing.T) {
		stranger := createUser(t, ur, "stranger@example.com")
		tasks, err := tr.ListByUserID(ctx, stranger.ID, model.TaskFilter{})
		require.NoError(t, err)
		require.NotNil(t, tasks)
		require.Empty(t, tasks)
	})

	t.Run("update is scoped to the owner", func(t *testing.T) {
		a.Title = "renamed"
		a.DueDate = nil
		updated, err := tr.Update(ctx, a)
		require.NoError(t, err)
		require.Equal(t, "renamed", updated.Title)
		require.Nil(t, updated.DueDate)

		hijack := foreign
		hijack.UserID = owner.ID
		_, err = tr.Update(ctx, hijack)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("delete is scoped to the owner", func(t *testing.T) {
		require.ErrorIs(t, tr.Delete(ctx, foreign.ID, owner.ID), model.ErrNotFound)

		got, err := tr.GetByID(ctx, foreign.ID)
		require.NoError(t, err)
		require.Equal(t, other.ID, got.UserID)

		require.NoError(t, tr.Delete(ctx, a.ID, owner.ID))
		_, err = tr.GetByID(ctx, a.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("status constraint", func(t *testing.T) {
		_, err := tr.Create(ctx, model.Task{UserID: owner.ID, Title: "bad", Status: "done", CreatedAt: now})
		require.Error(t, err)
	})
}

func taskIDs(tasks []model.Task) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}
