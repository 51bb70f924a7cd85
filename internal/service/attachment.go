package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// TaskGetter resolves a task for its owner, applying the ownership check.
type TaskGetter interface {
	GetTask(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) (model.Task, error)
}

// Attachment stores one file per task in object storage.
type Attachment struct {
	tasks   TaskGetter
	storage model.Storage
	logger  *logger.Logger
}

func NewAttachment(tasks TaskGetter, storage model.Storage, logger *logger.Logger) *Attachment {
	return &Attachment{tasks: tasks, storage: storage, logger: logger}
}

// AttachmentKey is the object key of a task's attachment.
func AttachmentKey(task model.Task) string {
	return fmt.Sprintf("tasks/%s/%s", task.UserID, task.ID)
}

func (s *Attachment) Upload(ctx context.Context, userID uuid.UUID, taskID uuid.UUID, reader io.Reader, size int64, contentType string) error {
	task, err := s.tasks.GetTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	if err := s.storage.Upload(ctx, AttachmentKey(task), reader, size, contentType); err != nil {
		s.logger.Error("Attachment service: failed to upload attachment",
			"task_id", taskID,
			"error", err.Error())
		return fmt.Errorf("failed to upload attachment: %w", err)
	}

	s.logger.Debug("Attachment service: attachment uploaded",
		"task_id", taskID,
		"size", size)

	return nil
}

// Download returns the attachment body. The caller must close it.
func (s *Attachment) Download(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) (io.ReadCloser, error) {
	task, err := s.tasks.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	key := AttachmentKey(task)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check attachment: %w", err)
	}
	if !exists {
		return nil, apperror.NewErrAttachmentNotFound()
	}

	reader, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download attachment: %w", err)
	}

	return reader, nil
}

func (s *Attachment) Delete(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) error {
	task, err := s.tasks.GetTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	key := AttachmentKey(task)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check attachment: %w", err)
	}
	if !exists {
		return apperror.NewErrAttachmentNotFound()
	}

	return s.storage.Delete(ctx, key)
}

// RemoveForTask deletes a task's attachment if present. It is registered as a
// task delete hook, so the task is already gone and no ownership check applies.
func (s *Attachment) RemoveForTask(ctx context.Context, task model.Task) error {
	key := AttachmentKey(task)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check attachment: %w", err)
	}
	if !exists {
		return nil
	}

	return s.storage.Delete(ctx, key)
}
