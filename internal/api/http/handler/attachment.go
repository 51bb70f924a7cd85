package handler

import (
	"bytes"
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// AttachmentService defines owner-scoped attachment operations.
type AttachmentService interface {
	Upload(ctx context.Context, userID uuid.UUID, taskID uuid.UUID, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) (io.ReadCloser, error)
	Delete(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) error
}

// Attachment handles HTTP endpoints for task attachments.
type Attachment struct {
	attachmentService AttachmentService
	contextManager    model.ContextManager
	logger            *logger.Logger
}

func NewAttachment(attachmentService AttachmentService, contextManager model.ContextManager, logger *logger.Logger) *Attachment {
	return &Attachment{
		attachmentService: attachmentService,
		contextManager:    contextManager,
		logger:            logger,
	}
}

// Upload stores the raw request body as the task's attachment.
func (h *Attachment) Upload(c *fiber.Ctx) error {
	userID, taskID, err := taskTarget(c, h.contextManager)
	if err != nil {
		return err
	}

	body := c.Body()
	if len(body) == 0 {
		return apperror.NewErrValidation("Attachment body is empty")
	}

	err = h.attachmentService.Upload(c.UserContext(), userID, taskID,
		bytes.NewReader(body), int64(len(body)), c.Get(fiber.HeaderContentType))
	if err != nil {
		return err
	}

	return c.JSON(messageResponse{Message: "Attachment uploaded successfully"})
}

// Download streams the task's attachment.
func (h *Attachment) Download(c *fiber.Ctx) error {
	userID, taskID, err := taskTarget(c, h.contextManager)
	if err != nil {
		return err
	}

	reader, err := h.attachmentService.Download(c.UserContext(), userID, taskID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+taskID.String()+`"`)

	// fasthttp closes the reader once the body is written.
	return c.SendStream(reader)
}

func (h *Attachment) Delete(c *fiber.Ctx) error {
	userID, taskID, err := taskTarget(c, h.contextManager)
	if err != nil {
		return err
	}

	if err := h.attachmentService.Delete(c.UserContext(), userID, taskID); err != nil {
		return err
	}

	return c.JSON(messageResponse{Message: "Attachment deleted successfully"})
}
