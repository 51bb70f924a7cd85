package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/logger"
)

type messageResponse struct {
	Message string `json:"message"`
}

// ErrorHandler writes err as a {"message": ...} body. Errors that are neither
// *apperror.APIError nor *fiber.Error are logged and answered with a generic 500.
func ErrorHandler(logger *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, message := resolveError(err)

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP handler: request failed",
				"method", c.Method(),
				"path", c.Path(),
				"error", err.Error())
		}

		return c.Status(code).JSON(messageResponse{Message: message})
	}
}

func resolveError(err error) (int, string) {
	if apiErr, ok := apperror.As(err); ok {
		return apiErr.HTTPCode, apiErr.Message
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	internal := apperror.NewErrInternalServerError(err)
	return internal.HTTPCode, internal.Message
}
