package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// AuthService defines user registration, login and profile operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.Session, error)
	Login(ctx context.Context, params model.LoginParams) (model.Session, error)
	Profile(ctx context.Context, userID uuid.UUID) (model.User, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates an account and answers 201 with a session.
func (h *Auth) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	h.logger.Debug("Auth handler: processing registration request")

	session, err := h.authService.Register(c.UserContext(), model.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.logger.Info("Auth handler: registration completed",
		"user_id", session.User.ID)

	return c.Status(fiber.StatusCreated).JSON(sessionResponse{
		Token: session.Token,
		User:  newUserResponse(session.User),
	})
}

// Login verifies credentials and answers 200 with a session.
func (h *Auth) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(c.UserContext(), model.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(sessionResponse{
		Token: session.Token,
		User:  newUserResponse(session.User),
	})
}

// Me returns the authenticated user.
func (h *Auth) Me(c *fiber.Ctx) error {
	userID, ok := h.contextManager.GetUserIDFromContext(c.UserContext())
	if !ok {
		return apperror.NewErrMissingAuthorizationToken()
	}

	user, err := h.authService.Profile(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(newUserResponse(user))
}
