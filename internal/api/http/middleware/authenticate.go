package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

const bearerScheme = "Bearer"

// Authenticate validates bearer tokens and injects the user ID into the
// request context.
type Authenticate struct {
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenManager model.TokenManager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenManager: tokenManager, contextManager: contextManager, logger: logger}
}

// Handle rejects the request with 401 unless it carries a valid token.
func (m *Authenticate) Handle(c *fiber.Ctx) error {
	tokenString, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apperror.NewErrMissingAuthorizationToken()
	}

	verification := m.tokenManager.Verify(tokenString)

	switch verification.Status {
	case model.TokenValid:
		c.SetUserContext(m.contextManager.SetUserIDToContext(c.UserContext(), verification.UserID))
		return c.Next()
	case model.TokenExpired:
		m.logger.Debug("Authenticate middleware: expired token",
			"path", c.Path())
		return apperror.NewErrExpiredAuthorizationToken()
	case model.TokenMalformed:
		m.logger.Debug("Authenticate middleware: malformed token",
			"path", c.Path())
		return apperror.NewErrInvalidAuthorizationToken()
	default:
		return apperror.NewErrInvalidAuthorizationToken()
	}
}

// bearerToken extracts the credentials of a Bearer authorization header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}
