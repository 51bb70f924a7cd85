package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.Session, error) {
	name := strings.TrimSpace(params.Name)
	email := NormalizeEmail(params.Email)

	if name == "" || email == "" || params.Password == "" {
		return model.Session{}, apperror.NewErrValidation("Please provide name, email and password")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return model.Session{}, apperror.NewErrValidation("Please provide a valid email")
	}

	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.Session{}, apperror.NewErrEmailIsTaken()
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		// Lost a race with a concurrent registration of the same email.
		return model.Session{}, apperror.NewErrEmailIsTaken()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.tokenManager.Issue(user.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"user_id", user.ID)

	return model.Session{Token: token, User: user}, nil
}

func (a *Auth) Login(ctx context.Context, params model.LoginParams) (model.Session, error) {
	email := NormalizeEmail(params.Email)
	if email == "" || params.Password == "" {
		return model.Session{}, apperror.NewErrValidation("Please provide email and password")
	}

	a.logger.Debug("Auth service: starting user login",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login for unknown email",
			"email", email)
		return model.Session{}, apperror.NewErrInvalidCredentials()
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(params.Password, user.PasswordHash) {
		a.logger.Info("Auth service: password mismatch",
			"user_id", user.ID)
		return model.Session{}, apperror.NewErrInvalidCredentials()
	}

	if a.hasher.NeedsRehash(user.PasswordHash) {
		a.upgradeHash(ctx, user.ID, params.Password)
	}

	token, err := a.tokenManager.Issue(user.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed successfully",
		"user_id", user.ID)

	return model.Session{Token: token, User: user}, nil
}

// upgradeHash replaces a legacy or weaker hash. Failure does not block login.
func (a *Auth) upgradeHash(ctx context.Context, userID uuid.UUID, password string) {
	hash, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Warn("Auth service: failed to rehash password",
			"user_id", userID,
			"error", err.Error())
		return
	}

	if err := a.userStore.UpdatePasswordHash(ctx, userID, hash); err != nil {
		a.logger.Warn("Auth service: failed to store upgraded password hash",
			"user_id", userID,
			"error", err.Error())
		return
	}

	a.logger.Info("Auth service: password hash upgraded",
		"user_id", userID)
}

func (a *Auth) Profile(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apperror.NewErrUserNotFound()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}
