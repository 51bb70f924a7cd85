package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// User represents a registered account with its password hash.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// RegisterParams contains parameters to register a user.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams contains credentials presented at login.
type LoginParams struct {
	Email    string
	Password string
}

// Session is the result of a successful registration or login.
type Session struct {
	Token string
	User  User
}
