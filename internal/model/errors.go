package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row or document matches.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned by stores on a unique constraint violation.
	ErrAlreadyExists = errors.New("already exists")
)
