package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("failed to do things: %w", NewErrTaskNotFound())

	apiErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.HTTPCode)
	assert.Equal(t, KindNotFound, apiErr.Kind)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestNewErrTaskForbidden(t *testing.T) {
	hidden := NewErrTaskForbidden(false)
	assert.Equal(t, http.StatusNotFound, hidden.HTTPCode)
	assert.Equal(t, NewErrTaskNotFound().Message, hidden.Message)

	revealed := NewErrTaskForbidden(true)
	assert.Equal(t, http.StatusForbidden, revealed.HTTPCode)
}

func TestNewErrInternalServerError(t *testing.T) {
	cause := errors.New("connection refused")
	apiErr := NewErrInternalServerError(cause)

	assert.Equal(t, http.StatusInternalServerError, apiErr.HTTPCode)
	assert.Equal(t, "Server error", apiErr.Message)
	assert.ErrorIs(t, apiErr, cause)
	assert.Contains(t, apiErr.Error(), "connection refused")
}
