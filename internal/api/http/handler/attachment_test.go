package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/mocks"
	"github.com/dtroode/tasktracker-server/internal/testutil"
)

func TestAttachment_Upload(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	svc := mocks.NewAttachmentService(t)
	svc.On("Upload", mock.Anything, userID, taskID, mock.Anything, int64(5), "application/json").
		Run(func(args mock.Arguments) {
			body, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			assert.Equal(t, "hello", string(body))
		}).Return(nil).Once()

	app, ctxMgr := newTestApp(userID)
	h := NewAttachment(svc, ctxMgr, testutil.MakeNoopLogger())
	app.Put("/tasks/:id/attachment", h.Upload)

	code, raw, _ := doRequest(t, app, http.MethodPut, "/tasks/"+taskID.String()+"/attachment", []byte("hello"))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Attachment uploaded successfully", decodeMessage(t, raw))

	code, raw, _ = doRequest(t, app, http.MethodPut, "/tasks/"+taskID.String()+"/attachment", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Attachment body is empty", decodeMessage(t, raw))
}

func TestAttachment_Download(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc := mocks.NewAttachmentService(t)
		svc.On("Download", mock.Anything, userID, taskID).
			Return(io.NopCloser(strings.NewReader("file-body")), nil).Once()

		app, ctxMgr := newTestApp(userID)
		app.Get("/tasks/:id/attachment", NewAttachment(svc, ctxMgr, testutil.MakeNoopLogger()).Download)

		code, raw, header := doRequest(t, app, http.MethodGet, "/tasks/"+taskID.String()+"/attachment", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "file-body", string(raw))
		assert.Equal(t, "application/octet-stream", header.Get("Content-Type"))
		assert.Contains(t, header.Get("Content-Disposition"), taskID.String())
	})

	t.Run("missing", func(t *testing.T) {
		svc := mocks.NewAttachmentService(t)
		svc.On("Download", mock.Anything, userID, taskID).Return(nil, apperror.NewErrAttachmentNotFound()).Once()

		app, ctxMgr := newTestApp(userID)
		app.Get("/tasks/:id/attachment", NewAttachment(svc, ctxMgr, testutil.MakeNoopLogger()).Download)

		code, raw, _ := doRequest(t, app, http.MethodGet, "/tasks/"+taskID.String()+"/attachment", nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Attachment not found", decodeMessage(t, raw))
	})
}

func TestAttachment_Delete(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	svc := mocks.NewAttachmentService(t)
	svc.On("Delete", mock.Anything, userID, taskID).Return(errors.New("storage down")).Once()

	app, ctxMgr := newTestApp(userID)
	app.Delete("/tasks/:id/attachment", NewAttachment(svc, ctxMgr, testutil.MakeNoopLogger()).Delete)

	code, raw, _ := doRequest(t, app, http.MethodDelete, "/tasks/"+taskID.String()+"/attachment", nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Server error", decodeMessage(t, raw))
}
