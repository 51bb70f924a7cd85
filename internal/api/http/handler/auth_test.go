package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/mocks"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/testutil"
)

func TestAuth_Register(t *testing.T) {
	user := model.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}

	tests := []struct {
		name        string
		body        string
		setup       func(s *mocks.AuthService)
		wantCode    int
		wantMessage string
	}{
		{
			name: "created",
			body: `{"name":"Alice","email":"alice@example.com","password":"pw"}`,
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, model.RegisterParams{Name: "Alice", Email: "alice@example.com", Password: "pw"}).
					Return(model.Session{Token: "tok", User: user}, nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name:        "invalid body",
			body:        `{"name":`,
			setup:       func(s *mocks.AuthService) {},
			wantCode:    http.StatusBadRequest,
			wantMessage: "Invalid request body",
		},
		{
			name: "email taken",
			body: `{"name":"Alice","email":"alice@example.com","password":"pw"}`,
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, mock.Anything).Return(model.Session{}, apperror.NewErrEmailIsTaken()).Once()
			},
			wantCode:    http.StatusBadRequest,
			wantMessage: "User already exists",
		},
		{
			name: "store failure",
			body: `{"name":"Alice","email":"alice@example.com","password":"pw"}`,
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, mock.Anything).Return(model.Session{}, errors.New("db down")).Once()
			},
			wantCode:    http.StatusInternalServerError,
			wantMessage: "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewAuthService(t)
			tt.setup(svc)

			app, ctxMgr := newTestApp(uuid.Nil)
			h := NewAuth(svc, ctxMgr, testutil.MakeNoopLogger())
			app.Post("/register", h.Register)

			code, raw, _ := doRequest(t, app, http.MethodPost, "/register", []byte(tt.body))
			assert.Equal(t, tt.wantCode, code)

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeMessage(t, raw))
				return
			}

			var resp sessionResponse
			require.NoError(t, json.Unmarshal(raw, &resp))
			assert.Equal(t, "tok", resp.Token)
			assert.Equal(t, user.ID.String(), resp.User.ID)
			assert.NotContains(t, string(raw), "hash")
		})
	}
}

func TestAuth_Login(t *testing.T) {
	user := model.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}

	svc := mocks.NewAuthService(t)
	svc.On("Login", mock.Anything, model.LoginParams{Email: "alice@example.com", Password: "pw"}).
		Return(model.Session{Token: "tok", User: user}, nil).Once()
	svc.On("Login", mock.Anything, model.LoginParams{Email: "alice@example.com", Password: "bad"}).
		Return(model.Session{}, apperror.NewErrInvalidCredentials()).Once()

	app, ctxMgr := newTestApp(uuid.Nil)
	h := NewAuth(svc, ctxMgr, testutil.MakeNoopLogger())
	app.Post("/login", h.Login)

	code, raw, _ := doRequest(t, app, http.MethodPost, "/login", []byte(`{"email":"alice@example.com","password":"pw"}`))
	require.Equal(t, http.StatusOK, code)
	var resp sessionResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.Equal(t, "tok", resp.Token)

	code, raw, _ = doRequest(t, app, http.MethodPost, "/login", []byte(`{"email":"alice@example.com","password":"bad"}`))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", decodeMessage(t, raw))
}

func TestAuth_Me(t *testing.T) {
	userID := uuid.New()

	t.Run("authenticated", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Profile", mock.Anything, userID).
			Return(model.User{ID: userID, Name: "Alice", Email: "alice@example.com"}, nil).Once()

		app, ctxMgr := newTestApp(userID)
		app.Get("/me", NewAuth(svc, ctxMgr, testutil.MakeNoopLogger()).Me)

		code, raw, _ := doRequest(t, app, http.MethodGet, "/me", nil)
		require.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `{"id":"`+userID.String()+`","name":"Alice","email":"alice@example.com"}`, string(raw))
	})

	t.Run("no principal", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		ctxMgr := mocks.NewContextManager(t)
		ctxMgr.On("GetUserIDFromContext", mock.Anything).Return(uuid.Nil, false).Once()

		app, _ := newTestApp(uuid.Nil)
		app.Get("/me", NewAuth(svc, ctxMgr, testutil.MakeNoopLogger()).Me)

		code, raw, _ := doRequest(t, app, http.MethodGet, "/me", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "No token, authorization denied", decodeMessage(t, raw))
	})

	t.Run("deleted account", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Profile", mock.Anything, userID).Return(model.User{}, apperror.NewErrUserNotFound()).Once()

		app, ctxMgr := newTestApp(userID)
		app.Get("/me", NewAuth(svc, ctxMgr, testutil.MakeNoopLogger()).Me)

		code, _, _ := doRequest(t, app, http.MethodGet, "/me", nil)
		assert.Equal(t, http.StatusNotFound, code)
	})
}
