package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/tasktracker-server/internal/api/http/context"
	"github.com/dtroode/tasktracker-server/internal/testutil"
)

// newTestApp returns an app whose requests carry userID as the principal.
// A nil userID leaves the request unauthenticated.
func newTestApp(userID uuid.UUID) (*fiber.App, *httpcontext.Manager) {
	ctxMgr := httpcontext.NewManager()
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler(testutil.MakeNoopLogger()),
		DisableStartupMessage: true,
	})
	app.Use(func(c *fiber.Ctx) error {
		if userID != uuid.Nil {
			c.SetUserContext(ctxMgr.SetUserIDToContext(c.UserContext(), userID))
		}
		return c.Next()
	})
	return app, ctxMgr
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body []byte) (int, []byte, http.Header) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, raw, resp.Header
}

func decodeMessage(t *testing.T, raw []byte) string {
	t.Helper()

	var resp messageResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	return resp.Message
}
