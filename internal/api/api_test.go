package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthara/backend/internal/middleware"
	"github.com/pageza/healthara/backend/internal/mocks"
	"github.com/pageza/healthara/backend/internal/session"
	"github.com/pageza/healthara/backend/internal/storage"
)

type testAPI struct {
	router      *gin.Engine
	manager     *session.Manager
	chat        *mocks.MockChatClient
	profilePath string
	token       string
}

func newTestAPI(t *testing.T, uploader ExportUploader) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	profilePath := t.TempDir() + "/user_health_profile.json"
	chat := &mocks.MockChatClient{}
	manager, err := session.NewManager(8, func(ctx context.Context) (storage.RecordStore, error) {
		return storage.NewFileStore(profilePath), nil
	}, chat, session.NewTokenSigner("test-secret", time.Hour))
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	deps := Dependencies{Sessions: manager}
	if uploader != nil {
		deps.Uploader = uploader
	}
	RegisterRoutes(router.Group("/api/v1"), deps)

	api := &testAPI{router: router, manager: manager, chat: chat, profilePath: profilePath}

	w := api.do(t, http.MethodPost, "/api/v1/session", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var started struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))
	api.token = started.Token
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	api := newTestAPI(t, nil)
	api.token = ""

	w := api.do(t, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestSessionRoutes(t *testing.T) {
	t.Run("should start with the default profile", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.token = ""

		w := api.do(t, http.MethodPost, "/api/v1/session", nil)
		require.Equal(t, http.StatusCreated, w.Code)

		body := decode(t, w)
		assert.NotEmpty(t, body["session_id"])
		assert.NotEmpty(t, body["token"])
		assert.Equal(t, "Activity Level: moderate\nPrimary Goal: maintain_health", body["summary"])
	})

	t.Run("should require a token for protected routes", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.token = ""

		w := api.do(t, http.MethodGet, "/api/v1/profile", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should end the session", func(t *testing.T) {
		api := newTestAPI(t, nil)

		w := api.do(t, http.MethodDelete, "/api/v1/session", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = api.do(t, http.MethodGet, "/api/v1/profile", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
