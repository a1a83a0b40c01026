package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"todo-backend/application/ports"
	"todo-backend/application/ports/mocks"
	"todo-backend/application/usecases"
	"todo-backend/infrastructure/observability"
	"todo-backend/infrastructure/persistence/memory"
	"todo-backend/interfaces/http/rest/handlers"
	pkgerrors "todo-backend/pkg/errors"
)

type failingChecker struct{}

func (failingChecker) Ping(ctx context.Context) error { return errors.New("table missing") }

func newTestServer(t *testing.T, repo ports.TodoRepository, checker ports.HealthChecker) *httptest.Server {
	t.Helper()
	logger := zap.NewNop()
	errorHandler := pkgerrors.NewErrorHandler(logger, false)

	todoHandler := handlers.NewTodoHandler(
		usecases.NewCreateTodo(repo),
		usecases.NewGetAllTodos(repo),
		usecases.NewGetTodoByID(repo),
		usecases.NewUpdateTodo(repo),
		usecases.NewDeleteTodo(repo),
		errorHandler,
		logger,
	)
	healthHandler := handlers.NewHealthHandler("2.0.0", checker, logger)

	router := NewRouter(todoHandler, healthHandler, errorHandler, observability.NewCollector("todo"), Options{
		ServiceName:        "todo-backend",
		RequestTimeout:     5 * time.Second,
		EnableCORS:         true,
		EnableMetrics:      true,
		EnableCircuitBreak: true,
	}, logger)

	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
	}
	return resp, decoded
}

func TestTodoAPI_Lifecycle(t *testing.T) {
	srv := newTestServer(t, memory.NewTodoRepository(), nil)

	// Create
	resp, created := do(t, http.MethodPost, srv.URL+"/todos", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "/todos/"+id, resp.Header.Get("Location"))
	assert.Equal(t, "Buy milk", created["title"])
	assert.Equal(t, false, created["completed"])
	assert.Nil(t, created["description"])
	assert.Equal(t, created["created_at"], created["updated_at"])

	// Fetch
	resp, fetched := do(t, http.MethodGet, srv.URL+"/todos/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created, fetched)

	// Complete
	resp, updated := do(t, http.MethodPut, srv.URL+"/todos/"+id, `{"completed":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, updated["id"])
	assert.Equal(t, "Buy milk", updated["title"])
	assert.Equal(t, true, updated["completed"])
	assert.Greater(t, updated["updated_at"].(string), created["updated_at"].(string))

	// List
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/todos", nil)
	listResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	var list []handlers.TodoResponse
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	listResp.Body.Close()
	require.Len(t, list, 1)
	assert.True(t, list[0].Completed)

	// Delete
	resp, _ = do(t, http.MethodDelete, srv.URL+"/todos/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := do(t, http.MethodGet, srv.URL+"/todos/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["type"])

	resp, _ = do(t, http.MethodDelete, srv.URL+"/todos/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTodoAPI_ListEmpty(t *testing.T) {
	srv := newTestServer(t, memory.NewTodoRepository(), nil)

	resp, err := http.Get(srv.URL + "/todos")
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestTodoAPI_Validation(t *testing.T) {
	repo := memory.NewTodoRepository()
	srv := newTestServer(t, repo, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "blank title", body: `{"title":"   "}`},
		{name: "missing title", body: `{"description":"x"}`},
		{name: "title too long", body: `{"title":"` + strings.Repeat("a", 201) + `"}`},
		{name: "malformed json", body: `{"title":`},
		{name: "wrong type", body: `{"title":42}`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/todos", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION", body["type"])
		})
	}

	assert.Equal(t, 0, repo.Len())
}

func TestTodoAPI_UpdateDescription(t *testing.T) {
	srv := newTestServer(t, memory.NewTodoRepository(), nil)

	_, created := do(t, http.MethodPost, srv.URL+"/todos", `{"title":"Buy milk","description":"two bottles"}`)
	id := created["id"].(string)
	assert.Equal(t, "two bottles", created["description"])

	// Omitted description is kept
	resp, updated := do(t, http.MethodPatch, srv.URL+"/todos/"+id, `{"title":"Buy oat milk"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Buy oat milk", updated["title"])
	assert.Equal(t, "two bottles", updated["description"])

	// Null description clears it
	resp, updated = do(t, http.MethodPut, srv.URL+"/todos/"+id, `{"description":null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, updated["description"])

	// Invalid title is rejected and nothing changes
	resp, body := do(t, http.MethodPut, srv.URL+"/todos/"+id, `{"title":"","completed":true}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["type"])

	_, fetched := do(t, http.MethodGet, srv.URL+"/todos/"+id, "")
	assert.Equal(t, "Buy oat milk", fetched["title"])
	assert.Equal(t, false, fetched["completed"])

	resp, _ = do(t, http.MethodPut, srv.URL+"/todos/missing", `{"completed":true}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTodoAPI_NullFieldsAreIgnored(t *testing.T) {
	srv := newTestServer(t, memory.NewTodoRepository(), nil)

	_, created := do(t, http.MethodPost, srv.URL+"/todos", `{"title":"Buy milk"}`)
	id := created["id"].(string)

	resp, done := do(t, http.MethodPut, srv.URL+"/todos/"+id, `{"completed":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, done["completed"])

	resp, updated := do(t, http.MethodPut, srv.URL+"/todos/"+id, `{"completed":null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, updated["completed"])
	assert.Equal(t, done["updated_at"], updated["updated_at"])

	resp, updated = do(t, http.MethodPatch, srv.URL+"/todos/"+id, `{"title":null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Buy milk", updated["title"])
	assert.Equal(t, done["updated_at"], updated["updated_at"])
}

func TestTodoAPI_PersistenceFailure(t *testing.T) {
	mockRepo := new(mocks.MockTodoRepository)
	mockRepo.On("FindAll", mock.Anything).
		Return(nil, pkgerrors.NewPersistenceError("scan todos", errors.New("table detail")))
	srv := newTestServer(t, mockRepo, nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/todos", "")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "PERSISTENCE", body["type"])
	assert.NotContains(t, body["message"], "table detail")
}

func TestServiceEndpoints(t *testing.T) {
	srv := newTestServer(t, memory.NewTodoRepository(), nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2.0.0", body["version"])

	resp, body = do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	resp, body = do(t, http.MethodGet, srv.URL+"/ready", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body["status"])

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, http.MethodGet, srv.URL+"/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["type"])
}

func TestReadiness_Unavailable(t *testing.T) {
	srv := newTestServer(t, memory.NewTodoRepository(), failingChecker{})

	resp, body := do(t, http.MethodGet, srv.URL+"/ready", "")

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "unavailable", body["status"])
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, memory.NewTodoRepository(), nil)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/todos", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
