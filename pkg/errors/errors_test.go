package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestErrorTypes(t *testing.T) {
	t.Run("Validation error maps to 400", func(t *testing.T) {
		err := NewValidationError("title is required")

		assert.True(t, IsValidation(err))
		assert.False(t, IsPersistence(err))
		assert.Equal(t, http.StatusBadRequest, err.Status())
		assert.Equal(t, "VALIDATION: title is required", err.Error())
	})

	t.Run("Persistence error keeps its cause", func(t *testing.T) {
		cause := stderrors.New("throttled")
		err := NewPersistenceError("save todo", cause)

		assert.True(t, IsPersistence(err))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "throttled")
	})

	t.Run("Wrapped app errors are still detected", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewValidationError("bad"))

		assert.True(t, IsValidation(err))
		require.NotNil(t, GetAppError(err))
	})

	t.Run("Plain errors are not app errors", func(t *testing.T) {
		assert.Nil(t, GetAppError(stderrors.New("boom")))
		assert.False(t, IsNotFound(stderrors.New("boom")))
	})
}

func TestErrorHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		debug      bool
		wantStatus int
		wantType   string
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        NewValidationError("title must be at most 200 characters"),
			wantStatus: http.StatusBadRequest,
			wantType:   "VALIDATION",
			wantMsg:    "title must be at most 200 characters",
		},
		{
			name:       "not found",
			err:        NewNotFoundError("todo"),
			wantStatus: http.StatusNotFound,
			wantType:   "NOT_FOUND",
			wantMsg:    "todo not found",
		},
		{
			name:       "persistence hides cause outside debug",
			err:        NewPersistenceError("scan todos", stderrors.New("secret table detail")),
			wantStatus: http.StatusInternalServerError,
			wantType:   "PERSISTENCE",
			wantMsg:    "persistence operation 'scan todos' failed",
		},
		{
			name:       "unknown error",
			err:        stderrors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   "INTERNAL",
			wantMsg:    "An internal error occurred",
		},
		{
			name:       "unknown error in debug",
			err:        stderrors.New("boom"),
			debug:      true,
			wantStatus: http.StatusInternalServerError,
			wantType:   "INTERNAL",
			wantMsg:    "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewErrorHandler(zap.NewNop(), tt.debug)
			req := httptest.NewRequest(http.MethodGet, "/todos", nil)
			w := httptest.NewRecorder()

			h.Handle(w, req, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.True(t, body.Error)
			assert.Equal(t, tt.wantType, body.Type)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestErrorHandler_Middleware(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	w := httptest.NewRecorder()

	h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL")
	assert.NotContains(t, w.Body.String(), "test panic")
}

func TestErrorHandler_HandleStatus(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	w := httptest.NewRecorder()

	h.HandleStatus(w, httptest.NewRequest(http.MethodGet, "/nope", nil), http.StatusServiceUnavailable, "breaker open")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "UNAVAILABLE", body.Type)
	assert.Equal(t, "breaker open", body.Message)
}
