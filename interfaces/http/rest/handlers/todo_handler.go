package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"todo-backend/application/usecases"
	"todo-backend/domain/todo"
	pkgerrors "todo-backend/pkg/errors"
	"todo-backend/pkg/optional"
	"todo-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	createTodo  *usecases.CreateTodo
	getAllTodos *usecases.GetAllTodos
	getTodoByID *usecases.GetTodoByID
	updateTodo  *usecases.UpdateTodo
	deleteTodo  *usecases.DeleteTodo
	errors      *pkgerrors.ErrorHandler
	logger      *zap.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(
	createTodo *usecases.CreateTodo,
	getAllTodos *usecases.GetAllTodos,
	getTodoByID *usecases.GetTodoByID,
	updateTodo *usecases.UpdateTodo,
	deleteTodo *usecases.DeleteTodo,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *TodoHandler {
	return &TodoHandler{
		createTodo:  createTodo,
		getAllTodos: getAllTodos,
		getTodoByID: getTodoByID,
		updateTodo:  updateTodo,
		deleteTodo:  deleteTodo,
		errors:      errorHandler,
		logger:      logger,
	}
}

// CreateTodoRequest represents the request body for creating a todo
type CreateTodoRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
}

// UpdateTodoRequest represents the request body for updating a todo.
// Omitted or null title and completed are left unchanged. Description is
// cleared by null.
type UpdateTodoRequest struct {
	Title       optional.Field[*string] `json:"title"`
	Description optional.Field[*string] `json:"description"`
	Completed   optional.Field[*bool]   `json:"completed"`
}

// TodoResponse is the JSON representation of a todo
type TodoResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// NewTodoResponse converts an entity to its response shape
func NewTodoResponse(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		Completed:   t.Completed(),
		CreatedAt:   utils.FormatTimestamp(t.CreatedAt()),
		UpdatedAt:   utils.FormatTimestamp(t.UpdatedAt()),
	}
}

// ListTodos handles GET /todos
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.getAllTodos.Execute(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	response := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		response = append(response, NewTodoResponse(t))
	}

	h.respondJSON(w, http.StatusOK, response)
}

// GetTodo handles GET /todos/{todoID}
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "todoID")

	t, err := h.getTodoByID.Execute(r.Context(), id)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if t == nil {
		h.errors.Handle(w, r, pkgerrors.NewNotFoundError("todo").WithDetail("id", id))
		return
	}

	h.respondJSON(w, http.StatusOK, NewTodoResponse(t))
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := h.decode(w, r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	t, err := h.createTodo.Execute(r.Context(), usecases.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.logger.Info("Todo created", zap.String("id", t.ID()))

	w.Header().Set("Location", "/todos/"+t.ID())
	h.respondJSON(w, http.StatusCreated, NewTodoResponse(t))
}

// UpdateTodo handles PUT and PATCH /todos/{todoID}
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "todoID")

	var req UpdateTodoRequest
	if err := h.decode(w, r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	t, err := h.updateTodo.Execute(r.Context(), usecases.UpdateTodoInput{
		ID:          id,
		Title:       optional.NonNull(req.Title),
		Description: req.Description,
		Completed:   optional.NonNull(req.Completed),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if t == nil {
		h.errors.Handle(w, r, pkgerrors.NewNotFoundError("todo").WithDetail("id", id))
		return
	}

	h.respondJSON(w, http.StatusOK, NewTodoResponse(t))
}

// DeleteTodo handles DELETE /todos/{todoID}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "todoID")

	deleted, err := h.deleteTodo.Execute(r.Context(), id)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if !deleted {
		h.errors.Handle(w, r, pkgerrors.NewNotFoundError("todo").WithDetail("id", id))
		return
	}

	h.logger.Info("Todo deleted", zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into dst, reporting malformed input as a validation error
func (h *TodoHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return pkgerrors.NewValidationError("request body is required")
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return pkgerrors.NewValidationError("request body is too large")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return pkgerrors.NewValidationError("invalid value for " + typeErr.Field).
			WithDetail("field", typeErr.Field)
	}

	return pkgerrors.NewValidationError("invalid request body").WithCause(err)
}

func (h *TodoHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, data, h.logger)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}
