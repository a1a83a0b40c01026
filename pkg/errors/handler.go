package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error     bool                   `json:"error"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// ErrorHandler writes errors as JSON and logs them. Outside debug mode,
// server-side failures keep their cause and details out of the response.
type ErrorHandler struct {
	logger *zap.Logger
	debug  bool
}

func NewErrorHandler(logger *zap.Logger, debug bool) *ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorHandler{logger: logger, debug: debug}
}

// Handle replies to r with err. Errors that are not AppErrors are reported
// as INTERNAL.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	appErr := GetAppError(err)
	if appErr == nil {
		appErr = NewInternalError("An internal error occurred").WithCause(err)
	}
	status := appErr.Status()

	resp := ErrorResponse{
		Error:     true,
		Type:      string(appErr.Type),
		Message:   appErr.Message,
		Code:      appErr.Code,
		RequestID: middleware.GetReqID(r.Context()),
	}
	switch {
	case status < http.StatusInternalServerError:
		resp.Details = appErr.Details
	case h.debug:
		resp.Details = appErr.Details
		if appErr.Cause != nil {
			resp.Message = appErr.Cause.Error()
			if appErr.Type != ErrorTypeInternal {
				resp.Message = appErr.Error()
			}
		}
	}

	h.log(r, appErr, status, resp.RequestID)
	h.write(w, status, resp)
}

// HandleStatus replies with a bare status and message, for failures that
// never produced an error value (unknown route, open breaker)
func (h *ErrorHandler) HandleStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	typ := ErrorTypeInternal
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		typ = ErrorTypeValidation
	case http.StatusNotFound:
		typ = ErrorTypeNotFound
	case http.StatusServiceUnavailable:
		typ = ErrorTypeUnavailable
	}

	h.logger.Warn("Request rejected",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("reason", message),
	)
	h.write(w, status, ErrorResponse{
		Error:     true,
		Type:      string(typ),
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// Middleware converts a panic in next into an INTERNAL reply.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			h.Handle(w, r, NewInternalError("An internal error occurred").
				WithCause(fmt.Errorf("panic: %v", rec)))
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *ErrorHandler) log(r *http.Request, appErr *AppError, status int, requestID string) {
	fields := []zap.Field{
		zap.String("error_type", string(appErr.Type)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", requestID),
	}
	if appErr.Code != "" {
		fields = append(fields, zap.String("error_code", appErr.Code))
	}
	if appErr.Cause != nil {
		fields = append(fields, zap.Error(appErr.Cause))
	}
	if len(appErr.Details) > 0 {
		fields = append(fields, zap.Any("details", appErr.Details))
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error(appErr.Message, fields...)
		return
	}
	h.logger.Warn(appErr.Message, fields...)
}

func (h *ErrorHandler) write(w http.ResponseWriter, status int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}
