package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"todo-backend/infrastructure/observability"
	"todo-backend/interfaces/http/rest/handlers"
	"todo-backend/interfaces/http/rest/middleware"
	pkgerrors "todo-backend/pkg/errors"
)

// Options controls which cross-cutting middleware the router installs
type Options struct {
	ServiceName        string
	RequestTimeout     time.Duration
	EnableCORS         bool
	AllowedOrigins     []string
	EnableMetrics      bool
	EnableTracing      bool
	EnableCircuitBreak bool
}

// Router creates and configures the HTTP router
type Router struct {
	todoHandler   *handlers.TodoHandler
	healthHandler *handlers.HealthHandler
	errorHandler  *pkgerrors.ErrorHandler
	metrics       *observability.Collector
	options       Options
	logger        *zap.Logger
}

// NewRouter creates a new router instance. metrics may be nil.
func NewRouter(
	todoHandler *handlers.TodoHandler,
	healthHandler *handlers.HealthHandler,
	errorHandler *pkgerrors.ErrorHandler,
	metrics *observability.Collector,
	options Options,
	logger *zap.Logger,
) *Router {
	return &Router{
		todoHandler:   todoHandler,
		healthHandler: healthHandler,
		errorHandler:  errorHandler,
		metrics:       metrics,
		options:       options,
		logger:        logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	router.Use(rt.errorHandler.Middleware)
	if rt.options.EnableTracing {
		router.Use(observability.TracingMiddleware(rt.options.ServiceName))
	}
	if rt.options.EnableMetrics && rt.metrics != nil {
		router.Use(observability.MetricsMiddleware(rt.metrics))
	}

	if rt.options.EnableCORS {
		origins := rt.options.AllowedOrigins
		if len(origins) == 0 {
			origins = []string{"*"}
		}
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{"Location", "X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.HandleStatus(w, r, http.StatusNotFound, "resource not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Service endpoints
	router.Get("/", rt.healthHandler.Root)
	router.Get("/health", rt.healthHandler.Health)
	router.Get("/ready", rt.healthHandler.Ready)
	if rt.options.EnableMetrics && rt.metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	router.Route("/todos", func(r chi.Router) {
		if rt.options.EnableCircuitBreak {
			r.Use(middleware.CircuitBreaker(
				middleware.DefaultCircuitBreakerConfig("todos"),
				rt.errorHandler,
				rt.logger,
			))
		}
		if rt.options.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(rt.options.RequestTimeout))
		}

		r.Get("/", rt.todoHandler.ListTodos)
		r.Post("/", rt.todoHandler.CreateTodo)
		r.Get("/{todoID}", rt.todoHandler.GetTodo)
		r.Put("/{todoID}", rt.todoHandler.UpdateTodo)
		r.Patch("/{todoID}", rt.todoHandler.UpdateTodo)
		r.Delete("/{todoID}", rt.todoHandler.DeleteTodo)
	})

	return router
}
