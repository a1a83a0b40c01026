package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"todo-backend/application/ports"
	"todo-backend/domain/todo"
)

const repositoryTracerName = "todo-backend/repository"

// InstrumentedTodoRepository records a span and Prometheus metrics for every
// repository call. A nil collector disables metrics.
type InstrumentedTodoRepository struct {
	inner   ports.TodoRepository
	metrics *Collector
}

// InstrumentRepository wraps repo with tracing and metrics
func InstrumentRepository(repo ports.TodoRepository, collector *Collector) *InstrumentedTodoRepository {
	return &InstrumentedTodoRepository{inner: repo, metrics: collector}
}

func (r *InstrumentedTodoRepository) FindAll(ctx context.Context) ([]*todo.Todo, error) {
	ctx, done := r.start(ctx, "FindAll")
	todos, err := r.inner.FindAll(ctx)
	done(err, attribute.Int("todo.count", len(todos)))
	return todos, err
}

func (r *InstrumentedTodoRepository) FindByID(ctx context.Context, id string) (*todo.Todo, error) {
	ctx, done := r.start(ctx, "FindByID", attribute.String("todo.id", id))
	t, err := r.inner.FindByID(ctx, id)
	done(err, attribute.Bool("todo.found", t != nil))
	return t, err
}

func (r *InstrumentedTodoRepository) Save(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	ctx, done := r.start(ctx, "Save", attribute.String("todo.id", t.ID()))
	saved, err := r.inner.Save(ctx, t)
	done(err)
	if err == nil && r.metrics != nil {
		r.metrics.TodosSaved.Inc()
	}
	return saved, err
}

func (r *InstrumentedTodoRepository) Delete(ctx context.Context, id string) error {
	ctx, done := r.start(ctx, "Delete", attribute.String("todo.id", id))
	err := r.inner.Delete(ctx, id)
	done(err)
	if err == nil && r.metrics != nil {
		r.metrics.TodosDeleted.Inc()
	}
	return err
}

func (r *InstrumentedTodoRepository) Exists(ctx context.Context, id string) (bool, error) {
	ctx, done := r.start(ctx, "Exists", attribute.String("todo.id", id))
	ok, err := r.inner.Exists(ctx, id)
	done(err, attribute.Bool("todo.found", ok))
	return ok, err
}

// Ping forwards to the wrapped repository when it supports health checks
func (r *InstrumentedTodoRepository) Ping(ctx context.Context) error {
	if hc, ok := r.inner.(ports.HealthChecker); ok {
		return hc.Ping(ctx)
	}
	return nil
}

// start opens a span and returns a func that ends it and records metrics
func (r *InstrumentedTodoRepository) start(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error, ...attribute.KeyValue)) {
	begin := time.Now()
	ctx, span := otel.Tracer(repositoryTracerName).Start(ctx, "repository."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)

	return ctx, func(err error, extra ...attribute.KeyValue) {
		defer span.End()

		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(extra...)
		}

		if r.metrics != nil {
			r.metrics.DBOperations.WithLabelValues(operation, status).Inc()
			r.metrics.DBDuration.WithLabelValues(operation).Observe(time.Since(begin).Seconds())
		}
	}
}
