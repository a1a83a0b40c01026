package di

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"todo-backend/application/ports"
	"todo-backend/infrastructure/config"
	"todo-backend/infrastructure/observability"
	"todo-backend/infrastructure/persistence/dynamodb"
	"todo-backend/interfaces/http/rest"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Tracer   *observability.TracerProvider
	Metrics  *observability.Collector
	Redis    *redis.Client
	DynamoDB *dynamodb.TodoRepository
	TodoRepo ports.TodoRepository
	Router   *rest.Router
}

// Close releases the resources held by the container
func (c *Container) Close(ctx context.Context) error {
	var errs []error

	if c.Tracer != nil {
		if err := c.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Logger != nil {
		// Syncing a console writer returns EINVAL on Linux
		_ = c.Logger.Sync()
	}

	return errors.Join(errs...)
}
