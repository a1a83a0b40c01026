//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"todo-backend/application/usecases"
	"todo-backend/infrastructure/config"
	"todo-backend/interfaces/http/rest"
	"todo-backend/interfaces/http/rest/handlers"
)

// InfrastructureSet provides clients, storage and observability
var InfrastructureSet = wire.NewSet(
	ProvideLogger,
	ProvideTracer,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideDynamoRepository,
	ProvideRedisClient,
	ProvideMetrics,
	ProvideTodoRepository,
	ProvideHealthChecker,
)

// ApplicationSet provides the use cases
var ApplicationSet = wire.NewSet(
	ProvideUseCaseOptions,
	ProvideCreateTodo,
	usecases.NewGetAllTodos,
	usecases.NewGetTodoByID,
	ProvideUpdateTodo,
	ProvideDeleteTodo,
)

// InterfaceSet provides the HTTP layer
var InterfaceSet = wire.NewSet(
	ProvideErrorHandler,
	ProvideHealthHandler,
	handlers.NewTodoHandler,
	ProvideRouterOptions,
	rest.NewRouter,
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	InfrastructureSet,
	ApplicationSet,
	InterfaceSet,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
