package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"todo-backend/application/ports"
	"todo-backend/application/usecases"
	"todo-backend/infrastructure/config"
	"todo-backend/infrastructure/observability"
	"todo-backend/infrastructure/persistence/cache"
	"todo-backend/infrastructure/persistence/dynamodb"
	"todo-backend/interfaces/http/rest"
	"todo-backend/interfaces/http/rest/handlers"
	pkgerrors "todo-backend/pkg/errors"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(
		zap.String("service", config.ServiceName),
		zap.String("environment", cfg.Environment),
	), nil
}

// ProvideTracer installs the global tracer provider
func ProvideTracer(ctx context.Context, cfg *config.Config) (*observability.TracerProvider, error) {
	return observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.EnableTracing,
		ServiceName: config.ServiceName,
		Version:     config.Version,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTLPEndpoint,
	})
}

// ProvideAWSConfig creates AWS configuration. A custom endpoint such as
// DynamoDB Local gets the static credentials from the configuration.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.UsesLocalEndpoint() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.UsesLocalEndpoint() {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideDynamoRepository creates the DynamoDB todo repository
func ProvideDynamoRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) *dynamodb.TodoRepository {
	return dynamodb.NewTodoRepository(client, cfg.TableName, logger)
}

// ProvideRedisClient creates the cache client, or nil when caching is off
func ProvideRedisClient(cfg *config.Config) *redis.Client {
	if !cfg.EnableCache {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// ProvideMetrics creates the Prometheus collector, or nil when metrics are off
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector("todo")
}

// ProvideTodoRepository stacks the decorators over the DynamoDB repository:
// instrumentation outermost, then the optional cache.
func ProvideTodoRepository(
	base *dynamodb.TodoRepository,
	rdb *redis.Client,
	metrics *observability.Collector,
	cfg *config.Config,
	logger *zap.Logger,
) ports.TodoRepository {
	var repo ports.TodoRepository = base
	if rdb != nil {
		repo = cache.NewTodoRepository(repo, rdb, cfg.CacheTTL, logger)
	}
	return observability.InstrumentRepository(repo, metrics)
}

// ProvideHealthChecker exposes the repository's readiness probe
func ProvideHealthChecker(repo ports.TodoRepository) ports.HealthChecker {
	if checker, ok := repo.(ports.HealthChecker); ok {
		return checker
	}
	return nil
}

// ProvideUseCaseOptions returns the options shared by the mutating use cases
func ProvideUseCaseOptions(logger *zap.Logger) []usecases.Option {
	return []usecases.Option{usecases.WithLogger(logger)}
}

// ProvideCreateTodo creates the create use case
func ProvideCreateTodo(repo ports.TodoRepository, opts []usecases.Option) *usecases.CreateTodo {
	return usecases.NewCreateTodo(repo, opts...)
}

// ProvideUpdateTodo creates the update use case
func ProvideUpdateTodo(repo ports.TodoRepository, opts []usecases.Option) *usecases.UpdateTodo {
	return usecases.NewUpdateTodo(repo, opts...)
}

// ProvideDeleteTodo creates the delete use case
func ProvideDeleteTodo(repo ports.TodoRepository, opts []usecases.Option) *usecases.DeleteTodo {
	return usecases.NewDeleteTodo(repo, opts...)
}

// ProvideErrorHandler creates the HTTP error handler. Development builds
// expose internal error messages.
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideHealthHandler creates the health handler
func ProvideHealthHandler(checker ports.HealthChecker, logger *zap.Logger) *handlers.HealthHandler {
	return handlers.NewHealthHandler(config.Version, checker, logger)
}

// ProvideRouterOptions maps configuration onto router options
func ProvideRouterOptions(cfg *config.Config) rest.Options {
	return rest.Options{
		ServiceName:        config.ServiceName,
		RequestTimeout:     cfg.RequestTimeout,
		EnableCORS:         cfg.EnableCORS,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
		EnableMetrics:      cfg.EnableMetrics,
		EnableTracing:      cfg.EnableTracing,
		EnableCircuitBreak: cfg.CircuitBreakerEnabled,
	}
}
