package usecases

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-backend/pkg/utils"
)

// IDGenerator produces identifiers for new todos
type IDGenerator func() string

// DefaultIDGenerator returns random UUID-v4 strings
func DefaultIDGenerator() string {
	return uuid.NewString()
}

type options struct {
	clock  utils.Clock
	nextID IDGenerator
	logger *zap.Logger
}

// Option customizes a use case
type Option func(*options)

// WithClock sets the time source used for created_at and updated_at
func WithClock(clock utils.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithIDGenerator sets the id source used by CreateTodo
func WithIDGenerator(gen IDGenerator) Option {
	return func(o *options) {
		if gen != nil {
			o.nextID = gen
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		clock:  utils.SystemClock{},
		nextID: DefaultIDGenerator,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
