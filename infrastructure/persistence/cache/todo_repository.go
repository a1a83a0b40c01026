// Package cache provides a Redis read-through decorator for the todo repository.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"todo-backend/application/ports"
	"todo-backend/domain/todo"
	"todo-backend/pkg/utils"
)

const (
	keyList       = "todo:list"
	keyItemPrefix = "todo:item:"
	keyGenPrefix  = "todo:gen:"

	// generationTTL bounds how long a generation counter outlives its last write
	generationTTL = 24 * time.Hour
)

// fillScript stores a loaded value only if no write bumped the key's
// generation since the load began. KEYS: entry, generation. ARGV: expected
// generation, payload, ttl in milliseconds.
var fillScript = redis.NewScript(`
local gen = redis.call("GET", KEYS[2])
if not gen then gen = "0" end
if gen ~= ARGV[1] then return 0 end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// cachedTodo is the JSON snapshot stored in Redis
type cachedTodo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// TodoRepository caches list and single-item reads in Redis and invalidates
// them on every write. Redis failures are logged and reads fall back to the
// wrapped repository.
//
// Every cache key has a generation counter that writes increment. A load
// records the generation before reading the wrapped repository and only
// fills the cache if it is unchanged, so a load that raced a write cannot
// put the old value back.
type TodoRepository struct {
	next   ports.TodoRepository
	rdb    redis.Cmdable
	ttl    time.Duration
	sf     singleflight.Group
	logger *zap.Logger
}

// NewTodoRepository wraps next with a Redis cache
func NewTodoRepository(next ports.TodoRepository, rdb redis.Cmdable, ttl time.Duration, logger *zap.Logger) *TodoRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &TodoRepository{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.Named("cache"),
	}
}

func (r *TodoRepository) FindAll(ctx context.Context) ([]*todo.Todo, error) {
	v, err, _ := r.sf.Do(keyList, func() (interface{}, error) {
		if list, ok := r.getList(ctx); ok {
			return list, nil
		}
		gen, canFill := r.generation(ctx, keyList)
		list, err := r.next.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		if canFill {
			r.fill(ctx, keyList, gen, snapshots(list))
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers that joined the same flight must not share entities
	shared := v.([]*todo.Todo)
	list := make([]*todo.Todo, 0, len(shared))
	for _, t := range shared {
		list = append(list, t.Clone())
	}
	return list, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id string) (*todo.Todo, error) {
	key := keyItemPrefix + id
	v, err, _ := r.sf.Do(key, func() (interface{}, error) {
		if t, ok := r.getItem(ctx, key); ok {
			return t, nil
		}
		gen, canFill := r.generation(ctx, key)
		t, err := r.next.FindByID(ctx, id)
		if err != nil || t == nil {
			return t, err
		}
		if canFill {
			r.fill(ctx, key, gen, snapshot(t))
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	t, _ := v.(*todo.Todo)
	if t == nil {
		return nil, nil
	}
	return t.Clone(), nil
}

func (r *TodoRepository) Save(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	saved, err := r.next.Save(ctx, t)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, t.ID())
	return saved, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// Exists is not cached
func (r *TodoRepository) Exists(ctx context.Context, id string) (bool, error) {
	return r.next.Exists(ctx, id)
}

// Ping checks Redis and the wrapped repository when it supports health checks
func (r *TodoRepository) Ping(ctx context.Context) error {
	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return err
	}
	if hc, ok := r.next.(ports.HealthChecker); ok {
		return hc.Ping(ctx)
	}
	return nil
}

func (r *TodoRepository) getList(ctx context.Context) ([]*todo.Todo, bool) {
	var cached []cachedTodo
	if !r.get(ctx, keyList, &cached) {
		return nil, false
	}
	list := make([]*todo.Todo, 0, len(cached))
	for _, c := range cached {
		t, err := c.toEntity()
		if err != nil {
			r.logger.Warn("Discarding unreadable cache entry", zap.String("key", keyList), zap.Error(err))
			return nil, false
		}
		list = append(list, t)
	}
	return list, true
}

func (r *TodoRepository) getItem(ctx context.Context, key string) (*todo.Todo, bool) {
	var cached cachedTodo
	if !r.get(ctx, key, &cached) {
		return nil, false
	}
	t, err := cached.toEntity()
	if err != nil {
		r.logger.Warn("Discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return t, true
}

func (r *TodoRepository) get(ctx context.Context, key string, dst interface{}) bool {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		r.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		r.logger.Warn("Cache entry is not valid JSON", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// generation returns the current generation of key. ok is false when it
// cannot be read, in which case the caller must not fill the cache.
func (r *TodoRepository) generation(ctx context.Context, key string) (string, bool) {
	gen, err := r.rdb.Get(ctx, keyGenPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "0", true
	}
	if err != nil {
		r.logger.Warn("Cache generation read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return gen, true
}

func (r *TodoRepository) fill(ctx context.Context, key, gen string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		r.logger.Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	stored, err := fillScript.Run(ctx, r.rdb,
		[]string{key, keyGenPrefix + key},
		gen, b, r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		r.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	if stored == 0 {
		r.logger.Debug("Skipped cache fill after concurrent write", zap.String("key", key))
	}
}

// invalidate bumps the generations of the list and the item and drops both
// entries after a write
func (r *TodoRepository) invalidate(ctx context.Context, id string) {
	r.sf.Forget(keyList)
	r.sf.Forget(keyItemPrefix + id)

	pipe := r.rdb.TxPipeline()
	for _, key := range []string{keyList, keyItemPrefix + id} {
		pipe.Incr(ctx, keyGenPrefix+key)
		pipe.Expire(ctx, keyGenPrefix+key, generationTTL)
	}
	pipe.Del(ctx, keyList, keyItemPrefix+id)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn("Cache invalidation failed", zap.String("id", id), zap.Error(err))
	}
}

func snapshot(t *todo.Todo) cachedTodo {
	return cachedTodo{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		Completed:   t.Completed(),
		CreatedAt:   utils.FormatTimestamp(t.CreatedAt()),
		UpdatedAt:   utils.FormatTimestamp(t.UpdatedAt()),
	}
}

func snapshots(list []*todo.Todo) []cachedTodo {
	out := make([]cachedTodo, 0, len(list))
	for _, t := range list {
		out = append(out, snapshot(t))
	}
	return out
}

func (c cachedTodo) toEntity() (*todo.Todo, error) {
	createdAt, err := utils.ParseTimestamp(c.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := utils.ParseTimestamp(c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return todo.New(c.ID, c.Title, c.Description, c.Completed, createdAt, updatedAt)
}
