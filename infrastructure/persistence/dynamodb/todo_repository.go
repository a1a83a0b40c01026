package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"todo-backend/domain/todo"
	pkgerrors "todo-backend/pkg/errors"
)

// TodoRepository implements ports.TodoRepository using a single DynamoDB
// table keyed by id.
type TodoRepository struct {
	client    Client
	tableName string
	logger    *zap.Logger
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(client Client, tableName string, logger *zap.Logger) *TodoRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TodoRepository{
		client:    client,
		tableName: tableName,
		logger:    logger.Named("dynamodb"),
	}
}

// TableName returns the table this repository reads and writes
func (r *TodoRepository) TableName() string {
	return r.tableName
}

// FindAll scans every page of the table
func (r *TodoRepository) FindAll(ctx context.Context) ([]*todo.Todo, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}

	todos := make([]*todo.Todo, 0)
	paginator := dynamodb.NewScanPaginator(r.client, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			r.logger.Error("Failed to scan todos", zap.Error(err))
			return nil, r.wrapError("scan todos", err)
		}

		for _, av := range page.Items {
			t, err := fromItem(av)
			if err != nil {
				r.logger.Error("Failed to decode todo", zap.Error(err))
				return nil, r.wrapError("decode todo", err)
			}
			todos = append(todos, t)
		}
	}

	r.logger.Debug("Scanned todos", zap.Int("count", len(todos)))
	return todos, nil
}

// FindByID returns nil with no error when the todo or the table does not exist
func (r *TodoRepository) FindByID(ctx context.Context, id string) (*todo.Todo, error) {
	input := &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            keyFor(id),
		ConsistentRead: aws.Bool(true),
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		if isTableMissing(err) {
			r.logger.Warn("Table not found while reading todo",
				zap.String("table", r.tableName),
				zap.String("id", id),
			)
			return nil, nil
		}
		r.logger.Error("Failed to get todo", zap.String("id", id), zap.Error(err))
		return nil, r.wrapError("get todo", err)
	}

	if len(result.Item) == 0 {
		return nil, nil
	}

	t, err := fromItem(result.Item)
	if err != nil {
		r.logger.Error("Failed to decode todo", zap.String("id", id), zap.Error(err))
		return nil, r.wrapError("decode todo", err)
	}
	return t, nil
}

// Save writes the complete record, replacing any existing one
func (r *TodoRepository) Save(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	item, err := toItem(t)
	if err != nil {
		return nil, r.wrapError("encode todo", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save todo", zap.String("id", t.ID()), zap.Error(err))
		return nil, r.wrapError("save todo", err)
	}

	r.logger.Debug("Saved todo", zap.String("id", t.ID()))
	return t, nil
}

// Delete removes the record. DynamoDB deletes are idempotent.
func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       keyFor(id),
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		r.logger.Error("Failed to delete todo", zap.String("id", id), zap.Error(err))
		return r.wrapError("delete todo", err)
	}

	r.logger.Debug("Deleted todo", zap.String("id", id))
	return nil
}

// Exists fetches only the key attribute
func (r *TodoRepository) Exists(ctx context.Context, id string) (bool, error) {
	proj := expression.NamesList(expression.Name(attrID))
	expr, err := expression.NewBuilder().WithProjection(proj).Build()
	if err != nil {
		return false, r.wrapError("build projection", err)
	}

	input := &dynamodb.GetItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      keyFor(id),
		ConsistentRead:           aws.Bool(true),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		if isTableMissing(err) {
			return false, nil
		}
		r.logger.Error("Failed to check todo", zap.String("id", id), zap.Error(err))
		return false, r.wrapError("check todo", err)
	}

	return len(result.Item) > 0, nil
}

// Ping checks that the table exists and is active
func (r *TodoRepository) Ping(ctx context.Context) error {
	out, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return r.wrapError("describe table", err)
	}
	if out.Table == nil || out.Table.TableStatus != types.TableStatusActive {
		status := "UNKNOWN"
		if out.Table != nil {
			status = string(out.Table.TableStatus)
		}
		return pkgerrors.NewUnavailableError("dynamodb").
			WithDetail("table", r.tableName).
			WithDetail("status", status)
	}
	return nil
}

// wrapError converts a storage failure into a PersistenceError carrying the
// DynamoDB error code when there is one
func (r *TodoRepository) wrapError(operation string, err error) error {
	appErr := pkgerrors.NewPersistenceError(operation, err).
		WithDetail("table", r.tableName)

	var ae smithy.APIError
	if errors.As(err, &ae) {
		appErr.WithCode(ae.ErrorCode())
	}
	return appErr
}

func isTableMissing(err error) bool {
	var rnf *types.ResourceNotFoundException
	return errors.As(err, &rnf)
}

func describeError(err error) string {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return fmt.Sprintf("%s: %s", ae.ErrorCode(), ae.ErrorMessage())
	}
	return err.Error()
}
