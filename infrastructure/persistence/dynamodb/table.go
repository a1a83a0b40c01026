package dynamodb

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// EnsureTable creates the todo table when it does not exist and waits until
// it is active. It is safe to call when the table already exists.
func (r *TodoRepository) EnsureTable(ctx context.Context, maxWait time.Duration) error {
	out, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.tableName),
	})
	switch {
	case err == nil:
		if out.Table != nil && out.Table.TableStatus == types.TableStatusActive {
			r.logger.Info("Table already exists", zap.String("table", r.tableName))
			return nil
		}
	case isTableMissing(err):
		if err := r.createTable(ctx); err != nil {
			return err
		}
	default:
		r.logger.Error("Failed to describe table",
			zap.String("table", r.tableName),
			zap.String("cause", describeError(err)),
		)
		return r.wrapError("describe table", err)
	}

	r.logger.Info("Waiting for table to become active",
		zap.String("table", r.tableName),
		zap.Duration("max_wait", maxWait),
	)

	waiter := dynamodb.NewTableExistsWaiter(r.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.tableName),
	}, maxWait); err != nil {
		r.logger.Error("Table did not become active",
			zap.String("table", r.tableName),
			zap.Error(err),
		)
		return r.wrapError("wait for table", err)
	}

	r.logger.Info("Table is active", zap.String("table", r.tableName))
	return nil
}

func (r *TodoRepository) createTable(ctx context.Context) error {
	r.logger.Info("Creating table", zap.String("table", r.tableName))

	_, err := r.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(r.tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String(attrID),
				AttributeType: types.ScalarAttributeTypeS,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String(attrID),
				KeyType:       types.KeyTypeHash,
			},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		// Another instance created it first
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		r.logger.Error("Failed to create table",
			zap.String("table", r.tableName),
			zap.String("cause", describeError(err)),
		)
		return r.wrapError("create table", err)
	}
	return nil
}
