package dynamodb

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"todo-backend/domain/todo"
	"todo-backend/pkg/utils"
)

const (
	attrID          = "id"
	attrDescription = "description"
)

// todoItem represents the DynamoDB item structure for a todo
type todoItem struct {
	ID          string  `dynamodbav:"id"`
	Title       string  `dynamodbav:"title"`
	Description *string `dynamodbav:"description,omitempty"`
	Completed   bool    `dynamodbav:"completed"`
	CreatedAt   string  `dynamodbav:"created_at"`
	UpdatedAt   string  `dynamodbav:"updated_at"`
}

// toItem converts an entity to a DynamoDB item
func toItem(t *todo.Todo) (map[string]types.AttributeValue, error) {
	item := todoItem{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		Completed:   t.Completed(),
		CreatedAt:   utils.FormatTimestamp(t.CreatedAt()),
		UpdatedAt:   utils.FormatTimestamp(t.UpdatedAt()),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal todo: %w", err)
	}

	// An empty description is a value, not an absent one
	if item.Description != nil {
		av[attrDescription] = &types.AttributeValueMemberS{Value: *item.Description}
	}

	return av, nil
}

// fromItem converts a DynamoDB item to an entity. A missing completed flag
// reads as false and a missing or NULL description reads as absent.
func fromItem(av map[string]types.AttributeValue) (*todo.Todo, error) {
	var item todoItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("unknown record format: %w", err)
	}

	createdAt, err := utils.ParseTimestamp(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("unknown record format: created_at: %w", err)
	}
	updatedAt, err := utils.ParseTimestamp(item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("unknown record format: updated_at: %w", err)
	}

	t, err := todo.New(item.ID, item.Title, item.Description, item.Completed, createdAt, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("unknown record format: %w", err)
	}
	return t, nil
}

// keyFor builds the primary key for a todo id
func keyFor(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrID: &types.AttributeValueMemberS{Value: id},
	}
}
