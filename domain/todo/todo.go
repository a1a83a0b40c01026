// Package todo holds the Todo entity and its invariants.
package todo

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	pkgerrors "todo-backend/pkg/errors"
)

// MaxTitleLength is the maximum number of characters in a trimmed title.
const MaxTitleLength = 200

// Todo is a short text task. Fields are private so that every change goes
// through a method that keeps the title rule and timestamp ordering intact.
type Todo struct {
	id          string
	title       string
	description *string
	completed   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// New builds a Todo from already known state. It is used both when creating
// a todo and when rebuilding one from storage.
func New(id, title string, description *string, completed bool, createdAt, updatedAt time.Time) (*Todo, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.NewValidationError("id cannot be empty")
	}

	trimmed, err := ValidateTitle(title)
	if err != nil {
		return nil, err
	}

	createdAt = normalize(createdAt)
	updatedAt = normalize(updatedAt)
	if updatedAt.Before(createdAt) {
		return nil, pkgerrors.NewValidationError("updated_at cannot be before created_at")
	}

	return &Todo{
		id:          id,
		title:       trimmed,
		description: copyString(description),
		completed:   completed,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// ValidateTitle applies the title rule and returns the trimmed title.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", pkgerrors.NewValidationError("title is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return "", pkgerrors.NewValidationError(
			fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
	}
	return trimmed, nil
}

// ID returns the todo's identifier
func (t *Todo) ID() string { return t.id }

// Title returns the trimmed title
func (t *Todo) Title() string { return t.title }

// Description returns a copy of the description, nil when absent
func (t *Todo) Description() *string { return copyString(t.description) }

// Completed reports whether the todo is done
func (t *Todo) Completed() bool { return t.completed }

// CreatedAt returns the creation time
func (t *Todo) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns the time of the last mutation
func (t *Todo) UpdatedAt() time.Time { return t.updatedAt }

// Clone returns an independent copy. Callers that hand one entity to
// several owners clone it so mutations stay private.
func (t *Todo) Clone() *Todo {
	c := *t
	c.description = copyString(t.description)
	return &c
}

// MarkCompleted marks the todo as done.
func (t *Todo) MarkCompleted(now time.Time) {
	t.completed = true
	t.touch(now)
}

// MarkIncomplete marks the todo as not done.
func (t *Todo) MarkIncomplete(now time.Time) {
	t.completed = false
	t.touch(now)
}

// UpdateTitle replaces the title. On a validation error the todo is unchanged.
func (t *Todo) UpdateTitle(newTitle string, now time.Time) error {
	trimmed, err := ValidateTitle(newTitle)
	if err != nil {
		return err
	}
	t.title = trimmed
	t.touch(now)
	return nil
}

// UpdateDescription replaces the description; nil clears it.
func (t *Todo) UpdateDescription(newDescription *string, now time.Time) {
	t.description = copyString(newDescription)
	t.touch(now)
}

// touch advances updatedAt to now. updatedAt never moves backwards and every
// mutation is observable, so a clock that did not advance still yields a
// strictly later timestamp.
func (t *Todo) touch(now time.Time) {
	now = normalize(now)
	if !now.After(t.updatedAt) {
		now = t.updatedAt.Add(time.Nanosecond)
	}
	t.updatedAt = now
}

// normalize drops the monotonic reading and location so that times read
// back from storage compare equal with ==.
func normalize(ts time.Time) time.Time {
	return ts.UTC().Round(0)
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
