// Package todo defines the task record and its canonical line form.
package todo

import (
	"time"

	"github.com/google/uuid"

	"github.com/abatilo/todomd/internal/recurrence"
)

// Status represents the completion state of a todo. A recurring todo never
// reaches StatusDone: completing it advances the due date instead.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Todo is one task record. ID is assigned once and never changes; Due, when
// present, is always UTC. CreatedAt and UpdatedAt are informational and do
// not participate in change detection.
type Todo struct {
	ID        uuid.UUID
	Name      string
	Status    Status
	Due       *time.Time
	Recur     *recurrence.Pattern
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New constructs a pending todo with a fresh identity.
func New(name string, now time.Time) *Todo {
	return &Todo{
		ID:        uuid.New(),
		Name:      name,
		Status:    StatusPending,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

// Done reports whether the todo has reached its terminal state.
func (t *Todo) Done() bool {
	return t.Status == StatusDone
}

// Complete applies the completion transition. A todo with both a recurrence
// and a due date stays pending and its due date advances to the next
// occurrence; otherwise, or when the next occurrence cannot be computed,
// the todo becomes done.
func (t *Todo) Complete(loc *time.Location, now time.Time) {
	t.UpdatedAt = now.UTC()

	if t.Recur != nil && t.Due != nil {
		if next, ok := recurrence.NextOccurrence(*t.Due, *t.Recur, loc); ok {
			t.Due = &next
			return
		}
	}
	t.Status = StatusDone
}
