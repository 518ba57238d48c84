// Package diff classifies what changed between two snapshots of the todo
// document, distinguishing edits from completions and recurring rollovers.
package diff

import (
	"time"

	"github.com/google/uuid"

	"github.com/abatilo/todomd/internal/recurrence"
	"github.com/abatilo/todomd/internal/todo"
)

// Snapshot is the id-keyed set of todos parsed from one version of the
// document. Iteration order carries no meaning.
type Snapshot map[uuid.UUID]*todo.Todo

// ChangeKind classifies a single todo's transition between snapshots.
type ChangeKind string

const (
	KindAdded     ChangeKind = "added"
	KindUpdated   ChangeKind = "updated"
	KindDeleted   ChangeKind = "deleted"
	KindCompleted ChangeKind = "completed"
)

// Change pairs a todo identity with how it changed.
type Change struct {
	ID   uuid.UUID  `json:"id"`
	Kind ChangeKind `json:"kind"`
}

// ChangeSet aggregates the classified changes between two snapshots. The
// order of Changes is not guaranteed.
type ChangeSet struct {
	Added     int      `json:"added"`
	Updated   int      `json:"updated"`
	Deleted   int      `json:"deleted"`
	Completed int      `json:"completed"`
	Changes   []Change `json:"changes,omitempty"`
}

// Empty reports whether nothing changed.
func (c ChangeSet) Empty() bool {
	return c.Added == 0 && c.Updated == 0 && c.Deleted == 0 && c.Completed == 0
}

// SemanticChanges compares two snapshots by identity. An id only in
// current is Added; only in previous, Deleted. An id in both with any of
// {done, due, recurrence, name} differing is Completed when the transition
// is a completion or a recurring rollover, otherwise Updated. loc feeds
// the rollover computation.
func SemanticChanges(previous, current Snapshot, loc *time.Location) ChangeSet {
	var set ChangeSet

	record := func(id uuid.UUID, kind ChangeKind) {
		set.Changes = append(set.Changes, Change{ID: id, Kind: kind})
		switch kind {
		case KindAdded:
			set.Added++
		case KindUpdated:
			set.Updated++
		case KindDeleted:
			set.Deleted++
		case KindCompleted:
			set.Completed++
		}
	}

	for id := range current {
		if _, ok := previous[id]; !ok {
			record(id, KindAdded)
		}
	}

	for id, prev := range previous {
		curr, ok := current[id]
		if !ok {
			record(id, KindDeleted)
			continue
		}
		if !todosDiffer(prev, curr) {
			continue
		}
		if isCompletionTransition(prev, curr, loc) {
			record(id, KindCompleted)
		} else {
			record(id, KindUpdated)
		}
	}

	return set
}

// todosDiffer compares the four observable fields. Creation and update
// timestamps are informational and excluded.
func todosDiffer(previous, current *todo.Todo) bool {
	if previous.Done() != current.Done() || previous.Name != current.Name {
		return true
	}
	if !timesEqual(previous.Due, current.Due) {
		return true
	}
	return !patternsEqual(previous.Recur, current.Recur)
}

func isCompletionTransition(previous, current *todo.Todo, loc *time.Location) bool {
	if !previous.Done() && current.Done() {
		return true
	}
	if current.Done() || previous.Recur == nil || previous.Due == nil || current.Due == nil {
		return false
	}
	return recurrence.IsRollover(*previous.Due, *current.Due, *previous.Recur, loc)
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func patternsEqual(a, b *recurrence.Pattern) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
