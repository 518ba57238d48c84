package diff

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/abatilo/todomd/internal/todo"
)

// 2026-02-23 is a Monday.
func testNow() time.Time {
	return time.Date(2026, 2, 23, 18, 0, 0, 0, time.UTC)
}

func snapshot(t *testing.T, lines ...string) Snapshot {
	t.Helper()
	todos := make(Snapshot, len(lines))
	for _, line := range lines {
		parsed, err := todo.ParseLine(line, testNow(), time.UTC)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", line, err)
		}
		todos[parsed.ID] = parsed
	}
	return todos
}

func kindsByID(set ChangeSet) map[uuid.UUID]ChangeKind {
	kinds := make(map[uuid.UUID]ChangeKind, len(set.Changes))
	for _, change := range set.Changes {
		kinds[change.ID] = change.Kind
	}
	return kinds
}

const (
	idA = "123e4567-e89b-12d3-a456-426614174000"
	idB = "123e4567-e89b-12d3-a456-426614174001"
	idC = "123e4567-e89b-12d3-a456-426614174002"
)

func TestSemanticChangesAddedUpdatedDeleted(t *testing.T) {
	previous := snapshot(t,
		"- [_] A (id: "+idA+")",
		"- [_] B (id: "+idB+")",
	)
	current := snapshot(t,
		"- [_] A changed (id: "+idA+")",
		"- [_] C (id: "+idC+")",
	)

	set := SemanticChanges(previous, current, time.UTC)
	if set.Added != 1 || set.Updated != 1 || set.Deleted != 1 || set.Completed != 0 {
		t.Fatalf("counts = +%d ~%d -%d done %d", set.Added, set.Updated, set.Deleted, set.Completed)
	}

	kinds := kindsByID(set)
	if kinds[uuid.MustParse(idA)] != KindUpdated {
		t.Errorf("A should be updated, got %s", kinds[uuid.MustParse(idA)])
	}
	if kinds[uuid.MustParse(idB)] != KindDeleted {
		t.Errorf("B should be deleted, got %s", kinds[uuid.MustParse(idB)])
	}
	if kinds[uuid.MustParse(idC)] != KindAdded {
		t.Errorf("C should be added, got %s", kinds[uuid.MustParse(idC)])
	}
}

func TestSemanticChangesNoChange(t *testing.T) {
	line := "- [_] Steady (due: 2026-02-23T14:00:00Z) (reccurence: daily) (id: " + idA + ")"
	set := SemanticChanges(snapshot(t, line), snapshot(t, line), time.UTC)
	if !set.Empty() {
		t.Errorf("identical snapshots should produce no changes: %+v", set)
	}
	if len(set.Changes) != 0 {
		t.Errorf("Changes should be empty, got %v", set.Changes)
	}
}

func TestSemanticChangesCompletionByCheckbox(t *testing.T) {
	previous := snapshot(t, "- [_] One shot (id: "+idA+")")
	current := snapshot(t, "- [x] One shot (id: "+idA+")")

	set := SemanticChanges(previous, current, time.UTC)
	if set.Completed != 1 || set.Updated != 0 {
		t.Errorf("counts = %+v, want one completed", set)
	}
}

func TestSemanticChangesRolloverIsCompletion(t *testing.T) {
	previous := snapshot(t,
		"- [_] Water plants (due: 2026-02-23T14:00:00Z) (reccurence: weekly on monday, thursday) (id: "+idA+")",
	)
	current := snapshot(t,
		"- [_] Water plants (due: 2026-02-26T14:00:00Z) (reccurence: weekly on monday, thursday) (id: "+idA+")",
	)

	set := SemanticChanges(previous, current, time.UTC)
	if set.Completed != 1 || set.Updated != 0 {
		t.Errorf("rollover should classify as completed: %+v", set)
	}
}

func TestSemanticChangesNonRolloverDueEditIsUpdate(t *testing.T) {
	previous := snapshot(t,
		"- [_] Water plants (due: 2026-02-23T14:00:00Z) (reccurence: weekly on monday, thursday) (id: "+idA+")",
	)
	// Friday is not the next occurrence after Monday.
	current := snapshot(t,
		"- [_] Water plants (due: 2026-02-27T14:00:00Z) (reccurence: weekly on monday, thursday) (id: "+idA+")",
	)

	set := SemanticChanges(previous, current, time.UTC)
	if set.Updated != 1 || set.Completed != 0 {
		t.Errorf("due edit should classify as updated: %+v", set)
	}
}

func TestSemanticChangesDeletedOnly(t *testing.T) {
	previous := snapshot(t, "- [_] Going away (id: "+idA+")")
	set := SemanticChanges(previous, Snapshot{}, time.UTC)

	if set.Deleted != 1 || set.Added != 0 || set.Updated != 0 || set.Completed != 0 {
		t.Errorf("counts = %+v, want exactly one deleted", set)
	}
	if len(set.Changes) != 1 || set.Changes[0].Kind != KindDeleted {
		t.Errorf("Changes = %v", set.Changes)
	}
}

func TestLineDiffSummary(t *testing.T) {
	before := "- [_] A\n- [_] B\n- [_] C\n"
	after := "- [_] A\n- [_] B changed\n- [_] C\n- [_] D\n"

	if got := LineDiffSummary(before, after); got != "line diff (+2/-1)" {
		t.Errorf("LineDiffSummary = %q, want %q", got, "line diff (+2/-1)")
	}

	if got := LineDiffSummary("same\n", "same\n"); got != "line diff (+0/-0)" {
		t.Errorf("LineDiffSummary = %q, want +0/-0", got)
	}
}
