package todo

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abatilo/todomd/internal/dateparse"
	todoerrors "github.com/abatilo/todomd/internal/errors"
	"github.com/abatilo/todomd/internal/recurrence"
)

// Line grammar, fields after the name optional and in fixed order:
//
//	- [x|_] <name> (due: <timestamp>)? (reccurence: <phrase>)? (id: <uuid>)?
//
// A trailing period is tolerated on read and never written. The field name
// "reccurence" is misspelled in the persisted format and must stay that way.
const (
	linePrefix = "- ["
	dueField   = "due"
	recurField = "reccurence"
	idField    = "id"
)

// ParseLine decodes one line into a Todo. now and loc feed the due-phrase
// resolver and the bare-"weekly" anchor. The line must start exactly with
// the checkbox prefix; a prefix that is present but malformed is an error
// the caller reports per line. A missing id mints a fresh one, valid for
// this process only. An unparseable due or recurrence phrase leaves that
// field unset rather than failing the line.
func ParseLine(line string, now time.Time, loc *time.Location) (*Todo, error) {
	rest, found := strings.CutPrefix(line, linePrefix)
	if !found {
		return nil, todoerrors.InvalidLineError{Reason: "missing checkbox prefix"}
	}
	if len(rest) < 3 || (rest[0] != 'x' && rest[0] != '_') || rest[1] != ']' || rest[2] != ' ' {
		return nil, todoerrors.InvalidLineError{Reason: "malformed checkbox"}
	}
	done := rest[0] == 'x'
	body := strings.TrimSuffix(rest[3:], ".")

	body, idRaw := cutSuffixField(body, idField)
	body, recurRaw := cutSuffixField(body, recurField)
	body, dueRaw := cutSuffixField(body, dueField)

	name := strings.TrimSpace(body)
	if name == "" {
		return nil, todoerrors.InvalidLineError{Reason: "empty name"}
	}

	t := New(name, now)
	if done {
		t.Status = StatusDone
	}

	if idRaw != "" {
		id, err := uuid.Parse(strings.TrimSpace(idRaw))
		if err != nil {
			return nil, todoerrors.InvalidLineError{Reason: "invalid id: " + err.Error()}
		}
		t.ID = id
	}

	if dueRaw != "" {
		if due, ok := dateparse.Resolve(dueRaw, now, loc); ok {
			t.Due = &due
		}
	}

	if recurRaw != "" {
		if pattern, ok := recurrence.Parse(recurRaw, now.In(loc)); ok {
			t.Recur = &pattern
		}
	}

	return t, nil
}

// cutSuffixField strips a trailing " (<field>: <value>)" group. Fields are
// peeled right to left in reverse grammar order, which enforces the fixed
// field order without a scanner. The value may not contain a closing paren.
func cutSuffixField(s, field string) (string, string) {
	if !strings.HasSuffix(s, ")") {
		return s, ""
	}
	marker := " (" + field + ": "
	idx := strings.LastIndex(s, marker)
	if idx < 0 {
		return s, ""
	}
	value := s[idx+len(marker) : len(s)-1]
	if value == "" || strings.ContainsRune(value, ')') {
		return s, ""
	}
	return s[:idx], value
}

// Line encodes the todo in canonical form: due rendered as an RFC 3339 UTC
// timestamp, recurrence in its canonical phrase, id always written.
func (t *Todo) Line() string {
	var sb strings.Builder
	sb.WriteString(linePrefix)
	if t.Done() {
		sb.WriteByte('x')
	} else {
		sb.WriteByte('_')
	}
	sb.WriteString("] ")
	sb.WriteString(t.Name)

	if t.Due != nil {
		sb.WriteString(" (" + dueField + ": ")
		sb.WriteString(t.Due.UTC().Format(time.RFC3339))
		sb.WriteByte(')')
	}
	if t.Recur != nil {
		sb.WriteString(" (" + recurField + ": ")
		sb.WriteString(t.Recur.String())
		sb.WriteByte(')')
	}
	sb.WriteString(" (" + idField + ": ")
	sb.WriteString(t.ID.String())
	sb.WriteByte(')')

	return sb.String()
}
