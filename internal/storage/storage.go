// Package storage owns the todo document: parsing it into a snapshot,
// validating and canonically formatting its lines, and file operations for
// the config directory layout.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abatilo/todomd/internal/diff"
	"github.com/abatilo/todomd/internal/todo"
)

// Issue is a line-tagged validation problem. Whole-document operations
// collect issues and keep going rather than aborting on the first bad line.
type Issue struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s", i.Line, i.Message)
}

// Document is one parsed version of the todo file: the raw text plus the
// id-keyed snapshot of its parseable todo lines.
type Document struct {
	Content string
	Todos   diff.Snapshot
}

// isTodoLine reports whether a line is meant to be a todo, which is what
// makes a parse failure reportable rather than ignorable prose.
func isTodoLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "- [")
}

// ParseDocument builds a snapshot from content, skipping malformed lines.
func ParseDocument(content string, now time.Time, loc *time.Location) *Document {
	todos := make(diff.Snapshot)
	for _, line := range splitLines(content) {
		if !isTodoLine(line) {
			continue
		}
		parsed, err := todo.ParseLine(line, now, loc)
		if err != nil {
			continue
		}
		todos[parsed.ID] = parsed
	}
	return &Document{Content: content, Todos: todos}
}

// ReadDocument reads and parses the todo file at path.
func ReadDocument(path string, now time.Time, loc *time.Location) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseDocument(string(content), now, loc), nil
}

// Validate checks content line by line: unresolved git conflict markers,
// todo lines missing the required id, unparseable todo lines, and
// duplicate ids.
func Validate(content string, now time.Time, loc *time.Location) []Issue {
	var issues []Issue
	seenIDs := make(map[uuid.UUID]int)

	for idx, line := range splitLines(content) {
		lineNo := idx + 1
		trimmed := strings.TrimLeft(line, " \t")

		if strings.HasPrefix(trimmed, "<<<<<<<") ||
			strings.HasPrefix(trimmed, "=======") ||
			strings.HasPrefix(trimmed, ">>>>>>>") {
			issues = append(issues, Issue{lineNo, "unresolved git conflict marker"})
			continue
		}

		if !isTodoLine(line) {
			continue
		}

		if !strings.Contains(line, "(id:") {
			issues = append(issues, Issue{lineNo, "todo line is missing required id"})
			continue
		}

		parsed, err := todo.ParseLine(line, now, loc)
		if err != nil {
			issues = append(issues, Issue{lineNo, "todo line could not be parsed"})
			continue
		}

		if id, ok := extractID(line); ok {
			if firstLine, dup := seenIDs[id]; dup {
				issues = append(issues, Issue{lineNo,
					fmt.Sprintf("duplicate id %s (first seen on line %d)", id, firstLine)})
			} else {
				seenIDs[id] = lineNo
			}
			if id != parsed.ID {
				issues = append(issues, Issue{lineNo, "parsed id mismatch, this line may be malformed"})
			}
		}
	}

	return issues
}

// Format rewrites every parseable todo line in canonical form. Non-todo
// lines pass through with trailing whitespace trimmed; todo lines that
// cannot be formatted pass through unchanged and are reported. The
// document's trailing-newline state is preserved.
func Format(content string, now time.Time, loc *time.Location) (string, []Issue) {
	var issues []Issue
	lines := splitLines(content)
	out := make([]string, 0, len(lines))

	for idx, line := range lines {
		lineNo := idx + 1

		if !isTodoLine(line) {
			out = append(out, strings.TrimRight(line, " \t\r"))
			continue
		}

		if !strings.Contains(line, "(id:") {
			issues = append(issues, Issue{lineNo, "cannot format todo without id"})
			out = append(out, strings.TrimRight(line, " \t\r"))
			continue
		}

		parsed, err := todo.ParseLine(line, now, loc)
		if err != nil {
			issues = append(issues, Issue{lineNo, "todo line could not be parsed"})
			out = append(out, strings.TrimRight(line, " \t\r"))
			continue
		}
		out = append(out, parsed.Line())
	}

	formatted := strings.Join(out, "\n")
	if strings.HasSuffix(content, "\n") {
		formatted += "\n"
	}
	return formatted, issues
}

// extractID pulls the uuid out of the first "(id: ...)" group on the line.
func extractID(line string) (uuid.UUID, bool) {
	idx := strings.Index(line, "(id:")
	if idx < 0 {
		return uuid.Nil, false
	}
	raw := line[idx+len("(id:"):]
	raw = strings.TrimLeft(raw, " ")
	end := strings.IndexByte(raw, ')')
	if end < 0 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw[:end])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// splitLines splits on newlines without producing a trailing empty line
// for newline-terminated content.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	trimmed := strings.TrimSuffix(content, "\n")
	if trimmed == "" {
		return []string{""}
	}
	return strings.Split(trimmed, "\n")
}

// WriteFileAtomic replaces path by writing a temp file in the same
// directory, syncing it, and renaming it into place.
func WriteFileAtomic(path, content string) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, filepath.Base(path)+".tmp")

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to fsync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// EnsureLayout creates the config directory, the todo file, and the env
// file if missing, and keeps .env ignored by the directory's git repo.
func EnsureLayout(configDir, todoFile, envFile string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", configDir, err)
	}

	for _, path := range []string{todoFile, envFile} {
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
	}

	return ensureGitignoreHasEnv(filepath.Join(configDir, ".gitignore"))
}

func ensureGitignoreHasEnv(path string) error {
	content := ""
	if data, err := os.ReadFile(path); err == nil {
		content = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == ".env" {
			return nil
		}
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += ".env\n"
	return WriteFileAtomic(path, content)
}
