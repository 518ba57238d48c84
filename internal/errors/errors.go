// Package errors defines the typed errors shared across todomd.
package errors

import "fmt"

// InvalidLineError indicates a todo line with the checkbox prefix that does
// not match the line grammar.
type InvalidLineError struct {
	Reason string
}

func (e InvalidLineError) Error() string {
	return fmt.Sprintf("invalid todo line: %s", e.Reason)
}

// MissingRemoteError indicates no git remote is configured.
type MissingRemoteError struct {
	EnvFile string
}

func (e MissingRemoteError) Error() string {
	return fmt.Sprintf("missing git remote; set TODOS_GIT_REMOTE in %s or environment", e.EnvFile)
}

// NotARepositoryError indicates the config dir has no git repository.
type NotARepositoryError struct {
	Dir string
}

func (e NotARepositoryError) Error() string {
	return fmt.Sprintf("%s is not a git repository; run 'todomd setup' first", e.Dir)
}

// CommandError indicates an external command exited non-zero.
type CommandError struct {
	Command string
	Stdout  string
	Stderr  string
}

func (e CommandError) Error() string {
	return fmt.Sprintf("%s failed\nstdout:\n%s\nstderr:\n%s", e.Command, e.Stdout, e.Stderr)
}

// TodoFileOutsideConfigError indicates the todo file cannot be expressed
// relative to the git repository in the config dir.
type TodoFileOutsideConfigError struct {
	TodoFile  string
	ConfigDir string
}

func (e TodoFileOutsideConfigError) Error() string {
	return fmt.Sprintf("todo file %s must be inside config dir %s", e.TodoFile, e.ConfigDir)
}
