package gitsync

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/abatilo/todomd/internal/config"
	"github.com/abatilo/todomd/internal/diff"
)

func testConfig(configDir, todoFile string) *config.Config {
	return &config.Config{ConfigDir: configDir, TodoFile: todoFile}
}

func TestGithubRepoSlug(t *testing.T) {
	tests := []struct {
		remote string
		want   string
		ok     bool
	}{
		{"git@github.com:someone/todos.git", "someone/todos", true},
		{"git@github.com:someone/todos", "someone/todos", true},
		{"ssh://git@github.com/someone/todos.git", "someone/todos", true},
		{"https://github.com/someone/todos.git", "someone/todos", true},
		{"https://github.com/someone/todos", "someone/todos", true},
		{"http://github.com/someone/todos", "someone/todos", true},
		{"https://github.com/someone/todos/", "someone/todos", true},
		{"https://gitlab.com/someone/todos.git", "", false},
		{"git@github.com:justowner", "", false},
		{"https://github.com/a/b/c", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := githubRepoSlug(tt.remote)
		if got != tt.want || ok != tt.ok {
			t.Errorf("githubRepoSlug(%q) = (%q, %t), want (%q, %t)",
				tt.remote, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCommitMessage(t *testing.T) {
	changes := diff.ChangeSet{Added: 2, Updated: 1, Deleted: 0, Completed: 3}

	got := commitMessage(changes, "line diff (+3/-1)")
	want := "sync todos: +2 ~1 -0 done 3 (line diff (+3/-1))"
	if got != want {
		t.Errorf("commitMessage() = %q, want %q", got, want)
	}
}

func TestSetupWithoutRemote(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	cfg := &config.Config{
		ConfigDir: dir,
		TodoFile:  filepath.Join(dir, "todo.md"),
		EnvFile:   filepath.Join(dir, ".env"),
		GitBranch: "main",
	}

	// No remote configured: setup still initializes a usable local
	// repository and only skips the remote wiring.
	if err := Setup(cfg, ""); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		t.Errorf("expected a git repository in %s: %v", dir, err)
	}
	if _, err := runGit(dir, "remote", "get-url", "origin"); err == nil {
		t.Error("expected no origin remote to be configured")
	}
}

func TestTodoPathRelative(t *testing.T) {
	// Inside the config dir.
	cfgDir := t.TempDir()
	cfg := testConfig(cfgDir, cfgDir+"/todo.md")
	rel, err := todoPathRelative(cfg)
	if err != nil {
		t.Fatalf("todoPathRelative() error = %v", err)
	}
	if rel != "todo.md" {
		t.Errorf("todoPathRelative() = %q, want %q", rel, "todo.md")
	}

	// Nested inside the config dir.
	cfg = testConfig(cfgDir, cfgDir+"/notes/todo.md")
	rel, err = todoPathRelative(cfg)
	if err != nil {
		t.Fatalf("todoPathRelative() error = %v", err)
	}
	if rel != "notes/todo.md" {
		t.Errorf("todoPathRelative() = %q, want %q", rel, "notes/todo.md")
	}

	// Outside the config dir.
	cfg = testConfig(cfgDir, t.TempDir()+"/todo.md")
	if _, err := todoPathRelative(cfg); err == nil {
		t.Error("todoPathRelative() outside config dir, want error")
	}
}
