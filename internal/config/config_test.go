package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TODOS_CONFIG_DIR",
		"TODOS_FILE",
		"TODOS_GIT_REMOTE",
		"TODOS_GIT_BRANCH",
		"TODOS_GIT_AUTHOR_NAME",
		"TODOS_GIT_AUTHOR_EMAIL",
		"GITHUB_TOKEN",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TODOS_CONFIG_DIR", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ConfigDir != dir {
		t.Errorf("ConfigDir = %q, want %q", cfg.ConfigDir, dir)
	}
	if want := filepath.Join(dir, "todo.md"); cfg.TodoFile != want {
		t.Errorf("TodoFile = %q, want %q", cfg.TodoFile, want)
	}
	if want := filepath.Join(dir, ".env"); cfg.EnvFile != want {
		t.Errorf("EnvFile = %q, want %q", cfg.EnvFile, want)
	}
	if cfg.GitBranch != "main" {
		t.Errorf("GitBranch = %q, want %q", cfg.GitBranch, "main")
	}
	if cfg.GitRemote != "" {
		t.Errorf("GitRemote = %q, want empty", cfg.GitRemote)
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TODOS_CONFIG_DIR", dir)

	envContent := "TODOS_GIT_REMOTE=git@github.com:someone/todos.git\n" +
		"TODOS_GIT_BRANCH=trunk\n" +
		"GITHUB_TOKEN=ghp_fromenvfile\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(envContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GitRemote != "git@github.com:someone/todos.git" {
		t.Errorf("GitRemote = %q", cfg.GitRemote)
	}
	if cfg.GitBranch != "trunk" {
		t.Errorf("GitBranch = %q, want %q", cfg.GitBranch, "trunk")
	}
	if cfg.GitHubToken != "ghp_fromenvfile" {
		t.Errorf("GitHubToken = %q", cfg.GitHubToken)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TODOS_CONFIG_DIR", dir)

	yamlContent := "git_remote: https://github.com/someone/todos.git\n" +
		"git_author_name: Some One\n" +
		"git_author_email: someone@example.com\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GitRemote != "https://github.com/someone/todos.git" {
		t.Errorf("GitRemote = %q", cfg.GitRemote)
	}
	if cfg.GitAuthorName != "Some One" {
		t.Errorf("GitAuthorName = %q", cfg.GitAuthorName)
	}
	if cfg.GitAuthorEmail != "someone@example.com" {
		t.Errorf("GitAuthorEmail = %q", cfg.GitAuthorEmail)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TODOS_CONFIG_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("git_branch: from-yaml\ngit_remote: from-yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("TODOS_GIT_BRANCH=from-dotenv\nTODOS_GIT_REMOTE=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TODOS_GIT_BRANCH", "from-process")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GitBranch != "from-process" {
		t.Errorf("GitBranch = %q, want process env to win", cfg.GitBranch)
	}
	if cfg.GitRemote != "from-dotenv" {
		t.Errorf("GitRemote = %q, want .env to beat config.yaml", cfg.GitRemote)
	}
}

func TestLoadExpandsRelativeTodoFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TODOS_CONFIG_DIR", dir)
	t.Setenv("TODOS_FILE", "notes/todo.md")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !filepath.IsAbs(cfg.TodoFile) {
		t.Errorf("TodoFile = %q, want an absolute path", cfg.TodoFile)
	}
	if filepath.Base(cfg.TodoFile) != "todo.md" {
		t.Errorf("TodoFile = %q, want it to end in todo.md", cfg.TodoFile)
	}
}

func TestRequireRemote(t *testing.T) {
	cfg := &Config{EnvFile: "/tmp/cfg/.env"}
	if _, err := cfg.RequireRemote(); err == nil {
		t.Fatal("RequireRemote() on empty remote, want error")
	}

	cfg.GitRemote = "git@github.com:someone/todos.git"
	remote, err := cfg.RequireRemote()
	if err != nil {
		t.Fatalf("RequireRemote() error = %v", err)
	}
	if remote != cfg.GitRemote {
		t.Errorf("RequireRemote() = %q, want %q", remote, cfg.GitRemote)
	}
}
