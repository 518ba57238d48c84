// Package gitsync keeps the todo file in a git repository inside the
// config dir and pushes it to a GitHub remote. All git and gh work goes
// through the user's installed binaries.
package gitsync

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/abatilo/todomd/internal/config"
	"github.com/abatilo/todomd/internal/diff"
	todoerrors "github.com/abatilo/todomd/internal/errors"
	"github.com/abatilo/todomd/internal/storage"
)

// Result describes what a sync did.
type Result struct {
	Committed   bool           `json:"committed"`
	Changes     diff.ChangeSet `json:"changes"`
	LineSummary string         `json:"line_summary,omitempty"`
}

// Setup prepares the config dir for syncing: creates the layout,
// initializes the git repository, and, when a remote is known, ensures
// the GitHub repository exists and points origin at it. A non-empty
// remoteOverride wins over the configured one and gets persisted to the
// .env file.
func Setup(cfg *config.Config, remoteOverride string) error {
	if err := storage.EnsureLayout(cfg.ConfigDir, cfg.TodoFile, cfg.EnvFile); err != nil {
		return err
	}

	remote := cfg.GitRemote
	if remoteOverride != "" {
		remote = remoteOverride
		if err := persistRemote(cfg.EnvFile, remote); err != nil {
			return err
		}
	}

	if _, err := os.Stat(filepath.Join(cfg.ConfigDir, ".git")); os.IsNotExist(err) {
		if _, err := runGit(cfg.ConfigDir, "init"); err != nil {
			return err
		}
	}
	if _, err := runGit(cfg.ConfigDir, "checkout", "-B", cfg.GitBranch); err != nil {
		return err
	}

	// The remote is only required for sync. Setup without one still leaves
	// a usable local repository.
	if remote == "" {
		return nil
	}
	if err := ensureGitHubRepo(cfg, remote); err != nil {
		return err
	}
	return ensureRemote(cfg.ConfigDir, remote)
}

// Sync commits and pushes the todo file, returning the semantic changes
// against the last committed version.
func Sync(cfg *config.Config, now time.Time, loc *time.Location) (*Result, error) {
	if err := storage.EnsureLayout(cfg.ConfigDir, cfg.TodoFile, cfg.EnvFile); err != nil {
		return nil, err
	}
	if _, err := cfg.RequireRemote(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(cfg.ConfigDir, ".git")); os.IsNotExist(err) {
		return nil, todoerrors.NotARepositoryError{Dir: cfg.ConfigDir}
	}

	relPath, err := todoPathRelative(cfg)
	if err != nil {
		return nil, err
	}

	// Best effort: bring the branch up to date before diffing. A failed
	// fetch (offline, empty remote) must not block a local commit.
	_, _ = runGit(cfg.ConfigDir, "fetch", "origin")
	if _, err := runGit(cfg.ConfigDir, "checkout", "-B", cfg.GitBranch); err != nil {
		return nil, err
	}
	_, _ = runGit(cfg.ConfigDir, "pull", "--rebase", "origin", cfg.GitBranch)

	// HEAD may not exist yet on a fresh repository, in which case the
	// previous version is empty and everything counts as added.
	previousContent, err := runGit(cfg.ConfigDir, "show", "HEAD:"+relPath)
	if err != nil {
		previousContent = ""
	}
	previous := storage.ParseDocument(previousContent, now, loc)

	current, err := storage.ReadDocument(cfg.TodoFile, now, loc)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Changes:     diff.SemanticChanges(previous.Todos, current.Todos, loc),
		LineSummary: diff.LineDiffSummary(previous.Content, current.Content),
	}

	status, err := runGit(cfg.ConfigDir, "status", "--porcelain", "--", relPath)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(status) == "" {
		return result, nil
	}

	if _, err := runGit(cfg.ConfigDir, "add", "--", relPath); err != nil {
		return nil, err
	}
	if err := commit(cfg, commitMessage(result.Changes, result.LineSummary)); err != nil {
		return nil, err
	}
	if _, err := runGit(cfg.ConfigDir, "push", "-u", "origin", cfg.GitBranch); err != nil {
		return nil, err
	}
	result.Committed = true
	return result, nil
}

func commit(cfg *config.Config, message string) error {
	cmd := exec.Command("git", "commit", "-m", message)
	cmd.Dir = cfg.ConfigDir
	cmd.Env = os.Environ()
	if cfg.GitAuthorName != "" {
		cmd.Env = append(cmd.Env,
			"GIT_AUTHOR_NAME="+cfg.GitAuthorName,
			"GIT_COMMITTER_NAME="+cfg.GitAuthorName,
		)
	}
	if cfg.GitAuthorEmail != "" {
		cmd.Env = append(cmd.Env,
			"GIT_AUTHOR_EMAIL="+cfg.GitAuthorEmail,
			"GIT_COMMITTER_EMAIL="+cfg.GitAuthorEmail,
		)
	}
	_, err := runCommand(cmd)
	return err
}

func commitMessage(changes diff.ChangeSet, lineSummary string) string {
	return fmt.Sprintf("sync todos: +%d ~%d -%d done %d (%s)",
		changes.Added, changes.Updated, changes.Deleted, changes.Completed,
		lineSummary)
}

// ensureGitHubRepo creates the private repository named by the remote when
// gh cannot see it. Any other gh failure is surfaced as-is.
func ensureGitHubRepo(cfg *config.Config, remote string) error {
	slug, ok := githubRepoSlug(remote)
	if !ok {
		return nil
	}

	env := os.Environ()
	if cfg.GitHubToken != "" {
		env = append(env, "GH_TOKEN="+cfg.GitHubToken)
	}

	view := exec.Command("gh", "repo", "view", slug)
	view.Dir = cfg.ConfigDir
	view.Env = env
	if _, err := runCommand(view); err == nil {
		return nil
	} else if !isRepoNotFound(err) {
		return err
	}

	create := exec.Command("gh", "repo", "create", slug, "--private", "--confirm")
	create.Dir = cfg.ConfigDir
	create.Env = env
	_, err := runCommand(create)
	return err
}

func isRepoNotFound(err error) bool {
	cmdErr, ok := err.(todoerrors.CommandError)
	if !ok {
		return false
	}
	combined := strings.ToLower(cmdErr.Stdout + cmdErr.Stderr)
	return strings.Contains(combined, "could not resolve to a repository") ||
		strings.Contains(combined, "not found")
}

func ensureRemote(dir, remote string) error {
	if _, err := runGit(dir, "remote", "get-url", "origin"); err != nil {
		_, err := runGit(dir, "remote", "add", "origin", remote)
		return err
	}
	_, err := runGit(dir, "remote", "set-url", "origin", remote)
	return err
}

// githubRepoSlug extracts owner/name from the remote URL forms GitHub
// hands out. Non-GitHub remotes yield ok=false and skip gh entirely.
func githubRepoSlug(remote string) (string, bool) {
	for _, prefix := range []string{
		"git@github.com:",
		"ssh://git@github.com/",
		"https://github.com/",
		"http://github.com/",
	} {
		if rest, found := strings.CutPrefix(remote, prefix); found {
			return cleanSlug(rest)
		}
	}
	return "", false
}

func cleanSlug(rest string) (string, bool) {
	rest = strings.TrimSuffix(rest, "/")
	rest = strings.TrimSuffix(rest, ".git")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return parts[0] + "/" + parts[1], true
}

// todoPathRelative expresses the todo file relative to the config dir for
// git commands, refusing paths that escape the repository.
func todoPathRelative(cfg *config.Config) (string, error) {
	rel, err := filepath.Rel(cfg.ConfigDir, cfg.TodoFile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", todoerrors.TodoFileOutsideConfigError{
			TodoFile:  cfg.TodoFile,
			ConfigDir: cfg.ConfigDir,
		}
	}
	return filepath.ToSlash(rel), nil
}

func persistRemote(envFile, remote string) error {
	content := ""
	if data, err := os.ReadFile(envFile); err == nil {
		content = string(data)
	}

	var kept []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "TODOS_GIT_REMOTE=") || line == "" {
			continue
		}
		kept = append(kept, line)
	}
	kept = append(kept, "TODOS_GIT_REMOTE="+remote)
	return storage.WriteFileAtomic(envFile, strings.Join(kept, "\n")+"\n")
}

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	return runCommand(cmd)
}

func runCommand(cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", todoerrors.CommandError{
			Command: strings.Join(cmd.Args, " "),
			Stdout:  stdout.String(),
			Stderr:  stderr.String(),
		}
	}
	return stdout.String(), nil
}
