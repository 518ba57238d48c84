package output

import (
	"fmt"
	"strings"

	"github.com/abatilo/todomd/internal/config"
	"github.com/abatilo/todomd/internal/gitsync"
	"github.com/abatilo/todomd/internal/storage"
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// FormatSyncResult formats the outcome of a sync for display.
func (f *HumanFormatter) FormatSyncResult(r *gitsync.Result) string {
	var sb strings.Builder

	if r.Changes.Empty() {
		sb.WriteString("No changes.\n")
	} else {
		sb.WriteString(fmt.Sprintf("Added:     %d\n", r.Changes.Added))
		sb.WriteString(fmt.Sprintf("Updated:   %d\n", r.Changes.Updated))
		sb.WriteString(fmt.Sprintf("Deleted:   %d\n", r.Changes.Deleted))
		sb.WriteString(fmt.Sprintf("Completed: %d\n", r.Changes.Completed))
	}
	if r.LineSummary != "" {
		sb.WriteString(r.LineSummary + "\n")
	}
	if r.Committed {
		sb.WriteString("Pushed to origin.\n")
	} else {
		sb.WriteString("Nothing to commit.\n")
	}

	return sb.String()
}

// FormatIssues formats validation issues, one per line.
func (f *HumanFormatter) FormatIssues(issues []storage.Issue) string {
	if len(issues) == 0 {
		return "No issues found.\n"
	}

	var sb strings.Builder
	for _, issue := range issues {
		sb.WriteString(issue.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatConfig formats the resolved configuration for display.
func (f *HumanFormatter) FormatConfig(cfg *config.Config) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Config dir: %s\n", cfg.ConfigDir))
	sb.WriteString(fmt.Sprintf("Todo file:  %s\n", cfg.TodoFile))
	sb.WriteString(fmt.Sprintf("Env file:   %s\n", cfg.EnvFile))
	sb.WriteString(fmt.Sprintf("Branch:     %s\n", cfg.GitBranch))
	if cfg.GitRemote != "" {
		sb.WriteString(fmt.Sprintf("Remote:     %s\n", cfg.GitRemote))
	} else {
		sb.WriteString("Remote:     (not configured)\n")
	}

	return sb.String()
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}
