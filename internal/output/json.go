package output

import (
	"encoding/json"

	"github.com/abatilo/todomd/internal/config"
	"github.com/abatilo/todomd/internal/gitsync"
	"github.com/abatilo/todomd/internal/storage"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatSyncResult formats the outcome of a sync as JSON.
func (f *JSONFormatter) FormatSyncResult(r *gitsync.Result) string {
	return marshalJSON(r)
}

// issueJSON is the JSON representation of a validation issue.
type issueJSON struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// FormatIssues formats validation issues as JSON.
func (f *JSONFormatter) FormatIssues(issues []storage.Issue) string {
	out := make([]issueJSON, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issueJSON{Line: issue.Line, Message: issue.Message})
	}
	return marshalJSON(out)
}

// configJSON is the JSON representation of the resolved configuration.
// The GitHub token never appears in output.
type configJSON struct {
	ConfigDir string `json:"config_dir"`
	TodoFile  string `json:"todo_file"`
	EnvFile   string `json:"env_file"`
	GitRemote string `json:"git_remote,omitempty"`
	GitBranch string `json:"git_branch"`
}

// FormatConfig formats the resolved configuration as JSON.
func (f *JSONFormatter) FormatConfig(cfg *config.Config) string {
	return marshalJSON(configJSON{
		ConfigDir: cfg.ConfigDir,
		TodoFile:  cfg.TodoFile,
		EnvFile:   cfg.EnvFile,
		GitRemote: cfg.GitRemote,
		GitBranch: cfg.GitBranch,
	})
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(map[string]string{"error": err.Error()})
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(map[string]string{"message": msg})
}
