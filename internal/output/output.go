package output

import (
	"github.com/abatilo/todomd/internal/config"
	"github.com/abatilo/todomd/internal/gitsync"
	"github.com/abatilo/todomd/internal/storage"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatSyncResult(r *gitsync.Result) string
	FormatIssues(issues []storage.Issue) string
	FormatConfig(cfg *config.Config) string
	FormatError(err error) string
	FormatMessage(msg string) string
}
