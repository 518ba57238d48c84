package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abatilo/todomd/internal/config"
	"github.com/abatilo/todomd/internal/gitsync"
	"github.com/abatilo/todomd/internal/output"
	"github.com/abatilo/todomd/internal/storage"
)

//nolint:gochecknoglobals // CLI flags and formatter are package-level by design
var (
	jsonOutput bool
	formatter  output.Formatter
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "todomd",
		Short: "A markdown todo file that syncs itself",
		Long:  "todomd - keeps a plain markdown todo file and syncs it to a private GitHub repository.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if jsonOutput {
				formatter = output.NewJSONFormatter()
			} else {
				formatter = output.NewHumanFormatter()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(
		setupCmd(),
		syncCmd(),
		fmtCmd(),
		validateCmd(),
		whereCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		printError(err)
	}
	return cfg
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}

// setupCmd implements 'todomd setup'.
func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup [remote-url]",
		Short: "Initialize the config dir and its git repository",
		Args:  cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			cfg := loadConfig()

			remote := ""
			if len(args) == 1 {
				remote = args[0]
			}
			if err := gitsync.Setup(cfg, remote); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Ready to sync from %s", cfg.ConfigDir)))
		},
	}
}

// syncCmd implements 'todomd sync'.
func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Commit and push the todo file, reporting what changed",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := loadConfig()

			result, err := gitsync.Sync(cfg, time.Now().UTC(), time.Local)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatSyncResult(result))
		},
	}
}

// fmtCmd implements 'todomd fmt'.
func fmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite the todo file in canonical form",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := loadConfig()
			now := time.Now().UTC()

			doc, err := storage.ReadDocument(cfg.TodoFile, now, time.Local)
			if err != nil {
				printError(err)
			}
			formatted, issues := storage.Format(doc.Content, now, time.Local)
			if formatted != doc.Content {
				if err := storage.WriteFileAtomic(cfg.TodoFile, formatted); err != nil {
					printError(err)
				}
			}
			if len(issues) > 0 {
				printOutput(formatter.FormatIssues(issues))
				os.Exit(1)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Formatted %s", cfg.TodoFile)))
		},
	}
}

// validateCmd implements 'todomd validate'.
func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the todo file for problems without changing it",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := loadConfig()
			now := time.Now().UTC()

			doc, err := storage.ReadDocument(cfg.TodoFile, now, time.Local)
			if err != nil {
				printError(err)
			}
			issues := storage.Validate(doc.Content, now, time.Local)
			printOutput(formatter.FormatIssues(issues))
			if len(issues) > 0 {
				os.Exit(1)
			}
		},
	}
}

// whereCmd implements 'todomd where'.
func whereCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Print the resolved configuration",
		Run: func(_ *cobra.Command, _ []string) {
			printOutput(formatter.FormatConfig(loadConfig()))
		},
	}
}
