// Package config resolves where the todo document lives and how it syncs.
// Values come from the process environment, then the config dir's .env
// file, then an optional config.yaml, in that precedence order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	todoerrors "github.com/abatilo/todomd/internal/errors"
)

// DefaultConfigDirSuffix is the config dir location under the home dir.
const DefaultConfigDirSuffix = ".config/todos"

// Config is the resolved application configuration.
type Config struct {
	ConfigDir      string
	TodoFile       string
	EnvFile        string
	GitRemote      string
	GitBranch      string
	GitAuthorName  string
	GitAuthorEmail string
	GitHubToken    string
}

// fileConfig is the optional config.yaml. Secrets stay out of it: the
// GitHub token is only read from the environment or .env.
type fileConfig struct {
	TodoFile       string `yaml:"todo_file"`
	GitRemote      string `yaml:"git_remote"`
	GitBranch      string `yaml:"git_branch"`
	GitAuthorName  string `yaml:"git_author_name"`
	GitAuthorEmail string `yaml:"git_author_email"`
}

// Load resolves the configuration.
func Load() (*Config, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}

	envFile := filepath.Join(configDir, ".env")
	envMap, err := loadOptionalEnvFile(envFile)
	if err != nil {
		return nil, err
	}

	fileCfg, err := loadOptionalYAML(filepath.Join(configDir, "config.yaml"))
	if err != nil {
		return nil, err
	}

	lookup := func(key, fromYAML string) string {
		return firstNonEmpty(os.Getenv(key), envMap[key], fromYAML)
	}

	todoFile := lookup("TODOS_FILE", fileCfg.TodoFile)
	if todoFile == "" {
		todoFile = filepath.Join(configDir, "todo.md")
	} else if todoFile, err = expandPath(todoFile); err != nil {
		return nil, err
	}

	branch := lookup("TODOS_GIT_BRANCH", fileCfg.GitBranch)
	if branch == "" {
		branch = "main"
	}

	return &Config{
		ConfigDir:      configDir,
		TodoFile:       todoFile,
		EnvFile:        envFile,
		GitRemote:      lookup("TODOS_GIT_REMOTE", fileCfg.GitRemote),
		GitBranch:      branch,
		GitAuthorName:  lookup("TODOS_GIT_AUTHOR_NAME", fileCfg.GitAuthorName),
		GitAuthorEmail: lookup("TODOS_GIT_AUTHOR_EMAIL", fileCfg.GitAuthorEmail),
		GitHubToken:    firstNonEmpty(os.Getenv("GITHUB_TOKEN"), envMap["GITHUB_TOKEN"]),
	}, nil
}

// RequireRemote returns the configured git remote or a configuration error
// telling the user where to set it.
func (c *Config) RequireRemote() (string, error) {
	if c.GitRemote == "" {
		return "", todoerrors.MissingRemoteError{EnvFile: c.EnvFile}
	}
	return c.GitRemote, nil
}

func resolveConfigDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv("TODOS_CONFIG_DIR")); override != "" {
		return expandPath(override)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDirSuffix), nil
}

func loadOptionalEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	envMap, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file at %s: %w", path, err)
	}
	return envMap, nil
}

func loadOptionalYAML(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// expandPath resolves a leading ~ against the home dir and makes relative
// paths absolute against the working directory.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not resolve home directory for ~ expansion: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}

	if filepath.IsAbs(path) {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("could not resolve current directory: %w", err)
	}
	return filepath.Join(cwd, path), nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
