// Package config loads YAML configuration for both MCP servers.
//
// Each server reads an optional config file from an explicit --config path
// or from the XDG config directory for its binary name, then applies CLI
// flag overrides on top. Missing config files are not an error; defaults
// are used instead.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"localmcp/internal/logging"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	FileServerApp = "file-mcp-server"
	TimeServerApp = "time-mcp-server"

	// DefaultMaxFileSize is the read ceiling for file contents (10 MiB).
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// FileServerConfig holds configuration for the file MCP server.
type FileServerConfig struct {
	// RootDir is the single directory subtree the server exposes.
	// It must exist and be a directory; this is enforced when the
	// path guard is constructed.
	RootDir string `yaml:"root_dir"`

	// ExcludePatterns are gitignore-syntax globs applied on top of any
	// .gitignore files found under RootDir.
	ExcludePatterns []string `yaml:"exclude_patterns"`

	// MaxFileSize is the largest file, in bytes, the server will read.
	MaxFileSize int64 `yaml:"max_file_size"`

	// DefaultMIMEType is used when extension-based detection fails.
	DefaultMIMEType string `yaml:"default_mime_type"`

	// MaxFilesPerDirectory caps directory listing results.
	MaxFilesPerDirectory int `yaml:"max_files_per_directory"`

	// MaxSearchResults caps search results.
	MaxSearchResults int `yaml:"max_search_results"`

	// RespectGitignore enables .gitignore discovery under RootDir.
	RespectGitignore *bool `yaml:"respect_gitignore"`

	ServerName        string `yaml:"server_name"`
	ServerVersion     string `yaml:"server_version"`
	ServerDescription string `yaml:"server_description"`
}

// TimeServerConfig holds configuration for the time MCP server.
type TimeServerConfig struct {
	// DefaultTimezone is the IANA zone used when a request omits one.
	DefaultTimezone string `yaml:"default_timezone"`

	// Go reference layouts for formatting responses.
	DateFormat     string `yaml:"date_format"`
	TimeFormat     string `yaml:"time_format"`
	DatetimeFormat string `yaml:"datetime_format"`

	// MaxTimezones caps timezone listing results.
	MaxTimezones int `yaml:"max_timezones"`

	EnableDSTWarnings *bool `yaml:"enable_dst_warnings"`

	ServerName    string `yaml:"server_name"`
	ServerVersion string `yaml:"server_version"`
}

// DefaultFileServerConfig returns a FileServerConfig with sensible defaults.
// RootDir defaults to the current working directory.
func DefaultFileServerConfig() FileServerConfig {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	respect := true
	return FileServerConfig{
		RootDir:              cwd,
		ExcludePatterns:      nil,
		MaxFileSize:          DefaultMaxFileSize,
		DefaultMIMEType:      "application/octet-stream",
		MaxFilesPerDirectory: 1000,
		MaxSearchResults:     100,
		RespectGitignore:     &respect,
		ServerName:           "File MCP Server",
		ServerVersion:        "0.1.0",
		ServerDescription:    "Secure, read-only access to files",
	}
}

// DefaultTimeServerConfig returns a TimeServerConfig with sensible defaults.
func DefaultTimeServerConfig() TimeServerConfig {
	enable := true
	return TimeServerConfig{
		DefaultTimezone:   "Australia/Melbourne",
		DateFormat:        "2006-01-02",
		TimeFormat:        "15:04:05",
		DatetimeFormat:    "2006-01-02 15:04:05",
		MaxTimezones:      100,
		EnableDSTWarnings: &enable,
		ServerName:        "Time MCP Server",
		ServerVersion:     "0.1.0",
	}
}

// GitignoreEnabled reports whether .gitignore support is on, defaulting to true.
func (c *FileServerConfig) GitignoreEnabled() bool {
	return c.RespectGitignore == nil || *c.RespectGitignore
}

// DSTWarningsEnabled reports whether prompts should mention upcoming DST
// transitions, defaulting to true.
func (c *TimeServerConfig) DSTWarningsEnabled() bool {
	return c.EnableDSTWarnings == nil || *c.EnableDSTWarnings
}

// ConfigPath returns the standard config file path for the given app name.
func ConfigPath(app string) string {
	return filepath.Join(xdg.ConfigHome, app, "config.yaml")
}

// LoadFileServer loads the file server config. If path is empty, the
// standard XDG location is tried; a missing file yields defaults.
func LoadFileServer(path string) (*FileServerConfig, error) {
	cfg := DefaultFileServerConfig()
	if err := loadInto(path, FileServerApp, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadTimeServer loads the time server config. If path is empty, the
// standard XDG location is tried; a missing file yields defaults.
func LoadTimeServer(path string) (*TimeServerConfig, error) {
	cfg := DefaultTimeServerConfig()
	if err := loadInto(path, TimeServerApp, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadInto decodes the YAML config file at path (or the standard location
// for app when path is empty) over the defaults already present in out.
// An explicitly requested file that cannot be read is an error; a missing
// default-location file is not.
func loadInto(path, app string, out any) error {
	explicit := path != ""
	if !explicit {
		path = ConfigPath(app)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			logging.Debug("No config file found, using defaults", "path", path)
			return nil
		}
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	logging.Debug("Loading config", "path", path)

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}
