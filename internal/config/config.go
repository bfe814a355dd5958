package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// WatchDir is where the capture software drops incoming photos.
	WatchDir string `toml:"watch_dir"`
	// Catalog optionally pins a default catalog file so `snapflow run` can be
	// started without --catalog.
	Catalog string `toml:"catalog"`
	LogDir  string `toml:"log_dir"`
}

// Capture controls filename derivation for incoming photos.
type Capture struct {
	// Extension is the capture format written by the tethering software.
	Extension string `toml:"extension"`
	// FilenameLayout selects the field order of derived names: "dash"
	// (article-position-color-description) or "underscore"
	// (article_color_description_position).
	FilenameLayout string `toml:"filename_layout"`
	// ExiftoolBinary overrides the exiftool executable name.
	ExiftoolBinary string `toml:"exiftool_binary"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration document.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Capture Capture `toml:"capture"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/snapflow/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file was actually found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("snapflow.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	for _, field := range []*string{&c.Paths.WatchDir, &c.Paths.Catalog, &c.Paths.LogDir} {
		if strings.TrimSpace(*field) == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	c.Capture.Extension = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Capture.Extension)), ".")
	c.Capture.FilenameLayout = strings.ToLower(strings.TrimSpace(c.Capture.FilenameLayout))
	c.Capture.ExiftoolBinary = strings.TrimSpace(c.Capture.ExiftoolBinary)
	return nil
}

// EnsureWatchDir creates the watch directory if it is missing and verifies it
// is a directory.
func (c *Config) EnsureWatchDir() error {
	if err := os.MkdirAll(c.Paths.WatchDir, 0o755); err != nil {
		return fmt.Errorf("create watch directory %q: %w", c.Paths.WatchDir, err)
	}
	info, err := os.Stat(c.Paths.WatchDir)
	if err != nil {
		return fmt.Errorf("stat watch directory %q: %w", c.Paths.WatchDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch path %q is not a directory", c.Paths.WatchDir)
	}
	return nil
}

// LogFilePath returns the log file location, or empty when file logging is
// disabled.
func (c *Config) LogFilePath() string {
	if c.Paths.LogDir == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "snapflow.log")
}

// SampleConfig returns the embedded sample configuration document.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
