package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/cnharrison/zirest/internal/errors"
	"github.com/cnharrison/zirest/internal/history"
	"github.com/cnharrison/zirest/internal/httpclient"
	"github.com/cnharrison/zirest/internal/request"
)

// Config represents the complete configuration for zirest
type Config struct {
	Request   RequestConfig   `yaml:"request"`
	History   HistoryConfig   `yaml:"history"`
	Highlight HighlightConfig `yaml:"highlight"`
	Dev       DevConfig       `yaml:"dev"`
}

// RequestConfig controls the initial draft and the HTTP client
type RequestConfig struct {
	DefaultMethod string        `yaml:"default_method"`
	DefaultURL    string        `yaml:"default_url"`
	DefaultMode   string        `yaml:"default_mode"`
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
}

// HistoryConfig controls where and how request history is kept
type HistoryConfig struct {
	Backend  string `yaml:"backend"`
	Path     string `yaml:"path"`
	MaxItems int    `yaml:"max_items"`
	Watch    bool   `yaml:"watch"`
}

// HighlightConfig controls JSON colouring
type HighlightConfig struct {
	StructuralKeys bool         `yaml:"structural_keys"`
	Colors         ColorsConfig `yaml:"colors"`
}

// ColorsConfig holds #rrggbb colours per token category
type ColorsConfig struct {
	Punctuation string `yaml:"punctuation"`
	Key         string `yaml:"key"`
	String      string `yaml:"string"`
	Number      string `yaml:"number"`
	Boolean     string `yaml:"boolean"`
	Null        string `yaml:"null"`
	Error       string `yaml:"error"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool   `yaml:"debug"`
	LogFile string `yaml:"log_file"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Request: RequestConfig{
			DefaultMethod: "GET",
			DefaultURL:    request.DefaultURL,
			DefaultMode:   "json",
			Timeout:       30 * time.Second,
			UserAgent:     "zirest",
		},
		History: HistoryConfig{
			Backend:  history.BackendJSON,
			MaxItems: history.MaxItems,
			Watch:    true,
		},
		Highlight: HighlightConfig{
			Colors: DefaultColors(),
		},
	}
}

// DefaultColors is the dark editor palette
func DefaultColors() ColorsConfig {
	return ColorsConfig{
		Punctuation: "#D4D4D4",
		Key:         "#9CDCFE",
		String:      "#CE9178",
		Number:      "#B5CEA8",
		Boolean:     "#569CD6",
		Null:        "#569CD6",
		Error:       "#F44747",
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to read config file", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to parse config file", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads path when given, otherwise the discovered config file, otherwise
// returns the defaults
func Load(path string) (*Config, error) {
	if path == "" {
		path = FindConfigFile()
	}
	if path == "" {
		return NewConfig(), nil
	}
	return LoadConfig(path)
}

var configNames = []string{".zirest.yml", ".zirest.yaml", "zirest.yml", "zirest.yaml"}

// FindConfigFile searches the current directory and its parents, then the
// user config directory
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err == nil {
		for {
			for _, name := range configNames {
				configPath := filepath.Join(currentDir, name)
				if _, err := os.Stat(configPath); err == nil {
					return configPath
				}
			}

			parentDir := filepath.Dir(currentDir)
			if parentDir == currentDir {
				break
			}
			currentDir = parentDir
		}
	}

	if dir := userConfigDir(); dir != "" {
		for _, name := range []string{"config.yml", "config.yaml"} {
			configPath := filepath.Join(dir, "zirest", name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}
	}

	return ""
}

func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks every field and normalizes the default method
func (c *Config) Validate() error {
	method, err := request.NormalizeMethod(c.Request.DefaultMethod)
	if err != nil {
		return apperrors.NewConfigError(fmt.Sprintf("request.default_method %q is not one of %s",
			c.Request.DefaultMethod, strings.Join(httpclient.Methods, ", ")), apperrors.ErrInvalidConfig)
	}
	c.Request.DefaultMethod = method

	if c.Request.Timeout < 0 {
		return apperrors.NewConfigError("request.timeout must not be negative", apperrors.ErrInvalidConfig)
	}

	switch c.History.Backend {
	case history.BackendJSON, history.BackendSQLite:
	default:
		return apperrors.NewConfigError(fmt.Sprintf("history.backend %q", c.History.Backend), apperrors.ErrUnknownBackend)
	}

	if c.History.MaxItems < 1 || c.History.MaxItems > history.MaxItems {
		return apperrors.NewConfigError(fmt.Sprintf("history.max_items must be between 1 and %d", history.MaxItems), apperrors.ErrInvalidConfig)
	}

	colors := map[string]string{
		"punctuation": c.Highlight.Colors.Punctuation,
		"key":         c.Highlight.Colors.Key,
		"string":      c.Highlight.Colors.String,
		"number":      c.Highlight.Colors.Number,
		"boolean":     c.Highlight.Colors.Boolean,
		"null":        c.Highlight.Colors.Null,
		"error":       c.Highlight.Colors.Error,
	}
	for name, value := range colors {
		if !hexColor.MatchString(value) {
			return apperrors.NewConfigError(fmt.Sprintf("highlight.colors.%s %q is not #rrggbb", name, value), apperrors.ErrInvalidConfig)
		}
	}

	if c.Dev.Debug && c.Dev.LogFile == "" {
		c.Dev.LogFile = filepath.Join(os.TempDir(), "zirest.log")
	}

	return nil
}

// HistoryPath is the configured history location or the backend default
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return expandHome(c.History.Path)
	}
	return history.DefaultPath(c.History.Backend)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
