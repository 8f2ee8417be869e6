package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Storage StorageConfig
	Page    PageConfig
	Log     LogConfig
	Check   CheckConfig
}

// StorageConfig selects where the local bridge keeps the collection.
type StorageConfig struct {
	Backend string // "sqlite" or "json"
	Path    string
}

// PageConfig holds bookmarks page behaviour.
type PageConfig struct {
	NewFolderTitle   string
	DragPreviewWidth int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	File  string
}

// CheckConfig tunes the dead link check.
type CheckConfig struct {
	Concurrency    int
	Timeout        time.Duration
	ExcludeDomains []string
}

// DefaultDir returns the default config directory: ~/.config/bmpage
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "bmpage"), nil
}

// New returns a viper instance with defaults, config file lookup in dir and
// BMPAGE_* environment overrides.
func New(dir string) *viper.Viper {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BMPAGE")
	// page.new_folder_title -> BMPAGE_PAGE_NEW_FOLDER_TITLE
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.path", filepath.Join(dir, "bookmarks.db"))
	v.SetDefault("page.new_folder_title", "New folder")
	v.SetDefault("page.drag_preview_width", 24)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, "bmpage.log"))
	v.SetDefault("check.concurrency", 10)
	v.SetDefault("check.timeout", "10s")
	v.SetDefault("check.exclude_domains", []string{"github.com", "gitlab.com"})

	return v
}

// Load reads the config file if present and decodes the result.
// A missing file is not an error; defaults apply.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Storage: StorageConfig{
			Backend: v.GetString("storage.backend"),
			Path:    v.GetString("storage.path"),
		},
		Page: PageConfig{
			NewFolderTitle:   v.GetString("page.new_folder_title"),
			DragPreviewWidth: v.GetInt("page.drag_preview_width"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
		Check: CheckConfig{
			Concurrency:    v.GetInt("check.concurrency"),
			Timeout:        v.GetDuration("check.timeout"),
			ExcludeDomains: v.GetStringSlice("check.exclude_domains"),
		},
	}

	if cfg.Page.DragPreviewWidth < 4 {
		return nil, fmt.Errorf("page.drag_preview_width must be at least 4, got %d", cfg.Page.DragPreviewWidth)
	}
	if cfg.Check.Concurrency < 1 {
		return nil, fmt.Errorf("check.concurrency must be positive, got %d", cfg.Check.Concurrency)
	}
	if cfg.Page.NewFolderTitle == "" {
		cfg.Page.NewFolderTitle = "New folder"
	}

	return cfg, nil
}
