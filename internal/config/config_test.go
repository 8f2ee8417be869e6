package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/bmpage/internal/config"
	"gotest.tools/v3/assert"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.Load(config.New(dir))
	assert.NilError(t, err)

	assert.Equal(t, cfg.Storage.Backend, "sqlite")
	assert.Equal(t, cfg.Storage.Path, filepath.Join(dir, "bookmarks.db"))
	assert.Equal(t, cfg.Page.NewFolderTitle, "New folder")
	assert.Equal(t, cfg.Page.DragPreviewWidth, 24)
	assert.Equal(t, cfg.Log.Level, "info")
	assert.Equal(t, cfg.Check.Concurrency, 10)
	assert.Equal(t, cfg.Check.Timeout, 10*time.Second)
	assert.DeepEqual(t, cfg.Check.ExcludeDomains, []string{"github.com", "gitlab.com"})
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `storage:
  backend: json
  path: /tmp/bookmarks.json
page:
  new_folder_title: Untitled
  drag_preview_width: 30
check:
  timeout: 3s
  exclude_domains: [intranet.example]
`
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644)
	assert.NilError(t, err)

	cfg, err := config.Load(config.New(dir))
	assert.NilError(t, err)

	assert.Equal(t, cfg.Storage.Backend, "json")
	assert.Equal(t, cfg.Storage.Path, "/tmp/bookmarks.json")
	assert.Equal(t, cfg.Page.NewFolderTitle, "Untitled")
	assert.Equal(t, cfg.Page.DragPreviewWidth, 30)
	assert.Equal(t, cfg.Check.Timeout, 3*time.Second)
	assert.DeepEqual(t, cfg.Check.ExcludeDomains, []string{"intranet.example"})
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BMPAGE_PAGE_NEW_FOLDER_TITLE", "From env")

	cfg, err := config.Load(config.New(t.TempDir()))
	assert.NilError(t, err)

	assert.Equal(t, cfg.Page.NewFolderTitle, "From env")
}

func TestLoad_RejectsTinyPreview(t *testing.T) {
	t.Setenv("BMPAGE_PAGE_DRAG_PREVIEW_WIDTH", "2")

	_, err := config.Load(config.New(t.TempDir()))
	assert.ErrorContains(t, err, "drag_preview_width")
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("page: [unclosed"), 0644)
	assert.NilError(t, err)

	_, err = config.Load(config.New(dir))
	assert.ErrorContains(t, err, "read config")
}
