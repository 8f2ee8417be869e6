package storage_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/bmpage/internal/exporter"
	"github.com/nikbrunner/bmpage/internal/importer"
	"github.com/nikbrunner/bmpage/internal/model"
	"github.com/nikbrunner/bmpage/internal/storage"
)

func newSQLite(t *testing.T, name string) *storage.SQLiteStorage {
	t.Helper()
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorage_SaveAndLoad(t *testing.T) {
	s := newSQLite(t, "bookmarks.db")

	folderID := "f1"
	now := time.Now().Truncate(time.Second) // RFC3339 loses sub-second precision

	coll := &model.Collection{
		Entries: []model.Entry{
			{ID: folderID, Title: "Development", Type: model.TypeFolder, CreatedAt: now},
			{
				ID:        "b1",
				Title:     "Test",
				URL:       "https://example.com",
				Parent:    &folderID,
				Type:      model.TypeBookmark,
				Position:  0,
				CreatedAt: now,
			},
		},
	}

	if err := s.Save(coll); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if loaded.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", loaded.Len())
	}
	folder := loaded.Get("f1")
	if folder == nil || !folder.IsFolder() || folder.Title != "Development" {
		t.Errorf("expected folder 'Development', got %+v", folder)
	}
	b := loaded.Get("b1")
	if b == nil || b.Parent == nil || *b.Parent != folderID {
		t.Error("expected bookmark parent_id to be preserved")
	}
	if !b.CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got %v", now, b.CreatedAt)
	}
}

func TestSQLiteStorage_EmptyDatabase(t *testing.T) {
	s := newSQLite(t, "empty.db")

	coll, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load empty db: %v", err)
	}
	if coll.Len() != 0 {
		t.Error("expected empty collection")
	}
}

func TestSQLiteStorage_SchemaVersion(t *testing.T) {
	s := newSQLite(t, "version.db")

	version, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != 2 {
		t.Errorf("expected schema version 2, got %d", version)
	}
}

func TestSQLiteStorage_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	s, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	coll := model.NewCollection()
	coll.Append(model.Entry{ID: "b1", Title: "Kept", Type: model.TypeBookmark})
	if err := s.Save(coll); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	s.Close()

	// Migrations must be idempotent on an existing database
	s, err = storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	defer s.Close()

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if loaded.Get("b1") == nil {
		t.Error("expected entry to survive reopen")
	}
}

func TestSQLiteStorage_SaveReplacesContents(t *testing.T) {
	s := newSQLite(t, "replace.db")

	first := &model.Collection{Entries: []model.Entry{{ID: "f1", Title: "Original", Type: model.TypeFolder}}}
	if err := s.Save(first); err != nil {
		t.Fatalf("failed to save initial: %v", err)
	}

	second := &model.Collection{Entries: []model.Entry{{ID: "f2", Title: "Updated", Type: model.TypeFolder}}}
	if err := s.Save(second); err != nil {
		t.Fatalf("failed to save updated: %v", err)
	}

	loaded, _ := s.Load()
	if loaded.Len() != 1 || loaded.Entries[0].Title != "Updated" {
		t.Error("update did not work correctly")
	}
}

func TestSQLiteStorage_ChildBeforeParent(t *testing.T) {
	s := newSQLite(t, "order.db")

	parentID := "f1"
	coll := &model.Collection{
		Entries: []model.Entry{
			{ID: "f2", Title: "Child", Type: model.TypeFolder, Parent: &parentID},
			{ID: "f1", Title: "Parent", Type: model.TypeFolder},
		},
	}

	if err := s.Save(coll); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	child := loaded.Get("f2")
	if child == nil || child.Parent == nil || *child.Parent != "f1" {
		t.Error("child folder parent_id not preserved")
	}
}

func TestSQLiteStorage_ImportExportRoundtrip(t *testing.T) {
	s := newSQLite(t, "roundtrip.db")

	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<DL><p>
    <DT><H3>Development</H3>
    <DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1700000000">GitHub</A>
        <DT><A HREF="https://go.dev" ADD_DATE="1700000000">Go Dev</A>
    </DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1700000000">Example</A>
</DL><p>`

	entries, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}

	coll := model.NewCollection()
	added, skipped := coll.ImportMerge(entries)
	if added != 3 || skipped != 0 {
		t.Errorf("expected 3 added 0 skipped, got %d/%d", added, skipped)
	}

	if err := s.Save(coll); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	out := exporter.ExportHTML(loaded)
	for _, want := range []string{">Development</H3>", "https://github.com", "https://go.dev", ">Example</A>"} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q", want)
		}
	}

	// GitHub must stay ahead of Go Dev inside the folder
	if strings.Index(out, "GitHub") > strings.Index(out, "Go Dev") {
		t.Error("sibling order not preserved through sqlite")
	}
}
