package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/bmpage/internal/importer"
	"github.com/nikbrunner/bmpage/internal/model"
)

func byTitle(entries []model.Entry, title string) *model.Entry {
	for i := range entries {
		if entries[i].Title == title {
			return &entries[i]
		}
	}
	return nil
}

func TestParseHTML_SingleBookmark(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	entries, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	b := entries[0]
	if b.Title != "Example Site" {
		t.Errorf("expected title 'Example Site', got %q", b.Title)
	}
	if b.URL != "https://example.com" {
		t.Errorf("expected URL 'https://example.com', got %q", b.URL)
	}
	if b.Type != model.TypeBookmark {
		t.Errorf("expected bookmark, got %q", b.Type)
	}
	if b.Parent != nil {
		t.Errorf("expected root parent, got %v", *b.Parent)
	}
	if !b.CreatedAt.Equal(time.Unix(1234567890, 0)) {
		t.Errorf("expected ADD_DATE to be parsed, got %v", b.CreatedAt)
	}
}

func TestParseHTML_NestedFolders(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	entries, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}

	dev := byTitle(entries, "Development")
	react := byTitle(entries, "React")
	docs := byTitle(entries, "React Docs")
	github := byTitle(entries, "GitHub")
	google := byTitle(entries, "Google")

	if dev == nil || !dev.IsFolder() || dev.Parent != nil {
		t.Fatalf("expected root folder Development, got %+v", dev)
	}
	if react == nil || react.Parent == nil || *react.Parent != dev.ID {
		t.Fatal("expected React inside Development")
	}
	if docs.Parent == nil || *docs.Parent != react.ID {
		t.Error("expected React Docs inside React")
	}
	if github.Parent == nil || *github.Parent != dev.ID {
		t.Error("expected GitHub inside Development")
	}
	if google.Parent != nil {
		t.Error("expected Google at root")
	}

	// Positions follow document order per parent
	if react.Position != 0 || github.Position != 1 {
		t.Errorf("expected React=0 GitHub=1, got %d/%d", react.Position, github.Position)
	}
	if dev.Position != 0 || google.Position != 1 {
		t.Errorf("expected Development=0 Google=1, got %d/%d", dev.Position, google.Position)
	}
}

func TestParseHTML_SkipsMissingHref(t *testing.T) {
	html := `<DL><p>
    <DT><A>No link</A>
    <DT><A HREF="https://ok.com"></A>
</DL><p>`

	entries, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Title != "https://ok.com" {
		t.Errorf("expected URL as fallback title, got %q", entries[0].Title)
	}
}

func TestParseHTML_ParentsBeforeChildren(t *testing.T) {
	html := `<DL><p>
    <DT><H3>Outer</H3>
    <DL><p>
        <DT><H3>Inner</H3>
        <DL><p>
            <DT><A HREF="https://deep.com">Deep</A>
        </DL><p>
    </DL><p>
</DL><p>`

	entries, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if e.Parent != nil && !seen[*e.Parent] {
			t.Errorf("entry %q appears before its parent", e.Title)
		}
		seen[e.ID] = true
	}
}
