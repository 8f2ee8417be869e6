package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/bmpage/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the collection to Netscape bookmark HTML format.
func ExportHTML(coll *model.Collection) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	writeItems(&b, coll, nil, 1)

	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeItems recursively writes the children of parent in sibling order.
func writeItems(b *strings.Builder, coll *model.Collection, parent *string, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, e := range coll.Children(parent) {
		timestamp := e.CreatedAt.Unix()

		if e.IsFolder() {
			fmt.Fprintf(b, "%s<DT><H3 ADD_DATE=\"%d\">%s</H3>\n", prefix, timestamp, html.EscapeString(e.Title))
			fmt.Fprintf(b, "%s<DL><p>\n", prefix)

			id := e.ID
			writeItems(b, coll, &id, indent+1)

			fmt.Fprintf(b, "%s</DL><p>\n", prefix)
			continue
		}

		fmt.Fprintf(b,
			"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
			prefix,
			html.EscapeString(e.URL),
			timestamp,
			html.EscapeString(e.Title),
		)
	}
}
