package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/bmpage/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML into entries.
// Folders precede their contents and positions follow document order.
func ParseHTMLBookmarks(r io.Reader) ([]model.Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var entries []model.Entry
	counts := make(map[string]int) // next position per parent, "" = root

	// Track current folder stack for hierarchy
	var folderStack []string
	var pendingFolder string // folder waiting to be pushed on next DL

	currentParent := func() *string {
		if len(folderStack) == 0 {
			return nil
		}
		id := folderStack[len(folderStack)-1]
		return &id
	}

	appendEntry := func(e model.Entry) {
		key := ""
		if e.Parent != nil {
			key = *e.Parent
		}
		e.Position = counts[key]
		counts[key]++
		entries = append(entries, e)
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := getTextContent(n)
				if name != "" {
					folder := model.NewFolder(model.NewFolderParams{
						Title:  name,
						Parent: currentParent(),
					})
					folder.CreatedAt = parseAddDate(n, folder.CreatedAt)
					appendEntry(folder)

					// Pushed when we see the next DL
					pendingFolder = folder.ID
				}
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href
				}

				bookmark := model.NewBookmark(model.NewBookmarkParams{
					Title:  title,
					URL:    href,
					Parent: currentParent(),
				})
				bookmark.CreatedAt = parseAddDate(n, bookmark.CreatedAt)
				appendEntry(bookmark)
				return

			case "dl":
				pushedFolder := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return entries, nil
}

// parseAddDate reads the ADD_DATE unix timestamp, or returns fallback.
func parseAddDate(n *html.Node, fallback time.Time) time.Time {
	if addDate := getAttr(n, "add_date"); addDate != "" {
		if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
			return time.Unix(ts, 0)
		}
	}
	return fallback
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
