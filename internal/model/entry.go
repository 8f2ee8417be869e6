package model

import "time"

// EntryType distinguishes folders from bookmarks.
type EntryType string

const (
	TypeBookmark EntryType = "bookmark"
	TypeFolder   EntryType = "folder"
)

// Entry is a bookmark or a folder in the collection.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	Parent    *string   `json:"parent"` // nil = root level
	Type      EntryType `json:"type"`
	Position  int       `json:"position"` // index among siblings
	CreatedAt time.Time `json:"createdAt"`
}

// IsFolder returns true if the entry is a folder.
func (e Entry) IsFolder() bool {
	return e.Type == TypeFolder
}

// NewBookmarkParams holds parameters for creating a new bookmark Entry.
type NewBookmarkParams struct {
	Title  string
	URL    string
	Parent *string
}

// NewBookmark creates a bookmark Entry with generated UUID and timestamp.
func NewBookmark(params NewBookmarkParams) Entry {
	return Entry{
		ID:        GenerateUUID(),
		Title:     params.Title,
		URL:       params.URL,
		Parent:    CopyID(params.Parent),
		Type:      TypeBookmark,
		CreatedAt: time.Now(),
	}
}

// NewFolderParams holds parameters for creating a new folder Entry.
type NewFolderParams struct {
	Title  string
	Parent *string
}

// NewFolder creates a folder Entry with generated UUID.
func NewFolder(params NewFolderParams) Entry {
	return Entry{
		ID:        GenerateUUID(),
		Title:     params.Title,
		Parent:    CopyID(params.Parent),
		Type:      TypeFolder,
		CreatedAt: time.Now(),
	}
}

// CopyID returns a fresh pointer holding the same id, or nil.
func CopyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// SameParent compares two parent pointers for equality.
func SameParent(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
