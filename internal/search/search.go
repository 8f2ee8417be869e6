package search

import (
	"sort"
	"strings"

	"github.com/nikbrunner/bmpage/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Entry          model.Entry
	MatchedIndexes []int
	Score          int
}

// entryTitles implements fuzzy.Source for an entry slice.
type entryTitles []model.Entry

func (et entryTitles) String(i int) string {
	return et[i].Title
}

func (et entryTitles) Len() int {
	return len(et)
}

// FuzzySearchBookmarks searches all bookmarks by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchBookmarks(coll *model.Collection, query string) []SearchResult {
	return find(entryTitles(coll.Bookmarks()), query)
}

// Filter keeps the entries whose title fuzzy-matches query, in their original
// order. An empty query keeps everything.
func Filter(entries []model.Entry, query string) []model.Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}

	matches := fuzzy.FindFrom(query, entryTitles(entries))
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Index < matches[j].Index
	})

	result := make([]model.Entry, len(matches))
	for i, m := range matches {
		result[i] = entries[m.Index]
	}
	return result
}

func find(source entryTitles, query string) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, source)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Entry:          source[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
