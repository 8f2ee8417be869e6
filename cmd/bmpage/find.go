package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmpage/internal/model"
	"github.com/nikbrunner/bmpage/internal/picker"
	"github.com/nikbrunner/bmpage/internal/search"
	"github.com/nikbrunner/bmpage/internal/tui"
)

func newFindCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "find <query>",
		Short: "Fuzzy search bookmarks and open the pick",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			store, release, err := e.openStorage()
			if err != nil {
				return err
			}
			defer release()

			coll, err := store.Load()
			if err != nil {
				return fmt.Errorf("load bookmarks: %w", err)
			}

			results := search.FuzzySearchBookmarks(coll, query)
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No bookmarks found for '%s'\n", query)
				return nil
			}

			var selected *model.Entry
			if len(results) == 1 {
				// Single result - select it directly
				selected = &results[0].Entry
			} else {
				finalModel, err := tea.NewProgram(picker.New(picker.Items(coll, results), query)).Run()
				if err != nil {
					return fmt.Errorf("run picker: %w", err)
				}
				p := finalModel.(picker.Picker)
				if p.Cancelled() {
					return nil
				}
				selected = p.SelectedEntry()
			}
			if selected == nil {
				return nil
			}

			fmt.Fprintf(out, "Opening: %s\n", selected.Title)
			return tui.OpenURL(selected.URL)
		},
	}
}
