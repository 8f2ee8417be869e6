package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmpage/internal/model"
)

func newListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the bookmark tree",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := e.openStorage()
			if err != nil {
				return err
			}
			defer release()

			coll, err := store.Load()
			if err != nil {
				return fmt.Errorf("load bookmarks: %w", err)
			}
			printTree(cmd.OutOrStdout(), coll, nil, 0)
			return nil
		},
	}
}

// printTree writes the entries under parent in sibling order, one per line.
func printTree(w io.Writer, coll *model.Collection, parent *string, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, e := range coll.Children(parent) {
		if e.IsFolder() {
			fmt.Fprintf(w, "%s%s/\n", indent, e.Title)
			printTree(w, coll, &e.ID, depth+1)
			continue
		}
		fmt.Fprintf(w, "%s%s  %s\n", indent, e.Title, e.URL)
	}
}
