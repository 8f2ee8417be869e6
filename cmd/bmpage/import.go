package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmpage/internal/importer"
)

func newImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import bookmarks from a browser HTML export",
		Args:  cobra.ExactArgs(1),
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

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			entries, err := importer.ParseHTMLBookmarks(file)
			if err != nil {
				return fmt.Errorf("parse HTML: %w", err)
			}

			added, skipped := coll.ImportMerge(entries)
			if err := store.Save(coll); err != nil {
				return fmt.Errorf("save bookmarks: %w", err)
			}

			e.logger.WithField("added", added).WithField("skipped", skipped).Info("import finished")
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d bookmarks", added)
			if skipped > 0 {
				fmt.Fprintf(out, " (%d duplicates skipped)", skipped)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
