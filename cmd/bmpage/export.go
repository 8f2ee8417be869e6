package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmpage/internal/exporter"
)

func newExportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export bookmarks to Netscape HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var outputPath string
			if len(args) == 1 {
				outputPath = args[0]
			} else {
				p, err := exporter.DefaultExportPath()
				if err != nil {
					return fmt.Errorf("default export path: %w", err)
				}
				outputPath = p
			}

			store, release, err := e.openStorage()
			if err != nil {
				return err
			}
			defer release()

			coll, err := store.Load()
			if err != nil {
				return fmt.Errorf("load bookmarks: %w", err)
			}

			if err := os.WriteFile(outputPath, []byte(exporter.ExportHTML(coll)), 0644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks to %s\n", len(coll.Bookmarks()), outputPath)
			return nil
		},
	}
}
