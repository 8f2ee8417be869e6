package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmpage/internal/bridge"
	"github.com/nikbrunner/bmpage/internal/culler"
)

func newCheckCmd(e *env) *cobra.Command {
	var deleteDead bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report bookmarks whose URLs are dead",
		Long: `Check every bookmark URL. 404 and 410 count as dead; timeouts, DNS
failures and server errors are reported as unreachable and never deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := e.openStorage()
			if err != nil {
				return err
			}
			defer release()

			local, err := bridge.NewLocal(bridge.LocalParams{
				Storage: store,
				Logger:  e.logger.WithField("component", "bridge"),
			})
			if err != nil {
				return err
			}

			checker := culler.NewChecker(culler.CheckerParams{
				Concurrency:    e.cfg.Check.Concurrency,
				Timeout:        e.cfg.Check.Timeout,
				ExcludeDomains: e.cfg.Check.ExcludeDomains,
				Logger:         e.logger.WithField("component", "culler"),
			})

			out := cmd.OutOrStdout()
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			results := checker.Check(ctx, local.Snapshot().Bookmarks(), func(completed, total int) {
				fmt.Fprintf(cmd.ErrOrStderr(), "\rChecked %d/%d", completed, total)
			})
			fmt.Fprintln(cmd.ErrOrStderr())

			for _, r := range results {
				if r.Status == culler.Healthy {
					continue
				}
				detail := r.Error
				if r.Status == culler.Dead {
					detail = fmt.Sprintf("HTTP %d", r.StatusCode)
				}
				fmt.Fprintf(out, "%-11s %s  %s (%s)\n", r.Status, r.Entry.Title, r.Entry.URL, detail)
			}

			dead := culler.DeadEntries(results)
			if !deleteDead || len(dead) == 0 {
				fmt.Fprintf(out, "%d dead of %d checked\n", len(dead), len(results))
				return nil
			}

			ids := make([]string, len(dead))
			for i, d := range dead {
				ids[i] = d.ID
			}
			if err := local.Delete(ctx, ids...); err != nil {
				return fmt.Errorf("delete dead bookmarks: %w", err)
			}
			fmt.Fprintf(out, "Deleted %d dead bookmarks\n", len(dead))
			return nil
		},
	}
	cmd.Flags().BoolVar(&deleteDead, "delete", false, "Delete dead bookmarks")
	return cmd
}
