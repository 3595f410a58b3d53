package main

import (
	"time"

	"github.com/spf13/cobra"

	clierrors "github.com/pomitik/tik/internal/errors"
	"github.com/pomitik/tik/internal/journal"
	"github.com/pomitik/tik/internal/output"
)

func newLogCmd() *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the session log summary",
		Long: `Summarize completed intervals for today and the current week,
grouped by timer name and sorted by total time. Weeks start on Monday.`,
		Example: `  tik log
  tik log --json
  tik log --path`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			store, err := journal.OpenDefault()
			if err != nil {
				return clierrors.JournalFailed("locate", err)
			}

			if showPath {
				out.Print("%s\n", store.Path())
				return nil
			}

			entries, err := store.ReadAll()
			if err != nil {
				return clierrors.JournalFailed("read", err)
			}

			if out.JSON {
				if entries == nil {
					entries = []journal.Entry{}
				}

				return out.PrintJSON(entries)
			}

			if len(entries) == 0 {
				out.Muted("No sessions logged yet.")
				return nil
			}

			sections := journal.Summarize(entries, time.Now())
			out.Print("%s", journal.Render(sections, journal.DefaultStyles()))

			return nil
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "Print the journal file path instead of the summary")

	return cmd
}
