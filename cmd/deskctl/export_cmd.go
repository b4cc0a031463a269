package main

import (
	"fmt"
	"io"
	"os"

	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/service"
	"github.com/infradesk/infra-desk/internal/storage"
	"github.com/spf13/cobra"
)

func newExportCmd(a *App) *cobra.Command {
	var (
		output  string
		archive bool
		prefix  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the infra data CSV export to a file, stdout or the archive store",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.Svc()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if archive {
				if !cmd.Flags().Changed("prefix") {
					prefix = a.Config.Export.Archive.Prefix
				}
				store, err := storage.NewStorage(ctx, &a.Config.Storage, a.Logger)
				if err != nil {
					return fmt.Errorf("failed to initialize storage: %w", err)
				}
				key, stats, err := svc.Export.Archive(ctx, store, prefix)
				if err != nil {
					return err
				}
				printStats(cmd.ErrOrStderr(), stats)
				fmt.Fprintln(cmd.OutOrStdout(), key)
				return nil
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			stats, err := svc.Export.WriteCSV(ctx, w)
			if err != nil {
				return err
			}
			printStats(cmd.ErrOrStderr(), stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", domain.ExportFilename, `Output file ("-" for stdout)`)
	cmd.Flags().BoolVar(&archive, "archive", false, "Store the export through the configured storage backend")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Archive key prefix (defaults to export.archive.prefix)")

	return cmd
}

func printStats(w io.Writer, stats *service.ExportStats) {
	fmt.Fprintf(w, "issues=%d rows=%d degraded=%d incomplete=%d\n",
		stats.Issues, stats.Rows, stats.Degraded, stats.Incomplete)
}
