package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Run the global search and print the JSON response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.Svc()
			if err != nil {
				return err
			}

			resp, err := svc.Search.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
}
