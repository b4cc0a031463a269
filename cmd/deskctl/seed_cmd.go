package main

import (
	"fmt"

	"github.com/infradesk/infra-desk/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd(a *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load a YAML fixture of partners and their infrastructure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := seed.ParseFile(args[0])
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d users, %d partners\n", args[0], len(fixture.Users), len(fixture.Partners))
				return nil
			}

			svc, err := a.Svc()
			if err != nil {
				return err
			}

			result, err := seed.NewLoader(svc, a.Logger).Load(cmd.Context(), fixture)
			if result != nil {
				fmt.Fprintf(cmd.OutOrStdout(),
					"users=%d profiles=%d partners=%d clients=%d projects=%d environments=%d servers=%d resources=%d issues=%d activities=%d\n",
					result.Users, result.Profiles, result.Partners, result.Clients, result.Projects,
					result.Environments, result.Servers, result.Resources, result.Issues, result.Activities)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse the fixture without writing")

	return cmd
}
