package main

import "github.com/spf13/cobra"

func newRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "deskctl",
		Short:         "Operate the infra desk from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.Init()
		},
	}

	root.AddCommand(
		newExportCmd(a),
		newSearchCmd(a),
		newTokenCmd(a),
		newSeedCmd(a),
	)

	return root
}
