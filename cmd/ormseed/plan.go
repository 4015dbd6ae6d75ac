package main

import (
	"fmt"

	"ormseed/internal/schema"
	"ormseed/internal/version"

	"github.com/spf13/cobra"
)

func (a *app) newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the bootstrap plan as YAML without connecting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return schema.DefaultPlan(a.cfg.Mongo.Database).Render(cmd.OutOrStdout(), a.cfg.Bootstrap.Idempotent)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// no config or logger needed
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}
