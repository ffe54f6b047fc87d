package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "agl",
		Short: "Bilingual blog, admin auth and contact relay API",
		Long: `agl serves the public blog and contact forms of the agency website
together with the token-protected admin API used to manage posts.

Configuration is read from the environment (and a .env file when present).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}
