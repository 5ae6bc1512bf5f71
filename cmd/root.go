package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "yatstats",
	Short: "Per-school baseball statistics microsites",
	Long: `yatstats serves a microsite per school. The leftmost label of the
request host selects the school; everything else is read from PostgreSQL.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("yatstats version {{.Version}}\n")
}
