package main

import (
	"fmt"

	"yatstats/internal/tenancy"

	"github.com/spf13/cobra"
)

var (
	resolveReserved    []string
	resolveDevelopment bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <host> [path]",
	Short: "Show which school a host selects and the rewritten path",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringSliceVar(&resolveReserved, "reserved", tenancy.DefaultReservedAliases, "Subdomains that address the primary site")
	resolveCmd.Flags().BoolVar(&resolveDevelopment, "dev", false, "Resolve as in development mode")
}

func runResolve(cmd *cobra.Command, args []string) error {
	host, path := args[0], "/"
	if len(args) == 2 {
		path = args[1]
	}

	resolver := tenancy.NewResolver(resolveReserved, resolveDevelopment)
	out := cmd.OutOrStdout()

	key, ok := resolver.Resolve(host)
	if !ok {
		fmt.Fprintf(out, "host %s: no tenant\npath %s\n", host, path)
		return nil
	}
	fmt.Fprintf(out, "host %s: hsid %s\npath %s\n", host, key, tenancy.RewritePath(key, path))
	return nil
}
