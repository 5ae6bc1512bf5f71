package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"yatstats/internal/common"
	"yatstats/internal/services"

	"github.com/spf13/cobra"
)

var viewRefresh bool

var viewCmd = &cobra.Command{
	Use:   "view <hsid>",
	Short: "Print a school's composite view as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().BoolVar(&viewRefresh, "refresh", false, "Drop any cached view before building")
}

func runView(cmd *cobra.Command, args []string) error {
	key, err := common.ValidateTenantKey(args[0])
	if err != nil {
		return err
	}

	d, err := loadDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	if viewRefresh {
		if err := d.views.Invalidate(cmd.Context(), key); err != nil {
			d.log.Warn("failed to drop cached view", "hsid", key, "error", err)
		}
	}

	view, err := d.views.BuildView(cmd.Context(), key)
	if errors.Is(err, services.ErrTenantNotFound) {
		return fmt.Errorf("school %s not found", key)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
