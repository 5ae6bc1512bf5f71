package main

import (
	"fmt"
	"os"

	"yatstats/internal/common"

	"github.com/spf13/cobra"
)

var crestCmd = &cobra.Command{
	Use:   "crest",
	Short: "Manage school crest images",
}

var crestUploadCmd = &cobra.Command{
	Use:   "upload <hsid> <file.png>",
	Short: "Upload a crest image to object storage",
	Args:  cobra.ExactArgs(2),
	RunE:  runCrestUpload,
}

func init() {
	rootCmd.AddCommand(crestCmd)
	crestCmd.AddCommand(crestUploadCmd)
}

func runCrestUpload(cmd *cobra.Command, args []string) error {
	key, err := common.ValidateTenantKey(args[0])
	if err != nil {
		return err
	}

	f, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	d, err := loadDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.crests.UploadCrest(cmd.Context(), key, f, info.Size()); err != nil {
		return fmt.Errorf("upload crest for %s: %w", key, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s\n", args[1])
	return nil
}
