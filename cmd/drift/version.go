package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"drift/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show drift build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), version.Fingerprint())
		return nil
	},
}
