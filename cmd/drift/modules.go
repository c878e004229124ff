package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"drift/internal/project"
)

var modulesCmd = &cobra.Command{
	Use:   "modules [flags] [dir]",
	Short: "Load and list the modules of a drift project",
	Long:  `Modules resolves the nearest drift.toml, loads every module under its source roots and prints per-module stats`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runModules,
}

func init() {
	modulesCmd.Flags().Int("jobs", 0, "parallel load jobs (0 = GOMAXPROCS)")
	modulesCmd.Flags().Bool("no-cache", false, "skip the metadata disk cache")
}

func runModules(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	manifest, err := project.LoadManifest(dir)
	if err != nil {
		return err
	}

	loader := project.NewLoader(manifest)
	if !noCache {
		cache, err := project.OpenDiskCache("drift")
		if err == nil {
			loader.Cache = cache
		}
		// A cache that fails to open just disables caching.
	}

	modules, err := loader.LoadAll(cmd.Context(), jobs)
	if err != nil {
		return err
	}

	color.NoColor = !useColor(cmd, os.Stdout)
	nameColor := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Fprintf(cmd.OutOrStdout(), "package %s (%d modules)\n", manifest.Config.Package.Name, len(modules))
	for _, mod := range modules {
		enc := "utf-8"
		if mod.Meta.ASCII {
			enc = "ascii"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  %6d B %4d L  %s  %s\n",
			nameColor(mod.Meta.Name), mod.Meta.ByteLen, mod.Meta.Lines, enc, mod.Meta.ContentHash.Short())
	}
	return nil
}
