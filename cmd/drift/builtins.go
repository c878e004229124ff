package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"drift/internal/engine"
	runtimeembed "drift/runtime"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List the embedded builtin scripts",
	Long:  `Builtins lists the scripts compiled into the binary and the engine-string path each one takes`,
	Args:  cobra.NoArgs,
	RunE:  runBuiltins,
}

func runBuiltins(cmd *cobra.Command, args []string) error {
	color.NoColor = !useColor(cmd, os.Stdout)
	fastLabel := color.New(color.FgGreen).SprintFunc()

	scope := engine.NewScope()
	for _, b := range runtimeembed.Builtins() {
		h := scope.NewString(b.Code)
		path := "utf-8 copy"
		if scope.IsExternal(h) {
			path = fastLabel("external one-byte")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %6d B  %s\n", b.Name, b.Code.Len(), path)
	}
	return nil
}
