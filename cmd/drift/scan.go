package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"drift/internal/source"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] path",
	Short: "Classify script files for the static-ASCII fast path",
	Long: `Scan loads every *.dr file under path and reports whether its content
would qualify for the engine's zero-copy single-byte string constructor
if it were embedded as a static asset`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().Bool("digest", false, "print content digests")
}

func runScan(cmd *cobra.Command, args []string) error {
	showDigest, err := cmd.Flags().GetBool("digest")
	if err != nil {
		return fmt.Errorf("failed to get digest flag: %w", err)
	}

	files, err := listScriptFiles(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no .dr files found")
		return nil
	}

	asciiLabel := color.New(color.FgGreen).SprintFunc()
	utf8Label := color.New(color.FgYellow).SprintFunc()
	color.NoColor = !useColor(cmd, os.Stdout)

	fileSet := source.NewFileSet()
	asciiCount := 0
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		f := fileSet.Get(id)

		label := utf8Label("utf-8 ")
		if f.IsASCII() {
			label = asciiLabel("ascii ")
			asciiCount++
		}
		line := fmt.Sprintf("%s %6d B %4d L  %s", label, len(f.Content), f.LineCount(), f.Path)
		if showDigest {
			line += fmt.Sprintf("  sha256:%x", f.Hash[:4])
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d files eligible for the static fast path\n", asciiCount, len(files))
	return nil
}

func listScriptFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".dr") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
