package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chirp/internal/diagfmt"
	"chirp/internal/driver"
)

var exportsCmd = &cobra.Command{
	Use:   "exports [flags] file.chirp",
	Short: "List the pub templates of a chirp file",
	Long:  `Exports lists the templates a file makes importable; results are cached by content hash`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExports,
}

func init() {
	exportsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	exportsCmd.Flags().Bool("no-cache", false, "always reparse, ignoring the exports cache")
	exportsCmd.Flags().Bool("drop-cache", false, "clear the exports cache and exit")
}

func runExports(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	noCache, _ := cmd.Flags().GetBool("no-cache")
	dropCache, _ := cmd.Flags().GetBool("drop-cache")

	var cache *driver.ExportCache
	if !noCache || dropCache {
		cache, err = driver.OpenExportCache("chirp")
		if err != nil {
			return fmt.Errorf("failed to open exports cache: %w", err)
		}
	}
	if dropCache {
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop exports cache: %w", err)
		}
		return nil
	}
	if noCache {
		cache = nil
	}

	result, err := driver.Exports(filePath, cache, maxDiagnostics(cmd))
	if result != nil && result.Bag != nil && result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to list exports: %w", err)
	}

	switch format {
	case "pretty":
		for _, e := range result.Exports {
			fmt.Fprintf(os.Stdout, "pub fn %s(%s)\n", e.Name, strings.Join(e.Params, ", "))
		}
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
