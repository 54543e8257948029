package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chirp/internal/diagfmt"
	"chirp/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.chirp",
	Short: "Parse a chirp source file",
	Long:  `Parse builds the statement tree of a chirp source file and prints it`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Parse(filePath, maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		switch format {
		case "pretty":
			opts := diagfmt.PrettyOpts{
				Color:   useColor(cmd, os.Stderr),
				Context: 2,
			}
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
		case "json":
			jsonOpts := diagfmt.JSONOpts{IncludePositions: true}
			if err := diagfmt.JSON(os.Stderr, result.Bag, result.FileSet, jsonOpts); err != nil {
				return fmt.Errorf("failed to format diagnostics: %w", err)
			}
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	}

	if result.AST != nil {
		diagfmt.FormatAST(os.Stdout, result.AST)
	}
	if !result.Ok {
		return fmt.Errorf("%s has syntax errors", filePath)
	}
	return nil
}
