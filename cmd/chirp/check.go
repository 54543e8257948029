package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"chirp/internal/diagfmt"
	"chirp/internal/driver"
	"chirp/internal/project"
	"chirp/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.chirp]",
	Short: "Check a chirp scene file",
	Long:  `Check parses a chirp file, resolves its imports and dry-runs the scene without building it`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("max-depth", 0, "template expansion depth limit (0 uses the manifest value)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	manifest, root, err := loadNearestManifest()
	if err != nil {
		return err
	}

	filePath := manifest.Entry
	if len(args) == 1 {
		filePath = args[0]
	} else if root != "" {
		filePath = filepath.Join(root, manifest.Entry)
	}

	maxDepth, err := cmd.Flags().GetInt("max-depth")
	if err != nil {
		return fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	if maxDepth == 0 {
		maxDepth = manifest.MaxDepth
	}

	roots := manifest.ImportRoots
	if root != "" {
		abs := make([]string, 0, len(roots))
		for _, r := range roots {
			abs = append(abs, filepath.Join(root, r))
		}
		roots = abs
	}

	result, err := driver.Check(filePath, driver.CheckOptions{
		MaxDiagnostics: maxDiagnostics(cmd),
		MaxDepth:       maxDepth,
		ImportRoots:    roots,
	})
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}

	fmt.Fprintln(os.Stdout, ui.CheckSummary(filePath, result.Ok, result.Stats.Entities, result.Stats.Methods, result.Bag.Len()))
	if !result.Ok {
		return fmt.Errorf("%s has errors", filePath)
	}
	return nil
}

// loadNearestManifest walks up from the working directory looking for
// chirp.toml; absent a manifest the defaults apply and root is empty.
func loadNearestManifest() (project.Manifest, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return project.DefaultManifest(), "", fmt.Errorf("failed to get working directory: %w", err)
	}
	path, ok, err := project.FindChirpToml(cwd)
	if err != nil {
		return project.DefaultManifest(), "", fmt.Errorf("failed to locate chirp.toml: %w", err)
	}
	if !ok {
		return project.DefaultManifest(), "", nil
	}
	manifest, err := project.LoadManifest(path)
	if err != nil {
		return project.DefaultManifest(), "", fmt.Errorf("failed to load %s: %w", path, err)
	}
	return manifest, filepath.Dir(path), nil
}
