package unused

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/sweep/cmd/cmdutil"
	"github.com/LegacyCodeHQ/sweep/config"
	"github.com/LegacyCodeHQ/sweep/project"
	"github.com/LegacyCodeHQ/sweep/scan"
)

var projectDir string
var scanRoot string
var configPath string
var ignorePatterns []string
var asJSON bool
var deleteFiles bool

// UnusedCmd represents the unused command
var UnusedCmd = &cobra.Command{
	Use:   "unused <entrypoint>...",
	Short: "List (or delete) files nothing reachable references.",
	Long: `List (or delete) files nothing reachable references.

The crawl starts at the given entrypoints; every file under the scan root
that the crawl never touches is reported as unused. The scan root defaults
to the project's node_modules directory.

Examples:
  sweep unused ./src/index.js                 # list unused files
  sweep unused ./src/index.js --json          # machine-readable output
  sweep unused ./src/index.js --delete        # remove them
  sweep unused ./src/index.js -s ./vendor     # scan a different directory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		entrypoints := args
		if len(entrypoints) == 0 {
			entrypoints = cfg.Entrypoints
		}
		if len(entrypoints) == 0 {
			return fmt.Errorf("no entrypoints given (pass them as arguments or set them in %s)", config.DefaultFileName)
		}

		dir := projectDir
		if dir == "" {
			dir = cfg.Root
		}
		if dir == "" {
			dir = "."
		}

		result, _, err := cmdutil.RunTrace(entrypoints, dir)
		if err != nil {
			return err
		}

		cmdutil.PrintDiagnostics(cmd.ErrOrStderr(), result.Diagnostics)

		root := scanRoot
		if root == "" {
			root, err = project.FindNodeModules(dir)
			if err != nil {
				return err
			}
		}

		ignore := append(append([]string{}, cfg.Ignore...), ignorePatterns...)
		unusedPaths, err := scan.Unused(root, result.Reachable(), scan.Options{Ignore: ignore})
		if err != nil {
			return err
		}

		if asJSON {
			encoded, err := json.MarshalIndent(unusedPaths, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		} else {
			for _, path := range unusedPaths {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
		}

		if deleteFiles {
			if err := scan.Delete(unusedPaths); err != nil {
				return fmt.Errorf("failed to delete unused files: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "deleted %d unused files\n", len(unusedPaths))
		} else if !asJSON {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d unused files\n", len(unusedPaths))
		}

		return nil
	},
}

func init() {
	UnusedCmd.Flags().StringVarP(&projectDir, "root", "r", "", "Project directory (default: current directory)")
	UnusedCmd.Flags().StringVarP(&scanRoot, "scan-root", "s", "", "Directory to scan for unused files (default: nearest node_modules)")
	UnusedCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default: sweep.yaml if present)")
	UnusedCmd.Flags().StringSliceVarP(&ignorePatterns, "ignore", "i", nil, "Glob patterns to exclude from the scan (comma-separated)")
	UnusedCmd.Flags().BoolVar(&asJSON, "json", false, "Output unused files as JSON")
	UnusedCmd.Flags().BoolVar(&deleteFiles, "delete", false, "Delete unused files")
}
