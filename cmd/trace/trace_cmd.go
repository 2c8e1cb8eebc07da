package trace

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/sweep/cmd/cmdutil"
	"github.com/LegacyCodeHQ/sweep/config"
)

var outputFormat string
var rootDir string
var configPath string
var includeMarkers bool

// TraceCmd represents the trace command
var TraceCmd = &cobra.Command{
	Use:   "trace <entrypoint>...",
	Short: "List every file reachable from the given entrypoints.",
	Long: `List every file reachable from the given entrypoints.

Entrypoints are module specifiers resolved against the project's own
package.json; './src/index.js' or a bare package name both work.

Examples:
  sweep trace ./src/index.js                  # trace one entrypoint
  sweep trace ./src/index.js ./src/cli.js     # multiple entrypoints
  sweep trace ./src/index.js -f json          # machine-readable output
  sweep trace ./src/index.js -f dot           # DOT graph of crawl edges`,
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

		dir := rootDir
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

		output, err := formatResult(result, outputFormat, includeMarkers)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	TraceCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json, dot)")
	TraceCmd.Flags().StringVarP(&rootDir, "root", "r", "", "Project directory (default: current directory)")
	TraceCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default: sweep.yaml if present)")
	TraceCmd.Flags().BoolVarP(&includeMarkers, "markers", "m", false, "Include non-file entries (package.json descriptors, package symlinks)")
}
