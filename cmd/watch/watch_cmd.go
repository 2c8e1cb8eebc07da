package watch

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/sweep/config"
)

var projectDir string
var configPath string

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch <entrypoint>...",
	Short: "Re-run the unused-file report whenever project files change.",
	Long: `Re-run the unused-file report whenever project files change.

Watches the project directory (excluding node_modules internals and .git)
and re-traces the entrypoints after each change, with debouncing.

Example:
  sweep watch ./src/index.js`,
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

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return watchAndReport(ctx, cmd, dir, entrypoints)
	},
}

func init() {
	WatchCmd.Flags().StringVarP(&projectDir, "root", "r", "", "Project directory (default: current directory)")
	WatchCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default: sweep.yaml if present)")
}
