package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/sweep/cmd/trace"
	"github.com/LegacyCodeHQ/sweep/cmd/unused"
	"github.com/LegacyCodeHQ/sweep/cmd/watch"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Trace reachable files and remove the rest",
	Long: `Sweep traces every file reachable from your project's entrypoints
through import, export-from, dynamic import() and require() edges, then
reports (or deletes) the files nothing references.

Use 'sweep --help' to see all available commands, or 'sweep <command> --help'
for detailed information about a specific command.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(trace.TraceCmd)
	rootCmd.AddCommand(unused.UnusedCmd)
	rootCmd.AddCommand(watch.WatchCmd)

	if rootCmd.Annotations == nil {
		rootCmd.Annotations = make(map[string]string)
	}
	rootCmd.Annotations["buildDate"] = buildDate
	rootCmd.Annotations["commit"] = commit

	rootCmd.Version = version

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)
}
