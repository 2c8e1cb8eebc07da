package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/sweep/cmd/cmdutil"
)

const debounceInterval = 300 * time.Millisecond

var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".idea":        true,
	".vscode":      true,
}

func watchAndReport(ctx context.Context, cmd *cobra.Command, dir string, entrypoints []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, dir); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	report(cmd, dir, entrypoints)

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				// New directories need to be watched too.
				_ = addWatchDirs(watcher, event.Name)
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(debounceInterval)
			debounceCh = debounceTimer.C

		case <-debounceCh:
			debounceCh = nil
			report(cmd, dir, entrypoints)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		}
	}
}

func report(cmd *cobra.Command, dir string, entrypoints []string) {
	result, packageJSON, err := cmdutil.RunTrace(entrypoints, dir)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace failed: %v\n", err)
		return
	}

	cmdutil.PrintDiagnostics(cmd.ErrOrStderr(), result.Diagnostics)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d reachable files\n", packageJSON, len(result.Files))
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	return filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil || !entry.IsDir() {
			return nil
		}
		if skippedDirs[entry.Name()] {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
