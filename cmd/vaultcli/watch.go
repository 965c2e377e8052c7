package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	vault "github.com/rsms/vaultfmt"
)

const watchDebounce = 500 * time.Millisecond

// newWatchCmd watches an on-disk envelope file (the file a sync agent
// drops a vault into) and reprints its stats each time it settles after a
// write, debounced the way vjache-cie's cmd/cie watch.go debounces
// repository file events before triggering a reindex.
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <envelope-file>",
		Short: "Watch an on-disk envelope file and print stats on every change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			dir := filepath.Dir(path)

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("fsnotify: %w", err)
			}
			defer watcher.Close()
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}

			printOnce(path)

			var timer *time.Timer
			var timerCh <-chan time.Time
			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if ev.Name != path {
						continue
					}
					if timer != nil {
						timer.Stop()
					}
					timer = time.NewTimer(watchDebounce)
					timerCh = timer.C
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
				case <-timerCh:
					timerCh = nil
					printOnce(path)
				}
			}
		},
	}
	return cmd
}

func printOnce(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		return
	}

	creds := credentialsFromEnv()
	lines, err := envelopeDecode(string(raw), creds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode %s: %v\n", path, err)
		return
	}

	st, err := vault.StatsOf(lines)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay %s: %v\n", path, err)
		return
	}
	color.Cyan("[%s] %s: %d commands, %d groups, %d entries", time.Now().Format("15:04:05"), path, st.Commands, st.Groups, st.Entries)
}
