package commands

import (
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/lookmlint/internal/cli/output"
	"github.com/leapstack-labs/lookmlint/pkg/style"
)

// debounceWindow coalesces bursts of filesystem events, such as an editor
// writing a temp file and renaming it over the original.
const debounceWindow = 250 * time.Millisecond

// watchAndCheck runs an initial check, then re-checks whenever a LookML
// file under the watched paths changes. It returns when interrupted.
func watchAndCheck(cmd *cobra.Command, opts *CheckOptions, checkOpts []style.Option, r *output.Renderer, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, path := range opts.Paths {
		if err := watchRecursive(watcher, path); err != nil {
			return err
		}
	}

	runOnce := func() {
		files, err := discoverFiles(opts.Paths)
		if err != nil {
			r.Error(err.Error())
			return
		}
		results, err := checkFiles(files, checkOpts, 1)
		if err != nil {
			r.Error(err.Error())
			return
		}
		renderCheckResults(r, results, len(files))
	}

	runOnce()
	logger.Info("watching for changes", "paths", opts.Paths)

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need their own watch.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchRecursive(watcher, event.Name)
				}
			}
			if !isLookMLFile(event.Name) {
				continue
			}
			logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			runOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// watchRecursive registers path and all directories beneath it.
func watchRecursive(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(path))
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}
