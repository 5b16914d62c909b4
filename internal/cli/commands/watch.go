package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	CheckOptions
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch <board.yaml>",
		Short: "Re-check a board whenever it changes",
		Long: `Check a board, then check it again each time the file is written.

Bursts of writes within the debounce interval trigger a single check.
Stop with Ctrl-C.`,
		Example: `  # Watch a board
  boardcheck watch board.yaml

  # Save every run so new violations are marked
  boardcheck watch board.yaml --save --debounce 1s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Record each run in the state database")
	cmd.Flags().StringToIntVar(&opts.ErrorLimits, "error-limit", nil, "Per-code violation limit, e.g. courtyards_overlap=5")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Provider names to disable")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 0, "Delay after the last write before checking (default from config)")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *WatchOptions, path string) error {
	cc := NewCommandContext(cmd, opts.Format)
	ctx := cmd.Context()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = cc.Cfg.Watch.Debounce
	}

	// Serializes checks fired by the debounce timer.
	var mu sync.Mutex
	check := func() {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		rep, err := checkBoard(ctx, cc, &opts.CheckOptions, abs)
		if err != nil {
			cc.Renderer.Warnf("check failed: %v", err)
			return
		}
		if err := cc.Renderer.RenderReport(*rep); err != nil {
			cc.Logger.Error("render failed", slog.Any("error", err))
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	check()
	cc.Logger.Info("watching board", slog.String("path", abs), slog.Duration("debounce", debounce))

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		// Wait for a running check to finish.
		mu.Lock()
		mu.Unlock() //nolint:staticcheck // empty critical section
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isBoardEvent(event, abs) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				cc.Logger.Debug("board changed, re-checking", slog.String("file", event.Name))
				check()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cc.Logger.Error("watcher error", slog.Any("error", err))
		}
	}
}

func isBoardEvent(event fsnotify.Event, abs string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == abs
}
