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

	"github.com/skelforge/skelforge/pkg/adapter/golang"
	"github.com/skelforge/skelforge/pkg/adapter/javascript"
	"github.com/skelforge/skelforge/pkg/adapter/typescript"
	"github.com/skelforge/skelforge/pkg/analyzer"
	"github.com/skelforge/skelforge/pkg/harness"
	"github.com/skelforge/skelforge/pkg/unit"
)

const watchDebounce = 200 * time.Millisecond

func newWatchCommand() *cobra.Command {
	var (
		include []string
		exclude []string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-scan a project on every file change and report which symbols appeared or vanished",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			root = expandPath(root)

			logger := buildLogger()
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			scanCfg := resolveScanConfig(root, include, exclude)

			_, qmanager, eng := harness.NewEngineStack(logger)
			adapters := harness.DefaultAdapters(golang.New(qmanager), javascript.New(), typescript.New())

			rescan := func() (map[string]unit.CodeUnit, error) {
				result, err := harness.Run(ctx, eng, adapters, harness.Options{
					RootDir:    root,
					ScanConfig: scanCfg,
					NumWorkers: workers,
					Logger:     logger,
				})
				if err != nil {
					return nil, err
				}
				az, err := analyzer.New(result.State, analyzer.Adapters(adapters), analyzer.Config{})
				if err != nil {
					return nil, err
				}
				defer az.Close()

				decls := az.GetAllDeclarations()
				seen := make(map[string]unit.CodeUnit, len(decls))
				for _, u := range decls {
					seen[u.FQName()] = u
				}
				return seen, nil
			}

			prev, err := rescan()
			if err != nil {
				return fmt.Errorf("initial scan of %q: %w", root, err)
			}
			fmt.Fprintf(os.Stderr, "watching %s (%d symbols)\n", root, len(prev))

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			if err := addWatchDirs(watcher, root); err != nil {
				return err
			}

			green := color.New(color.FgGreen).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()

			var debounceTimer *time.Timer
			trigger := make(chan struct{}, 1)

			for {
				select {
				case <-ctx.Done():
					return nil

				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if ev.Op&fsnotify.Chmod == fsnotify.Chmod {
						continue
					}
					if debounceTimer != nil {
						debounceTimer.Stop()
					}
					debounceTimer = time.AfterFunc(watchDebounce, func() {
						select {
						case trigger <- struct{}{}:
						default:
						}
					})

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logger.Error("watcher error", "error", err)

				case <-trigger:
					next, err := rescan()
					if err != nil {
						logger.Error("rescan failed", "error", err)
						continue
					}
					for fq := range next {
						if _, existed := prev[fq]; !existed {
							fmt.Printf("%s %s\n", green("+"), fq)
						}
					}
					for fq := range prev {
						if _, still := next[fq]; !still {
							fmt.Printf("%s %s\n", red("-"), fq)
						}
					}
					prev = next
				}
			}
		},
	}

	cmd.Flags().StringSliceVar(&include, "include", nil, "glob patterns to include (overrides .skelforge.yaml)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "glob patterns to exclude, added to the defaults")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count, 0 auto-detects from CPU count")

	return cmd
}

// addWatchDirs walks root and registers every non-ignored directory with
// watcher, since fsnotify does not watch subtrees recursively on its own.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		switch filepath.Base(path) {
		case "node_modules", ".git", "dist", "build", "vendor":
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %q: %w", path, err)
		}
		return nil
	})
}
