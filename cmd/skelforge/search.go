package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skelforge/skelforge/pkg/adapter/golang"
	"github.com/skelforge/skelforge/pkg/adapter/javascript"
	"github.com/skelforge/skelforge/pkg/adapter/typescript"
	"github.com/skelforge/skelforge/pkg/analyzer"
	"github.com/skelforge/skelforge/pkg/harness"
)

func newSearchCommand() *cobra.Command {
	var (
		root    string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "search <substring>",
		Short: "Find every declared symbol whose fully-qualified name contains a substring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			needle := args[0]
			logger := buildLogger()
			ctx := context.Background()

			_, qmanager, eng := harness.NewEngineStack(logger)
			adapters := harness.DefaultAdapters(golang.New(qmanager), javascript.New(), typescript.New())

			root = expandPath(root)
			result, err := harness.Run(ctx, eng, adapters, harness.Options{
				RootDir:    root,
				ScanConfig: resolveScanConfig(root, nil, nil),
				NumWorkers: workers,
				Logger:     logger,
			})
			if err != nil {
				return fmt.Errorf("scan %q: %w", root, err)
			}

			az, err := analyzer.New(result.State, analyzer.Adapters(adapters), analyzer.Config{})
			if err != nil {
				return err
			}
			defer az.Close()

			matches := az.SearchDefinitions(needle)
			if len(matches) == 0 {
				fmt.Printf("no symbols matching %q\n", needle)
				return nil
			}
			for _, u := range matches {
				fmt.Printf("%-8s %-60s %s\n", u.Kind, u.FQName(), u.File)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "project root to scan before searching")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count, 0 auto-detects from CPU count")

	return cmd
}
